package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "empty defaults to json", input: "", want: FormatJSON},
		{name: "json", input: "json", want: FormatJSON},
		{name: "xml", input: "xml", want: FormatXML},
		{name: "strings", input: "strings", want: FormatStrings},
		{name: "case and spaces", input: " XML ", want: FormatXML},
		{name: "unknown", input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, got.Codec().Format())
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	docs := map[string]*Document{
		"empty":   NewDocument(),
		"simple":  documentOf("hello", "Hello", "bye", "Goodbye"),
		"quotes":  documentOf(`say "hi"`, `He said "hi"`, "apostrophe", "it's"),
		"markup":  documentOf("a&b", "<b>bold</b> & more", "lt", "1 < 2 > 0"),
		"slashes": documentOf(`path\to`, `C:\Users\"me"`, "trailing", `ends with \`),
		"unicode": documentOf("greeting", "Привет, мир", "emoji", "👋 à bientôt"),
		"spaces":  documentOf("padded", "  inside spaces  ", "tab", "a\tb"),
		"blank":   documentOf("nothing", ""),
		"dots":    documentOf("menu.file.open", "Open", "placeholder", "Hello {{name}}, %1$s"),
	}

	for _, format := range []Format{FormatJSON, FormatXML, FormatStrings} {
		codec := format.Codec()
		for name, doc := range docs {
			t.Run(format.String()+"/"+name, func(t *testing.T) {
				data, err := codec.Marshal(doc)
				require.NoError(t, err)

				got, err := codec.Unmarshal(data)
				require.NoError(t, err)
				assert.Equal(t, doc.Keys(), got.Keys())
				assert.Equal(t, doc.Map(), got.Map())

				again, err := codec.Marshal(got)
				require.NoError(t, err)
				assert.Equal(t, string(data), string(again))
			})
		}
	}
}

func TestCodecNewlines(t *testing.T) {
	doc := documentOf("multi", "first line\nsecond line")
	for _, format := range []Format{FormatJSON, FormatXML, FormatStrings} {
		t.Run(format.String(), func(t *testing.T) {
			codec := format.Codec()
			data, err := codec.Marshal(doc)
			require.NoError(t, err)
			got, err := codec.Unmarshal(data)
			require.NoError(t, err)
			assert.Equal(t, doc.Map(), got.Map())
		})
	}
}

func TestParseErrorUnwraps(t *testing.T) {
	_, err := FormatXML.Codec().Unmarshal([]byte("<resources><string name=\"a\">x</resources>"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, FormatXML, parseErr.Format)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "xml")
}
