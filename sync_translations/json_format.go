package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const jsonIndent = "  "

type jsonCodec struct{}

func (jsonCodec) Format() Format {
	return FormatJSON
}

// Marshal writes doc as a flat object, one member per line, in document order.
func (jsonCodec) Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	keys := doc.Keys()
	if len(keys) == 0 {
		buf.WriteString("{}\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("{\n")
	for i, key := range keys {
		value, _ := doc.Get(key)
		k, err := jsonString(key)
		if err != nil {
			return nil, err
		}
		v, err := jsonString(value)
		if err != nil {
			return nil, err
		}
		buf.WriteString(jsonIndent)
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// Unmarshal reads an object keeping member order. Nested objects are flattened into
// dot-joined keys, numbers and booleans keep their literal text and nulls are dropped.
func (jsonCodec) Unmarshal(data []byte) (*Document, error) {
	doc := NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ParseError{Format: FormatJSON, Err: fmt.Errorf("expected an object, got %v", tok)}
	}
	if err = decodeJSONObject(dec, "", doc); err != nil {
		return nil, &ParseError{Format: FormatJSON, Err: err}
	}
	if _, err = dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{Format: FormatJSON, Err: errors.New("unexpected data after top-level object")}
	}
	return doc, nil
}

// decodeJSONObject consumes members up to and including the closing brace of an opened object.
func decodeJSONObject(dec *json.Decoder, prefix string, doc *Document) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if err = decodeJSONValue(dec, key, doc); err != nil {
			return err
		}
	}
	_, err := dec.Token()
	return err
}

func decodeJSONValue(dec *json.Decoder, key string, doc *Document) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		if v == '{' {
			return decodeJSONObject(dec, key, doc)
		}
		return fmt.Errorf("key %q: arrays are not supported", key)
	case string:
		doc.Set(key, v)
	case json.Number:
		doc.Set(key, v.String())
	case bool:
		doc.Set(key, strconv.FormatBool(v))
	}
	return nil
}

func jsonString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
