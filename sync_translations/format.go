package main

import (
	"fmt"
	"strings"
)

// Format is the on-disk representation of a translation file.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatStrings
)

var formatNames = map[Format]string{
	FormatJSON:    "json",
	FormatXML:     "xml",
	FormatStrings: "strings",
}

// ParseFormat maps the configured format name to a Format. An empty name means json.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatJSON, nil
	}
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, configError("unknown format %q", name)
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Codec converts between a Document and its textual form.
type Codec interface {
	Format() Format
	Marshal(doc *Document) ([]byte, error)
	Unmarshal(data []byte) (*Document, error)
}

func (f Format) Codec() Codec {
	switch f {
	case FormatXML:
		return androidCodec{}
	case FormatStrings:
		return iosCodec{}
	default:
		return jsonCodec{}
	}
}
