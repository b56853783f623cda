package main

import (
	"bytes"
	"encoding/xml"
)

// androidResources is the <resources> document of an Android strings.xml file.
type androidResources struct {
	XMLName xml.Name        `xml:"resources"`
	Strings []androidString `xml:"string"`
}

type androidString struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type androidCodec struct{}

func (androidCodec) Format() Format {
	return FormatXML
}

// Marshal writes one <string> element per line. Reserved characters in names and
// values are escaped by the encoder.
func (androidCodec) Marshal(doc *Document) ([]byte, error) {
	res := androidResources{Strings: make([]androidString, 0, doc.Len())}
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		res.Strings = append(res.Strings, androidString{Name: key, Value: value})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (androidCodec) Unmarshal(data []byte) (*Document, error) {
	var res androidResources
	if err := xml.Unmarshal(data, &res); err != nil {
		return nil, &ParseError{Format: FormatXML, Err: err}
	}

	doc := NewDocument()
	for _, s := range res.Strings {
		doc.Set(s.Name, s.Value)
	}
	return doc, nil
}
