package main

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// "key" = "value"; with backslash escapes inside both quoted parts. Block comments may
	// come before the pair and a // or /* comment may follow it.
	iosStringsLine = regexp.MustCompile(`^\s*(?:/\*.*?\*/\s*)*"((?:[^"\\]|\\.)*)"\s*=\s*"((?:[^"\\]|\\.)*)"\s*;?\s*(?://.*|/\*.*)?$`)

	iosEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
)

type iosCodec struct{}

func (iosCodec) Format() Format {
	return FormatStrings
}

func (iosCodec) Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, key := range doc.Keys() {
		value, _ := doc.Get(key)
		fmt.Fprintf(&buf, "\"%s\" = \"%s\";\n", iosEscaper.Replace(key), iosEscaper.Replace(value))
	}
	return buf.Bytes(), nil
}

// Unmarshal never fails: comments, blank lines and anything else that is not a
// key/value line are skipped.
func (iosCodec) Unmarshal(data []byte) (*Document, error) {
	doc := NewDocument()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		matches := iosStringsLine.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if matches == nil {
			continue
		}
		doc.Set(iosUnescape(matches[1]), iosUnescape(matches[2]))
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Format: FormatStrings, Err: err}
	}
	return doc, nil
}

// iosUnescape decodes the escapes Xcode understands. \Uxxxx becomes the rune it names and
// any other escaped character stands for itself.
func iosUnescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'U', 'u':
			r, n := iosUnicodeEscape(s[i+1:])
			if n == 0 {
				b.WriteByte(s[i])
				continue
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// iosUnicodeEscape reads the four hex digits after \U, joining a following \U low surrogate.
// It returns how many bytes were consumed, 0 when s does not start with four hex digits.
func iosUnicodeEscape(s string) (rune, int) {
	if len(s) < 4 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0
	}
	r := rune(v)
	if utf16.IsSurrogate(r) && len(s) >= 10 && s[4] == '\\' && (s[5] == 'U' || s[5] == 'u') {
		if low, err := strconv.ParseUint(s[6:10], 16, 32); err == nil {
			if pair := utf16.DecodeRune(r, rune(low)); pair != utf8.RuneError {
				return pair, 10
			}
		}
	}
	if utf16.IsSurrogate(r) {
		return utf8.RuneError, 4
	}
	return r, 4
}
