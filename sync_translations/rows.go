package main

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// cell is a spreadsheet value that may not have been assigned yet.
type cell struct {
	value string
	set   bool
}

// row is a fixed-width spreadsheet row, one cell per known column.
type row []cell

func newRow(width int) row {
	return make(row, width)
}

func (r row) set(i int, value string) {
	if i >= 0 && i < len(r) {
		r[i] = cell{value: value, set: true}
	}
}

func (r row) isSet(i int) bool {
	return i >= 0 && i < len(r) && r[i].set
}

// documentsFromRows builds one document per language out of data rows (header already removed).
// Blank cells add nothing, so a key without a value is simply absent from that language.
func documentsFromRows(rows [][]string, cols *columnResolver, languages []string) (map[string]*Document, error) {
	keyIndex, ok := cols.Index(keyColumn)
	if !ok {
		return nil, configError("no %q column", keyColumn)
	}

	docs := make(map[string]*Document, len(languages))
	for _, lang := range languages {
		langIndex, ok := cols.Index(lang)
		if !ok {
			return nil, configError("no column for language %q", lang)
		}

		doc := NewDocument()
		for n, r := range rows {
			key := cellValue(r, keyIndex)
			if key == "" {
				log.WithField("row", n).Debug("skipping row without key")
				continue
			}
			value := strings.TrimSpace(cellValue(r, langIndex))
			if value == "" {
				continue
			}
			doc.Set(key, value)
		}
		docs[lang] = doc
	}
	return docs, nil
}

func cellValue(r []string, i int) string {
	if i >= 0 && i < len(r) {
		return r[i]
	}
	return ""
}

// rowsFromDocuments emits one row per key of the union of all documents, keys in first-seen
// order walking languages in configured order. The header row comes first when configured.
func rowsFromDocuments(docs map[string]*Document, cols *columnResolver, languages []string, header []string) ([]row, error) {
	keyIndex, ok := cols.Index(keyColumn)
	if !ok {
		return nil, configError("no %q column", keyColumn)
	}
	noteIndex, hasNote := cols.Index(noteColumn)
	langIndexes := make([]int, len(languages))
	for i, lang := range languages {
		idx, ok := cols.Index(lang)
		if !ok {
			return nil, configError("no column for language %q", lang)
		}
		langIndexes[i] = idx
	}

	var keys []string
	seen := make(map[string]struct{})
	for _, lang := range languages {
		doc := docs[lang]
		if doc == nil {
			continue
		}
		for _, key := range doc.Keys() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	rows := make([]row, 0, len(keys)+1)
	if header != nil {
		h := newRow(len(header))
		for i, name := range header {
			h.set(i, name)
		}
		rows = append(rows, h)
	}

	width := cols.Width()
	for _, key := range keys {
		r := newRow(width)
		r.set(keyIndex, key)
		if hasNote {
			r.set(noteIndex, "")
		}
		for i, lang := range languages {
			if doc := docs[lang]; doc != nil {
				if value, ok := doc.Get(key); ok {
					r.set(langIndexes[i], value)
				}
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// normalizeRows turns rows into contiguous values, the width taken from the first row.
// Unset cells become empty strings since the spreadsheet rejects sparse rows.
func normalizeRows(rows []row) [][]string {
	if len(rows) == 0 {
		return [][]string{}
	}
	width := len(rows[0])
	values := make([][]string, len(rows))
	for i, r := range rows {
		values[i] = make([]string, width)
		for j := 0; j < width && j < len(r); j++ {
			values[i][j] = r[j].value
		}
	}
	return values
}
