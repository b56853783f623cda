package main

import "slices"

const (
	keyColumn  = "key"
	noteColumn = "note"
)

// columnResolver maps logical column names (key, note or a language) to row indexes.
// Without a header the key is column 0 and languages follow in configured order.
type columnResolver struct {
	header    []string
	languages []string
	cache     map[string]int
}

func newColumnResolver(header, languages []string) *columnResolver {
	return &columnResolver{
		header:    header,
		languages: languages,
		cache:     make(map[string]int),
	}
}

// Index returns the zero-based column of name. The result is computed once per name.
func (c *columnResolver) Index(name string) (int, bool) {
	i, ok := c.cache[name]
	if !ok {
		i = c.lookup(name)
		c.cache[name] = i
	}
	return i, i >= 0
}

func (c *columnResolver) lookup(name string) int {
	if c.header != nil {
		return slices.Index(c.header, name)
	}
	if name == keyColumn {
		return 0
	}
	if i := slices.Index(c.languages, name); i >= 0 {
		return i + 1
	}
	return -1
}

// Width is the number of known columns, i.e. the length of every emitted row.
func (c *columnResolver) Width() int {
	if c.header != nil {
		return len(c.header)
	}
	return len(c.languages) + 1
}

// Validate makes sure the key and every language have a column. The note column is optional.
func (c *columnResolver) Validate() error {
	if _, ok := c.Index(keyColumn); !ok {
		return configError("header has no %q column", keyColumn)
	}
	for _, lang := range c.languages {
		if _, ok := c.Index(lang); !ok {
			return configError("header has no column for language %q", lang)
		}
	}
	return nil
}
