package main

// Document maps translation keys to translated text for one language.
// Keys keep the order in which they were first set.
type Document struct {
	keys   []string
	values map[string]string
}

func NewDocument() *Document {
	return &Document{values: make(map[string]string)}
}

// Set stores value under key, keeping the key's original position when it already exists.
func (d *Document) Set(key, value string) {
	if d.values == nil {
		d.values = make(map[string]string)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *Document) Get(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

func (d *Document) Len() int {
	return len(d.keys)
}

// Merge overlays other onto d: values from other win, keys only present in d are kept.
func (d *Document) Merge(other *Document) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		d.Set(k, other.values[k])
	}
}

// Map returns a plain copy of the key/value pairs.
func (d *Document) Map() map[string]string {
	m := make(map[string]string, len(d.keys))
	for _, k := range d.keys {
		m[k] = d.values[k]
	}
	return m
}
