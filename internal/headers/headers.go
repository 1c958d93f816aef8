package headers

import (
	"bytes"
	"iter"
	"strings"
)

const separator = ": "

// Headers is an ordered header mapping. Keys are stored lower-cased, lookups
// are case-insensitive and a repeated key overwrites the earlier value while
// keeping its original position.
type Headers struct {
	keys   []string
	values map[string]string
}

func NewHeaders() *Headers {
	return &Headers{values: map[string]string{}}
}

// Parse consumes one line from data. It returns the number of bytes consumed
// and whether the line was the blank line that ends the header block. A line
// without ": " is consumed and dropped. n is 0 when data holds no complete
// line yet.
func (h *Headers) Parse(data []byte) (n int, done bool) {
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		return 0, false
	}
	n = idx + 1

	line := bytes.TrimSuffix(data[:idx], []byte("\r"))
	if len(line) == 0 {
		return n, true
	}

	h.ParseLine(line)
	return n, false
}

// ParseLine adds a single "Key: Value" line without its terminator. It
// reports whether the line was accepted.
func (h *Headers) ParseLine(line []byte) bool {
	key, value, ok := bytes.Cut(line, []byte(separator))
	if !ok || len(key) == 0 {
		return false
	}
	h.Set(string(key), string(bytes.TrimSpace(value)))
	return true
}

func (h *Headers) Set(key, value string) {
	key = strings.ToLower(key)
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

func (h *Headers) Get(key string) string {
	if h == nil {
		return ""
	}
	return h.values[strings.ToLower(key)]
}

// Lookup is Get with a presence flag.
func (h *Headers) Lookup(key string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h.values[strings.ToLower(key)]
	return v, ok
}

func (h *Headers) Del(key string) {
	key = strings.ToLower(key)
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}

// All yields lower-cased keys and their values in insertion order.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if h == nil {
			return
		}
		for _, k := range h.keys {
			if !yield(k, h.values[k]) {
				return
			}
		}
	}
}
