package edge

import "strings"

// HeaderEntry is a single header value in the Lambda@Edge shape. Key
// carries the original casing of the header name.
type HeaderEntry struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// Headers maps lower-cased header names to their ordered values.
type Headers map[string][]HeaderEntry

// Get returns the first value of the named header.
func (h Headers) Get(name string) (string, bool) {
	entries, ok := h[strings.ToLower(name)]
	if !ok || len(entries) == 0 {
		return "", false
	}

	return entries[0].Value, true
}

// Set replaces all values of the named header with a single entry.
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = []HeaderEntry{{Key: key, Value: value}}
}

// Add appends a value to the named header.
func (h Headers) Add(key, value string) {
	name := strings.ToLower(key)
	h[name] = append(h[name], HeaderEntry{Key: key, Value: value})
}
