// Package hdr implements an ordered, duplicate-preserving HTTP header list.
//
// Unlike net/http's map[string][]string, List keeps header fields in wire
// order and keeps every duplicate occurrence as its own entry, matching the
// "header list (ordered, duplicates preserved)" invariant the Head view
// requires. Lookups are case-insensitive per RFC 7230 §3.2.
package hdr

import (
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Pair is a single header field as it appeared on the wire.
type Pair struct {
	Name  string
	Value string
}

// List is an ordered sequence of header fields, duplicates preserved.
type List struct {
	pairs []Pair
}

// NewList returns an empty List with room for n fields preallocated.
func NewList(n int) *List {
	return &List{pairs: make([]Pair, 0, n)}
}

// Add appends name/value as a new field, preserving any earlier occurrence
// of the same name. Returns an error if name or value are not valid per
// RFC 7230 field-name/field-value grammar.
func (l *List) Add(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return ErrInvalidFieldName
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return ErrInvalidFieldValue
	}
	l.pairs = append(l.pairs, Pair{Name: name, Value: value})
	return nil
}

// AddRaw appends name/value without validation; the request and response
// parsers use the validating Add instead.
func (l *List) AddRaw(name, value string) {
	l.pairs = append(l.pairs, Pair{Name: name, Value: value})
}

// Get returns the first value for name (case-insensitive), and whether it
// was present at all.
func (l *List) Get(name string) (string, bool) {
	for _, p := range l.pairs {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns every value for name, in wire order.
func (l *List) Values(name string) []string {
	var out []string
	for _, p := range l.pairs {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p.Value)
		}
	}
	return out
}

// Count returns how many times name occurs (case-insensitive).
func (l *List) Count(name string) int {
	n := 0
	for _, p := range l.pairs {
		if strings.EqualFold(p.Name, name) {
			n++
		}
	}
	return n
}

// Has reports whether name occurs at all.
func (l *List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Pairs returns the underlying ordered pairs. The slice is owned by the
// List and must not be mutated by the caller.
func (l *List) Pairs() []Pair {
	return l.pairs
}

// Len returns the number of header fields.
func (l *List) Len() int {
	return len(l.pairs)
}

// HasToken reports whether the comma-separated value list for name
// contains token (case-insensitive), the way Connection/Upgrade/
// Transfer-Encoding list values must be checked.
func (l *List) HasToken(name, token string) bool {
	for _, p := range l.pairs {
		if !strings.EqualFold(p.Name, name) {
			continue
		}
		for _, tok := range strings.Split(p.Value, ",") {
			if strings.EqualFold(strings.TrimSpace(tok), token) {
				return true
			}
		}
	}
	return false
}

// CanonicalHeaderKey returns the canonical form of a header field name,
// e.g. "content-length" -> "Content-Length". Used only when serializing
// headers we generated ourselves; borrowed parser views keep the original
// casing as received.
func CanonicalHeaderKey(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	upper := true
	for i, c := range b {
		if upper && 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		} else if !upper && 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
		upper = c == '-'
	}
	return string(b)
}
