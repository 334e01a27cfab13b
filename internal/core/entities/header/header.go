package header

import (
	"net/http"
	"sort"
	"strings"
)

type Field struct {
	Name  string
	Value string
}

// List keeps header fields in the order they were seen.
// Repeated names are kept as separate fields.
type List []Field

func (l *List) Add(name, value string) {
	*l = append(*l, Field{Name: name, Value: value})
}

// Get returns the first value for the name, compared case-insensitively.
func (l List) Get(name string) string {
	for _, f := range l {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

func (l List) Values(name string) []string {
	var values []string
	for _, f := range l {
		if strings.EqualFold(f.Name, name) {
			values = append(values, f.Value)
		}
	}
	return values
}

func (l List) Len() int {
	return len(l)
}

// FromHTTP flattens a header map into a list.
// The order of response headers as they came over the wire is lost:
// net/http parses them into a map before any hook can observe them.
// Names are therefore sorted by their canonical form to keep output stable,
// while repeated values of one name keep the order they were received in.
// Request headers do not go through here and keep their wire order.
func FromHTTP(h http.Header) List {
	names := make([]string, 0, len(h))
	size := 0
	for name, values := range h {
		names = append(names, name)
		size += len(values)
	}
	sort.Strings(names)
	list := make(List, 0, size)
	for _, name := range names {
		for _, value := range h[name] {
			list = append(list, Field{Name: name, Value: value})
		}
	}
	return list
}
