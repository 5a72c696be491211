package cloudwatch

import (
	"reflect"
	"strings"
)

// Dimension is one Name/Value filter on a metric.
type Dimension struct {
	Name  string
	Value string
}

// String renders the dimension in its key=value form.
func (d Dimension) String() string {
	return d.Name + "=" + d.Value
}

// SplitList splits a comma-separated string into trimmed tokens in input order.
// Blank tokens are dropped so that member indices stay contiguous.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// ParseDimension splits a "key=value" entry on its first '='.
// An entry without '=' yields the whole entry as Name and an empty Value.
func ParseDimension(entry string) Dimension {
	name, value, _ := strings.Cut(entry, "=")
	return Dimension{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
}

// ParseDimensions parses "key=value" entries. Each entry may itself hold several
// comma-separated pairs ("InstanceId=i-1,AutoScalingGroupName=web").
func ParseDimensions(entries ...string) []Dimension {
	var dims []Dimension
	for _, entry := range entries {
		for _, pair := range SplitList(entry) {
			dims = append(dims, ParseDimension(pair))
		}
	}
	return dims
}

// listTokens flattens a list-kind value into tokens. Only the string form is split on
// commas; each element of a slice is one token. ok is false when v has the wrong type.
func listTokens(v any) (tokens []string, ok bool) {
	if s, isString := stringValue(v); isString {
		return SplitList(s), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.String {
		return nil, false
	}
	tokens = make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		if token := strings.TrimSpace(rv.Index(i).String()); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens, true
}

// dimensionPairs flattens a pairs-kind value into dimensions. A string may hold several
// comma-separated pairs; each element of a []string is exactly one pair.
// ok is false when v has the wrong type.
func dimensionPairs(v any) (dims []Dimension, ok bool) {
	switch t := v.(type) {
	case string:
		return ParseDimensions(t), true
	case []string:
		dims = make([]Dimension, 0, len(t))
		for _, entry := range t {
			if strings.TrimSpace(entry) != "" {
				dims = append(dims, ParseDimension(entry))
			}
		}
		return dims, true
	case Dimension:
		return []Dimension{t}, true
	case []Dimension:
		return t, true
	}
	return nil, false
}
