package cloudwatch

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ParameterMap is the ordered set of wire parameters for one request.
type ParameterMap struct {
	keys   []string
	values map[string]string
}

// NewParameterMap returns an empty map.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{values: make(map[string]string)}
}

// Set adds or replaces a parameter. Replacing keeps the original position.
func (p *ParameterMap) Set(key, value string) {
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p *ParameterMap) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of parameters.
func (p *ParameterMap) Len() int {
	return len(p.keys)
}

// Keys returns the wire keys in insertion order.
func (p *ParameterMap) Keys() []string {
	return append([]string(nil), p.keys...)
}

// Map returns a plain copy of the parameters.
func (p *ParameterMap) Map() map[string]string {
	m := make(map[string]string, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Values converts the parameters to url.Values.
func (p *ParameterMap) Values() url.Values {
	vals := make(url.Values, len(p.values))
	for _, k := range p.keys {
		vals.Set(k, p.values[k])
	}
	return vals
}

// Encode renders the parameters as a query string sorted by key.
func (p *ParameterMap) Encode() string {
	return p.Values().Encode()
}

// Encode flattens a validated OptionSet into wire parameters, following the field
// order of spec. Fields absent from opts are not emitted. Encode has no failure path;
// values are expected to have passed Validate.
func Encode(spec *OperationSpec, opts OptionSet) *ParameterMap {
	params := NewParameterMap()
	for _, f := range spec.Fields {
		v, ok := opts[f.Name]
		if !ok || v == nil {
			continue
		}
		switch f.Shape {
		case ShapeScalar:
			params.Set(f.Name, FormatValue(v))
		case ShapeCSVList:
			tokens, _ := listTokens(v)
			for i, token := range tokens {
				params.Set(fmt.Sprintf("%s.member.%d", f.Name, i+1), token)
			}
		case ShapeKVList:
			dims, _ := dimensionPairs(v)
			for i, d := range dims {
				prefix := fmt.Sprintf("%s.member.%d", f.Name, i+1)
				params.Set(prefix+".Name", d.Name)
				params.Set(prefix+".Value", d.Value)
			}
		}
	}
	return params
}

// Prepare validates opts and encodes the result.
func Prepare(spec *OperationSpec, opts OptionSet) (*ParameterMap, error) {
	resolved, err := Validate(spec, opts)
	if err != nil {
		return nil, err
	}
	return Encode(spec, resolved), nil
}

// FormatValue renders a scalar in its canonical wire form: RFC 3339 for timestamps,
// plain decimal text for numbers and "true"/"false" for booleans.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return decimal.NewFromFloat(t).String()
	case float32:
		return decimal.NewFromFloat32(t).String()
	case decimal.Decimal:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	}
	return fmt.Sprint(v)
}
