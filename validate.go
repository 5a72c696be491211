package cloudwatch

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validate checks opts against spec and returns a copy with declared defaults filled in.
//
// Rules run in order presence, type, range, enumeration across all fields, and the
// first violation is returned as a *ValidationError. opts is never modified.
func Validate(spec *OperationSpec, opts OptionSet) (OptionSet, error) {
	for _, f := range spec.Fields {
		if f.Required && isEmpty(f, opts[f.Name]) {
			return nil, MissingRequiredField(f.Name)
		}
	}

	for _, f := range spec.Fields {
		v, ok := opts[f.Name]
		if !ok || v == nil {
			continue
		}
		if !hasKind(f.Kind, v) {
			return nil, InvalidFieldType(f.Name, f.Kind.String())
		}
	}

	if r := spec.TimeRange; r != nil {
		start, _ := opts[r.Start].(time.Time)
		end, _ := opts[r.End].(time.Time)
		if !start.Before(end) {
			return nil, InvalidTimeRange(r.Start, r.End)
		}
	}

	for _, f := range spec.Fields {
		v, ok := opts[f.Name]
		if !ok || v == nil || f.Enum == nil {
			continue
		}
		var values []string
		if f.Shape == ShapeCSVList {
			values, _ = listTokens(v)
		} else {
			if blankString(v) {
				continue
			}
			s, _ := stringValue(v)
			values = []string{s}
		}
		for _, value := range values {
			if !f.Enum.Contains(value) {
				return nil, InvalidEnumValue(f.Name, value, sortedValues(f.Enum))
			}
		}
	}

	resolved := make(OptionSet, len(opts)+len(spec.Fields))
	for k, v := range opts {
		resolved[k] = v
	}
	// an empty optional enumerated string is the same as leaving it out
	for _, f := range spec.Fields {
		if f.Enum != nil && f.Shape == ShapeScalar && blankString(resolved[f.Name]) {
			delete(resolved, f.Name)
		}
	}
	for _, f := range spec.Fields {
		if v, ok := resolved[f.Name]; (!ok || v == nil) && f.Default != nil {
			resolved[f.Name] = f.Default
		}
	}
	return resolved, nil
}

func isEmpty(f FieldSpec, v any) bool {
	if v == nil {
		return true
	}
	switch f.Kind {
	case KindList:
		tokens, ok := listTokens(v)
		return ok && len(tokens) == 0
	case KindPairs:
		dims, ok := dimensionPairs(v)
		return ok && len(dims) == 0
	}
	if t, ok := v.(time.Time); ok {
		return t.IsZero()
	}
	if s, ok := stringValue(v); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func hasKind(k Kind, v any) bool {
	switch k {
	case KindString:
		_, ok := stringValue(v)
		return ok
	case KindInt:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
	case KindFloat:
		switch t := v.(type) {
		case float64:
			return !math.IsNaN(t) && !math.IsInf(t, 0)
		case float32:
			return !math.IsNaN(float64(t)) && !math.IsInf(float64(t), 0)
		case decimal.Decimal,
			int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		}
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTime:
		_, ok := v.(time.Time)
		return ok
	case KindList:
		_, ok := listTokens(v)
		return ok
	case KindPairs:
		_, ok := dimensionPairs(v)
		return ok
	}
	return false
}

func blankString(v any) bool {
	s, ok := stringValue(v)
	return ok && strings.TrimSpace(s) == ""
}

// stringValue accepts string and any named string type (Unit, Statistic, ...).
func stringValue(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
