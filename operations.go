package cloudwatch

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Shape is how a field is laid out on the wire.
type Shape int

const (
	// ShapeScalar emits a single Name=value pair.
	ShapeScalar Shape = iota
	// ShapeCSVList emits Name.member.N for every list token.
	ShapeCSVList
	// ShapeKVList emits Name.member.N.Name and Name.member.N.Value for every pair.
	ShapeKVList
)

// Kind is the value type a field accepts.
type Kind int

const (
	KindString Kind = iota // string or named string type
	KindInt                // any integer type
	KindFloat              // finite float, decimal.Decimal or integer
	KindBool               // bool
	KindTime               // time.Time
	KindList               // comma-separated string or string slice
	KindPairs              // key=value string, []string or Dimension values
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "timestamp"
	case KindList:
		return "list"
	case KindPairs:
		return "key=value list"
	}
	return "unknown"
}

// FieldSpec describes one wire field of an operation.
type FieldSpec struct {
	Name     string
	Shape    Shape
	Kind     Kind
	Required bool
	// Default is used when an optional field is absent. nil means no default.
	Default any
	// Enum restricts the value (every token, for lists). nil means unrestricted.
	Enum mapset.Set[string]
}

// TimeRange names a start/end pair that must be strictly ordered.
type TimeRange struct {
	Start string
	End   string
}

// OperationSpec is the static field contract of one remote operation.
type OperationSpec struct {
	Name      string
	Fields    []FieldSpec
	TimeRange *TimeRange
}

// Field returns the named field spec.
func (s *OperationSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Operation names, used verbatim as the Action parameter.
const (
	OpListMetrics         = "ListMetrics"
	OpGetMetricStatistics = "GetMetricStatistics"
	OpDeleteAlarms        = "DeleteAlarms"
	OpPutMetricAlarm      = "PutMetricAlarm"
)

// Default values for GetMetricStatistics.
const (
	DefaultNamespace = "AWS/EC2"
	DefaultPeriod    = 60
)

var operations = map[string]*OperationSpec{
	OpListMetrics: {
		Name: OpListMetrics,
	},
	OpGetMetricStatistics: {
		Name: OpGetMetricStatistics,
		Fields: []FieldSpec{
			{Name: "CustomUnit", Kind: KindString},
			{Name: "Dimensions", Shape: ShapeKVList, Kind: KindPairs},
			{Name: "EndTime", Kind: KindTime, Required: true},
			{Name: "MeasureName", Kind: KindString, Required: true},
			{Name: "Namespace", Kind: KindString, Default: DefaultNamespace},
			{Name: "Period", Kind: KindInt, Default: DefaultPeriod},
			{Name: "StartTime", Kind: KindTime, Required: true},
			{Name: "Statistics", Shape: ShapeCSVList, Kind: KindList, Required: true, Enum: statisticValues},
			{Name: "Unit", Kind: KindString, Enum: unitValues},
		},
		TimeRange: &TimeRange{Start: "StartTime", End: "EndTime"},
	},
	OpDeleteAlarms: {
		Name: OpDeleteAlarms,
		Fields: []FieldSpec{
			{Name: "AlarmNames", Shape: ShapeCSVList, Kind: KindList, Required: true},
		},
	},
	OpPutMetricAlarm: {
		Name: OpPutMetricAlarm,
		Fields: []FieldSpec{
			{Name: "ActionsEnabled", Kind: KindBool},
			{Name: "AlarmActions", Shape: ShapeCSVList, Kind: KindList},
			{Name: "AlarmDescription", Kind: KindString},
			{Name: "AlarmName", Kind: KindString, Required: true},
			{Name: "ComparisonOperator", Kind: KindString, Required: true, Enum: comparisonOperatorValues},
			{Name: "Dimensions", Shape: ShapeKVList, Kind: KindPairs},
			{Name: "EvaluationPeriods", Kind: KindInt, Required: true},
			{Name: "Force", Kind: KindBool},
			{Name: "InsufficientDataActions", Shape: ShapeCSVList, Kind: KindList},
			{Name: "MetricName", Kind: KindString, Required: true},
			{Name: "Namespace", Kind: KindString, Required: true},
			{Name: "OKActions", Shape: ShapeCSVList, Kind: KindList},
			{Name: "Period", Kind: KindInt, Required: true},
			{Name: "Statistic", Kind: KindString, Required: true, Enum: statisticValues},
			{Name: "Threshold", Kind: KindFloat, Required: true},
			{Name: "Unit", Kind: KindString, Enum: unitValues},
		},
	},
}

// Lookup returns the spec for a named operation.
func Lookup(name string) (*OperationSpec, bool) {
	spec, ok := operations[name]
	return spec, ok
}

// Operations lists the supported operation names.
func Operations() []string {
	return []string{OpListMetrics, OpGetMetricStatistics, OpDeleteAlarms, OpPutMetricAlarm}
}
