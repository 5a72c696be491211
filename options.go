package cloudwatch

import (
	"time"

	"github.com/samber/mo"
)

// OptionSet holds caller options keyed by wire field name.
//
// Accepted value types per field kind:
//   - string fields: string or a named string type (Unit, Statistic, ...)
//   - integer fields: any Go integer type
//   - number fields: any Go numeric type or decimal.Decimal
//   - timestamp fields: time.Time
//   - list fields: a comma-separated string or a slice of strings
//   - key=value fields: a "k=v,k2=v2" string, []string of "k=v", Dimension or []Dimension
type OptionSet map[string]any

func (s OptionSet) putIf(name string, v any, present bool) {
	if present {
		s[name] = v
	}
}

// ListMetricsOptions takes no parameters.
type ListMetricsOptions struct{}

func (o ListMetricsOptions) OptionSet() OptionSet {
	return OptionSet{}
}

// GetMetricStatisticsOptions selects datapoints of one measure over a time window.
type GetMetricStatisticsOptions struct {
	// CustomUnit is reserved by the service.
	CustomUnit string
	// Dimensions filter the returned datapoints.
	Dimensions []Dimension
	// StartTime is the inclusive lower bound; it must be before EndTime.
	StartTime time.Time
	EndTime   time.Time
	// MeasureName is the measure to query, e.g. "CPUUtilization".
	MeasureName string
	// Namespace defaults to AWS/EC2.
	Namespace string
	// Period is the datapoint granularity in seconds, a multiple of 60. Defaults to 60.
	Period int
	// Statistics to return, at least one.
	Statistics []Statistic
	Unit       Unit
}

func (o GetMetricStatisticsOptions) OptionSet() OptionSet {
	set := OptionSet{
		"EndTime":     o.EndTime,
		"MeasureName": o.MeasureName,
		"StartTime":   o.StartTime,
		"Statistics":  o.Statistics,
	}
	set.putIf("CustomUnit", o.CustomUnit, o.CustomUnit != "")
	set.putIf("Dimensions", o.Dimensions, len(o.Dimensions) > 0)
	set.putIf("Namespace", o.Namespace, o.Namespace != "")
	set.putIf("Period", o.Period, o.Period != 0)
	set.putIf("Unit", o.Unit, o.Unit != "")
	return set
}

// LastDay returns options covering the 24 hours before now.
func LastDay(measure string, now time.Time, statistics ...Statistic) GetMetricStatisticsOptions {
	return GetMetricStatisticsOptions{
		MeasureName: measure,
		StartTime:   now.Add(-24 * time.Hour),
		EndTime:     now,
		Statistics:  statistics,
	}
}

// DeleteAlarmsOptions names the alarms to delete. Either all are deleted or none.
type DeleteAlarmsOptions struct {
	AlarmNames []string
}

func (o DeleteAlarmsOptions) OptionSet() OptionSet {
	return OptionSet{"AlarmNames": o.AlarmNames}
}

// PutMetricAlarmOptions creates or updates an alarm on a metric.
type PutMetricAlarmOptions struct {
	AlarmName          string
	AlarmDescription   mo.Option[string]
	ComparisonOperator ComparisonOperator
	EvaluationPeriods  int
	MetricName         string
	Namespace          string
	Period             int
	Statistic          Statistic
	// Threshold is always sent; zero is a valid threshold.
	Threshold  float64
	Unit       Unit
	Dimensions []Dimension

	ActionsEnabled          mo.Option[bool]
	Force                   mo.Option[bool]
	AlarmActions            []string
	InsufficientDataActions []string
	OKActions               []string
}

func (o PutMetricAlarmOptions) OptionSet() OptionSet {
	set := OptionSet{
		"AlarmName":          o.AlarmName,
		"ComparisonOperator": o.ComparisonOperator,
		"MetricName":         o.MetricName,
		"Namespace":          o.Namespace,
		"Statistic":          o.Statistic,
		"Threshold":          o.Threshold,
	}
	set.putIf("EvaluationPeriods", o.EvaluationPeriods, o.EvaluationPeriods != 0)
	set.putIf("Period", o.Period, o.Period != 0)
	set.putIf("Unit", o.Unit, o.Unit != "")
	set.putIf("Dimensions", o.Dimensions, len(o.Dimensions) > 0)
	set.putIf("AlarmActions", o.AlarmActions, o.AlarmActions != nil)
	set.putIf("InsufficientDataActions", o.InsufficientDataActions, o.InsufficientDataActions != nil)
	set.putIf("OKActions", o.OKActions, o.OKActions != nil)
	if v, ok := o.AlarmDescription.Get(); ok {
		set["AlarmDescription"] = v
	}
	if v, ok := o.ActionsEnabled.Get(); ok {
		set["ActionsEnabled"] = v
	}
	if v, ok := o.Force.Get(); ok {
		set["Force"] = v
	}
	return set
}
