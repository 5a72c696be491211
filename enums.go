package cloudwatch

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Statistic is an aggregation applied to metric datapoints.
type Statistic string

const (
	SampleCount Statistic = "SampleCount"
	Average     Statistic = "Average"
	Sum         Statistic = "Sum"
	Minimum     Statistic = "Minimum"
	Maximum     Statistic = "Maximum"
)

// ComparisonOperator compares a statistic against an alarm threshold.
type ComparisonOperator string

const (
	GreaterThanOrEqualToThreshold ComparisonOperator = "GreaterThanOrEqualToThreshold"
	GreaterThanThreshold          ComparisonOperator = "GreaterThanThreshold"
	LessThanThreshold             ComparisonOperator = "LessThanThreshold"
	LessThanOrEqualToThreshold    ComparisonOperator = "LessThanOrEqualToThreshold"
)

// Unit is the standard unit of a measure.
type Unit string

const (
	UnitSeconds         Unit = "Seconds"
	UnitMicroseconds    Unit = "Microseconds"
	UnitMilliseconds    Unit = "Milliseconds"
	UnitBytes           Unit = "Bytes"
	UnitKilobytes       Unit = "Kilobytes"
	UnitMegabytes       Unit = "Megabytes"
	UnitGigabytes       Unit = "Gigabytes"
	UnitTerabytes       Unit = "Terabytes"
	UnitBits            Unit = "Bits"
	UnitKilobits        Unit = "Kilobits"
	UnitMegabits        Unit = "Megabits"
	UnitGigabits        Unit = "Gigabits"
	UnitTerabits        Unit = "Terabits"
	UnitPercent         Unit = "Percent"
	UnitCount           Unit = "Count"
	UnitBytesSecond     Unit = "Bytes/Second"
	UnitKilobytesSecond Unit = "Kilobytes/Second"
	UnitMegabytesSecond Unit = "Megabytes/Second"
	UnitGigabytesSecond Unit = "Gigabytes/Second"
	UnitTerabytesSecond Unit = "Terabytes/Second"
	UnitBitsSecond      Unit = "Bits/Second"
	UnitKilobitsSecond  Unit = "Kilobits/Second"
	UnitMegabitsSecond  Unit = "Megabits/Second"
	UnitGigabitsSecond  Unit = "Gigabits/Second"
	UnitTerabitsSecond  Unit = "Terabits/Second"
	UnitCountSecond     Unit = "Count/Second"
	UnitNone            Unit = "None"
)

var (
	statisticValues = mapset.NewSet[string](
		string(SampleCount), string(Average), string(Sum), string(Minimum), string(Maximum),
	)

	comparisonOperatorValues = mapset.NewSet[string](
		string(GreaterThanOrEqualToThreshold), string(GreaterThanThreshold),
		string(LessThanThreshold), string(LessThanOrEqualToThreshold),
	)

	unitValues = mapset.NewSet[string](
		string(UnitSeconds), string(UnitMicroseconds), string(UnitMilliseconds),
		string(UnitBytes), string(UnitKilobytes), string(UnitMegabytes), string(UnitGigabytes), string(UnitTerabytes),
		string(UnitBits), string(UnitKilobits), string(UnitMegabits), string(UnitGigabits), string(UnitTerabits),
		string(UnitPercent), string(UnitCount),
		string(UnitBytesSecond), string(UnitKilobytesSecond), string(UnitMegabytesSecond),
		string(UnitGigabytesSecond), string(UnitTerabytesSecond),
		string(UnitBitsSecond), string(UnitKilobitsSecond), string(UnitMegabitsSecond),
		string(UnitGigabitsSecond), string(UnitTerabitsSecond),
		string(UnitCountSecond), string(UnitNone),
	)
)

// sortedValues returns the members of an allowed set in a stable order for error messages.
func sortedValues(s mapset.Set[string]) []string {
	values := s.ToSlice()
	sort.Strings(values)
	return values
}
