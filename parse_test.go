package cloudwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ,c ", []string{"a", "b", "c"}},
		{"Average", []string{"Average"}},
		{"a,,b,", []string{"a", "b"}},
		{"a,a", []string{"a", "a"}},
		{"", []string{}},
		{" , ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in))
		})
	}
}

func TestParseDimension(t *testing.T) {
	assert.Equal(t, Dimension{Name: "InstanceId", Value: "i-1234"}, ParseDimension("InstanceId=i-1234"))
	assert.Equal(t, Dimension{Name: "InstanceId", Value: "i-1234"}, ParseDimension(" InstanceId = i-1234 "))
}

func TestParseDimension_SplitsOnFirstSeparator(t *testing.T) {
	assert.Equal(t, Dimension{Name: "Query", Value: "a=b"}, ParseDimension("Query=a=b"))
}

// An entry without '=' is accepted and yields an empty value instead of an error.
func TestParseDimension_MissingSeparatorYieldsEmptyValue(t *testing.T) {
	assert.Equal(t, Dimension{Name: "InstanceId", Value: ""}, ParseDimension("InstanceId"))
	assert.Equal(t, Dimension{Name: "", Value: ""}, ParseDimension(""))
}

func TestParseDimension_EmptyValue(t *testing.T) {
	assert.Equal(t, Dimension{Name: "InstanceId", Value: ""}, ParseDimension("InstanceId="))
}

func TestParseDimensions(t *testing.T) {
	dims := ParseDimensions("InstanceId=i-1,AutoScalingGroupName=web", "ImageId=ami-1")
	assert.Equal(t, []Dimension{
		{Name: "InstanceId", Value: "i-1"},
		{Name: "AutoScalingGroupName", Value: "web"},
		{Name: "ImageId", Value: "ami-1"},
	}, dims)

	assert.Empty(t, ParseDimensions())
	assert.Empty(t, ParseDimensions(""))
}

func TestDimensionString(t *testing.T) {
	d := Dimension{Name: "InstanceId", Value: "i-1"}
	assert.Equal(t, "InstanceId=i-1", d.String())
	assert.Equal(t, d, ParseDimension(d.String()))
}

func TestListTokens(t *testing.T) {
	tokens, ok := listTokens("a, b,c")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, tokens)

	tokens, ok = listTokens([]string{" a ", "b,c", ""})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b,c"}, tokens)

	tokens, ok = listTokens([]Statistic{Average, Sum})
	assert.True(t, ok)
	assert.Equal(t, []string{"Average", "Sum"}, tokens)

	_, ok = listTokens(42)
	assert.False(t, ok)
	_, ok = listTokens([]int{1})
	assert.False(t, ok)
}

func TestDimensionPairs(t *testing.T) {
	want := []Dimension{{Name: "A", Value: "1"}, {Name: "B", Value: "2"}}

	for _, in := range []any{
		"A=1,B=2",
		[]string{"A=1", "B=2"},
		want,
	} {
		dims, ok := dimensionPairs(in)
		assert.True(t, ok)
		assert.Equal(t, want, dims)
	}

	dims, ok := dimensionPairs(Dimension{Name: "A", Value: "1"})
	assert.True(t, ok)
	assert.Equal(t, want[:1], dims)

	_, ok = dimensionPairs(map[string]string{"A": "1"})
	assert.False(t, ok)
}

func TestDimensionPairs_SliceElementIsOnePair(t *testing.T) {
	dims, ok := dimensionPairs([]string{"Tag=a,b", " ", "InstanceId=i-1"})
	assert.True(t, ok)
	assert.Equal(t, []Dimension{
		{Name: "Tag", Value: "a,b"},
		{Name: "InstanceId", Value: "i-1"},
	}, dims)
}
