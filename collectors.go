package cloudwatch

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Collector defines a source of client metrics
type Collector interface {
	Collect() []Metric
	Name() string
}

// Metric represents a single metric data point
type Metric struct {
	Name       string
	Value      float64
	Labels     map[string]string
	MetricType MetricType
	Timestamp  time.Time
}

// MetricType represents the type of a metric
type MetricType int

const (
	Counter MetricType = iota
	Histogram
)

// LabeledCounterCollector provides labeled counter metrics
type LabeledCounterCollector struct {
	name   string
	values map[string]*labeledCounterValue
	mutex  sync.RWMutex
}

type labeledCounterValue struct {
	counter  atomic.Int64
	labelMap map[string]string
}

// NewLabeledCounterCollector creates a new labeled counter collector
func NewLabeledCounterCollector(name string) *LabeledCounterCollector {
	return &LabeledCounterCollector{
		name:   name,
		values: make(map[string]*labeledCounterValue),
	}
}

// Name implements Collector interface
func (c *LabeledCounterCollector) Name() string {
	return c.name
}

// Inc increments a labeled counter
// labels should be provided as [key1, value1, key2, value2, ...]
func (c *LabeledCounterCollector) Inc(metricName string, labels ...string) {
	key := formatKey(metricName, labels)
	c.mutex.RLock()
	entry, exists := c.values[key]
	c.mutex.RUnlock()

	if !exists {
		c.mutex.Lock()
		if entry, exists = c.values[key]; !exists {
			entry = &labeledCounterValue{labelMap: labelMap(labels)}
			c.values[key] = entry
		}
		c.mutex.Unlock()
	}

	entry.counter.Add(1)
}

// Get gets the current value of a labeled counter
func (c *LabeledCounterCollector) Get(metricName string, labels ...string) int64 {
	c.mutex.RLock()
	entry, exists := c.values[formatKey(metricName, labels)]
	c.mutex.RUnlock()

	if !exists {
		return 0
	}
	return entry.counter.Load()
}

// Collect implements Collector interface
func (c *LabeledCounterCollector) Collect() []Metric {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	metrics := make([]Metric, 0, len(c.values))
	for key, entry := range c.values {
		metrics = append(metrics, Metric{
			Name:       parseKey(key),
			Value:      float64(entry.counter.Load()),
			Labels:     entry.labelMap,
			MetricType: Counter,
			Timestamp:  now,
		})
	}
	return metrics
}

// DefaultLatencyBuckets are request duration bounds in seconds.
var DefaultLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// HistogramCollector provides labeled histogram metrics
type HistogramCollector struct {
	name       string
	buckets    []float64
	histograms map[string]*histogram
	mutex      sync.RWMutex
}

type histogram struct {
	labelMap map[string]string
	counts   []atomic.Int64 // one per bucket plus +Inf
	count    atomic.Int64
	sum      float64
	mutex    sync.Mutex
}

// NewHistogramCollector creates a histogram collector sharing one bucket layout
func NewHistogramCollector(name string, buckets []float64) *HistogramCollector {
	if len(buckets) == 0 {
		buckets = DefaultLatencyBuckets
	}
	bs := append([]float64(nil), buckets...)
	sort.Float64s(bs)
	return &HistogramCollector{
		name:       name,
		buckets:    bs,
		histograms: make(map[string]*histogram),
	}
}

// Name implements Collector interface
func (h *HistogramCollector) Name() string {
	return h.name
}

// Observe records a value in a labeled histogram
func (h *HistogramCollector) Observe(metricName string, value float64, labels ...string) {
	key := formatKey(metricName, labels)
	h.mutex.RLock()
	hist, exists := h.histograms[key]
	h.mutex.RUnlock()

	if !exists {
		h.mutex.Lock()
		if hist, exists = h.histograms[key]; !exists {
			hist = &histogram{
				labelMap: labelMap(labels),
				counts:   make([]atomic.Int64, len(h.buckets)+1),
			}
			h.histograms[key] = hist
		}
		h.mutex.Unlock()
	}

	hist.mutex.Lock()
	hist.sum += value
	hist.mutex.Unlock()
	hist.count.Add(1)

	i := 0
	for i < len(h.buckets) && value > h.buckets[i] {
		i++
	}
	hist.counts[i].Add(1)
}

// Count returns the number of observations of a labeled histogram
func (h *HistogramCollector) Count(metricName string, labels ...string) int64 {
	h.mutex.RLock()
	hist, exists := h.histograms[formatKey(metricName, labels)]
	h.mutex.RUnlock()
	if !exists {
		return 0
	}
	return hist.count.Load()
}

// Collect implements Collector interface
func (h *HistogramCollector) Collect() []Metric {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	now := time.Now()
	var metrics []Metric

	for key, hist := range h.histograms {
		name := parseKey(key)

		hist.mutex.Lock()
		sum := hist.sum
		hist.mutex.Unlock()

		metrics = append(metrics,
			Metric{Name: name + "_sum", Value: sum, Labels: hist.labelMap, MetricType: Histogram, Timestamp: now},
			Metric{Name: name + "_count", Value: float64(hist.count.Load()), Labels: hist.labelMap, MetricType: Histogram, Timestamp: now},
		)

		cumulative := int64(0)
		for i := range hist.counts {
			cumulative += hist.counts[i].Load()

			le := "+Inf"
			if i < len(h.buckets) {
				le = formatBucketLabel(h.buckets[i])
			}
			labels := make(map[string]string, len(hist.labelMap)+1)
			for k, v := range hist.labelMap {
				labels[k] = v
			}
			labels["le"] = le

			metrics = append(metrics, Metric{
				Name:       name + "_bucket",
				Value:      float64(cumulative),
				Labels:     labels,
				MetricType: Histogram,
				Timestamp:  now,
			})
		}
	}

	return metrics
}

// Instrumentation records what a Client does.
type Instrumentation struct {
	Requests  *LabeledCounterCollector
	Durations *HistogramCollector
}

const (
	metricRequests           = "requests_total"
	metricValidationFailures = "validation_failures_total"
	metricRequestDuration    = "request_duration_seconds"
)

// NewInstrumentation creates empty request counters and latency histograms.
func NewInstrumentation() *Instrumentation {
	return &Instrumentation{
		Requests:  NewLabeledCounterCollector("requests"),
		Durations: NewHistogramCollector("durations", DefaultLatencyBuckets),
	}
}

// Collectors lists the collectors to export.
func (in *Instrumentation) Collectors() []Collector {
	return []Collector{in.Requests, in.Durations}
}

// Metrics gathers the current value of every collector.
func (in *Instrumentation) Metrics() []Metric {
	var metrics []Metric
	for _, c := range in.Collectors() {
		metrics = append(metrics, c.Collect()...)
	}
	return metrics
}

func (in *Instrumentation) observeRequest(operation string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	in.Requests.Inc(metricRequests, "operation", operation, "outcome", outcome)
	in.Durations.Observe(metricRequestDuration, d.Seconds(), "operation", operation)
}

func (in *Instrumentation) observeValidationFailure(operation, rule string) {
	in.Requests.Inc(metricValidationFailures, "operation", operation, "rule", rule)
}

// RequestCount returns requests_total for an operation and outcome ("success" or "error").
func (in *Instrumentation) RequestCount(operation, outcome string) int64 {
	return in.Requests.Get(metricRequests, "operation", operation, "outcome", outcome)
}

// ValidationFailureCount returns validation_failures_total for an operation and rule.
func (in *Instrumentation) ValidationFailureCount(operation, rule string) int64 {
	return in.Requests.Get(metricValidationFailures, "operation", operation, "rule", rule)
}

// Helper functions

// formatKey combines metric name and labels into a key
func formatKey(metricName string, labels []string) string {
	return metricName + "|" + strings.Join(labels, "|")
}

// parseKey returns the metric name part of a key
func parseKey(key string) string {
	name, _, _ := strings.Cut(key, "|")
	return name
}

func labelMap(labels []string) map[string]string {
	m := make(map[string]string, len(labels)/2)
	for i := 0; i+1 < len(labels); i += 2 {
		m[labels[i]] = labels[i+1]
	}
	return m
}

// formatBucketLabel formats bucket label
func formatBucketLabel(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
