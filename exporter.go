package cloudwatch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/eryajf/promwrite"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Exporter periodically pushes client instrumentation to a Prometheus remote write endpoint.
type Exporter struct {
	namespace string
	interval  time.Duration
	source    *Instrumentation
	client    *promwrite.Client
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewExporter creates an exporter for source. It does not start pushing until Start.
func NewExporter(config Config, source *Instrumentation) (*Exporter, error) {
	if config.MetricsRemoteWriteURL == "" {
		return nil, fmt.Errorf("remote write URL cannot be empty")
	}
	config = config.withDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	return &Exporter{
		namespace: config.MetricsNamespace,
		interval:  config.MetricsInterval,
		source:    source,
		client:    promwrite.NewClient(config.MetricsRemoteWriteURL),
		logger:    config.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Start launches the periodic write loop
func (e *Exporter) Start() {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := e.Write(e.ctx); err != nil {
					e.logger.Error("Failed to write client metrics", zap.Error(err))
				}
			case <-e.ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the write loop and waits for it to exit
func (e *Exporter) Stop() {
	e.cancel()
	e.wg.Wait()
}

// Write immediately sends every current metric
func (e *Exporter) Write(ctx context.Context) error {
	metrics := e.source.Metrics()
	if len(metrics) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req := &promwrite.WriteRequest{TimeSeries: e.convertToTimeSeries(metrics)}
	if _, err := e.client.Write(ctx, req); err != nil {
		return eris.Wrap(err, "writing time series failed")
	}
	return nil
}

// convertToTimeSeries converts client metrics to promwrite time series format
func (e *Exporter) convertToTimeSeries(metrics []Metric) []promwrite.TimeSeries {
	result := make([]promwrite.TimeSeries, 0, len(metrics))

	for _, metric := range metrics {
		labels := make([]promwrite.Label, 0, 1+len(metric.Labels))
		labels = append(labels, promwrite.Label{Name: "__name__", Value: e.namespace + "_" + metric.Name})

		names := make([]string, 0, len(metric.Labels))
		for k := range metric.Labels {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			labels = append(labels, promwrite.Label{Name: k, Value: metric.Labels[k]})
		}

		result = append(result, promwrite.TimeSeries{
			Labels: labels,
			Sample: promwrite.Sample{
				Time:  metric.Timestamp,
				Value: metric.Value,
			},
		})
	}

	return result
}
