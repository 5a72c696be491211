package cloudwatch

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Client validates, encodes and sends monitoring operations. It is safe for concurrent use.
type Client struct {
	config          Config
	transport       Transport
	instrumentation *Instrumentation
	exporter        *Exporter
	logger          *zap.Logger
}

// NewClient creates a client. When MetricsRemoteWriteURL is set, instrumentation is
// pushed until Close.
func NewClient(config Config) (*Client, error) {
	config = config.withDefaults()

	transport := config.Transport
	if transport == nil {
		transport = NewHTTPTransport(config)
	}

	c := &Client{
		config:          config,
		transport:       transport,
		instrumentation: NewInstrumentation(),
		logger:          config.Logger,
	}

	if config.MetricsRemoteWriteURL != "" {
		exp, err := NewExporter(config, c.instrumentation)
		if err != nil {
			return nil, err
		}
		c.exporter = exp
		c.exporter.Start()
	}

	c.logger.Info("cloudwatch client initialized",
		zap.String("endpoint", config.Endpoint),
		zap.String("version", config.APIVersion),
		zap.Bool("metrics_export", c.exporter != nil))
	return c, nil
}

// Instrumentation exposes the client's request metrics.
func (c *Client) Instrumentation() *Instrumentation {
	return c.instrumentation
}

// Close stops metric export.
func (c *Client) Close() {
	if c.exporter != nil {
		c.exporter.Stop()
	}
}

// ListMetrics lists the metrics available to the account.
func (c *Client) ListMetrics(ctx context.Context) (*Response, error) {
	return c.Call(ctx, OpListMetrics, ListMetricsOptions{}.OptionSet())
}

// GetMetricStatistics fetches datapoints of one measure.
func (c *Client) GetMetricStatistics(ctx context.Context, opts GetMetricStatisticsOptions) (*Response, error) {
	return c.Call(ctx, OpGetMetricStatistics, opts.OptionSet())
}

// DeleteAlarms deletes the named alarms.
func (c *Client) DeleteAlarms(ctx context.Context, opts DeleteAlarmsOptions) (*Response, error) {
	return c.Call(ctx, OpDeleteAlarms, opts.OptionSet())
}

// PutMetricAlarm creates or updates an alarm.
func (c *Client) PutMetricAlarm(ctx context.Context, opts PutMetricAlarmOptions) (*Response, error) {
	return c.Call(ctx, OpPutMetricAlarm, opts.OptionSet())
}

// Call runs a named operation. Nothing is sent when opts fail validation; the
// returned error is then a *ValidationError.
func (c *Client) Call(ctx context.Context, operation string, opts OptionSet) (*Response, error) {
	spec, ok := Lookup(operation)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownOperation, "%q", operation)
	}

	params, err := Prepare(spec, opts)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.instrumentation.observeValidationFailure(operation, verr.RuleName())
			c.logger.Debug("validation failed",
				zap.String("operation", operation),
				zap.String("rule", verr.RuleName()),
				zap.String("field", verr.Field))
		}
		return nil, err
	}
	params.Set("Action", spec.Name)
	params.Set("Version", c.config.APIVersion)

	start := time.Now()
	resp, err := c.transport.Send(ctx, spec.Name, params)
	elapsed := time.Since(start)
	c.instrumentation.observeRequest(operation, elapsed, err)

	if err != nil {
		c.logger.Debug("request failed",
			zap.String("operation", operation),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("request sent",
		zap.String("operation", operation),
		zap.Int("params", params.Len()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", elapsed))
	return resp, nil
}
