package cloudwatch

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
)

// Global client instance
var (
	globalClient *Client
	globalMutex  sync.RWMutex
)

// Init initializes the global client. Later calls are no-ops until Shutdown.
func Init(config Config) error {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalClient != nil {
		return nil
	}
	c, err := NewClient(config)
	if err != nil {
		return err
	}
	globalClient = c
	return nil
}

// Default returns the global client, or nil before Init.
func Default() *Client {
	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalClient
}

// Shutdown closes the global client
func Shutdown() {
	globalMutex.Lock()
	defer globalMutex.Unlock()

	if globalClient != nil {
		globalClient.Close()
		globalClient = nil
	}
}

func defaultClient() (*Client, error) {
	c := Default()
	if c == nil {
		return nil, eris.Wrap(ErrNotInitialized, "call Init first")
	}
	return c, nil
}

// ListMetrics calls ListMetrics on the global client
func ListMetrics(ctx context.Context) (*Response, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.ListMetrics(ctx)
}

// GetMetricStatistics calls GetMetricStatistics on the global client
func GetMetricStatistics(ctx context.Context, opts GetMetricStatisticsOptions) (*Response, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.GetMetricStatistics(ctx, opts)
}

// DeleteAlarms calls DeleteAlarms on the global client
func DeleteAlarms(ctx context.Context, opts DeleteAlarmsOptions) (*Response, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.DeleteAlarms(ctx, opts)
}

// PutMetricAlarm calls PutMetricAlarm on the global client
func PutMetricAlarm(ctx context.Context, opts PutMetricAlarmOptions) (*Response, error) {
	c, err := defaultClient()
	if err != nil {
		return nil, err
	}
	return c.PutMetricAlarm(ctx, opts)
}
