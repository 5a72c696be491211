package cloudwatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	action string
	params map[string]string
}

type recordingTransport struct {
	mutex sync.Mutex
	calls []recordedCall
	err   error
}

func (t *recordingTransport) Send(_ context.Context, action string, params *ParameterMap) (*Response, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.calls = append(t.calls, recordedCall{action: action, params: params.Map()})
	if t.err != nil {
		return nil, t.err
	}
	return &Response{Action: action, StatusCode: http.StatusOK, Body: []byte("<ok/>")}, nil
}

func (t *recordingTransport) Calls() []recordedCall {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]recordedCall(nil), t.calls...)
}

func newTestClient(t *testing.T, transport Transport) *Client {
	t.Helper()
	c, err := NewClient(Config{Transport: transport})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestClient_ListMetrics(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	resp, err := c.ListMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OpListMetrics, resp.Action)
	assert.Equal(t, []byte("<ok/>"), resp.Body)

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, OpListMetrics, calls[0].action)
	assert.Equal(t, map[string]string{
		"Action":  "ListMetrics",
		"Version": DefaultAPIVersion,
	}, calls[0].params)
	assert.Equal(t, int64(1), c.Instrumentation().RequestCount(OpListMetrics, "success"))
}

func TestClient_GetMetricStatistics(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	_, err := c.GetMetricStatistics(context.Background(), GetMetricStatisticsOptions{
		MeasureName: "CPUUtilization",
		StartTime:   testStart,
		EndTime:     testEnd,
		Statistics:  []Statistic{Average, Sum},
	})
	require.NoError(t, err)

	calls := tr.Calls()
	require.Len(t, calls, 1)
	p := calls[0].params
	assert.Equal(t, "GetMetricStatistics", p["Action"])
	assert.Equal(t, "Average", p["Statistics.member.1"])
	assert.Equal(t, "Sum", p["Statistics.member.2"])
	assert.Equal(t, "AWS/EC2", p["Namespace"])
}

func TestClient_ValidationFailureSendsNothing(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	_, err := c.GetMetricStatistics(context.Background(), GetMetricStatisticsOptions{
		MeasureName: "CPUUtilization",
		StartTime:   testEnd,
		EndTime:     testStart,
		Statistics:  []Statistic{Average},
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = c.DeleteAlarms(context.Background(), DeleteAlarmsOptions{AlarmNames: []string{}})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	assert.Empty(t, tr.Calls())
	in := c.Instrumentation()
	assert.Equal(t, int64(1), in.ValidationFailureCount(OpGetMetricStatistics, "range"))
	assert.Equal(t, int64(1), in.ValidationFailureCount(OpDeleteAlarms, "presence"))
	assert.Equal(t, int64(0), in.RequestCount(OpDeleteAlarms, "success"))
}

func TestClient_UnknownOperation(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	_, err := c.Call(context.Background(), "DescribeAlarms", OptionSet{})
	assert.True(t, eris.Is(err, ErrUnknownOperation))
	assert.Empty(t, tr.Calls())
}

func TestClient_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	tr := &recordingTransport{err: boom}
	c := newTestClient(t, tr)

	_, err := c.PutMetricAlarm(context.Background(), validAlarm())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, tr.Calls(), 1)
	assert.Equal(t, int64(1), c.Instrumentation().RequestCount(OpPutMetricAlarm, "error"))
	assert.Equal(t, int64(1), c.Instrumentation().Durations.Count(metricRequestDuration, "operation", OpPutMetricAlarm))
}

func TestClient_CallWithOptionSet(t *testing.T) {
	tr := &recordingTransport{}
	c := newTestClient(t, tr)

	opts := alarmOptions()
	opts["Dimensions"] = []string{"Name=Instance1"}
	_, err := c.Call(context.Background(), OpPutMetricAlarm, opts)
	require.NoError(t, err)

	p := tr.Calls()[0].params
	assert.Equal(t, "Name", p["Dimensions.member.1.Name"])
	assert.Equal(t, "Instance1", p["Dimensions.member.1.Value"])
	assert.Equal(t, "PutMetricAlarm", p["Action"])
}

func TestClient_CustomAPIVersion(t *testing.T) {
	tr := &recordingTransport{}
	c, err := NewClient(Config{Transport: tr, APIVersion: "2009-05-15"})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.ListMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2009-05-15", tr.Calls()[0].params["Version"])
}

func TestHTTPTransport(t *testing.T) {
	var (
		mutex  sync.Mutex
		form   url.Values
		header http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutex.Lock()
		defer mutex.Unlock()
		_ = r.ParseForm()
		form = r.PostForm
		header = r.Header.Clone()
		_, _ = w.Write([]byte("<DeleteAlarmsResponse/>"))
	}))
	defer srv.Close()

	signer := SignerFunc(func(req *http.Request, params *ParameterMap) error {
		action, _ := params.Get("Action")
		req.Header.Set("X-Signed-Action", action)
		return nil
	})
	c, err := NewClient(Config{Endpoint: srv.URL, Signer: signer})
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.DeleteAlarms(context.Background(), DeleteAlarmsOptions{AlarmNames: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<DeleteAlarmsResponse/>", string(resp.Body))

	mutex.Lock()
	defer mutex.Unlock()
	assert.Equal(t, "DeleteAlarms", form.Get("Action"))
	assert.Equal(t, DefaultAPIVersion, form.Get("Version"))
	assert.Equal(t, "a", form.Get("AlarmNames.member.1"))
	assert.Equal(t, "b", form.Get("AlarmNames.member.2"))
	assert.Equal(t, "DeleteAlarms", header.Get("X-Signed-Action"))
	assert.Contains(t, header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func TestHTTPTransport_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("<Error><Code>InvalidParameterValue</Code></Error>"))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(Config{Endpoint: srv.URL})
	params := NewParameterMap()
	params.Set("Action", OpListMetrics)

	_, err := tr.Send(context.Background(), OpListMetrics, params)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrRequestFailed))
	assert.Contains(t, err.Error(), "InvalidParameterValue")
}

func TestHTTPTransport_SignerError(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	signErr := errors.New("no credentials")
	tr := NewHTTPTransport(Config{
		Endpoint: srv.URL,
		Signer: SignerFunc(func(*http.Request, *ParameterMap) error {
			return signErr
		}),
	})
	_, err := tr.Send(context.Background(), OpListMetrics, NewParameterMap())
	assert.True(t, eris.Is(err, signErr))
	assert.False(t, called)
}

func TestHTTPTransport_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewHTTPTransport(Config{Endpoint: srv.URL})
	_, err := tr.Send(ctx, OpListMetrics, NewParameterMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}

func TestGlobalClient(t *testing.T) {
	Shutdown()
	_, err := ListMetrics(context.Background())
	assert.True(t, eris.Is(err, ErrNotInitialized))

	tr := &recordingTransport{}
	require.NoError(t, Init(Config{Transport: tr}))
	t.Cleanup(Shutdown)
	require.NoError(t, Init(Config{Transport: &recordingTransport{}}))
	require.NotNil(t, Default())

	_, err = ListMetrics(context.Background())
	require.NoError(t, err)
	_, err = DeleteAlarms(context.Background(), DeleteAlarmsOptions{AlarmNames: []string{"a"}})
	require.NoError(t, err)
	_, err = PutMetricAlarm(context.Background(), validAlarm())
	require.NoError(t, err)
	_, err = GetMetricStatistics(context.Background(), LastDay("CPUUtilization", testEnd, Average))
	require.NoError(t, err)
	assert.Len(t, tr.Calls(), 4)

	Shutdown()
	assert.Nil(t, Default())
	_, err = DeleteAlarms(context.Background(), DeleteAlarmsOptions{AlarmNames: []string{"a"}})
	assert.True(t, eris.Is(err, ErrNotInitialized))
}
