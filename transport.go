package cloudwatch

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Response is the undecoded reply to one operation.
type Response struct {
	Action     string
	StatusCode int
	Body       []byte
}

// Transport sends an encoded operation to the service.
type Transport interface {
	Send(ctx context.Context, action string, params *ParameterMap) (*Response, error)
}

// HTTPTransport posts parameters as a form-encoded body.
type HTTPTransport struct {
	endpoint string
	signer   Signer
	client   *http.Client
	logger   *zap.Logger
}

const maxErrorBody = 512

// NewHTTPTransport creates a transport for config.Endpoint. When DNSEnable is set,
// the endpoint host is resolved through a Resolver.
func NewHTTPTransport(config Config) *HTTPTransport {
	config = config.withDefaults()

	rt := http.DefaultTransport.(*http.Transport).Clone()
	if config.DNSEnable {
		// a proxy would bypass the resolver
		rt.Proxy = nil
		rt.DialContext = NewResolver(config).DialContext
	}

	return &HTTPTransport{
		endpoint: config.Endpoint,
		signer:   config.Signer,
		client:   &http.Client{Transport: rt, Timeout: config.RequestTimeout},
		logger:   config.Logger,
	}
}

// Send implements Transport. params must already carry Action and Version.
func (t *HTTPTransport) Send(ctx context.Context, action string, params *ParameterMap) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, eris.Wrapf(err, "building %s request", action)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	if t.signer != nil {
		if err := t.signer.Sign(req, params); err != nil {
			return nil, eris.Wrapf(err, "signing %s request", action)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "sending %s request", action)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "reading %s response", action)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(body)
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		t.logger.Debug("request rejected",
			zap.String("operation", action),
			zap.Int("status", resp.StatusCode))
		return nil, eris.Wrapf(ErrRequestFailed, "%s: status %d: %s", action, resp.StatusCode, excerpt)
	}

	return &Response{Action: action, StatusCode: resp.StatusCode, Body: body}, nil
}
