package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// HTTPClient posts weak domains to the recommendation endpoint. It makes
// exactly one attempt per call.
type HTTPClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates an HTTPClient for cfg.
func NewClient(cfg Config, observer Observer) *HTTPClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &HTTPClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Endpoint returns the URL requests are sent to.
func (c *HTTPClient) Endpoint() string { return c.cfg.Endpoint }

// request is the JSON body sent to the endpoint.
type request struct {
	Domains []string `json:"domains"`
}

// Recommend sends domains and returns the recommendations from the reply.
// Order and duplicates in domains are preserved on the wire.
func (c *HTTPClient) Recommend(ctx context.Context, domains []string) ([]string, error) {
	start := time.Now()
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	if domains == nil {
		domains = []string{}
	}
	recs, status, err := c.doRequest(ctx, request{Domains: domains})

	event := CallEvent{
		Domains:    len(domains),
		StatusCode: status,
		Latency:    time.Since(start),
		Success:    err == nil,
	}
	if err != nil {
		err = classify(ctx, err)
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(event)

	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, body request) ([]string, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrBadStatus, httpResp.StatusCode, truncate(respBody, 200))
	}

	recs, err := DecodeRecommendations(respBody)
	if err != nil {
		return nil, httpResp.StatusCode, err
	}
	return recs, httpResp.StatusCode, nil
}

// DecodeRecommendations accepts {"recommendations": [...]} or a bare array
// of strings, preferring the named field. Any other valid JSON value, or an
// object without the field, yields an empty list. A recommendations field
// that is not a string array is invalid.
func DecodeRecommendations(body []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrInvalidResponse)
	}

	switch trimmed[0] {
	case '{':
		var envelope struct {
			Recommendations json.RawMessage `json:"recommendations"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		if len(envelope.Recommendations) == 0 || string(envelope.Recommendations) == "null" {
			return []string{}, nil
		}
		return decodeList(envelope.Recommendations)
	case '[':
		return decodeList(trimmed)
	default:
		return []string{}, nil
	}
}

func decodeList(raw []byte) ([]string, error) {
	var recs []string
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: recommendations must be a list of strings: %v", ErrInvalidResponse, err)
	}
	if recs == nil {
		recs = []string{}
	}
	return recs, nil
}

// classify wraps err so that it always matches ErrFetchFailed and, where
// known, a more specific cause.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrBadStatus), errors.Is(err, ErrInvalidResponse):
		return fmt.Errorf("%w: %w", ErrFetchFailed, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w: %v", ErrFetchFailed, ErrTimeout, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %w: %v", ErrFetchFailed, ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadStatus):
		return "BAD_STATUS"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
