package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/skywalker-go/internal/core/domain"
)

// DefaultTimeout bounds every request made through the default transport.
const DefaultTimeout = 30 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPTransport returns the default transport with the given timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPTransport(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewTLSTransport is NewHTTPTransport verifying HTTPS servers with cfg.
func NewTLSTransport(timeout time.Duration, cfg *tls.Config) *http.Client {
	c := NewHTTPTransport(timeout)
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = cfg
	c.Transport = t
	return c
}

// NormalizeServerURL adds an http:// scheme when none is given and drops
// trailing slashes.
func NormalizeServerURL(server string) string {
	s := strings.TrimSpace(server)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "http://" + s
	}
	return strings.TrimRight(s, "/")
}

// request describes one API call.
type request struct {
	op     string
	method string
	url    string
	body   any
	token  *domain.Token
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// roundTrip performs req and returns the response body of a 2xx response.
func (f *Facade) roundTrip(ctx context.Context, req request) ([]byte, int, error) {
	var bodyReader io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	f.addHeaders(httpReq, req)

	resp, err := f.transport.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, resp.StatusCode, &DecodeError{What: fmt.Sprintf("response body larger than %d bytes", maxBodySize)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
		}
	}
	return body, resp.StatusCode, nil
}

// addHeaders adds authentication and common headers.
func (f *Facade) addHeaders(httpReq *http.Request, req request) {
	if req.token != nil {
		httpReq.Header.Set("Authorization", req.token.BearerHeader())
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", f.userAgent)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
