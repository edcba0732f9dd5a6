// Package zai is the HTTP client for the chat.z.ai completion endpoint.
package zai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/model"
)

const (
	completionsPath = "/api/chat/completions"
	maxErrorBody    = 4 << 10
)

// Client talks to the upstream completion endpoint.
type Client interface {
	// Stream opens a streaming completion. The caller must close the body.
	Stream(ctx context.Context, token string, req *model.UpstreamRequest) (io.ReadCloser, error)
	// Complete performs a non-streaming completion and returns the whole body.
	Complete(ctx context.Context, token string, req *model.UpstreamRequest) ([]byte, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Headers http.Header
}

type client struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	headers http.Header
}

// NewClient builds a Client. Timeout bounds the wait for response headers
// on streams and the whole exchange on non-streaming calls.
func NewClient(opts Options) Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: opts.Timeout,
	}
	headers := opts.Headers
	if headers == nil {
		headers = http.Header{}
	}
	return &client{
		http:    &http.Client{Transport: transport},
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		headers: headers.Clone(),
	}
}

func (c *client) Stream(ctx context.Context, token string, req *model.UpstreamRequest) (io.ReadCloser, error) {
	req.Stream = true
	resp, err := c.do(ctx, token, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *client) Complete(ctx context.Context, token string, req *model.UpstreamRequest) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req.Stream = false
	resp, err := c.do(ctx, token, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response body: %v", app_errors.ErrUpstreamTransport, err)
	}
	return body, nil
}

// do sends the request and returns a 2xx response. Any other status is
// turned into an error and the body is closed.
func (c *client) do(ctx context.Context, token string, req *model.UpstreamRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header = withToken(c.headers, token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrUpstreamTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", app_errors.ErrUpstreamStatus, resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}
	return resp, nil
}
