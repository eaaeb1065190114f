package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
)

// Recorder receives one event per completed API call.
// store.EventRepo satisfies it.
type Recorder interface {
	AppendRequest(ctx context.Context, data store.RequestEventData) error
}

// Client is the gateway to the learning API. It attaches the bearer token,
// maps HTTP outcomes to typed errors and never retries.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	recorder Recorder

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the transport timeout for a single exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for per-request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRecorder records every request, for example into the local store.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetToken replaces the bearer token. An empty token means anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes a single exchange.
type call struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	anonymous   bool // never send the token, 401 is a plain rejection
	schema      *Schema
	out         any
}

// Do performs a JSON request. body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	cl := call{method: method, path: path, out: out}
	if body != nil {
		if err := cl.setJSON(body); err != nil {
			return err
		}
	}
	return c.do(ctx, cl)
}

func (cl *call) setJSON(body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	cl.body = bytes.NewReader(b)
	cl.contentType = "application/json"
	return nil
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	requestID := uuid.NewString()

	status, err := c.exchange(ctx, cl, requestID)

	latency := time.Since(start)
	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("activity", ActivityFrom(ctx)),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
	}
	if err != nil {
		c.logger.Warn("api request failed", append(fields, zap.Error(err))...)
	} else {
		c.logger.Debug("api request", fields...)
	}

	if c.recorder != nil {
		data := store.RequestEventData{
			RequestID: requestID,
			Activity:  ActivityFrom(ctx),
			Method:    cl.method,
			Path:      cl.path,
			Status:    status,
			LatencyMs: latency.Milliseconds(),
			Success:   err == nil,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		// The log is informational; it never fails the request.
		if recErr := c.recorder.AppendRequest(context.WithoutCancel(ctx), data); recErr != nil {
			c.logger.Warn("record request event", zap.Error(recErr))
		}
	}

	return err
}

// exchange sends the request and decodes the response. It returns the HTTP
// status (0 when no response arrived).
func (c *Client) exchange(ctx context.Context, cl call, requestID string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}

	token := ""
	if !cl.anonymous {
		token = c.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &UnreachableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &UnreachableError{Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized && token != "" {
		return resp.StatusCode, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &RejectedError{
			Status: resp.StatusCode,
			Detail: extractDetail(raw, resp.StatusCode),
		}
	}

	if cl.out == nil {
		return resp.StatusCode, nil
	}
	if err := validateResponse(cl.schema, raw); err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		return resp.StatusCode, &InvalidResponseError{Content: raw, Err: err}
	}
	return resp.StatusCode, nil
}
