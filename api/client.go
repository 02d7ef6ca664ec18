package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"path"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopfront/go-client/logger"
)

var (
	Version = "dev"
	Commit  = "unknown"
	retry   = 5
)

// TokenSource supplies the bearer token for outgoing requests. An empty
// string means the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Envelope is the wire wrapper the remote API returns for every call.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Client is an HTTP client for the envelope-based remote API.
type Client struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
	logger  logger.Logger
	tracer  trace.Tracer
}

// New returns a Client rooted at baseURL. tokens may be nil for a client
// that only issues unauthenticated requests.
func New(log logger.Logger, baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		client:  http.DefaultClient,
		logger:  log,
		tracer:  otel.Tracer("shopfront/api"),
	}
}

// SetHTTPClient replaces the underlying http.Client. Useful for tests and
// custom transports.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.client = hc
}

func UserAgent() string {
	gitSHA := Commit
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				gitSHA = setting.Value
			}
		}
	}
	return "Shopfront API Client/" + Version + " (" + gitSHA + ")"
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
			return true
		} else if msg := err.Error(); strings.Contains(msg, "EOF") {
			return true
		}
	}
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
			return true
		}
	}
	return false
}

// Do issues a request and decodes the response body into response when it
// is non-nil. Failures are returned as *Error wrapping one of the sentinel
// errors; context cancellation is returned as-is so callers can discard
// the result without treating it as a remote failure.
func (c *Client) Do(ctx context.Context, method, pathParam string, payload any, response any) error {
	requestID := uuid.NewString()
	log := logger.WithKV(c.logger, "requestId", requestID)

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return NewError(c.baseURL, method, 0, "", errors.Wrap(err, "error parsing base url"), requestID)
	}

	i := strings.Index(pathParam, "?")
	if i != -1 {
		u.RawQuery = pathParam[i+1:]
		pathParam = pathParam[:i]
	}

	basePath := u.Path
	if pathParam == "" {
		u.Path = basePath
	} else if basePath == "" || basePath == "/" {
		u.Path = pathParam
	} else {
		u.Path = path.Join(basePath, pathParam)
	}

	var body []byte
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			return NewError(u.String(), method, 0, "", errors.Wrap(err, "error marshalling payload"), requestID)
		}
	}

	ctx, span := c.tracer.Start(ctx, method+" "+u.Path, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", u.String()),
		))
	defer span.End()

	log.Trace("sending request: %s %s", method, u.String())

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewBuffer(body))
	if err != nil {
		return NewError(u.String(), method, 0, "", errors.Wrap(err, "error creating request"), requestID)
	}

	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	var resp *http.Response
	for i := range retry {
		isLast := i == retry-1
		var err error
		resp, err = c.client.Do(req)
		if shouldRetry(resp, err) && !isLast {
			log.Trace("client returned retryable error, retrying...")
			if resp != nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
			if payload != nil {
				req.Body = io.NopCloser(bytes.NewReader(body))
				req.GetBody = func() (io.ReadCloser, error) {
					return io.NopCloser(bytes.NewReader(body)), nil
				}
			}
			// exponential backoff
			v := 150 * math.Pow(2, float64(i))
			time.Sleep(time.Duration(v) * time.Millisecond)
			continue
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				span.SetStatus(codes.Error, "canceled")
				return err
			}
			span.SetStatus(codes.Error, err.Error())
			return NewError(u.String(), method, 0, "", errors.Mark(errors.Wrap(err, "error sending request"), ErrNetwork), requestID)
		}
		break
	}
	defer resp.Body.Close()
	log.Debug("response status: %s", resp.Status)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewError(u.String(), method, resp.StatusCode, "", errors.Wrap(err, "error reading response body"), requestID)
	}

	if resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		kind := classify(resp.StatusCode)
		message := resp.Status
		if strings.Contains(resp.Header.Get("content-type"), "application/json") {
			var envelope Envelope[json.RawMessage]
			if jsonErr := json.Unmarshal(respBody, &envelope); jsonErr == nil && envelope.Message != "" {
				message = envelope.Message
			}
		}
		apiErr := NewError(u.String(), method, resp.StatusCode, string(respBody), errors.Mark(errors.Newf("%s", message), kind), requestID)
		apiErr.Message = message
		return apiErr
	}

	if response != nil {
		if err := json.Unmarshal(respBody, &response); err != nil {
			return NewError(u.String(), method, resp.StatusCode, string(respBody), errors.Wrap(err, "error JSON decoding response"), requestID)
		}
	}
	return nil
}

// Call issues a request and unwraps the envelope, returning its data field.
// A 2xx response with success=false is surfaced as an error carrying the
// envelope message.
func Call[T any](ctx context.Context, c *Client, method, path string, payload any) (T, error) {
	var envelope Envelope[T]
	if err := c.Do(ctx, method, path, payload, &envelope); err != nil {
		var zero T
		return zero, err
	}
	if !envelope.Success {
		var zero T
		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("request failed: %s %s", method, path)
		}
		return zero, errors.Mark(errors.Newf("%s", message), ErrNetwork)
	}
	return envelope.Data, nil
}

// Get fetches path and returns the envelope data.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Call[T](ctx, c, http.MethodGet, path, nil)
}

// Post sends payload to path and returns the envelope data.
func Post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return Call[T](ctx, c, http.MethodPost, path, payload)
}

// Put sends payload to path and returns the envelope data.
func Put[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	return Call[T](ctx, c, http.MethodPut, path, payload)
}

// Delete removes the resource at path and returns the envelope data.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Call[T](ctx, c, http.MethodDelete, path, nil)
}
