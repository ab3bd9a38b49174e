// Package transport sends JSON requests to the platform and turns responses
// into decoded maps or typed errors.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/config"
	"github.com/suar-net/iberbanco-go/internal/model"
	"github.com/suar-net/iberbanco-go/internal/sdkerr"
)

const (
	maxResponseBodySize = 10 * 1024 * 1024 // 10 MB
	HeaderRequestID     = "X-Request-ID"
)

// Doer performs one API call. For GET requests body is sent as the query
// string. Non-2xx answers come back as *sdkerr.APIError.
type Doer interface {
	Do(ctx context.Context, method, path string, body map[string]any, headers map[string]string) (map[string]any, error)
}

// Recorder keeps a history of calls made through the transport.
type Recorder interface {
	Record(ctx context.Context, entry *model.RequestLog) error
}

// redacted headers never reach logs or the request history.
var redacted = map[string]bool{
	"hash":          true,
	"token":         true,
	"pin":           true,
	"authorization": true,
	"password":      true,
}

type HTTP struct {
	mu         sync.RWMutex
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
	recorder   Recorder
	newBackOff func() backoff.BackOff
}

type Option func(*HTTP)

func WithLogger(logger *zap.Logger) Option {
	return func(t *HTTP) { t.logger = logger }
}

func WithRecorder(r Recorder) Option {
	return func(t *HTTP) { t.recorder = r }
}

// WithHTTPClient replaces the client built from the configuration. TLS
// settings of the configuration are then ignored.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTP) { t.httpClient = c }
}

// WithBackOff sets the retry schedule used for GET requests.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(t *HTTP) { t.newBackOff = f }
}

func NewHTTP(cfg *config.Config, opts ...Option) *HTTP {
	t := &HTTP{
		cfg:        cfg.Clone(),
		logger:     zap.NewNop(),
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.httpClient == nil {
		t.httpClient = newHTTPClient(t.cfg)
	}
	return t
}

func newHTTPClient(cfg *config.Config) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{InsecureSkipVerify: !cfg.VerifySSL}, //nolint:gosec // opt-in for sandboxes
	}
	return &http.Client{Transport: transport}
}

// Configure swaps in a new configuration. The connection pool is rebuilt
// when the TLS setting changes.
func (t *HTTP) Configure(cfg *config.Config) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cfg.VerifySSL != t.cfg.VerifySSL {
		if tr, ok := t.httpClient.Transport.(*http.Transport); ok {
			tr.CloseIdleConnections()
			t.httpClient = newHTTPClient(cfg)
		}
	}
	t.cfg = cfg.Clone()
}

func (t *HTTP) Config() *config.Config {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cfg.Clone()
}

func (t *HTTP) Do(ctx context.Context, method, path string, body map[string]any, headers map[string]string) (map[string]any, error) {
	t.mu.RLock()
	cfg, client := t.cfg, t.httpClient
	t.mu.RUnlock()

	method = strings.ToUpper(method)
	out, err := buildRequest(cfg, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	if method != http.MethodGet || cfg.Retries == 0 {
		return t.execute(ctx, client, cfg, out)
	}

	var result map[string]any
	op := func() error {
		res, err := t.execute(ctx, client, cfg, out)
		if err != nil {
			var apiErr *sdkerr.APIError
			if errors.As(err, &apiErr) && apiErr.IsRetryable() {
				t.logger.Warn("retrying platform request",
					zap.String("method", method),
					zap.String("path", path),
					zap.Error(err),
				)
				return err
			}
			return backoff.Permanent(err)
		}
		result = res
		return nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(t.newBackOff(), uint64(cfg.Retries)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return nil, err
	}
	return result, nil
}

type outboundRequest struct {
	Method  string
	URL     *url.URL
	Headers http.Header
	Body    []byte
}

func buildRequest(cfg *config.Config, method, path string, body map[string]any, headers map[string]string) (*outboundRequest, error) {
	u, err := url.Parse(cfg.Endpoint() + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, sdkerr.Configuration("base_url", fmt.Sprintf("cannot build request URL: %v", err))
	}

	h := make(http.Header)
	for k, v := range cfg.Headers {
		h.Set(k, v)
	}
	for k, v := range headers {
		h.Set(k, v)
	}
	h.Set(HeaderRequestID, uuid.NewString())

	out := &outboundRequest{Method: method, URL: u, Headers: h}
	if method == http.MethodGet {
		if len(body) > 0 {
			u.RawQuery = encodeQuery(body)
		}
		return out, nil
	}
	if body != nil {
		out.Body, err = json.Marshal(body)
		if err != nil {
			return nil, sdkerr.Decode(0, "", fmt.Errorf("encode request body: %w", err))
		}
	}
	return out, nil
}

// encodeQuery renders a filter map as a query string. Lists are sent as
// repeated key[] parameters.
func encodeQuery(params map[string]any) string {
	q := url.Values{}
	for k, v := range params {
		switch x := v.(type) {
		case nil:
		case []string:
			for _, s := range x {
				q.Add(k+"[]", s)
			}
		case []any:
			for _, s := range x {
				q.Add(k+"[]", fmt.Sprint(s))
			}
		default:
			q.Set(k, fmt.Sprint(x))
		}
	}
	return q.Encode()
}

func (t *HTTP) execute(ctx context.Context, client *http.Client, cfg *config.Config, out *outboundRequest) (map[string]any, error) {
	start := time.Now()
	entry := &model.RequestLog{
		RequestID:      out.Headers.Get(HeaderRequestID),
		ExecutedAt:     start,
		RequestMethod:  out.Method,
		RequestURL:     out.URL.String(),
		RequestHeaders: redactHeaders(out.Headers),
	}
	if len(out.Body) > 0 {
		s := redactBody(string(out.Body))
		entry.RequestBody = &s
	}

	result, status, raw, err := t.roundTrip(ctx, client, cfg, out)

	ms := int(time.Since(start).Milliseconds())
	entry.DurationMs = &ms
	if status > 0 {
		entry.ResponseStatusCode = &status
		size := int64(len(raw))
		entry.ResponseSize = &size
		body := redactBody(raw)
		entry.ResponseBody = &body
	}
	if err != nil {
		msg := err.Error()
		entry.Error = &msg
	}

	if cfg.Debug {
		t.logger.Debug("platform request",
			zap.String("request_id", entry.RequestID),
			zap.String("method", out.Method),
			zap.String("url", entry.RequestURL),
			zap.ByteString("headers", entry.RequestHeaders),
			zap.Int("status", status),
			zap.Int("duration_ms", ms),
			zap.Error(err),
		)
	}
	if t.recorder != nil {
		if rerr := t.recorder.Record(ctx, entry); rerr != nil {
			t.logger.Warn("could not record request", zap.String("request_id", entry.RequestID), zap.Error(rerr))
		}
	}
	return result, err
}

func (t *HTTP) roundTrip(ctx context.Context, client *http.Client, cfg *config.Config, out *outboundRequest) (map[string]any, int, string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if len(out.Body) > 0 {
		bodyReader = bytes.NewReader(out.Body)
	}
	req, err := http.NewRequestWithContext(reqCtx, out.Method, out.URL.String(), bodyReader)
	if err != nil {
		return nil, 0, "", sdkerr.NetworkError(err)
	}
	req.Header = out.Headers.Clone()

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, 0, "", sdkerr.Timeout(cfg.Timeout, err)
		}
		return nil, 0, "", sdkerr.NetworkError(err)
	}
	defer resp.Body.Close()

	limited := &io.LimitedReader{R: resp.Body, N: maxResponseBodySize + 1}
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, resp.StatusCode, "", sdkerr.NetworkError(err)
	}
	if len(raw) > maxResponseBodySize {
		return nil, resp.StatusCode, "", sdkerr.Decode(resp.StatusCode, "", fmt.Errorf("response body exceeds %d bytes", maxResponseBodySize))
	}
	text := string(raw)

	decoded := map[string]any{}
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &decoded)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		msg, errs := errorDetails(decoded)
		return nil, resp.StatusCode, text, sdkerr.FromHTTPStatus(resp.StatusCode, msg, errs, text)
	}
	if decodeErr != nil {
		return nil, resp.StatusCode, text, sdkerr.Decode(resp.StatusCode, text, decodeErr)
	}
	return decoded, resp.StatusCode, text, nil
}

// errorDetails pulls message and errors out of an error body. errors may be a
// list of strings or a map of field to messages.
func errorDetails(body map[string]any) (string, []string) {
	msg, _ := body["message"].(string)
	var errs []string
	switch e := body["errors"].(type) {
	case []any:
		for _, v := range e {
			errs = append(errs, fmt.Sprint(v))
		}
	case map[string]any:
		keys := make([]string, 0, len(e))
		for k := range e {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v := e[k].(type) {
			case []any:
				for _, m := range v {
					errs = append(errs, fmt.Sprint(m))
				}
			default:
				errs = append(errs, fmt.Sprint(v))
			}
		}
	case string:
		errs = append(errs, e)
	}
	return msg, errs
}

func redactHeaders(h http.Header) json.RawMessage {
	safe := make(map[string]string, len(h))
	for k := range h {
		if redacted[strings.ToLower(k)] {
			safe[k] = "[REDACTED]"
			continue
		}
		safe[k] = h.Get(k)
	}
	b, _ := json.Marshal(safe)
	return b
}

// redactBody masks secret members of a JSON body at any depth. Bodies that
// are not JSON are kept as they are.
func redactBody(raw string) string {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	if !redactValue(v) {
		return raw
	}
	b, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return string(b)
}

func redactValue(v any) bool {
	changed := false
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			if redacted[strings.ToLower(k)] {
				x[k] = "[REDACTED]"
				changed = true
				continue
			}
			if redactValue(item) {
				changed = true
			}
		}
	case []any:
		for _, item := range x {
			if redactValue(item) {
				changed = true
			}
		}
	}
	return changed
}
