package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/model"
)

// MaxBodyBytes caps how much of a response body is read. Longer error bodies
// are cut and flagged with StatusError.Truncated.
const MaxBodyBytes = 1 << 20

// Predictor obtains a prediction for one patient payload.
type Predictor interface {
	Predict(ctx context.Context, payload model.Payload) (model.PredictionResult, error)
}

// Client calls the prediction API over HTTP. It never retries.
type Client struct {
	baseURL    *url.URL
	path       string
	httpClient *http.Client
	timeout    time.Duration
	contract   *Contract
	logger     *zap.Logger
	requestID  func() string
	userAgent  string
}

var _ Predictor = (*Client)(nil)

// New constructs a Client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("predict: base URL is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("predict: parse base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("predict: base URL %q must be absolute", trimmed)
	}

	c := &Client{
		baseURL:    parsed,
		path:       predictPath,
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		requestID:  func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Endpoint reports the absolute URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(c.path).String()
}

// Predict posts the payload as JSON. Non-2xx responses return *StatusError;
// failures to complete the exchange wrap ErrUnreachable; a success body that
// does not decode wraps ErrMalformedResponse.
func (c *Client) Predict(ctx context.Context, payload model.Payload) (model.PredictionResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.PredictionResult{}, fmt.Errorf("predict: encode payload: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.PredictionResult{}, fmt.Errorf("predict: build request: %w", err)
	}
	requestID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger := c.logger.With(zap.String("request_id", requestID), zap.String("endpoint", endpoint))
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("prediction request failed", zap.Error(err))
		return model.PredictionResult{}, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		logger.Warn("prediction response read failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return model.PredictionResult{}, fmt.Errorf("%w: read response: %w", ErrUnreachable, err)
	}

	logger.Debug("prediction response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	truncated := len(raw) > MaxBodyBytes
	if truncated {
		raw = raw[:MaxBodyBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.PredictionResult{}, &StatusError{StatusCode: resp.StatusCode, Body: string(raw), Truncated: truncated}
	}
	if truncated {
		return model.PredictionResult{}, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, MaxBodyBytes)
	}

	if err := c.contract.ValidateResult(raw); err != nil {
		return model.PredictionResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var result *model.PredictionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return model.PredictionResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if result == nil {
		return model.PredictionResult{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	return *result, nil
}
