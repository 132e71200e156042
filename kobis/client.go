package kobis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the KOBIS open API REST root
	DefaultBaseURL = "http://www.kobis.or.kr/kobisopenapi/webservice/rest"
	// DefaultTimeout bounds every request
	DefaultTimeout = 10 * time.Second

	keyParam = "key"
)

// Client represents a KOBIS open API client
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new KOBIS client. The API key is attached to every
// request; callers never pass it.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if _, err := url.Parse(client.baseURL); err != nil {
		return nil, fmt.Errorf("%w: parse base url: %v", ErrInvalidConfig, err)
	}

	return client, nil
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs one GET against path with params plus the access key and
// decodes the JSON body into out. There is no retry at this layer.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	query := make(url.Values, len(params)+1)
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	query.Set(keyParam, c.apiKey)

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/") + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug().
		Str("path", path).
		Str("params", params.Encode()).
		Msg("Making KOBIS API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("KOBIS API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestFailedError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	var fault faultEnvelope
	if err := json.Unmarshal(body, &fault); err != nil {
		return &RequestFailedError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    "malformed JSON response",
			Err:        err,
		}
	}
	if fault.FaultInfo != nil {
		return &RequestFailedError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Code:       fault.FaultInfo.ErrorCode,
			Message:    fault.FaultInfo.Message,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &RequestFailedError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Message:    "unexpected response shape",
			Err:        err,
		}
	}

	return nil
}

// transportError classifies a failure that produced no usable response.
// A caller-side cancellation is returned as the context error so that
// superseded requests are not reported as network failures.
func (c *Client) transportError(ctx context.Context, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
		return fmt.Errorf("kobis request %s: %w", path, ctxErr)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Warn().Str("path", path).Dur("timeout", c.httpClient.Timeout).Msg("KOBIS request timed out")
		return fmt.Errorf("%w: %s: %w", ErrTimeout, path, err)
	}

	c.logger.Warn().Err(err).Str("path", path).Msg("KOBIS request failed")
	return &NetworkError{Endpoint: path, Err: err}
}
