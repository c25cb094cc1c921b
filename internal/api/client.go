package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/archiveshq/storefront/pkg/config"
	pkgerrors "github.com/archiveshq/storefront/pkg/errors"
	"github.com/archiveshq/storefront/pkg/logger"
	"github.com/archiveshq/storefront/pkg/metrics"
)

const (
	endpointSignIn        = "/api/signin/"
	endpointSignUp        = "/api/signup/"
	endpointVerifyOTP     = "/api/verify-otp/"
	endpointResendOTP     = "/api/resend-otp/"
	endpointCheckUsername = "/api/check-username/"
)

var (
	errBaseURLRequired = errors.New("api base url is required")
	errLoggerRequired  = errors.New("api logger is required")
)

// Client talks to the remote auth backend. The underlying http.Client
// carries a cookie jar so the backend's session cookie survives across
// calls, the same way a browser session would.
type Client struct {
	httpClient *http.Client
	baseURL    string
	deviceID   string
	logger     *logger.Logger
	metrics    *metrics.APIMetrics
}

// Option overrides a client default.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client. The caller owns cookie
// handling when this is used.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithDeviceID attaches a stable device identifier to every request.
func WithDeviceID(deviceID string) Option {
	return func(c *Client) {
		c.deviceID = strings.TrimSpace(deviceID)
	}
}

// WithMetrics records per-endpoint call metrics.
func WithMetrics(apiMetrics *metrics.APIMetrics) Option {
	return func(c *Client) {
		c.metrics = apiMetrics
	}
}

// NewClient initializes the auth backend client and validates its inputs.
func NewClient(ctx context.Context, cfg config.APIConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("building cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Jar: jar, Timeout: timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:     logg,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		return nil, errBaseURLRequired
	}

	logg.Info(ctx, "auth api client initialized")
	return c, nil
}

// SignIn exchanges credentials for a session. A rejected sign-in is a
// normal result, not an error; errors mean the call itself failed.
func (c *Client) SignIn(ctx context.Context, email, password string) (AuthResult, error) {
	return c.postAuth(ctx, endpointSignIn, map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignUp registers a new account. A successful signup leaves the account
// pending one-time-code verification.
func (c *Client) SignUp(ctx context.Context, username, email, phone, password string) (AuthResult, error) {
	return c.postAuth(ctx, endpointSignUp, map[string]string{
		"username": username,
		"email":    email,
		"phone":    phone,
		"password": password,
	})
}

// VerifyOTP confirms a pending account with the emailed one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (AuthResult, error) {
	return c.postAuth(ctx, endpointVerifyOTP, map[string]string{
		"email": email,
		"otp":   otp,
	})
}

// ResendOTP asks the backend to email a fresh one-time code.
func (c *Client) ResendOTP(ctx context.Context, email string) (AuthResult, error) {
	return c.postAuth(ctx, endpointResendOTP, map[string]string{
		"email": email,
	})
}

// CheckUsername reports whether a username is still available.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	payload, _, err := c.post(ctx, endpointCheckUsername, map[string]string{
		"username": username,
	})
	if err != nil {
		return false, err
	}
	if payload.Available == nil {
		return false, pkgerrors.New(pkgerrors.CodeRemote, "availability missing from response")
	}
	return *payload.Available, nil
}

func (c *Client) postAuth(ctx context.Context, endpoint string, body map[string]string) (AuthResult, error) {
	payload, statusCode, err := c.post(ctx, endpoint, body)
	if err != nil {
		return AuthResult{}, err
	}
	return toAuthResult(statusCode, payload), nil
}

func (c *Client) post(ctx context.Context, endpoint string, body map[string]string) (responsePayload, int, error) {
	ctx = c.logger.WithEndpoint(ctx, endpoint)
	start := time.Now()

	raw, err := json.Marshal(body)
	if err != nil {
		return responsePayload{}, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(raw))
	if err != nil {
		return responsePayload{}, 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.deviceID != "" {
		req.Header.Set("X-Device-ID", c.deviceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncFailure(endpoint)
		c.logger.Error(ctx, "auth api request failed", err)
		return responsePayload{}, 0, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("calling %s", endpoint))
	}
	defer resp.Body.Close()

	var payload responsePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.IncFailure(endpoint)
		c.logger.Error(ctx, "auth api response unreadable", err)
		return responsePayload{}, 0, pkgerrors.Wrap(pkgerrors.CodeNetwork, err, fmt.Sprintf("decoding %s response", endpoint))
	}

	c.metrics.ObserveDuration(endpoint, time.Since(start))
	c.metrics.IncSuccess(endpoint)
	c.logger.Debug(c.logger.WithField(ctx, "status_code", resp.StatusCode), "auth api call completed")
	return payload, resp.StatusCode, nil
}
