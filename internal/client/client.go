// Package client provides thin wrappers over the Egeria view-server REST
// API: each method builds a JSON request body, issues the HTTP call, and
// unwraps the response envelope. The hard engineering (storage, typing,
// governance orchestration) lives inside the remote server; this layer only
// calls it and hands elements to the format subsystem.
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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/egeria-tools/egc/internal/logging"
)

// DefaultTimeout bounds each HTTP call when the config does not override it.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings for one view server.
type Config struct {
	// PlatformURL is the base URL of the Egeria platform,
	// e.g. https://localhost:9443.
	PlatformURL string

	// ViewServer is the name of the view server to address.
	ViewServer string

	// UserID and Password authenticate the token request.
	UserID   string
	Password string

	// Timeout bounds each HTTP call. Zero means DefaultTimeout.
	Timeout time.Duration

	// InsecureTLS skips certificate verification. Lab platforms ship with
	// self-signed certificates, so this is common in development.
	InsecureTLS bool

	// Logger receives request tracing at debug level. Nil means no logging.
	Logger *zap.SugaredLogger
}

// Client talks to one Egeria view server. It is safe for sequential use;
// callers wanting concurrency should create one client per goroutine because
// the bearer token is replaced in place on login.
type Client struct {
	platformURL string
	viewServer  string
	userID      string
	password    string
	token       string
	httpClient  *http.Client
	log         *zap.SugaredLogger
}

// ServerError is the typed form of an Egeria error envelope: the server
// answers HTTP 200 with a relatedHTTPCode and exception details in the body.
type ServerError struct {
	Code    int
	Class   string
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server error %d (%s)", e.Code, e.Class)
}

// New creates a client from config. It does not contact the server; call
// CreateToken before issuing requests.
func New(cfg Config) (*Client, error) {
	if cfg.PlatformURL == "" {
		return nil, fmt.Errorf("platform URL is required")
	}
	if cfg.ViewServer == "" {
		return nil, fmt.Errorf("view server name is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport
	if cfg.InsecureTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}

	return &Client{
		platformURL: strings.TrimRight(cfg.PlatformURL, "/"),
		viewServer:  cfg.ViewServer,
		userID:      cfg.UserID,
		password:    cfg.Password,
		httpClient:  &http.Client{Timeout: timeout, Transport: transport},
		log:         log,
	}, nil
}

// tokenRequest is the body of the platform token endpoint.
type tokenRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// CreateToken obtains a bearer token from the platform and stores it on the
// client. The token endpoint returns the raw token string, not JSON.
func (c *Client) CreateToken(ctx context.Context) error {
	body, err := json.Marshal(tokenRequest{UserID: c.userID, Password: c.password})
	if err != nil {
		return fmt.Errorf("encoding token request: %w", err)
	}

	url := c.platformURL + "/api/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	c.token = strings.TrimSpace(string(raw))
	if c.token == "" {
		return fmt.Errorf("token request returned an empty token")
	}
	c.log.Debugw("token created", "user", c.userID)
	return nil
}

// SetToken installs an externally obtained bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token, or "" before login.
func (c *Client) Token() string { return c.token }

// Logout clears the bearer token.
func (c *Client) Logout() { c.token = "" }

// UserID returns the configured user.
func (c *Client) UserID() string { return c.userID }

// serviceURL builds a view-server service URL from path segments.
func (c *Client) serviceURL(service, path string) string {
	return fmt.Sprintf("%s/servers/%s/api/open-metadata/%s/%s",
		c.platformURL, c.viewServer, service, strings.TrimLeft(path, "/"))
}

// responseHeader is the envelope every Egeria REST response carries.
type responseHeader struct {
	RelatedHTTPCode       int    `json:"relatedHTTPCode"`
	ExceptionClassName    string `json:"exceptionClassName,omitempty"`
	ExceptionErrorMessage string `json:"exceptionErrorMessage,omitempty"`
}

// check converts a non-OK related code into a *ServerError.
func (h *responseHeader) check() error {
	if h.RelatedHTTPCode == 0 || h.RelatedHTTPCode == http.StatusOK {
		return nil
	}
	return &ServerError{
		Code:    h.RelatedHTTPCode,
		Class:   h.ExceptionClassName,
		Message: h.ExceptionErrorMessage,
	}
}

// do issues one request and decodes the body into out. Every request carries
// the bearer token and a fresh X-Request-Id for server-side correlation.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()
	c.log.Debugw("request complete", "method", method, "url", url,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%s %s: %s (is the token still valid?)", method, url, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// post issues a POST with a JSON body.
func (c *Client) post(ctx context.Context, url string, body, out any) error {
	return c.do(ctx, http.MethodPost, url, body, out)
}

// get issues a GET.
func (c *Client) get(ctx context.Context, url string, out any) error {
	return c.do(ctx, http.MethodGet, url, nil, out)
}
