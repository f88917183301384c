package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.GitHubAPI = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxPerPage is the largest page size the API serves.
	MaxPerPage = 100
)

// Client wraps the go-github client. Every call passes through the rate
// limiter: the proactive bucket before the request, the header check after
// the response and before the body is handed back to the caller.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

// NewClient creates a GitHub client authenticated with a static bearer token.
func NewClient(ctx context.Context, cfg domain.GitHubConfig) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return NewClientWithHTTPClient(tc, cfg)
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
// The token in cfg is not used; the http.Client handles authentication.
func NewClientWithHTTPClient(httpClient *http.Client, cfg domain.GitHubConfig) (*Client, error) {
	client := gh.NewClient(httpClient)
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = base
	}

	return &Client{
		gh:          client,
		rateLimiter: NewRateLimiter(cfg.ProactiveRate),
	}, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// before applies proactive throttling ahead of a request.
func (c *Client) before(ctx context.Context) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// after applies the header check to a response, including error responses.
func (c *Client) after(ctx context.Context, resp *gh.Response) error {
	if resp == nil || resp.Response == nil {
		return nil
	}
	if err := c.rateLimiter.Observe(ctx, resp.Header); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}
