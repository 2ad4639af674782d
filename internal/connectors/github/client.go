package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the fetcher port.
var _ driven.PullRequestFetcher = (*Client)(nil)

// Client wraps the go-github client for one repository.
type Client struct {
	gh            *gh.Client
	config        *Config
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
}

// NewClient creates a new GitHub API client with a token provider.
// The underlying HTTP client is built on first use.
func NewClient(cfg *Config, tokenProvider driven.TokenProvider) *Client {
	return &Client{
		config:        cfg,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Cooldown),
	}
}

// NewClientWithHTTPClient creates a GitHub client with a custom http.Client.
func NewClientWithHTTPClient(cfg *Config, httpClient *http.Client) (*Client, error) {
	c := &Client{
		config:      cfg,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, cfg.Cooldown),
	}
	client, err := newGitHubClient(httpClient, cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	c.gh = client
	return c, nil
}

// newGitHubClient builds a go-github client, pointing it at baseURL if set.
func newGitHubClient(httpClient *http.Client, baseURL string) (*gh.Client, error) {
	client := gh.NewClient(httpClient)
	if baseURL == "" {
		return client, nil
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalidBaseURL, err)
	}
	client.BaseURL = u
	return client, nil
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	httpClient := &http.Client{Timeout: DefaultTimeout}
	if c.tokenProvider != nil && c.tokenProvider.IsAuthenticated() {
		token, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = DefaultTimeout
	}

	client, err := newGitHubClient(httpClient, c.config.BaseURL)
	if err != nil {
		return err
	}
	c.gh = client
	return nil
}

// FetchPage returns one page of the listing of all pull requests.
// A page <= 0 requests the first page without a page parameter.
func (c *Client) FetchPage(ctx context.Context, page int) (*domain.Page, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{State: "all"}
	if page > 0 {
		opts.Page = page
	}

	var prs []*gh.PullRequest
	resp, err := c.do(ctx, c.listURL(page), func() (*gh.Response, error) {
		var resp *gh.Response
		var err error
		prs, resp, err = c.gh.PullRequests.List(ctx, c.config.Owner, c.config.Repo, opts)
		return resp, err
	})
	if err != nil {
		return nil, c.wrapError(err, "list pull requests")
	}

	return &domain.Page{
		PullRequests: toDomainPullRequests(prs),
		HasNext:      HasNextPage(resp.Header.Get("Link")),
	}, nil
}

// FetchPullRequest returns a single pull request by its display number.
func (c *Client) FetchPullRequest(ctx context.Context, number int) (*domain.PullRequest, error) {
	if err := c.ensureClient(ctx); err != nil {
		return nil, err
	}

	var pr *gh.PullRequest
	_, err := c.do(ctx, c.itemURL(number), func() (*gh.Response, error) {
		var resp *gh.Response
		var err error
		pr, resp, err = c.gh.PullRequests.Get(ctx, c.config.Owner, c.config.Repo, number)
		return resp, err
	})
	if err != nil {
		return nil, c.wrapError(err, fmt.Sprintf("get pull request %d", number))
	}

	out := toDomainPullRequest(pr)
	return &out, nil
}

// do issues call until it succeeds or fails with something other than a
// rate limit. Rate-limited attempts block for the cooldown and start over;
// there is no attempt limit.
func (c *Client) do(ctx context.Context, target string, call func() (*gh.Response, error)) (*gh.Response, error) {
	for attempt := 1; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		logger.Progress("GET %s", target)
		resp, err := call()
		if resp != nil {
			c.rateLimiter.Observe(resp.Rate)
		}
		if err == nil {
			return resp, nil
		}

		status := statusOf(resp, err)
		if !isRateLimitStatus(status) {
			return nil, err
		}

		logger.Progress("%v; out of requests, waiting %s before attempt %d",
			c.rateLimiter.ErrorFor(status), c.rateLimiter.CooldownDuration(), attempt+1)
		if err := c.rateLimiter.Cooldown(ctx); err != nil {
			return nil, fmt.Errorf("rate limit cooldown: %w", err)
		}
	}
}

// listURL renders the listing URL for logging.
func (c *Client) listURL(page int) string {
	u := fmt.Sprintf("%srepos/%s/%s/pulls?state=all", c.gh.BaseURL, c.config.Owner, c.config.Repo)
	if page > 0 {
		u += fmt.Sprintf("&page=%d", page)
	}
	return u
}

// itemURL renders the single pull request URL for logging.
func (c *Client) itemURL(number int) string {
	return fmt.Sprintf("%srepos/%s/%s/pulls/%d", c.gh.BaseURL, c.config.Owner, c.config.Repo, number)
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// GitHub returns the underlying go-github client.
// Nil until the first request.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// statusOf extracts the HTTP status of a failed call, or 0 if none.
func statusOf(resp *gh.Response, err error) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return http.StatusForbidden
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return http.StatusForbidden
	}

	return 0
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
