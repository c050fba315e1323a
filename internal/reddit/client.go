package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rewindtrack/internal/textutil"
)

// Client queries the Reddit public JSON search endpoint. No OAuth is used;
// the endpoint is polled politely with a descriptive User-Agent and a bounded
// retry budget for rate limits and server errors.
type Client struct {
	baseURL    string
	userAgent  string
	maxRetries int
	httpClient *http.Client
	logger     *slog.Logger
}

// SearchOptions contains per-request search parameters.
type SearchOptions struct {
	Sort       string
	TimeFilter string
	Limit      int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger used for retry warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a search client.
func New(baseURL, userAgent string, timeout time.Duration, maxRetries int, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("reddit base url required")
	}
	if maxRetries <= 0 {
		maxRetries = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  strings.TrimSpace(userAgent),
		maxRetries: maxRetries,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search queries one subreddit for one term and returns the normalized posts.
func (c *Client) Search(ctx context.Context, subreddit, query string, opts SearchOptions) ([]Post, error) {
	subreddit = strings.TrimSpace(subreddit)
	if subreddit == "" {
		return nil, errors.New("subreddit must not be empty")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	endpoint, err := url.Parse(fmt.Sprintf("%s/r/%s/search.json", c.baseURL, url.PathEscape(subreddit)))
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("restrict_sr", "1")
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.TimeFilter != "" {
		params.Set("t", opts.TimeFilter)
	}
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	params.Set("raw_json", "1")
	endpoint.RawQuery = params.Encode()

	payload, err := c.requestJSON(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		post := normalizePost(child.Data, subreddit)
		if post.ID == "" {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// requestJSON performs the GET with bounded retries on HTTP 429 and 5xx.
func (c *Client) requestJSON(ctx context.Context, endpoint string) (*listing, error) {
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json,text/plain,*/*")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := backoffDelay(attempt, resp.Header.Get("Retry-After"))
			resp.Body.Close()
			c.logger.Warn("rate limited by search endpoint",
				"wait", wait, "attempt", attempt, "max_attempts", c.maxRetries)
			if err := sleepWithContext(ctx, wait); err != nil {
				return nil, err
			}
			continue
		case resp.StatusCode >= 500 && resp.StatusCode < 600:
			wait := backoffDelay(attempt, "")
			resp.Body.Close()
			c.logger.Warn("search endpoint server error",
				"status", resp.StatusCode, "wait", wait, "attempt", attempt, "max_attempts", c.maxRetries)
			if err := sleepWithContext(ctx, wait); err != nil {
				return nil, err
			}
			continue
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return nil, fmt.Errorf("search returned %d for %s", resp.StatusCode, endpoint)
		}

		contentType := strings.ToLower(resp.Header.Get("Content-Type"))
		if !strings.Contains(contentType, "json") {
			finalURL := endpoint
			if resp.Request != nil && resp.Request.URL != nil {
				finalURL = resp.Request.URL.String()
			}
			resp.Body.Close()
			return nil, fmt.Errorf("expected JSON but got Content-Type %q (final URL %s)", contentType, finalURL)
		}

		var payload listing
		err = json.NewDecoder(resp.Body).Decode(&payload)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		return &payload, nil
	}
	return nil, fmt.Errorf("search failed after %d attempts (rate limited or server errors)", c.maxRetries)
}

func normalizePost(raw listingPost, subreddit string) Post {
	post := Post{
		ID:          raw.ID,
		Name:        raw.Name,
		Subreddit:   raw.Subreddit,
		CreatedUTC:  int64(raw.CreatedUTC),
		Title:       textutil.NormalizeSpaces(raw.Title),
		URL:         raw.URL,
		Author:      raw.Author,
		Score:       raw.Score,
		NumComments: raw.NumComments,
	}
	if post.Name == "" && post.ID != "" {
		post.Name = "t3_" + post.ID
	}
	if post.Subreddit == "" {
		post.Subreddit = subreddit
	}
	if raw.Permalink != "" {
		post.Permalink = "https://www.reddit.com" + raw.Permalink
	}
	if post.CreatedUTC > 0 {
		post.Created = time.Unix(post.CreatedUTC, 0).UTC()
	}
	return post
}
