// Package wordpress publishes posts through the WordPress REST API v2 using
// application-password Basic auth.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// PublishError carries the upstream status and message of a failed publish.
// Per-article: the caller records it and continues with the remaining
// articles; the unpublished article stays eligible for retry.
type PublishError struct {
	StatusCode int
	Message    string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("wordpress: publish failed (status %d): %s", e.StatusCode, e.Message)
}

// Post is the payload sent to the posts endpoint.
type Post struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Status     string `json:"status"` // publish, draft, pending, private
	Excerpt    string `json:"excerpt"`
	Categories []int  `json:"categories,omitempty"`
	Tags       []int  `json:"tags,omitempty"`
}

// PublishResult is the created post as reported by WordPress.
type PublishResult struct {
	PostID int    `json:"id"`
	URL    string `json:"link"`
	Status string `json:"status"`
}

// Term is a WordPress category or tag.
type Term struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Client talks to one WordPress site.
type Client struct {
	siteURL    string
	username   string
	password   string
	httpClient *http.Client

	mu          sync.Mutex
	categoryIDs map[string]int
}

// NewClient creates a WordPress client for the given site.
func NewClient(siteURL, username, appPassword string) *Client {
	return &Client{
		siteURL:    strings.TrimRight(siteURL, "/"),
		username:   username,
		password:   appPassword,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) authHeader() string {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
	return "Basic " + credentials
}

// Publish creates a post. An empty status defaults to "publish".
func (c *Client) Publish(ctx context.Context, post Post) (*PublishResult, error) {
	if post.Status == "" {
		post.Status = "publish"
	}

	reqBody, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.siteURL+"/wp-json/wp/v2/posts", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &PublishError{StatusCode: resp.StatusCode, Message: upstreamMessage(body, resp.Status)}
	}

	var result PublishResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// ListCategories fetches the site's categories.
func (c *Client) ListCategories(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "categories")
}

// ResolveCategory maps a category name to the site's term ID. The term list
// is fetched once and cached; a site without the category, or an unreachable
// site, resolves to false and the post is published uncategorized.
func (c *Client) ResolveCategory(ctx context.Context, name string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.categoryIDs == nil {
		c.categoryIDs = make(map[string]int)
		terms, err := c.ListCategories(ctx)
		if err != nil {
			// Leave the cache empty but present; one failed fetch must
			// not add a lookup call per published article.
			return 0, false
		}
		for _, t := range terms {
			c.categoryIDs[strings.ToLower(t.Name)] = t.ID
		}
	}

	id, ok := c.categoryIDs[strings.ToLower(name)]
	return id, ok
}

// ListTags fetches the site's tags.
func (c *Client) ListTags(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "tags")
}

func (c *Client) listTerms(ctx context.Context, kind string) ([]Term, error) {
	url := fmt.Sprintf("%s/wp-json/wp/v2/%s?per_page=100", c.siteURL, kind)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", kind, resp.StatusCode)
	}

	var terms []Term
	if err := json.Unmarshal(body, &terms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}
	return terms, nil
}

// upstreamMessage pulls the human-readable message out of a WordPress error
// body, falling back to the HTTP status line.
func upstreamMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}
