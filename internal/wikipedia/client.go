// Package wikipedia adapts the MediaWiki action API into content items.
//
// A raw batch takes two dependent calls: random identifier discovery, then
// one batched detail request for exactly those identifiers.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/glabrego/wikiscroll/internal/content"
)

const (
	DefaultAPIBaseURL = "https://en.wikipedia.org/w/api.php"

	// maxRandomLimit is the action API ceiling for rnlimit.
	maxRandomLimit = 500
	thumbnailSize  = 800
	userAgent      = "wikiscroll/0.1 (https://github.com/glabrego/wikiscroll)"
)

type randomResponse struct {
	Query struct {
		Random []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"random"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type detailsResponse struct {
	Query struct {
		Pages map[string]page `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type page struct {
	PageID    int64      `json:"pageid"`
	Title     string     `json:"title"`
	Extract   *string    `json:"extract"`
	Thumbnail *thumbnail `json:"thumbnail"`
	FullURL   string     `json:"fullurl"`
	Missing   *string    `json:"missing"`
}

type thumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client. A nil httpClient gets a 10s timeout; a nil
// limiter leaves requests unpaced.
func NewClient(baseURL string, httpClient *http.Client, limiter *rate.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		limiter: limiter,
	}
}

// NewLimiter paces upstream requests to one per interval with a small burst.
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 2)
}

// FetchRawBatch returns up to count normalized items in discovery order.
// A short discovery is not an error.
func (c *Client) FetchRawBatch(ctx context.Context, count int) ([]content.Item, error) {
	ids, err := c.RandomIDs(ctx, count)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []content.Item{}, nil
	}
	return c.Details(ctx, ids)
}

// RandomIDs asks for count random main-namespace page identifiers.
func (c *Client) RandomIDs(ctx context.Context, count int) ([]int64, error) {
	if count < 1 {
		count = 1
	}
	if count > maxRandomLimit {
		count = maxRandomLimit
	}

	q := make(url.Values)
	q.Set("action", "query")
	q.Set("list", "random")
	q.Set("rnnamespace", "0")
	q.Set("rnlimit", strconv.Itoa(count))
	q.Set("format", "json")

	var resp randomResponse
	if err := c.get(ctx, "list random", q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.upstream("list random")
	}

	ids := make([]int64, 0, len(resp.Query.Random))
	for _, r := range resp.Query.Random {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// Details hydrates ids in one call. Pages the upstream reports as missing
// are dropped; the rest keep the order of ids.
func (c *Client) Details(ctx context.Context, ids []int64) ([]content.Item, error) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	q := make(url.Values)
	q.Set("action", "query")
	q.Set("prop", "extracts|pageimages|info")
	q.Set("exintro", "1")
	q.Set("explaintext", "1")
	q.Set("inprop", "url")
	q.Set("pithumbsize", strconv.Itoa(thumbnailSize))
	q.Set("pageids", strings.Join(parts, "|"))
	q.Set("format", "json")

	var resp detailsResponse
	if err := c.get(ctx, "page details", q, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.upstream("page details")
	}

	items := make([]content.Item, 0, len(resp.Query.Pages))
	for _, id := range ids {
		p, ok := resp.Query.Pages[strconv.FormatInt(id, 10)]
		if !ok || p.Missing != nil || p.Title == "" {
			continue
		}
		items = append(items, itemFromPage(p))
	}
	return items, nil
}

func itemFromPage(p page) content.Item {
	item := content.Item{
		ID:           p.PageID,
		Title:        p.Title,
		Body:         content.BodyUnavailable,
		CanonicalURL: p.FullURL,
	}
	if p.Extract != nil && *p.Extract != "" {
		item.Body = *p.Extract
	}
	if p.Thumbnail != nil && p.Thumbnail.Source != "" {
		item.Media = &content.Media{
			URL:    p.Thumbnail.Source,
			Width:  p.Thumbnail.Width,
			Height: p.Thumbnail.Height,
		}
	}
	return item
}

func (c *Client) get(ctx context.Context, op string, q url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &content.UpstreamError{Op: op, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &content.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &content.UpstreamError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &content.UpstreamError{Op: op, Message: "decode response: " + err.Error(), Err: err}
	}
	return nil
}

func (e *apiError) upstream(op string) error {
	msg := e.Info
	if msg == "" {
		msg = e.Code
	}
	return &content.UpstreamError{Op: op, Message: msg}
}
