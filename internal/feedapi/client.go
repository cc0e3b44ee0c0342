// Package feedapi talks to a running wikiscroll server.
package feedapi

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

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Batch requests size interesting items from /content/batch and rebuilds the
// tagged outcome: any status of 400 or above is a failure, a 200 with an
// error alongside items is partial.
func (c *Client) Batch(ctx context.Context, size int) content.Result {
	q := make(url.Values)
	q.Set("size", strconv.Itoa(size))

	req, err := c.newRequest(ctx, http.MethodGet, "/content/batch?"+q.Encode())
	if err != nil {
		return content.Failed(err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return content.Failed(content.ErrorMessage(&content.UpstreamError{Op: "batch", Err: err}))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return content.Failed(readError(resp, "batch"))
	}

	var body content.Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return content.Failed(fmt.Sprintf("decode batch response: %v", err))
	}
	return content.ResultFromResponse(body)
}

// Like records one like for id on the server.
func (c *Client) Like(ctx context.Context, id int64) (app.LikeResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/content/like/"+strconv.FormatInt(id, 10))
	if err != nil {
		return app.LikeResponse{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return app.LikeResponse{}, fmt.Errorf("like request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return app.LikeResponse{}, fmt.Errorf("like item %d: %w", id, content.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		return app.LikeResponse{}, content.Invalid("id", readError(resp, "like"))
	case resp.StatusCode != http.StatusOK:
		return app.LikeResponse{}, &content.UpstreamError{Op: "like", StatusCode: resp.StatusCode, Message: readError(resp, "like")}
	}

	var out app.LikeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return app.LikeResponse{}, fmt.Errorf("decode like response: %w", err)
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// readError extracts the {"error": ...} message of a failed response, falling
// back to the raw body.
func readError(resp *http.Response, op string) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return fmt.Sprintf("%s failed with status %d: %s", op, resp.StatusCode, text)
	}
	return fmt.Sprintf("%s failed with status %d", op, resp.StatusCode)
}
