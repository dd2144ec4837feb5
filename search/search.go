package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"copydesk/httpclient"
)

const defaultBaseURL = "https://api.tavily.com"

// maxResults caps every search; the policy layer never needs more.
const maxResults = 3

// Client is a thin adapter over the Tavily search API. Failures are folded
// into the returned text so the policy layer always has something to relay.
type Client struct {
	base   *httpclient.BaseClient
	apiKey string
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searchResponse struct {
	Answer  string         `json:"answer"`
	Results []searchResult `json:"results"`
}

func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, defaultBaseURL)
}

func NewWithBaseURL(apiKey, baseURL string) *Client {
	httpClient := httpclient.New(httpclient.Config{Timeout: 30 * time.Second})
	return &Client{
		base:   httpclient.NewBaseClientWithClient(httpClient, baseURL),
		apiKey: apiKey,
	}
}

// Search runs one query and returns formatted result text. Any failure
// (network, non-2xx, malformed body) comes back as an inline error string,
// never as an error value.
func (c *Client) Search(ctx context.Context, query string) string {
	out, err := c.search(ctx, query)
	if err != nil {
		return fmt.Sprintf("Tavily search failed: %v", err)
	}
	return out
}

func (c *Client) search(ctx context.Context, query string) (string, error) {
	payload := searchRequest{APIKey: c.apiKey, Query: query, MaxResults: maxResults}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/search", nil, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	const maxBodySize = 5 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return "", fmt.Errorf("response read failed: %w", readErr)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	return formatResults(out), nil
}

func formatResults(resp searchResponse) string {
	var b strings.Builder
	if resp.Answer != "" {
		b.WriteString(resp.Answer)
		b.WriteString("\n\n")
	}
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Content, r.URL)
	}
	if b.Len() == 0 {
		return "No search results found."
	}
	return strings.TrimRight(b.String(), "\n")
}
