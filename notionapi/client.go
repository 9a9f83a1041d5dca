// Package notionapi is a minimal typed client for the workspace database API
// that backs the blog: it can query a database and list a page's child
// blocks, which is all the proxy ever does upstream.
package notionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultTimeout = 15 * time.Second

	// apiVersion is the required Notion-Version header.
	apiVersion = "2022-06-28"

	// blockPageSize bounds one child-block listing. Pagination beyond the
	// first page is intentionally not followed.
	blockPageSize = 100
)

// Config holds configuration for the workspace API client.
type Config struct {
	// APIKey is the integration token (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.notion.com).
	BaseURL string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Client talks to the workspace API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// EqualsFilter matches a property value exactly.
type EqualsFilter struct {
	Equals string `json:"equals"`
}

// Filter is a database query filter: either one property condition or an
// "and" of nested filters.
type Filter struct {
	And      []Filter      `json:"and,omitempty"`
	Property string        `json:"property,omitempty"`
	Status   *EqualsFilter `json:"status,omitempty"`
	RichText *EqualsFilter `json:"rich_text,omitempty"`
}

// Sort orders database query results by a property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// DatabaseQuery is the body of a database query request.
type DatabaseQuery struct {
	Filter   *Filter `json:"filter,omitempty"`
	Sorts    []Sort  `json:"sorts,omitempty"`
	PageSize int     `json:"page_size,omitempty"`
}

// queryResponse is the database query response format.
type queryResponse struct {
	Results []Page `json:"results"`
	HasMore bool   `json:"has_more"`
}

// blocksResponse is the block children listing response format.
type blocksResponse struct {
	Results []Block `json:"results"`
	HasMore bool    `json:"has_more"`
}

// apiError is the error body the API returns on non-2xx statuses.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClient creates a workspace API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notionapi: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// QueryDatabase runs a filtered, sorted query against one database and
// returns the matching pages.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, query DatabaseQuery) ([]Page, error) {
	jsonBody, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/databases/%s/query", c.baseURL, url.PathEscape(databaseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var res queryResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}

// ListBlockChildren returns the first page of a block's children, which for a
// page block is the page body.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	endpoint := fmt.Sprintf("%s/v1/blocks/%s/children?page_size=%d", c.baseURL, url.PathEscape(blockID), blockPageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var res blocksResponse
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("workspace API error (status %d, %s): %s", resp.StatusCode, apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("workspace API error (status %d)", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
