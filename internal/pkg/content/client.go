// internal/pkg/content/client.go
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/your-org/petstore-backend/internal/config"
)

// Product is a storefront product as published in the content store
type Product struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Slug        Slug         `json:"slug"`
	Description string       `json:"description"`
	Images      []Image      `json:"image"`
	SizeOptions []SizeOption `json:"sizeOptions"`
	Flavors     []string     `json:"flavor"`
}

// Slug holds the URL-safe product identifier
type Slug struct {
	Current string `json:"current"`
}

// Image references an asset in the content store
type Image struct {
	Asset Asset `json:"asset"`
}

// Asset is the underlying asset reference
type Asset struct {
	Ref string `json:"_ref"`
}

// SizeOption is a purchasable size with its price
type SizeOption struct {
	Size  string  `json:"size"`
	Price float64 `json:"price"`
	Key   string  `json:"_key"`
}

type queryEnvelope struct {
	Result []Product `json:"result"`
}

// Client queries the headless content store over its HTTP query API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new content client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.GetContentQueryURL(),
		token:   cfg.Content.Token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchAll returns every published product
func (c *Client) FetchAll(ctx context.Context) ([]Product, error) {
	return c.query(ctx, `*[_type == "product"]`)
}

// FetchByIDs returns the products with the given ids
func (c *Client) FetchByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf("%q", id)
	}
	return c.query(ctx, fmt.Sprintf(`*[_type == "product" && _id in [%s]]`, strings.Join(quoted, ",")))
}

func (c *Client) query(ctx context.Context, groq string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s?query=%s", c.baseURL, url.QueryEscape(groq))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content request failed with status %d", resp.StatusCode)
	}

	var envelope queryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode content response: %w", err)
	}
	if envelope.Result == nil {
		return []Product{}, nil
	}
	return envelope.Result, nil
}
