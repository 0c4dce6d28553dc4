// Package shop is the REST client for the product/cart collaborator:
// GET /api/products to fetch the catalog source, POST /api/voice-cart
// to record a cart addition. The core owns no wire format here; it is a
// pure consumer of these JSON contracts.
package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	catalogx "github.com/rndas/wallie/agent/catalog"
	contractx "github.com/rndas/wallie/agent/contract"
)

const maxResponseSizeBytes = 2 << 20

var _ contractx.ShopGateway = (*Client)(nil)

type Config struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"http://localhost:3000"`
	Email   string        `envconfig:"EMAIL" split_words:"true" default:"voice-assistant@example.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

type Client struct {
	baseURL    string
	email      string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("shop base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid shop base url: %w", err)
	}

	email := strings.TrimSpace(cfg.Email)
	if email == "" {
		return nil, errors.New("shop customer email is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		email:   email,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// productPayload is the wire shape of one product. Price arrives as a
// JSON number or a numeric string depending on the backing store.
type productPayload struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Price       flexPrice `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
}

type flexPrice string

func (p *flexPrice) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	*p = flexPrice(s)
	return nil
}

// FormatPrice prefixes a numeric price value with the currency symbol.
func FormatPrice(value string) string {
	return "₹" + value
}

// FetchProducts loads the product collection, normalized into catalog
// products with formatted prices.
func (c *Client) FetchProducts(ctx context.Context) ([]catalogx.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload []productPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	products := make([]catalogx.Product, 0, len(payload))
	for _, p := range payload {
		category := p.Category
		if category == "" {
			category = "General"
		}
		products = append(products, catalogx.Product{
			ID:          p.ID,
			Name:        p.Name,
			Price:       FormatPrice(string(p.Price)),
			Description: p.Description,
			Category:    category,
			ImageURL:    p.ImageURL,
		})
	}
	return products, nil
}

// AddToCart posts a cart addition for the configured customer email.
func (c *Client) AddToCart(ctx context.Context, productID int, quantity int) (contractx.CartResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	body, err := json.Marshal(contractx.CartRequest{
		ProductID: productID,
		Email:     c.email,
		Quantity:  quantity,
	})
	if err != nil {
		return contractx.CartResult{}, fmt.Errorf("marshal cart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/voice-cart", bytes.NewReader(body))
	if err != nil {
		return contractx.CartResult{}, fmt.Errorf("build cart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return contractx.CartResult{}, err
	}

	var result contractx.CartResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return contractx.CartResult{}, fmt.Errorf("decode cart response: %w", err)
	}
	return result, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute shop request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read shop response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("shop http status=%d body=%s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
