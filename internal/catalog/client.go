package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL points at the public Fake Store API.
const DefaultBaseURL = "https://fakestoreapi.com"

var ErrProductNotFound = errors.New("product not found")

// Client fetches the product catalog from the remote read-only API. The
// remote returns the complete product set in one response; there is no
// pagination, no retries and no cache beyond whatever the caller holds.
type Client struct {
	baseURL string
	client  *http.Client
	sfg     singleflight.Group // Dedupes concurrent fetches of the same resource
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	v, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		var products []Product
		if err := c.getJSON(ctx, "/products", &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}

// Product returns a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	v, err, _ := c.sfg.Do(fmt.Sprintf("product:%d", id), func() (interface{}, error) {
		var product *Product
		if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
			return nil, err
		}
		// The remote answers missing ids with a null body instead of a 404.
		if product == nil {
			return nil, ErrProductNotFound
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}

// Categories returns the category names known to the catalog. The list is
// fetched independently of the product list; the two can disagree.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	v, err, _ := c.sfg.Do("categories", func() (interface{}, error) {
		var categories []string
		if err := c.getJSON(ctx, "/products/categories", &categories); err != nil {
			return nil, err
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
