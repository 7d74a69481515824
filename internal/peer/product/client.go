package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"promoservice/internal/peer"
	"promoservice/internal/pkg/metrics"
)

const peerName = "product"

// maxBodyBytes caps how much of a product service response is read.
const maxBodyBytes = 4 << 20

// Product mirrors the product service representation. Never stored locally.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ImageURL *string `json:"img_url,omitempty"`
	Price    float64 `json:"price"`
}

type bulkRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// Client calls the product service bulk endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL, e.g. http://products/api/v1/products.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// FetchByIDs resolves ids with a single POST {baseURL}/bulk.
// An empty ids slice returns an empty result without a network call.
// Any failure is returned as *peer.Error; deciding what to do with it is up to the caller.
func (c *Client) FetchByIDs(ctx context.Context, ids []int64) (products []Product, err error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	start := time.Now()
	defer func() { metrics.ObservePeer(peerName, start, err) }()

	body, err := json.Marshal(bulkRequest{ProductIDs: ids})
	if err != nil {
		return nil, c.fail(0, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bulk", bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, c.fail(resp.StatusCode, nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&products); err != nil {
		return nil, c.fail(0, fmt.Errorf("decode response: %w", err))
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

func (c *Client) fail(status int, err error) error {
	return &peer.Error{Peer: peerName, Op: "bulk lookup", StatusCode: status, Err: err}
}
