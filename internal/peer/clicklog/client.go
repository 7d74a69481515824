package clicklog

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

const peerName = "clicklog"

// Entry is forwarded to the logging service and then discarded.
type Entry struct {
	AdvertisementID string  `json:"advertisement_id"`
	UserID          *string `json:"user_id"`
	SessionID       *string `json:"session_id"`
}

// Client delivers advertisement click entries to the logging service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, http: httpClient}
}

// Send issues one POST {baseURL}/advertisement-click. Any 2xx is success.
func (c *Client) Send(ctx context.Context, entry Entry) (err error) {
	start := time.Now()
	defer func() { metrics.ObservePeer(peerName, start, err) }()

	body, err := json.Marshal(entry)
	if err != nil {
		return c.fail(0, fmt.Errorf("marshal entry: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/advertisement-click", bytes.NewReader(body))
	if err != nil {
		return c.fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(0, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(resp.StatusCode, nil)
	}
	return nil
}

func (c *Client) fail(status int, err error) error {
	return &peer.Error{Peer: peerName, Op: "send click", StatusCode: status, Err: err}
}
