package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/store"
)

// Client is a thin JSON client for the server's /api/v1 endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
			return fmt.Errorf("server: %s (%s)", e.Error, resp.Status)
		}
		return fmt.Errorf("server: %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := c.do(ctx, http.MethodGet, "/api/v1/customers", nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context) (store.DashboardStats, error) {
	var out store.DashboardStats
	err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil, &out)
	return out, err
}

func (c *Client) UpcomingObligations(ctx context.Context, days int) ([]models.Obligation, error) {
	var out []models.Obligation
	err := c.do(ctx, http.MethodGet, "/api/v1/obligations/upcoming?days="+strconv.Itoa(days), nil, &out)
	return out, err
}

// TimelineResponse mirrors the /obligations/timeline payload.
type TimelineResponse struct {
	Entries []store.TimelineEntry `json:"entries"`
	Stats   store.TimelineStats   `json:"stats"`
}

func (c *Client) Timeline(ctx context.Context) (TimelineResponse, error) {
	var out TimelineResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/obligations/timeline", nil, &out)
	return out, err
}

func (c *Client) SearchAnswers(ctx context.Context, query string) ([]models.Answer, error) {
	var out []models.Answer
	err := c.do(ctx, http.MethodGet, "/api/v1/answers/search?q="+url.QueryEscape(query), nil, &out)
	return out, err
}

func (c *Client) SuggestAnswers(ctx context.Context, question string) ([]models.Answer, error) {
	var out []models.Answer
	err := c.do(ctx, http.MethodGet, "/api/v1/answers/suggest?question="+url.QueryEscape(question), nil, &out)
	return out, err
}

func (c *Client) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var out models.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/v1/snapshot", nil, &out)
	return out, err
}

func (c *Client) ReplaceSnapshot(ctx context.Context, snap models.Snapshot) error {
	return c.do(ctx, http.MethodPut, "/api/v1/snapshot", snap, nil)
}
