package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API defines the backend surface the rest of the application consumes.
// This interface is implemented by *Client and can be stubbed in tests.
type API interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int) (*Item, error)
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, id int, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id int) error
	ListRentals(ctx context.Context, status RentalStatus) ([]Rental, error)
	CreateRental(ctx context.Context, req CreateRentalRequest) (*Rental, error)
	UpdateRental(ctx context.Context, id int, req UpdateRentalRequest) (*Rental, error)
	DeleteRental(ctx context.Context, id int) error
	ReturnRental(ctx context.Context, id int) (*Rental, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// APIError is a non-2xx response, carrying the message body the server
// attached when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d", e.StatusCode)
}

// Client talks to the rental backend HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "127.0.0.1:8080"
	defaultUserAgent = "rentdeck/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base address. A bare host:port is
// treated as http.
func NewClient(base string) (*Client, error) {
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListItems retrieves every registered item.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem retrieves a single item by id.
func (c *Client) GetItem(ctx context.Context, id int) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem registers a new loanable item.
func (c *Client) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/api/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem patches item metadata. Stock is immutable after creation and
// is therefore absent from the request shape.
func (c *Client) UpdateItem(ctx context.Context, id int, req UpdateItemRequest) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/items/%d", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

// ListRentals retrieves rentals, optionally narrowed to one status. An
// empty status fetches everything.
func (c *Client) ListRentals(ctx context.Context, status RentalStatus) ([]Rental, error) {
	rel := &url.URL{Path: "/api/rentals"}
	if status != "" {
		values := url.Values{}
		values.Set("status", string(status))
		rel.RawQuery = values.Encode()
	}
	var rentals []Rental
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}

// CreateRental records a new rental transaction.
func (c *Client) CreateRental(ctx context.Context, req CreateRentalRequest) (*Rental, error) {
	var rental Rental
	if err := c.do(ctx, http.MethodPost, "/api/rentals", req, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

// UpdateRental patches rental metadata.
func (c *Client) UpdateRental(ctx context.Context, id int, req UpdateRentalRequest) (*Rental, error) {
	var rental Rental
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/rentals/%d", id), req, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

// DeleteRental removes a rental record.
func (c *Client) DeleteRental(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/rentals/%d", id), nil, nil)
}

// ReturnRental marks a rental as returned and reports the updated record.
func (c *Client) ReturnRental(ctx context.Context, id int) (*Rental, error) {
	var rental Rental
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/rentals/%d/return", id), nil, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls the "message" field out of an error body, falling
// back to the raw text for non-JSON responses.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", base, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
