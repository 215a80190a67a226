package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultBaseURL {
		t.Fatalf("host = %q, want %q", u.Host, defaultBaseURL)
	}

	u, err = parseBaseURL("https://rental.example.com/base?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotStatusQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/items":
			_ = json.NewEncoder(w).Encode([]Item{{ID: 1, Name: "Umbrella", Stock: 3, TotalStock: 10}})
		case "/api/rentals":
			gotStatusQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode([]Rental{{ID: 7, ItemName: "Umbrella", Status: StatusOngoing}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	items, err := c.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems returned error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Umbrella" {
		t.Fatalf("ListItems = %#v, want 1 umbrella", items)
	}

	rentals, err := c.ListRentals(ctx, StatusOngoing)
	if err != nil {
		t.Fatalf("ListRentals returned error: %v", err)
	}
	if len(rentals) != 1 || rentals[0].ID != 7 {
		t.Fatalf("ListRentals = %#v, want 1 rental id=7", rentals)
	}
	if gotStatusQuery.Get("status") != "ONGOING" {
		t.Fatalf("status query = %v, want ONGOING", gotStatusQuery)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("user agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}

	// No status filter: the query string must be absent entirely.
	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("unexpected query %q for unfiltered list", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]Rental{})
	})
	if _, err := c.ListRentals(ctx, ""); err != nil {
		t.Fatalf("ListRentals without filter returned error: %v", err)
	}
}

func TestClient_MutationsSendBodiesAndMethods(t *testing.T) {
	t.Parallel()

	type call struct {
		method string
		path   string
		body   string
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: string(raw)})
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/api/rentals/9/return":
			_ = json.NewEncoder(w).Encode(Rental{ID: 9, Status: StatusCompleted, ReturnDate: "2026-08-30T10:00:00Z"})
		case r.URL.Path == "/api/rentals":
			_ = json.NewEncoder(w).Encode(Rental{ID: 9, Status: StatusOngoing})
		default:
			_ = json.NewEncoder(w).Encode(Item{ID: 3, Name: "Charger"})
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.CreateItem(ctx, CreateItemRequest{Name: "Charger", Category: "electronics", Stock: 4}); err != nil {
		t.Fatalf("CreateItem returned error: %v", err)
	}
	name := "Charger v2"
	if _, err := c.UpdateItem(ctx, 3, UpdateItemRequest{Name: &name}); err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}
	if err := c.DeleteItem(ctx, 3); err != nil {
		t.Fatalf("DeleteItem returned error: %v", err)
	}
	if _, err := c.CreateRental(ctx, CreateRentalRequest{ItemID: 3, RenterName: "Han", ExpectedReturnDate: "2026-09-05T00:00:00Z"}); err != nil {
		t.Fatalf("CreateRental returned error: %v", err)
	}
	rental, err := c.ReturnRental(ctx, 9)
	if err != nil {
		t.Fatalf("ReturnRental returned error: %v", err)
	}
	if rental.Status != StatusCompleted || rental.ReturnDate == "" {
		t.Fatalf("ReturnRental = %#v, want completed with return date", rental)
	}

	want := []call{
		{"POST", "/api/items", `{"name":"Charger","category":"electronics","description":"","stock":4}`},
		{"PATCH", "/api/items/3", `{"name":"Charger v2"}`},
		{"DELETE", "/api/items/3", ""},
		{"POST", "/api/rentals", `{"itemId":3,"renterName":"Han","renterContact":"","expectedReturnDate":"2026-09-05T00:00:00Z"}`},
		{"POST", "/api/rentals/9/return", ""},
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %d, want %d", len(calls), len(want))
	}
	for i, c := range calls {
		if c != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, c, want[i])
		}
	}
}

func TestClient_ErrorResponsesCarryServerMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"item out of stock"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.CreateRental(context.Background(), CreateRentalRequest{ItemID: 1})
	if err == nil {
		t.Fatal("CreateRental succeeded, want error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "item out of stock" {
		t.Fatalf("APIError = %+v, want 409 with server message", apiErr)
	}
}

func TestParseTime_AcceptsBackendLayouts(t *testing.T) {
	cases := []struct {
		value string
		zero  bool
	}{
		{"2026-08-30T10:00:00Z", false},
		{"2026-08-30T10:00:00.123+09:00", false},
		{"2026-08-30 10:00:00", false},
		{"", true},
		{"not a time", true},
	}
	for _, tc := range cases {
		got := parseTime(tc.value)
		if got.IsZero() != tc.zero {
			t.Errorf("parseTime(%q).IsZero() = %v, want %v", tc.value, got.IsZero(), tc.zero)
		}
	}
}
