package shop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractx "github.com/rndas/wallie/agent/contract"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: baseURL, Email: "voice-assistant@example.com"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchProductsNormalizesPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/products" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		// Price arrives as a number for one row and a numeric string
		// for the other, matching the store's wire behavior.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Smart Watch","price":149.99,"description":"Fitness tracking","category":"Wearables","imageUrl":"/img/watch.png"},
			{"id":2,"name":"Backpack","price":"69.99","description":"Travel backpack"}
		]`))
	}))
	defer srv.Close()

	products, err := newTestClient(t, srv.URL).FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}

	watch := products[0]
	if watch.ID != 1 || watch.Name != "Smart Watch" || watch.Price != "₹149.99" {
		t.Fatalf("watch = %+v", watch)
	}
	if watch.Category != "Wearables" || watch.ImageURL != "/img/watch.png" {
		t.Fatalf("watch metadata = %+v", watch)
	}

	pack := products[1]
	if pack.Price != "₹69.99" {
		t.Fatalf("string price formatted as %q", pack.Price)
	}
	if pack.Category != "General" {
		t.Fatalf("missing category defaulted to %q, want General", pack.Category)
	}
}

func TestAddToCartPostsRequest(t *testing.T) {
	t.Parallel()

	var got contractx.CartRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/voice-cart" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Item added to cart successfully"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(t, srv.URL).AddToCart(context.Background(), 4, 0)
	if err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
	if got.ProductID != 4 || got.Email != "voice-assistant@example.com" {
		t.Fatalf("request = %+v", got)
	}
	if got.Quantity != 1 {
		t.Fatalf("zero quantity sent as %d, want 1", got.Quantity)
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Product not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.AddToCart(context.Background(), 99, 1); err == nil || !strings.Contains(err.Error(), "status=404") {
		t.Fatalf("err = %v, want status in message", err)
	}
	if _, err := c.FetchProducts(context.Background()); err == nil {
		t.Fatalf("FetchProducts accepted an error status")
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{BaseURL: "", Email: "x@example.com"}); err == nil {
		t.Fatalf("empty base url accepted")
	}
	if _, err := NewClient(Config{BaseURL: "http://localhost:3000", Email: "  "}); err == nil {
		t.Fatalf("blank email accepted")
	}
	if _, err := NewClient(Config{BaseURL: "::bad::", Email: "x@example.com"}); err == nil {
		t.Fatalf("malformed base url accepted")
	}
}
