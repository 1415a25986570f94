package ebay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yxy-sys/stocksync/pkg/config"
)

func TestUpdateQuantity(t *testing.T) {
	var gotAuth string
	var gotQuantity int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/sell/inventory/v1/listing/123456789012/quantity" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var payload struct {
			Quantity int `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		gotQuantity = payload.Quantity
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(config.EbayConfig{BaseURL: server.URL, AuthToken: "token-123"})
	if err := client.UpdateQuantity(context.Background(), "123456789012", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
	if gotQuantity != 0 {
		t.Fatalf("expected quantity 0, got %d", gotQuantity)
	}
}

func TestUpdateQuantityValidation(t *testing.T) {
	client := NewClient(config.EbayConfig{BaseURL: "http://localhost"})
	if err := client.UpdateQuantity(context.Background(), "", 0); err == nil {
		t.Fatal("expected error for missing listing id")
	}
	if err := client.UpdateQuantity(context.Background(), "123", -1); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestUpdateQuantityErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(config.EbayConfig{BaseURL: server.URL})
	if err := client.UpdateQuantity(context.Background(), "123456789012", 0); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
