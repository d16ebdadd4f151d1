package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsSessionHeader(t *testing.T) {
	var gotSession string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = r.Header.Get("X-Session-ID")
		_ = json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sess-1")
	if _, err := client.FetchLines(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotSession != "sess-1" {
		t.Fatalf("expected session header sess-1, got %q", gotSession)
	}
}

func TestClientAddLinePostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cart" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["productId"] != "p1" {
			t.Errorf("unexpected productId %v", body["productId"])
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "l1", "productId": "p1", "quantity": "2"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sess-1")
	line, err := client.AddLine(context.Background(), "p1", dec("2"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if line.ID != "l1" || !line.Quantity.Equal(dec("2")) {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sess-1")
	err := client.RemoveLine(context.Background(), "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "not found" {
		t.Fatalf("unexpected api error %+v", apiErr)
	}
}

func TestClientFetchDeliveryFee(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/settings/delivery-fee" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"baseDeliveryFee": "3000"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sess-1")
	fee, err := client.FetchDeliveryFee(context.Background())
	if err != nil {
		t.Fatalf("fetch fee: %v", err)
	}
	if !fee.Equal(dec("3000")) {
		t.Fatalf("expected fee 3000, got %s", fee)
	}
}
