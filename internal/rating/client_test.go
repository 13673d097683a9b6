package rating

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestServerClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &Client{
		HTTPClient:  http.Client{Timeout: 5 * time.Second},
		APIURL:      server.URL + "/v1.4/movie/search?query=",
		APIKey:      "test-key",
		Limiter:     rate.NewLimiter(rate.Inf, 1),
		MaxRetries:  3,
		BaseBackoff: 10 * time.Millisecond,
	}
	return client, server
}

func TestLookup_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("expected X-API-KEY header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"docs": [
				{"id": 326, "name": "Побег из Шоушенка", "year": 1994, "rating": {"kp": 9.1, "imdb": 9.3}}
			]
		}`)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()

	movie, err := client.Lookup(context.Background(), "Shawshank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie == nil {
		t.Fatal("expected a movie, got nil")
	}
	if movie.ID != 326 || movie.Year != 1994 {
		t.Errorf("unexpected movie: %+v", movie)
	}
	if movie.Rating.KP != 9.1 || movie.Rating.IMDB != 9.3 {
		t.Errorf("unexpected rating: %+v", movie.Rating)
	}
}

func TestLookup_NoMatch(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"docs": []}`)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()

	movie, err := client.Lookup(context.Background(), "No Such Film")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie != nil {
		t.Errorf("expected nil movie, got %+v", movie)
	}
}

func TestLookup_Non200IsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()

	movie, err := client.Lookup(context.Background(), "Casablanca")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie != nil {
		t.Errorf("expected nil movie, got %+v", movie)
	}
}

func TestLookup_MissingKeySkipsRequest(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()
	client.APIKey = ""

	movie, err := client.Lookup(context.Background(), "Casablanca")
	if err != nil || movie != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", movie, err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no HTTP calls, got %d", calls.Load())
	}
}

func TestLookup_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"docs": [{"id": 1, "name": "Casablanca", "year": 1942, "rating": {"kp": 8.1, "imdb": 8.5}}]}`)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()

	movie, err := client.Lookup(context.Background(), "Casablanca")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movie == nil || movie.Name != "Casablanca" {
		t.Fatalf("unexpected movie: %+v", movie)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestLookup_RetriesExhausted(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client, server := newTestServerClient(handler)
	defer server.Close()

	if _, err := client.Lookup(context.Background(), "Casablanca"); err == nil {
		t.Fatal("expected an error after exhausting retries")
	}
}
