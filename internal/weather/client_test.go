package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestClient_CurrentTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("appid") != "secret" || q.Get("units") != "metric" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch q.Get("q") {
		case "Sochi":
			_, _ = w.Write([]byte(`{"main":{"temp":27.6,"feels_like":29},"name":"Sochi"}`))
		case "Broken":
			_, _ = w.Write([]byte(`{"main":`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 2*time.Second, zap.NewNop())

	tests := []struct {
		name   string
		city   string
		want   float64
		wantOK bool
	}{
		{"rounded temperature", "Sochi", 28, true},
		{"unknown city", "Atlantis", 0, false},
		{"malformed body", "Broken", 0, false},
		{"empty city", "  ", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.CurrentTemperature(context.Background(), tt.city)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("want (%v, %v), got (%v, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestClient_TimeoutMeansNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"main":{"temp":30}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", 20*time.Millisecond, zap.NewNop())
	if _, ok := c.CurrentTemperature(context.Background(), "Slow"); ok {
		t.Fatalf("timed out lookup must report no data")
	}
}

func TestNoop(t *testing.T) {
	if _, ok := (Noop{}).CurrentTemperature(context.Background(), "Paris"); ok {
		t.Fatalf("noop must never return data")
	}
}
