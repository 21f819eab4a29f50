package httputils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPostJSONWithHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Key") != "k" || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("missing headers: %v", r.Header)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := PostJSONWithHeaders(context.Background(), srv.Client(), srv.URL, map[string]string{"X-Key": "k"}, map[string]string{"a": "b"}, &out)
	if err != nil {
		t.Fatalf("PostJSONWithHeaders: %v", err)
	}
	if !out.OK {
		t.Error("expected decoded response")
	}
}

func TestPostJSONWithHeadersBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := PostJSONWithHeaders(context.Background(), srv.Client(), srv.URL, nil, struct{}{}, nil)
	if err == nil || !strings.Contains(err.Error(), "502") {
		t.Errorf("expected 502 error, got %v", err)
	}
}
