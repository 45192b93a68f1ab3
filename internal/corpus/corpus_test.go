package corpus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ochipin/notey/internal/fetch"
)

const sampleIndex = `[
  {"url": "/guide/install.html", "title": "Install Guide", "content": "download and install", "topic": "guide"},
  {"url": "/api.html", "title": "API Reference", "content": "endpoints and payloads", "topic": "general"}
]`

func TestDecode(t *testing.T) {
	pages, err := Decode(strings.NewReader(sampleIndex))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 records, got %d", len(pages))
	}
	if pages[0].URL != "/guide/install.html" {
		t.Errorf("expected url /guide/install.html, got %s", pages[0].URL)
	}
	if pages[0].Title != "Install Guide" {
		t.Errorf("expected title Install Guide, got %s", pages[0].Title)
	}
	if pages[1].Topic != "general" {
		t.Errorf("expected topic general, got %s", pages[1].Topic)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"not json", "not json at all"},
		{"object instead of array", `{"url": "/a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected decode error, got nil")
			}
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	pages, err := Decode(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("expected no records, got %d", len(pages))
	}
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleIndex)
	}))
	defer srv.Close()

	client := fetch.NewClient(5*time.Second, "")
	pages, err := Load(context.Background(), client, srv.URL+"/search.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("expected 2 records, got %d", len(pages))
	}
}

func TestLoad_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nothing here", http.StatusNotFound)
	}))
	defer srv.Close()

	client := fetch.NewClient(5*time.Second, "")
	_, err := Load(context.Background(), client, srv.URL+"/search.json")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestLoad_Unreachable(t *testing.T) {
	client := fetch.NewClient(time.Second, "")
	if _, err := Load(context.Background(), client, "http://127.0.0.1:1/search.json"); err == nil {
		t.Fatal("expected transport error")
	}
}
