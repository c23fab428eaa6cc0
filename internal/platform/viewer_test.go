package platform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestViewerURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		primary  string
		fallback string
		wantErr  bool
	}{
		{"plain", "https://read.example.org/book/7", "https://read.example.org/book/7", "https://read.example.org/book/7/mobile", false},
		{"trailing slash", " https://read.example.org/book/7/ ", "https://read.example.org/book/7/", "https://read.example.org/book/7/mobile", false},
		{"empty", "", "", "", true},
		{"unsupported scheme", "javascript:alert(1)", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ViewerURLs(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoContent) {
					t.Fatalf("Expected ErrNoContent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if target.Primary != tt.primary || target.Fallback != tt.fallback {
				t.Errorf("Expected %q/%q, got %q/%q", tt.primary, tt.fallback, target.Primary, target.Fallback)
			}
		})
	}
}

func TestResolveFallsBackOnForbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/book/7" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	forbidden, _ := ViewerURLs(ts.URL + "/book/7")
	if got := forbidden.Resolve(context.Background(), ts.Client()); got != ts.URL+"/book/7/mobile" {
		t.Errorf("Expected mobile fallback, got %s", got)
	}

	allowed, _ := ViewerURLs(ts.URL + "/book/8")
	if got := allowed.Resolve(context.Background(), ts.Client()); got != ts.URL+"/book/8" {
		t.Errorf("Expected primary url, got %s", got)
	}
}

func TestResolveUnreachableKeepsPrimary(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	target, _ := ViewerURLs(base + "/book/1")
	if got := target.Resolve(context.Background(), nil); got != target.Primary {
		t.Errorf("Expected primary url, got %s", got)
	}
}

func TestOpenURL(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	if err := OpenURL(app, "https://read.example.org/book/1"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := OpenURL(nil, "https://read.example.org/book/1"); err == nil {
		t.Error("Expected error without app")
	}
}
