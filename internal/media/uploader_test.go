package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientUpload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/upload" {
				t.Errorf("path = %q, want /upload", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("authorization = %q", got)
			}

			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parse multipart: %v", err)
			}
			if got := r.FormValue("bucket"); got != "events" {
				t.Errorf("bucket = %q, want events", got)
			}

			f, hdr, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("form file: %v", err)
			}
			defer f.Close()
			if hdr.Filename != "banner.png" {
				t.Errorf("filename = %q", hdr.Filename)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"url":"https://media.example.com/events/banner.png"}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "secret", nil)
		url, err := c.Upload(context.Background(), "events", "banner.png", strings.NewReader("png-bytes"))

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://media.example.com/events/banner.png" {
			t.Fatalf("url = %q", url)
		}
	})

	t.Run("host_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bucket quota exceeded", http.StatusForbidden)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "", nil)
		_, err := c.Upload(context.Background(), "events", "banner.png", strings.NewReader("x"))

		if !errors.Is(err, ErrUploadFailed) {
			t.Fatalf("want ErrUploadFailed, got %v", err)
		}
	})

	t.Run("missing_url_in_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "", nil)
		_, err := c.Upload(context.Background(), "events", "banner.png", strings.NewReader("x"))

		if !errors.Is(err, ErrUploadFailed) {
			t.Fatalf("want ErrUploadFailed, got %v", err)
		}
	})
}
