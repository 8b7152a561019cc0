// internal/stock/client_test.go
//
// httptest-backed tests for the search client; no real API involved.

package stock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_QueryShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[
			{"id":11,"url":"https://img.example/11.jpg","width":1600,"height":900,"alt":"plumber at work"},
			{"id":12,"url":"https://img.example/12.jpg","width":1600,"height":900,"alt":"pipes"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 5)
	photos, err := c.Search(context.Background(), "emergency plumbing repair")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "test-key" {
		t.Errorf("auth = %q", gotAuth)
	}
	for k, want := range map[string]string{
		"query":       "emergency plumbing repair",
		"per_page":    "5",
		"orientation": "landscape",
		"license":     "free",
	} {
		if got := gotQuery[k]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", k, got, want)
		}
	}

	if len(photos) != 2 || photos[0].ID != 11 || photos[1].URL != "https://img.example/12.jpg" {
		t.Fatalf("photos = %+v", photos)
	}
}

func TestSearch_EmptyQuerySkipsNetwork(t *testing.T) {
	c := New("http://127.0.0.1:1", "k", 0) // would fail if dialed
	photos, err := c.Search(context.Background(), "")
	if err != nil || photos != nil {
		t.Fatalf("empty query: photos=%v err=%v", photos, err)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 1)
	if _, err := c.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected an error on non-200")
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 1)
	b, err := c.Download(context.Background(), srv.URL+"/11.jpg")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(b) != "jpeg-bytes" {
		t.Fatalf("body = %q", b)
	}
}
