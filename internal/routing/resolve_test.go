// internal/routing/resolve_test.go
//
// Tests for path canonicalisation and page resolution, including the
// draft-visibility gate.

package routing

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestCleanPath(t *testing.T) {
	cases := map[string]string{
		"/":           "/",
		"":            "/",
		"/about":      "/about",
		"/About/":     "/about",
		"/a/b":        "",
		"/../etc":     "",
		"no-slash":    "",
		"/services/":  "/services",
	}
	for in, want := range cases {
		if got := CleanPath(in); got != want {
			t.Errorf("CleanPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeSlug(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":    "hello-world",
		"  —émoji 🎉 ok  ": "moji-ok",
		"!!!":              "page",
		"Plumbing & Heat":  "plumbing-heat",
	}
	for in, want := range cases {
		if got := MakeSlug(in); got != want {
			t.Errorf("MakeSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPagePath(t *testing.T) {
	if got := PagePath(""); got != "/" {
		t.Fatalf("PagePath(\"\") = %q", got)
	}
	if got := PagePath("about"); got != "/about" {
		t.Fatalf("PagePath(about) = %q", got)
	}
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func pageRows(published bool) *sqlmock.Rows {
	pub := 0
	if published {
		pub = 1
	}
	return sqlmock.NewRows([]string{
		"id", "site_id", "slug", "title", "is_homepage", "is_published",
		"content", "version", "created_at", "updated_at",
	}).AddRow(4, 1, "about", "About Us", 0, pub, []byte(`{"blocks":[]}`), 1,
		time.Now(), time.Now())
}

func TestResolvePage_PublishedSlug(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1), "about").
		WillReturnRows(pageRows(true))

	rec, err := ResolvePage(context.Background(), db, 1, "/About/", false)
	if err != nil {
		t.Fatalf("ResolvePage: %v", err)
	}
	if rec.Slug != "about" {
		t.Fatalf("slug = %q", rec.Slug)
	}
}

func TestResolvePage_DraftHiddenPublicly(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1), "about").
		WillReturnRows(pageRows(false))

	if _, err := ResolvePage(context.Background(), db, 1, "/about", false); err != ErrNoPage {
		t.Fatalf("err = %v, want ErrNoPage", err)
	}
}

func TestResolvePage_DraftVisibleInPreview(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1), "about").
		WillReturnRows(pageRows(false))

	rec, err := ResolvePage(context.Background(), db, 1, "/about", true)
	if err != nil {
		t.Fatalf("ResolvePage: %v", err)
	}
	if rec.IsPublished {
		t.Fatal("expected a draft record")
	}
}

func TestResolvePage_NestedPathIsNoPage(t *testing.T) {
	db, _ := newMock(t)
	if _, err := ResolvePage(context.Background(), db, 1, "/a/b", false); err != ErrNoPage {
		t.Fatalf("err = %v, want ErrNoPage", err)
	}
}
