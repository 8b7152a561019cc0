// internal/enrich/pipeline_test.go
//
// End-to-end run tests with sqlmock and in-memory fakes for the photo
// API and the media store.

package enrich

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/tidwall/gjson"

	"github.com/vitrinehq/vitrine/internal/media"
	"github.com/vitrinehq/vitrine/internal/stock"
)

//
// fakes
//

type fakePhotos struct {
	mu       sync.Mutex
	searches []string
	results  map[string][]stock.Photo
	failAll  bool
}

func (f *fakePhotos) Search(_ context.Context, q string) ([]stock.Photo, error) {
	f.mu.Lock()
	f.searches = append(f.searches, q)
	f.mu.Unlock()
	if f.failAll {
		return nil, fmt.Errorf("search down")
	}
	return f.results[q], nil
}

func (f *fakePhotos) Download(_ context.Context, url string) ([]byte, error) {
	return []byte("img:" + url), nil
}

type fakeStore struct {
	mu      sync.Mutex
	uploads []string
}

func (f *fakeStore) Put(_ context.Context, name string, data []byte) (*media.Upload, error) {
	f.mu.Lock()
	f.uploads = append(f.uploads, name)
	f.mu.Unlock()
	return &media.Upload{URL: "https://media.example/" + name, Size: int64(len(data))}, nil
}

func (f *fakeStore) MaxBytes() int64 { return 1 << 20 }

type fakeCache struct{ invalidated []uint64 }

func (f *fakeCache) Invalidate(siteID uint64) { f.invalidated = append(f.invalidated, siteID) }

//
// helpers
//

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func pageCols() []string {
	return []string{
		"id", "site_id", "slug", "title", "is_homepage", "is_published",
		"content", "version", "created_at", "updated_at",
	}
}

const heroDoc = `{"blocks":[{"id":"h1","type":"hero","data":{"heading":"Emergency Plumbing Repair","image":""}}]}`

func heroRow(version uint64) []driverValue {
	return []driverValue{
		uint64(10), uint64(1), "", "Home", 1, 1, []byte(heroDoc), version,
		time.Now(), time.Now(),
	}
}

type driverValue = driver.Value

func addRow(rows *sqlmock.Rows, vals []driverValue) *sqlmock.Rows {
	return rows.AddRow(vals...)
}

//
// tests
//

func TestRun_FillsSlotAndInvalidates(t *testing.T) {
	db, mock := newMock(t)

	// Site scan, then the fresh read before write-back.
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(10)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))
	mock.ExpectExec("UPDATE page").
		WillReturnResult(sqlmock.NewResult(0, 1))

	photos := &fakePhotos{results: map[string][]stock.Photo{
		"emergency plumbing repair": {{ID: 77, URL: "https://src.example/77.jpg"}},
	}}
	store := &fakeStore{}
	cache := &fakeCache{}

	p := &Pipeline{DB: db, Photos: photos, Store: store, Cache: cache}
	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Slots != 1 || stats.Queries != 1 || stats.Filled != 1 || stats.PagesUpdated != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if len(photos.searches) != 1 || photos.searches[0] != "emergency plumbing repair" {
		t.Fatalf("searches = %v", photos.searches)
	}
	if len(store.uploads) != 1 || store.uploads[0] != "emergency-plumbing-repair-77.jpg" {
		t.Fatalf("uploads = %v", store.uploads)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != 1 {
		t.Fatalf("invalidated = %v", cache.invalidated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRun_WriteBackPatchesOnlyEmptyFields(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))

	// By the fresh read, the admin has already set the image.
	filled := strings.Replace(heroDoc, `"image":""`, `"image":"https://media.example/manual.jpg"`, 1)
	row := heroRow(4)
	row[6] = []byte(filled)
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(10)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), row))
	// No UPDATE expected; nothing left to patch.

	photos := &fakePhotos{results: map[string][]stock.Photo{
		"emergency plumbing repair": {{ID: 77, URL: "https://src.example/77.jpg"}},
	}}
	p := &Pipeline{DB: db, Photos: photos, Store: &fakeStore{}, Cache: &fakeCache{}}

	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Filled != 0 || stats.PagesUpdated != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRun_RetriesCASOnce(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))

	// First write-back attempt loses the race.
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(10)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))
	mock.ExpectExec("UPDATE page").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Retry re-reads the bumped version and succeeds.
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(10)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(4)))
	mock.ExpectExec("UPDATE page").
		WillReturnResult(sqlmock.NewResult(0, 1))

	photos := &fakePhotos{results: map[string][]stock.Photo{
		"emergency plumbing repair": {{ID: 77, URL: "https://src.example/77.jpg"}},
	}}
	p := &Pipeline{DB: db, Photos: photos, Store: &fakeStore{}, Cache: &fakeCache{}}

	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Filled != 1 || stats.PagesUpdated != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestRun_SearchFailureLeavesSlotsEmpty(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))

	photos := &fakePhotos{failAll: true}
	cache := &fakeCache{}
	p := &Pipeline{DB: db, Photos: photos, Store: &fakeStore{}, Cache: cache}

	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Slots != 1 || stats.Filled != 0 || stats.PagesUpdated != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	// Invalidation still fires; the run may have written other pages.
	if len(cache.invalidated) != 1 {
		t.Fatalf("invalidated = %v", cache.invalidated)
	}
}

func TestRun_NoSlots(t *testing.T) {
	db, mock := newMock(t)

	doc := `{"blocks":[{"id":"t1","type":"text","data":{"content":"<p>All set.</p>"}}]}`
	row := heroRow(1)
	row[6] = []byte(doc)
	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(1)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), row))

	p := &Pipeline{DB: db, Photos: &fakePhotos{}, Store: &fakeStore{}}
	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Slots != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

// contentWith matches the UPDATE's content argument when the document
// carries the expected value at a gjson path.
type contentWith struct {
	path string
	want string
}

func (m contentWith) Match(v driver.Value) bool {
	b, ok := v.([]byte)
	if !ok {
		return false
	}
	return gjson.GetBytes(b, m.path).String() == m.want
}

// Sanity: the patched document must carry the imported URL at the right
// nested path.
func TestPatchPage_SetsNestedField(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM\\s+page").
		WithArgs(uint64(10)).
		WillReturnRows(addRow(sqlmock.NewRows(pageCols()), heroRow(3)))
	mock.ExpectExec("UPDATE page").
		WithArgs(
			contentWith{"blocks.0.data.image", "https://media.example/stock-77.jpg"},
			uint64(10), uint64(3),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &Pipeline{DB: db, Photos: &fakePhotos{}, Store: &fakeStore{}}
	a := &assignment{
		slot: Slot{PageID: 10, FieldPath: "blocks.0.data.image", Query: "q"},
		url:  "https://media.example/stock-77.jpg",
	}
	n, err := p.patchPage(context.Background(), 10, []*assignment{a})
	if err != nil {
		t.Fatalf("patchPage: %v", err)
	}
	if n != 1 {
		t.Fatalf("n = %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
