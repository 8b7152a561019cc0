// internal/page/repository_test.go
//
// Unit-tests for the compare-and-swap content update using sqlmock.
//
// Run: go test ./internal/page -v

package page

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestUpdateContent_CAS(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec("UPDATE page").
		WithArgs([]byte(`{"blocks":[]}`), uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := UpdateContent(context.Background(), db, 7, []byte(`{"blocks":[]}`), 3); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateContent_Conflict(t *testing.T) {
	db, mock := newMock(t)

	// Zero rows affected means another writer bumped the version first.
	mock.ExpectExec("UPDATE page").
		WithArgs([]byte(`{}`), uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := UpdateContent(context.Background(), db, 7, []byte(`{}`), 3)
	if err != ErrVersionConflict {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}
