package theme

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func TestTokens_LenientDecode(t *testing.T) {
	r := &Record{DesignTokens: json.RawMessage(`{"radius": "12px", "color-primary": "#123456"}`)}
	got := r.Tokens()
	if got["radius"] != "12px" || got["color-primary"] != "#123456" {
		t.Fatalf("Tokens() = %v", got)
	}

	for _, raw := range []string{"", "null", "not json", `["a"]`} {
		r := &Record{DesignTokens: json.RawMessage(raw)}
		if m := r.Tokens(); len(m) != 0 {
			t.Errorf("Tokens(%q) = %v, want empty", raw, m)
		}
	}
}

func TestBySite_MissingRowYieldsDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM\\s+theme").WithArgs(uint64(5)).WillReturnError(sql.ErrNoRows)

	rec, err := BySite(context.Background(), sqlx.NewDb(db, "mysql"), 5)
	if err != nil {
		t.Fatalf("BySite: %v", err)
	}
	if rec.SiteID != 5 || rec.Template != "standard" || rec.ColorMode != ModeLight {
		t.Fatalf("defaults = %+v", rec)
	}
}
