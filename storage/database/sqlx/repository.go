package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"
)

// NewDB wraps the shared pool for the repositories of this package.
func NewDB(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

func strPtr(s null.String) *string {
	return s.Ptr()
}

func int64Ptr(i null.Int64) *int64 {
	return i.Ptr()
}
