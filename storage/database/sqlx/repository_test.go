package sqlxrepos

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ifag/portal/tests"
)

func setup(t *testing.T) (*sql.DB, *sqlx.DB) {
	db := testutil.PrepareDB(t)
	return db, NewDB(db)
}

func seedProfiles(t *testing.T, db *sql.DB) {
	testutil.Exec(t, db, `INSERT INTO classes (id, name) VALUES (10, 'L2 Informatique'), (11, 'L1 Gestion')`)
	testutil.Exec(t, db, `INSERT INTO student_groups (id, name) VALUES (100, 'G1'), (110, 'G2')`)
	testutil.Exec(t, db, `INSERT INTO specialities (id, name) VALUES (7, 'Informatique'), (8, 'Gestion')`)
	testutil.Exec(t, db, `INSERT INTO promotions (id, name) VALUES (1, '2024-2025')`)
	testutil.Exec(t, db, `
INSERT INTO students (id, full_name, avatar_url, class_id, group_id, speciality_id, promotion_id)
VALUES (1, 'Amina Diallo', NULL, 10, 100, 7, 1),
       (2, 'Moussa Ba', 'https://cdn.ifag.test/2.png', 11, 110, 8, NULL)`)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}
