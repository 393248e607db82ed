package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ifag/portal/core/admin"
)

type adminRepository struct {
	db sqlx.QueryerContext
}

var _ admin.Repository = (*adminRepository)(nil) // interface compliance check

func NewAdminRepository(db sqlx.QueryerContext) *adminRepository {
	return &adminRepository{db: db}
}

func (repo adminRepository) count(ctx context.Context, msg, q string, args ...interface{}) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, repo.db, &n, q, args...); err != nil {
		return 0, errors.Wrap(err, msg)
	}
	return n, nil
}

func (repo adminRepository) CountStudents(ctx context.Context) (int, error) {
	return repo.count(ctx, "counting students", `SELECT COUNT(*)::int FROM students`)
}

func (repo adminRepository) CountTeachers(ctx context.Context) (int, error) {
	return repo.count(ctx, "counting teachers", `SELECT COUNT(*)::int FROM teachers`)
}

func (repo adminRepository) CountAttendance(ctx context.Context) (int, int, error) {
	const q = `
SELECT
  COALESCE(SUM(CASE WHEN status = $1 THEN 1 ELSE 0 END), 0)::int AS absent,
  COUNT(*)::int AS total
FROM absences`

	var row struct {
		Absent int `db:"absent"`
		Total  int `db:"total"`
	}
	if err := sqlx.GetContext(ctx, repo.db, &row, q, admin.AttendanceAbsent); err != nil {
		return 0, 0, errors.Wrap(err, "counting attendance")
	}
	return row.Absent, row.Total, nil
}

func (repo adminRepository) CountAnnouncements(ctx context.Context, from, to time.Time) (int, error) {
	return repo.count(ctx, "counting announcements",
		`SELECT COUNT(*)::int FROM announcements WHERE published_at >= $1 AND published_at < $2`, from, to)
}

func (repo adminRepository) SumPayments(ctx context.Context, status string, from, to time.Time) (string, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0)::text
FROM payments
WHERE status = $1 AND payment_date >= $2 AND payment_date < $3`

	var sum null.String
	if err := sqlx.GetContext(ctx, repo.db, &sum, q, status, from, to); err != nil {
		return "", errors.Wrap(err, "summing payments")
	}
	return sum.String, nil
}

func (repo adminRepository) CountPayments(ctx context.Context, status string) (int, error) {
	return repo.count(ctx, "counting payments", `SELECT COUNT(*)::int FROM payments WHERE status = $1`, status)
}

func (repo adminRepository) CountRequests(ctx context.Context, status, requestType string) (int, error) {
	if requestType == "" {
		return repo.count(ctx, "counting requests", `SELECT COUNT(*)::int FROM admin_requests WHERE status = $1`, status)
	}
	return repo.count(ctx, "counting requests",
		`SELECT COUNT(*)::int FROM admin_requests WHERE status = $1 AND request_type = $2`, status, requestType)
}

type paymentRow struct {
	ID          int64       `db:"id"`
	StudentID   null.Int64  `db:"student_id"`
	StudentName null.String `db:"student_full_name"`
	ClassName   null.String `db:"class_name"`
	Amount      null.String `db:"amount"`
	Status      string      `db:"status"`
	Date        null.String `db:"date"`
}

func (repo adminRepository) QueryRecentPayments(ctx context.Context, limit int) ([]admin.PaymentRecord, error) {
	const q = `
SELECT
  p.id,
  p.student_id,
  sp.full_name AS student_full_name,
  sp.class_name,
  p.amount::text AS amount,
  p.status,
  to_char(p.payment_date, 'YYYY-MM-DD') AS date
FROM payments p
LEFT JOIN v_student_profile sp ON sp.id = p.student_id
ORDER BY p.payment_date DESC, p.id DESC
LIMIT $1`

	var rows []paymentRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, limit); err != nil {
		return nil, errors.Wrap(err, "selecting recent payments")
	}
	payments := make([]admin.PaymentRecord, 0, len(rows))
	for _, r := range rows {
		payments = append(payments, admin.PaymentRecord{
			ID:          r.ID,
			StudentID:   int64Ptr(r.StudentID),
			StudentName: strPtr(r.StudentName),
			ClassName:   strPtr(r.ClassName),
			Amount:      r.Amount.String,
			Status:      r.Status,
			Date:        r.Date.String,
		})
	}
	return payments, nil
}

type requestRow struct {
	ID          int64       `db:"id"`
	StudentID   null.Int64  `db:"student_id"`
	StudentName null.String `db:"student_full_name"`
	Type        string      `db:"request_type"`
	Status      string      `db:"status"`
	Date        null.String `db:"date"`
}

func (repo adminRepository) QueryRecentRequests(ctx context.Context, limit int) ([]admin.RequestRecord, error) {
	const q = `
SELECT
  ar.id,
  ar.student_id,
  sp.full_name AS student_full_name,
  ar.request_type,
  ar.status,
  to_char(ar.submitted_at, 'YYYY-MM-DD') AS date
FROM admin_requests ar
LEFT JOIN v_student_profile sp ON sp.id = ar.student_id
ORDER BY ar.submitted_at DESC, ar.id DESC
LIMIT $1`

	var rows []requestRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, limit); err != nil {
		return nil, errors.Wrap(err, "selecting recent requests")
	}
	requests := make([]admin.RequestRecord, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, admin.RequestRecord{
			ID:          r.ID,
			StudentID:   int64Ptr(r.StudentID),
			StudentName: strPtr(r.StudentName),
			Type:        r.Type,
			Status:      r.Status,
			Date:        r.Date.String,
		})
	}
	return requests, nil
}
