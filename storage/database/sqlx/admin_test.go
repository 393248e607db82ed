package sqlxrepos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifag/portal/core/admin"
	"github.com/ifag/portal/tests"
)

func TestAdminRepository(t *testing.T) {
	sqlDB, db := setup(t)
	seedProfiles(t, sqlDB)
	testutil.Exec(t, sqlDB, `INSERT INTO teachers (full_name) VALUES ('Mme Sow'), ('M. Kane'), ('M. Ndiaye')`)
	testutil.Exec(t, sqlDB, `
INSERT INTO absences (id, student_id, date, status)
VALUES (1, 1, '2024-02-01', 'absent'), (2, 1, '2024-02-02', 'present'), (3, 2, '2024-02-03', 'absent'), (4, 2, '2024-02-04', 'late')`)
	testutil.Exec(t, sqlDB, `
INSERT INTO announcements (id, title, is_published, published_at)
VALUES (1, 'In', TRUE, $1), (2, 'Edge', TRUE, $2), (3, 'Out', TRUE, $3)`,
		date(2024, 2, 14), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	testutil.Exec(t, sqlDB, `
INSERT INTO payments (id, student_id, amount, status, payment_date)
VALUES (1, 1, 15000.50, 'completed', $1),
       (2, 42, 5000, 'pending', $1),
       (3, NULL, 2000, 'failed', $2),
       (4, 2, 1000, 'completed', $3)`,
		date(2024, 2, 10), date(2024, 2, 11), date(2024, 1, 20))
	testutil.Exec(t, sqlDB, `
INSERT INTO admin_requests (id, student_id, request_type, status, submitted_at)
VALUES (1, 1, 'Relevé papier', 'pending', $1),
       (2, 2, 'Duplicata', 'approved', $1),
       (3, 77, 'Duplicata', 'pending', $2)`,
		date(2024, 2, 10), date(2024, 2, 12))

	repo := NewAdminRepository(db)
	ctx := context.Background()
	from, to := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	n, err := repo.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountTeachers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	absent, total, err := repo.CountAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, absent)
	assert.Equal(t, 4, total)

	n, err = repo.CountAnnouncements(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	sum, err := repo.SumPayments(ctx, admin.PaymentCompleted, from, to)
	require.NoError(t, err)
	assert.Equal(t, "15000.50", sum)

	sum, err = repo.SumPayments(ctx, admin.PaymentCompleted, to, to.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "0", sum)

	n, err = repo.CountPayments(ctx, admin.PaymentPending)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountRequests(ctx, admin.RequestPending, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountRequests(ctx, admin.RequestPending, "Duplicata")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	payments, err := repo.QueryRecentPayments(ctx, 3)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, int64(3), payments[0].ID)
	assert.Nil(t, payments[0].StudentID)
	assert.Nil(t, payments[0].StudentName)
	assert.Equal(t, int64(2), payments[1].ID)
	assert.Nil(t, payments[1].StudentName) // no profile for student 42
	assert.Equal(t, "Amina Diallo", *payments[2].StudentName)
	assert.Equal(t, "L2 Informatique", *payments[2].ClassName)
	assert.Equal(t, "15000.50", payments[2].Amount)
	assert.Equal(t, "2024-02-10", payments[2].Date)

	requests, err := repo.QueryRecentRequests(ctx, 5)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{requests[0].ID, requests[1].ID, requests[2].ID})
	assert.Nil(t, requests[0].StudentName)
	assert.Equal(t, "Moussa Ba", *requests[1].StudentName)
	assert.Equal(t, "Duplicata", requests[1].Type)
}
