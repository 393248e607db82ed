package inmemdb

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/admin"
)

type adminRepository struct {
	db *DB
}

var _ admin.Repository = (*adminRepository)(nil)

func NewAdminRepository(db *DB) admin.Repository {
	return &adminRepository{db: db}
}

func (repo *adminRepository) rlock() (func(), error) {
	repo.db.mu.RLock()
	if repo.db.Fail != nil {
		repo.db.mu.RUnlock()
		return nil, repo.db.Fail
	}
	return repo.db.mu.RUnlock, nil
}

func (repo *adminRepository) CountStudents(context.Context) (int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return len(repo.db.profiles), nil
}

func (repo *adminRepository) CountTeachers(context.Context) (int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return repo.db.teachers, nil
}

func (repo *adminRepository) CountAttendance(context.Context) (int, int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, 0, err
	}
	defer unlock()

	var absent int
	for _, status := range repo.db.attendance {
		if status == admin.AttendanceAbsent {
			absent++
		}
	}
	return absent, len(repo.db.attendance), nil
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (repo *adminRepository) CountAnnouncements(_ context.Context, from, to time.Time) (int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int
	for _, a := range repo.db.announcements {
		if within(a.PublishedAt, from, to) {
			n++
		}
	}
	return n, nil
}

func (repo *adminRepository) SumPayments(_ context.Context, status string, from, to time.Time) (string, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return "", err
	}
	defer unlock()

	var sum float64
	for _, p := range repo.db.payments {
		if p.Status == status && within(p.paidAt, from, to) {
			sum += core.ParseNumeric(p.Amount)
		}
	}
	return strconv.FormatFloat(sum, 'f', 2, 64), nil
}

func (repo *adminRepository) CountPayments(_ context.Context, status string) (int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int
	for _, p := range repo.db.payments {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (repo *adminRepository) CountRequests(_ context.Context, status, requestType string) (int, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return 0, err
	}
	defer unlock()

	var n int
	for _, r := range repo.db.requests {
		if r.Status == status && (requestType == "" || r.Type == requestType) {
			n++
		}
	}
	return n, nil
}

func (repo *adminRepository) QueryRecentPayments(_ context.Context, limit int) ([]admin.PaymentRecord, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	entries := append([]paymentEntry{}, repo.db.payments...)
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].paidAt.Equal(entries[j].paidAt) {
			return entries[i].paidAt.After(entries[j].paidAt)
		}
		return entries[i].ID > entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	payments := make([]admin.PaymentRecord, 0, len(entries))
	for _, e := range entries {
		rec := e.PaymentRecord
		rec.Date = e.paidAt.Format("2006-01-02")
		if p, ok := repo.db.joinProfile(rec.StudentID); ok {
			rec.StudentName = &p.FullName
			rec.ClassName = &p.ClassName
		}
		payments = append(payments, rec)
	}
	return payments, nil
}

func (repo *adminRepository) QueryRecentRequests(_ context.Context, limit int) ([]admin.RequestRecord, error) {
	unlock, err := repo.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	entries := append([]requestEntry{}, repo.db.requests...)
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].submittedAt.Equal(entries[j].submittedAt) {
			return entries[i].submittedAt.After(entries[j].submittedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	requests := make([]admin.RequestRecord, 0, len(entries))
	for _, e := range entries {
		rec := e.RequestRecord
		rec.Date = e.submittedAt.Format("2006-01-02")
		if p, ok := repo.db.joinProfile(rec.StudentID); ok {
			rec.StudentName = &p.FullName
		}
		requests = append(requests, rec)
	}
	return requests, nil
}
