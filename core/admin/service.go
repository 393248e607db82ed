package admin

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ifag/portal/core"
)

var nowFunc = time.Now // mockable

type (
	Repository interface {
		CountStudents(ctx context.Context) (int, error)
		CountTeachers(ctx context.Context) (int, error)
		// CountAttendance returns the number of absent records and the number of all records.
		CountAttendance(ctx context.Context) (absent, total int, err error)
		// CountAnnouncements counts announcements published in [from, to).
		CountAnnouncements(ctx context.Context, from, to time.Time) (int, error)
		// SumPayments returns the NUMERIC sum, as text, of the payments with status made in [from, to).
		SumPayments(ctx context.Context, status string, from, to time.Time) (string, error)
		CountPayments(ctx context.Context, status string) (int, error)
		// CountRequests counts the requests with status; an empty requestType matches every type.
		CountRequests(ctx context.Context, status, requestType string) (int, error)
		// QueryRecentPayments returns the latest payments, newest first.
		QueryRecentPayments(ctx context.Context, limit int) ([]PaymentRecord, error)
		// QueryRecentRequests returns the latest requests, newest first.
		QueryRecentRequests(ctx context.Context, limit int) ([]RequestRecord, error)
	}

	Service interface {
		GetStats(ctx context.Context) (Stats, error)
		GetOverview(ctx context.Context, filter OverviewFilter) (Overview, error)
	}

	Options struct {
		RecentLimit  int
		RequestTypes []string // pending counts reported per type when no filter is given
		QueryTimeout time.Duration
	}

	service struct {
		repo Repository
		opts Options
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, opts Options) Service {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}
	return &service{repo: repo, opts: opts}
}

// OptionsFromConfig maps the dashboard settings to aggregator options.
func OptionsFromConfig(conf core.DashboardConfig) Options {
	return Options{
		RecentLimit:  conf.RecentLimit,
		RequestTypes: conf.RequestTypes,
		QueryTimeout: conf.QueryTimeout,
	}
}

func (svc *service) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if svc.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, svc.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

// monthBounds returns the first instant of t's month and of the following one.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

func (svc *service) GetStats(ctx context.Context) (Stats, error) {
	ctx, cancel := svc.queryContext(ctx)
	defer cancel()

	var (
		g             errgroup.Group
		stats         Stats
		absent, total int
	)
	from, to := monthBounds(nowFunc())

	g.Go(func() (err error) {
		stats.StudentsCount, err = svc.repo.CountStudents(ctx)
		return errors.Wrap(err, "counting students")
	})
	g.Go(func() (err error) {
		stats.TeachersCount, err = svc.repo.CountTeachers(ctx)
		return errors.Wrap(err, "counting teachers")
	})
	g.Go(func() (err error) {
		absent, total, err = svc.repo.CountAttendance(ctx)
		return errors.Wrap(err, "counting attendance")
	})
	g.Go(func() (err error) {
		stats.AnnouncementsThisMonth, err = svc.repo.CountAnnouncements(ctx, from, to)
		return errors.Wrap(err, "counting announcements")
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats.AttendanceRate = AttendanceRate(absent, total)
	return stats, nil
}

func (svc *service) GetOverview(ctx context.Context, filter OverviewFilter) (Overview, error) {
	ctx, cancel := svc.queryContext(ctx)
	defer cancel()

	types := svc.opts.RequestTypes
	if rt := core.CleanString(filter.RequestType); rt != "" {
		types = []string{rt}
	}

	var (
		g        errgroup.Group
		mu       sync.Mutex
		ov       Overview
		sum      string
		payments []PaymentRecord
		requests []RequestRecord
	)
	ov.Requests.PendingByType = make(map[string]int, len(types))
	from, to := monthBounds(nowFunc())

	g.Go(func() (err error) {
		sum, err = svc.repo.SumPayments(ctx, PaymentCompleted, from, to)
		return errors.Wrap(err, "summing payments")
	})
	g.Go(func() (err error) {
		ov.Payments.PendingPayments, err = svc.repo.CountPayments(ctx, PaymentPending)
		return errors.Wrap(err, "counting pending payments")
	})
	g.Go(func() (err error) {
		ov.Payments.FailedPayments, err = svc.repo.CountPayments(ctx, PaymentFailed)
		return errors.Wrap(err, "counting failed payments")
	})
	g.Go(func() (err error) {
		ov.Requests.PendingRequests, err = svc.repo.CountRequests(ctx, RequestPending, "")
		return errors.Wrap(err, "counting pending requests")
	})
	for _, rt := range types {
		rt := rt
		g.Go(func() error {
			n, err := svc.repo.CountRequests(ctx, RequestPending, rt)
			if err != nil {
				return errors.Wrapf(err, "counting pending %q requests", rt)
			}
			mu.Lock()
			ov.Requests.PendingByType[rt] = n
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() (err error) {
		payments, err = svc.repo.QueryRecentPayments(ctx, svc.opts.RecentLimit)
		return errors.Wrap(err, "querying recent payments")
	})
	g.Go(func() (err error) {
		requests, err = svc.repo.QueryRecentRequests(ctx, svc.opts.RecentLimit)
		return errors.Wrap(err, "querying recent requests")
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	ov.Payments.TotalCollectedThisMonth = core.ParseNumeric(sum)
	ov.LatestPayments = make([]RecentPayment, 0, len(payments))
	for _, p := range payments {
		ov.LatestPayments = append(ov.LatestPayments, toRecentPayment(p))
	}
	ov.LatestRequests = make([]RecentRequest, 0, len(requests))
	for _, r := range requests {
		ov.LatestRequests = append(ov.LatestRequests, toRecentRequest(r))
	}
	return ov, nil
}
