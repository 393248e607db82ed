package student

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/schedule"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		// GetProfile returns ErrNotFound when no profile row matches id.
		GetProfile(ctx context.Context, id int64) (Profile, error)
		QueryGrades(ctx context.Context, studentID int64) ([]GradeRecord, error)
		// QueryAbsences returns the absence history ordered by date then id, both descending.
		QueryAbsences(ctx context.Context, studentID int64) ([]AbsenceRecord, error)
		// QueryAnnouncements returns up to limit distinct published announcements visible
		// to the class or speciality, newest first.
		QueryAnnouncements(ctx context.Context, classID, specialityID int64, limit int) ([]Announcement, error)
	}

	Service interface {
		GetProfile(ctx context.Context, id int64) (Profile, error)
		GetDashboard(ctx context.Context, id int64) (Dashboard, error)
	}

	Options struct {
		Allowance          AbsenceAllowance
		AnnouncementsLimit int
		// QueryTimeout bounds the sub-queries of one aggregation. They are detached
		// from the caller's cancellation: an aborted request lets them complete.
		QueryTimeout     time.Duration
		AcademicProgress AcademicProgress
		HolidaysProgress HolidaysProgress
	}

	service struct {
		repo      Repository
		schedules schedule.Service
		opts      Options
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, schedules schedule.Service, opts Options) Service {
	if opts.AnnouncementsLimit <= 0 {
		opts.AnnouncementsLimit = 5
	}
	if opts.Allowance == (AbsenceAllowance{}) {
		opts.Allowance = DefaultAbsenceAllowance
	}
	return &service{repo: repo, schedules: schedules, opts: opts}
}

// OptionsFromConfig maps the dashboard settings to aggregator options.
func OptionsFromConfig(conf core.DashboardConfig) Options {
	return Options{
		Allowance:          AbsenceAllowance{TD: conf.MaxTDAbsences, TP: conf.MaxTPAbsences},
		AnnouncementsLimit: conf.AnnouncementsLimit,
		QueryTimeout:       conf.QueryTimeout,
		AcademicProgress: AcademicProgress{
			Percentage:          conf.AcademicPercentage,
			Level:               conf.AcademicLevel,
			Label:               conf.AcademicLabel,
			CurrentSemesterName: conf.AcademicSemester,
			CompletedCredits:    conf.AcademicCompletedCredits,
			TotalCredits:        conf.AcademicTotalCredits,
			RemainingWeeks:      conf.AcademicRemainingWeeks,
		},
		HolidaysProgress: HolidaysProgress{
			Percentage:    conf.HolidaysPercentage,
			DaysUntilNext: conf.HolidaysDaysUntilNext,
		},
	}
}

func (svc *service) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if svc.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, svc.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

func (svc *service) GetProfile(ctx context.Context, id int64) (Profile, error) {
	ctx, cancel := svc.queryContext(ctx)
	defer cancel()
	return svc.getProfile(ctx, id)
}

func (svc *service) getProfile(ctx context.Context, id int64) (Profile, error) {
	p, err := svc.repo.GetProfile(ctx, id)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Profile{}, ErrNotFound
		}
		return Profile{}, errors.Wrap(err, "loading profile")
	}
	return p, nil
}

// GetDashboard loads the profile, then the schedule, grades, absences and announcements
// concurrently. Any failure fails the whole dashboard.
func (svc *service) GetDashboard(ctx context.Context, id int64) (Dashboard, error) {
	ctx, cancel := svc.queryContext(ctx)
	defer cancel()

	p, err := svc.getProfile(ctx, id)
	if err != nil {
		return Dashboard{}, err
	}

	var (
		g             errgroup.Group
		slots         []schedule.Slot
		grades        []GradeRecord
		absences      []AbsenceRecord
		announcements []Announcement
	)
	g.Go(func() (err error) {
		slots, err = svc.schedules.ForGroup(ctx, p.ClassName, p.GroupName)
		return errors.Wrap(err, "loading schedule")
	})
	g.Go(func() (err error) {
		grades, err = svc.repo.QueryGrades(ctx, p.ID)
		return errors.Wrap(err, "loading grades")
	})
	g.Go(func() (err error) {
		absences, err = svc.repo.QueryAbsences(ctx, p.ID)
		return errors.Wrap(err, "loading absences")
	})
	g.Go(func() (err error) {
		announcements, err = svc.repo.QueryAnnouncements(ctx, p.ClassID, p.SpecialityID, svc.opts.AnnouncementsLimit)
		return errors.Wrap(err, "loading announcements")
	})
	if err = g.Wait(); err != nil {
		return Dashboard{}, err
	}

	if slots == nil {
		slots = []schedule.Slot{}
	}
	if absences == nil {
		absences = []AbsenceRecord{}
	}
	if announcements == nil {
		announcements = []Announcement{}
	}

	return Dashboard{
		Student:          p,
		Schedule:         slots,
		NotesSummary:     ComputeNotesSummary(grades),
		AbsencesCount:    ComputeAbsencesSummary(absences, svc.opts.Allowance),
		AbsencesHistory:  absences,
		Announcements:    announcements,
		AcademicProgress: svc.opts.AcademicProgress,
		HolidaysProgress: svc.opts.HolidaysProgress,
	}, nil
}
