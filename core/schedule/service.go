package schedule

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ifag/portal/core"
)

type (
	Repository interface {
		// QuerySlots returns the slots selected by filter ordered by day then start time.
		QuerySlots(ctx context.Context, filter Filter) ([]Slot, error)
	}

	Service interface {
		Query(ctx context.Context, filter Filter) ([]Slot, error)
		// ForGroup returns the timetable of a class group.
		ForGroup(ctx context.Context, className, groupName string) ([]Slot, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context, filter Filter) ([]Slot, error) {
	filter.Clean()
	slots, err := svc.repo.QuerySlots(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying schedule slots")
	}
	res := make([]Slot, 0, len(slots))
	for _, s := range slots {
		res = append(res, normalize(s))
	}
	return res, nil
}

func (svc *service) ForGroup(ctx context.Context, className, groupName string) ([]Slot, error) {
	// an empty key would widen the lookup to every group
	if core.CleanString(className) == "" || core.CleanString(groupName) == "" {
		return []Slot{}, nil
	}
	return svc.Query(ctx, Filter{ClassName: className, GroupName: groupName})
}
