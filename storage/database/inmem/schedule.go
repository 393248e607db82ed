package inmemdb

import (
	"context"

	"github.com/ifag/portal/core/schedule"
)

type scheduleRepository struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepository)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) QuerySlots(_ context.Context, filter schedule.Filter) ([]schedule.Slot, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	if repo.db.Fail != nil {
		return nil, repo.db.Fail
	}

	slots := make([]schedule.Slot, 0)
	for _, s := range repo.db.slots {
		if filter.Matches(s) {
			slots = append(slots, s)
		}
	}
	schedule.Sort(slots)
	return slots, nil
}
