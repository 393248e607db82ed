package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ifag/portal/core/schedule"
)

type scheduleRepository struct {
	db sqlx.QueryerContext
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db sqlx.QueryerContext) *scheduleRepository {
	return &scheduleRepository{db: db}
}

type slotRow struct {
	Day       string      `db:"day"`
	Start     string      `db:"start"`
	End       string      `db:"end"`
	Subject   string      `db:"subject"`
	Room      null.String `db:"room"`
	Teacher   null.String `db:"teacher"`
	ClassName null.String `db:"class_name"`
	GroupName null.String `db:"group_name"`
}

func (r slotRow) slot() schedule.Slot {
	return schedule.Slot{
		Day:       r.Day,
		Start:     r.Start,
		End:       r.End,
		Subject:   r.Subject,
		Room:      strPtr(r.Room),
		Teacher:   r.Teacher.String,
		ClassName: r.ClassName.String,
		GroupName: r.GroupName.String,
	}
}

const selectSlots = `
SELECT
  day,
  to_char(start_time, 'HH24:MI') AS start,
  to_char(end_time, 'HH24:MI') AS "end",
  subject,
  room,
  teacher,
  class_name,
  group_name
FROM schedule`

func (repo scheduleRepository) QuerySlots(ctx context.Context, filter schedule.Filter) ([]schedule.Slot, error) {
	var (
		conds []string
		args  []interface{}
	)
	where := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, "lower(trim("+column+")) = lower(trim($"+strconv.Itoa(len(args))+"))")
	}
	where("day", filter.Day)
	where("class_name", filter.ClassName)
	where("group_name", filter.GroupName)

	q := selectSlots
	if len(conds) > 0 {
		q += "\nWHERE " + strings.Join(conds, " AND ")
	}
	q += "\nORDER BY day, start_time"

	var rows []slotRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "selecting schedule slots")
	}
	slots := make([]schedule.Slot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, r.slot())
	}
	return slots, nil
}
