package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/student"
)

type studentRepository struct {
	db sqlx.QueryerContext
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db sqlx.QueryerContext) *studentRepository {
	return &studentRepository{db: db}
}

type profileRow struct {
	ID             int64       `db:"id"`
	FullName       string      `db:"full_name"`
	AvatarURL      null.String `db:"avatar_url"`
	ClassID        null.Int64  `db:"class_id"`
	GroupID        null.Int64  `db:"group_id"`
	SpecialityID   null.Int64  `db:"speciality_id"`
	ClassName      null.String `db:"class_name"`
	GroupName      null.String `db:"group_name"`
	SpecialityName null.String `db:"speciality_name"`
	PromotionName  null.String `db:"promotion_name"`
}

func (r profileRow) profile() student.Profile {
	return student.Profile{
		ID:             r.ID,
		FullName:       r.FullName,
		AvatarURL:      strPtr(r.AvatarURL),
		ClassID:        r.ClassID.Int64,
		GroupID:        r.GroupID.Int64,
		SpecialityID:   r.SpecialityID.Int64,
		ClassName:      r.ClassName.String,
		GroupName:      r.GroupName.String,
		SpecialityName: r.SpecialityName.String,
		PromotionName:  r.PromotionName.String,
	}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) GetProfile(ctx context.Context, id int64) (student.Profile, error) {
	const q = `
SELECT
  id,
  full_name,
  avatar_url,
  class_id,
  group_id,
  speciality_id,
  class_name,
  group_name,
  speciality_name,
  promotion_name
FROM v_student_profile
WHERE id = $1
LIMIT 1`

	var row profileRow
	if err := sqlx.GetContext(ctx, repo.db, &row, q, id); err != nil {
		return student.Profile{}, trapNoRowsErr(err, "selecting student profile")
	}
	return row.profile(), nil
}

type gradeRow struct {
	ModuleName  string       `db:"module_name"`
	Coefficient null.Float64 `db:"coefficient"`
	Grade       null.String  `db:"grade"`
}

func (repo studentRepository) QueryGrades(ctx context.Context, studentID int64) ([]student.GradeRecord, error) {
	const q = `
SELECT n.module_name, n.coefficient::float8 AS coefficient, n.grade::text AS grade
FROM notes n
WHERE n.student_id = $1`

	var rows []gradeRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}
	grades := make([]student.GradeRecord, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, student.GradeRecord{
			ModuleName:  r.ModuleName,
			Coefficient: r.Coefficient.Float64, // NULL -> 0 -> counted as 1
			Grade:       core.ParseNumeric(r.Grade.String),
		})
	}
	return grades, nil
}

type absenceRow struct {
	ID          int64       `db:"id"`
	Date        string      `db:"date"`
	ModuleName  null.String `db:"module_name"`
	SessionType null.String `db:"session_type"`
	Reason      null.String `db:"reason"`
	Justified   bool        `db:"justified"`
}

func (repo studentRepository) QueryAbsences(ctx context.Context, studentID int64) ([]student.AbsenceRecord, error) {
	const q = `
SELECT
  id,
  to_char(date, 'YYYY-MM-DD') AS date,
  module_name,
  session_type,
  reason,
  COALESCE(justified, false) AS justified
FROM absences
WHERE student_id = $1
ORDER BY date DESC, id DESC`

	var rows []absenceRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, studentID); err != nil {
		return nil, errors.Wrap(err, "selecting absences")
	}
	absences := make([]student.AbsenceRecord, 0, len(rows))
	for _, r := range rows {
		absences = append(absences, student.AbsenceRecord{
			ID:          r.ID,
			Date:        r.Date,
			ModuleName:  strPtr(r.ModuleName),
			SessionType: strPtr(r.SessionType),
			Reason:      strPtr(r.Reason),
			Justified:   r.Justified,
		})
	}
	return absences, nil
}

type announcementRow struct {
	ID          int64       `db:"id"`
	Title       string      `db:"title"`
	Content     null.String `db:"content"`
	PublishedAt null.Time   `db:"published_at"`
}

func (repo studentRepository) QueryAnnouncements(ctx context.Context, classID, specialityID int64, limit int) ([]student.Announcement, error) {
	const q = `
SELECT DISTINCT a.id, a.title, a.content, a.published_at
FROM announcements a
LEFT JOIN announcement_targets atg ON atg.announcement_id = a.id
WHERE a.is_published = TRUE
  AND a.published_at <= now()
  AND (atg.id IS NULL OR atg.class_id = $1 OR atg.speciality_id = $2)
ORDER BY a.published_at DESC, a.id DESC
LIMIT $3`

	var rows []announcementRow
	if err := sqlx.SelectContext(ctx, repo.db, &rows, q, classID, specialityID, limit); err != nil {
		return nil, errors.Wrap(err, "selecting announcements")
	}
	anns := make([]student.Announcement, 0, len(rows))
	for _, r := range rows {
		anns = append(anns, student.Announcement{
			ID:          r.ID,
			Title:       r.Title,
			Content:     r.Content.String,
			PublishedAt: r.PublishedAt.Time,
		})
	}
	return anns, nil
}
