package inmemdb

import (
	"context"
	"sort"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) GetProfile(_ context.Context, id int64) (student.Profile, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	if repo.db.Fail != nil {
		return student.Profile{}, repo.db.Fail
	}

	if p, ok := repo.db.profiles[id]; ok {
		return p, nil
	}
	return student.Profile{}, student.ErrNotFound
}

func (repo *studentRepository) QueryGrades(_ context.Context, studentID int64) ([]student.GradeRecord, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	if repo.db.Fail != nil {
		return nil, repo.db.Fail
	}

	entries := repo.db.grades[studentID]
	grades := make([]student.GradeRecord, 0, len(entries))
	for _, e := range entries {
		grades = append(grades, student.GradeRecord{
			ModuleName:  e.module,
			Coefficient: e.coefficient,
			Grade:       core.ParseNumeric(e.grade),
		})
	}
	return grades, nil
}

func (repo *studentRepository) QueryAbsences(_ context.Context, studentID int64) ([]student.AbsenceRecord, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	if repo.db.Fail != nil {
		return nil, repo.db.Fail
	}

	absences := append([]student.AbsenceRecord{}, repo.db.absences[studentID]...)
	student.SortAbsences(absences)
	return absences, nil
}

func (repo *studentRepository) QueryAnnouncements(_ context.Context, classID, specialityID int64, limit int) ([]student.Announcement, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	if repo.db.Fail != nil {
		return nil, repo.db.Fail
	}

	now := repo.db.now()
	seen := make(map[int64]bool)
	anns := make([]student.Announcement, 0)
	for _, a := range repo.db.announcements {
		if !a.published || a.PublishedAt.After(now) || seen[a.ID] {
			continue
		}
		if student.Visible(a.targets, classID, specialityID) {
			seen[a.ID] = true
			anns = append(anns, a.Announcement)
		}
	}
	sort.SliceStable(anns, func(i, j int) bool {
		if !anns[i].PublishedAt.Equal(anns[j].PublishedAt) {
			return anns[i].PublishedAt.After(anns[j].PublishedAt)
		}
		return anns[i].ID > anns[j].ID
	})
	if limit > 0 && len(anns) > limit {
		anns = anns[:limit]
	}
	return anns, nil
}
