package student

import (
	"time"

	"github.com/ifag/portal/core/schedule"
)

// Profile is the flattened student profile (class, group, speciality and promotion).
type Profile struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	AvatarURL      *string `json:"avatar_url"`
	ClassID        int64   `json:"class_id"`
	GroupID        int64   `json:"group_id"`
	SpecialityID   int64   `json:"speciality_id"`
	ClassName      string  `json:"class_name"`
	GroupName      string  `json:"group_name"`
	SpecialityName string  `json:"speciality_name"`
	PromotionName  string  `json:"promotion_name"`
}

type GradeRecord struct {
	ModuleName  string  `json:"module_name"`
	Coefficient float64 `json:"coefficient"`
	Grade       float64 `json:"grade"` // 0-20
}

type NotesSummary struct {
	Average         float64       `json:"average"`
	ModulesCount    int           `json:"modules_count"`
	BestModuleName  string        `json:"best_module_name"`
	BestModuleGrade float64       `json:"best_module_grade"`
	Modules         []GradeRecord `json:"modules"`
}

// AbsenceRecord is one missed session. SessionType is "TD...", "TP..." or a lecture type.
type AbsenceRecord struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	ModuleName  *string `json:"module_name"`
	SessionType *string `json:"session_type"`
	Reason      *string `json:"reason"`
	Justified   bool    `json:"justified"`
}

// AbsenceAllowance is the number of TD and TP absences that amounts to 100%.
type AbsenceAllowance struct {
	TD int
	TP int
}

var DefaultAbsenceAllowance = AbsenceAllowance{TD: 30, TP: 30}

type AbsencesSummary struct {
	Total        int `json:"total"`
	TDCount      int `json:"td_count"`
	TPCount      int `json:"tp_count"`
	TDPercentage int `json:"td_percentage"`
	TPPercentage int `json:"tp_percentage"`
	Percentage   int `json:"percentage"` // TD/TP only, lectures excluded
}

type Announcement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}

// Target restricts an announcement to a class or a speciality.
type Target struct {
	ClassID      *int64 `json:"class_id"`
	SpecialityID *int64 `json:"speciality_id"`
}

type AcademicProgress struct {
	Percentage          float64 `json:"percentage"`
	Level               int     `json:"level"`
	Label               string  `json:"label"`
	CurrentSemesterName string  `json:"current_semester_name"`
	CompletedCredits    int     `json:"completed_credits"`
	TotalCredits        int     `json:"total_credits"`
	RemainingWeeks      int     `json:"remaining_weeks"`
}

type HolidaysProgress struct {
	Percentage    float64 `json:"percentage"`
	DaysUntilNext int     `json:"days_until_next"`
}

// Dashboard is the denormalized student view model.
type Dashboard struct {
	Student          Profile          `json:"student"`
	Schedule         []schedule.Slot  `json:"schedule"`
	NotesSummary     NotesSummary     `json:"notes_summary"`
	AbsencesCount    AbsencesSummary  `json:"absences_count"`
	AbsencesHistory  []AbsenceRecord  `json:"absences_history"`
	Announcements    []Announcement   `json:"announcements"`
	AcademicProgress AcademicProgress `json:"academic_progress"`
	HolidaysProgress HolidaysProgress `json:"holidays_progress"`
}
