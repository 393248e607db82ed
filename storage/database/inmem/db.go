package inmemdb

import (
	"sync"
	"time"

	"github.com/ifag/portal/core/admin"
	"github.com/ifag/portal/core/schedule"
	"github.com/ifag/portal/core/student"
)

type (
	announcementEntry struct {
		student.Announcement
		published bool
		targets   []student.Target
	}

	paymentEntry struct {
		admin.PaymentRecord
		paidAt time.Time
	}

	requestEntry struct {
		admin.RequestRecord
		submittedAt time.Time
	}
)

// DB is an in-memory stand-in for the portal database.
// Numeric columns are stored as text, as the real store returns them.
type DB struct {
	mu  sync.RWMutex
	now func() time.Time

	// Fail, when set, is returned by every query.
	Fail error

	profiles      map[int64]student.Profile
	slots         []schedule.Slot
	grades        map[int64][]gradeEntry
	absences      map[int64][]student.AbsenceRecord
	attendance    []string // absence statuses
	announcements []announcementEntry
	teachers      int
	payments      []paymentEntry
	requests      []requestEntry
}

type gradeEntry struct {
	module      string
	coefficient float64
	grade       string
}

func New(now ...func() time.Time) *DB {
	db := &DB{
		now:      time.Now,
		profiles: make(map[int64]student.Profile),
		grades:   make(map[int64][]gradeEntry),
		absences: make(map[int64][]student.AbsenceRecord),
	}
	if len(now) > 0 && now[0] != nil {
		db.now = now[0]
	}
	return db
}

func (db *DB) AddProfile(p student.Profile) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profiles[p.ID] = p
}

func (db *DB) AddSlot(s schedule.Slot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.slots = append(db.slots, s)
}

func (db *DB) AddGrade(studentID int64, module string, coefficient float64, grade string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.grades[studentID] = append(db.grades[studentID], gradeEntry{module, coefficient, grade})
}

// AddAbsence records a student absence; status feeds the global attendance rate.
func (db *DB) AddAbsence(studentID int64, a student.AbsenceRecord, status string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.absences[studentID] = append(db.absences[studentID], a)
	db.attendance = append(db.attendance, status)
}

func (db *DB) AddAnnouncement(a student.Announcement, published bool, targets ...student.Target) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.announcements = append(db.announcements, announcementEntry{Announcement: a, published: published, targets: targets})
}

func (db *DB) AddTeachers(n int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.teachers += n
}

// AddPayment records a payment; the student name and class are joined from the profiles.
func (db *DB) AddPayment(id int64, studentID *int64, amount, status string, paidAt time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.payments = append(db.payments, paymentEntry{
		PaymentRecord: admin.PaymentRecord{ID: id, StudentID: studentID, Amount: amount, Status: status},
		paidAt:        paidAt,
	})
}

// AddRequest records an administrative request; the student name is joined from the profiles.
func (db *DB) AddRequest(id int64, studentID *int64, requestType, status string, submittedAt time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.requests = append(db.requests, requestEntry{
		RequestRecord: admin.RequestRecord{ID: id, StudentID: studentID, Type: requestType, Status: status},
		submittedAt:   submittedAt,
	})
}

// joinProfile emulates the LEFT JOIN on v_student_profile.
func (db *DB) joinProfile(studentID *int64) (*student.Profile, bool) {
	if studentID == nil {
		return nil, false
	}
	p, ok := db.profiles[*studentID]
	return &p, ok
}
