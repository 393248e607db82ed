package admin

import "github.com/ifag/portal/core"

// Payment statuses
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentFailed    = "failed"
)

// Request statuses
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Attendance statuses
const (
	AttendanceAbsent = "absent"
)

type Stats struct {
	StudentsCount          int `json:"students_count"`
	TeachersCount          int `json:"teachers_count"`
	AttendanceRate         int `json:"attendance_rate"`
	AnnouncementsThisMonth int `json:"announcements_this_month"`
}

// PaymentRecord is a payment row joined with the student profile.
// Amount is the NUMERIC amount as text.
type PaymentRecord struct {
	ID          int64
	StudentID   *int64
	StudentName *string
	ClassName   *string
	Amount      string
	Status      string
	Date        string // YYYY-MM-DD
}

// RequestRecord is an administrative request row joined with the student profile.
type RequestRecord struct {
	ID          int64
	StudentID   *int64
	StudentName *string
	Type        string
	Status      string
	Date        string // YYYY-MM-DD
}

type PaymentStats struct {
	TotalCollectedThisMonth float64 `json:"total_collected_this_month"`
	PendingPayments         int     `json:"pending_payments"`
	FailedPayments          int     `json:"failed_payments"`
}

type RequestStats struct {
	PendingRequests int            `json:"pending_requests"`
	PendingByType   map[string]int `json:"pending_by_type"`
}

type RecentPayment struct {
	ID        int64   `json:"id"`
	Reference string  `json:"reference"`
	Student   string  `json:"student"`
	ClassName string  `json:"class_name"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
}

type RecentRequest struct {
	ID          int64  `json:"id"`
	Reference   string `json:"reference"`
	Student     string `json:"student"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Date        string `json:"date"`
}

// Overview is the payments & administrative requests dashboard.
type Overview struct {
	Payments       PaymentStats    `json:"payments"`
	Requests       RequestStats    `json:"requests"`
	LatestPayments []RecentPayment `json:"latest_payments"`
	LatestRequests []RecentRequest `json:"latest_requests"`
}

type OverviewFilter struct {
	RequestType string `query:"request_type" json:"request_type" validate:"omitempty,max=100,label"`
}

func (f *OverviewFilter) Clean() {
	f.RequestType = core.CleanString(f.RequestType)
}
