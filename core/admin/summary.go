package admin

import (
	"fmt"

	"github.com/ifag/portal/core"
)

const (
	paymentRefFmt  = "PAY-%04d"
	requestRefFmt  = "ADM-%04d"
	unknownStudent = "Étudiant #%d"
	unknownClass   = "—"
)

var requestStatusLabels = map[string]string{
	RequestApproved: "Traité",
	RequestRejected: "Rejeté",
}

// AttendanceRate returns 100 - absent/total*100, rounded and clamped to [0, 100].
// It is 100 when there is no attendance record at all.
func AttendanceRate(absent, total int) int {
	if total <= 0 {
		return 100
	}
	return core.ClampPercent(100 - float64(absent)/float64(total)*100)
}

// studentLabel falls back to a placeholder numbered after the record when the profile join missed.
func studentLabel(name *string, recordID int64) string {
	if name != nil && core.CleanString(*name) != "" {
		return *name
	}
	return fmt.Sprintf(unknownStudent, recordID)
}

// RequestStatusLabel maps a request status to its display label.
func RequestStatusLabel(status string) string {
	if label, ok := requestStatusLabels[core.CleanString(status, true /* lower */)]; ok {
		return label
	}
	return "En cours"
}

func toRecentPayment(r PaymentRecord) RecentPayment {
	class := unknownClass
	if r.ClassName != nil && core.CleanString(*r.ClassName) != "" {
		class = *r.ClassName
	}
	return RecentPayment{
		ID:        r.ID,
		Reference: fmt.Sprintf(paymentRefFmt, r.ID),
		Student:   studentLabel(r.StudentName, r.ID),
		ClassName: class,
		Amount:    core.ParseNumeric(r.Amount),
		Status:    r.Status,
		Date:      r.Date,
	}
}

func toRecentRequest(r RequestRecord) RecentRequest {
	return RecentRequest{
		ID:          r.ID,
		Reference:   fmt.Sprintf(requestRefFmt, r.ID),
		Student:     studentLabel(r.StudentName, r.ID),
		Type:        r.Type,
		Status:      r.Status,
		StatusLabel: RequestStatusLabel(r.Status),
		Date:        r.Date,
	}
}
