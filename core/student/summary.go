package student

import (
	"math"
	"sort"
	"strings"

	"github.com/ifag/portal/core"
)

const (
	noBestModuleName = "N/A"

	tdPrefix = "TD"
	tpPrefix = "TP"

	tdWeight = 0.5
	tpWeight = 0.5
)

// ComputeNotesSummary folds grade records into the coefficient-weighted average
// and the best module. A zero coefficient counts as 1.
func ComputeNotesSummary(records []GradeRecord) NotesSummary {
	modules := make([]GradeRecord, 0, len(records))
	var totalCoeff, weighted float64
	for _, r := range records {
		if r.Coefficient == 0 || math.IsNaN(r.Coefficient) {
			r.Coefficient = 1
		}
		if math.IsNaN(r.Grade) {
			r.Grade = 0
		}
		totalCoeff += r.Coefficient
		weighted += r.Grade * r.Coefficient
		modules = append(modules, r)
	}

	var avg float64
	if totalCoeff != 0 {
		avg = weighted / totalCoeff
	}
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		avg = 0
	}

	best := GradeRecord{ModuleName: noBestModuleName, Coefficient: 1}
	for i, m := range modules {
		if i == 0 || m.Grade > best.Grade { // first one wins ties
			best = m
		}
	}

	return NotesSummary{
		Average:         avg,
		ModulesCount:    len(modules),
		BestModuleName:  best.ModuleName,
		BestModuleGrade: best.Grade,
		Modules:         modules,
	}
}

// ComputeAbsencesSummary counts all absences and derives the TD/TP weighted percentage.
func ComputeAbsencesSummary(records []AbsenceRecord, allowance AbsenceAllowance) AbsencesSummary {
	sum := AbsencesSummary{Total: len(records)}
	for _, r := range records {
		if r.SessionType == nil {
			continue
		}
		switch st := strings.ToUpper(*r.SessionType); {
		case strings.HasPrefix(st, tdPrefix):
			sum.TDCount++
		case strings.HasPrefix(st, tpPrefix):
			sum.TPCount++
		}
	}
	sum.TDPercentage = core.Percent(sum.TDCount, allowance.TD)
	sum.TPPercentage = core.Percent(sum.TPCount, allowance.TP)
	sum.Percentage = core.ClampPercent(tdWeight*float64(sum.TDPercentage) + tpWeight*float64(sum.TPPercentage))
	return sum
}

// SortAbsences orders the history by date then id, both descending.
func SortAbsences(records []AbsenceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].ID > records[j].ID
	})
}

// Visible reports whether an announcement with the given targets is shown to a student.
// No target at all means the announcement is global.
func Visible(targets []Target, classID, specialityID int64) bool {
	if len(targets) == 0 {
		return true
	}
	for _, t := range targets {
		if t.ClassID != nil && *t.ClassID == classID {
			return true
		}
		if t.SpecialityID != nil && *t.SpecialityID == specialityID {
			return true
		}
	}
	return false
}
