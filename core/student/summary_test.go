package student

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func TestComputeNotesSummary(t *testing.T) {
	tests := []struct {
		name      string
		records   []GradeRecord
		wantAvg   float64
		wantCount int
		wantBest  string
		wantGrade float64
	}{
		{
			name:     "no grades",
			wantBest: "N/A",
		},
		{
			name: "weighted average",
			records: []GradeRecord{
				{ModuleName: "Math", Coefficient: 3, Grade: 14},
				{ModuleName: "Physics", Coefficient: 2, Grade: 9},
			},
			wantAvg:   12,
			wantCount: 2,
			wantBest:  "Math",
			wantGrade: 14,
		},
		{
			name: "zero coefficient counts as one",
			records: []GradeRecord{
				{ModuleName: "Math", Coefficient: 0, Grade: 10},
				{ModuleName: "Physics", Coefficient: 1, Grade: 16},
			},
			wantAvg:   13,
			wantCount: 2,
			wantBest:  "Physics",
			wantGrade: 16,
		},
		{
			name: "coefficients summing to zero",
			records: []GradeRecord{
				{ModuleName: "A", Coefficient: 2, Grade: 10},
				{ModuleName: "B", Coefficient: -2, Grade: 12},
			},
			wantAvg:   0,
			wantCount: 2,
			wantBest:  "B",
			wantGrade: 12,
		},
		{
			name: "first module wins ties",
			records: []GradeRecord{
				{ModuleName: "A", Coefficient: 1, Grade: 10},
				{ModuleName: "B", Coefficient: 1, Grade: 15},
				{ModuleName: "C", Coefficient: 1, Grade: 15},
			},
			wantAvg:   40.0 / 3,
			wantCount: 3,
			wantBest:  "B",
			wantGrade: 15,
		},
		{
			name: "all zero grades",
			records: []GradeRecord{
				{ModuleName: "A", Coefficient: 1, Grade: 0},
				{ModuleName: "B", Coefficient: 2, Grade: 0},
			},
			wantCount: 2,
			wantBest:  "A",
		},
		{
			name: "NaN values",
			records: []GradeRecord{
				{ModuleName: "A", Coefficient: math.NaN(), Grade: 8},
				{ModuleName: "B", Coefficient: 1, Grade: math.NaN()},
			},
			wantAvg:   4,
			wantCount: 2,
			wantBest:  "A",
			wantGrade: 8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNotesSummary(tt.records)
			assert.InDelta(t, tt.wantAvg, got.Average, 1e-9)
			assert.Equal(t, tt.wantCount, got.ModulesCount)
			assert.Equal(t, tt.wantBest, got.BestModuleName)
			assert.Equal(t, tt.wantGrade, got.BestModuleGrade)
			assert.Len(t, got.Modules, tt.wantCount)
			assert.NotNil(t, got.Modules)
		})
	}
}

func TestComputeNotesSummaryBounds(t *testing.T) {
	records := []GradeRecord{
		{ModuleName: "A", Coefficient: 5, Grade: 20},
		{ModuleName: "B", Coefficient: 0.5, Grade: 0},
		{ModuleName: "C", Coefficient: 2, Grade: 11.75},
	}
	got := ComputeNotesSummary(records)
	assert.GreaterOrEqual(t, got.Average, 0.0)
	assert.LessOrEqual(t, got.Average, 20.0)
}

func absences(types ...string) []AbsenceRecord {
	records := make([]AbsenceRecord, 0, len(types))
	for i, st := range types {
		rec := AbsenceRecord{ID: int64(i + 1), Date: "2024-01-01"}
		if st != "" {
			rec.SessionType = strPtr(st)
		}
		records = append(records, rec)
	}
	return records
}

func repeat(s string, n int) []string {
	res := make([]string, n)
	for i := range res {
		res[i] = s
	}
	return res
}

func TestComputeAbsencesSummary(t *testing.T) {
	tests := []struct {
		name      string
		records   []AbsenceRecord
		allowance AbsenceAllowance
		want      AbsencesSummary
	}{
		{
			name:      "no absences",
			allowance: DefaultAbsenceAllowance,
			want:      AbsencesSummary{},
		},
		{
			name:      "prefix match, any case",
			records:   absences("TD", "td-2", "Tp labo", "TP", "Cours", "", " TD"),
			allowance: DefaultAbsenceAllowance,
			want: AbsencesSummary{
				Total:        7,
				TDCount:      2,
				TPCount:      2,
				TDPercentage: 7,
				TPPercentage: 7,
				Percentage:   7,
			},
		},
		{
			name:      "lectures only",
			records:   absences("Cours", "CM"),
			allowance: DefaultAbsenceAllowance,
			want:      AbsencesSummary{Total: 2},
		},
		{
			name:      "TD over the allowance is capped",
			records:   absences(repeat("TD", 60)...),
			allowance: DefaultAbsenceAllowance,
			want: AbsencesSummary{
				Total:        60,
				TDCount:      60,
				TDPercentage: 100,
				Percentage:   50,
			},
		},
		{
			name:      "both at the allowance",
			records:   absences(append(repeat("TD", 30), repeat("TP", 30)...)...),
			allowance: DefaultAbsenceAllowance,
			want: AbsencesSummary{
				Total:        60,
				TDCount:      30,
				TPCount:      30,
				TDPercentage: 100,
				TPPercentage: 100,
				Percentage:   100,
			},
		},
		{
			name:      "zero allowance",
			records:   absences("TD", "TP"),
			allowance: AbsenceAllowance{},
			want:      AbsencesSummary{Total: 2, TDCount: 1, TPCount: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAbsencesSummary(tt.records, tt.allowance)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
		})
	}
}

func TestSortAbsences(t *testing.T) {
	records := []AbsenceRecord{
		{ID: 1, Date: "2024-01-10"},
		{ID: 2, Date: "2024-03-01"},
		{ID: 3, Date: "2024-01-10"},
		{ID: 4, Date: "2023-12-24"},
	}
	SortAbsences(records)

	ids := make([]int64, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name                  string
		targets               []Target
		classID, specialityID int64
		want                  bool
	}{
		{name: "no target", classID: 6, specialityID: 1, want: true},
		{name: "class match", targets: []Target{{ClassID: int64Ptr(5)}}, classID: 5, specialityID: 1, want: true},
		{name: "class mismatch", targets: []Target{{ClassID: int64Ptr(5)}}, classID: 6, specialityID: 1, want: false},
		{name: "speciality match", targets: []Target{{SpecialityID: int64Ptr(3)}}, classID: 6, specialityID: 3, want: true},
		{name: "any target matches", targets: []Target{{ClassID: int64Ptr(9)}, {SpecialityID: int64Ptr(3)}}, classID: 6, specialityID: 3, want: true},
		{name: "empty target row", targets: []Target{{}}, classID: 6, specialityID: 3, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visible(tt.targets, tt.classID, tt.specialityID))
		})
	}
}
