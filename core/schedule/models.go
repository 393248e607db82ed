package schedule

import (
	"sort"

	"github.com/ifag/portal/core"
)

// Slot is one weekly timetable entry of a class group.
type Slot struct {
	Day       string  `json:"day"`
	Start     string  `json:"start"` // HH:MM
	End       string  `json:"end"`   // HH:MM
	Subject   string  `json:"subject"`
	Room      *string `json:"room"`
	Teacher   string  `json:"teacher"`
	ClassName string  `json:"class_name"`
	GroupName string  `json:"group_name"`
}

// Filter narrows a schedule lookup. Empty fields match everything.
// Matching ignores case and surrounding whitespace on both sides.
type Filter struct {
	Day       string `query:"day" json:"day" validate:"omitempty,max=32,label"`
	ClassName string `query:"class_name" json:"class_name" validate:"omitempty,max=64,label"`
	GroupName string `query:"group_name" json:"group_name" validate:"omitempty,max=64,label"`
}

func (f *Filter) Clean() {
	f.Day = core.CleanString(f.Day)
	f.ClassName = core.CleanString(f.ClassName)
	f.GroupName = core.CleanString(f.GroupName)
}

func (f Filter) IsEmpty() bool {
	return f.Day == "" && f.ClassName == "" && f.GroupName == ""
}

// Matches reports whether slot s is selected by the filter.
func (f Filter) Matches(s Slot) bool {
	if f.Day != "" && !core.SameKey(f.Day, s.Day) {
		return false
	}
	if f.ClassName != "" && !core.SameKey(f.ClassName, s.ClassName) {
		return false
	}
	if f.GroupName != "" && !core.SameKey(f.GroupName, s.GroupName) {
		return false
	}
	return true
}

// Sort orders slots by day then start time.
func Sort(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slots[i].Start < slots[j].Start
	})
}

func normalize(s Slot) Slot {
	s.Day = core.CleanString(s.Day)
	s.Start = clipTime(s.Start)
	s.End = clipTime(s.End)
	return s
}

// clipTime keeps the HH:MM part of a time of day.
func clipTime(t string) string {
	t = core.CleanString(t)
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
