package schedule

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoMock struct {
	slots     []Slot
	err       error
	gotFilter Filter
	calls     int
}

func (r *repoMock) QuerySlots(_ context.Context, filter Filter) ([]Slot, error) {
	r.calls++
	r.gotFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	var res []Slot
	for _, s := range r.slots {
		if filter.Matches(s) {
			res = append(res, s)
		}
	}
	return res, nil
}

var fixtures = []Slot{
	{Day: "Mardi ", Start: "10:00:00", End: "12:00:00", Subject: "Physique", ClassName: " l2 informatique ", GroupName: "g1"},
	{Day: "Lundi", Start: "08:00:00", End: "10:00:00", Subject: "Mathématiques", ClassName: "L2 Informatique", GroupName: "G1"},
	{Day: "Lundi", Start: "10:00", End: "12:00", Subject: "Comptabilité", ClassName: "L1 Gestion", GroupName: "G2"},
}

func TestFilter_Matches(t *testing.T) {
	slot := Slot{Day: " Lundi", ClassName: "L2 Informatique ", GroupName: "G1"}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty filter", want: true},
		{name: "same keys", filter: Filter{Day: "Lundi", ClassName: "L2 Informatique", GroupName: "G1"}, want: true},
		{name: "any case and spacing", filter: Filter{Day: "LUNDI ", ClassName: "  l2 informatique", GroupName: "g1"}, want: true},
		{name: "other group", filter: Filter{ClassName: "L2 Informatique", GroupName: "G2"}, want: false},
		{name: "other day", filter: Filter{Day: "Mardi"}, want: false},
		{name: "inner spacing matters", filter: Filter{ClassName: "L2  Informatique"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(slot))
		})
	}
}

func TestSort(t *testing.T) {
	slots := []Slot{
		{Day: "Mardi", Start: "08:00"},
		{Day: "Lundi", Start: "10:00"},
		{Day: "Lundi", Start: "08:00"},
	}
	Sort(slots)
	assert.Equal(t, []Slot{
		{Day: "Lundi", Start: "08:00"},
		{Day: "Lundi", Start: "10:00"},
		{Day: "Mardi", Start: "08:00"},
	}, slots)
}

func TestService_Query(t *testing.T) {
	repo := &repoMock{slots: fixtures}
	svc := NewService(repo)

	slots, err := svc.Query(context.Background(), Filter{ClassName: " L2 INFORMATIQUE ", GroupName: "g1 "})
	require.NoError(t, err)
	assert.Equal(t, Filter{ClassName: "L2 INFORMATIQUE", GroupName: "g1"}, repo.gotFilter)
	assert.Equal(t, []Slot{
		{Day: "Mardi", Start: "10:00", End: "12:00", Subject: "Physique", ClassName: " l2 informatique ", GroupName: "g1"},
		{Day: "Lundi", Start: "08:00", End: "10:00", Subject: "Mathématiques", ClassName: "L2 Informatique", GroupName: "G1"},
	}, slots)

	slots, err = svc.Query(context.Background(), Filter{ClassName: "M1"})
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)

	repo.err = errors.New("connection reset")
	_, err = svc.Query(context.Background(), Filter{})
	assert.EqualError(t, err, "querying schedule slots: connection reset")
}

func TestService_ForGroup(t *testing.T) {
	tests := []struct {
		name       string
		class      string
		group      string
		wantCount  int
		wantCalled bool
	}{
		{name: "matching group", class: "l2 informatique", group: "G1", wantCount: 2, wantCalled: true},
		{name: "unknown group", class: "L2 Informatique", group: "G9", wantCount: 0, wantCalled: true},
		{name: "blank class", class: "  ", group: "G1", wantCount: 0},
		{name: "blank group", class: "L1 Gestion", group: "", wantCount: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &repoMock{slots: fixtures}
			slots, err := NewService(repo).ForGroup(context.Background(), tt.class, tt.group)
			require.NoError(t, err)
			assert.NotNil(t, slots)
			assert.Len(t, slots, tt.wantCount)
			assert.Equal(t, tt.wantCalled, repo.calls > 0)
		})
	}
}
