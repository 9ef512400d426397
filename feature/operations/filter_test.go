package operations

import (
	"testing"
	"time"

	"parking-ops/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOperations() []reconcile.Operation {
	return []reconcile.Operation{
		{ID: "oc-11", FinalStatus: reconcile.StatusFinalizedPaid,
			Vehicle: reconcile.Vehicle{Kind: reconcile.PartyGuest, Plate: "WLK-001"},
			Dates:   reconcile.Dates{Entry: ts("2024-01-15 10:00"), Exit: ts("2024-01-15 11:30"), Payment: ts("2024-01-15 11:32")}},
		{ID: "res-1", FinalStatus: reconcile.StatusActive,
			Occupant: reconcile.Occupant{Kind: reconcile.PartyRegistered, Name: "Ana Torres", Contact: "ana@example.com"},
			Vehicle:  reconcile.Vehicle{Kind: reconcile.PartyRegistered, Plate: "ABC-123"},
			Space:    &reconcile.Space{ID: 7, Code: "B-07"},
			Dates:    reconcile.Dates{ScheduledStart: ts("2024-01-15 08:00"), Entry: ts("2024-01-15 08:05")}},
		{ID: "res-2", FinalStatus: reconcile.StatusCancelled,
			Occupant: reconcile.Occupant{Kind: reconcile.PartyGuest, Name: "Luis", Contact: "+51 999 111 222"},
			Dates:    reconcile.Dates{Created: ts("2024-01-10 11:00")}},
		{ID: "res-9", FinalStatus: reconcile.StatusPending},
	}
}

func ids(ops []reconcile.Operation) []string {
	out := make([]string, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.ID)
	}
	return out
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(" Active, finalized_paid ,", "  ana ", "2024-01-15", "2024-01-16 00:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"active", "finalized_paid"}, f.Status)
	assert.Equal(t, "ana", f.Search)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.False(t, f.IsZero())

	empty, err := ParseFilter("", "", "", "")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseFilter("", "", "yesterday", "")
	assert.EqualError(t, err, `invalid from date "yesterday"`)

	_, err = ParseFilter("", "", "2024-01-16", "2024-01-15")
	assert.EqualError(t, err, "invalid range: to is before from")
}

func TestParseFilter_DateOnlyTo(t *testing.T) {
	f, err := ParseFilter("", "", "2024-01-15", "2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, f.To)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC), *f.To)

	ids := []string{}
	for _, op := range Apply(sampleOperations(), f) {
		ids = append(ids, op.ID)
	}
	assert.Equal(t, []string{"oc-11", "res-1"}, ids)

	withTime, err := ParseFilter("", "", "", "2024-01-15 08:05")
	require.NoError(t, err)
	assert.Equal(t, *ts("2024-01-15 08:05"), *withTime.To)
}

func TestApply(t *testing.T) {
	ops := sampleOperations()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"Zero", Filter{}, []string{"oc-11", "res-1", "res-2", "res-9"}},
		{"Status", Filter{Status: []string{"active", "cancelled"}}, []string{"res-1", "res-2"}},
		{"StatusCase", Filter{Status: []string{"FINALIZED_PAID"}}, []string{"oc-11"}},
		{"SearchName", Filter{Search: "ana"}, []string{"res-1"}},
		{"SearchContact", Filter{Search: "999 111"}, []string{"res-2"}},
		{"SearchPlateCompact", Filter{Search: "abc123"}, []string{"res-1"}},
		{"SearchSpace", Filter{Search: "b-07"}, []string{"res-1"}},
		{"SearchID", Filter{Search: "OC-11"}, []string{"oc-11"}},
		{"SearchMiss", Filter{Search: "nobody"}, []string{}},
		{"From", Filter{From: ts("2024-01-15 09:00")}, []string{"oc-11"}},
		{"RangeInclusive", Filter{From: ts("2024-01-15 08:05"), To: ts("2024-01-15 08:05")}, []string{"res-1"}},
		{"To", Filter{To: ts("2024-01-12 00:00")}, []string{"res-2"}},
		{"Combined", Filter{Status: []string{"active", "finalized_paid"}, Search: "wlk"}, []string{"oc-11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(ops, tt.filter)))
		})
	}

	// input untouched
	assert.Len(t, ops, 4)
}
