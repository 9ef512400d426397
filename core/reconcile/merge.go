package reconcile

import (
	"sort"
	"time"
)

// RecencyKey returns the first non-null of payment, exit, entry, scheduled
// start and creation time.
func RecencyKey(op Operation) *time.Time {
	d := op.Dates
	for _, t := range []*time.Time{d.Payment, d.Exit, d.Entry, d.ScheduledStart, d.Created} {
		if t != nil {
			return t
		}
	}
	return nil
}

// Merge concatenates reservation-rooted and walk-in operations and sorts
// them by RecencyKey, newest first. Operations without any key go last.
// The sort is stable, so ties keep concatenation order.
func Merge(rooted, walkIns []Operation) []Operation {
	merged := make([]Operation, 0, len(rooted)+len(walkIns))
	merged = append(merged, rooted...)
	merged = append(merged, walkIns...)

	keys := make([]*time.Time, len(merged))
	for i := range merged {
		keys[i] = RecencyKey(merged[i])
	}

	idx := make([]int, len(merged))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := keys[idx[i]], keys[idx[j]]
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})

	out := make([]Operation, len(merged))
	for pos, i := range idx {
		out[pos] = merged[i]
	}
	return out
}
