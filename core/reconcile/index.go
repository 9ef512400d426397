package reconcile

import "sort"

// OccupationLess reports whether a should be ranked ahead of b among the
// occupations sharing one reservation. The first ranked occupation is the
// one that resolves the reservation's operation.
type OccupationLess func(a, b Occupation) bool

// MostRecentEntry ranks by entry_at descending. Occupations without an
// entry time rank last; equal entries fall back to the higher id.
func MostRecentEntry(a, b Occupation) bool {
	switch {
	case a.EntryAt != nil && b.EntryAt != nil:
		if !a.EntryAt.Equal(*b.EntryAt) {
			return a.EntryAt.After(*b.EntryAt)
		}
	case a.EntryAt != nil:
		return true
	case b.EntryAt != nil:
		return false
	}
	return a.ID > b.ID
}

// IndexOccupations groups occupations by reservation id, each group ordered
// by less. Walk-ins are not indexed. The input slice is not modified.
func IndexOccupations(occupations []Occupation, less OccupationLess) map[int64][]Occupation {
	if less == nil {
		less = MostRecentEntry
	}

	index := make(map[int64][]Occupation)
	for _, occ := range occupations {
		if occ.ReservationID == nil {
			continue
		}
		index[*occ.ReservationID] = append(index[*occ.ReservationID], occ)
	}

	for key, group := range index {
		sort.SliceStable(group, func(i, j int) bool {
			return less(group[i], group[j])
		})
		index[key] = group
	}

	return index
}

// IndexPayments groups payments by occupation id, keeping input order
// within each group.
func IndexPayments(payments []Payment) map[int64][]Payment {
	index := make(map[int64][]Payment)
	for _, p := range payments {
		index[p.OccupationID] = append(index[p.OccupationID], p)
	}
	return index
}
