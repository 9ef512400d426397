package reconcile

// Classification partitions occupations by how they relate to reservations.
type Classification struct {
	// Rooted holds the occupation that resolves each reservation.
	Rooted map[int64]Occupation

	// WalkIns become their own operations, in input order. Occupations
	// pointing at an unknown reservation are included here.
	WalkIns []Occupation

	// Orphans are the WalkIns that carried a dangling reservation id.
	Orphans []Occupation

	// Discarded are earlier duplicates on a reservation that already has a
	// better ranked occupation. They do not produce operations.
	Discarded []Occupation
}

// Classify splits occupations into reservation-rooted and walk-in sets.
// known is the set of valid reservation ids and byReservation the output
// of IndexOccupations over the same occupations.
func Classify(occupations []Occupation, known map[int64]struct{}, byReservation map[int64][]Occupation) Classification {
	c := Classification{Rooted: make(map[int64]Occupation)}

	for _, occ := range occupations {
		if occ.ReservationID == nil {
			c.WalkIns = append(c.WalkIns, occ)
			continue
		}

		resID := *occ.ReservationID
		if _, ok := known[resID]; !ok {
			c.WalkIns = append(c.WalkIns, occ)
			c.Orphans = append(c.Orphans, occ)
			continue
		}

		group := byReservation[resID]
		if len(group) > 0 && group[0].ID == occ.ID {
			c.Rooted[resID] = occ
		} else {
			c.Discarded = append(c.Discarded, occ)
		}
	}

	return c
}
