package reconcile

import (
	"fmt"
	"strconv"
)

// Options carries the tie-break rules for ambiguous joins.
type Options struct {
	// OccupationOrder ranks duplicate occupations on one reservation.
	// Defaults to MostRecentEntry.
	OccupationOrder OccupationLess

	// PaymentPreference picks between several completed payments on one
	// occupation. Defaults to LatestPayment.
	PaymentPreference PaymentPreference
}

// DefaultOptions returns the documented tie-break rules.
func DefaultOptions() Options {
	return Options{
		OccupationOrder:   MostRecentEntry,
		PaymentPreference: LatestPayment,
	}
}

// Reconcile derives the ordered operation view from one snapshot.
// It is pure: identical snapshots give identical results, and invalid
// records are reported as anomalies instead of errors.
func Reconcile(snap Snapshot, opts Options) Result {
	if opts.OccupationOrder == nil {
		opts.OccupationOrder = MostRecentEntry
	}
	if opts.PaymentPreference == nil {
		opts.PaymentPreference = LatestPayment
	}

	var anomalies []Anomaly
	report := func(kind AnomalyKind, ref, detail string) {
		anomalies = append(anomalies, Anomaly{Kind: kind, Ref: ref, Detail: detail})
	}

	reservations, occupations, payments := sanitize(snap, report)

	known := make(map[int64]struct{}, len(reservations))
	for _, r := range reservations {
		known[r.ID] = struct{}{}
	}
	occupationIDs := make(map[int64]struct{}, len(occupations))
	for _, o := range occupations {
		occupationIDs[o.ID] = struct{}{}
	}

	byReservation := IndexOccupations(occupations, opts.OccupationOrder)
	byOccupation := IndexPayments(payments)
	classes := Classify(occupations, known, byReservation)

	for _, occ := range classes.Orphans {
		report(AnomalyOrphanOccupation, occupationRef(occ.ID),
			fmt.Sprintf("references unknown reservation %d; treated as walk-in", *occ.ReservationID))
	}
	for _, occ := range classes.Discarded {
		kept := classes.Rooted[*occ.ReservationID]
		report(AnomalyDiscardedOccupation, occupationRef(occ.ID),
			fmt.Sprintf("reservation %d resolved by occupation %d; %d payment(s) hidden",
				*occ.ReservationID, kept.ID, len(byOccupation[occ.ID])))
	}
	for _, p := range payments {
		if _, ok := occupationIDs[p.OccupationID]; !ok {
			report(AnomalyOrphanPayment, paymentRef(p.ID),
				fmt.Sprintf("references unknown occupation %d", p.OccupationID))
		}
	}

	b := builder{payments: byOccupation, prefer: opts.PaymentPreference, report: report}

	rooted := make([]Operation, 0, len(reservations))
	for i := range reservations {
		res := reservations[i]
		var occ *Occupation
		if o, ok := classes.Rooted[res.ID]; ok {
			occ = &o
		}
		rooted = append(rooted, b.build(&res, occ))
	}

	walkIns := make([]Operation, 0, len(classes.WalkIns))
	for i := range classes.WalkIns {
		occ := classes.WalkIns[i]
		walkIns = append(walkIns, b.build(nil, &occ))
	}

	ops := Merge(rooted, walkIns)

	summary := Summary{
		Reservations: len(reservations),
		Occupations:  len(occupations),
		Payments:     len(payments),
		WalkIns:      len(walkIns),
		Operations:   len(ops),
		ByStatus:     make(map[Status]int),
		Anomalies:    len(anomalies),
	}
	for _, op := range ops {
		summary.ByStatus[op.FinalStatus]++
	}

	return Result{Operations: ops, Summary: summary, Anomalies: anomalies}
}

// builder assembles a single Operation from its root records.
type builder struct {
	payments map[int64][]Payment
	prefer   PaymentPreference
	report   func(kind AnomalyKind, ref, detail string)
}

func (b builder) build(res *Reservation, occ *Occupation) Operation {
	op := Operation{}

	if res != nil {
		id := res.ID
		op.ID = "res-" + strconv.FormatInt(id, 10)
		op.Root = RootReservation
		op.ReservationID = &id
		op.ReservationStatus = res.Status
		op.Dates.Created = res.CreatedAt
		op.Dates.ScheduledStart = res.ScheduledStart
		op.Dates.ScheduledEnd = res.ScheduledEnd
		op.Dates.Cancelled = res.CancelledAt
		op.Dates.Expired = res.ExpiredAt
	}

	var payment *Payment
	if occ != nil {
		id := occ.ID
		op.OccupationID = &id
		if res == nil {
			op.ID = "oc-" + strconv.FormatInt(id, 10)
			op.Root = RootWalkIn
		}
		op.Dates.Entry = occ.EntryAt
		op.Dates.Exit = occ.ExitAt

		var completed int
		payment, completed = SelectPayment(b.payments[occ.ID], b.prefer)
		if completed > 1 {
			b.report(AnomalyDuplicateCompletedPayment, occupationRef(occ.ID),
				fmt.Sprintf("%d completed payments; selected payment %d", completed, payment.ID))
		}

		minutes, consistent := durationMinutes(occ)
		if !consistent {
			b.report(AnomalyInconsistentDates, occupationRef(occ.ID), "exit time is missing an entry time or precedes it")
		}
		op.DurationMinutes = minutes
	}

	if payment != nil {
		op.Payment = payment
		op.Dates.Payment = payment.EffectiveTime()
	}

	op.FinalStatus = ResolveStatus(res, occ, payment)
	op.Occupant = mergeOccupant(res, occ)
	op.Vehicle = mergeVehicle(res, occ)
	op.Space = mergeSpace(res, occ)
	op.Timeline = BuildTimeline(op.Dates, op.FinalStatus, op.ReservationStatus)

	return op
}

// sanitize drops records without identity and repeated identities, keeping
// the first occurrence.
func sanitize(snap Snapshot, report func(AnomalyKind, string, string)) ([]Reservation, []Occupation, []Payment) {
	reservations := make([]Reservation, 0, len(snap.Reservations))
	seenRes := make(map[int64]struct{}, len(snap.Reservations))
	for i, r := range snap.Reservations {
		if r.ID == 0 {
			report(AnomalyInvalidRecord, fmt.Sprintf("reservation#%d", i), "missing id_reservation")
			continue
		}
		if _, dup := seenRes[r.ID]; dup {
			report(AnomalyInvalidRecord, reservationRef(r.ID), "duplicate id_reservation")
			continue
		}
		seenRes[r.ID] = struct{}{}
		reservations = append(reservations, r)
	}

	occupations := make([]Occupation, 0, len(snap.Occupations))
	seenOcc := make(map[int64]struct{}, len(snap.Occupations))
	for i, o := range snap.Occupations {
		if o.ID == 0 {
			report(AnomalyInvalidRecord, fmt.Sprintf("occupation#%d", i), "missing id_occupation")
			continue
		}
		if _, dup := seenOcc[o.ID]; dup {
			report(AnomalyInvalidRecord, occupationRef(o.ID), "duplicate id_occupation")
			continue
		}
		seenOcc[o.ID] = struct{}{}
		occupations = append(occupations, o)
	}

	payments := make([]Payment, 0, len(snap.Payments))
	seenPay := make(map[int64]struct{}, len(snap.Payments))
	for i, p := range snap.Payments {
		if p.ID == 0 || p.OccupationID == 0 {
			report(AnomalyInvalidRecord, fmt.Sprintf("payment#%d", i), "missing id_payment or id_occupation")
			continue
		}
		if _, dup := seenPay[p.ID]; dup {
			report(AnomalyInvalidRecord, paymentRef(p.ID), "duplicate id_payment")
			continue
		}
		seenPay[p.ID] = struct{}{}
		payments = append(payments, p)
	}

	return reservations, occupations, payments
}

func reservationRef(id int64) string { return "reservation:" + strconv.FormatInt(id, 10) }
func occupationRef(id int64) string  { return "occupation:" + strconv.FormatInt(id, 10) }
func paymentRef(id int64) string     { return "payment:" + strconv.FormatInt(id, 10) }
