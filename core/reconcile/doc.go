// Package reconcile derives the operator's "operation" view of a parking
// facility from three independently sourced record streams: reservations,
// occupations and payments.
//
// The streams are only weakly linked. An occupation may point at a
// reservation (or not, for walk-ins), a payment points at an occupation, and
// any of those references may dangle. Reconcile joins them into exactly one
// Operation per reservation and per walk-in occupation, each with a derived
// final status and an ordered timeline.
//
// # Architecture
//
// The engine is a single synchronous pass over an immutable Snapshot:
//
// 1. Indexer: IndexOccupations groups occupations per reservation, ranked by
// an OccupationLess; IndexPayments groups payments per occupation.
//
// 2. Classifier: Classify splits occupations into reservation-rooted and
// walk-in sets, discarding lower ranked duplicates.
//
// 3. Payment Selector: SelectPayment picks the authoritative completed
// payment using a PaymentPreference.
//
// 4. State Resolver: ResolveStatus applies the lifecycle rules.
//
// 5. Timeline Builder: BuildTimeline emits events in lifecycle order.
//
// 6. Merger: Merge orders operations by RecencyKey, newest first, with a
// stable tie-break.
//
// Inconsistent inputs never fail the run. They are reported as Anomalies
// alongside the operations.
//
// # Loading
//
// LoadSnapshot fetches the three streams concurrently through a Source and
// returns a complete snapshot or an error. There is no cache: every call
// recomputes from scratch.
//
// # Usage Example
//
//	src := operations.NewDBSource(db)
//	result, err := reconcile.ReconcileFacility(ctx, src, facilityID, reconcile.DefaultOptions())
//	for _, op := range result.Operations {
//	    fmt.Println(op.ID, op.FinalStatus)
//	}
package reconcile
