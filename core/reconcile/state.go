package reconcile

import "time"

// ResolveStatus derives the final status of an operation. Rules are
// evaluated in order:
//
//  1. no occupation: the reservation's own status, verbatim
//  2. occupation without exit: active
//  3. closed occupation with a completed payment: finalized_paid
//  4. closed occupation otherwise: finalized
//
// payment is the authoritative payment returned by SelectPayment, or nil.
// An empty status is returned when both res and occ are nil.
func ResolveStatus(res *Reservation, occ *Occupation, payment *Payment) Status {
	if occ == nil {
		if res == nil {
			return ""
		}
		return res.Status
	}
	if occ.ExitAt == nil {
		return StatusActive
	}
	if payment != nil && payment.Status == PaymentCompleted {
		return StatusFinalizedPaid
	}
	return StatusFinalized
}

// durationMinutes prefers the stored total and otherwise measures exit
// minus entry. consistent is false when the timestamps cannot describe a
// stay (exit without entry, or exit before entry); the duration is nil then.
func durationMinutes(occ *Occupation) (minutes *int64, consistent bool) {
	if occ == nil {
		return nil, true
	}
	if occ.ExitAt != nil && occ.EntryAt == nil {
		return nil, false
	}
	if occ.ExitAt != nil && occ.ExitAt.Before(*occ.EntryAt) {
		return nil, false
	}
	if occ.TotalMinutes != nil && *occ.TotalMinutes >= 0 {
		m := *occ.TotalMinutes
		return &m, true
	}
	if occ.EntryAt != nil && occ.ExitAt != nil {
		m := int64(occ.ExitAt.Sub(*occ.EntryAt) / time.Minute)
		return &m, true
	}
	return nil, true
}
