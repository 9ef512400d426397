package reconcile

// PaymentPreference reports whether completed payment a should win over
// completed payment b when one occupation has several.
type PaymentPreference func(a, b Payment) bool

// LatestPayment prefers the most recent effective payment time. Payments
// without any timestamp lose; equal times fall back to the higher id.
func LatestPayment(a, b Payment) bool {
	at, bt := a.EffectiveTime(), b.EffectiveTime()
	switch {
	case at != nil && bt != nil:
		if !at.Equal(*bt) {
			return at.After(*bt)
		}
	case at != nil:
		return true
	case bt != nil:
		return false
	}
	return a.ID > b.ID
}

// SelectPayment returns the authoritative payment among one occupation's
// payments together with the number of completed candidates. Only completed
// payments qualify; with none, it returns nil. A nil prefer keeps the first
// completed payment in input order.
func SelectPayment(payments []Payment, prefer PaymentPreference) (*Payment, int) {
	var (
		best      *Payment
		completed int
	)

	for i := range payments {
		p := payments[i]
		if p.Status != PaymentCompleted {
			continue
		}
		completed++
		if best == nil || (prefer != nil && prefer(p, *best)) {
			best = &p
		}
	}

	return best, completed
}
