package operations

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"parking-ops/core/reconcile"
	"parking-ops/core/utils"
)

// Filter narrows a reconciled operation list. Zero fields match everything.
type Filter struct {
	// Status keeps operations whose final status is in the set.
	Status []string `json:"status,omitempty"`
	// Search is matched case-insensitively against occupant name and
	// contact, plate, space code and operation id.
	Search string `json:"q,omitempty"`
	// From and To bound the operation's recency key, inclusive. A
	// date-only To covers the whole day.
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// ParseFilter builds a Filter from raw query values. status is a comma
// separated list.
func ParseFilter(status, search, from, to string) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(search)}

	for _, s := range strings.Split(status, ",") {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			f.Status = append(f.Status, s)
		}
	}

	var err error
	if f.From, err = parseBound("from", from, false); err != nil {
		return Filter{}, err
	}
	if f.To, err = parseBound("to", to, true); err != nil {
		return Filter{}, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, fmt.Errorf("invalid range: to is before from")
	}

	return f, nil
}

func parseBound(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t := utils.ToTime(raw)
	if t == nil {
		return nil, fmt.Errorf("invalid %s date %q", name, raw)
	}
	if _, err := time.Parse(time.DateOnly, raw); err == nil && endOfDay {
		end := t.Add(24*time.Hour - time.Nanosecond)
		return &end, nil
	}
	return t, nil
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return len(f.Status) == 0 && f.Search == "" && f.From == nil && f.To == nil
}

// Match reports whether op passes every criterion of the filter.
func (f Filter) Match(op reconcile.Operation) bool {
	if len(f.Status) > 0 && !containsFold(f.Status, string(op.FinalStatus)) {
		return false
	}

	if f.From != nil || f.To != nil {
		key := reconcile.RecencyKey(op)
		if key == nil {
			return false
		}
		if f.From != nil && key.Before(*f.From) {
			return false
		}
		if f.To != nil && key.After(*f.To) {
			return false
		}
	}

	if f.Search != "" && !matchesSearch(op, f.Search) {
		return false
	}

	return true
}

// Apply returns the operations matching f, preserving their order.
func Apply(ops []reconcile.Operation, f Filter) []reconcile.Operation {
	out := make([]reconcile.Operation, 0, len(ops))
	for _, op := range ops {
		if f.Match(op) {
			out = append(out, op)
		}
	}
	return out
}

func matchesSearch(op reconcile.Operation, search string) bool {
	needle := strings.ToLower(search)

	fields := []string{op.ID, op.Occupant.Name, op.Occupant.Contact, op.Vehicle.Plate}
	if op.Space != nil {
		fields = append(fields, op.Space.Code)
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	// Plates are typed with and without separators at the gate
	if plate := compactPlate(op.Vehicle.Plate); plate != "" {
		if compact := compactPlate(search); compact != "" && strings.Contains(plate, compact) {
			return true
		}
	}
	return false
}

func compactPlate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
