package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus(t *testing.T) {
	completed := &Payment{ID: 1, Status: PaymentCompleted}
	pending := &Payment{ID: 2, Status: PaymentPending}

	tests := []struct {
		name    string
		res     *Reservation
		occ     *Occupation
		payment *Payment
		want    Status
	}{
		{"Neither", nil, nil, nil, ""},
		{"ReservationOnly", &Reservation{ID: 1, Status: StatusNoShow}, nil, nil, StatusNoShow},
		{"ReservationOnlyIgnoresPayment", &Reservation{ID: 1, Status: StatusConfirmed}, nil, completed, StatusConfirmed},
		{"OpenOccupation", &Reservation{ID: 1, Status: StatusConfirmed}, &Occupation{ID: 1, EntryAt: at("2024-01-15T08:00")}, nil, StatusActive},
		{"OpenOccupationPaid", nil, &Occupation{ID: 1, EntryAt: at("2024-01-15T08:00")}, completed, StatusActive},
		{"ClosedPaid", nil, &Occupation{ID: 1, EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T09:00")}, completed, StatusFinalizedPaid},
		{"ClosedPendingPayment", nil, &Occupation{ID: 1, EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T09:00")}, pending, StatusFinalized},
		{"ClosedUnpaid", &Reservation{ID: 1, Status: StatusCancelled}, &Occupation{ID: 1, EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T09:00")}, nil, StatusFinalized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.res, tt.occ, tt.payment))
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name       string
		occ        *Occupation
		want       *int64
		consistent bool
	}{
		{"NoOccupation", nil, nil, true},
		{"Open", &Occupation{EntryAt: at("2024-01-15T08:00")}, nil, true},
		{"Measured", &Occupation{EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T09:45")}, id(105), true},
		{"StoredTotalWins", &Occupation{EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T09:45"), TotalMinutes: id(120)}, id(120), true},
		{"NegativeTotalIgnored", &Occupation{EntryAt: at("2024-01-15T08:00"), ExitAt: at("2024-01-15T08:30"), TotalMinutes: id(-5)}, id(30), true},
		{"ExitWithoutEntry", &Occupation{ExitAt: at("2024-01-15T09:00")}, nil, false},
		{"ExitBeforeEntry", &Occupation{EntryAt: at("2024-01-15T09:00"), ExitAt: at("2024-01-15T08:00"), TotalMinutes: id(60)}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, consistent := durationMinutes(tt.occ)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.consistent, consistent)
		})
	}
}
