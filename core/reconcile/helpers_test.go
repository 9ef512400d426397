package reconcile

import (
	"time"
)

// at parses a minute-precision UTC timestamp. Panics on bad input so test
// tables stay compact.
func at(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func id(v int64) *int64 {
	return &v
}

// fixtureSnapshot covers every status and both roots.
func fixtureSnapshot() Snapshot {
	return Snapshot{
		FacilityID: 1,
		Reservations: []Reservation{
			{ID: 1, Status: StatusConfirmed, CreatedAt: at("2024-01-14T10:00"), ScheduledStart: at("2024-01-15T08:00"), ScheduledEnd: at("2024-01-15T12:00"),
				User: &RegisteredUser{ID: 9, Name: "Ana Torres", Email: "ana@example.com"}, Vehicle: &RegisteredVehicle{ID: 4, Plate: "ABC-123"}},
			{ID: 2, Status: StatusCancelled, CreatedAt: at("2024-01-14T11:00"), ScheduledStart: at("2024-01-16T08:00"), CancelledAt: at("2024-01-15T09:00"),
				Guest: &GuestContact{Name: "Luis", Contact: "+51 999 111 222"}, GuestVehicle: &GuestVehicle{Plate: "XYZ-987"}},
			{ID: 3, Status: StatusPending, CreatedAt: at("2024-01-14T12:00"), ScheduledStart: at("2024-01-17T09:00")},
			{ID: 4, Status: StatusConfirmed, CreatedAt: at("2024-01-13T09:00"), ScheduledStart: at("2024-01-14T09:00")},
			{ID: 5, Status: StatusExpired, CreatedAt: at("2024-01-10T09:00"), ScheduledStart: at("2024-01-11T09:00"), ExpiredAt: at("2024-01-11T10:00")},
		},
		Occupations: []Occupation{
			{ID: 10, ReservationID: id(1), EntryAt: at("2024-01-15T08:05"), Space: &Space{ID: 7, Code: "B-07"}},
			{ID: 11, EntryAt: at("2024-01-15T10:00"), ExitAt: at("2024-01-15T11:30"), GuestVehicle: &GuestVehicle{Plate: "WLK-001"}},
			{ID: 12, ReservationID: id(4), EntryAt: at("2024-01-14T09:10"), ExitAt: at("2024-01-14T10:10"), TotalMinutes: id(60)},
		},
		Payments: []Payment{
			{ID: 100, OccupationID: 11, Status: PaymentCompleted, Amount: 10.50, Method: "cash", PaidAt: at("2024-01-15T11:32"),
				Receipt: Receipt{Type: "boleta", Series: "B001", Number: "000123"}},
			{ID: 101, OccupationID: 12, Status: PaymentCancelled, Amount: 5, IssuedAt: at("2024-01-14T10:11")},
		},
	}
}

func byID(ops []Operation) map[string]Operation {
	out := make(map[string]Operation, len(ops))
	for _, op := range ops {
		out[op.ID] = op
	}
	return out
}
