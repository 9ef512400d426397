package reconcile

import "time"

// Status is a lifecycle status. Reservations carry one of the first six
// values; Operations additionally resolve to StatusFinalized or
// StatusFinalizedPaid.
type Status string

const (
	StatusPending       Status = "pending"
	StatusConfirmed     Status = "confirmed"
	StatusActive        Status = "active"
	StatusCancelled     Status = "cancelled"
	StatusExpired       Status = "expired"
	StatusNoShow        Status = "no_show"
	StatusFinalized     Status = "finalized"
	StatusFinalizedPaid Status = "finalized_paid"
)

// PaymentStatus is the state of a single payment attempt.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// RootKind tells which record an Operation was derived from.
type RootKind string

const (
	RootReservation RootKind = "reservation"
	RootWalkIn      RootKind = "walk_in"
)

// RegisteredUser is an occupant with an account.
type RegisteredUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// GuestContact is the fallback occupant identity when no account exists.
type GuestContact struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
}

// RegisteredVehicle is a vehicle stored against an account.
type RegisteredVehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
}

// GuestVehicle is the fallback vehicle identity captured at booking or entry.
type GuestVehicle struct {
	Plate string `json:"plate"`
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
}

// Space references a parking space.
type Space struct {
	ID   int64  `json:"id"`
	Code string `json:"code,omitempty"`
}

// Reservation is a scheduled claim on a space.
type Reservation struct {
	ID             int64      `json:"id_reservation"`
	Status         Status     `json:"status"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	CreatedAt      *time.Time `json:"created_at"`
	CancelledAt    *time.Time `json:"cancelled_at"`
	ExpiredAt      *time.Time `json:"expired_at"`

	User         *RegisteredUser    `json:"user,omitempty"`
	Guest        *GuestContact      `json:"guest,omitempty"`
	Vehicle      *RegisteredVehicle `json:"vehicle,omitempty"`
	GuestVehicle *GuestVehicle      `json:"guest_vehicle,omitempty"`
	Space        *Space             `json:"space,omitempty"`
}

// Occupation is the physical presence of a vehicle in a space.
// ReservationID is nil for walk-ins.
type Occupation struct {
	ID            int64      `json:"id_occupation"`
	ReservationID *int64     `json:"id_reservation"`
	EntryAt       *time.Time `json:"entry_at"`
	ExitAt        *time.Time `json:"exit_at"`
	TotalMinutes  *int64     `json:"total_minutes"`

	User         *RegisteredUser    `json:"user,omitempty"`
	Guest        *GuestContact      `json:"guest,omitempty"`
	Vehicle      *RegisteredVehicle `json:"vehicle,omitempty"`
	GuestVehicle *GuestVehicle      `json:"guest_vehicle,omitempty"`
	Space        *Space             `json:"space,omitempty"`
}

// Receipt holds the fiscal document metadata attached to a payment.
type Receipt struct {
	Type   string `json:"type"`
	Series string `json:"series"`
	Number string `json:"number"`
}

// Payment is one payment attempt against an occupation.
type Payment struct {
	ID           int64         `json:"id_payment"`
	OccupationID int64         `json:"id_occupation"`
	Status       PaymentStatus `json:"status"`
	Amount       float64       `json:"amount"`
	Method       string        `json:"method"`
	PaidAt       *time.Time    `json:"paid_at"`
	IssuedAt     *time.Time    `json:"issued_at"`
	Receipt      Receipt       `json:"receipt"`
}

// EffectiveTime is the payment time used for ordering: paid_at, else issued_at.
func (p Payment) EffectiveTime() *time.Time {
	if p.PaidAt != nil {
		return p.PaidAt
	}
	return p.IssuedAt
}

// Dates bundles every timestamp an Operation can carry.
type Dates struct {
	Created        *time.Time `json:"created_at"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	Entry          *time.Time `json:"entry_at"`
	Exit           *time.Time `json:"exit_at"`
	Cancelled      *time.Time `json:"cancelled_at"`
	Expired        *time.Time `json:"expired_at"`
	Payment        *time.Time `json:"paid_at"`
}

// TimelineEvent is one labeled step of an Operation's lifecycle.
type TimelineEvent struct {
	Key   EventKey  `json:"key"`
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// Operation is the derived, unified view of one parking session.
type Operation struct {
	ID                string          `json:"id"`
	Root              RootKind        `json:"root"`
	ReservationID     *int64          `json:"id_reservation,omitempty"`
	OccupationID      *int64          `json:"id_occupation,omitempty"`
	ReservationStatus Status          `json:"reservation_status,omitempty"`
	FinalStatus       Status          `json:"final_status"`
	Occupant          Occupant        `json:"occupant"`
	Vehicle           Vehicle         `json:"vehicle"`
	Space             *Space          `json:"space,omitempty"`
	Dates             Dates           `json:"dates"`
	Payment           *Payment        `json:"payment,omitempty"`
	DurationMinutes   *int64          `json:"duration_minutes"`
	Timeline          []TimelineEvent `json:"timeline"`
}

// ReceiptAvailable reports whether the operation has a downloadable receipt.
func (o Operation) ReceiptAvailable() bool {
	return o.Payment != nil && o.Payment.Status == PaymentCompleted
}

// AnomalyKind classifies an input inconsistency found while reconciling.
type AnomalyKind string

const (
	AnomalyInvalidRecord             AnomalyKind = "invalid_record"
	AnomalyOrphanOccupation          AnomalyKind = "orphan_occupation"
	AnomalyOrphanPayment             AnomalyKind = "orphan_payment"
	AnomalyDiscardedOccupation       AnomalyKind = "discarded_occupation"
	AnomalyDuplicateCompletedPayment AnomalyKind = "duplicate_completed_payment"
	AnomalyInconsistentDates         AnomalyKind = "inconsistent_dates"
)

// Anomaly describes one inconsistency. Anomalies never abort reconciliation.
type Anomaly struct {
	Kind   AnomalyKind `json:"kind"`
	Ref    string      `json:"ref"`
	Detail string      `json:"detail"`
}

// Summary provides aggregate counts for a reconciliation run.
type Summary struct {
	// Reservations, Occupations and Payments count the valid input records.
	Reservations int `json:"reservations"`
	Occupations  int `json:"occupations"`
	Payments     int `json:"payments"`

	// WalkIns counts occupations that became their own operation,
	// including occupations pointing at an unknown reservation.
	WalkIns int `json:"walk_ins"`

	// Operations is always Reservations + WalkIns.
	Operations int `json:"operations"`

	// ByStatus counts operations per final status.
	ByStatus map[Status]int `json:"by_status"`

	// Anomalies counts entries in Result.Anomalies.
	Anomalies int `json:"anomalies"`
}

// Result is the output of a reconciliation run.
type Result struct {
	Operations []Operation `json:"operations"`
	Summary    Summary     `json:"summary"`
	Anomalies  []Anomaly   `json:"anomalies"`
}
