package models

import "time"

type Reservation struct {
	ID             int64      `gorm:"primaryKey;column:id_reservation"`
	FacilityID     int64      `gorm:"column:id_facility;index"`
	UserID         *int64     `gorm:"column:id_user"`
	VehicleID      *int64     `gorm:"column:id_vehicle"`
	SpaceID        *int64     `gorm:"column:id_space"`
	GuestName      *string    `gorm:"column:guest_name;type:varchar(120)"`
	GuestContact   *string    `gorm:"column:guest_contact;type:varchar(120)"`
	GuestPlate     *string    `gorm:"column:guest_plate;type:varchar(20)"`
	GuestMake      *string    `gorm:"column:guest_make;type:varchar(60)"`
	GuestModel     *string    `gorm:"column:guest_model;type:varchar(60)"`
	Status         string     `gorm:"column:status;type:varchar(20);default:pending"`
	ScheduledStart *time.Time `gorm:"column:scheduled_start;type:datetime"`
	ScheduledEnd   *time.Time `gorm:"column:scheduled_end;type:datetime"`
	CreatedAt      *time.Time `gorm:"column:created_at;type:datetime"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at;type:datetime"`
	ExpiredAt      *time.Time `gorm:"column:expired_at;type:datetime"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Occupation is one physical stay. A NULL id_reservation marks a walk-in.
type Occupation struct {
	ID            int64      `gorm:"primaryKey;column:id_occupation"`
	FacilityID    int64      `gorm:"column:id_facility;index"`
	ReservationID *int64     `gorm:"column:id_reservation;index"`
	UserID        *int64     `gorm:"column:id_user"`
	VehicleID     *int64     `gorm:"column:id_vehicle"`
	SpaceID       *int64     `gorm:"column:id_space"`
	GuestName     *string    `gorm:"column:guest_name;type:varchar(120)"`
	GuestContact  *string    `gorm:"column:guest_contact;type:varchar(120)"`
	GuestPlate    *string    `gorm:"column:guest_plate;type:varchar(20)"`
	GuestMake     *string    `gorm:"column:guest_make;type:varchar(60)"`
	GuestModel    *string    `gorm:"column:guest_model;type:varchar(60)"`
	EntryAt       *time.Time `gorm:"column:entry_at;type:datetime"`
	ExitAt        *time.Time `gorm:"column:exit_at;type:datetime"`
	TotalMinutes  *int64     `gorm:"column:total_minutes"`
}

func (Occupation) TableName() string {
	return "occupations"
}

type Payment struct {
	ID            int64      `gorm:"primaryKey;column:id_payment"`
	FacilityID    int64      `gorm:"column:id_facility;index"`
	OccupationID  int64      `gorm:"column:id_occupation;index"`
	Status        string     `gorm:"column:status;type:varchar(20);default:pending"`
	Amount        float64    `gorm:"column:amount;type:decimal(10,2);default:0.00"`
	Method        *string    `gorm:"column:method;type:varchar(30)"`
	PaidAt        *time.Time `gorm:"column:paid_at;type:datetime"`
	IssuedAt      *time.Time `gorm:"column:issued_at;type:datetime"`
	ReceiptType   *string    `gorm:"column:receipt_type;type:varchar(20)"`
	ReceiptSeries *string    `gorm:"column:receipt_series;type:varchar(10)"`
	ReceiptNumber *string    `gorm:"column:receipt_number;type:varchar(20)"`
}

func (Payment) TableName() string {
	return "payments"
}
