package operations

import (
	"context"
	"fmt"
	"strings"

	"parking-ops/core/reconcile"
	"parking-ops/core/utils"

	"gorm.io/gorm"
)

const reservationsQuery = `
SELECT r.id_reservation, r.status, r.scheduled_start, r.scheduled_end,
       r.created_at, r.cancelled_at, r.expired_at,
       r.id_user, u.name AS user_name, u.email AS user_email, u.phone AS user_phone,
       r.guest_name, r.guest_contact,
       r.id_vehicle, v.plate AS vehicle_plate, v.make AS vehicle_make, v.model AS vehicle_model,
       r.guest_plate, r.guest_make, r.guest_model,
       r.id_space, s.code AS space_code
FROM reservations r
LEFT JOIN users u ON u.id_user = r.id_user
LEFT JOIN vehicles v ON v.id_vehicle = r.id_vehicle
LEFT JOIN spaces s ON s.id_space = r.id_space
WHERE r.id_facility = ?
ORDER BY r.id_reservation`

const occupationsQuery = `
SELECT o.id_occupation, o.id_reservation, o.entry_at, o.exit_at, o.total_minutes,
       o.id_user, u.name AS user_name, u.email AS user_email, u.phone AS user_phone,
       o.guest_name, o.guest_contact,
       o.id_vehicle, v.plate AS vehicle_plate, v.make AS vehicle_make, v.model AS vehicle_model,
       o.guest_plate, o.guest_make, o.guest_model,
       o.id_space, s.code AS space_code
FROM occupations o
LEFT JOIN users u ON u.id_user = o.id_user
LEFT JOIN vehicles v ON v.id_vehicle = o.id_vehicle
LEFT JOIN spaces s ON s.id_space = o.id_space
WHERE o.id_facility = ?
ORDER BY o.id_occupation`

const paymentsQuery = `
SELECT p.id_payment, p.id_occupation, p.status, p.amount, p.method,
       p.paid_at, p.issued_at, p.receipt_type, p.receipt_series, p.receipt_number
FROM payments p
WHERE p.id_facility = ?
ORDER BY p.id_payment`

// DBSource reads the three booking streams of a facility with raw SQL.
// Every column is converted leniently: malformed timestamps and numbers
// become absent values instead of failing the load.
type DBSource struct {
	db *gorm.DB
}

// NewDBSource creates a source over an open connection.
func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

// Name implements reconcile.Source.
func (s *DBSource) Name() string {
	if s.db == nil {
		return "database"
	}
	return s.db.Dialector.Name()
}

// LoadReservations implements reconcile.Source.
func (s *DBSource) LoadReservations(ctx context.Context, facilityID int64) ([]reconcile.Reservation, error) {
	rows, err := s.query(ctx, reservationsQuery, facilityID)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, reconcile.Reservation{
			ID:             utils.ToInt64(row["id_reservation"]),
			Status:         normalizeStatus(row["status"]),
			ScheduledStart: utils.ToTime(row["scheduled_start"]),
			ScheduledEnd:   utils.ToTime(row["scheduled_end"]),
			CreatedAt:      utils.ToTime(row["created_at"]),
			CancelledAt:    utils.ToTime(row["cancelled_at"]),
			ExpiredAt:      utils.ToTime(row["expired_at"]),
			User:           userFrom(row),
			Guest:          guestFrom(row),
			Vehicle:        vehicleFrom(row),
			GuestVehicle:   guestVehicleFrom(row),
			Space:          spaceFrom(row),
		})
	}
	return out, nil
}

// LoadOccupations implements reconcile.Source.
func (s *DBSource) LoadOccupations(ctx context.Context, facilityID int64) ([]reconcile.Occupation, error) {
	rows, err := s.query(ctx, occupationsQuery, facilityID)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.Occupation, 0, len(rows))
	for _, row := range rows {
		out = append(out, reconcile.Occupation{
			ID:            utils.ToInt64(row["id_occupation"]),
			ReservationID: utils.ToInt64Ptr(row["id_reservation"]),
			EntryAt:       utils.ToTime(row["entry_at"]),
			ExitAt:        utils.ToTime(row["exit_at"]),
			TotalMinutes:  utils.ToInt64Ptr(row["total_minutes"]),
			User:          userFrom(row),
			Guest:         guestFrom(row),
			Vehicle:       vehicleFrom(row),
			GuestVehicle:  guestVehicleFrom(row),
			Space:         spaceFrom(row),
		})
	}
	return out, nil
}

// LoadPayments implements reconcile.Source.
func (s *DBSource) LoadPayments(ctx context.Context, facilityID int64) ([]reconcile.Payment, error) {
	rows, err := s.query(ctx, paymentsQuery, facilityID)
	if err != nil {
		return nil, err
	}

	out := make([]reconcile.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, reconcile.Payment{
			ID:           utils.ToInt64(row["id_payment"]),
			OccupationID: utils.ToInt64(row["id_occupation"]),
			Status:       reconcile.PaymentStatus(strings.ToLower(strings.TrimSpace(utils.ToString(row["status"])))),
			Amount:       utils.ToFloat64(row["amount"]),
			Method:       utils.ToString(row["method"]),
			PaidAt:       utils.ToTime(row["paid_at"]),
			IssuedAt:     utils.ToTime(row["issued_at"]),
			Receipt: reconcile.Receipt{
				Type:   utils.ToString(row["receipt_type"]),
				Series: utils.ToString(row["receipt_series"]),
				Number: utils.ToString(row["receipt_number"]),
			},
		})
	}
	return out, nil
}

func (s *DBSource) query(ctx context.Context, sql string, facilityID int64) ([]map[string]any, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(sql, facilityID).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// normalizeStatus trims and lower-cases the stored status. Unknown values
// pass through; the engine treats them verbatim.
func normalizeStatus(v any) reconcile.Status {
	return reconcile.Status(strings.ToLower(strings.TrimSpace(utils.ToString(v))))
}

func userFrom(row map[string]any) *reconcile.RegisteredUser {
	id := utils.ToInt64Ptr(row["id_user"])
	if id == nil {
		return nil
	}
	return &reconcile.RegisteredUser{
		ID:    *id,
		Name:  utils.ToString(row["user_name"]),
		Email: utils.ToString(row["user_email"]),
		Phone: utils.ToString(row["user_phone"]),
	}
}

func guestFrom(row map[string]any) *reconcile.GuestContact {
	name := strings.TrimSpace(utils.ToString(row["guest_name"]))
	contact := strings.TrimSpace(utils.ToString(row["guest_contact"]))
	if name == "" && contact == "" {
		return nil
	}
	return &reconcile.GuestContact{Name: name, Contact: contact}
}

func vehicleFrom(row map[string]any) *reconcile.RegisteredVehicle {
	id := utils.ToInt64Ptr(row["id_vehicle"])
	if id == nil {
		return nil
	}
	return &reconcile.RegisteredVehicle{
		ID:    *id,
		Plate: utils.ToString(row["vehicle_plate"]),
		Make:  utils.ToString(row["vehicle_make"]),
		Model: utils.ToString(row["vehicle_model"]),
	}
}

func guestVehicleFrom(row map[string]any) *reconcile.GuestVehicle {
	plate := strings.TrimSpace(utils.ToString(row["guest_plate"]))
	if plate == "" {
		return nil
	}
	return &reconcile.GuestVehicle{
		Plate: plate,
		Make:  utils.ToString(row["guest_make"]),
		Model: utils.ToString(row["guest_model"]),
	}
}

func spaceFrom(row map[string]any) *reconcile.Space {
	id := utils.ToInt64Ptr(row["id_space"])
	if id == nil {
		return nil
	}
	return &reconcile.Space{ID: *id, Code: utils.ToString(row["space_code"])}
}
