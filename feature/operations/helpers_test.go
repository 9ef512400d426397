package operations

import (
	"testing"
	"time"

	"parking-ops/core/database"
	"parking-ops/feature/operations/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ptr[T any](v T) *T {
	return &v
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupSeededDB returns an in-memory facility 1 with:
//   - res 1 confirmed + open occupation 10 (active)
//   - res 2 cancelled, guest
//   - walk-in 11 with a completed payment (finalized_paid)
//   - facility 2 noise that must never leak into facility 1
func setupSeededDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	for _, m := range models.All() {
		require.NoError(t, db.AutoMigrate(m))
	}

	require.NoError(t, db.Create(&models.User{ID: 9, Name: "Ana Torres", Email: ptr("ana@example.com")}).Error)
	require.NoError(t, db.Create(&models.Vehicle{ID: 4, UserID: ptr(int64(9)), Plate: "ABC-123", Make: ptr("Kia")}).Error)
	require.NoError(t, db.Create(&models.Space{ID: 7, FacilityID: 1, Code: "B-07"}).Error)

	require.NoError(t, db.Create(&models.Reservation{
		ID: 1, FacilityID: 1, UserID: ptr(int64(9)), VehicleID: ptr(int64(4)), SpaceID: ptr(int64(7)),
		Status: "confirmed", CreatedAt: ts("2024-01-14 10:00"), ScheduledStart: ts("2024-01-15 08:00"), ScheduledEnd: ts("2024-01-15 12:00"),
	}).Error)
	require.NoError(t, db.Create(&models.Reservation{
		ID: 2, FacilityID: 1, GuestName: ptr("Luis"), GuestContact: ptr("+51 999 111 222"), GuestPlate: ptr("XYZ-987"),
		Status: "Cancelled ", CreatedAt: ts("2024-01-14 11:00"), ScheduledStart: ts("2024-01-16 08:00"), CancelledAt: ts("2024-01-15 09:00"),
	}).Error)
	require.NoError(t, db.Create(&models.Reservation{
		ID: 3, FacilityID: 2, Status: "pending", CreatedAt: ts("2024-01-14 12:00"),
	}).Error)

	require.NoError(t, db.Create(&models.Occupation{
		ID: 10, FacilityID: 1, ReservationID: ptr(int64(1)), SpaceID: ptr(int64(7)), EntryAt: ts("2024-01-15 08:05"),
	}).Error)
	require.NoError(t, db.Create(&models.Occupation{
		ID: 11, FacilityID: 1, GuestPlate: ptr("WLK-001"), EntryAt: ts("2024-01-15 10:00"), ExitAt: ts("2024-01-15 11:30"), TotalMinutes: ptr(int64(90)),
	}).Error)

	require.NoError(t, db.Create(&models.Payment{
		ID: 100, FacilityID: 1, OccupationID: 11, Status: "completed", Amount: 10.5, Method: ptr("cash"),
		PaidAt: ts("2024-01-15 11:32"), ReceiptType: ptr("boleta"), ReceiptSeries: ptr("B001"), ReceiptNumber: ptr("000123"),
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		ID: 101, FacilityID: 1, OccupationID: 11, Status: "cancelled", Amount: 10.5, IssuedAt: ts("2024-01-15 11:31"),
	}).Error)

	return db
}
