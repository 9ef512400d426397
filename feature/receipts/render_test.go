package receipts

import (
	"bytes"
	"testing"
	"time"

	"parking-ops/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidAt() *time.Time {
	t := time.Date(2024, 1, 15, 16, 32, 0, 0, time.UTC)
	return &t
}

func completedPayment() reconcile.Payment {
	return reconcile.Payment{
		ID:           100,
		OccupationID: 11,
		Status:       reconcile.PaymentCompleted,
		Amount:       10.5,
		Method:       "cash",
		PaidAt:       paidAt(),
		Receipt:      reconcile.Receipt{Type: "boleta", Series: "B001", Number: "000123"},
	}
}

func TestQRPayload(t *testing.T) {
	assert.Equal(t, "boleta|B001|000123|10.50", QRPayload(completedPayment()))
	assert.Equal(t, "|||0.00", QRPayload(reconcile.Payment{}))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "BOLETA", Title(completedPayment()))
	assert.Equal(t, "PAYMENT RECEIPT", Title(reconcile.Payment{}))
}

func TestRender(t *testing.T) {
	minutes := int64(95)
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  Document
	}{
		{"With Operation", Document{
			FacilityID: 1,
			Payment:    completedPayment(),
			Operation: &reconcile.Operation{
				ID:              "oc-11",
				Occupant:        reconcile.Occupant{Kind: reconcile.PartyGuest, Name: "José Núñez"},
				Vehicle:         reconcile.Vehicle{Kind: reconcile.PartyGuest, Plate: "WLK-001"},
				Space:           &reconcile.Space{ID: 7, Code: "B-07"},
				Dates:           reconcile.Dates{Entry: paidAt(), Exit: paidAt()},
				DurationMinutes: &minutes,
			},
			Location: lima,
		}},
		{"Payment Only", Document{FacilityID: 2, Payment: reconcile.Payment{ID: 5, Status: reconcile.PaymentCompleted}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf, err := Render(tt.doc)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
			assert.Greater(t, len(pdf), 1000)
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "45 min", formatDuration(45))
	assert.Equal(t, "2h 05min", formatDuration(125))
	assert.Equal(t, "", formatTime(nil, time.UTC))

	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 11:32", formatTime(paidAt(), lima))

	assert.Equal(t, "B001-000123", receiptNumber(reconcile.Receipt{Series: "B001", Number: "000123"}))
	assert.Equal(t, "77", receiptNumber(reconcile.Receipt{Number: "77"}))
	assert.Equal(t, "", receiptNumber(reconcile.Receipt{Series: "B001"}))
}
