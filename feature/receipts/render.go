package receipts

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"parking-ops/core/reconcile"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Document is everything printed on one receipt.
type Document struct {
	FacilityID int64
	Payment    reconcile.Payment
	// Operation is nil when the payment's occupation produced no operation.
	Operation *reconcile.Operation
	Location  *time.Location
}

// QRPayload is the text encoded in the receipt's QR code:
// type|series|number|amount, amount with two decimals.
func QRPayload(p reconcile.Payment) string {
	return fmt.Sprintf("%s|%s|%s|%.2f", p.Receipt.Type, p.Receipt.Series, p.Receipt.Number, p.Amount)
}

// Title returns the heading of the receipt.
func Title(p reconcile.Payment) string {
	if t := strings.TrimSpace(p.Receipt.Type); t != "" {
		return strings.ToUpper(t)
	}
	return "PAYMENT RECEIPT"
}

// Render draws the receipt as a single A6 page PDF.
func Render(doc Document) ([]byte, error) {
	loc := doc.Location
	if loc == nil {
		loc = time.UTC
	}
	p := doc.Payment

	qrPNG, err := qrcode.Encode(QRPayload(p), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A6", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, tr(Title(p)), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if number := receiptNumber(p.Receipt); number != "" {
		pdf.CellFormat(0, 6, tr(number), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Facility %d", doc.FacilityID), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	line := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(28, 5, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
	}

	if op := doc.Operation; op != nil {
		line("Operation", op.ID)
		line("Customer", op.Occupant.Name)
		line("Plate", op.Vehicle.Plate)
		if op.Space != nil {
			line("Space", op.Space.Code)
		}
		line("Entry", formatTime(op.Dates.Entry, loc))
		line("Exit", formatTime(op.Dates.Exit, loc))
		if op.DurationMinutes != nil {
			line("Duration", formatDuration(*op.DurationMinutes))
		}
	}
	line("Payment", fmt.Sprintf("#%d", p.ID))
	line("Method", p.Method)
	line("Paid at", formatTime(p.EffectiveTime(), loc))

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("TOTAL %.2f", p.Amount), "T", 1, "R", false, 0, "")

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 34, pdf.GetY()+2, 36, 36, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func receiptNumber(r reconcile.Receipt) string {
	switch {
	case r.Series != "" && r.Number != "":
		return r.Series + "-" + r.Number
	case r.Number != "":
		return r.Number
	}
	return ""
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

func formatDuration(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%dh %02dmin", minutes/60, minutes%60)
}
