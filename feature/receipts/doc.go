// Package receipts serves the printable receipt of a completed payment.
//
// Receipts live in object storage under <receipt_prefix>/<facility>/<id_payment>.pdf.
// A missing receipt is rendered with gofpdf, including a QR code of
// type|series|number|amount, stored, and then served. Payments that were
// never completed have no receipt.
//
// # Endpoints
//
//   - GET /receipts/:paymentID: stream the PDF (404 unknown, 409 not completed).
//   - DELETE /receipts/:paymentID: drop the stored copy.
package receipts
