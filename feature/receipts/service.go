package receipts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"parking-ops/core/reconcile"
	"parking-ops/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var (
	// ErrPaymentNotFound is returned when the facility has no such payment.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrReceiptUnavailable is returned for payments that are not the
	// completed, authoritative payment of an operation.
	ErrReceiptUnavailable = errors.New("receipt unavailable: payment is not the completed payment of its operation")
)

// PaymentLookup resolves a payment and the operation it belongs to.
type PaymentLookup interface {
	LookupPayment(ctx context.Context, facilityID, paymentID int64) (*reconcile.Payment, *reconcile.Operation, error)
}

// Receipt is an open receipt artifact. Callers must close Body.
type Receipt struct {
	Key       string
	Size      int64
	Body      io.ReadCloser
	Generated bool
}

// Service serves receipt PDFs from object storage, rendering missing ones.
type Service struct {
	client   storage.Client
	bucket   string
	prefix   string
	lookup   PaymentLookup
	logger   *zap.Logger
	location *time.Location
}

// NewService creates a new receipts service.
func NewService(client storage.Client, cfg storage.Config, lookup PaymentLookup, logger *zap.Logger, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		client:   client,
		bucket:   cfg.Bucket,
		prefix:   cfg.ReceiptPrefix,
		lookup:   lookup,
		logger:   logger,
		location: location,
	}
}

// ObjectKey returns where the receipt of a payment is stored.
func (s *Service) ObjectKey(facilityID, paymentID int64) string {
	return storage.ObjectKey(s.prefix, strconv.FormatInt(facilityID, 10), strconv.FormatInt(paymentID, 10)+".pdf")
}

// Open returns the receipt of an operation's authoritative payment. The
// stored artifact is used when present; otherwise, or when refresh is set,
// it is rendered and uploaded first.
func (s *Service) Open(ctx context.Context, facilityID, paymentID int64, refresh bool) (*Receipt, error) {
	payment, op, err := s.lookup.LookupPayment(ctx, facilityID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !authoritative(payment, op) {
		return nil, ErrReceiptUnavailable
	}

	key := s.ObjectKey(facilityID, paymentID)

	if !refresh {
		info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
		switch {
		case err == nil:
			body, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
			if err != nil {
				return nil, fmt.Errorf("failed to read receipt %s: %w", key, err)
			}
			return &Receipt{Key: key, Size: info.Size, Body: body}, nil
		case !storage.IsNotFound(err):
			return nil, fmt.Errorf("failed to stat receipt %s: %w", key, err)
		}
	}

	pdf, err := Render(Document{
		FacilityID: facilityID,
		Payment:    *payment,
		Operation:  op,
		Location:   s.location,
	})
	if err != nil {
		return nil, err
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(pdf), int64(len(pdf)), minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		// The rendered copy is still served; the next request retries the upload.
		s.logger.Warn("Failed to store receipt", zap.String("key", key), zap.Error(err))
	} else {
		s.logger.Info("Receipt generated", zap.String("key", key), zap.Int("size", len(pdf)))
	}

	return &Receipt{
		Key:       key,
		Size:      int64(len(pdf)),
		Body:      io.NopCloser(bytes.NewReader(pdf)),
		Generated: true,
	}, nil
}

// authoritative reports whether payment is the completed payment the
// operation resolved to. Payments on discarded occupations have no operation.
func authoritative(payment *reconcile.Payment, op *reconcile.Operation) bool {
	return payment.Status == reconcile.PaymentCompleted &&
		op != nil && op.Payment != nil && op.Payment.ID == payment.ID
}

// Delete removes a stored receipt so the next Open renders it again.
func (s *Service) Delete(ctx context.Context, facilityID, paymentID int64) error {
	key := s.ObjectKey(facilityID, paymentID)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove receipt %s: %w", key, err)
	}
	return nil
}
