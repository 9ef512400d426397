package operations

import (
	"context"
	"errors"
	"strconv"
	"time"

	"parking-ops/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// defaultLoadTimeout bounds one shared facility load.
const defaultLoadTimeout = 30 * time.Second

// ErrOperationNotFound is returned when no operation has the requested id.
var ErrOperationNotFound = errors.New("operation not found")

// Service reconciles facilities on demand. Nothing is cached between
// calls; concurrent requests for the same facility share one load.
type Service struct {
	source reconcile.Source
	logger *zap.Logger
	opts    reconcile.Options
	group   singleflight.Group
	timeout time.Duration
}

// view is one load of a facility: the raw snapshot and its reconciliation.
type view struct {
	snapshot *reconcile.Snapshot
	result   reconcile.Result
}

// NewService creates a new operations service using the default tie-break rules.
func NewService(source reconcile.Source, logger *zap.Logger) *Service {
	return &Service{
		source:  source,
		logger:  logger,
		opts:    reconcile.DefaultOptions(),
		timeout: defaultLoadTimeout,
	}
}

// WithOptions replaces the tie-break rules.
func (s *Service) WithOptions(opts reconcile.Options) *Service {
	s.opts = opts
	return s
}

// load runs at most one reconciliation per facility at a time. The shared
// load is detached from the caller that started it, so one caller giving up
// does not fail the others; each caller still returns on its own ctx.
func (s *Service) load(ctx context.Context, facilityID int64) (*view, error) {
	ch := s.group.DoChan(strconv.FormatInt(facilityID, 10), func() (any, error) {
		start := time.Now()

		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		snap, err := reconcile.LoadSnapshot(lctx, s.source, facilityID)
		if err != nil {
			return nil, err
		}
		result := reconcile.Reconcile(*snap, s.opts)

		s.logger.Info("Facility reconciled",
			zap.Int64("facility", facilityID),
			zap.Int("reservations", result.Summary.Reservations),
			zap.Int("walk_ins", result.Summary.WalkIns),
			zap.Int("operations", result.Summary.Operations),
			zap.Int("anomalies", result.Summary.Anomalies),
			zap.Duration("took", time.Since(start)),
		)
		return &view{snapshot: snap, result: result}, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("Shared in-flight reconciliation", zap.Int64("facility", facilityID))
		}
		return res.Val.(*view), nil
	}
}

// Reconcile returns the full reconciliation of a facility.
func (s *Service) Reconcile(ctx context.Context, facilityID int64) (*reconcile.Result, error) {
	v, err := s.load(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	result := v.result
	return &result, nil
}

// List returns the filtered operations of a facility, newest first, with the
// summary of the unfiltered set.
func (s *Service) List(ctx context.Context, facilityID int64, filter Filter) ([]reconcile.Operation, reconcile.Summary, error) {
	v, err := s.load(ctx, facilityID)
	if err != nil {
		return nil, reconcile.Summary{}, err
	}
	return Apply(v.result.Operations, filter), v.result.Summary, nil
}

// Get returns one operation by id ("res-N" or "oc-N").
func (s *Service) Get(ctx context.Context, facilityID int64, id string) (*reconcile.Operation, error) {
	v, err := s.load(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	for i := range v.result.Operations {
		if v.result.Operations[i].ID == id {
			op := v.result.Operations[i]
			return &op, nil
		}
	}
	return nil, ErrOperationNotFound
}

// AuditReport is the summary and anomaly list of one reconciliation.
type AuditReport struct {
	FacilityID int64               `json:"facility"`
	LoadedAt   time.Time           `json:"loaded_at"`
	Summary    reconcile.Summary   `json:"summary"`
	Anomalies  []reconcile.Anomaly `json:"anomalies"`
}

// Audit returns the input inconsistencies found while reconciling a facility.
func (s *Service) Audit(ctx context.Context, facilityID int64) (*AuditReport, error) {
	v, err := s.load(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	anomalies := v.result.Anomalies
	if anomalies == nil {
		anomalies = []reconcile.Anomaly{}
	}
	return &AuditReport{
		FacilityID: facilityID,
		LoadedAt:   v.snapshot.LoadedAt,
		Summary:    v.result.Summary,
		Anomalies:  anomalies,
	}, nil
}

// LookupPayment finds a payment attempt by id together with the operation
// of its occupation. payment is nil when the facility has no such payment;
// op is nil when the payment's occupation produced no operation.
func (s *Service) LookupPayment(ctx context.Context, facilityID, paymentID int64) (payment *reconcile.Payment, op *reconcile.Operation, err error) {
	v, err := s.load(ctx, facilityID)
	if err != nil {
		return nil, nil, err
	}

	for i := range v.snapshot.Payments {
		if v.snapshot.Payments[i].ID == paymentID {
			p := v.snapshot.Payments[i]
			payment = &p
			break
		}
	}
	if payment == nil {
		return nil, nil, nil
	}

	for i := range v.result.Operations {
		o := v.result.Operations[i]
		if o.OccupationID != nil && *o.OccupationID == payment.OccupationID {
			op = &o
			break
		}
	}
	return payment, op, nil
}
