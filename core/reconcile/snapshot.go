package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source defines how the three record streams of a facility are fetched.
// Implementations own transport, retries and timeouts; the engine only
// sees the materialized slices.
type Source interface {
	// Name returns a short identifier for logs (e.g. "mysql").
	Name() string

	// LoadReservations returns every reservation of the facility.
	LoadReservations(ctx context.Context, facilityID int64) ([]Reservation, error)

	// LoadOccupations returns every occupation of the facility, walk-ins included.
	LoadOccupations(ctx context.Context, facilityID int64) ([]Occupation, error)

	// LoadPayments returns every payment attempt of the facility.
	LoadPayments(ctx context.Context, facilityID int64) ([]Payment, error)
}

// Snapshot is an immutable, already-fetched view of one facility.
type Snapshot struct {
	FacilityID   int64
	Reservations []Reservation
	Occupations  []Occupation
	Payments     []Payment
	LoadedAt     time.Time
}

// LoadSnapshot fetches the three streams concurrently. Either all three
// succeed or no snapshot is returned; the first failure cancels the
// remaining loads.
func LoadSnapshot(ctx context.Context, src Source, facilityID int64) (*Snapshot, error) {
	var (
		reservations []Reservation
		occupations  []Occupation
		payments     []Payment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if reservations, err = src.LoadReservations(gctx, facilityID); err != nil {
			return fmt.Errorf("failed to load reservations from %s: %w", src.Name(), err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if occupations, err = src.LoadOccupations(gctx, facilityID); err != nil {
			return fmt.Errorf("failed to load occupations from %s: %w", src.Name(), err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if payments, err = src.LoadPayments(gctx, facilityID); err != nil {
			return fmt.Errorf("failed to load payments from %s: %w", src.Name(), err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		FacilityID:   facilityID,
		Reservations: reservations,
		Occupations:  occupations,
		Payments:     payments,
		LoadedAt:     time.Now(),
	}, nil
}

// ReconcileFacility loads a fresh snapshot and reconciles it.
func ReconcileFacility(ctx context.Context, src Source, facilityID int64, opts Options) (*Result, error) {
	snap, err := LoadSnapshot(ctx, src, facilityID)
	if err != nil {
		return nil, err
	}
	result := Reconcile(*snap, opts)
	return &result, nil
}
