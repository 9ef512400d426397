// Package operations serves the operator's list of parking operations.
//
// It plugs the booking database into the reconcile engine and exposes the
// result over HTTP.
//
// # Source
//
// DBSource implements reconcile.Source with three raw queries, joined with
// the users, vehicles and spaces lookups. Values are converted through
// core/utils, so a malformed timestamp becomes an absent date.
//
// # Service
//
// Service reconciles a facility on every call. Concurrent calls for the same
// facility are collapsed with singleflight; there is no cache between calls.
// List applies a Filter after reconciliation without reordering.
//
// # Endpoints
//
//   - GET /operations: filtered list and summary.
//   - GET /operations/audit: anomalies found in the inputs.
//   - GET /operations/:id: one operation with its timeline.
//
// # Usage
//
//	svc := operations.NewService(operations.NewDBSource(db), logger)
//	mgr.Register(operations.NewFeature(svc, cfg.Server.Facility))
package operations
