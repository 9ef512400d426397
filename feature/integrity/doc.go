// Package integrity checks that the infrastructure the console depends on is
// in the expected shape.
//
// # Checks Provided
//
//   - Structure: the receipt folder exists in the storage bucket. Missing
//     folders can be created with ?fix=true.
//   - Server: the reservations, occupations and payments tables (and the
//     directory tables they join) carry the columns declared by the gorm
//     models in feature/operations/models, with compatible types.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/server : Runs server schema check.
package integrity
