// Package models contains the GORM models of the booking tables.
//
// The tables are owned by the booking system. This service only reads them:
// the operations source selects from them and the server integrity check
// compares their live schema against these definitions.
//
// # Tables
//
//   - reservations, occupations, payments: the three reconciled streams.
//   - users, vehicles, spaces: identity lookups joined by the source.
//
// Every time column is a nullable datetime stored in UTC.
package models
