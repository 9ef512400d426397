// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections for production and sqlite
// connections for tests and local runs, based on the application's
// configuration.
//
// # Connect
//
// Connect opens the configured driver, applies the pool settings and pings
// the server within TimeoutSeconds. The reservations, occupations and
// payments tables are owned by the booking system; this service only reads
// them.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns on either dialect. The server
// integrity check uses it to verify that the live schema still carries the
// columns the operation models read.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "payments")
package database
