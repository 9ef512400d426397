// Package utils provides common utility functions for the parking-ops application.
// It includes lenient conversion helpers used when scanning raw database rows,
// where drivers hand back int64, []byte, string or time.Time for the same
// logical column depending on the dialect.
package utils
