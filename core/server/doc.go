// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the settings shared by the HTTP features and the CLI.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key, the facility used
// when a request does not name one, and the timezone used for human-readable
// times.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by feature handlers to resolve the facility of a request.
package server
