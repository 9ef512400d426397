// Package config provides configuration management for the parking operations console.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults come from the `default` struct tags of
// each partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, default facility, display timezone)
//   - Database: MySQL (or sqlite) connection details for the booking tables
//   - Storage: S3/MinIO credentials, receipts bucket and prefix
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Facility)
package config
