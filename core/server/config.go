package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Facility is the parking facility served when a request names none.
	Facility int64 `mapstructure:"facility" default:"1"`
	// Timezone is the IANA zone used to print local times in CLI reports and receipts.
	Timezone string `mapstructure:"timezone" default:"UTC"`
}

// Location resolves Timezone, falling back to UTC for unknown zones.
func (c Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FacilityOr returns id when it is positive, else the configured default.
func (c Config) FacilityOr(id int64) int64 {
	if id > 0 {
		return id
	}
	return c.Facility
}
