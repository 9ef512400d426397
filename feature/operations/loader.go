package operations

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Operations feature.
func NewFeature(service *Service, facility int64) *Feature {
	return &Feature{service: service, handler: NewHandler(service, facility)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "operations"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil && f.service.source != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
