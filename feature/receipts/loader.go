package receipts

import (
	"parking-ops/core/server"
	"parking-ops/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Receipts feature.
func NewFeature(client storage.Client, cfg storage.Config, lookup PaymentLookup, logger *zap.Logger, srv server.Config) *Feature {
	svc := NewService(client, cfg, lookup, logger, srv.Location())
	return &Feature{service: svc, handler: NewHandler(svc, srv.Facility)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "receipts"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.client != nil && f.service.lookup != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
