package integrity

import (
	"context"

	"parking-ops/core/storage"
	"parking-ops/feature/integrity/checks"
	"parking-ops/feature/operations/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. Either client or db may be
// nil; the corresponding checks then report an error.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:  client,
		bucket:  cfg.Bucket,
		folders: checks.RequiredFolders(cfg),
		db:      db,
		logger:  logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckServer compares the database schema with the operations models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, models.All())
}
