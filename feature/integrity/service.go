package integrity

import (
	"context"
	"fmt"

	"pvp-pipeline/core/storage"
	"pvp-pipeline/core/utils"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/integrity/checks"
	"pvp-pipeline/feature/landing"
	"pvp-pipeline/feature/leaderboard"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StagingModels are the tables the pipeline reads and writes in staging.
var StagingModels = []any{
	leaderboard.RawLeaderboard{},
	leaderboard.CurLeaderboard{},
	characters.RawChinfo{},
	characters.CurChinfo{},
}

// WarehouseModels are the star schema tables.
var WarehouseModels = []any{
	warehouse.DimSeason{},
	warehouse.DimBracket{},
	warehouse.DimCharacter{},
	warehouse.FactLeaderboardSnapshot{},
}

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	store     *landing.Store
	staging   *gorm.DB
	warehouse *gorm.DB
	brackets  []string
	logger    *zap.Logger
}

// NewService creates a new integrity service. Any of client, staging and
// dw may be nil; the checks needing them then report an error.
func NewService(client storage.Client, cfg storage.Config, staging, dw *gorm.DB, brackets []string, logger *zap.Logger) *Service {
	svc := &Service{
		client:    client,
		bucket:    cfg.Bucket,
		staging:   staging,
		warehouse: dw,
		brackets:  brackets,
		logger:    logger,
	}
	if client != nil {
		svc.store = landing.NewStore(client, cfg.Bucket, cfg.LandingPrefix)
	}
	return svc
}

// CheckStaging compares the staging tables with their models.
func (s *Service) CheckStaging() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.staging, StagingModels...)
}

// CheckWarehouse compares the star schema with its models.
func (s *Service) CheckWarehouse() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.warehouse, WarehouseModels...)
}

// CheckLanding returns the landing objects missing for date.
func (s *Service) CheckLanding(ctx context.Context, date string) ([]string, error) {
	if err := utils.ValidateDate(date); err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, fmt.Errorf("storage client is not configured")
	}
	return checks.CheckLanding(ctx, s.client, s.bucket, s.store, date, s.brackets)
}
