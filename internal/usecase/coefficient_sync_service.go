package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

// ExternalDivisionCoefficient is a competition weighting fetched from
// the ratings provider.
type ExternalDivisionCoefficient struct {
	CompetitionID string
	Value         float64
}

type ExternalClubCoefficient struct {
	ClubID string
	Value  float64
}

// CoefficientProvider is the external ratings feed.
type CoefficientProvider interface {
	DivisionCoefficients(ctx context.Context, seasonID string, matchday int) ([]ExternalDivisionCoefficient, error)
	ClubCoefficients(ctx context.Context, seasonID string, matchday int) ([]ExternalClubCoefficient, error)
}

// CoefficientSyncService pulls coefficients for a season and reference
// matchday from the provider and stores them for the points engines,
// clamped to the allowed bound. The engines themselves only read.
type CoefficientSyncService struct {
	provider  CoefficientProvider
	coeffRepo coefficient.Repository
	logger    *logging.Logger
}

type CoefficientSyncResult struct {
	DivisionCount int
	ClubCount     int
	SyncedAt      time.Time
}

func NewCoefficientSyncService(provider CoefficientProvider, coeffRepo coefficient.Repository, logger *logging.Logger) *CoefficientSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CoefficientSyncService{
		provider:  provider,
		coeffRepo: coeffRepo,
		logger:    logger,
	}
}

func (s *CoefficientSyncService) SyncSeason(ctx context.Context, seasonID string, matchday int) (CoefficientSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CoefficientSyncService.SyncSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return CoefficientSyncResult{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if matchday < 1 {
		return CoefficientSyncResult{}, fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}

	divisions, err := s.provider.DivisionCoefficients(ctx, seasonID, matchday)
	if err != nil {
		return CoefficientSyncResult{}, fmt.Errorf("%w: fetch division coefficients: %v", ErrDependencyUnavailable, err)
	}
	clubs, err := s.provider.ClubCoefficients(ctx, seasonID, matchday)
	if err != nil {
		return CoefficientSyncResult{}, fmt.Errorf("%w: fetch club coefficients: %v", ErrDependencyUnavailable, err)
	}

	for _, item := range divisions {
		clamped := coefficient.Clamp(item.Value)
		if clamped != item.Value {
			s.logger.WarnContext(ctx, "division coefficient clamped",
				"competition_id", item.CompetitionID, "raw", item.Value, "clamped", clamped)
		}
		if err := s.coeffRepo.UpsertDivision(ctx, coefficient.Division{
			CompetitionID: item.CompetitionID,
			SeasonID:      seasonID,
			Matchday:      matchday,
			Value:         clamped,
		}); err != nil {
			return CoefficientSyncResult{}, fmt.Errorf("upsert division coefficient competition=%s: %w", item.CompetitionID, err)
		}
	}

	for _, item := range clubs {
		clamped := coefficient.Clamp(item.Value)
		if clamped != item.Value {
			s.logger.WarnContext(ctx, "club coefficient clamped",
				"club_id", item.ClubID, "raw", item.Value, "clamped", clamped)
		}
		if err := s.coeffRepo.UpsertClub(ctx, coefficient.Club{
			ClubID:   item.ClubID,
			SeasonID: seasonID,
			Matchday: matchday,
			Value:    clamped,
		}); err != nil {
			return CoefficientSyncResult{}, fmt.Errorf("upsert club coefficient club=%s: %w", item.ClubID, err)
		}
	}

	return CoefficientSyncResult{
		DivisionCount: len(divisions),
		ClubCount:     len(clubs),
		SyncedAt:      time.Now().UTC(),
	}, nil
}
