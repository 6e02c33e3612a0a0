package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

const defaultBatchWorkers = 4

// BatchService fans a season-wide recompute out over the season's
// groups with a bounded worker pool. Used by the recalc command.
type BatchService struct {
	leagueRepo   league.Repository
	standingsSvc *StandingsService
	playerSvc    *PlayerPointsService
	clubSvc      *ClubPointsService
	logger       *logging.Logger
	maxWorkers   int
}

type BatchResult struct {
	GroupCount   int
	SuccessCount int
	FailedCount  int
	Failures     []BatchFailure
}

type BatchFailure struct {
	GroupID string
	Err     error
}

func NewBatchService(
	leagueRepo league.Repository,
	standingsSvc *StandingsService,
	playerSvc *PlayerPointsService,
	clubSvc *ClubPointsService,
	maxWorkers int,
	logger *logging.Logger,
) *BatchService {
	if maxWorkers <= 0 {
		maxWorkers = defaultBatchWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchService{
		leagueRepo:   leagueRepo,
		standingsSvc: standingsSvc,
		playerSvc:    playerSvc,
		clubSvc:      clubSvc,
		logger:       logger,
		maxWorkers:   maxWorkers,
	}
}

// RecomputeSeason reruns standings and, when withPoints is set, both
// points engines for every group of the season at the given matchday.
func (s *BatchService) RecomputeSeason(ctx context.Context, seasonID string, matchday int, withPoints, force bool) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.RecomputeSeason")
	defer span.End()

	groups, err := s.leagueRepo.ListGroupsBySeason(ctx, seasonID)
	if err != nil {
		return BatchResult{}, fmt.Errorf("list groups by season: %w", err)
	}
	if len(groups) == 0 {
		return BatchResult{}, fmt.Errorf("%w: season=%s has no groups", ErrNotFound, seasonID)
	}

	pool, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures []BatchFailure
	)

	for _, group := range groups {
		group := group
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.recomputeGroup(ctx, group, seasonID, matchday, withPoints, force); err != nil {
				s.logger.ErrorContext(ctx, "group recompute failed",
					"error", err, "group_id", group.ID, "matchday", matchday)
				mu.Lock()
				failures = append(failures, BatchFailure{GroupID: group.ID, Err: err})
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			failures = append(failures, BatchFailure{GroupID: group.ID, Err: submitErr})
			mu.Unlock()
		}
	}
	wg.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].GroupID < failures[j].GroupID })

	return BatchResult{
		GroupCount:   len(groups),
		SuccessCount: len(groups) - len(failures),
		FailedCount:  len(failures),
		Failures:     failures,
	}, nil
}

func (s *BatchService) recomputeGroup(ctx context.Context, group league.Group, seasonID string, matchday int, withPoints, force bool) error {
	if _, err := s.standingsSvc.Recompute(ctx, group.ID, matchday); err != nil {
		return fmt.Errorf("standings: %w", err)
	}
	if !withPoints {
		return nil
	}
	if _, err := s.playerSvc.ComputeMatchday(ctx, group.ID, seasonID, matchday, force); err != nil {
		return fmt.Errorf("player points: %w", err)
	}
	if _, err := s.clubSvc.ComputeMatchday(ctx, group.ID, seasonID, matchday, force); err != nil {
		return fmt.Errorf("club points: %w", err)
	}
	return nil
}
