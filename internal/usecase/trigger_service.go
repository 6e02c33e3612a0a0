package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/domain/points"
	"github.com/ligadatos/liga-stats/internal/platform/cache"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

const DefaultTriggerLockTTL = 5 * time.Minute

// TriggerService watches match saves and dispatches the points engines
// exactly once per completed matchday. A short-TTL lock suppresses
// duplicate dispatch from rapid successive saves; engine failures are
// logged and never surfaced to the match save that triggered them.
type TriggerService struct {
	matchRepo  match.Repository
	pointsRepo points.Repository
	playerSvc  *PlayerPointsService
	clubSvc    *ClubPointsService
	locks      *cache.Store
	logger     *logging.Logger
}

func NewTriggerService(
	matchRepo match.Repository,
	pointsRepo points.Repository,
	playerSvc *PlayerPointsService,
	clubSvc *ClubPointsService,
	lockTTL time.Duration,
	logger *logging.Logger,
) *TriggerService {
	if lockTTL <= 0 {
		lockTTL = DefaultTriggerLockTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TriggerService{
		matchRepo:  matchRepo,
		pointsRepo: pointsRepo,
		playerSvc:  playerSvc,
		clubSvc:    clubSvc,
		locks:      cache.NewStore(lockTTL),
		logger:     logger,
	}
}

// MatchSaved is the post-commit entry point. It never returns an
// error: a failed dispatch leaves the matchday eligible for the next
// trigger or a manual rerun.
func (s *TriggerService) MatchSaved(ctx context.Context, saved match.Match) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TriggerService.MatchSaved")
	defer span.End()

	if !saved.Played {
		return
	}

	complete, err := s.matchdayComplete(ctx, saved.GroupID, saved.Matchday)
	if err != nil {
		s.logger.ErrorContext(ctx, "matchday completeness check failed",
			"error", err, "group_id", saved.GroupID, "season_id", saved.SeasonID, "matchday", saved.Matchday)
		return
	}
	if !complete {
		return
	}

	key := dedupKey(saved.GroupID, saved.SeasonID, saved.Matchday)
	if !s.locks.Acquire(key) {
		// Another save is already dispatching this matchday.
		return
	}
	defer s.locks.Release(key)

	already, err := s.alreadyComputed(ctx, saved.GroupID, saved.SeasonID, saved.Matchday)
	if err != nil {
		s.logger.ErrorContext(ctx, "existing points check failed",
			"error", err, "group_id", saved.GroupID, "season_id", saved.SeasonID, "matchday", saved.Matchday)
		return
	}
	if already {
		return
	}

	s.dispatch(ctx, saved.GroupID, saved.SeasonID, saved.Matchday)
}

func (s *TriggerService) matchdayComplete(ctx context.Context, groupID string, matchday int) (bool, error) {
	matches, err := s.matchRepo.ListByMatchday(ctx, groupID, matchday)
	if err != nil {
		return false, fmt.Errorf("list matchday matches: %w", err)
	}
	if len(matches) == 0 {
		return false, nil
	}
	for _, m := range matches {
		if !m.Played {
			return false, nil
		}
	}
	return true, nil
}

func (s *TriggerService) alreadyComputed(ctx context.Context, groupID, seasonID string, matchday int) (bool, error) {
	playerRows, err := s.pointsRepo.ListPlayerMatchdays(ctx, groupID, seasonID, matchday)
	if err != nil {
		return false, fmt.Errorf("list player matchday rows: %w", err)
	}
	clubRows, err := s.pointsRepo.ListClubMatchdays(ctx, groupID, seasonID, matchday)
	if err != nil {
		return false, fmt.Errorf("list club matchday rows: %w", err)
	}
	return len(playerRows) > 0 && len(clubRows) > 0, nil
}

func (s *TriggerService) dispatch(ctx context.Context, groupID, seasonID string, matchday int) {
	var playerErr, clubErr error

	var wg conc.WaitGroup
	wg.Go(func() {
		_, playerErr = s.playerSvc.ComputeMatchday(ctx, groupID, seasonID, matchday, false)
	})
	wg.Go(func() {
		_, clubErr = s.clubSvc.ComputeMatchday(ctx, groupID, seasonID, matchday, false)
	})
	wg.Wait()

	if playerErr != nil {
		s.logger.ErrorContext(ctx, "player points dispatch failed",
			"error", playerErr, "group_id", groupID, "season_id", seasonID, "matchday", matchday)
	}
	if clubErr != nil {
		s.logger.ErrorContext(ctx, "club points dispatch failed",
			"error", clubErr, "group_id", groupID, "season_id", seasonID, "matchday", matchday)
	}
	if playerErr == nil && clubErr == nil {
		s.logger.InfoContext(ctx, "matchday points computed",
			"group_id", groupID, "season_id", seasonID, "matchday", matchday)
	}
}

func dedupKey(groupID, seasonID string, matchday int) string {
	return fmt.Sprintf("points:%s:%s:%d", groupID, seasonID, matchday)
}
