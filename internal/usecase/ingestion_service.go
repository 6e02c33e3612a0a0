package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/platform/txn"
)

// ResultIngestionService records final or corrected match scores. The
// completion trigger runs as a post-commit callback, so it only ever
// observes committed match data and a slow aggregation cannot hold the
// write transaction open.
type ResultIngestionService struct {
	matchRepo match.Repository
	trigger   *TriggerService
	runner    txn.Runner
}

func NewResultIngestionService(matchRepo match.Repository, trigger *TriggerService, runner txn.Runner) *ResultIngestionService {
	return &ResultIngestionService{
		matchRepo: matchRepo,
		trigger:   trigger,
		runner:    runner,
	}
}

func (s *ResultIngestionService) RecordResult(ctx context.Context, matchID string, homeGoals, awayGoals int, events []match.Event) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultIngestionService.RecordResult")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if homeGoals < 0 || awayGoals < 0 {
		return match.Match{}, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
	}

	var saved match.Match
	err := s.runner.Run(ctx, func(ctx context.Context) error {
		existing, exists, err := s.matchRepo.GetByID(ctx, matchID)
		if err != nil {
			return fmt.Errorf("get match: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}

		if err := s.matchRepo.SetResult(ctx, matchID, homeGoals, awayGoals, events); err != nil {
			return fmt.Errorf("set match result: %w", err)
		}

		saved = existing
		saved.HomeGoals = homeGoals
		saved.AwayGoals = awayGoals
		saved.Played = true
		saved.Events = events

		txn.OnCommit(ctx, func(ctx context.Context) {
			s.trigger.MatchSaved(ctx, saved)
		})
		return nil
	})
	if err != nil {
		return match.Match{}, err
	}

	return saved, nil
}
