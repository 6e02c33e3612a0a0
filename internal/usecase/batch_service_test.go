package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ligadatos/liga-stats/internal/domain/standings"
	idgen "github.com/ligadatos/liga-stats/internal/platform/id"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

func newBatchService(env *fixtureEnv) *BatchService {
	standingsSvc := NewStandingsService(env.leagueRepo, env.matchRepo, env.standingsRepo, idgen.NewSequence("snap"), standings.DefaultStreakLength)
	return NewBatchService(env.leagueRepo, standingsSvc, newPlayerPointsService(env), newClubPointsService(env), 2, logging.NewNop())
}

func TestBatchService_RecomputeSeason_StandingsOnly(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newBatchService(env)
	ctx := context.Background()

	result, err := service.RecomputeSeason(ctx, testSeasonID, 1, false, false)
	if err != nil {
		t.Fatalf("recompute season: %v", err)
	}
	if result.GroupCount != 1 || result.SuccessCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected batch result: %+v", result)
	}

	_, _, exists, err := env.standingsRepo.Get(ctx, testGroupID, 1)
	if err != nil || !exists {
		t.Fatalf("expected stored snapshot: exists=%t err=%v", exists, err)
	}
	rows, err := env.pointsRepo.ListPlayerMatchdays(ctx, testGroupID, testSeasonID, 1)
	if err != nil {
		t.Fatalf("list player rows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("withPoints=false must not run the points engines, got %d rows", len(rows))
	}
}

func TestBatchService_RecomputeSeason_WithPoints(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newBatchService(env)
	ctx := context.Background()

	result, err := service.RecomputeSeason(ctx, testSeasonID, 1, true, false)
	if err != nil {
		t.Fatalf("recompute season: %v", err)
	}
	if result.FailedCount != 0 {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}

	playerRows, err := env.pointsRepo.ListPlayerMatchdays(ctx, testGroupID, testSeasonID, 1)
	if err != nil {
		t.Fatalf("list player rows: %v", err)
	}
	if len(playerRows) != 5 {
		t.Fatalf("expected player rows from batch run, got %d", len(playerRows))
	}
	clubRows, err := env.pointsRepo.ListClubMatchdays(ctx, testGroupID, testSeasonID, 1)
	if err != nil {
		t.Fatalf("list club rows: %v", err)
	}
	if len(clubRows) != 4 {
		t.Fatalf("expected club rows from batch run, got %d", len(clubRows))
	}
}

func TestBatchService_RecomputeSeason_ReportsGroupFailures(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newBatchService(env)
	ctx := context.Background()

	// Matchday 2 has no played matches, so the points engines fail per
	// group while the batch call itself succeeds.
	result, err := service.RecomputeSeason(ctx, testSeasonID, 2, true, false)
	if err != nil {
		t.Fatalf("recompute season: %v", err)
	}
	if result.FailedCount != 1 || len(result.Failures) != 1 {
		t.Fatalf("expected one group failure, got %+v", result)
	}
	if result.Failures[0].GroupID != testGroupID {
		t.Fatalf("unexpected failing group: %s", result.Failures[0].GroupID)
	}
	if !errors.Is(result.Failures[0].Err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData, got %v", result.Failures[0].Err)
	}
}

func TestBatchService_RecomputeSeason_UnknownSeason(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newBatchService(env)

	_, err := service.RecomputeSeason(context.Background(), "season-none", 1, false, false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
