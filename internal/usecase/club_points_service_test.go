package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/domain/points"
	"github.com/ligadatos/liga-stats/internal/infrastructure/repository/memory"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

func newClubPointsService(env *fixtureEnv) *ClubPointsService {
	return NewClubPointsService(env.leagueRepo, env.matchRepo, env.pointsRepo, env.coeffRepo, points.DefaultClubWeights, logging.NewNop())
}

func TestClubPointsService_ComputeMatchday_ScoresEveryClub(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newClubPointsService(env)
	ctx := context.Background()

	rows, err := service.ComputeMatchday(ctx, testGroupID, testSeasonID, 1, false)
	if err != nil {
		t.Fatalf("compute matchday: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("unexpected club count: got=%d want=4", len(rows))
	}

	// One appearance and two goals at club weights 1/1, division
	// coefficient 1.3.
	alba := rows["club-alba"]
	if alba.Appearances != 1 || alba.Goals != 2 {
		t.Fatalf("unexpected alba tally: %+v", alba)
	}
	if !approxEqual(alba.BasePoints, 3) || !approxEqual(alba.WeightedPoints, 3.9) {
		t.Fatalf("unexpected alba scores: %+v", alba)
	}

	// The goalless draw still counts the appearance.
	ceres := rows["club-ceres"]
	if !approxEqual(ceres.BasePoints, 1) || !approxEqual(ceres.WeightedPoints, 1.3) {
		t.Fatalf("unexpected ceres scores: %+v", ceres)
	}

	total, err := service.GetSeasonTotal(ctx, "club-alba", testSeasonID)
	if err != nil {
		t.Fatalf("get season total: %v", err)
	}
	if !approxEqual(total.WeightedPoints, 3.9) || total.LastMatchday != 1 {
		t.Fatalf("unexpected season total: %+v", total)
	}
}

func TestClubPointsService_ComputeMatchday_ClubCoefficientApplies(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	env.coeffRepo = memory.NewCoefficientRepository(
		[]coefficient.Division{{CompetitionID: testCompetitionID, SeasonID: testSeasonID, Matchday: 1, Value: 1.3}},
		[]coefficient.Club{{ClubID: "club-alba", SeasonID: testSeasonID, Matchday: 1, Value: 1.1}},
	)
	service := newClubPointsService(env)

	rows, err := service.ComputeMatchday(context.Background(), testGroupID, testSeasonID, 1, false)
	if err != nil {
		t.Fatalf("compute matchday: %v", err)
	}
	if !approxEqual(rows["club-alba"].Coefficient, 1.3*1.1) {
		t.Fatalf("unexpected alba coefficient: got=%v", rows["club-alba"].Coefficient)
	}
	if !approxEqual(rows["club-bruma"].Coefficient, 1.3) {
		t.Fatalf("bruma must fall back to club multiplier 1.0: got=%v", rows["club-bruma"].Coefficient)
	}
}

func TestClubPointsService_ComputeMatchday_SkipsWhenAlreadyStored(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newClubPointsService(env)
	ctx := context.Background()

	stored := points.ClubMatchday{
		ClubID: "club-alba", SeasonID: testSeasonID, GroupID: testGroupID, Matchday: 1,
		BasePoints: 42, WeightedPoints: 42, Coefficient: 1,
	}
	if err := env.pointsRepo.UpsertClubMatchday(ctx, stored); err != nil {
		t.Fatalf("seed stored row: %v", err)
	}

	rows, err := service.ComputeMatchday(ctx, testGroupID, testSeasonID, 1, false)
	if err != nil {
		t.Fatalf("compute matchday: %v", err)
	}
	if len(rows) != 1 || !approxEqual(rows["club-alba"].BasePoints, 42) {
		t.Fatalf("expected stored rows returned untouched, got %+v", rows)
	}

	rows, err = service.ComputeMatchday(ctx, testGroupID, testSeasonID, 1, true)
	if err != nil {
		t.Fatalf("forced compute: %v", err)
	}
	if len(rows) != 4 || !approxEqual(rows["club-alba"].BasePoints, 3) {
		t.Fatalf("forced recompute must rebuild scores: got=%+v", rows["club-alba"])
	}
}

func TestClubPointsService_ComputeMatchday_MissingDivisionCoefficient(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	env.coeffRepo = memory.NewCoefficientRepository(nil, nil)
	service := newClubPointsService(env)

	_, err := service.ComputeMatchday(context.Background(), testGroupID, testSeasonID, 1, false)
	if !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData, got %v", err)
	}
}

func TestClubPointsService_ComputeMatchday_NoPlayedMatches(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newClubPointsService(env)

	_, err := service.ComputeMatchday(context.Background(), testGroupID, testSeasonID, 2, false)
	if !errors.Is(err, ErrIncompleteData) {
		t.Fatalf("expected ErrIncompleteData, got %v", err)
	}
}

func TestClubPointsService_SeasonTotal_SumsAllMatchdays(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	service := newClubPointsService(env)
	ctx := context.Background()

	if _, err := service.ComputeMatchday(ctx, testGroupID, testSeasonID, 1, false); err != nil {
		t.Fatalf("compute matchday 1: %v", err)
	}
	if err := env.matchRepo.SetResult(ctx, "m-3", 2, 2, nil); err != nil {
		t.Fatalf("set matchday 2 result: %v", err)
	}
	if _, err := service.ComputeMatchday(ctx, testGroupID, testSeasonID, 2, false); err != nil {
		t.Fatalf("compute matchday 2: %v", err)
	}

	total, err := service.GetSeasonTotal(ctx, "club-alba", testSeasonID)
	if err != nil {
		t.Fatalf("get season total: %v", err)
	}
	if total.Goals != 4 || total.Appearances != 2 || total.LastMatchday != 2 {
		t.Fatalf("unexpected season total: %+v", total)
	}
	// 3.9 from matchday 1 plus (1+2)*1.3 from matchday 2.
	if !approxEqual(total.WeightedPoints, 3.9+3*1.3) {
		t.Fatalf("unexpected weighted total: got=%v", total.WeightedPoints)
	}
}

func TestClubPointsService_ComputeMatchday_SkipsUnknownClub(t *testing.T) {
	t.Parallel()

	env := newFixtureEnv()
	env.matchRepo = memory.NewMatchRepository([]match.Match{
		{
			ID: "m-x", GroupID: testGroupID, SeasonID: testSeasonID, Matchday: 1,
			HomeClubID: "club-alba", AwayClubID: "club-fantasma",
			HomeGoals: 1, AwayGoals: 0, Played: true,
		},
	})
	service := newClubPointsService(env)

	rows, err := service.ComputeMatchday(context.Background(), testGroupID, testSeasonID, 1, false)
	if err != nil {
		t.Fatalf("compute matchday: %v", err)
	}
	if _, ok := rows["club-fantasma"]; ok {
		t.Fatal("unknown club must be skipped, not scored")
	}
	if _, ok := rows["club-alba"]; !ok {
		t.Fatal("known clubs must still be scored")
	}
}
