package usecase

import (
	"time"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/infrastructure/repository/memory"
)

// Shared fixture: one group with four clubs, matchday 1 fully played
// (alba 2-1 bruma, ceres 0-0 delta), matchday 2 scheduled but not
// played. The division coefficient is 1.3 and no club coefficients are
// stored, so club multipliers default to 1.0.
const (
	testGroupID       = "grp-norte"
	testSeasonID      = "season-2026"
	testCompetitionID = "comp-honor"
)

type fixtureEnv struct {
	leagueRepo    *memory.LeagueRepository
	matchRepo     *memory.MatchRepository
	standingsRepo *memory.StandingsRepository
	pointsRepo    *memory.PointsRepository
	coeffRepo     *memory.CoefficientRepository
}

func newFixtureEnv() *fixtureEnv {
	playedAt := time.Date(2026, time.August, 15, 20, 0, 0, 0, time.UTC)

	groups := []league.Group{
		{ID: testGroupID, SeasonID: testSeasonID, CompetitionID: testCompetitionID, Name: "Grupo Norte"},
	}
	clubs := []league.Club{
		{ID: "club-alba", Name: "Alba FS"},
		{ID: "club-bruma", Name: "Bruma FS"},
		{ID: "club-ceres", Name: "Ceres FS"},
		{ID: "club-delta", Name: "Delta FS"},
	}
	players := []league.Player{
		{ID: "p-iris", ClubID: "club-alba", Name: "Iris Navarro"},
		{ID: "p-jade", ClubID: "club-alba", Name: "Jade Soler"},
		{ID: "p-kira", ClubID: "club-bruma", Name: "Kira Medina"},
		{ID: "p-lola", ClubID: "club-ceres", Name: "Lola Reyes"},
		{ID: "p-mara", ClubID: "club-delta", Name: "Mara Gil"},
	}
	matches := []match.Match{
		{
			ID: "m-1", GroupID: testGroupID, SeasonID: testSeasonID, Matchday: 1,
			HomeClubID: "club-alba", AwayClubID: "club-bruma",
			HomeGoals: 2, AwayGoals: 1, Played: true, PlayedAt: &playedAt,
			Events: []match.Event{
				{PlayerID: "p-iris", ClubID: "club-alba", Type: match.EventGoal, Minute: 12},
				{PlayerID: "p-iris", ClubID: "club-alba", Type: match.EventGoal, Minute: 31},
				{PlayerID: "p-jade", ClubID: "club-alba", Type: match.EventAppearance},
				{PlayerID: "p-kira", ClubID: "club-bruma", Type: match.EventGoal, Minute: 25},
			},
		},
		{
			ID: "m-2", GroupID: testGroupID, SeasonID: testSeasonID, Matchday: 1,
			HomeClubID: "club-ceres", AwayClubID: "club-delta",
			HomeGoals: 0, AwayGoals: 0, Played: true, PlayedAt: &playedAt,
			Events: []match.Event{
				{PlayerID: "p-lola", ClubID: "club-ceres", Type: match.EventAppearance},
				{PlayerID: "p-mara", ClubID: "club-delta", Type: match.EventAppearance},
			},
		},
		{
			ID: "m-3", GroupID: testGroupID, SeasonID: testSeasonID, Matchday: 2,
			HomeClubID: "club-alba", AwayClubID: "club-ceres",
		},
		{
			ID: "m-4", GroupID: testGroupID, SeasonID: testSeasonID, Matchday: 2,
			HomeClubID: "club-bruma", AwayClubID: "club-delta",
		},
	}
	divisions := []coefficient.Division{
		{CompetitionID: testCompetitionID, SeasonID: testSeasonID, Matchday: 1, Value: 1.3},
	}

	return &fixtureEnv{
		leagueRepo:    memory.NewLeagueRepository(groups, clubs, players),
		matchRepo:     memory.NewMatchRepository(matches),
		standingsRepo: memory.NewStandingsRepository(),
		pointsRepo:    memory.NewPointsRepository(),
		coeffRepo:     memory.NewCoefficientRepository(divisions, nil),
	}
}

func approxEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
