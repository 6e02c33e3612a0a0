package memory

import (
	"time"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/domain/match"
)

// SeedData is a small demo season used when the service runs without a
// database.
type SeedData struct {
	Groups    []league.Group
	Clubs     []league.Club
	Players   []league.Player
	Matches   []match.Match
	Divisions []coefficient.Division
	ClubCoefs []coefficient.Club
}

func DefaultSeed() SeedData {
	playedAt := time.Date(2026, time.August, 15, 20, 0, 0, 0, time.UTC)

	return SeedData{
		Groups: []league.Group{
			{ID: "grp-1a", SeasonID: "season-2026", CompetitionID: "comp-first", Name: "Primera Grupo A"},
		},
		Clubs: []league.Club{
			{ID: "club-atlas", Name: "Atlas FS"},
			{ID: "club-boreal", Name: "Boreal FS"},
			{ID: "club-cierzo", Name: "Cierzo FS"},
			{ID: "club-dunas", Name: "Dunas FS"},
		},
		Players: []league.Player{
			{ID: "player-ana", ClubID: "club-atlas", Name: "Ana Puertas"},
			{ID: "player-bea", ClubID: "club-atlas", Name: "Bea Lozano"},
			{ID: "player-carla", ClubID: "club-boreal", Name: "Carla Ibanez"},
			{ID: "player-diana", ClubID: "club-cierzo", Name: "Diana Ferrer"},
			{ID: "player-eva", ClubID: "club-dunas", Name: "Eva Roldan"},
		},
		Matches: []match.Match{
			{
				ID: "match-1", GroupID: "grp-1a", SeasonID: "season-2026", Matchday: 1,
				HomeClubID: "club-atlas", AwayClubID: "club-boreal",
				HomeGoals: 2, AwayGoals: 1, Played: true, PlayedAt: &playedAt,
				Events: []match.Event{
					{PlayerID: "player-ana", ClubID: "club-atlas", Type: match.EventGoal, Minute: 12},
					{PlayerID: "player-ana", ClubID: "club-atlas", Type: match.EventGoal, Minute: 31},
					{PlayerID: "player-bea", ClubID: "club-atlas", Type: match.EventAppearance},
					{PlayerID: "player-carla", ClubID: "club-boreal", Type: match.EventGoal, Minute: 25},
				},
			},
			{
				ID: "match-2", GroupID: "grp-1a", SeasonID: "season-2026", Matchday: 1,
				HomeClubID: "club-cierzo", AwayClubID: "club-dunas",
				HomeGoals: 0, AwayGoals: 0, Played: true, PlayedAt: &playedAt,
				Events: []match.Event{
					{PlayerID: "player-diana", ClubID: "club-cierzo", Type: match.EventAppearance},
					{PlayerID: "player-eva", ClubID: "club-dunas", Type: match.EventAppearance},
				},
			},
			{
				ID: "match-3", GroupID: "grp-1a", SeasonID: "season-2026", Matchday: 2,
				HomeClubID: "club-atlas", AwayClubID: "club-cierzo",
			},
			{
				ID: "match-4", GroupID: "grp-1a", SeasonID: "season-2026", Matchday: 2,
				HomeClubID: "club-boreal", AwayClubID: "club-dunas",
			},
		},
		Divisions: []coefficient.Division{
			{CompetitionID: "comp-first", SeasonID: "season-2026", Matchday: 1, Value: 1.3},
		},
		ClubCoefs: []coefficient.Club{
			{ClubID: "club-atlas", SeasonID: "season-2026", Matchday: 1, Value: 1.1},
		},
	}
}
