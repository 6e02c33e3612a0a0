package postgres

import "database/sql"

type matchTableModel struct {
	ID         string       `db:"public_id"`
	GroupID    string       `db:"group_public_id"`
	SeasonID   string       `db:"season_public_id"`
	Matchday   int          `db:"matchday"`
	HomeClubID string       `db:"home_club_public_id"`
	AwayClubID string       `db:"away_club_public_id"`
	HomeGoals  int          `db:"home_goals"`
	AwayGoals  int          `db:"away_goals"`
	Played     bool         `db:"played"`
	PlayedAt   sql.NullTime `db:"played_at"`
}

type matchEventTableModel struct {
	MatchID  string `db:"match_public_id"`
	PlayerID string `db:"player_public_id"`
	ClubID   string `db:"club_public_id"`
	Type     string `db:"event_type"`
	Minute   int    `db:"minute"`
}

type matchEventInsertModel struct {
	MatchID  string `db:"match_public_id"`
	PlayerID string `db:"player_public_id"`
	ClubID   string `db:"club_public_id"`
	Type     string `db:"event_type"`
	Minute   int    `db:"minute"`
}
