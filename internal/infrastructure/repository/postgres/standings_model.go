package postgres

import "time"

type standingsSnapshotTableModel struct {
	ID            string    `db:"public_id"`
	GroupID       string    `db:"group_public_id"`
	Matchday      int       `db:"matchday"`
	TeamCount     int       `db:"team_count"`
	MatchesPlayed int       `db:"matches_played"`
	CalculatedAt  time.Time `db:"calculated_at"`
}

type standingsPositionTableModel struct {
	SnapshotID     string `db:"snapshot_public_id"`
	GroupID        string `db:"group_public_id"`
	Matchday       int    `db:"matchday"`
	ClubID         string `db:"club_public_id"`
	Position       int    `db:"position"`
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	Draw           int    `db:"draw"`
	Lost           int    `db:"lost"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
	Points         int    `db:"points"`
	Streak         string `db:"streak"`
}
