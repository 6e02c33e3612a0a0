package standings

import "time"

// Snapshot is the immutable header row for one computed table: one per
// (group, matchday), replaced wholesale on recomputation.
type Snapshot struct {
	ID            string
	GroupID       string
	Matchday      int
	TeamCount     int
	MatchesPlayed int
	CalculatedAt  time.Time
}

// TeamPosition is one ranked row of a snapshot. Streak holds the most
// recent results as W/D/L codes, oldest first, at most StreakLength
// characters.
type TeamPosition struct {
	SnapshotID     string
	GroupID        string
	Matchday       int
	ClubID         string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Streak         string
}

const DefaultStreakLength = 5
