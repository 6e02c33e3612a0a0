package points

import "time"

// Weights are the policy constants of the base score formula.
type Weights struct {
	Appearance float64
	Goal       float64
}

func (w Weights) Base(appearances, goals int) float64 {
	return w.Appearance*float64(appearances) + w.Goal*float64(goals)
}

var (
	DefaultPlayerWeights = Weights{Appearance: 1, Goal: 2}
	DefaultClubWeights   = Weights{Appearance: 1, Goal: 1}
)

// PlayerMatchday holds one player's scores for one matchday. Unique per
// (player, season, group, matchday); recomputation overwrites in place.
type PlayerMatchday struct {
	PlayerID       string
	SeasonID       string
	GroupID        string
	Matchday       int
	BasePoints     float64
	WeightedPoints float64
	Coefficient    float64
	Appearances    int
	Goals          int
	CalculatedAt   time.Time
}

// PlayerSeasonTotal is the running season aggregate, always recomputed
// from the matchday rows rather than patched incrementally.
type PlayerSeasonTotal struct {
	PlayerID       string
	SeasonID       string
	BasePoints     float64
	WeightedPoints float64
	Goals          int
	Appearances    int
	LastMatchday   int
	CalculatedAt   time.Time
}

type ClubMatchday struct {
	ClubID         string
	SeasonID       string
	GroupID        string
	Matchday       int
	BasePoints     float64
	WeightedPoints float64
	Coefficient    float64
	Appearances    int
	Goals          int
	CalculatedAt   time.Time
}

type ClubSeasonTotal struct {
	ClubID         string
	SeasonID       string
	BasePoints     float64
	WeightedPoints float64
	Goals          int
	Appearances    int
	LastMatchday   int
	CalculatedAt   time.Time
}
