package postgres

import "time"

type playerMatchdayTableModel struct {
	PlayerID       string    `db:"player_public_id"`
	SeasonID       string    `db:"season_public_id"`
	GroupID        string    `db:"group_public_id"`
	Matchday       int       `db:"matchday"`
	BasePoints     float64   `db:"base_points"`
	WeightedPoints float64   `db:"weighted_points"`
	Coefficient    float64   `db:"coefficient"`
	Appearances    int       `db:"appearances"`
	Goals          int       `db:"goals"`
	CalculatedAt   time.Time `db:"calculated_at"`
}

type playerSeasonTotalTableModel struct {
	PlayerID       string    `db:"player_public_id"`
	SeasonID       string    `db:"season_public_id"`
	BasePoints     float64   `db:"base_points"`
	WeightedPoints float64   `db:"weighted_points"`
	Goals          int       `db:"goals"`
	Appearances    int       `db:"appearances"`
	LastMatchday   int       `db:"last_matchday"`
	CalculatedAt   time.Time `db:"calculated_at"`
}

type clubMatchdayTableModel struct {
	ClubID         string    `db:"club_public_id"`
	SeasonID       string    `db:"season_public_id"`
	GroupID        string    `db:"group_public_id"`
	Matchday       int       `db:"matchday"`
	BasePoints     float64   `db:"base_points"`
	WeightedPoints float64   `db:"weighted_points"`
	Coefficient    float64   `db:"coefficient"`
	Appearances    int       `db:"appearances"`
	Goals          int       `db:"goals"`
	CalculatedAt   time.Time `db:"calculated_at"`
}

type clubSeasonTotalTableModel struct {
	ClubID         string    `db:"club_public_id"`
	SeasonID       string    `db:"season_public_id"`
	BasePoints     float64   `db:"base_points"`
	WeightedPoints float64   `db:"weighted_points"`
	Goals          int       `db:"goals"`
	Appearances    int       `db:"appearances"`
	LastMatchday   int       `db:"last_matchday"`
	CalculatedAt   time.Time `db:"calculated_at"`
}
