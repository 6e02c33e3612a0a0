package postgres

type divisionCoefficientTableModel struct {
	CompetitionID string  `db:"competition_public_id"`
	SeasonID      string  `db:"season_public_id"`
	Matchday      int     `db:"matchday"`
	Value         float64 `db:"value"`
}

type clubCoefficientTableModel struct {
	ClubID   string  `db:"club_public_id"`
	SeasonID string  `db:"season_public_id"`
	Matchday int     `db:"matchday"`
	Value    float64 `db:"value"`
}
