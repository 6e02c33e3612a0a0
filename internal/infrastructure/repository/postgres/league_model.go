package postgres

type groupTableModel struct {
	ID            string `db:"public_id"`
	SeasonID      string `db:"season_public_id"`
	CompetitionID string `db:"competition_public_id"`
	Name          string `db:"name"`
}

type clubTableModel struct {
	ID   string `db:"public_id"`
	Name string `db:"name"`
}

type playerTableModel struct {
	ID     string `db:"public_id"`
	ClubID string `db:"club_public_id"`
	Name   string `db:"name"`
}
