package league

// Group is a round-robin sub-division of a competition for one season.
type Group struct {
	ID            string
	SeasonID      string
	CompetitionID string
	Name          string
}

type Club struct {
	ID   string
	Name string
}

type Player struct {
	ID     string
	ClubID string
	Name   string
}
