package match

import "time"

const (
	EventAppearance = "APPEARANCE"
	EventGoal       = "GOAL"
	EventOwnGoal    = "OWN_GOAL"
	EventYellowCard = "YELLOW_CARD"
	EventRedCard    = "RED_CARD"
)

// Event is one roster or scoring record attached to a match, as
// delivered by the upstream results feed.
type Event struct {
	PlayerID string
	ClubID   string
	Type     string
	Minute   int
}

// Match is one fixture between two clubs. Score fields are meaningful
// only when Played is true.
type Match struct {
	ID         string
	GroupID    string
	SeasonID   string
	Matchday   int
	HomeClubID string
	AwayClubID string
	HomeGoals  int
	AwayGoals  int
	Played     bool
	PlayedAt   *time.Time
	Events     []Event
}

const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

func (m Match) Involves(clubID string) bool {
	return m.HomeClubID == clubID || m.AwayClubID == clubID
}

func (m Match) GoalsFor(clubID string) int {
	if m.HomeClubID == clubID {
		return m.HomeGoals
	}
	return m.AwayGoals
}

func (m Match) GoalsAgainst(clubID string) int {
	if m.HomeClubID == clubID {
		return m.AwayGoals
	}
	return m.HomeGoals
}

// ResultFor returns W, D or L from the club's perspective.
func (m Match) ResultFor(clubID string) string {
	gf, ga := m.GoalsFor(clubID), m.GoalsAgainst(clubID)
	switch {
	case gf > ga:
		return ResultWin
	case gf < ga:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// PointsFor applies standard league scoring: win 3, draw 1, loss 0.
func PointsFor(result string) int {
	switch result {
	case ResultWin:
		return 3
	case ResultDraw:
		return 1
	default:
		return 0
	}
}
