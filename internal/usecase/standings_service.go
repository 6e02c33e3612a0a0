package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/domain/standings"
	idgen "github.com/ligadatos/liga-stats/internal/platform/id"
)

// StandingsService computes the ranked table of a group as of a target
// matchday and persists it as one replaceable snapshot.
type StandingsService struct {
	groupRepo     league.Repository
	matchRepo     match.Repository
	standingsRepo standings.Repository
	ids           idgen.Generator
	streakLength  int
	now           func() time.Time
}

func NewStandingsService(
	groupRepo league.Repository,
	matchRepo match.Repository,
	standingsRepo standings.Repository,
	ids idgen.Generator,
	streakLength int,
) *StandingsService {
	if ids == nil {
		ids = idgen.NewRandomGenerator()
	}
	if streakLength <= 0 {
		streakLength = standings.DefaultStreakLength
	}
	return &StandingsService{
		groupRepo:     groupRepo,
		matchRepo:     matchRepo,
		standingsRepo: standingsRepo,
		ids:           ids,
		streakLength:  streakLength,
		now:           time.Now,
	}
}

type tableRow struct {
	clubID       string
	played       int
	won          int
	draw         int
	lost         int
	goalsFor     int
	goalsAgainst int
	points       int
	results      []string
}

// Recompute builds and stores the snapshot for (groupID, matchday) and
// returns the snapshot id. A matchday without played matches yields an
// empty snapshot. Re-running over unchanged match data replaces the
// snapshot with identical rows.
func (s *StandingsService) Recompute(ctx context.Context, groupID string, matchday int) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Recompute")
	defer span.End()

	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return "", fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	if matchday < 1 {
		return "", fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}

	_, exists, err := s.groupRepo.GetGroup(ctx, groupID)
	if err != nil {
		return "", fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	matches, err := s.matchRepo.ListPlayedUpTo(ctx, groupID, matchday)
	if err != nil {
		return "", fmt.Errorf("list played matches: %w", err)
	}

	positions := buildTable(matches, s.streakLength)

	snapshotID, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate snapshot id: %w", err)
	}

	snapshot := standings.Snapshot{
		ID:            snapshotID,
		GroupID:       groupID,
		Matchday:      matchday,
		TeamCount:     len(positions),
		MatchesPlayed: len(matches),
		CalculatedAt:  s.now().UTC(),
	}
	for i := range positions {
		positions[i].SnapshotID = snapshotID
		positions[i].GroupID = groupID
		positions[i].Matchday = matchday
	}

	if err := s.standingsRepo.Replace(ctx, snapshot, positions); err != nil {
		return "", fmt.Errorf("replace snapshot group=%s matchday=%d: %w", groupID, matchday, err)
	}

	return snapshotID, nil
}

func (s *StandingsService) Get(ctx context.Context, groupID string, matchday int) (standings.Snapshot, []standings.TeamPosition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Get")
	defer span.End()

	snapshot, positions, exists, err := s.standingsRepo.Get(ctx, groupID, matchday)
	if err != nil {
		return standings.Snapshot{}, nil, fmt.Errorf("get snapshot: %w", err)
	}
	if !exists {
		return standings.Snapshot{}, nil, fmt.Errorf("%w: snapshot group=%s matchday=%d", ErrNotFound, groupID, matchday)
	}
	return snapshot, positions, nil
}

func buildTable(matches []match.Match, streakLength int) []standings.TeamPosition {
	// Sort by matchday so streaks read oldest to newest.
	ordered := make([]match.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Matchday < ordered[j].Matchday
	})

	rows := make(map[string]*tableRow)
	row := func(clubID string) *tableRow {
		r, ok := rows[clubID]
		if !ok {
			r = &tableRow{clubID: clubID}
			rows[clubID] = r
		}
		return r
	}

	for _, m := range ordered {
		for _, clubID := range []string{m.HomeClubID, m.AwayClubID} {
			r := row(clubID)
			result := m.ResultFor(clubID)
			r.played++
			r.goalsFor += m.GoalsFor(clubID)
			r.goalsAgainst += m.GoalsAgainst(clubID)
			r.points += match.PointsFor(result)
			r.results = append(r.results, result)
			switch result {
			case match.ResultWin:
				r.won++
			case match.ResultDraw:
				r.draw++
			default:
				r.lost++
			}
		}
	}

	out := make([]standings.TeamPosition, 0, len(rows))
	for _, r := range rows {
		out = append(out, standings.TeamPosition{
			ClubID:         r.clubID,
			Played:         r.played,
			Won:            r.won,
			Draw:           r.draw,
			Lost:           r.lost,
			GoalsFor:       r.goalsFor,
			GoalsAgainst:   r.goalsAgainst,
			GoalDifference: r.goalsFor - r.goalsAgainst,
			Points:         r.points,
			Streak:         streak(r.results, streakLength),
		})
	}

	// Points, then goal difference, then goals for; club id keeps the
	// order deterministic when everything else ties.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].ClubID < out[j].ClubID
	})

	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

func streak(results []string, length int) string {
	if len(results) > length {
		results = results[len(results)-length:]
	}
	return strings.Join(results, "")
}
