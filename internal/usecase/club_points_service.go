package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/ligadatos/liga-stats/internal/domain/league"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/ligadatos/liga-stats/internal/domain/points"
	"github.com/ligadatos/liga-stats/internal/platform/logging"
)

// ClubPointsService mirrors PlayerPointsService with the club as the
// aggregation key. Weights are configured independently of the player
// engine.
type ClubPointsService struct {
	leagueRepo league.Repository
	matchRepo  match.Repository
	pointsRepo points.Repository
	coeffRepo  coefficient.Repository
	weights    points.Weights
	logger     *logging.Logger
	now        func() time.Time
}

func NewClubPointsService(
	leagueRepo league.Repository,
	matchRepo match.Repository,
	pointsRepo points.Repository,
	coeffRepo coefficient.Repository,
	weights points.Weights,
	logger *logging.Logger,
) *ClubPointsService {
	if weights == (points.Weights{}) {
		weights = points.DefaultClubWeights
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ClubPointsService{
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		pointsRepo: pointsRepo,
		coeffRepo:  coeffRepo,
		weights:    weights,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ClubPointsService) ComputeMatchday(ctx context.Context, groupID, seasonID string, matchday int, force bool) (map[string]points.ClubMatchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubPointsService.ComputeMatchday")
	defer span.End()

	if strings.TrimSpace(groupID) == "" || strings.TrimSpace(seasonID) == "" {
		return nil, fmt.Errorf("%w: group id and season id are required", ErrInvalidInput)
	}
	if matchday < 1 {
		return nil, fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}

	group, exists, err := s.leagueRepo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	if !force {
		existing, err := s.pointsRepo.ListClubMatchdays(ctx, groupID, seasonID, matchday)
		if err != nil {
			return nil, fmt.Errorf("list existing club matchday rows: %w", err)
		}
		if len(existing) > 0 {
			out := make(map[string]points.ClubMatchday, len(existing))
			for _, row := range existing {
				out[row.ClubID] = row
			}
			return out, nil
		}
	}

	matches, err := s.matchRepo.ListByMatchday(ctx, groupID, matchday)
	if err != nil {
		return nil, fmt.Errorf("list matchday matches: %w", err)
	}
	played := matches[:0:0]
	for _, m := range matches {
		if m.Played {
			played = append(played, m)
		}
	}
	if len(played) == 0 {
		return nil, fmt.Errorf("%w: no played matches for group=%s matchday=%d", ErrIncompleteData, groupID, matchday)
	}

	divisions, err := s.coeffRepo.DivisionBySeason(ctx, seasonID, matchday)
	if err != nil {
		return nil, fmt.Errorf("lookup division coefficients: %w", err)
	}
	divisionCoef, ok := divisions[group.CompetitionID]
	if !ok {
		return nil, fmt.Errorf("%w: division coefficient missing for competition=%s season=%s",
			ErrIncompleteData, group.CompetitionID, seasonID)
	}
	clubCoefs, err := s.coeffRepo.ClubBySeason(ctx, seasonID, matchday)
	if err != nil {
		return nil, fmt.Errorf("lookup club coefficients: %w", err)
	}

	type clubTally struct {
		appearances int
		goals       int
	}
	tallies := make(map[string]*clubTally)
	for _, m := range played {
		for _, clubID := range []string{m.HomeClubID, m.AwayClubID} {
			t, ok := tallies[clubID]
			if !ok {
				t = &clubTally{}
				tallies[clubID] = t
			}
			t.appearances++
			t.goals += m.GoalsFor(clubID)
		}
	}

	clubIDs := make([]string, 0, len(tallies))
	for clubID := range tallies {
		clubIDs = append(clubIDs, clubID)
	}
	sort.Strings(clubIDs)

	calculatedAt := s.now().UTC()
	out := make(map[string]points.ClubMatchday, len(tallies))
	for _, clubID := range clubIDs {
		if _, exists, err := s.leagueRepo.GetClub(ctx, clubID); err != nil {
			return nil, fmt.Errorf("get club: %w", err)
		} else if !exists {
			s.logger.WarnContext(ctx, "skipping unknown club in matchday computation",
				"club_id", clubID, "group_id", groupID, "matchday", matchday)
			continue
		}

		tally := tallies[clubID]
		coef := divisionCoef * clubCoefOrDefault(clubCoefs, clubID)
		base := s.weights.Base(tally.appearances, tally.goals)
		row := points.ClubMatchday{
			ClubID:         clubID,
			SeasonID:       seasonID,
			GroupID:        groupID,
			Matchday:       matchday,
			BasePoints:     base,
			WeightedPoints: base * coef,
			Coefficient:    coef,
			Appearances:    tally.appearances,
			Goals:          tally.goals,
			CalculatedAt:   calculatedAt,
		}
		if err := s.pointsRepo.UpsertClubMatchday(ctx, row); err != nil {
			return nil, fmt.Errorf("upsert club matchday club=%s matchday=%d: %w", clubID, matchday, err)
		}
		out[clubID] = row
	}

	for clubID := range out {
		if err := s.recomputeSeasonTotal(ctx, clubID, seasonID, calculatedAt); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *ClubPointsService) RecomputeSeasonTotal(ctx context.Context, clubID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubPointsService.RecomputeSeasonTotal")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetClub(ctx, clubID)
	if err != nil {
		return fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}

	return s.recomputeSeasonTotal(ctx, clubID, seasonID, s.now().UTC())
}

func (s *ClubPointsService) recomputeSeasonTotal(ctx context.Context, clubID, seasonID string, calculatedAt time.Time) error {
	rows, err := s.pointsRepo.ListClubSeason(ctx, clubID, seasonID)
	if err != nil {
		return fmt.Errorf("list club season rows club=%s: %w", clubID, err)
	}

	total := points.ClubSeasonTotal{
		ClubID:       clubID,
		SeasonID:     seasonID,
		CalculatedAt: calculatedAt,
	}
	for _, row := range rows {
		total.BasePoints += row.BasePoints
		total.WeightedPoints += row.WeightedPoints
		total.Goals += row.Goals
		total.Appearances += row.Appearances
		if row.Matchday > total.LastMatchday {
			total.LastMatchday = row.Matchday
		}
	}

	if err := s.pointsRepo.UpsertClubSeasonTotal(ctx, total); err != nil {
		return fmt.Errorf("upsert club season total club=%s: %w", clubID, err)
	}
	return nil
}

func (s *ClubPointsService) GetSeasonTotal(ctx context.Context, clubID, seasonID string) (points.ClubSeasonTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubPointsService.GetSeasonTotal")
	defer span.End()

	total, exists, err := s.pointsRepo.GetClubSeasonTotal(ctx, clubID, seasonID)
	if err != nil {
		return points.ClubSeasonTotal{}, fmt.Errorf("get club season total: %w", err)
	}
	if !exists {
		return points.ClubSeasonTotal{}, fmt.Errorf("%w: season total club=%s season=%s", ErrNotFound, clubID, seasonID)
	}
	return total, nil
}
