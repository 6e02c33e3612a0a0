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

// PlayerPointsService computes per-player matchday scores and folds
// them into season totals. Scores are weighted by the division
// coefficient of the group's competition and the player's club
// coefficient; both multipliers are applied multiplicatively.
type PlayerPointsService struct {
	leagueRepo league.Repository
	matchRepo  match.Repository
	pointsRepo points.Repository
	coeffRepo  coefficient.Repository
	weights    points.Weights
	logger     *logging.Logger
	now        func() time.Time
}

func NewPlayerPointsService(
	leagueRepo league.Repository,
	matchRepo match.Repository,
	pointsRepo points.Repository,
	coeffRepo coefficient.Repository,
	weights points.Weights,
	logger *logging.Logger,
) *PlayerPointsService {
	if weights == (points.Weights{}) {
		weights = points.DefaultPlayerWeights
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerPointsService{
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		pointsRepo: pointsRepo,
		coeffRepo:  coeffRepo,
		weights:    weights,
		logger:     logger,
		now:        time.Now,
	}
}

type playerTally struct {
	playerID    string
	clubID      string
	appearances int
	goals       int
}

// ComputeMatchday computes every appearing player's scores for one
// matchday. Unless force is set, a matchday that already has stored
// rows is returned as-is without recomputation.
func (s *PlayerPointsService) ComputeMatchday(ctx context.Context, groupID, seasonID string, matchday int, force bool) (map[string]points.PlayerMatchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerPointsService.ComputeMatchday")
	defer span.End()

	group, err := s.resolveGroup(ctx, groupID, seasonID, matchday)
	if err != nil {
		return nil, err
	}

	if !force {
		existing, err := s.pointsRepo.ListPlayerMatchdays(ctx, groupID, seasonID, matchday)
		if err != nil {
			return nil, fmt.Errorf("list existing player matchday rows: %w", err)
		}
		if len(existing) > 0 {
			return rowsByPlayer(existing), nil
		}
	}

	matches, err := s.playedMatches(ctx, groupID, matchday)
	if err != nil {
		return nil, err
	}

	divisionCoef, clubCoefs, err := s.lookupCoefficients(ctx, group, seasonID, matchday)
	if err != nil {
		return nil, err
	}

	tallies := tallyPlayers(matches)
	playerIDs := make([]string, 0, len(tallies))
	for playerID := range tallies {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	known, err := s.leagueRepo.PlayersByID(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve players: %w", err)
	}

	calculatedAt := s.now().UTC()
	out := make(map[string]points.PlayerMatchday, len(tallies))
	for _, playerID := range playerIDs {
		tally := tallies[playerID]
		player, ok := known[playerID]
		if !ok {
			s.logger.WarnContext(ctx, "skipping unknown player in matchday computation",
				"player_id", playerID, "group_id", groupID, "matchday", matchday)
			continue
		}

		clubID := tally.clubID
		if clubID == "" {
			clubID = player.ClubID
		}
		coef := divisionCoef * clubCoefOrDefault(clubCoefs, clubID)

		base := s.weights.Base(tally.appearances, tally.goals)
		row := points.PlayerMatchday{
			PlayerID:       playerID,
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
		if err := s.pointsRepo.UpsertPlayerMatchday(ctx, row); err != nil {
			return nil, fmt.Errorf("upsert player matchday player=%s matchday=%d: %w", playerID, matchday, err)
		}
		out[playerID] = row
	}

	for playerID := range out {
		if err := s.recomputeSeasonTotal(ctx, playerID, seasonID, calculatedAt); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// RecomputeSeasonTotal rebuilds one player's season aggregate by
// summing every stored matchday row, across all groups.
func (s *PlayerPointsService) RecomputeSeasonTotal(ctx context.Context, playerID, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerPointsService.RecomputeSeasonTotal")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.leagueRepo.GetPlayer(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return s.recomputeSeasonTotal(ctx, playerID, seasonID, s.now().UTC())
}

func (s *PlayerPointsService) recomputeSeasonTotal(ctx context.Context, playerID, seasonID string, calculatedAt time.Time) error {
	rows, err := s.pointsRepo.ListPlayerSeason(ctx, playerID, seasonID)
	if err != nil {
		return fmt.Errorf("list player season rows player=%s: %w", playerID, err)
	}

	total := points.PlayerSeasonTotal{
		PlayerID:     playerID,
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

	if err := s.pointsRepo.UpsertPlayerSeasonTotal(ctx, total); err != nil {
		return fmt.Errorf("upsert player season total player=%s: %w", playerID, err)
	}
	return nil
}

func (s *PlayerPointsService) GetSeasonTotal(ctx context.Context, playerID, seasonID string) (points.PlayerSeasonTotal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerPointsService.GetSeasonTotal")
	defer span.End()

	total, exists, err := s.pointsRepo.GetPlayerSeasonTotal(ctx, playerID, seasonID)
	if err != nil {
		return points.PlayerSeasonTotal{}, fmt.Errorf("get player season total: %w", err)
	}
	if !exists {
		return points.PlayerSeasonTotal{}, fmt.Errorf("%w: season total player=%s season=%s", ErrNotFound, playerID, seasonID)
	}
	return total, nil
}

func (s *PlayerPointsService) resolveGroup(ctx context.Context, groupID, seasonID string, matchday int) (league.Group, error) {
	if strings.TrimSpace(groupID) == "" || strings.TrimSpace(seasonID) == "" {
		return league.Group{}, fmt.Errorf("%w: group id and season id are required", ErrInvalidInput)
	}
	if matchday < 1 {
		return league.Group{}, fmt.Errorf("%w: matchday must be >= 1", ErrInvalidInput)
	}

	group, exists, err := s.leagueRepo.GetGroup(ctx, groupID)
	if err != nil {
		return league.Group{}, fmt.Errorf("get group: %w", err)
	}
	if !exists {
		return league.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}
	return group, nil
}

func (s *PlayerPointsService) playedMatches(ctx context.Context, groupID string, matchday int) ([]match.Match, error) {
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
	return played, nil
}

func (s *PlayerPointsService) lookupCoefficients(ctx context.Context, group league.Group, seasonID string, matchday int) (float64, map[string]float64, error) {
	divisions, err := s.coeffRepo.DivisionBySeason(ctx, seasonID, matchday)
	if err != nil {
		return 0, nil, fmt.Errorf("lookup division coefficients: %w", err)
	}
	divisionCoef, ok := divisions[group.CompetitionID]
	if !ok {
		// Weighted scores without a division coefficient would be
		// meaningless, so the whole matchday fails.
		return 0, nil, fmt.Errorf("%w: division coefficient missing for competition=%s season=%s",
			ErrIncompleteData, group.CompetitionID, seasonID)
	}

	clubCoefs, err := s.coeffRepo.ClubBySeason(ctx, seasonID, matchday)
	if err != nil {
		return 0, nil, fmt.Errorf("lookup club coefficients: %w", err)
	}
	return divisionCoef, clubCoefs, nil
}

func clubCoefOrDefault(coefs map[string]float64, clubID string) float64 {
	if v, ok := coefs[clubID]; ok {
		return v
	}
	return 1.0
}

func tallyPlayers(matches []match.Match) map[string]*playerTally {
	tallies := make(map[string]*playerTally)
	for _, m := range matches {
		seen := make(map[string]bool)
		for _, ev := range m.Events {
			if ev.PlayerID == "" {
				continue
			}
			t, ok := tallies[ev.PlayerID]
			if !ok {
				t = &playerTally{playerID: ev.PlayerID, clubID: ev.ClubID}
				tallies[ev.PlayerID] = t
			}
			if t.clubID == "" {
				t.clubID = ev.ClubID
			}
			// Any event in a match counts as having played it, once.
			if !seen[ev.PlayerID] {
				seen[ev.PlayerID] = true
				t.appearances++
			}
			if ev.Type == match.EventGoal {
				t.goals++
			}
		}
	}
	return tallies
}

func rowsByPlayer(rows []points.PlayerMatchday) map[string]points.PlayerMatchday {
	out := make(map[string]points.PlayerMatchday, len(rows))
	for _, row := range rows {
		out[row.PlayerID] = row
	}
	return out
}
