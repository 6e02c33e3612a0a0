package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/points"
	qb "github.com/ligadatos/liga-stats/internal/platform/querybuilder"
)

const playerMatchdayUpsertSuffix = `ON CONFLICT (player_public_id, season_public_id, group_public_id, matchday)
DO UPDATE SET
    base_points = EXCLUDED.base_points,
    weighted_points = EXCLUDED.weighted_points,
    coefficient = EXCLUDED.coefficient,
    appearances = EXCLUDED.appearances,
    goals = EXCLUDED.goals,
    calculated_at = EXCLUDED.calculated_at`

const playerSeasonTotalUpsertSuffix = `ON CONFLICT (player_public_id, season_public_id)
DO UPDATE SET
    base_points = EXCLUDED.base_points,
    weighted_points = EXCLUDED.weighted_points,
    goals = EXCLUDED.goals,
    appearances = EXCLUDED.appearances,
    last_matchday = EXCLUDED.last_matchday,
    calculated_at = EXCLUDED.calculated_at`

const clubMatchdayUpsertSuffix = `ON CONFLICT (club_public_id, season_public_id, group_public_id, matchday)
DO UPDATE SET
    base_points = EXCLUDED.base_points,
    weighted_points = EXCLUDED.weighted_points,
    coefficient = EXCLUDED.coefficient,
    appearances = EXCLUDED.appearances,
    goals = EXCLUDED.goals,
    calculated_at = EXCLUDED.calculated_at`

const clubSeasonTotalUpsertSuffix = `ON CONFLICT (club_public_id, season_public_id)
DO UPDATE SET
    base_points = EXCLUDED.base_points,
    weighted_points = EXCLUDED.weighted_points,
    goals = EXCLUDED.goals,
    appearances = EXCLUDED.appearances,
    last_matchday = EXCLUDED.last_matchday,
    calculated_at = EXCLUDED.calculated_at`

var playerMatchdayColumns = []string{
	"player_public_id", "season_public_id", "group_public_id", "matchday",
	"base_points", "weighted_points", "coefficient", "appearances", "goals", "calculated_at",
}

var clubMatchdayColumns = []string{
	"club_public_id", "season_public_id", "group_public_id", "matchday",
	"base_points", "weighted_points", "coefficient", "appearances", "goals", "calculated_at",
}

var seasonTotalColumns = []string{
	"base_points", "weighted_points", "goals", "appearances", "last_matchday", "calculated_at",
}

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) UpsertPlayerMatchday(ctx context.Context, row points.PlayerMatchday) error {
	query, args, err := qb.InsertModel("player_matchday_points", playerMatchdayTableModel{
		PlayerID:       row.PlayerID,
		SeasonID:       row.SeasonID,
		GroupID:        row.GroupID,
		Matchday:       row.Matchday,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Coefficient:    row.Coefficient,
		Appearances:    row.Appearances,
		Goals:          row.Goals,
		CalculatedAt:   row.CalculatedAt,
	}, playerMatchdayUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert player matchday query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player matchday player=%s matchday=%d: %w", row.PlayerID, row.Matchday, err)
	}
	return nil
}

func (r *PointsRepository) ListPlayerMatchdays(ctx context.Context, groupID, seasonID string, matchday int) ([]points.PlayerMatchday, error) {
	query, args, err := qb.Select(playerMatchdayColumns...).
		From("player_matchday_points").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.Eq("season_public_id", seasonID),
			qb.Eq("matchday", matchday),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player matchdays query: %w", err)
	}

	var rows []playerMatchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player matchdays: %w", err)
	}

	out := make([]points.PlayerMatchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayerMatchdayRow(row))
	}
	return out, nil
}

func (r *PointsRepository) ListPlayerSeason(ctx context.Context, playerID, seasonID string) ([]points.PlayerMatchday, error) {
	query, args, err := qb.Select(playerMatchdayColumns...).
		From("player_matchday_points").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("season_public_id", seasonID),
		).
		OrderBy("matchday").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player season query: %w", err)
	}

	var rows []playerMatchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player season: %w", err)
	}

	out := make([]points.PlayerMatchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayerMatchdayRow(row))
	}
	return out, nil
}

func (r *PointsRepository) UpsertPlayerSeasonTotal(ctx context.Context, total points.PlayerSeasonTotal) error {
	query, args, err := qb.InsertModel("player_season_totals", playerSeasonTotalTableModel{
		PlayerID:       total.PlayerID,
		SeasonID:       total.SeasonID,
		BasePoints:     total.BasePoints,
		WeightedPoints: total.WeightedPoints,
		Goals:          total.Goals,
		Appearances:    total.Appearances,
		LastMatchday:   total.LastMatchday,
		CalculatedAt:   total.CalculatedAt,
	}, playerSeasonTotalUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert player season total query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player season total player=%s: %w", total.PlayerID, err)
	}
	return nil
}

func (r *PointsRepository) GetPlayerSeasonTotal(ctx context.Context, playerID, seasonID string) (points.PlayerSeasonTotal, bool, error) {
	columns := append([]string{"player_public_id", "season_public_id"}, seasonTotalColumns...)
	query, args, err := qb.Select(columns...).
		From("player_season_totals").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("season_public_id", seasonID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return points.PlayerSeasonTotal{}, false, fmt.Errorf("build get player season total query: %w", err)
	}

	var row playerSeasonTotalTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return points.PlayerSeasonTotal{}, false, nil
		}
		return points.PlayerSeasonTotal{}, false, fmt.Errorf("get player season total: %w", err)
	}

	return points.PlayerSeasonTotal{
		PlayerID:       row.PlayerID,
		SeasonID:       row.SeasonID,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Goals:          row.Goals,
		Appearances:    row.Appearances,
		LastMatchday:   row.LastMatchday,
		CalculatedAt:   row.CalculatedAt,
	}, true, nil
}

func (r *PointsRepository) UpsertClubMatchday(ctx context.Context, row points.ClubMatchday) error {
	query, args, err := qb.InsertModel("club_matchday_points", clubMatchdayTableModel{
		ClubID:         row.ClubID,
		SeasonID:       row.SeasonID,
		GroupID:        row.GroupID,
		Matchday:       row.Matchday,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Coefficient:    row.Coefficient,
		Appearances:    row.Appearances,
		Goals:          row.Goals,
		CalculatedAt:   row.CalculatedAt,
	}, clubMatchdayUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert club matchday query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert club matchday club=%s matchday=%d: %w", row.ClubID, row.Matchday, err)
	}
	return nil
}

func (r *PointsRepository) ListClubMatchdays(ctx context.Context, groupID, seasonID string, matchday int) ([]points.ClubMatchday, error) {
	query, args, err := qb.Select(clubMatchdayColumns...).
		From("club_matchday_points").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.Eq("season_public_id", seasonID),
			qb.Eq("matchday", matchday),
		).
		OrderBy("club_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club matchdays query: %w", err)
	}

	var rows []clubMatchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list club matchdays: %w", err)
	}

	out := make([]points.ClubMatchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClubMatchdayRow(row))
	}
	return out, nil
}

func (r *PointsRepository) ListClubSeason(ctx context.Context, clubID, seasonID string) ([]points.ClubMatchday, error) {
	query, args, err := qb.Select(clubMatchdayColumns...).
		From("club_matchday_points").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("season_public_id", seasonID),
		).
		OrderBy("matchday").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club season query: %w", err)
	}

	var rows []clubMatchdayTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list club season: %w", err)
	}

	out := make([]points.ClubMatchday, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapClubMatchdayRow(row))
	}
	return out, nil
}

func (r *PointsRepository) UpsertClubSeasonTotal(ctx context.Context, total points.ClubSeasonTotal) error {
	query, args, err := qb.InsertModel("club_season_totals", clubSeasonTotalTableModel{
		ClubID:         total.ClubID,
		SeasonID:       total.SeasonID,
		BasePoints:     total.BasePoints,
		WeightedPoints: total.WeightedPoints,
		Goals:          total.Goals,
		Appearances:    total.Appearances,
		LastMatchday:   total.LastMatchday,
		CalculatedAt:   total.CalculatedAt,
	}, clubSeasonTotalUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert club season total query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert club season total club=%s: %w", total.ClubID, err)
	}
	return nil
}

func (r *PointsRepository) GetClubSeasonTotal(ctx context.Context, clubID, seasonID string) (points.ClubSeasonTotal, bool, error) {
	columns := append([]string{"club_public_id", "season_public_id"}, seasonTotalColumns...)
	query, args, err := qb.Select(columns...).
		From("club_season_totals").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("season_public_id", seasonID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return points.ClubSeasonTotal{}, false, fmt.Errorf("build get club season total query: %w", err)
	}

	var row clubSeasonTotalTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return points.ClubSeasonTotal{}, false, nil
		}
		return points.ClubSeasonTotal{}, false, fmt.Errorf("get club season total: %w", err)
	}

	return points.ClubSeasonTotal{
		ClubID:         row.ClubID,
		SeasonID:       row.SeasonID,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Goals:          row.Goals,
		Appearances:    row.Appearances,
		LastMatchday:   row.LastMatchday,
		CalculatedAt:   row.CalculatedAt,
	}, true, nil
}

func mapPlayerMatchdayRow(row playerMatchdayTableModel) points.PlayerMatchday {
	return points.PlayerMatchday{
		PlayerID:       row.PlayerID,
		SeasonID:       row.SeasonID,
		GroupID:        row.GroupID,
		Matchday:       row.Matchday,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Coefficient:    row.Coefficient,
		Appearances:    row.Appearances,
		Goals:          row.Goals,
		CalculatedAt:   row.CalculatedAt,
	}
}

func mapClubMatchdayRow(row clubMatchdayTableModel) points.ClubMatchday {
	return points.ClubMatchday{
		ClubID:         row.ClubID,
		SeasonID:       row.SeasonID,
		GroupID:        row.GroupID,
		Matchday:       row.Matchday,
		BasePoints:     row.BasePoints,
		WeightedPoints: row.WeightedPoints,
		Coefficient:    row.Coefficient,
		Appearances:    row.Appearances,
		Goals:          row.Goals,
		CalculatedAt:   row.CalculatedAt,
	}
}
