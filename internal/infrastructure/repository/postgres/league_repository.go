package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/league"
	qb "github.com/ligadatos/liga-stats/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) GetGroup(ctx context.Context, groupID string) (league.Group, bool, error) {
	query, args, err := qb.Select("public_id", "season_public_id", "competition_public_id", "name").
		From("groups").
		Where(qb.Eq("public_id", groupID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.Group{}, false, fmt.Errorf("build get group query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Group{}, false, nil
		}
		return league.Group{}, false, fmt.Errorf("get group: %w", err)
	}

	return mapGroupRow(row), true, nil
}

func (r *LeagueRepository) ListGroupsBySeason(ctx context.Context, seasonID string) ([]league.Group, error) {
	query, args, err := qb.Select("public_id", "season_public_id", "competition_public_id", "name").
		From("groups").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list groups query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	out := make([]league.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGroupRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetClub(ctx context.Context, clubID string) (league.Club, bool, error) {
	query, args, err := qb.Select("public_id", "name").
		From("clubs").
		Where(qb.Eq("public_id", clubID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.Club{}, false, fmt.Errorf("build get club query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Club{}, false, nil
		}
		return league.Club{}, false, fmt.Errorf("get club: %w", err)
	}

	return league.Club{ID: row.ID, Name: row.Name}, true, nil
}

func (r *LeagueRepository) GetPlayer(ctx context.Context, playerID string) (league.Player, bool, error) {
	query, args, err := qb.Select("public_id", "club_public_id", "name").
		From("players").
		Where(qb.Eq("public_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return league.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Player{}, false, nil
		}
		return league.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return league.Player{ID: row.ID, ClubID: row.ClubID, Name: row.Name}, true, nil
}

func (r *LeagueRepository) PlayersByID(ctx context.Context, playerIDs []string) (map[string]league.Player, error) {
	if len(playerIDs) == 0 {
		return map[string]league.Player{}, nil
	}

	ids := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("public_id", "club_public_id", "name").
		From("players").
		Where(qb.In("public_id", ids)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make(map[string]league.Player, len(rows))
	for _, row := range rows {
		out[row.ID] = league.Player{ID: row.ID, ClubID: row.ClubID, Name: row.Name}
	}
	return out, nil
}

func mapGroupRow(row groupTableModel) league.Group {
	return league.Group{
		ID:            row.ID,
		SeasonID:      row.SeasonID,
		CompetitionID: row.CompetitionID,
		Name:          row.Name,
	}
}
