package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	qb "github.com/ligadatos/liga-stats/internal/platform/querybuilder"
)

var matchColumns = []string{
	"public_id", "group_public_id", "season_public_id", "matchday",
	"home_club_public_id", "away_club_public_id",
	"home_goals", "away_goals", "played", "played_at",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	out := mapMatchRow(row)
	events, err := r.eventsByMatch(ctx, []string{row.ID})
	if err != nil {
		return match.Match{}, false, err
	}
	out.Events = events[row.ID]
	return out, true, nil
}

func (r *MatchRepository) ListPlayedUpTo(ctx context.Context, groupID string, matchday int) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.Lte("matchday", matchday),
			qb.Eq("played", true),
		).
		OrderBy("matchday", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list played matches query: %w", err)
	}
	return r.listWithEvents(ctx, query, args)
}

func (r *MatchRepository) ListByMatchday(ctx context.Context, groupID string, matchday int) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.Eq("matchday", matchday),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchday matches query: %w", err)
	}
	return r.listWithEvents(ctx, query, args)
}

func (r *MatchRepository) SetResult(ctx context.Context, matchID string, homeGoals, awayGoals int, events []match.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set match result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("matches").
		Set("home_goals", homeGoals).
		Set("away_goals", awayGoals).
		Set("played", true).
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match result query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return fmt.Errorf("update match result: %w", err)
	}

	clearQuery, clearArgs, err := qb.DeleteFrom("match_events").
		Where(qb.Eq("match_public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear match events query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear match events: %w", err)
	}

	for _, item := range events {
		insertQuery, insertArgs, err := qb.InsertModel("match_events", matchEventInsertModel{
			MatchID:  matchID,
			PlayerID: item.PlayerID,
			ClubID:   item.ClubID,
			Type:     item.Type,
			Minute:   item.Minute,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert match event query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert match event player=%s: %w", item.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set match result tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) listWithEvents(ctx context.Context, query string, args []any) ([]match.Match, error) {
	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if len(rows) == 0 {
		return []match.Match{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	events, err := r.eventsByMatch(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item := mapMatchRow(row)
		item.Events = events[row.ID]
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) eventsByMatch(ctx context.Context, matchIDs []string) (map[string][]match.Event, error) {
	ids := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("match_public_id", "player_public_id", "club_public_id", "event_type", "minute").
		From("match_events").
		Where(qb.In("match_public_id", ids)).
		OrderBy("match_public_id", "minute", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match events query: %w", err)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match events: %w", err)
	}

	out := make(map[string][]match.Event, len(matchIDs))
	for _, row := range rows {
		out[row.MatchID] = append(out[row.MatchID], match.Event{
			PlayerID: row.PlayerID,
			ClubID:   row.ClubID,
			Type:     row.Type,
			Minute:   row.Minute,
		})
	}
	return out, nil
}

func mapMatchRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		GroupID:    row.GroupID,
		SeasonID:   row.SeasonID,
		Matchday:   row.Matchday,
		HomeClubID: row.HomeClubID,
		AwayClubID: row.AwayClubID,
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		Played:     row.Played,
		PlayedAt:   nullTimeToTimePtr(row.PlayedAt),
	}
}
