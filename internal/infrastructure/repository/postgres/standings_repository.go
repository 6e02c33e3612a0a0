package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/standings"
	qb "github.com/ligadatos/liga-stats/internal/platform/querybuilder"
)

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) Replace(ctx context.Context, snapshot standings.Snapshot, positions []standings.TeamPosition) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearPositionsQuery, clearPositionsArgs, err := qb.DeleteFrom("standings_positions").
		Where(
			qb.Eq("group_public_id", snapshot.GroupID),
			qb.Eq("matchday", snapshot.Matchday),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings positions query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearPositionsQuery, clearPositionsArgs...); err != nil {
		return fmt.Errorf("clear standings positions: %w", err)
	}

	clearSnapshotQuery, clearSnapshotArgs, err := qb.DeleteFrom("standings_snapshots").
		Where(
			qb.Eq("group_public_id", snapshot.GroupID),
			qb.Eq("matchday", snapshot.Matchday),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings snapshot query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearSnapshotQuery, clearSnapshotArgs...); err != nil {
		return fmt.Errorf("clear standings snapshot: %w", err)
	}

	snapshotQuery, snapshotArgs, err := qb.InsertModel("standings_snapshots", standingsSnapshotTableModel{
		ID:            snapshot.ID,
		GroupID:       snapshot.GroupID,
		Matchday:      snapshot.Matchday,
		TeamCount:     snapshot.TeamCount,
		MatchesPlayed: snapshot.MatchesPlayed,
		CalculatedAt:  snapshot.CalculatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert standings snapshot query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, snapshotQuery, snapshotArgs...); err != nil {
		return fmt.Errorf("insert standings snapshot: %w", err)
	}

	for _, item := range positions {
		query, args, err := qb.InsertModel("standings_positions", standingsPositionTableModel{
			SnapshotID:     snapshot.ID,
			GroupID:        item.GroupID,
			Matchday:       item.Matchday,
			ClubID:         item.ClubID,
			Position:       item.Position,
			Played:         item.Played,
			Won:            item.Won,
			Draw:           item.Draw,
			Lost:           item.Lost,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
			Streak:         item.Streak,
		}, "")
		if err != nil {
			return fmt.Errorf("build insert standings position query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standings position club=%s: %w", item.ClubID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func (r *StandingsRepository) Get(ctx context.Context, groupID string, matchday int) (standings.Snapshot, []standings.TeamPosition, bool, error) {
	snapshotQuery, snapshotArgs, err := qb.Select("public_id", "group_public_id", "matchday", "team_count", "matches_played", "calculated_at").
		From("standings_snapshots").
		Where(
			qb.Eq("group_public_id", groupID),
			qb.Eq("matchday", matchday),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return standings.Snapshot{}, nil, false, fmt.Errorf("build get standings snapshot query: %w", err)
	}

	var snapshotRow standingsSnapshotTableModel
	if err := r.db.GetContext(ctx, &snapshotRow, snapshotQuery, snapshotArgs...); err != nil {
		if isNotFound(err) {
			return standings.Snapshot{}, nil, false, nil
		}
		return standings.Snapshot{}, nil, false, fmt.Errorf("get standings snapshot: %w", err)
	}

	positionsQuery, positionsArgs, err := qb.Select(
		"snapshot_public_id", "group_public_id", "matchday", "club_public_id",
		"position", "played", "won", "draw", "lost",
		"goals_for", "goals_against", "goal_difference", "points", "streak",
	).
		From("standings_positions").
		Where(qb.Eq("snapshot_public_id", snapshotRow.ID)).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return standings.Snapshot{}, nil, false, fmt.Errorf("build list standings positions query: %w", err)
	}

	var positionRows []standingsPositionTableModel
	if err := r.db.SelectContext(ctx, &positionRows, positionsQuery, positionsArgs...); err != nil {
		return standings.Snapshot{}, nil, false, fmt.Errorf("list standings positions: %w", err)
	}

	snapshot := standings.Snapshot{
		ID:            snapshotRow.ID,
		GroupID:       snapshotRow.GroupID,
		Matchday:      snapshotRow.Matchday,
		TeamCount:     snapshotRow.TeamCount,
		MatchesPlayed: snapshotRow.MatchesPlayed,
		CalculatedAt:  snapshotRow.CalculatedAt,
	}

	positions := make([]standings.TeamPosition, 0, len(positionRows))
	for _, row := range positionRows {
		positions = append(positions, standings.TeamPosition{
			SnapshotID:     row.SnapshotID,
			GroupID:        row.GroupID,
			Matchday:       row.Matchday,
			ClubID:         row.ClubID,
			Position:       row.Position,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Streak:         row.Streak,
		})
	}

	return snapshot, positions, true, nil
}
