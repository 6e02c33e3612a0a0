package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ligadatos/liga-stats/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getMatchQuery = `SELECT public_id, group_public_id, season_public_id, matchday, home_club_public_id, away_club_public_id, home_goals, away_goals, played, played_at FROM matches WHERE public_id = $1 LIMIT 1`

const matchEventsQuery = `SELECT match_public_id, player_public_id, club_public_id, event_type, minute FROM match_events WHERE match_public_id IN ($1) ORDER BY match_public_id, minute, player_public_id`

func TestMatchRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	playedAt := time.Date(2026, 2, 7, 20, 0, 0, 0, time.UTC)
	matchRows := sqlmock.NewRows([]string{
		"public_id", "group_public_id", "season_public_id", "matchday",
		"home_club_public_id", "away_club_public_id",
		"home_goals", "away_goals", "played", "played_at",
	}).AddRow("m-1", "grp-1a", "season-2026", 1, "club-atlas", "club-boreal", 2, 1, true, playedAt)

	mock.ExpectQuery(regexp.QuoteMeta(getMatchQuery)).
		WithArgs("m-1").
		WillReturnRows(matchRows)

	eventRows := sqlmock.NewRows([]string{"match_public_id", "player_public_id", "club_public_id", "event_type", "minute"}).
		AddRow("m-1", "player-ana", "club-atlas", "GOAL", 12).
		AddRow("m-1", "player-bea", "club-atlas", "APPEARANCE", 0)

	mock.ExpectQuery(regexp.QuoteMeta(matchEventsQuery)).
		WithArgs("m-1").
		WillReturnRows(eventRows)

	got, found, err := repo.GetByID(context.Background(), "m-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "grp-1a", got.GroupID)
	assert.Equal(t, 2, got.HomeGoals)
	assert.True(t, got.Played)
	require.NotNil(t, got.PlayedAt)
	assert.True(t, got.PlayedAt.Equal(playedAt))
	require.Len(t, got.Events, 2)
	assert.Equal(t, match.Event{PlayerID: "player-ana", ClubID: "club-atlas", Type: "GOAL", Minute: 12}, got.Events[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(getMatchQuery)).
		WithArgs("m-ghost").
		WillReturnRows(sqlmock.NewRows([]string{"public_id"}))

	_, found, err := repo.GetByID(context.Background(), "m-ghost")
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_ListPlayedUpTo_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT`)).
		WithArgs("grp-1a", 3, true).
		WillReturnRows(sqlmock.NewRows([]string{"public_id"}))

	got, err := repo.ListPlayedUpTo(context.Background(), "grp-1a", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_SetResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE matches SET home_goals = $1, away_goals = $2, played = $3 WHERE public_id = $4`,
	)).
		WithArgs(2, 1, true, "m-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM match_events WHERE match_public_id = $1`,
	)).
		WithArgs("m-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO match_events (match_public_id, player_public_id, club_public_id, event_type, minute) VALUES ($1, $2, $3, $4, $5)`,
	)).
		WithArgs("m-1", "player-ana", "club-atlas", "GOAL", 12).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.SetResult(context.Background(), "m-1", 2, 1, []match.Event{
		{PlayerID: "player-ana", ClubID: "club-atlas", Type: "GOAL", Minute: 12},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMatchRepository_SetResult_UpdateFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMatchRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE matches SET`)).
		WithArgs(2, 1, true, "m-1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SetResult(context.Background(), "m-1", 2, 1, nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
