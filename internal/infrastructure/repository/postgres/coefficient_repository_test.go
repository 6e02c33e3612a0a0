package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ligadatos/liga-stats/internal/domain/coefficient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestCoefficientRepository_DivisionBySeason(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoefficientRepository(db)

	rows := sqlmock.NewRows([]string{"competition_public_id", "season_public_id", "matchday", "value"}).
		AddRow("comp-first", "season-2026", 3, 1.3).
		AddRow("comp-second", "season-2026", 1, 0.9)

	mock.ExpectQuery(regexp.QuoteMeta(divisionLookupQuery)).
		WithArgs("season-2026", 4).
		WillReturnRows(rows)

	got, err := repo.DivisionBySeason(context.Background(), "season-2026", 4)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"comp-first": 1.3, "comp-second": 0.9}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoefficientRepository_ClubBySeason_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoefficientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(clubLookupQuery)).
		WithArgs("season-2026", 1).
		WillReturnRows(sqlmock.NewRows([]string{"club_public_id", "season_public_id", "matchday", "value"}))

	got, err := repo.ClubBySeason(context.Background(), "season-2026", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoefficientRepository_UpsertDivision(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoefficientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO division_coefficients (competition_public_id, season_public_id, matchday, value) VALUES ($1, $2, $3, $4) `+divisionUpsertSuffix,
	)).
		WithArgs("comp-first", "season-2026", 3, 1.3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertDivision(context.Background(), coefficient.Division{
		CompetitionID: "comp-first",
		SeasonID:      "season-2026",
		Matchday:      3,
		Value:         1.3,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoefficientRepository_UpsertClub(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCoefficientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO club_coefficients (club_public_id, season_public_id, matchday, value) VALUES ($1, $2, $3, $4) `+clubUpsertSuffix,
	)).
		WithArgs("club-atlas", "season-2026", 3, 1.1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertClub(context.Background(), coefficient.Club{
		ClubID:   "club-atlas",
		SeasonID: "season-2026",
		Matchday: 3,
		Value:    1.1,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
