package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

var scenarioColumns = []string{"id", "name", "calculator_key", "inputs", "timestamp"}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS scenarios`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveScenario_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO scenarios .* ON CONFLICT \(id\) DO UPDATE`).
		WithArgs("s1", "scenario s1", "test2Proportions", pgxmock.AnyArg(), "2026-01-01T00:00:00.000Z", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveScenario(context.Background(), testScenario("s1", "test2Proportions", "2026-01-01T00:00:00.000Z"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetScenario(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, calculator_key, inputs, timestamp FROM scenarios WHERE id = \$1`).
		WithArgs("s1").
		WillReturnRows(pgxmock.NewRows(scenarioColumns).
			AddRow("s1", "baseline", "estimateProportion", []byte(`{"alpha":0.05,"p":0.5,"d":0.05}`), "2026-01-01T00:00:00.000Z"))

	got, err := s.GetScenario(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "baseline", got.Name)
	assert.Equal(t, model.Inputs{"alpha": 0.05, "p": 0.5, "d": 0.05}, got.Inputs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetScenario_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, name, calculator_key, inputs, timestamp FROM scenarios WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetScenario(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "get scenario")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListScenarios_Filtered(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM scenarios WHERE calculator_key = \$1 ORDER BY timestamp DESC, id DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("test2Means", 10, 0).
		WillReturnRows(pgxmock.NewRows(scenarioColumns).
			AddRow("b", "two", "test2Means", []byte(`{"mu1":100}`), "2026-01-02T00:00:00.000Z").
			AddRow("a", "one", "test2Means", []byte(`{"mu1":90}`), "2026-01-01T00:00:00.000Z"))

	got, err := s.ListScenarios(context.Background(), ScenarioFilter{CalculatorKey: "test2Means", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, 90.0, got[1].Inputs["mu1"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListScenarios_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM scenarios ORDER BY timestamp DESC, id DESC LIMIT \$1 OFFSET \$2`).
		WithArgs(defaultListLimit, 0).
		WillReturnRows(pgxmock.NewRows(scenarioColumns))

	got, err := s.ListScenarios(context.Background(), ScenarioFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteScenario_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM scenarios WHERE id = \$1`).
		WithArgs("gone").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteScenario(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Preferences(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO preferences .* ON CONFLICT \(key\)`).
		WithArgs("theme", "dark", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`SELECT value FROM preferences WHERE key = \$1`).
		WithArgs("theme").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("dark"))
	mock.ExpectQuery(`SELECT value FROM preferences WHERE key = \$1`).
		WithArgs("language").
		WillReturnError(pgx.ErrNoRows)

	require.NoError(t, s.SetPreference(ctx, "theme", "dark"))

	v, err := s.GetPreference(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	_, err = s.GetPreference(ctx, "language")
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
