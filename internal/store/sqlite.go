package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scenarios (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	calculator_key TEXT NOT NULL,
	inputs         TEXT NOT NULL,
	timestamp      TEXT NOT NULL,
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scenarios_calculator_key ON scenarios(calculator_key);
CREATE INDEX IF NOT EXISTS idx_scenarios_timestamp ON scenarios(timestamp);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveScenario(ctx context.Context, sc model.Scenario) error {
	if err := validateScenario(sc); err != nil {
		return err
	}
	inputsJSON, err := json.Marshal(sc.Inputs)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal inputs")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, calculator_key, inputs, timestamp, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			calculator_key = excluded.calculator_key,
			inputs = excluded.inputs,
			timestamp = excluded.timestamp,
			updated_at = excluded.updated_at`,
		sc.ID, sc.Name, sc.CalculatorKey, string(inputsJSON), sc.Timestamp, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save scenario %s", sc.ID)
	}
	return nil
}

func (s *SQLiteStore) GetScenario(ctx context.Context, id string) (*model.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, calculator_key, inputs, timestamp FROM scenarios WHERE id = ?`,
		id,
	)
	sc, err := scanScenario(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get scenario %s", id)
	}
	return sc, nil
}

func (s *SQLiteStore) ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error) {
	query := `SELECT id, name, calculator_key, inputs, timestamp FROM scenarios`
	var args []any
	if filter.CalculatorKey != "" {
		query += ` WHERE calculator_key = ?`
		args = append(args, filter.CalculatorKey)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, filter.limit(), filter.offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scenarios")
	}
	defer rows.Close() //nolint:errcheck

	out := []model.Scenario{}
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan scenario")
		}
		out = append(out, *sc)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate scenarios")
}

func (s *SQLiteStore) DeleteScenario(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete scenario %s", id)
	}
	return checkRowsAffected(res, "scenario", id)
}

func (s *SQLiteStore) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", eris.Wrapf(ErrNotFound, "preference %s", key)
	}
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: get preference %s", key)
	}
	return value, nil
}

func (s *SQLiteStore) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: set preference %s", key)
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanScenario(row scannable) (*model.Scenario, error) {
	var sc model.Scenario
	var inputsJSON string
	err := row.Scan(&sc.ID, &sc.Name, &sc.CalculatorKey, &inputsJSON, &sc.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(inputsJSON), &sc.Inputs); err != nil {
		return nil, eris.Wrap(err, "unmarshal inputs")
	}
	return &sc, nil
}
