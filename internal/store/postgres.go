package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
)

// Pool is the subset of *pgxpool.Pool used by PostgresStore. pgxmock pools
// satisfy it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"get_scenario":   `SELECT id, name, calculator_key, inputs, timestamp FROM scenarios WHERE id = $1`,
	"get_preference": `SELECT value FROM preferences WHERE key = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS scenarios (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL,
	calculator_key TEXT NOT NULL,
	inputs         JSONB NOT NULL,
	timestamp      TEXT NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_scenarios_calculator_key ON scenarios(calculator_key);
CREATE INDEX IF NOT EXISTS idx_scenarios_timestamp ON scenarios(timestamp);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveScenario(ctx context.Context, sc model.Scenario) error {
	if err := validateScenario(sc); err != nil {
		return err
	}
	inputsJSON, err := json.Marshal(sc.Inputs)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal inputs")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO scenarios (id, name, calculator_key, inputs, timestamp, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			calculator_key = EXCLUDED.calculator_key,
			inputs = EXCLUDED.inputs,
			timestamp = EXCLUDED.timestamp,
			updated_at = EXCLUDED.updated_at`,
		sc.ID, sc.Name, sc.CalculatorKey, inputsJSON, sc.Timestamp, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save scenario %s", sc.ID)
	}
	return nil
}

func (s *PostgresStore) GetScenario(ctx context.Context, id string) (*model.Scenario, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, calculator_key, inputs, timestamp FROM scenarios WHERE id = $1`,
		id,
	)
	sc, err := scanPgScenario(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get scenario %s", id)
	}
	return sc, nil
}

func (s *PostgresStore) ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error) {
	query := `SELECT id, name, calculator_key, inputs, timestamp FROM scenarios`
	var args []any
	if filter.CalculatorKey != "" {
		query += ` WHERE calculator_key = $1`
		args = append(args, filter.CalculatorKey)
	}
	args = append(args, filter.limit(), filter.offset())
	if filter.CalculatorKey != "" {
		query += ` ORDER BY timestamp DESC, id DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY timestamp DESC, id DESC LIMIT $1 OFFSET $2`
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list scenarios")
	}
	defer rows.Close()

	out := []model.Scenario{}
	for rows.Next() {
		sc, err := scanPgScenario(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan scenario")
		}
		out = append(out, *sc)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate scenarios")
}

func (s *PostgresStore) DeleteScenario(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete scenario %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "scenario %s", id)
	}
	return nil
}

func (s *PostgresStore) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", eris.Wrapf(ErrNotFound, "preference %s", key)
	}
	if err != nil {
		return "", eris.Wrapf(err, "postgres: get preference %s", key)
	}
	return value, nil
}

func (s *PostgresStore) SetPreference(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, time.Now().UTC(),
	)
	return eris.Wrapf(err, "postgres: set preference %s", key)
}

func scanPgScenario(row scannable) (*model.Scenario, error) {
	var sc model.Scenario
	var inputsJSON []byte
	err := row.Scan(&sc.ID, &sc.Name, &sc.CalculatorKey, &inputsJSON, &sc.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputsJSON, &sc.Inputs); err != nil {
		return nil, eris.Wrap(err, "unmarshal inputs")
	}
	return &sc, nil
}
