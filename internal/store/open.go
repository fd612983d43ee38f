package store

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/config"
)

// DefaultSQLitePath is used when the sqlite driver has no database_url.
const DefaultSQLitePath = "samplesize.db"

// Open connects the backend named by cfg.Driver and runs its migration.
// An empty driver means persistence is disabled and returns (nil, nil).
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	var (
		st  Store
		err error
	)
	switch cfg.Driver {
	case "":
		return nil, nil
	case "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = DefaultSQLitePath
		}
		st, err = NewSQLite(dsn)
	case "postgres":
		poolCfg := &PoolConfig{MaxConns: cfg.MaxConns, MinConns: cfg.MinConns}
		st, err = withRetry(ctx, connectRetry, "connect postgres", func(ctx context.Context) (Store, error) {
			return NewPostgres(ctx, cfg.DatabaseURL, poolCfg)
		})
	default:
		return nil, eris.Errorf("store: unsupported driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	zap.L().Debug("store: opened", zap.String("driver", cfg.Driver))
	return st, nil
}
