package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/angelmondragon/restaurant-backend/pkg/config"
	_ "github.com/lib/pq"
)

// OpenSQL opens a plain database/sql handle through lib/pq. The migration CLI
// runs goose on it, so schema errors surface as *pq.Error.
func OpenSQL(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	sqlDB, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening sql connection: %w", err)
	}
	applyPoolSettings(sqlDB, cfg)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return sqlDB, nil
}
