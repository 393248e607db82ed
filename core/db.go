package core

import (
	"context"
	"database/sql"
)

// DBPinger is the part of the pool the health checks need.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

var _ DBPinger = (*sql.DB)(nil)
