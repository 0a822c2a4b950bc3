package seen

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"linewatch/internal/app/db"
	"linewatch/internal/pkg/logx"
)

// Storage mode names as reported by the health endpoint.
const (
	ModePostgres = "postgres"
	ModeMemory   = "memory"
)

// Backend bundles the resolved storage variant. The choice is made once at startup
// and fixed for the process lifetime.
type Backend struct {
	Store  Store
	Ledger PaymentLedger
	Mode   string

	pool *pgxpool.Pool
}

// Resolve picks the storage variant: PostgreSQL when a DSN is configured and the
// pool initializes, the in-process store otherwise. A database that is configured
// but unreachable logs the failure and falls back to memory rather than preventing
// startup.
func Resolve(dsn string, fetcher ProfileFetcher) *Backend {
	if dsn != "" {
		pool, err := db.NewPool(dsn)
		if err == nil {
			store := NewPostgresStore(pool, fetcher)
			return &Backend{Store: store, Ledger: store, Mode: ModePostgres, pool: pool}
		}
		logx.Error(err, "database unavailable, falling back to in-memory store")
	}

	store := NewMemoryStore(fetcher)
	return &Backend{Store: store, Ledger: store, Mode: ModeMemory}
}

// Close releases the connection pool in postgres mode. Safe to call in any mode.
func (b *Backend) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
}
