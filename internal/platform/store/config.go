package store

import (
	"time"

	"caseline/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG   PGConfig
	Lite SQLiteConfig
	CH   CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
	// AppName tags connections, e.g. caseline-api
	AppName string
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Enabled     bool
	Path        string
	BusyTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// FromConfig reads SERVICE_PGSQL_*, SERVICE_SQLITE_* and SERVICE_CLICKHOUSE_*.
// A backend is enabled when its URL or path is set; role tags the clickhouse client
func FromConfig(root config.Conf, role string) Config {
	pgc := root.Prefix("SERVICE_PGSQL_")
	lc := root.Prefix("SERVICE_SQLITE_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")

	pgURL := pgc.MayString("DBURL", "")
	litePath := lc.MayString("PATH", "")
	chURL := chc.MayString("DBURL", "")

	return Config{
		PG: PGConfig{
			Enabled:        pgURL != "",
			URL:            pgURL,
			MaxConns:       int32(pgc.MayInt("MAX_CONNS", 8)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 250),
			ConnectRetries: pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
			AppName:        "caseline-" + role,
		},
		Lite: SQLiteConfig{
			Enabled:     litePath != "",
			Path:        litePath,
			BusyTimeout: lc.MayDuration("BUSY_TIMEOUT", 5*time.Second),
		},
		CH: CHConfig{
			Enabled:    chURL != "",
			URL:        chURL,
			ClientName: "caseline",
			ClientTag:  role,
		},
	}
}
