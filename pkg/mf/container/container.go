// Package container provides a centralized structure to manage
// application-level concerns shared across a request: logging, metrics,
// and the connection pool to the spatiotemporal store. Trimmed from the
// teacher's container, which additionally wires Redis, Cassandra, Mongo,
// pub/sub and a dozen other datasources this service has no use for (see
// DESIGN.md).
package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers the "postgres" driver

	"github.com/mf-api/server/pkg/mf/config"
	"github.com/mf-api/server/pkg/mf/logging"
)

// Container is the collection of application-level concerns shared across
// every request: the structured Logger, the metrics manager, and the SQL
// handle to the spatiotemporal store.
type Container struct {
	logging.Logger

	appName    string
	appVersion string

	metricsManager Metrics

	SQL *sqlx.DB
}

// Metrics is re-declared here (not imported from pkg/mf) to avoid a
// container -> mf -> container import cycle; pkg/mf.Metrics satisfies it.
type Metrics interface {
	NewCounter(name, help string, labels ...string)
	NewGauge(name, help string)
	NewHistogram(name, help string, buckets ...float64)
	SetGauge(name string, value float64)
	IncCounter(name string, labels ...string)
	ObserveHistogram(name string, value float64, labels ...string)
}

// NewContainer builds a Container, opening the store connection described
// by conf (§6 connection descriptor {host, port, dbname, user, password}).
func NewContainer(conf config.Config, metrics Metrics) *Container {
	if conf == nil {
		return &Container{}
	}

	c := &Container{
		appName:        conf.GetOrDefault("APP_NAME", "mf-server"),
		appVersion:     conf.GetOrDefault("APP_VERSION", "dev"),
		metricsManager: metrics,
	}

	c.Logger = logging.NewLogger(logging.GetLevelFromString(conf.Get("LOG_LEVEL")))
	c.Logger.Debug("container is being created")

	c.registerStoreMetrics()

	conn := config.Connection(conf)

	db, err := openStore(conn)
	if err != nil {
		c.Logger.Errorf("failed to connect to spatiotemporal store: %v", err)
	} else {
		c.SQL = db
	}

	return c
}

func openStore(conn config.StoreConnection) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		conn.Host, conn.Port, conn.DBName, conn.User, conn.Password)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Close releases all connections held by the container's pool; it is a
// process-level operation, not a per-request one (each request opens its
// own logical session over the pool, per §5). It is a no-op when no store
// connection was opened.
func (c *Container) Close() error {
	if c.SQL == nil {
		return nil
	}

	return c.SQL.Close()
}

// Metrics returns the metrics manager shared across the process.
func (c *Container) Metrics() Metrics {
	return c.metricsManager
}

func (c *Container) registerStoreMetrics() {
	c.Metrics().NewHistogram("app_http_response", "Response time of HTTP requests in seconds.",
		.001, .003, .005, .01, .02, .03, .05, .1, .2, .3, .5, .75, 1, 2, 3, 5, 10, 30)

	c.Metrics().NewHistogram("app_sql_stats", "Response time of store queries in milliseconds.",
		.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 10000, 30000)
	c.Metrics().NewGauge("app_sql_open_connections", "Number of open connections to the spatiotemporal store.")
	c.Metrics().NewGauge("app_sql_inuse_connections", "Number of connections to the spatiotemporal store currently in use.")
}

func (c *Container) GetAppName() string { return c.appName }

func (c *Container) GetAppVersion() string { return c.appVersion }

// ReportConnectionStats pushes database/sql.DBStats to the gauges
// registered above. It is not run on a schedule: the gauges change only
// when a caller invokes it.
func (c *Container) ReportConnectionStats() {
	if c.SQL == nil {
		return
	}

	stats := c.SQL.Stats()
	c.Metrics().SetGauge("app_sql_open_connections", float64(stats.OpenConnections))
	c.Metrics().SetGauge("app_sql_inuse_connections", float64(stats.InUse))
}

// Ping verifies the store connection is alive; used by health checks.
func (c *Container) Ping(ctx context.Context) error {
	if c.SQL == nil {
		return sql.ErrConnDone
	}

	return c.SQL.PingContext(ctx)
}
