package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"bimbingan_service/internal/config"
)

const healthService = "postgres"

type Database struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg *config.Config) (*Database, error) {
	if cfg.PostgresAutoMigrate {
		if err := runMigrations(cfg.PostgresURL); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	pool, err := createPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Database{pool: pool}, nil
}

func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func createPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pgxCfg.MaxConns = int32(cfg.PostgresMaxConn)
	pgxCfg.MinConns = int32(cfg.PostgresMinConn)

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func runMigrations(url string) error {
	m, err := migrate.New("file://migrations", url)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// RegisterHealthService exposes database liveness through the standard gRPC health protocol
// and keeps it updated until ctx is done.
func (d *Database) RegisterHealthService(ctx context.Context, srv *grpc.Server) {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)

	healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_SERVING)

	go d.watchConnection(ctx, healthServer, 15*time.Second)
}

func (d *Database) watchConnection(ctx context.Context, healthServer *health.Server, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			healthServer.Shutdown()
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := d.pool.Ping(pingCtx)
			cancel()

			if err != nil {
				healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
			} else {
				healthServer.SetServingStatus(healthService, grpc_health_v1.HealthCheckResponse_SERVING)
			}
		}
	}
}

func (d *Database) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}
