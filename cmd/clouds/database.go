package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-clouds/compute"
	cloudmigrations "github.com/goliatone/go-clouds/migrations"
	"github.com/goliatone/go-clouds/security"
	sqlstore "github.com/goliatone/go-clouds/store/sql"
	persistence "github.com/goliatone/go-persistence-bun"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
	"github.com/urfave/cli/v2"
)

type persistenceConfig struct {
	debug  bool
	driver string
	server string
}

func (c persistenceConfig) GetDebug() bool                { return c.debug }
func (c persistenceConfig) GetDriver() string             { return c.driver }
func (c persistenceConfig) GetServer() string             { return c.server }
func (c persistenceConfig) GetPingTimeout() time.Duration { return 5 * time.Second }
func (c persistenceConfig) GetOtelIdentifier() string     { return "go-clouds-cli" }

func bunDialect(driver string) schema.Dialect {
	if driver == driverPostgres {
		return pgdialect.New()
	}
	return sqlitedialect.New()
}

// newPersistenceClient opens the configured database and registers the
// bundled migrations for its dialect. Migrations are not applied here.
func newPersistenceClient(ctx context.Context, conf *Config) (*persistence.Client, error) {
	driver := strings.TrimSpace(conf.Database.Driver)
	dsn := strings.TrimSpace(conf.Database.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("database.dsn is required")
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == driverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	client, err := persistence.New(persistenceConfig{
		debug:  conf.Debug,
		driver: driver,
		server: dsn,
	}, sqlDB, bunDialect(driver))
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("new persistence client: %w", err)
	}

	dialect, err := cloudmigrations.DialectForDriver(driver)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	_, err = cloudmigrations.Register(ctx, func(_ context.Context, set cloudmigrations.Set) error {
		client.RegisterSQLMigrations(set.FS)
		return nil
	}, cloudmigrations.ForDialects(dialect))
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func newSecretProvider(conf *Config) (*security.AppKeySecretProvider, error) {
	return security.NewAppKeySecretProviderFromString(
		conf.Secrets.AppKey,
		security.WithKeyID(conf.Secrets.KeyID),
		security.WithVersion(conf.Secrets.Version),
	)
}

// newCredentialStore returns the node login store described by conf and a
// function releasing it. Without a DSN logins live in memory.
func newCredentialStore(ctx context.Context, conf *Config) (compute.CredentialStore, func(), error) {
	if strings.TrimSpace(conf.Database.DSN) == "" {
		return compute.NewMemoryCredentialStore(), func() {}, nil
	}

	secrets, err := newSecretProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	client, err := newPersistenceClient(ctx, conf)
	if err != nil {
		return nil, nil, err
	}
	release := func() { _ = client.Close() }

	if conf.Database.Migrate {
		if err := client.Migrate(ctx); err != nil {
			release()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	sqlStore, err := sqlstore.OpenLoginCredentialStore(client, secrets)
	if err != nil {
		release()
		return nil, nil, err
	}
	var store compute.CredentialStore = sqlStore
	if !conf.Cache.Enabled {
		return store, release, nil
	}

	cacheConfig := repositorycache.DefaultConfig()
	if conf.Cache.TTLSeconds > 0 {
		cacheConfig.TTL = time.Duration(conf.Cache.TTLSeconds) * time.Second
	}
	cacheService, err := repositorycache.NewCacheService(cacheConfig)
	if err != nil {
		release()
		return nil, nil, err
	}
	cached, err := sqlstore.NewCachedLoginCredentialStore(store, cacheService)
	if err != nil {
		release()
		return nil, nil, err
	}
	return cached, release, nil
}

// NewDatabaseCommand returns the command applying the bundled migrations.
func NewDatabaseCommand() *cli.Command {
	return &cli.Command{
		Name:    "database",
		Usage:   "database operations",
		Aliases: []string{"db"},
		Subcommands: []*cli.Command{
			{
				Name:    "migrate",
				Usage:   "apply pending migrations",
				Aliases: []string{"m"},
				Action: func(ctx *cli.Context) error {
					conf := getConfig(ctx)
					client, err := newPersistenceClient(ctx.Context, conf)
					if err != nil {
						return err
					}
					defer client.Close()

					if err := client.Migrate(ctx.Context); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					_, err = fmt.Fprintf(ctx.App.Writer, "database migrated (%s)\n", conf.Database.Driver)
					return err
				},
			},
		},
	}
}
