package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	clouds "github.com/goliatone/go-clouds"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

const (
	rootDir    = "data/sql/migrations"
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// Set is the migration directory of one SQL dialect. Names lists the
// migrations in apply order, without the .up.sql suffix.
type Set struct {
	Dialect string
	Path    string
	FS      fs.FS
	Names   []string
}

// RegisterFunc hands one dialect's migrations to a migrator, typically
// persistence.Client.RegisterSQLMigrations.
type RegisterFunc func(ctx context.Context, set Set) error

type Registration struct {
	Dialects []string
	Sets     []Set
}

type Option func(*Registration)

// ForDialects restricts registration to the given dialects.
func ForDialects(dialects ...string) Option {
	return func(r *Registration) {
		var out []string
		for _, dialect := range dialects {
			dialect = strings.ToLower(strings.TrimSpace(dialect))
			if dialect != "" && !slices.Contains(out, dialect) {
				out = append(out, dialect)
			}
		}
		if len(out) > 0 {
			r.Dialects = out
		}
	}
}

// WithSets replaces the bundled migrations.
func WithSets(sets ...Set) Option {
	return func(r *Registration) {
		if len(sets) > 0 {
			r.Sets = append([]Set(nil), sets...)
		}
	}
}

// DialectForDriver maps a database/sql driver name to its migration dialect.
func DialectForDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "pgx", "pq":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("migrations: no dialect for driver %q", driver)
}

// Load reads the postgres migrations from data/sql/migrations and the sqlite
// ones from its sqlite directory. A nil root loads the bundled migrations.
// Every up migration needs a matching down migration.
func Load(root fs.FS) ([]Set, error) {
	if root == nil {
		root = clouds.MigrationsFS()
	}
	base, err := fs.Sub(root, rootDir)
	if err != nil {
		return nil, fmt.Errorf("migrations: open %s: %w", rootDir, err)
	}

	layout := []struct {
		dialect string
		dir     string
	}{
		{DialectPostgres, "."},
		{DialectSQLite, "sqlite"},
	}
	sets := make([]Set, 0, len(layout))
	for _, entry := range layout {
		dir := base
		if entry.dir != "." {
			if dir, err = fs.Sub(base, entry.dir); err != nil {
				return nil, fmt.Errorf("migrations: open %s directory: %w", entry.dialect, err)
			}
		}
		names, err := migrationNames(dir)
		if err != nil {
			return nil, fmt.Errorf("migrations: %s: %w", entry.dialect, err)
		}
		sets = append(sets, Set{
			Dialect: entry.dialect,
			Path:    path.Join(rootDir, entry.dir),
			FS:      dir,
			Names:   names,
		})
	}
	return sets, nil
}

func migrationNames(dir fs.FS) ([]string, error) {
	ups, err := fs.Glob(dir, "*"+upSuffix)
	if err != nil {
		return nil, err
	}
	if len(ups) == 0 {
		return nil, fmt.Errorf("no %s files", "*"+upSuffix)
	}
	slices.Sort(ups)
	names := make([]string, 0, len(ups))
	for _, up := range ups {
		name := strings.TrimSuffix(up, upSuffix)
		if _, err := fs.Stat(dir, name+downSuffix); err != nil {
			return nil, fmt.Errorf("%s has no down migration", name)
		}
		names = append(names, name)
	}
	return names, nil
}

// Register passes each selected dialect's migrations to fn. Without
// ForDialects both dialects are registered.
func Register(ctx context.Context, fn RegisterFunc, opts ...Option) (Registration, error) {
	reg := Registration{Dialects: []string{DialectPostgres, DialectSQLite}}
	for _, opt := range opts {
		if opt != nil {
			opt(&reg)
		}
	}
	if fn == nil {
		return reg, fmt.Errorf("migrations: register function is required")
	}
	if len(reg.Sets) == 0 {
		sets, err := Load(nil)
		if err != nil {
			return reg, err
		}
		reg.Sets = sets
	}

	registered := 0
	for _, set := range reg.Sets {
		if !slices.Contains(reg.Dialects, set.Dialect) {
			continue
		}
		if set.FS == nil {
			return reg, fmt.Errorf("migrations: %s filesystem is nil", set.Dialect)
		}
		if err := fn(ctx, set); err != nil {
			return reg, fmt.Errorf("migrations: register %s: %w", set.Dialect, err)
		}
		registered++
	}
	if registered == 0 {
		return reg, fmt.Errorf("migrations: no migrations for dialects %v", reg.Dialects)
	}
	return reg, nil
}
