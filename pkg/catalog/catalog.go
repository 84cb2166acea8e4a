package catalog

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Migration filenames follow the convention <14-digit timestamp>_<name>.cs.
// Generated Snapshot/Designer companions are never migrations themselves.
var migrationFileRE = regexp.MustCompile(`(?i)^(\d{14})_(.+)\.cs$`)

// ErrInsufficientHistory is returned when fewer than two migrations exist
// and no explicit from/to override was provided.
var ErrInsufficientHistory = errors.New("need at least two migrations")

type (
	// Migration is a single (timestamp, name) pair parsed from a filename.
	Migration struct {
		// Timestamp is the zero-padded 14-digit creation stamp. Lexical
		// order on it equals chronological order.
		Timestamp string

		// Name is the free-form migration name following the timestamp.
		Name string
	}

	// Catalog is the ordered set of migrations found on disk, sorted
	// ascending by timestamp. It is rebuilt from directory contents on
	// every invocation; nothing is persisted.
	Catalog struct {
		migrations []Migration
	}
)

// ID returns the migration identifier as the external migration CLI
// expects it: <timestamp>_<name>.
func (m Migration) ID() string {
	return m.Timestamp + "_" + m.Name
}

// Load scans dir for migration source files and returns them sorted
// ascending by timestamp. Snapshot and Designer files are excluded, and
// filenames not matching the naming convention are silently skipped.
func Load(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "migrations dir not found: %s", dir)
		}
		return nil, errors.Wrapf(err, "failed to read migrations dir: %s", dir)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()

		// The exclusion must fold case like the filename pattern does, or
		// an upper-cased Designer file would be cataloged as a migration.
		lower := strings.ToLower(name)
		if strings.HasSuffix(lower, "snapshot.cs") || strings.HasSuffix(lower, ".designer.cs") {
			continue
		}

		m := migrationFileRE.FindStringSubmatch(name)
		if m == nil {
			continue
		}

		migrations = append(migrations, Migration{Timestamp: m[1], Name: m[2]})
	}

	slices.SortFunc(migrations, func(a, b Migration) int {
		return strings.Compare(a.Timestamp, b.Timestamp)
	})

	return &Catalog{migrations: migrations}, nil
}

// Len returns the number of migrations in the catalog.
func (c *Catalog) Len() int {
	return len(c.migrations)
}

// Migrations returns the migrations in ascending timestamp order.
func (c *Catalog) Migrations() []Migration {
	return c.migrations
}

// Latest returns the newest migration, or false when the catalog is empty.
func (c *Catalog) Latest() (Migration, bool) {
	if len(c.migrations) == 0 {
		return Migration{}, false
	}

	return c.migrations[len(c.migrations)-1], true
}

// Range returns the second-to-last and last migrations, the default
// from/to pair for script generation.
func (c *Catalog) Range() (from, to Migration, err error) {
	if len(c.migrations) < 2 {
		return Migration{}, Migration{}, ErrInsufficientHistory
	}

	return c.migrations[len(c.migrations)-2], c.migrations[len(c.migrations)-1], nil
}
