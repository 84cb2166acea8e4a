package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Required configuration keys. All paths except RepoPath may be relative,
// in which case they are resolved against RepoPath.
const (
	KeyRepoPath       = "REPO_PATH"
	KeyProjectName    = "PROJECT_NAME"
	KeyStartupProject = "STARTUP_PROJECT"
	KeyMigrationsDir  = "MIGRATIONS_DIR"
	KeyScriptsDir     = "SCRIPTS_DIR"
	KeyContextName    = "DBCONTEXT_NAME"
)

// ErrMissingKey is returned when a required configuration key is absent.
var ErrMissingKey = errors.New("missing required configuration key")

// Config holds the resolved project paths for a single run. It is loaded
// once and never mutated afterwards.
type Config struct {
	// RepoPath is the absolute path to the repository root
	RepoPath string

	// ProjectPath is the path to the project containing the migrations
	ProjectPath string

	// StartupProject is the path to the startup project used for builds
	StartupProject string

	// MigrationsDir is the directory holding generated migration source files
	MigrationsDir string

	// ScriptsDir is the directory where generated SQL scripts are written
	ScriptsDir string

	// Context is the optional DbContext name when a project has several
	Context string
}

// Load parses a configuration from the provided io.Reader.
//
// The expected format is dotenv-style KEY=VALUE text: blank lines and
// lines starting with '#' are ignored, and the first '=' delimits key
// from value with both sides trimmed. Relative path values are resolved
// against REPO_PATH.
//
// Example:
//
//	cfg, err := config.Load(strings.NewReader(`
//	REPO_PATH=/src/shop
//	PROJECT_NAME=Shop.Data
//	STARTUP_PROJECT=Shop.Api
//	MIGRATIONS_DIR=Shop.Data/Migrations
//	SCRIPTS_DIR=scripts
//	`))
func Load(r io.Reader) (*Config, error) {
	vals, err := godotenv.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}

	for _, key := range []string{KeyRepoPath, KeyProjectName, KeyStartupProject, KeyMigrationsDir, KeyScriptsDir} {
		if strings.TrimSpace(vals[key]) == "" {
			return nil, errors.Wrapf(ErrMissingKey, "%s", key)
		}
	}

	repo, err := filepath.Abs(vals[KeyRepoPath])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve repository path: %s", vals[KeyRepoPath])
	}

	return &Config{
		RepoPath:       repo,
		ProjectPath:    ResolvePath(repo, vals[KeyProjectName]),
		StartupProject: ResolvePath(repo, vals[KeyStartupProject]),
		MigrationsDir:  ResolvePath(repo, vals[KeyMigrationsDir]),
		ScriptsDir:     ResolvePath(repo, vals[KeyScriptsDir]),
		Context:        vals[KeyContextName],
	}, nil
}

// LoadFile loads a configuration from the specified file path. A missing
// file is reported with a hint about the example file since that is the
// most common first-run failure.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err,
				"config file not found at %s (copy .env.example to .env and configure your project paths)", path)
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}

	return cfg, nil
}

// ResolvePath resolves path against root unless it is already absolute.
// Both drive-letter (C:\x) and rooted-slash (/x, \x) forms count as
// absolute regardless of the host platform, so a config file written on
// one OS keeps its meaning on another.
func ResolvePath(root, path string) string {
	if isAbsolute(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

func isAbsolute(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}

	// Drive-letter form when running on a non-Windows host.
	if len(path) >= 2 && path[1] == ':' &&
		(('a' <= path[0] && path[0] <= 'z') || ('A' <= path[0] && path[0] <= 'Z')) {
		return true
	}

	return strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`)
}
