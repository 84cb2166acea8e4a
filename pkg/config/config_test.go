package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/osdevtools/efscript/pkg/config"
	"github.com/osdevtools/efscript/pkg/consts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
# project configuration
REPO_PATH=/src/shop

PROJECT_NAME=Shop.Data
STARTUP_PROJECT=Shop.Api
MIGRATIONS_DIR=Shop.Data/Migrations
SCRIPTS_DIR=/out/scripts
DBCONTEXT_NAME=ShopContext
`))
	require.NoError(t, err)

	require.Equal(t, "/src/shop", cfg.RepoPath)
	require.Equal(t, filepath.Join("/src/shop", "Shop.Data"), cfg.ProjectPath)
	require.Equal(t, filepath.Join("/src/shop", "Shop.Api"), cfg.StartupProject)
	require.Equal(t, filepath.Join("/src/shop", "Shop.Data", "Migrations"), cfg.MigrationsDir)
	require.Equal(t, "/out/scripts", cfg.ScriptsDir, "absolute scripts dir must pass through")
	require.Equal(t, "ShopContext", cfg.Context)
}

func TestLoadContextOptional(t *testing.T) {
	cfg, err := Load(strings.NewReader(`
REPO_PATH=/src/shop
PROJECT_NAME=Shop.Data
STARTUP_PROJECT=Shop.Api
MIGRATIONS_DIR=Shop.Data/Migrations
SCRIPTS_DIR=scripts
`))
	require.NoError(t, err)
	require.Empty(t, cfg.Context)
}

func TestLoadMissingRequiredKey(t *testing.T) {
	for _, key := range []string{KeyRepoPath, KeyProjectName, KeyStartupProject, KeyMigrationsDir, KeyScriptsDir} {
		t.Run(key, func(t *testing.T) {
			lines := map[string]string{
				KeyRepoPath:       "/src/shop",
				KeyProjectName:    "Shop.Data",
				KeyStartupProject: "Shop.Api",
				KeyMigrationsDir:  "Shop.Data/Migrations",
				KeyScriptsDir:     "scripts",
			}
			delete(lines, key)

			var sb strings.Builder
			for k, v := range lines {
				sb.WriteString(k + "=" + v + "\n")
			}

			_, err := Load(strings.NewReader(sb.String()))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrMissingKey))
			require.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	content := strings.Join([]string{
		"REPO_PATH=" + dir,
		"PROJECT_NAME=Shop.Data",
		"STARTUP_PROJECT=Shop.Api",
		"MIGRATIONS_DIR=Shop.Data/Migrations",
		"SCRIPTS_DIR=scripts",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), consts.ModeFile))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, dir, cfg.RepoPath)
	require.Equal(t, filepath.Join(dir, "scripts"), cfg.ScriptsDir)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), ".env"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), ".env.example")
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		path     string
		expected string
	}{
		{
			name:     "relative path joins root",
			root:     "/src/shop",
			path:     "Shop.Data/Migrations",
			expected: filepath.Join("/src/shop", "Shop.Data", "Migrations"),
		},
		{
			name:     "rooted slash passes through",
			root:     "/src/shop",
			path:     "/out/scripts",
			expected: "/out/scripts",
		},
		{
			name:     "drive letter passes through",
			root:     "/src/shop",
			path:     `C:\repos\shop`,
			expected: `C:\repos\shop`,
		},
		{
			name:     "rooted backslash passes through",
			root:     "/src/shop",
			path:     `\out\scripts`,
			expected: `\out\scripts`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ResolvePath(tt.root, tt.path))
		})
	}
}
