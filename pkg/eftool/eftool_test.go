package eftool_test

import (
	"context"
	"strings"
	"testing"

	. "github.com/osdevtools/efscript/pkg/eftool"
	"github.com/osdevtools/efscript/pkg/executor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDetectGlobal(t *testing.T) {
	m := executor.NewMock()
	m.OutputFunc = func(call executor.Call) (string, error) {
		if call.Line() == "dotnet ef --version" {
			return "9.0.0", nil
		}
		return "", errors.New("unexpected probe: " + call.Line())
	}

	tool, err := Detect(context.Background(), m, "/repo")
	require.NoError(t, err)
	require.Equal(t, ModeGlobal, tool.Mode())
	require.Len(t, m.OutputCalls, 1, "local probe must not run when the global one responds")
	require.Equal(t, "/repo", m.OutputCalls[0].Dir)

	require.Equal(t,
		[]string{"dotnet", "ef", "migrations", "add", "Init"},
		tool.Command("migrations", "add", "Init"),
	)
}

func TestDetectLocal(t *testing.T) {
	m := executor.NewMock()
	m.OutputFunc = func(call executor.Call) (string, error) {
		if strings.Contains(call.Line(), "tool run") {
			return "9.0.0", nil
		}
		return "", errors.New("not installed")
	}

	tool, err := Detect(context.Background(), m, "/repo")
	require.NoError(t, err)
	require.Equal(t, ModeLocal, tool.Mode())
	require.Len(t, m.OutputCalls, 2)

	require.Equal(t,
		[]string{"dotnet", "tool", "run", "dotnet-ef", "migrations", "script", "A", "B"},
		tool.Command("migrations", "script", "A", "B"),
	)
}

func TestDetectNotFound(t *testing.T) {
	m := executor.NewMock()
	m.OutputFunc = func(call executor.Call) (string, error) {
		return "", errors.New("not installed")
	}

	_, err := Detect(context.Background(), m, "/repo")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Contains(t, err.Error(), "dotnet tool install", "the error must tell the operator how to install")
}

func TestAddMigrationArgs(t *testing.T) {
	require.Equal(t,
		[]string{"migrations", "add", "Init", "--project", "Shop.Data", "--startup-project", "Shop.Api"},
		AddMigrationArgs("Init", "Shop.Data", "Shop.Api", ""),
	)

	require.Equal(t,
		[]string{"migrations", "add", "Init", "--project", "Shop.Data", "--startup-project", "Shop.Api", "--context", "ShopContext"},
		AddMigrationArgs("Init", "Shop.Data", "Shop.Api", "ShopContext"),
	)
}

func TestScriptArgs(t *testing.T) {
	base := []string{
		"migrations", "script", "A", "B",
		"--project", "Shop.Data",
		"--startup-project", "Shop.Api",
		"--output", "scripts/123.sql",
	}

	require.Equal(t, base, ScriptArgs("A", "B", "Shop.Data", "Shop.Api", "scripts/123.sql", "", false))

	require.Equal(t,
		append(append([]string{}, base...), "--context", "ShopContext", "--idempotent"),
		ScriptArgs("A", "B", "Shop.Data", "Shop.Api", "scripts/123.sql", "ShopContext", true),
	)
}
