package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--date=2024-05-01"}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	_ = closeBoard(nil, nil)
	require.NoError(t, err, out.String())

	return out.String()
}

func TestBoardCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BOARD_LOCAL_PATH", filepath.Join(dir, "board.db"))
	t.Setenv("BOARD_REMOTE_BASE_URL", "")

	out := execute(t, "staff", "add", "Perez Juan", "--id", "900", "--role", "chofer")
	assert.Contains(t, out, "900 PEREZ JUAN")

	out = execute(t, "staff", "list")
	assert.Contains(t, out, "PEREZ JUAN")

	out = execute(t, "route", "new", "tarde", "Barrio Norte")
	assert.Contains(t, out, "ruta creada")

	out = execute(t, "day", "show", "TARDE")
	assert.Contains(t, out, "Barrio Norte")

	out = execute(t, "day", "summary")
	assert.Contains(t, out, "MAÑANA")
	assert.Contains(t, out, "NOCHE")

	snapshot := filepath.Join(dir, "snapshot.json")
	execute(t, "export", snapshot)

	out = execute(t, "import", snapshot)
	assert.Contains(t, out, "importado")

	execute(t, "xlsx", filepath.Join(dir, "parte.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "parte.xlsx"))
}

func TestParseShift(t *testing.T) {
	shift, err := parseShift("manana")
	require.NoError(t, err)
	assert.Equal(t, "MAÑANA", string(shift))

	_, err = parseShift("madrugada")
	assert.Error(t, err)
}
