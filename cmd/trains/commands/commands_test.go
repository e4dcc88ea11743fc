package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarianaMaksimiv/ACME-Train/cmd/trains/commands"
	"github.com/MarianaMaksimiv/ACME-Train/internal/domain"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cli := commands.New()
	cli.SetArgs(args)
	cli.SetOutput(&stdout, &stderr)
	err := cli.Execute(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCommands_Distance(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"distance", "A-B-C"}, want: "9\n"},
		{args: []string{"distance", "A", "E", "B", "C", "D"}, want: "22\n"},
		{args: []string{"distance", "A,D,C"}, want: "13\n"},
		{args: []string{"distance", "A-E-D"}, want: "NO SUCH ROUTE\n"},
	}
	for _, tt := range tests {
		out, _, err := execute(t, tt.args...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out)
	}
}

func TestCommands_Enumerations(t *testing.T) {
	out, _, err := execute(t, "max-stops", "C", "C", "3")
	require.NoError(t, err)
	assert.Equal(t, "C → D → C\nC → E → B → C\n2 routes\n", out)

	out, _, err = execute(t, "exact-stops", "A", "C", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "3 routes\n")

	out, _, err = execute(t, "within-distance", "C", "C", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "C → D → C (16)\n")
	assert.Contains(t, out, "7 routes\n")
}

func TestCommands_Shortest(t *testing.T) {
	out, _, err := execute(t, "shortest", "A", "C")
	require.NoError(t, err)
	assert.Equal(t, "9 via A → B → C\n", out)

	out, _, err = execute(t, "shortest", "C", "A")
	require.NoError(t, err)
	assert.Equal(t, "NO SUCH ROUTE\n", out)
}

func TestCommands_InvalidInput(t *testing.T) {
	_, _, err := execute(t, "max-stops", "C", "C", "three")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "within-distance", "C", "C", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = execute(t, "shortest", "A")
	assert.Error(t, err)
}

func TestCommands_Budget(t *testing.T) {
	_, _, err := execute(t, "--budget", "2", "within-distance", "C", "C", "30")
	assert.ErrorIs(t, err, domain.ErrSearchBudgetExceeded)
}

func TestCommands_Scenarios(t *testing.T) {
	out, _, err := execute(t, "scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "Output #1: 9 [ok]")
	assert.Contains(t, out, "Output #5: NO SUCH ROUTE [ok]")
	assert.NotContains(t, out, "FAIL")
}

func TestCommands_NetworkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte("routes:\n  - {from: X, to: Y, distance: 4}\n  - {from: Y, to: X, distance: 6}\n"), 0o644))

	out, _, err := execute(t, "--network", path, "shortest", "X", "X")
	require.NoError(t, err)
	assert.Equal(t, "10 via X → Y → X\n", out)

	out, _, err = execute(t, "--network", path, "network")
	require.NoError(t, err)
	assert.Contains(t, out, "towns: X Y\n")
	assert.Contains(t, out, "XY4\n")

	_, stderr, err := execute(t, "--network", path, "scenarios")
	assert.ErrorIs(t, err, commands.ErrScenariosFailed)
	assert.Contains(t, stderr, "9 of 10 scenarios failed")
}

func TestCommands_MissingNetworkFile(t *testing.T) {
	_, _, err := execute(t, "--network", filepath.Join(t.TempDir(), "missing.yaml"), "network")
	assert.Error(t, err)
}
