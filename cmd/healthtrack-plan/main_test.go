package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/healthtrack/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legDay = "## Day 1: Legs\nFocus: Quadriceps\n**Leg Press**\nSets: 4\nReps: 10\n**Wall Sit**\n**Leg Press**\n"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFromStdin(t *testing.T) {
	out, err := run(t, legDay, "parse")
	require.NoError(t, err)

	var days []plan.DayPlan
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	require.Len(t, days, 1)
	assert.Equal(t, "Legs", days[0].Title)
	assert.Len(t, days[0].Exercises, 3)
}

func TestEnrichWithBuiltInCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.md")
	require.NoError(t, os.WriteFile(path, []byte(legDay), 0o644))

	out, err := run(t, "", "enrich", "--catalog-url", "", "-e", "gym", path)
	require.NoError(t, err)

	var days []plan.DayPlan
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	assert.Equal(t, []string{"Leg press machine"}, days[0].Exercises[0].Equipment)
	assert.Equal(t, 4, days[0].Exercises[0].Sets)
}

func TestEnrichRejectsUnknownEnvironment(t *testing.T) {
	_, err := run(t, legDay, "enrich", "-e", "park")
	assert.Error(t, err)
}

func TestNamesDeduplicates(t *testing.T) {
	out, err := run(t, legDay, "names", "-")
	require.NoError(t, err)
	assert.Equal(t, "Leg Press\nWall Sit\n", out)
}

func TestUploadRequiresServer(t *testing.T) {
	t.Setenv("HEALTHTRACK_SERVER_URL", "")
	t.Setenv("HEALTHTRACK_API_KEY", "")
	_, err := run(t, "", "upload", "--state-dir", t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--server")
}

func TestUploadDryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gym.md"), []byte(legDay), 0o644))
	_, err := run(t, "", "upload", "--dry-run", "--state-dir", t.TempDir(), dir)
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "healthtrack-plan version dev")
}
