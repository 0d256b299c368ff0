package cmd

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
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), buf.String())
	return buf.String()
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("LEARNPATH_LLM_PROVIDER", "")
	t.Setenv("LEARNPATH_REDIS_ADDR", "")
	t.Setenv("LEARNPATH_CATALOG", "")
	return filepath.Join(t.TempDir(), "learnpath.db")
}

func TestScoreMastery(t *testing.T) {
	out := execute(t, "score", "mastery",
		"--assessment", "90", "--practice", "80", "--ai-help", "50", "--consistency", "60")
	assert.Contains(t, out, "Mastery: 80 (strong)")
}

func TestScoreEngagement(t *testing.T) {
	out := execute(t, "score", "engagement",
		"--login", "80", "--content", "80", "--consistency", "100")
	assert.Contains(t, out, "Engagement: 50 (medium, Moderately Engaged)")
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "learnpath ")
	assert.Contains(t, out, "go:       go")

	out = execute(t, "version", "--short")
	assert.NotContains(t, out, "go:")
}

func TestCatalogList(t *testing.T) {
	isolateEnv(t)
	out := execute(t, "catalog", "list")
	assert.Contains(t, out, "fractions")
	assert.Contains(t, out, "linear-equations*")
}

func TestLearnerFlow(t *testing.T) {
	db := isolateEnv(t)

	out := execute(t, "--db", db, "score", "mastery", "--student", "s1", "--concept", "fractions",
		"--assessment", "20", "--practice", "0", "--ai-help", "0", "--consistency", "0")
	assert.Contains(t, out, "Mastery: 10 (emerging)")
	assert.Contains(t, out, "Recorded for s1 on Fractions")

	out = execute(t, "--db", db, "gaps", "--student", "s1")
	assert.Contains(t, out, "fractions")
	assert.Contains(t, out, "critical")

	out = execute(t, "--db", db, "practice", "start", "--student", "s1")
	assert.Contains(t, out, "Session ")
	assert.Contains(t, out, "Fractions")

	out = execute(t, "--db", db, "profile", "update", "--student", "s1",
		"--mode", "visual", "--mastery-gain", "100", "--engagement-gain", "100")
	assert.Contains(t, out, "Learning style for s1: Visual")

	out = execute(t, "--db", db, "profile", "show", "--student", "s1", "--history", "5")
	assert.Contains(t, out, "Learning style for s1: Visual")
	assert.Contains(t, out, "visual")
}
