package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/practice"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, practice.DefaultConfig(), cfg.Practice)
	assert.Equal(t, gaps.DefaultThresholds(), cfg.Gaps)
	assert.False(t, cfg.LLM.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEARNPATH_LLM_PROVIDER", "")
	t.Setenv("LEARNPATH_DB", "/tmp/lp.db")
	t.Setenv("LEARNPATH_HTTP_ADDR", ":9090")
	t.Setenv("LEARNPATH_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("LEARNPATH_REDIS_ADDR", "localhost:6379")
	t.Setenv("LEARNPATH_REDIS_DB", "2")
	t.Setenv("LEARNPATH_TARGET_CONCEPTS", "2")
	t.Setenv("LEARNPATH_QUESTIONS_PER_CONCEPT", "4")
	t.Setenv("LEARNPATH_SPACED_REPETITION", "false")
	t.Setenv("LEARNPATH_GAP_MASTERED_AT", "85")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/lp.db", cfg.DBPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 2, cfg.Practice.TargetConceptCount)
	assert.Equal(t, 4, cfg.Practice.QuestionsPerConcept)
	assert.False(t, cfg.Practice.IncludeSpacedRepetition)
	assert.Equal(t, 85.0, cfg.Gaps.MasteredAt)
}

func TestFromEnvReportsMalformedValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEARNPATH_LLM_PROVIDER", "")
	t.Setenv("LEARNPATH_REDIS_DB", "two")
	t.Setenv("LEARNPATH_GAP_BUFFER", "lots")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEARNPATH_REDIS_DB")
	assert.Contains(t, err.Error(), "LEARNPATH_GAP_BUFFER")
}

func TestFromEnvRejectsUnorderedThresholds(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEARNPATH_LLM_PROVIDER", "")
	t.Setenv("LEARNPATH_GAP_CRITICAL_BELOW", "70")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidateRejectsEmptyPractice(t *testing.T) {
	cfg := Default()
	cfg.Practice.QuestionsPerConcept = 0
	assert.Error(t, cfg.Validate())
}
