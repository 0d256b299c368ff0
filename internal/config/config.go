// Package config resolves runtime settings from LEARNPATH_* environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/learnpath/internal/gaps"
	"github.com/abhisek/learnpath/internal/llm"
	"github.com/abhisek/learnpath/internal/practice"
)

// Config is the full runtime configuration.
type Config struct {
	// DBPath is empty when the store's default location should be used.
	DBPath      string
	LogMode     string
	HTTPAddr    string
	CORSOrigins []string
	CatalogPath string

	Redis    RedisConfig
	Practice practice.Config
	Gaps     gaps.Thresholds
	LLM      llm.Config
}

// RedisConfig selects the Redis-backed KV and lock. Addr empty disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogMode:     "dev",
		HTTPAddr:    ":8080",
		CORSOrigins: []string{"http://localhost:3000"},
		Practice:    practice.DefaultConfig(),
		Gaps:        gaps.DefaultThresholds(),
		LLM:         llm.DefaultConfig(),
	}
}

// FromEnv loads .env (when present) and overlays LEARNPATH_* variables on
// Default. Malformed numbers are reported rather than ignored.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	cfg.LLM = llm.ConfigFromEnv()
	if _, ok := os.LookupEnv("LEARNPATH_LLM_PROVIDER"); !ok {
		if discovered, found := llm.DiscoverConfig(); found {
			cfg.LLM = discovered
		}
	}

	p := parser{}
	p.str("LEARNPATH_DB", &cfg.DBPath)
	p.str("LEARNPATH_LOG_MODE", &cfg.LogMode)
	p.str("LEARNPATH_HTTP_ADDR", &cfg.HTTPAddr)
	p.str("LEARNPATH_CATALOG", &cfg.CatalogPath)
	p.list("LEARNPATH_CORS_ORIGINS", &cfg.CORSOrigins)

	p.str("LEARNPATH_REDIS_ADDR", &cfg.Redis.Addr)
	p.str("LEARNPATH_REDIS_PASSWORD", &cfg.Redis.Password)
	p.int("LEARNPATH_REDIS_DB", &cfg.Redis.DB)

	p.int("LEARNPATH_TARGET_CONCEPTS", &cfg.Practice.TargetConceptCount)
	p.int("LEARNPATH_QUESTIONS_PER_CONCEPT", &cfg.Practice.QuestionsPerConcept)
	p.float("LEARNPATH_DIFFICULTY_BUFFER", &cfg.Practice.DifficultyBuffer)
	p.bool("LEARNPATH_SPACED_REPETITION", &cfg.Practice.IncludeSpacedRepetition)

	p.float("LEARNPATH_GAP_CRITICAL_BELOW", &cfg.Gaps.CriticalBelow)
	p.float("LEARNPATH_GAP_HIGH_BELOW", &cfg.Gaps.HighBelow)
	p.float("LEARNPATH_GAP_MEDIUM_BELOW", &cfg.Gaps.MediumBelow)
	p.float("LEARNPATH_GAP_MASTERED_AT", &cfg.Gaps.MasteredAt)
	p.float("LEARNPATH_GAP_BUFFER", &cfg.Gaps.DifficultyBuffer)

	if len(p.errs) > 0 {
		return Config{}, errors.Join(p.errs...)
	}
	return cfg, cfg.Validate()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if err := c.Gaps.Validate(); err != nil {
		return err
	}
	if c.Practice.TargetConceptCount < 1 || c.Practice.QuestionsPerConcept < 1 {
		return fmt.Errorf("practice needs at least one concept and one question per concept, got %d and %d",
			c.Practice.TargetConceptCount, c.Practice.QuestionsPerConcept)
	}
	if c.Practice.DifficultyBuffer < 0 {
		return fmt.Errorf("difficulty buffer must not be negative, got %v", c.Practice.DifficultyBuffer)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis db must not be negative, got %d", c.Redis.DB)
	}
	return c.LLM.Validate()
}

// parser collects every malformed variable instead of stopping at the first.
type parser struct {
	errs []error
}

func (p *parser) str(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok {
		*dst = strings.TrimSpace(v)
	}
}

func (p *parser) list(name string, dst *[]string) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*dst = out
}

func (p *parser) int(name string, dst *int) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = n
}

func (p *parser) float(name string, dst *float64) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = f
}

func (p *parser) bool(name string, dst *bool) {
	v, ok := lookup(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", name, err))
		return
	}
	*dst = b
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
