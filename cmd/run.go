package cmd

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/llm"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/personalize"
	"github.com/abhisek/learnpath/internal/practice"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/store/redisstore"
)

const redisPrefix = "learnpath:"

// env is everything a command needs to talk to the personalization service.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	catalog *catalog.Catalog
	svc     *personalize.Service

	closers []func()
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// envOptions tweaks openEnv for long-running commands.
type envOptions struct {
	// Registerer receives the service metrics. Nil keeps them unregistered.
	Registerer prometheus.Registerer
	// ForceLogs builds the configured logger even without --verbose.
	ForceLogs bool
}

// openEnv loads configuration, opens the store and builds the service.
// Redis replaces the SQLite KV and the in-process lock when configured, and
// an LLM provider writes practice questions when one is available.
func openEnv(cmd *cobra.Command, opts envOptions) (*env, error) {
	ctx := cmd.Context()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	e := &env{cfg: cfg, log: logger.Nop()}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || opts.ForceLogs {
		log, err := logger.New(cfg.LogMode)
		if err != nil {
			return nil, err
		}
		e.log = log
		e.closers = append(e.closers, log.Sync)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, func() { st.Close() })

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	e.catalog = cat

	repos := personalize.ReposFrom(st)
	svcOpts := []personalize.Option{
		personalize.WithLogger(e.log),
		personalize.WithMetrics(personalize.NewMetrics(opts.Registerer)),
		personalize.WithThresholds(cfg.Gaps),
		personalize.WithPracticeConfig(cfg.Practice),
	}

	if cfg.Redis.Addr != "" {
		client, err := redisstore.NewClient(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			e.Close()
			return nil, err
		}
		e.closers = append(e.closers, func() { client.Close() })
		repos.KV = redisstore.NewKV(client, redisPrefix)
		svcOpts = append(svcOpts, personalize.WithLocker(redisstore.NewLocker(client, redisPrefix, 0)))
		e.log.Info("using redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	}

	var source practice.Source = practice.NewBankSource(cat.Templates())
	if cfg.LLM.Enabled() {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), e.log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Practice questions will come from the question bank.")
		} else {
			source = practice.NewLLMSource(provider, practice.DefaultLLMConfig(), source, e.log)
			e.log.Info("practice questions generated by llm", "provider", cfg.LLM.Provider, "model", provider.ModelID())
		}
	}

	e.svc = personalize.New(repos, cat, practice.NewGenerator(source), svcOpts...)
	return e, nil
}
