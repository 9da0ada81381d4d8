package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/config"
	"github.com/abhisek/glossmatch/internal/glossary"
	"github.com/abhisek/glossmatch/internal/llm"
	"github.com/abhisek/glossmatch/internal/logging"
	"github.com/abhisek/glossmatch/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "glossmatch",
	Short: "Terminal glossary matching quiz",
	Long: "glossmatch — match glossary terms to their definitions in the terminal.\n" +
		"Ships with an ISO 13485 quiz; load your own catalog or have a language model write one.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides GLOSSMATCH_DB env var)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/glossmatch/config.yaml)")
	pf.String("catalog", "", "Catalog file (.yaml or .json) to play instead of the bundled ISO 13485 quiz")
	pf.Uint64("seed", 0, "Seed for shuffling (0 = random)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads .env, the config file and the environment, then lets
// flags override the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return config.Config{}, err
	}
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.Catalog = p
	}
	return cfg, nil
}

// newLogger builds the command logger. Interactive commands log to a file
// since the terminal belongs to the TUI.
func newLogger(cmd *cobra.Command, cfg config.Config, interactive bool) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := logging.Options{Level: cfg.Log.Level, Verbose: verbose}
	if interactive {
		opts.File = cfg.Log.File
		if opts.File == "" {
			opts.File = config.DefaultLogPath()
		}
	}
	return logging.New(opts)
}

// resolveDBPath returns the database path from --db or the config (which
// already folds in GLOSSMATCH_DB), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadCatalog returns the configured catalog, or the bundled one.
func loadCatalog(cfg config.Config) (*glossary.File, error) {
	if cfg.Catalog == "" {
		return glossary.Default(), nil
	}
	f, err := glossary.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return f, nil
}

// newProvider builds the LLM provider from the config, falling back to
// whichever standard API key is present.
func newProvider(ctx context.Context, cfg config.Config, repo store.EventRepo, log *zap.Logger) (llm.Provider, error) {
	return llm.NewProviderOrDiscover(ctx, cfg.LLM, repo, log)
}
