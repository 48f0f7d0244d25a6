package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dukerupert/shoplisl/internal/config"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/logging"
	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/dukerupert/shoplisl/internal/shopping"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	envFile string
	dbPath  string
	tenant  string
	verbose bool
	cfg     config.Config
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shoplislctl",
	Short: "Operator tasks for the shoplisl shopping list",
	Long: `shoplislctl works directly on a shoplisl database.

Example usage:
  shoplislctl import-articles catalog.yaml   # Add articles from a YAML file
  shoplislctl seed-list einkauf.yaml         # Build a list from free-text entries
  shoplislctl match "Milch 2x"               # Show how an entry resolves
  shoplislctl filter "#f44336"               # Solve a CSS icon filter
  shoplislctl departments --lang en          # Print the department table`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.ErrOrStderr())
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to read before the environment")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default SHOPLISL_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "tenant id (default SHOPLISL_TENANT)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initConfig(stderr io.Writer) error {
	var err error
	cfg, err = config.Load(envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if tenant != "" {
		cfg.Tenant = tenant
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger = logging.New(stderr, level, cfg.LogFormat)
	logger.Debug("configuration loaded", "db", cfg.DBPath, "tenant", cfg.Tenant)
	return nil
}

// openService opens the configured database and returns the shopping
// service on it. The caller must call the returned close func.
func openService() (*shopping.Service, func(), error) {
	aliases, err := matcher.LoadAliasesFile(cfg.AliasesPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	store := docstore.NewSQLStore(db, logger)
	svc := shopping.NewService(store, cfg.Tenant, matcher.New(aliases), logger, nil)
	return svc, func() { db.Close() }, nil
}

// readYAML decodes the YAML file at path ("-" for stdin) into v.
func readYAML(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := yaml.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
