package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/nutribalance/internal/app"
	"github.com/Lixing-Zhang/nutribalance/internal/seed"
	"github.com/Lixing-Zhang/nutribalance/internal/service"
	"github.com/Lixing-Zhang/nutribalance/internal/storage"
	"github.com/Lixing-Zhang/nutribalance/pkg/logger"
)

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	dbPath   string
	seedFile string
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "nutrictl",
		Short:         "NutriBalance command line tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite snapshot database (default: in-memory state)")
	cmd.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "YAML seed file replacing the built-in defaults")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalyzeCommand(opts),
		newExportCommand(opts),
		newSeedCommand(opts),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel)
}

func (o *rootOptions) seedData() (seed.Data, error) {
	if o.seedFile == "" {
		return seed.Defaults(), nil
	}
	return seed.Load(o.seedFile)
}

// openWorkspace restores state from --db when given, otherwise from seed
// data. The returned close func is never nil.
func (o *rootOptions) openWorkspace(ctx context.Context, log *slog.Logger) (*service.Workspace, func() error, error) {
	data, err := o.seedData()
	if err != nil {
		return nil, nil, err
	}

	var (
		loader    app.SnapshotLoader
		persister service.Persister
		closeFn   = func() error { return nil }
	)
	if o.dbPath != "" {
		store, err := storage.Open(ctx, o.dbPath)
		if err != nil {
			return nil, nil, err
		}
		loader, persister, closeFn = store, store, store.Close
	}

	state, err := app.RestoreState(ctx, loader, data, log)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	ws := service.NewWorkspace(state.Catalog, state.Recommendations, state.Ledger, persister, log)
	return ws, closeFn, nil
}
