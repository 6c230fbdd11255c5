package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vincowealth/internal/config"
	"vincowealth/internal/database"
	"vincowealth/internal/database/migrations"
	"vincowealth/internal/migrate"
)

// newRootCmd creates the maintenance CLI. The schema only moves forward, so
// there is no down command.
func newRootCmd(out io.Writer) *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Inspect and upgrade a Vinco Wealth store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Store file (defaults to VINCO_DB_PATH)")

	// openRunner opens the store named by --db or the config and pairs it
	// with the shipped migrations. Opening creates a missing file, so
	// inspect-only commands pass mustExist to leave a mistyped path alone.
	openRunner := func(mustExist bool) (*database.Manager, *migrate.Runner, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		storeCfg := database.NewConfig(cfg)
		if dbPath != "" {
			storeCfg.Path = dbPath
		}

		if mustExist {
			if _, err := os.Stat(storeCfg.Path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, nil, fmt.Errorf("store %s does not exist; run up to create it", storeCfg.Path)
				}
				return nil, nil, fmt.Errorf("failed to stat store: %w", err)
			}
		}

		reg, err := migrations.Registry()
		if err != nil {
			return nil, nil, err
		}
		store, err := database.Open(storeCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, migrate.NewRunner(store, reg), nil
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration, creating the store if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, runner, err := openRunner(false)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			if len(report.Applied) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date at version %d\n", report.To)
				return nil
			}
			for _, m := range report.Applied {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d %s\n", m.Version, m.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated from version %d to %d\n", report.From, report.To)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the store's schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, runner, err := openRunner(true)
			if err != nil {
				return err
			}
			defer store.Close()

			status, err := runner.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %d, Latest: %d\n", status.Current, status.Latest)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, runner, err := openRunner(true)
			if err != nil {
				return err
			}
			defer store.Close()

			status, err := runner.Status(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE\tDESCRIPTION\tAPPLIED AT")
			for _, a := range status.Applied {
				fmt.Fprintf(w, "%d\tapplied\t%s\t%s\n", a.Version, a.Description, a.AppliedAt.Format("2006-01-02 15:04:05"))
			}
			for _, m := range status.Pending {
				fmt.Fprintf(w, "%d\tpending\t%s\t-\n", m.Version, m.Description)
			}
			return w.Flush()
		},
	})

	return rootCmd
}
