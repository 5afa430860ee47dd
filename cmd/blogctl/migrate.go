package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/persistence"
)

func newMigrateCmd(state *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded Postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if state.cfg.Store.Driver != config.StorePostgres {
				return fmt.Errorf("migrate requires STORE_DRIVER=postgres, got %q", state.cfg.Store.Driver)
			}

			pg, err := persistence.NewPostgres(cmd.Context(), state.cfg.Postgres, state.logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			if err := persistence.RunMigrations(cmd.Context(), pg.Pool, state.logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
