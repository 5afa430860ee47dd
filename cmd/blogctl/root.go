package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/config"
	"github.com/spec-kit/bloglist/internal/observability"
)

type cliState struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:   "blogctl",
		Short: "Administrative CLI for the bloglist service",
		Long: `blogctl manages the bloglist store using the same environment configuration as the API.

Example usage:
  blogctl migrate                          # Apply Postgres migrations
  blogctl useradd root --name Superuser    # Create a user (password read from --password)
  blogctl token --id <user id> --username root`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := observability.NewLogger(cfg.Logger)
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = logger
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(state),
		newUserAddCmd(state),
		newTokenCmd(state),
	)
	return root
}
