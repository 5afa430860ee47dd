package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bloglist/internal/persistence"
	"github.com/spec-kit/bloglist/internal/service"
	"github.com/spec-kit/bloglist/internal/validation"
	apperrors "github.com/spec-kit/bloglist/pkg/util"
)

func newUserAddCmd(state *cliState) *cobra.Command {
	var name, password string

	cmd := &cobra.Command{
		Use:   "useradd <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := persistence.OpenStore(cmd.Context(), state.cfg, state.logger)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			users := service.NewUserService(service.UserDependencies{
				UserRepo:   store.Users,
				Validator:  validation.New(),
				BcryptCost: state.cfg.Auth.BcryptCost,
				Logger:     state.logger,
			})

			user, err := users.Create(cmd.Context(), service.UserCreateInput{
				Username: args[0],
				Name:     name,
				Password: password,
			})
			if err != nil {
				if _, body, ok := apperrors.Translate(err); ok {
					return errors.New(body.Error)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	return cmd
}
