package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/bloglist/internal/auth"
)

func newTokenCmd(state *cliState) *cobra.Command {
	var id, username string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := auth.NewTokenCodec(state.cfg.Auth.JWTSecret, state.cfg.Auth.TokenTTL())
			token, exp, err := codec.Issue(id, username)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			state.logger.Debug("token issued", zap.String("user_id", id), zap.Time("expires_at", exp))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "user id to embed")
	cmd.Flags().StringVar(&username, "username", "", "username to embed")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
