package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/datawolt/datawolt/internal/core/service"
	"github.com/datawolt/datawolt/internal/pkg/config"
)

func operatorTokenCmd() *cobra.Command {
	var (
		username string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "operator-token",
		Short: "Mint a token for the protected summary endpoint",
		Long:  "Sign an operator token with JWT_SECRET. The token grants the admin role on /v1/summary.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}

			tok, err := service.MintOperatorToken(cfg.JWTSecret, username, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "operator", "username recorded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
