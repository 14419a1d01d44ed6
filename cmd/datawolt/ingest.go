package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest one user's order history from a platform token",
		Long: `Fetch the trailing twelve months of delivered orders for the owner of the
token and replace their stored snapshot.

The token may also be passed through DATAWOLT_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = os.Getenv("DATAWOLT_TOKEN")
			}
			if strings.TrimSpace(token) == "" {
				return errors.New("a token is required (--token or DATAWOLT_TOKEN)")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			res, err := a.ingestService().Ingest(cmd.Context(), token)
			if err != nil {
				return err
			}

			if res.Partial != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: ingestion stopped at page %d (%v); snapshot holds %d orders\n",
					res.Partial.Page, res.Partial.Cause, res.OrderCount)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"userid":      res.UserID,
				"order_count": res.OrderCount,
				"item_count":  res.ItemCount,
				"partial":     res.Partial != nil,
			})
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "platform bearer token")
	return cmd
}
