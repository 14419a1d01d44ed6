package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/datawolt/datawolt/internal/api"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.ensureIndexes(ctx); err != nil {
				a.log.Warn().Err(err).Msg("index creation failed")
			}

			if port == "" {
				port = a.cfg.Port
			}

			e := api.NewRouter(api.Deps{
				Ingest:        a.ingestService(),
				Dashboard:     a.dashboardService(),
				Summary:       a.summaryService(),
				Checks:        a.dependencyChecks(),
				JWTSecret:     a.cfg.JWTSecret,
				TrustedOrigin: a.cfg.TrustedOrigin,
				Log:           a.log,
			})

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("port", port).Bool("summary_auth", a.cfg.JWTSecret != "").Msg("http server starting")
				errCh <- e.Start(":" + port)
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT)")
	return cmd
}
