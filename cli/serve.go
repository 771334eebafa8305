package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pitchcraft/enrichment"
	"pitchcraft/publisher"
	"pitchcraft/server"
	"pitchcraft/store"
)

const shutdownTimeout = 10 * time.Second

func ServeCmd(envFile *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *envFile, "stdout")
			if err != nil {
				return err
			}
			defer a.close()

			st, err := store.Open(a.cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			pub, err := publisher.New(publisher.Config{
				OutDir:     a.cfg.PublishDir,
				WebhookURL: a.cfg.PublishWebhookURL,
			}, nil, a.logger)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Deps{
				Generator:    a.gen,
				Enricher:     a.enricher,
				CRM:          enrichment.SimulatedCRM{},
				Store:        st,
				Logger:       a.logger,
				Publisher:    pub,
				DefaultStyle: a.style,
				CORSOrigins:  a.cfg.CORSOrigins,
			})
			if err != nil {
				return err
			}

			listen := a.cfg.Addr
			if addr != "" {
				listen = addr
			}
			httpServer := &http.Server{
				Addr:              listen,
				Handler:           srv.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting web server", zap.String("addr", listen), zap.String("database", a.cfg.DatabasePath))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down web server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides PITCHCRAFT_ADDR)")
	return cmd
}
