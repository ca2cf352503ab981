package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/internal/server"
	"github.com/goliatone/go-cardioform/pkg/render"
	"github.com/goliatone/go-cardioform/pkg/renderers/jsonview"
	"github.com/goliatone/go-cardioform/pkg/renderers/tui"
	"github.com/goliatone/go-cardioform/pkg/renderers/vanilla"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form as a web page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if listen != "" {
				cfg.Server.Listen = listen
			}
			logger := root.logger

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}

			var htmlOptions []vanilla.Option
			if cfg.Form.TemplatesDir != "" {
				htmlOptions = append(htmlOptions, vanilla.WithTemplatesDir(cfg.Form.TemplatesDir))
			}
			html, err := vanilla.New(htmlOptions...)
			if err != nil {
				return err
			}
			registry := render.NewRegistry()
			registry.MustRegister(html)
			registry.MustRegister(tui.New())
			registry.MustRegister(jsonview.New())

			srv, err := server.New(a.fields, a.predictor, registry,
				server.WithLogger(logger.Named("server")),
				server.WithTheme(a.theme),
				server.WithTitle(cfg.Form.Title),
				server.WithAssets(vanilla.AssetsFS()),
			)
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              cfg.Server.Listen,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening",
					zap.String("addr", cfg.Server.Listen),
					zap.String("api", a.predictor.Endpoint()),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "override the configured listen address")
	return cmd
}
