package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-taghelpers/internal/sample"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sample application over HTTP",
	Long: `Serve renders the sample pages on every request.

Examples:
  taghelpers serve
  taghelpers serve --addr :9000 --path-base /app
  taghelpers serve --templates ./internal/sample/templates --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", defaultAddr, "Listen address")
	serveCmd.Flags().Bool("watch", false, "Reload templates when files under --templates change")
	addServerFlags(serveCmd.Flags())
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}
	if err := cfg.applyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	component, err := sample.New(cfg.sampleOptions()...)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		go func() {
			err := component.Watch(ctx, func(name string) {
				log.Printf("template changed: %s", name)
			})
			if err != nil {
				log.Printf("watch stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving %s on %s", pattern, cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Printf("server stopped")
	return nil
}
