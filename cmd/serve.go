package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/wanderpost/wanderpost/internal/config"
	"github.com/wanderpost/wanderpost/internal/handlers"
)

func newServeCmd() *cobra.Command {
	var port string
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sweep pending records, then serve the approve/reject endpoints",
		Long: `Runs one batch pass over every pending record - generating and
emailing a travel page proposal for each - and then starts the HTTP server
that handles the approve and reject links embedded in those pages.

Approved pages are published under <static-dir>/approved_html/ and served
back at /static/approved_html/<record-id>.html.`,
		Example: `  # Start server on default port 8080
  wanderpost serve

  # Start server on custom port with a config file
  wanderpost serve --port 3000 --config wanderpost.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			service, err := newService(cfg)
			if err != nil {
				return err
			}

			// Startup sweep: send a first proposal for every pending record.
			// A mid-sweep failure abandons the remaining records but must not
			// keep the approval endpoints from coming up.
			if err := service.Sweep(cmd.Context()); err != nil {
				slog.Error("Startup sweep aborted", "err", err)
			}

			handler := handlers.New(service, cfg.StaticDir)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/approve", handler.HandleApprove)
			mux.HandleFunc("/reject", handler.HandleReject)
			mux.HandleFunc("/static/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Approval endpoints available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	cmd.Flags().StringVarP(&configFile, "config", "c", "wanderpost.yaml", "Path to optional YAML config file")

	return cmd
}
