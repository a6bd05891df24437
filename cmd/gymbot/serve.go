// ABOUTME: CLI command for running the reference record store.
// ABOUTME: Serves the REST API over SQLite and shuts down cleanly on SIGINT/SIGTERM.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harperreed/gymbot/internal/server"
	"github.com/harperreed/gymbot/internal/storage"
	"github.com/spf13/cobra"
)

var (
	serveListen string
	serveSeed   string
	serveEnv    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference record store",
	Long: `Run a local record store that the other commands talk to.

Records are kept in SQLite at $XDG_DATA_HOME/gymbot/gymbot.db (override
with data_dir in the config file or GYMBOT_DATA_DIR).

ENDPOINTS (under /api):

  GET    /health/check              liveness
  GET    /health/info               application info
  GET    /exercises                 all records
  GET    /exercises/grouped         records by category
  GET    /exercises/grouped/week    records by week
  GET    /exercises/week/{n}        records of one week
  GET    /exercises/category/{c}    records of one category
  GET    /exercises/{id}            one record
  POST   /exercises                 create
  PUT    /exercises/{id}            update
  DELETE /exercises/{id}            delete

EXAMPLES:

  gymbot serve
  gymbot serve --listen :9090
  gymbot serve --seed exercises.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Listen = serveListen
		}

		repo, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer func() { _ = repo.Close() }()

		if serveSeed != "" {
			records, err := storage.ReadSeedFile(serveSeed)
			if err != nil {
				return err
			}
			summary, err := storage.Seed(cmd.Context(), repo, records)
			if err != nil {
				return err
			}
			logger.Info("seeded records", "created", summary.Created, "skipped", summary.Skipped)
		}

		srv := server.New(repo, logger, server.Info{Version: version, Environment: serveEnv})

		addr := cfg.GetListen()
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		logger.Info("server starting", "addr", listener.Addr().String())

		httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
		errCh := make(chan error, 1)
		go func() {
			if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("shutting down", "signal", sig)
		case <-cmd.Context().Done():
			logger.Info("shutting down")
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "address to listen on (default localhost:8080)")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "JSON file of records to load at startup")
	serveCmd.Flags().StringVar(&serveEnv, "env", "development", "environment reported by /health/info")
	rootCmd.AddCommand(serveCmd)
}
