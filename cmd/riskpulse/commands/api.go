package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomvannes/riskpulse/internal/api"
	"github.com/tomvannes/riskpulse/internal/api/handlers"
)

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health              - Health check
  GET  /api/risk/current    - Last persisted snapshot
  GET  /api/risk/signals    - Signal catalog
  GET  /api/risk/history    - Crash-probability trend
  POST /api/risk/evaluate   - Run an evaluation
  GET  /api/risk/live       - WebSocket push of completed evaluations

Example:
  go run ./cmd/riskpulse api
  go run ./cmd/riskpulse api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	hub := api.NewHub(rt.log)
	riskHandler := handlers.NewRiskHandler(
		rt.collector,
		rt.evaluator,
		rt.snapshots,
		rt.history,
		hub,
		rt.log,
	)

	router := api.NewRouter(riskHandler, hub, rt.log)
	server := api.New(rt.cfg, rt.log, router)

	go func() {
		if err := server.Start(); err != nil {
			rt.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	rt.log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	rt.log.Info("Server stopped")
	return nil
}
