package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/espalier/internal/cli"
	"github.com/aretw0/espalier/internal/logging"
	httpAdapter "github.com/aretw0/espalier/pkg/adapters/http"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts the Espalier engine in server mode, exposing tokenization and stepping sessions over a JSON API, with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		patternsPath, _ := cmd.Flags().GetString("patterns")
		level, _ := cmd.Flags().GetString("log-level")
		port, _ := cmd.Flags().GetString("port")
		storeKind, _ := cmd.Flags().GetString("store")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")

		logger := logging.New(logging.ParseLevel(level))

		source, err := cli.ResolveSource(patternsPath)
		if err != nil {
			fmt.Printf("Error loading patterns: %v\n", err)
			os.Exit(1)
		}

		store, err := cli.ResolveStore(storeKind, redisAddr)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}

		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		server, err := httpAdapter.NewServer(source, store, metrics.Hooks(), httpAdapter.WithLogger(logger))
		if err != nil {
			fmt.Printf("Error initializing server: %v\n", err)
			os.Exit(1)
		}

		r := chi.NewRouter()
		r.Mount("/", server.Handler())
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: r,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting espalier server", "addr", srv.Addr, "store", storeKind)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			logger.Info("espalier server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("store", "memory", "Session store backend (memory, redis)")
	serveCmd.Flags().String("redis-addr", "", "Redis address (host:port) for the redis store")
}
