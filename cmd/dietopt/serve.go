package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mealplanr/dietopt"
	httpAdapter "github.com/mealplanr/dietopt/internal/adapters/http"
	"github.com/mealplanr/dietopt/internal/config"
	"github.com/mealplanr/dietopt/internal/logging"
	"github.com/mealplanr/dietopt/internal/presentation/tui"
	"github.com/mealplanr/dietopt/pkg/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Starts the diet optimizer in stateless server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		// Prometheus metrics, fed through the engine's lifecycle hooks.
		optimizations := prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dietopt_optimizations_total",
				Help: "Total number of optimization requests by outcome status",
			},
			[]string{"status"},
		)
		solveDuration := prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "dietopt_solve_duration_seconds",
				Help: "Duration of optimization requests",
			},
		)
		prometheus.MustRegister(optimizations, solveDuration)

		hooks := domain.LifecycleHooks{
			OnOptimizeEnd: func(ctx context.Context, e *domain.OptimizeEvent) {
				optimizations.WithLabelValues(string(e.Status)).Inc()
				solveDuration.Observe(e.Duration.Seconds())
			},
		}

		opt, err := dietopt.New(
			dietopt.WithConfig(cfg),
			dietopt.WithLogger(logger),
			dietopt.WithLifecycleHooks(hooks),
		)
		if err != nil {
			fmt.Printf("Error initializing optimizer: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(opt,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(promhttp.Handler()),
		)

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner()
			fmt.Printf("Starting Diet Optimizer Server on %s\n", srv.Addr)
			fmt.Printf("Swagger UI at http://localhost:%d/swagger\n", cfg.Port)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Diet Optimizer Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
}
