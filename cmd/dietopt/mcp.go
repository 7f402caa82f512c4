package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mealplanr/dietopt"
	mcpAdapter "github.com/mealplanr/dietopt/internal/adapters/mcp"
	"github.com/mealplanr/dietopt/internal/config"
	"github.com/mealplanr/dietopt/internal/logging"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the diet optimizer as an MCP Server.
This allows AI agents to plan diets through the optimize_diet tool.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		// Logs must go to stderr so they don't corrupt JSON-RPC on stdout.
		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		opt, err := dietopt.New(
			dietopt.WithConfig(cfg),
			dietopt.WithLogger(logger),
		)
		if err != nil {
			log.Fatalf("Error initializing optimizer: %v", err)
		}

		srv := mcpAdapter.NewServer(opt, dietopt.Version)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			logger.Info("Starting dietopt MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting dietopt MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					logger.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
