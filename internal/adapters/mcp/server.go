// Package mcp exposes the optimization engine as an MCP server, so agent
// hosts can plan diets through the optimize_diet tool.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/mealplanr/dietopt/internal/dto"
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/ports"
)

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    ports.Optimizer
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.Optimizer, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("dietopt-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: optimize_diet
	optimizeTool := mcp.NewTool("optimize_diet",
		mcp.WithDescription("Find the cheapest combination of food quantities that satisfies every nutritional range. "+
			"Each food needs a name, cost_per_100g and one <nutrient>_per_100g field per schema nutrient; "+
			"constraints need min_<nutrient> and max_<nutrient> for every schema nutrient (see get_nutrient_schema)."),
		mcp.WithArray("foods", mcp.Required(), mcp.Description("Available foods with per-100g nutrient yields and cost")),
		mcp.WithObject("constraints", mcp.Required(), mcp.Description("Per-nutrient min/max bounds")),
		mcp.WithOutputSchema[dto.OptimizeResponse](),
	)
	s.mcpServer.AddTool(optimizeTool, mcp.NewStructuredToolHandler(s.handleOptimize))

	// TOOL: get_nutrient_schema
	schemaTool := mcp.NewTool("get_nutrient_schema",
		mcp.WithDescription("List the tracked nutrients, their units and the request fields each one requires."),
		mcp.WithOutputSchema[dto.SchemaResponse](),
	)
	s.mcpServer.AddTool(schemaTool, mcp.NewStructuredToolHandler(s.handleSchema))
}

func (s *Server) handleOptimize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.OptimizeResponse, error) {
	var req dto.Request
	if err := mapstructure.Decode(args, &req); err != nil {
		return dto.OptimizeResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	foods, cons, err := dto.Decode(req, s.engine.Schema())
	if err != nil {
		return dto.OptimizeResponse{}, err
	}

	out, err := s.engine.Optimize(ctx, foods, cons)
	if err != nil {
		if domain.IsValidation(err) {
			return dto.OptimizeResponse{}, err
		}
		return dto.OptimizeResponse{}, fmt.Errorf("optimize failed: %w", err)
	}
	return dto.FromOutcome(out), nil
}

func (s *Server) handleSchema(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.SchemaResponse, error) {
	return dto.FromSchema(s.engine.Schema()), nil
}
