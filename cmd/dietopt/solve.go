package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/mealplanr/dietopt"
	"github.com/mealplanr/dietopt/internal/config"
	"github.com/mealplanr/dietopt/internal/dto"
	"github.com/mealplanr/dietopt/internal/logging"
	"github.com/mealplanr/dietopt/internal/presentation/tui"
	"github.com/mealplanr/dietopt/pkg/domain"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

var solveCmd = &cobra.Command{
	Use:   "solve <request-file>",
	Short: "Solve a diet problem from a JSON or YAML request file",
	Long: `Reads an optimization request (foods + constraints) from a file and prints
the cheapest satisfying combination. Renders a table on a terminal, JSON otherwise.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSolve(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Solve failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().Bool("json", false, "Always print JSON, even on a terminal")
}

func runSolve(cmd *cobra.Command, path string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	req, err := readRequest(path)
	if err != nil {
		return err
	}

	opt, err := dietopt.New(
		dietopt.WithConfig(cfg),
		dietopt.WithLogger(logging.New(logging.ParseLevel(cfg.LogLevel))),
	)
	if err != nil {
		return err
	}

	foods, cons, err := dto.Decode(req, opt.Schema())
	if err != nil {
		return err
	}

	out, err := opt.Optimize(context.Background(), foods, cons)
	if err != nil {
		return err
	}

	forceJSON, _ := cmd.Flags().GetBool("json")
	if forceJSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromOutcome(out))
	}
	return renderOutcome(out, opt.Schema())
}

func readRequest(path string) (dto.Request, error) {
	var req dto.Request
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return req, nil
}

func renderOutcome(out domain.Outcome, schema *nutrient.Schema) error {
	render := tui.NewRenderer()
	text, err := render(tui.OutcomeMarkdown(out, schema))
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}
