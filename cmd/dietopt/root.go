package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dietopt",
	Short: "dietopt is a linear-programming diet optimizer",
	Long:  `dietopt finds the cheapest combination of foods that satisfies a set of per-nutrient acceptable ranges, or reports that no such combination exists.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (optional; env vars DIETOPT_* always apply)")
}
