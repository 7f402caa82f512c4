package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mealplanr/dietopt"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dietopt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dietopt version %s\n", strings.TrimSpace(dietopt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
