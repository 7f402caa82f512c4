package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mealplanr/dietopt/internal/dto"
	"github.com/mealplanr/dietopt/pkg/nutrient"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the nutrient schema and its wire field names",
	Long: `Prints every nutrient the optimizer tracks, in constraint-row order, along
with the food and constraint field names expected in requests.`,
	Run: func(cmd *cobra.Command, args []string) {
		resp := dto.FromSchema(nutrient.Default())

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tLABEL\tUNIT\tFOOD FIELD\tCONSTRAINT FIELDS")
		for _, n := range resp.Nutrients {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s, %s\n",
				n.SchemaOrdinal, n.ID, n.Label, n.Unit, n.FoodField, n.MinField, n.MaxField)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().Bool("json", false, "Print the schema as JSON")
}
