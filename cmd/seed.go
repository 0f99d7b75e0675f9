package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"econ-pulse/seed"
)

var seedJSON bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo dataset",
	Long: `Insert the demo dataset: ten countries with a year of monthly
readings, one pulse score each and ten historical events.

Seeding is not idempotent; running it twice duplicates every row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		res, err := seed.New(a.svc, a.log).Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		if seedJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Printf("%s: %d countries, %d indicators, %d pulse scores, %d events\n",
			res.Message, res.Countries, res.Indicators, res.Scores, res.Events)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(seedCmd)
}
