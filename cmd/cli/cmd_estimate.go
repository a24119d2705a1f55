package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fleetdelivery/cmd"
	"fleetdelivery/internal/adapters/in/cli"
	"fleetdelivery/internal/adapters/out/offeryaml"
	"fleetdelivery/internal/core/application/usecases/commands"
)

var (
	estimateInput   string
	estimateOffers  string
	estimateVerbose bool

	estimateMaxParcels = commands.DefaultMaxParcels
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate costs and delivery times for one batch",
	Long: `Read a batch in the line format and print one report line per parcel.

Input format:
  <base_cost> <parcel_count>
  <id> <weight_kg> <distance_km> [offer_code]   (one line per parcel)
  <vehicle_count> <max_speed> <max_load>         (optional)

Without the fleet line only discount and total cost are printed.

Examples:
  # Read from standard input, end with Ctrl+D
  fleetdelivery estimate

  # Read from a file with a custom offer catalog
  fleetdelivery estimate --input batch.txt --offers offers.yaml
`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateInput, "input", "i", "", "Read input from file instead of stdin")
	estimateCmd.Flags().StringVar(&estimateOffers, "offers", "", "Offer catalog YAML file (default: built-in offers)")
	estimateCmd.Flags().IntVar(&estimateMaxParcels, "max-parcels", commands.DefaultMaxParcels, "Largest parcel count accepted in one batch")
	estimateCmd.Flags().BoolVarP(&estimateVerbose, "verbose", "v", false, "Log scheduling warnings to stderr")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(c *cobra.Command, _ []string) error {
	catalog, err := offeryaml.LoadFile(estimateOffers)
	if err != nil {
		return err
	}

	handler := slog.DiscardHandler
	if estimateVerbose {
		handler = slog.NewTextHandler(c.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	app, err := cmd.NewCompositionRoot(cmd.Config{}, nil, catalog, nil, slog.New(handler))
	if err != nil {
		return err
	}

	var in io.Reader = c.InOrStdin()
	if estimateInput != "" {
		f, err := os.Open(estimateInput)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	runner := cli.NewRunner(app.CreateEstimateDeliveryCommandHandler(), app.Calculator(), estimateMaxParcels)
	return runner.Run(c.Context(), in, c.OutOrStdout())
}
