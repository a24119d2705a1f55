package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fleetdelivery",
	Short: "Price parcels and plan delivery trips for a vehicle fleet",
	Long: `fleetdelivery prices each parcel, groups parcels into trips and assigns
the trips to vehicles, reporting an estimated delivery time per parcel.

Run "fleetdelivery serve" for the HTTP API or "fleetdelivery estimate" to
process one request from standard input.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
