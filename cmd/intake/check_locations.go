package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rojgari/candidate-intake/internal/location"
)

var checkLocationsCmd = &cobra.Command{
	Use:   "check-locations <path>",
	Short: "Validate a location hierarchy file",
	Long:  `Load a location hierarchy JSON file and report its state, district and taluka counts. Fails on malformed documents.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckLocations,
}

func init() {
	rootCmd.AddCommand(checkLocationsCmd)
}

func runCheckLocations(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	idx, err := location.NewFileLoader(args[0]).Load(ctx)
	if err != nil {
		return err
	}

	states := idx.States()
	districts := 0
	talukas := 0
	for _, st := range states {
		ds := idx.Districts(st)
		districts += len(ds)
		for _, d := range ds {
			talukas += len(idx.Cities(st, d))
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "states: %d\ndistricts: %d\ntalukas: %d\n",
		len(states), districts, talukas)
	return nil
}
