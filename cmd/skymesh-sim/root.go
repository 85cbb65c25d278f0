package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skymesh-sim",
	Short: "Disaster-relief drone mesh simulation toolkit",
	Long:  "SkyMesh-Sim models a UAV relay mesh restoring connectivity over a disaster area: search, victim reporting, cluster coverage, and capacity-aware routing to a cellular tower.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
