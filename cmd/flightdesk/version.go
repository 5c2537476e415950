package main

import (
	"fmt"
	"strings"

	"flightdesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flightdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flightdesk version %s\n", strings.TrimSpace(flightdesk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
