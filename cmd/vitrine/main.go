package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev" // overridden via -ldflags at build time

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Vitrine — storefront API",
	Long:  "Vitrine is the storefront backend: product listing, detail pages with variant resolution, session carts and superadmin sales reports.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(versionCmd)
}
