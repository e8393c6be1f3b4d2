// Package main — matchctl, офлайн-сопоставление объявлений и критериев из JSON-файлов.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "matchctl",
	Short:         "Offline listing/criteria matching",
	Long:          "matchctl evaluates listings against hot sheets and buyer needs read from JSON files, without a database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
