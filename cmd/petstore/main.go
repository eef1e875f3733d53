package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "petstore",
	Short: "Petstore API server",
	Long: `petstore serves the pet and order REST API.

Configuration comes from PETSTORE_* environment variables (a .env file in
the working directory is loaded first). Run without a command to serve.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, apidocCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
