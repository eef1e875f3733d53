package main

import (
	"encoding/json"

	"github.com/deppfellow/petstore/internal/config"
	"github.com/deppfellow/petstore/internal/handler"
	"github.com/spf13/cobra"
)

var apidocCmd = &cobra.Command{
	Use:   "apidoc",
	Short: "Print the swagger.json document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		doc, err := handler.Document(cfg.API)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}
