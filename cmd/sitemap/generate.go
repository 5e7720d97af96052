package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romangod6/sitemap-gen/config"
	"github.com/romangod6/sitemap-gen/internal/app"
)

func NewGenerateCommand() *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "generate <host>",
		Short: "Generate sitemap.xml for a host",
		Long: "Expands every route of the route configuration into URLs on <host> " +
			"and writes them to sitemap.xml in the configured output directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(v)
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx := cmd.Context()

			a, err := app.New(ctx, cfg, args[0], app.WithLogger(logger.Logger))
			if err != nil {
				return err
			}
			defer a.Close()

			doc, err := a.Generate(ctx)
			if err != nil {
				return err
			}

			path, err := a.Write(doc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Sitemap with %d urls written to %s\n", len(doc.Entries), path)
			return nil
		},
	}

	bindBuildFlags(cmd, v)

	return cmd
}
