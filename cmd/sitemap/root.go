package main

import (
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sitemap",
		Short:         "Generate sitemap.xml files from a route configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		NewGenerateCommand(),
		NewServeCommand(),
		NewInspectCommand(),
		NewVersionCommand(),
	)

	return root
}
