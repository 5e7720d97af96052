package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romangod6/sitemap-gen/internal/sitemap"
)

func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file|url>",
		Short: "Summarize an existing sitemap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := sitemap.ReadSource(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			summary, err := sitemap.Inspect(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total URLs found: %d\n", summary.URLs)
			fmt.Fprintf(out, "Alternate links: %d\n", summary.Alternates)
			if len(summary.Languages) > 0 {
				fmt.Fprintf(out, "Languages: %s\n", strings.Join(summary.Languages, ", "))
			}

			freqs := make([]string, 0, len(summary.ByChangeFreq))
			for f := range summary.ByChangeFreq {
				freqs = append(freqs, f)
			}
			slices.Sort(freqs)

			fmt.Fprintln(out, "\n--- Change Frequency ---")
			for _, f := range freqs {
				fmt.Fprintf(out, "%-8s %d\n", f, summary.ByChangeFreq[f])
			}

			return nil
		},
	}
}
