package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newIDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "idf TOKEN...",
		Short: "Print document frequency and IDF of tokens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openCorpus(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tDF\tIDF")
			for _, tok := range args {
				df, err := c.DocumentFrequency(cmd.Context(), tok)
				if err != nil {
					return err
				}
				idf, err := c.IDF(cmd.Context(), tok)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%.6f\n", tok, df, idf)
			}
			return w.Flush()
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print corpus statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openCorpus(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			n, err := c.DocumentCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "documents: %d\n", n)
			return nil
		},
	}
}
