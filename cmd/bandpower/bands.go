package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/bandpower/dsp/band"
)

func newBandsCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Show the configured band table",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				fmt.Fprintln(out, strings.Join(band.PresetNames(), "\n"))
				return nil
			}

			t, err := a.cfg.BandTable()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Band\tLow [Hz]\tHigh [Hz]\n")
			for _, d := range t.Definitions() {
				fmt.Fprintf(tw, "%s\t%g\t%g\n", d.Name, d.LowHz, d.HighHz)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&list, "presets", false, "list preset names")
	cmd.Flags().String("preset", "", "band preset to show")
	return cmd
}
