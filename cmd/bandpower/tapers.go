package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/bandpower/dsp/window"
)

func newTapersCmd() *cobra.Command {
	var (
		size     int
		periodic bool
	)
	cmd := &cobra.Command{
		Use:   "tapers [name ...]",
		Short: "Print spectral properties of the available tapers",
		RunE: func(cmd *cobra.Command, args []string) error {
			types := window.Types()
			if len(args) > 0 {
				types = nil
				for _, name := range args {
					t, err := window.Parse(name)
					if err != nil {
						return err
					}
					types = append(types, t)
				}
			}
			if size < 2 {
				return fmt.Errorf("size must be >= 2, got %d", size)
			}

			var opts []window.Option
			if periodic {
				opts = append(opts, window.WithPeriodic())
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Taper\tSize\tCoherent Gain\tENBW [bins]\tSidelobe [dB]\tScallop [dB]\n")
			fmt.Fprintf(tw, "-----\t----\t-------------\t-----------\t-------------\t------------\n")
			for _, t := range types {
				g, err := window.Measure(window.Generate(t, size, opts...))
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.1f\t%.4f\n",
					t, size, g.Sum/float64(size), g.ENBW, window.Info(t).HighestSidelobe, g.ScallopLossdB)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&size, "size", 1024, "taper length in samples")
	cmd.Flags().BoolVar(&periodic, "periodic", false, "use the periodic (FFT) form")
	return cmd
}
