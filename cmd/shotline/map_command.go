package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotline/internal/frames"
)

func newMapCommand() *cobra.Command {
	var (
		inPoint  int
		outPoint int
		head     int
		tail     int
		start    int
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Translate an editorial in/out point into a digital frame range",
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rg, err := frames.Map(inPoint, outPoint, head, tail, start)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Editorial: %d-%d (%d frames)\n", inPoint, outPoint, outPoint-inPoint+1)
			fmt.Fprintf(out, "Handles:   %d head, %d tail\n", head, tail)
			fmt.Fprintf(out, "Digital:   %s (%d frames)\n", rg, rg.Count())
			return nil
		},
	}

	cmd.Flags().IntVar(&inPoint, "in", 0, "Editorial in point (source frames)")
	cmd.Flags().IntVar(&outPoint, "out", 0, "Editorial out point (source frames)")
	cmd.Flags().IntVar(&head, "head", 8, "Head handle frames")
	cmd.Flags().IntVar(&tail, "tail", 8, "Tail handle frames")
	cmd.Flags().IntVar(&start, "start", 1001, "Digital start frame")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
