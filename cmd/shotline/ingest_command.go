package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shotline/internal/batch"
	"shotline/internal/pipeline"
	"shotline/internal/preflight"
	"shotline/internal/report"
	"shotline/internal/shot"
	"shotline/internal/store"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		manifestPath    string
		sequenceFlag    string
		shotFlag        string
		sourceFlag      string
		inFlag          int
		outFlag         int
		continueOnError bool
		keepTemp        bool
		noProxy         bool
		skipPreflight   bool
	)

	cmd := &cobra.Command{
		Use:     "ingest",
		Aliases: []string{"batch"},
		Short:   "Ingest camera-original footage into plates",
		Long: `Ingest runs shots through the standard pipeline: decode, color
transform, proxy encode, placement into the project tree, tracker
registration, and staging cleanup.

Shots come from a JSON manifest (--manifest) or from the single-shot
flags (--sequence, --shot, --source, --in, --out).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			entries, err := collectEntries(manifestPath, batch.Entry{
				Sequence: sequenceFlag,
				Shot:     shotFlag,
				Source:   sourceFlag,
				InPoint:  inFlag,
				OutPoint: outFlag,
			})
			if err != nil {
				return err
			}

			if !skipPreflight {
				checks := preflight.RunAll(cmd.Context(), cfg)
				binaries := preflight.CheckSystemDeps(cfg)
				if !preflight.AllPassed(checks, binaries) {
					fmt.Fprintln(cmd.OutOrStdout(), report.PreflightTable(checks, binaries))
					return errors.New("preflight failed; fix the environment or rerun with --skip-preflight")
				}
			}

			svcs, err := batch.NewServices(cfg)
			if err != nil {
				return err
			}
			pipe, err := batch.StandardPipeline(svcs, logger)
			if err != nil {
				return err
			}

			history, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer history.Close()

			if keepTemp {
				for i := range entries {
					if entries[i].Overrides == nil {
						entries[i].Overrides = map[string]any{}
					}
					entries[i].Overrides[pipeline.KeyKeepTemp] = true
				}
			}
			if noProxy {
				for i := range entries {
					if entries[i].Overrides == nil {
						entries[i].Overrides = map[string]any{}
					}
					entries[i].Overrides[pipeline.KeyProxyEnabled] = false
				}
			}

			policy := pipeline.StopOnError
			if continueOnError {
				policy = pipeline.ContinueOnError
			}

			runner := batch.NewRunner(cfg, pipe, history, logger)
			results, err := runner.Run(cmd.Context(), entries, policy)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.BatchTable(results))
			err = batchError(results)
			if err != nil {
				fmt.Fprintln(out, report.Verdict(out, false, err.Error()))
				return err
			}
			fmt.Fprintln(out, report.Verdict(out, true, fmt.Sprintf("Ingested %d shot(s)", len(results))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "JSON shot manifest path")
	cmd.Flags().StringVar(&sequenceFlag, "sequence", "", "Sequence code for single-shot ingest")
	cmd.Flags().StringVar(&shotFlag, "shot", "", "Shot number for single-shot ingest")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Camera-original source path for single-shot ingest")
	cmd.Flags().IntVar(&inFlag, "in", 0, "Editorial in point (source frames)")
	cmd.Flags().IntVar(&outFlag, "out", 0, "Editorial out point (source frames)")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep running later stages after a stage fails")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "Keep per-shot staging directories")
	cmd.Flags().BoolVar(&noProxy, "no-proxy", false, "Skip proxy encoding for this batch")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment preflight checks")

	return cmd
}

func collectEntries(manifestPath string, single batch.Entry) ([]batch.Entry, error) {
	manifestPath = strings.TrimSpace(manifestPath)
	haveSingle := single.Sequence != "" || single.Shot != "" || single.Source != ""

	switch {
	case manifestPath != "" && haveSingle:
		return nil, errors.New("use either --manifest or the single-shot flags, not both")
	case manifestPath != "":
		return batch.LoadManifest(manifestPath)
	case haveSingle:
		return []batch.Entry{single}, nil
	default:
		return nil, errors.New("nothing to ingest: pass --manifest or the single-shot flags")
	}
}

func batchError(results []batch.ShotResult) error {
	failed := 0
	for _, result := range results {
		switch {
		case result.Err != nil:
			failed++
		case result.Summary != nil && result.Summary.Status != shot.StatusSucceeded:
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d shot(s) did not fully succeed", failed, len(results))
	}
	return nil
}
