package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shotline/internal/preflight"
	"shotline/internal/report"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check configuration and environment readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config:  %s\n", ctx.configPath)
			fmt.Fprintf(out, "Project: %s\n", cfg.Project)
			fmt.Fprintf(out, "Root:    %s\n\n", cfg.Paths.ProjectRoot)

			checks := preflight.RunAll(cmd.Context(), cfg)
			binaries := preflight.CheckSystemDeps(cfg)
			fmt.Fprintln(out, report.PreflightTable(checks, binaries))

			if !preflight.AllPassed(checks, binaries) {
				fmt.Fprintln(out, report.Verdict(out, false, "Environment not ready"))
				return fmt.Errorf("environment not ready")
			}
			fmt.Fprintln(out, report.Verdict(out, true, "Environment ready"))
			return nil
		},
	}
}
