package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mozaik/internal/deps"
	"mozaik/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the media tools and output directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			configMessage := ctx.configPath
			configKind := statusOK
			if !ctx.configExists {
				configMessage += " (not found, using defaults)"
				configKind = statusInfo
			}
			fmt.Fprintln(out, renderStatusLine("Config", configKind, configMessage, colorize))
			fmt.Fprintln(out)

			report := preflight.RunAll(cmd.Context(), cfg, ctx.dependencyChecker(cfg))

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range report.Binaries {
				kind, message := dependencyStatus(status)
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Filesystem", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, check := range report.Checks {
				kind, message := checkStatus(check)
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, message, colorize))
			}

			if report.OK() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "All checks passed")
				return nil
			}
			problems := len(deps.Unavailable(report.Binaries))
			for _, check := range report.Checks {
				if !check.Passed {
					problems++
				}
			}
			return fmt.Errorf("doctor found %d problem(s)", problems)
		},
	}
}
