package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRawCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "raw <file>",
		Short: "Print or save the raw mediainfo JSON report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd, args[0], sessionTools{mediainfo: true})
			if err != nil {
				return err
			}

			if strings.TrimSpace(outputPath) == "" {
				raw, _ := s.RawJSON()
				out := cmd.OutOrStdout()
				if _, err := out.Write(raw); err != nil {
					return err
				}
				if len(raw) > 0 && raw[len(raw)-1] != '\n' {
					fmt.Fprintln(out)
				}
				return nil
			}

			target, err := resolveSaveTarget(outputPath, cfg.Output.RawJSONName)
			if err != nil {
				return err
			}
			if err := s.SaveRawJSON(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved mediainfo JSON to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to this file or directory instead of stdout")
	return cmd
}
