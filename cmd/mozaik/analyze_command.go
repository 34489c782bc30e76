package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mozaik/internal/logging"
	"mozaik/internal/summary"
)

type analyzeView struct {
	File     string            `json:"file"`
	Session  string            `json:"session_id"`
	Overview summary.Overview  `json:"overview"`
	Sections []summary.Section `json:"sections"`
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var showAll bool
	var asJSON bool
	var saveJSON string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Summarize a media file from its mediainfo report",
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
			record, ok := s.Record()
			if !ok {
				return fmt.Errorf("analyze %s: no mediainfo report", args[0])
			}

			describer, err := ctx.describer(cfg)
			if err != nil {
				return err
			}
			limits := summary.Limits{Audio: cfg.Display.AudioPreview, Subtitle: cfg.Display.SubtitlePreview}
			view := analyzeView{
				File:     s.Path(),
				Session:  s.ID(),
				Overview: summary.BuildOverview(record),
				Sections: describer.Sections(record, limits, showAll),
			}

			if strings.TrimSpace(saveJSON) != "" {
				target, err := resolveSaveTarget(saveJSON, cfg.Output.RawJSONName)
				if err != nil {
					return err
				}
				if err := s.SaveRawJSON(target); err != nil {
					return err
				}
				if !asJSON {
					defer fmt.Fprintf(cmd.OutOrStdout(), "\nSaved mediainfo JSON to %s\n", target)
				}
			}

			ctx.loggerValue().Debug("analysis rendered",
				logging.String("path", view.File),
				logging.Int("video_tracks", view.Overview.VideoTracks),
				logging.Int("audio_tracks", view.Overview.AudioTracks),
				logging.Int("subtitle_tracks", view.Overview.SubtitleTracks),
			)

			if asJSON {
				return writeJSON(cmd, view)
			}
			renderAnalysis(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "List every audio and subtitle track")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	cmd.Flags().StringVar(&saveJSON, "save-json", "", "Save the raw mediainfo JSON to this file or directory")
	return cmd
}

func renderAnalysis(out io.Writer, view analyzeView) {
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(filepath.Base(view.File), colorize) {
		fmt.Fprintln(out, line)
	}

	fields := view.Overview.Fields()
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{field.Label, field.Value})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(tableSpec{Rows: rows}))
	} else {
		fmt.Fprintln(out, "No container information reported")
	}

	for _, section := range view.Sections {
		fmt.Fprintln(out)
		if len(section.Rows) == 0 {
			fmt.Fprintf(out, "%s: none\n", section.Label)
			continue
		}
		rows := make([][]string, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, []string{strconv.Itoa(row.Index), row.Language, row.Detail})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Title:    fmt.Sprintf("%s (%d)", section.Label, len(section.Rows)+section.Hidden),
			Headers:  []string{"#", "Language", "Details"},
			Rows:     rows,
			Aligns:   []columnAlignment{alignRight, alignLeft, alignLeft},
			MaxWidth: map[int]int{3: 100},
		}))
		if hint := section.MoreHint(); hint != "" {
			fmt.Fprintf(out, "%s%s (use --all to list)\n", statusIndent, hint)
		}
	}
}
