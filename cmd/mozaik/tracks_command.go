package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mozaik/internal/extract"
	"mozaik/internal/mkvmerge"
	"mozaik/internal/summary"
	"mozaik/internal/track"
)

type trackView struct {
	ID           int    `json:"id"`
	Type         string `json:"type"`
	Codec        string `json:"codec,omitempty"`
	Language     string `json:"language"`
	LanguageName string `json:"language_name,omitempty"`
	Title        string `json:"title,omitempty"`
	Default      bool   `json:"default"`
	Forced       bool   `json:"forced"`
	Summary      string `json:"summary,omitempty"`
	Filename     string `json:"filename"`
}

type manifestView struct {
	File      string      `json:"file"`
	Container string      `json:"container,omitempty"`
	Title     string      `json:"title,omitempty"`
	Duration  string      `json:"duration,omitempty"`
	Chapters  int         `json:"chapters"`
	Video     int         `json:"video_tracks"`
	Audio     int         `json:"audio_tracks"`
	Subtitles int         `json:"subtitle_tracks"`
	Warnings  []string    `json:"warnings,omitempty"`
	Tracks    []trackView `json:"tracks"`
}

func newTracksCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tracks <file>",
		Short: "List the tracks mkvmerge reports with their planned file names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd, args[0], sessionTools{mkvmerge: true})
			if err != nil {
				return err
			}
			manifest, ok := s.Manifest()
			if !ok {
				return fmt.Errorf("tracks %s: no manifest", args[0])
			}
			describer, err := ctx.describer(cfg)
			if err != nil {
				return err
			}

			view := buildManifestView(s.Path(), manifest, describer)
			if asJSON {
				return writeJSON(cmd, view)
			}
			renderManifest(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the track list as JSON")
	return cmd
}

func buildManifestView(path string, manifest *mkvmerge.Manifest, describer *summary.Describer) manifestView {
	view := manifestView{
		File:      path,
		Container: manifest.Container.Type,
		Chapters:  manifest.Chapters,
		Video:     manifest.Count(mkvmerge.TypeVideo),
		Audio:     manifest.Count(mkvmerge.TypeAudio),
		Subtitles: manifest.Count(mkvmerge.TypeSubtitles),
		Warnings:  manifest.Warnings,
	}
	view.Title, _ = manifest.Container.Properties.Title.NonEmpty()
	if ns := manifest.Container.Properties.DurationNS; ns != nil {
		view.Duration = summary.FormatDuration(strconv.FormatFloat(float64(*ns)/1e9, 'f', 3, 64))
	}
	for _, t := range manifest.Tracks() {
		codec, _ := t.CodecName()
		title, _ := t.Title.NonEmpty()
		view.Tracks = append(view.Tracks, trackView{
			ID:           t.ID,
			Type:         t.Kind.String(),
			Codec:        codec,
			Language:     t.LanguageOr("und"),
			LanguageName: describer.LanguageName(t),
			Title:        title,
			Default:      t.Default.IsYes(),
			Forced:       t.Forced.IsYes(),
			Summary:      describer.Describe(t, track.Text{}),
			Filename:     extract.Filename(t),
		})
	}
	return view
}

func renderManifest(out io.Writer, view manifestView) {
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(filepath.Base(view.File), colorize) {
		fmt.Fprintln(out, line)
	}
	details := []string{}
	if view.Container != "" {
		details = append(details, view.Container)
	}
	if view.Duration != "" {
		details = append(details, view.Duration)
	}
	if view.Chapters > 0 {
		details = append(details, fmt.Sprintf("%d chapters", view.Chapters))
	}
	if view.Title != "" {
		details = append(details, strconv.Quote(view.Title))
	}
	details = append(details, fmt.Sprintf("video %d / audio %d / subtitles %d", view.Video, view.Audio, view.Subtitles))
	if len(details) > 0 {
		fmt.Fprintln(out, strings.Join(details, summary.Separator))
	}

	if len(view.Tracks) == 0 {
		fmt.Fprintln(out, "No tracks reported")
		return
	}
	rows := make([][]string, 0, len(view.Tracks))
	for _, t := range view.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(t.ID),
			t.Type,
			t.Codec,
			t.Language,
			trackFlags(t),
			t.Summary,
			t.Filename,
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Headers:  []string{"ID", "Type", "Codec", "Language", "Flags", "Summary", "File"},
		Rows:     rows,
		Aligns:   []columnAlignment{alignRight},
		MaxWidth: map[int]int{6: 60},
	}))
	for _, warning := range view.Warnings {
		fmt.Fprintln(out, renderStatusLine("mkvmerge", statusWarn, warning, colorize))
	}
}

func trackFlags(t trackView) string {
	var flags []string
	if t.Default {
		flags = append(flags, "default")
	}
	if t.Forced {
		flags = append(flags, "forced")
	}
	return strings.Join(flags, ",")
}
