package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mozaik/internal/extract"
	"mozaik/internal/logging"
	"mozaik/internal/preflight"
	"mozaik/internal/session"
	"mozaik/internal/track"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var trackIDs []int
	var allTracks bool
	var kinds []string
	var outputDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract selected tracks with mkvextract",
		Long: "Extract tracks into track_{id}.{language}.{ext} files.\n\n" +
			"Select tracks with --track (repeatable), --type or --all-tracks. " +
			"The command exits non-zero when any planned file is missing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			selectedKinds, err := parseKinds(kinds)
			if err != nil {
				return err
			}

			s, err := ctx.openSession(cmd, args[0], sessionTools{mkvmerge: true, extract: true})
			if err != nil {
				return err
			}
			if err := applySelection(s, allTracks, selectedKinds, trackIDs); err != nil {
				return err
			}

			dir := strings.TrimSpace(outputDir)
			if dir == "" {
				if dir, err = cfg.OutputDir(); err != nil {
					return err
				}
			}
			plan, err := s.Plan(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(plan.Skipped) > 0 {
				fmt.Fprintf(out, "Skipping unknown track ids: %s\n", joinInts(plan.Skipped))
			}

			if dryRun {
				renderPlan(out, plan)
				fmt.Fprintf(out, "\n%s %s\n", cfg.Tools.MKVExtract, strings.Join(plan.Args(s.Path()), " "))
				return nil
			}

			if check := preflight.CheckOutputDirectory(plan.Dir); !check.Passed {
				return fmt.Errorf("output directory not usable: %s", check.Detail)
			}

			progress := newProgressPrinter(cmd.ErrOrStderr())
			result, err := s.Extract(cmd.Context(), plan.Dir, progress.update)
			progress.finish()
			if err != nil {
				return err
			}
			renderResult(out, result)
			if !result.Status.OK() {
				return fmt.Errorf("extraction %s: %d of %d files missing", result.Status, len(result.Missing()), len(result.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVarP(&trackIDs, "track", "t", nil, "Track id to extract (repeatable)")
	cmd.Flags().BoolVar(&allTracks, "all-tracks", false, "Extract every track")
	cmd.Flags().StringSliceVar(&kinds, "type", nil, "Extract every track of a type: video, audio, subtitles, other")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Destination directory (defaults to output.dir or the working directory)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without running mkvextract")
	cmd.MarkFlagsMutuallyExclusive("all-tracks", "track")
	cmd.MarkFlagsMutuallyExclusive("all-tracks", "type")
	return cmd
}

func parseKinds(values []string) ([]track.Kind, error) {
	kinds := make([]track.Kind, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		kind := track.ParseKind(value)
		if (kind == track.KindOther && value != "other") || kind == track.KindGeneral || kind == track.KindMenu {
			return nil, fmt.Errorf("unknown track type %q (want video, audio, subtitles or other)", value)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func applySelection(s *session.Session, all bool, kinds []track.Kind, ids []int) error {
	if all {
		if err := s.SelectAll(); err != nil {
			return err
		}
	}
	if len(kinds) > 0 {
		manifest, ok := s.Manifest()
		if !ok {
			return errors.New("select tracks: no manifest")
		}
		if err := s.Select(extract.IDsOfKind(manifest, kinds...)...); err != nil {
			return err
		}
	}
	if len(ids) > 0 {
		if err := s.Select(ids...); err != nil {
			return err
		}
	}
	if len(s.Selected()) == 0 {
		return fmt.Errorf("%w: use --track, --type or --all-tracks", session.ErrEmptySelection)
	}
	return nil
}

func renderPlan(out io.Writer, plan extract.Plan) {
	rows := make([][]string, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		rows = append(rows, []string{
			strconv.Itoa(entry.ID),
			entry.Kind.String(),
			entry.Codec,
			entry.Language,
			filepath.Base(entry.Path),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Title:   "Plan: " + plan.Dir,
		Headers: []string{"ID", "Type", "Codec", "Language", "File"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight},
	}))
}

func renderResult(out io.Writer, result *extract.Result) {
	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		rows = append(rows, []string{
			strconv.Itoa(outcome.ID),
			outcome.Kind.String(),
			filepath.Base(outcome.Path),
			outcome.HumanSize(),
			yesNo(outcome.Written),
		})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Headers: []string{"ID", "Type", "File", "Size", "Written"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
	}))

	message := fmt.Sprintf("%s in %s", result.Status, result.Elapsed.Round(100*time.Millisecond))
	if result.ExitCode > 0 {
		message += fmt.Sprintf(" (exit %d)", result.ExitCode)
	}
	fmt.Fprintln(out, renderStatusLine("Extraction", resultStatusKind(result.Status), message, colorize))
	if !result.Status.OK() || result.Status == extract.StatusWarnings {
		for _, line := range result.Output {
			fmt.Fprintf(out, "%s%s\n", statusIndent, line)
		}
	}
}

func resultStatusKind(status extract.Status) statusKind {
	switch status {
	case extract.StatusSucceeded:
		return statusOK
	case extract.StatusWarnings:
		return statusWarn
	default:
		return statusError
	}
}

// progressPrinter renders mkvextract progress on stderr: a rewritten line
// on terminals, sampled lines otherwise.
type progressPrinter struct {
	out     io.Writer
	tty     bool
	sampler *logging.ProgressSampler
	printed bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{
		out:     out,
		tty:     shouldColorize(out),
		sampler: logging.NewProgressSampler(25),
	}
}

func (p *progressPrinter) update(u extract.Update) {
	if !u.HasProgress {
		return
	}
	if p.tty {
		fmt.Fprintf(p.out, "\rExtracting: %3d%%", u.Percent)
		p.printed = true
		return
	}
	if p.sampler.ShouldLog(float64(u.Percent), "") {
		fmt.Fprintf(p.out, "Extracting: %d%%\n", u.Percent)
	}
}

func (p *progressPrinter) finish() {
	if p.tty && p.printed {
		fmt.Fprintln(p.out)
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
