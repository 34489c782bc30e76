package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"mozaik/internal/mkvmerge"
	"mozaik/internal/track"
)

// Entry is one planned extraction.
type Entry struct {
	ID       int
	Kind     track.Kind
	Codec    string
	Language string
	Path     string
}

// Plan maps selected track ids to destination paths. Entries are in
// ascending id order; Skipped lists selected ids missing from the manifest.
type Plan struct {
	Dir     string
	Entries []Entry
	Skipped []int
}

// Build plans the extraction of ids from manifest into outDir. A relative
// outDir is resolved against the working directory. Duplicate ids are
// planned once.
func Build(manifest *mkvmerge.Manifest, ids []int, outDir string) (Plan, error) {
	if manifest == nil {
		return Plan{}, errors.New("plan extraction: no manifest")
	}
	outDir = strings.TrimSpace(outDir)
	if outDir == "" {
		return Plan{}, errors.New("plan extraction: output directory required")
	}
	dir, err := filepath.Abs(outDir)
	if err != nil {
		return Plan{}, fmt.Errorf("plan extraction: resolve %q: %w", outDir, err)
	}

	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	plan := Plan{Dir: dir, Entries: make([]Entry, 0, len(ordered))}
	for _, id := range ordered {
		entry, ok := manifest.Lookup(id)
		if !ok {
			plan.Skipped = append(plan.Skipped, id)
			continue
		}
		t := entry.Track()
		codec, _ := t.CodecName()
		plan.Entries = append(plan.Entries, Entry{
			ID:       id,
			Kind:     t.Kind,
			Codec:    codec,
			Language: t.LanguageOr(undeterminedLanguage),
			Path:     filepath.Join(dir, Filename(t)),
		})
	}
	return plan, nil
}

// Empty reports whether the plan has nothing to extract.
func (p Plan) Empty() bool {
	return len(p.Entries) == 0
}

// IDs returns the planned track ids in order.
func (p Plan) IDs() []int {
	ids := make([]int, 0, len(p.Entries))
	for _, entry := range p.Entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

// Args returns the mkvextract argument vector:
// tracks <input> <id>:<path> ...
func (p Plan) Args(input string) []string {
	args := make([]string, 0, len(p.Entries)+2)
	args = append(args, "tracks", input)
	for _, entry := range p.Entries {
		args = append(args, strconv.Itoa(entry.ID)+":"+entry.Path)
	}
	return args
}

// IDsOfKind returns the ids of manifest tracks whose kind is one of kinds.
func IDsOfKind(manifest *mkvmerge.Manifest, kinds ...track.Kind) []int {
	var ids []int
	for _, t := range manifest.Tracks() {
		if slices.Contains(kinds, t.Kind) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
