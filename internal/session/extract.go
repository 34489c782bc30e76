package session

import (
	"context"
	"errors"
	"fmt"

	"mozaik/internal/extract"
	"mozaik/internal/logging"
)

// Plan computes the extraction plan for the current selection without
// running it.
func (s *Session) Plan(outDir string) (extract.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planLocked(outDir)
}

func (s *Session) planLocked(outDir string) (extract.Plan, error) {
	if s.file.manifest == nil {
		return extract.Plan{}, fmt.Errorf("%w: no manifest loaded", ErrInvalidState)
	}
	if s.file.selection.Len() == 0 {
		return extract.Plan{}, ErrEmptySelection
	}
	plan, err := extract.Build(s.file.manifest, s.file.selection.IDs(), outDir)
	if err != nil {
		return extract.Plan{}, err
	}
	if len(plan.Skipped) > 0 {
		s.logger.Debug("skipping stale track ids", logging.Any("ids", plan.Skipped))
	}
	return plan, nil
}

// Extract runs the current selection into outDir. It is accepted only in
// Ready with a non-empty selection. Output lines are forwarded to onUpdate
// and never change the state; Completed is entered once mkvextract exits.
// When mkvextract could not be started the session stays Ready.
func (s *Session) Extract(ctx context.Context, outDir string, onUpdate func(extract.Update)) (*extract.Result, error) {
	if s.deps.Extractor == nil {
		return nil, errors.New("extract: no extractor configured")
	}

	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot extract while %s", ErrInvalidState, state)
	}
	plan, err := s.planLocked(outDir)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if plan.Empty() {
		s.mu.Unlock()
		return nil, ErrEmptySelection
	}
	input := s.file.path
	s.state = StateExtracting
	s.mu.Unlock()

	result, err := s.deps.Extractor.Run(s.Context(ctx), input, plan, onUpdate)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateReady
		return nil, err
	}
	s.result = result
	s.state = StateCompleted
	s.logger.Info("extraction completed",
		logging.String("status", string(result.Status)),
		logging.Int("tracks", len(result.Outcomes)),
	)
	return result, nil
}
