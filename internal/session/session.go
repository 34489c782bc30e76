package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mozaik/internal/extract"
	"mozaik/internal/fileutil"
	"mozaik/internal/logging"
	"mozaik/internal/mediainfo"
	"mozaik/internal/mkvmerge"
)

// State is a step of the extraction workflow.
type State int

const (
	StateIdle State = iota
	StateProbing
	StateReady
	StateExtracting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbing:
		return "probing"
	case StateReady:
		return "ready"
	case StateExtracting:
		return "extracting"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidState reports an operation that the current state does not allow.
	ErrInvalidState = errors.New("invalid session state")
	// ErrEmptySelection reports an extraction request without selected tracks.
	ErrEmptySelection = errors.New("no tracks selected")
	// ErrBusy reports a new probe while another probe or an extraction runs.
	ErrBusy = errors.New("session busy")
	// ErrNoRawJSON reports a save request before a mediainfo report was loaded.
	ErrNoRawJSON = errors.New("no mediainfo report loaded")
)

// Prober produces the mediainfo report for a file.
type Prober interface {
	Probe(ctx context.Context, path string) (*mediainfo.Result, error)
}

// Identifier produces the mkvmerge manifest for a file.
type Identifier interface {
	Identify(ctx context.Context, path string) (*mkvmerge.Manifest, error)
}

// Extractor runs an extraction plan.
type Extractor interface {
	Run(ctx context.Context, input string, plan extract.Plan, onUpdate func(extract.Update)) (*extract.Result, error)
}

// Dependencies wires a Session to its tools. Any of them may be nil, in
// which case the matching step is skipped (Prober, Identifier) or refused
// (Extractor).
type Dependencies struct {
	Prober     Prober
	Identifier Identifier
	Extractor  Extractor
	Logger     *slog.Logger
}

type loaded struct {
	path      string
	report    *mediainfo.Result
	manifest  *mkvmerge.Manifest
	selection *extract.Selection
}

// Session holds the state for the currently opened file.
type Session struct {
	id     string
	deps   Dependencies
	logger *slog.Logger

	mu     sync.Mutex
	state  State
	file   loaded
	result *extract.Result
}

// New returns an idle session with a fresh id.
func New(deps Dependencies) *Session {
	id := uuid.NewString()
	logger := logging.NewComponentLogger(deps.Logger, "session").With(logging.String(logging.FieldSessionID, id))
	return &Session{id: id, deps: deps, logger: logger, state: StateIdle}
}

// ID returns the session id used to correlate log lines.
func (s *Session) ID() string { return s.id }

// Context returns ctx annotated with the session id.
func (s *Session) Context(ctx context.Context) context.Context {
	return logging.WithSessionID(ctx, s.id)
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Path returns the opened file, or "" before the first successful Open.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.path
}

// Open probes path and, on success, replaces everything loaded for the
// previous file. On failure the previous file and state are kept.
func (s *Session) Open(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("open: empty path")
	}

	s.mu.Lock()
	if s.state == StateProbing || s.state == StateExtracting {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrBusy, state)
	}
	previous := s.state
	s.state = StateProbing
	s.mu.Unlock()

	ctx = s.Context(ctx)
	s.logger.Info("probing file", logging.String("path", path))
	next, err := s.probe(ctx, path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = previous
		logging.WarnWithContext(s.logger, "probe failed", "probe_failed",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "previous file remains loaded"),
		)
		return err
	}
	s.file = next
	s.result = nil
	s.state = StateReady
	s.logger.Info("file ready",
		logging.String("path", path),
		logging.Bool("mediainfo", next.report != nil),
		logging.Bool("manifest", next.manifest != nil),
	)
	return nil
}

func (s *Session) probe(ctx context.Context, path string) (loaded, error) {
	next := loaded{path: path}
	if s.deps.Prober != nil {
		report, err := s.deps.Prober.Probe(ctx, path)
		if err != nil {
			return loaded{}, err
		}
		next.report = report
	}
	if s.deps.Identifier != nil {
		manifest, err := s.deps.Identifier.Identify(ctx, path)
		if err != nil {
			return loaded{}, err
		}
		next.manifest = manifest
		next.selection = extract.NewSelection(manifest.IDs())
	}
	return next, nil
}

// Record returns the mediainfo report of the opened file, if probed.
func (s *Session) Record() (*mediainfo.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file.report == nil {
		return nil, false
	}
	return s.file.report.Record, true
}

// RawJSON returns the mediainfo payload exactly as the tool produced it.
func (s *Session) RawJSON() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file.report == nil {
		return nil, false
	}
	return s.file.report.RawJSON(), true
}

// SaveRawJSON writes the raw mediainfo payload to path verbatim.
func (s *Session) SaveRawJSON(path string) error {
	raw, ok := s.RawJSON()
	if !ok {
		return ErrNoRawJSON
	}
	if err := fileutil.WriteFileVerified(path, raw, 0o644); err != nil {
		return fmt.Errorf("save mediainfo report: %w", err)
	}
	s.logger.Info("mediainfo report saved",
		logging.String("path", path),
		logging.Int("bytes", len(raw)),
	)
	return nil
}

// Manifest returns the mkvmerge manifest of the opened file, if identified.
func (s *Session) Manifest() (*mkvmerge.Manifest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.manifest, s.file.manifest != nil
}

// LastResult returns the result of the most recent extraction of this file.
func (s *Session) LastResult() (*extract.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.result != nil
}
