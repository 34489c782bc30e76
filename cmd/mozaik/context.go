package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mozaik/internal/config"
	"mozaik/internal/deps"
	"mozaik/internal/extract"
	"mozaik/internal/language"
	"mozaik/internal/logging"
	"mozaik/internal/mediainfo"
	"mozaik/internal/mkvmerge"
	"mozaik/internal/probe"
	"mozaik/internal/session"
	"mozaik/internal/summary"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	logger *slog.Logger

	executor  probe.Executor
	lookPath  func(string) (string, error)
	logWriter io.Writer
}

// contextOption replaces process-level collaborators, mainly for tests.
type contextOption func(*commandContext)

func withExecutor(exec probe.Executor) contextOption {
	return func(c *commandContext) { c.executor = exec }
}

func withLookPath(fn func(string) (string, error)) contextOption {
	return func(c *commandContext) { c.lookPath = fn }
}

func withLogWriter(w io.Writer) contextOption {
	return func(c *commandContext) { c.logWriter = w }
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string, opts ...contextOption) *commandContext {
	c := &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level, err := logging.ParseLevel(*c.logLevelFlag)
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Logging.Level = strings.ToLower(level.String())
		}
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			cfg.Logging.Format = strings.ToLower(strings.TrimSpace(*c.logFormatFlag))
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	var logger *slog.Logger
	if c.logWriter != nil {
		logger, err = logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: c.logWriter,
		})
	} else {
		logger, err = logging.NewFromConfig(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	c.logger = logger.With(logging.String("command", cmd.Name()))
	return c.logger, nil
}

func (c *commandContext) loggerValue() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

func (c *commandContext) runner(cfg *config.Config, extraction bool) *probe.Runner {
	timeout := cfg.ProbeTimeout()
	if extraction {
		timeout = cfg.ExtractTimeout()
	}
	opts := []probe.Option{probe.WithLogger(c.loggerValue())}
	if c.executor != nil {
		opts = append(opts, probe.WithExecutor(c.executor))
	}
	if c.lookPath != nil {
		opts = append(opts, probe.WithLookPath(c.lookPath))
	}
	return probe.NewRunner(timeout, opts...)
}

func (c *commandContext) dependencyChecker(cfg *config.Config) deps.Checker {
	return deps.Checker{LookPath: c.lookPath, Versions: c.runner(cfg, false)}
}

// sessionTools selects which tools a command needs.
type sessionTools struct {
	mediainfo bool
	mkvmerge  bool
	extract   bool
}

// openSession validates path and opens it in a new session wired to the
// requested tools.
func (c *commandContext) openSession(cmd *cobra.Command, path string, tools sessionTools) (*session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := checkInputFile(path); err != nil {
		return nil, err
	}

	logger := c.loggerValue()
	depsSet := session.Dependencies{Logger: logger}
	if tools.mediainfo {
		client, err := mediainfo.NewClient(cfg.Tools.MediaInfo, c.runner(cfg, false), logger)
		if err != nil {
			return nil, err
		}
		depsSet.Prober = client
	}
	if tools.mkvmerge {
		client, err := mkvmerge.NewClient(cfg.Tools.MKVMerge, c.runner(cfg, false), logger)
		if err != nil {
			return nil, err
		}
		depsSet.Identifier = client
	}
	if tools.extract {
		extractor, err := extract.NewExtractor(cfg.Tools.MKVExtract, c.runner(cfg, true), cfg.ExtractTimeout(), logger)
		if err != nil {
			return nil, err
		}
		depsSet.Extractor = extractor
	}

	s := session.New(depsSet)
	if err := s.Open(cmd.Context(), path); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *commandContext) describer(cfg *config.Config) (*summary.Describer, error) {
	namer, err := language.NewNamer(cfg.Display.Locale)
	if err != nil {
		return nil, err
	}
	return summary.NewDescriber(namer), nil
}

func checkInputFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("input file required")
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("input file %s does not exist", path)
		}
		return fmt.Errorf("stat input file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input file %s is a directory", path)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
