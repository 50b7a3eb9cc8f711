package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"nmprep/internal/config"
	preperrors "nmprep/internal/errors"
	"nmprep/internal/paths"
	"nmprep/internal/slogutil"
	"nmprep/internal/version"
)

var (
	repoFlag      string
	verboseCount  int
	quietFlag     bool
	logFormatFlag string
	logFileFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "nmprep",
	Short: "nmprep - NetworkManager header preprocessor",
	Long: `nmprep prepares nm-dbus-interface.h for binding generation.

It moves the per-enumerator documentation out of each enum's leading comment
and places it directly above the enumerator, and derives the short variant
names the generated bindings use.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", ".", "Repository root holding .nmprep/")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Log format: human or json (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also append logs to this file")
}

// session is the per-invocation state shared by commands.
type session struct {
	repoRoot string
	cfg      *config.Config
	logger   *slog.Logger
	closers  []io.Closer
}

func (s *session) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}

// resolve returns p relative to the repo root unless it is absolute.
func (s *session) resolve(p string) string {
	return paths.ResolveRepoPath(s.repoRoot, p)
}

func newSession(cmd *cobra.Command) (*session, error) {
	repoRoot, err := filepath.Abs(repoFlag)
	if err != nil {
		return nil, fmt.Errorf("resolving repo root: %w", err)
	}

	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		return nil, preperrors.Wrap(preperrors.InvalidConfig, err, "loading config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, preperrors.Wrap(preperrors.InvalidConfig, err, "validating config")
	}

	format := cfg.Logging.Format
	if logFormatFlag != "" {
		format = logFormatFlag
	}
	logFormat, ok := slogutil.ParseFormat(format)
	if !ok {
		return nil, preperrors.New(preperrors.InvalidConfig, "unknown log format %q", format)
	}
	level := slogutil.LevelFromVerbosity(verboseCount, quietFlag, slogutil.LevelFromString(cfg.Logging.Level))

	s := &session{repoRoot: repoRoot, cfg: cfg}
	handler := slogutil.NewHandler(cmd.ErrOrStderr(), level, logFormat)

	logFile := cfg.Logging.File
	if logFileFlag != "" {
		logFile = logFileFlag
	}
	if logFile != "" {
		// The file keeps the configured level even under -q.
		fileHandler, f, err := slogutil.NewFileHandler(s.resolve(logFile), slogutil.LevelFromString(cfg.Logging.Level), logFormat)
		if err != nil {
			return nil, preperrors.Wrap(preperrors.IOFailure, err, "opening log file")
		}
		s.closers = append(s.closers, f)
		handler = slogutil.NewTeeHandler(handler, fileHandler)
	}
	s.logger = slog.New(handler)

	return s, nil
}

// reportedError marks an error the session logger has already reported.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// withSession adapts a session-aware command body to cobra's RunE. Errors are
// logged with their code and suggested fixes before being returned.
func withSession(run func(s *session, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := run(s, cmd, args); err != nil {
			reportError(s.logger, err)
			return &reportedError{err: err}
		}
		return nil
	}
}

func reportError(logger *slog.Logger, err error) {
	logger.Error("Command failed", "code", string(preperrors.CodeOf(err)), "error", err.Error())

	var pe *preperrors.PrepError
	if !errors.As(err, &pe) {
		return
	}
	for _, fix := range pe.SuggestedFixes {
		if fix.Command != "" {
			logger.Info("Suggested fix", "type", string(fix.Type), "command", fix.Command, "description", fix.Description)
		} else {
			logger.Info("Suggested fix", "type", string(fix.Type), "description", fix.Description)
		}
	}
}
