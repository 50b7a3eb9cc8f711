// Package preprocess runs the header preprocessing step of a build: it reads
// the D-Bus interface header, moves enumerator docs into place and writes the
// result where the binding generator expects it.
package preprocess

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"nmprep/internal/buildsignal"
	"nmprep/internal/errors"
	"nmprep/internal/header"
	"nmprep/internal/paths"
	"nmprep/internal/slogutil"
)

// DefaultOutDirEnv is read when no output directory is given.
const DefaultOutDirEnv = "OUT_DIR"

// Options configures Run.
type Options struct {
	// Input is the header to process.
	Input string
	// OutDir overrides the output directory.
	OutDir string
	// OutDirEnv names the variable holding the output directory when OutDir
	// is empty. Defaults to DefaultOutDirEnv.
	OutDirEnv string
	Header    header.Options
}

// Report summarizes a successful run.
type Report struct {
	RunID    string         `json:"runId"`
	Input    string         `json:"input"`
	Output   string         `json:"output"`
	Result   *header.Result `json:"result"`
	Duration time.Duration  `json:"duration"`
}

// Run processes opts.Input and writes <outdir>/<basename of input>. On error
// no output file is created or modified.
func Run(ctx context.Context, opts Options, signals *buildsignal.Emitter, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	if signals == nil {
		signals = buildsignal.NewEmitter(nil, "")
	}
	start := time.Now()
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	signals.RerunIfChanged(opts.Input)

	outDir, err := resolveOutDir(opts, signals)
	if err != nil {
		return nil, err
	}

	processed, result, err := Load(ctx, opts.Input, opts.Header)
	if err != nil {
		return nil, err
	}

	output := paths.OutputPath(outDir, opts.Input)
	if err := writeAtomic(ctx, output, []byte(processed)); err != nil {
		return nil, errors.Wrap(errors.IOFailure, err, "writing %s", output)
	}
	if err := signals.Err(); err != nil {
		return nil, errors.Wrap(errors.IOFailure, err, "writing build directives")
	}

	report := &Report{
		RunID:    runID,
		Input:    opts.Input,
		Output:   output,
		Result:   result,
		Duration: time.Since(start),
	}
	logger.Info("Processed header",
		"input", opts.Input,
		"output", output,
		"blocks", result.Blocks,
		"relocations", len(result.Relocations),
		"duration", report.Duration,
	)
	for _, r := range result.Relocations {
		logger.Debug("Relocated doc block", "target", r.Target, "from", r.From+1, "before", r.Before+1)
	}
	return report, nil
}

// Load reads a header and processes it in memory.
func Load(ctx context.Context, input string, opts header.Options) (string, *header.Result, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", nil, errors.Wrap(errors.IOFailure, err, "reading %s", input)
	}
	return header.Process(string(data), opts)
}

func resolveOutDir(opts Options, signals *buildsignal.Emitter) (string, error) {
	if opts.OutDir != "" {
		return opts.OutDir, nil
	}
	key := opts.OutDirEnv
	if key == "" {
		key = DefaultOutDirEnv
	}
	dir, ok := signals.LookupEnv(key)
	if !ok || dir == "" {
		return "", errors.New(errors.IOFailure, "output directory not set: pass --out-dir or set %s", key)
	}
	return dir, nil
}

// writeAtomic writes data to a temporary file next to path and renames it
// into place.
func writeAtomic(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := paths.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
