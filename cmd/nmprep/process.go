package main

import (
	"context"

	"github.com/spf13/cobra"

	"nmprep/internal/buildsignal"
	"nmprep/internal/header"
	"nmprep/internal/preprocess"
)

var processOutDir string

var processCmd = &cobra.Command{
	Use:   "process [header]",
	Short: "Relocate enumerator docs and write the processed header",
	Long: `Process the header and write it to <out-dir>/<header name>.

Build directives (cargo:rerun-if-changed=..., cargo:rerun-if-env-changed=...)
are printed to stdout; logs go to stderr.

Examples:
  nmprep process                                  # header from config, OUT_DIR from env
  nmprep process include/nm-dbus-interface.h --out-dir target/gen`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runProcess),
}

func init() {
	processCmd.Flags().StringVar(&processOutDir, "out-dir", "", "Output directory (default: $OUT_DIR or build.outDir)")
	rootCmd.AddCommand(processCmd)
}

func runProcess(s *session, cmd *cobra.Command, args []string) error {
	signals := buildsignal.NewEmitter(cmd.OutOrStdout(), s.cfg.Build.DirectivePrefix)

	opts := processOptions(s, args)
	if processOutDir != "" {
		opts.OutDir = processOutDir
	}

	_, err := preprocess.Run(context.Background(), opts, signals, s.logger)
	return err
}

// processOptions maps the session config (and an optional header argument)
// onto driver options.
func processOptions(s *session, args []string) preprocess.Options {
	// A header given on the command line is relative to the working directory.
	input := s.resolve(s.cfg.Header.Input)
	if len(args) > 0 {
		input = args[0]
	}
	return preprocess.Options{
		Input:     input,
		OutDir:    s.resolve(s.cfg.Build.OutDir),
		OutDirEnv: s.cfg.Build.OutDirEnv,
		Header: header.Options{
			Namespace:           s.cfg.Header.Namespace,
			DiscardUnterminated: s.cfg.Header.DiscardUnterminated,
		},
	}
}
