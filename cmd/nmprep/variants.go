package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nmprep/internal/callbacks"
	"nmprep/internal/cheader"
	"nmprep/internal/config"
	preperrors "nmprep/internal/errors"
	"nmprep/internal/preprocess"
)

var (
	variantsFormat string
	variantsAll    bool
)

var variantsCmd = &cobra.Command{
	Use:   "variants [header]",
	Short: "Preview generated enum and variant names",
	Long: `Process the header in memory, scan its enums and show the prefix and
short name the binding generator will use for every enumerator.

Examples:
  nmprep variants                     # enums matching naming.enumPattern
  nmprep variants --all               # every enum in the header
  nmprep variants --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(runVariants),
}

func init() {
	variantsCmd.Flags().StringVar(&variantsFormat, "format", string(FormatHuman), "Output format (human, json, yaml)")
	variantsCmd.Flags().BoolVar(&variantsAll, "all", false, "Include enums outside naming.enumPattern")
	rootCmd.AddCommand(variantsCmd)
}

// VariantsResponse is the output of `nmprep variants`.
type VariantsResponse struct {
	Input         string       `json:"input" yaml:"input"`
	Partial       bool         `json:"partial,omitempty" yaml:"partial,omitempty"`
	Enums         []EnumReport `json:"enums" yaml:"enums"`
	IgnoredMacros []string     `json:"ignoredMacros" yaml:"ignoredMacros"`
	KeptMacros    []string     `json:"keptMacros" yaml:"keptMacros"`
}

// EnumReport describes one enum as the generator will see it.
type EnumReport struct {
	Name      string          `json:"name" yaml:"name"`
	Prefix    string          `json:"prefix" yaml:"prefix"`
	Rustified bool            `json:"rustified" yaml:"rustified"`
	Derives   []string        `json:"derives,omitempty" yaml:"derives,omitempty"`
	Variants  []VariantReport `json:"variants" yaml:"variants"`
}

// VariantReport is one enumerator and its generated name.
type VariantReport struct {
	Original string `json:"original" yaml:"original"`
	Name     string `json:"name" yaml:"name"`
	Renamed  bool   `json:"renamed" yaml:"renamed"`
	Value    string `json:"value" yaml:"value"`
}

func runVariants(s *session, cmd *cobra.Command, args []string) error {
	format, err := ParseOutputFormat(variantsFormat)
	if err != nil {
		return err
	}

	opts := processOptions(s, args)
	ctx := context.Background()

	text, _, err := preprocess.Load(ctx, opts.Input, opts.Header)
	if err != nil {
		return err
	}

	scanner := cheader.NewScanner()
	if scanner == nil {
		return preperrors.Wrap(preperrors.InternalError, cheader.ErrNoCGO, "scanning %s", opts.Input)
	}
	h, err := scanner.Scan(ctx, []byte(text))
	if err != nil {
		return preperrors.Wrap(preperrors.InternalError, err, "scanning %s", opts.Input)
	}
	if h.Partial {
		s.logger.Warn("Header has syntax errors; results may be incomplete", "input", opts.Input)
	}

	overrides, err := config.LoadOverrides(s.repoRoot, s.cfg)
	if err != nil {
		return err
	}
	cb, err := callbacks.New(callbacks.Options{
		Namespace:   s.cfg.Header.Namespace,
		Overrides:   overrides,
		EnumPattern: s.cfg.Naming.EnumPattern,
	}, nil, s.logger)
	if err != nil {
		return preperrors.Wrap(preperrors.InvalidConfig, err, "naming.enumPattern")
	}

	resp := buildVariantsResponse(opts.Input, h, cb, variantsAll)
	s.logger.Debug("Scanned header", "enums", len(h.Enums), "macros", len(h.Macros), "shown", len(resp.Enums))

	out, err := FormatResponse(resp, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// buildVariantsResponse runs the generator callbacks over a scanned header.
func buildVariantsResponse(input string, h *cheader.Header, cb *callbacks.Callbacks, all bool) *VariantsResponse {
	resp := &VariantsResponse{
		Input:         input,
		Partial:       h.Partial,
		Enums:         []EnumReport{},
		IgnoredMacros: []string{},
		KeptMacros:    []string{},
	}

	for _, e := range h.Enums {
		rustified := e.Name != "" && cb.RenameEnum(e.Name)
		if !rustified && !all {
			continue
		}

		report := EnumReport{
			Name:      e.Name,
			Rustified: rustified,
			Variants:  make([]VariantReport, 0, len(e.Enumerators)),
		}
		if e.Name != "" {
			report.Prefix = cb.EnumPrefix(e.Name)
			report.Derives = cb.AddDerives(callbacks.DeriveInfo{Name: e.Name, Kind: callbacks.KindEnum})
		}

		for _, en := range e.Enumerators {
			value := "?"
			vv := callbacks.VariantValue{Signed: en.Value}
			if en.Known {
				value = vv.String()
			}
			v := VariantReport{Original: en.Name, Name: en.Name, Value: value}
			if name, ok := cb.EnumVariantName(e.Name, en.Name, vv); ok {
				v.Name, v.Renamed = name, true
			}
			report.Variants = append(report.Variants, v)
		}
		resp.Enums = append(resp.Enums, report)
	}

	for _, m := range h.Macros {
		if cb.WillParseMacro(m.Name) == callbacks.MacroIgnore {
			resp.IgnoredMacros = append(resp.IgnoredMacros, m.Name)
		} else {
			resp.KeptMacros = append(resp.KeptMacros, m.Name)
		}
	}
	return resp
}
