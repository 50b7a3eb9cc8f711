package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatHuman:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want human, json or yaml)", s)
	}
}

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *VariantsResponse:
		return formatVariantsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatVariantsHuman(resp *VariantsResponse) string {
	var b strings.Builder

	b.WriteString(resp.Input + "\n")
	b.WriteString(strings.Repeat("─", 60) + "\n")
	if resp.Partial {
		b.WriteString("warning: header has syntax errors, listing may be incomplete\n")
	}

	for _, e := range resp.Enums {
		name := e.Name
		if name == "" {
			name = "(anonymous)"
		}
		b.WriteString("\n" + name)
		if e.Prefix != "" {
			b.WriteString("  prefix " + e.Prefix)
		}
		if !e.Rustified {
			b.WriteString("  (constants)")
		}
		if len(e.Derives) > 0 {
			b.WriteString("  derives " + strings.Join(e.Derives, ", "))
		}
		b.WriteString("\n")

		width := 0
		for _, v := range e.Variants {
			width = max(width, len(v.Original))
		}
		for _, v := range e.Variants {
			target := v.Name
			if !v.Renamed {
				target = "(unchanged)"
			}
			b.WriteString(fmt.Sprintf("  %-*s -> %s = %s\n", width, v.Original, target, v.Value))
		}
	}

	if len(resp.IgnoredMacros) > 0 {
		b.WriteString(fmt.Sprintf("\nIgnored macros (%d): %s\n", len(resp.IgnoredMacros), strings.Join(resp.IgnoredMacros, ", ")))
	}
	if len(resp.KeptMacros) > 0 {
		b.WriteString(fmt.Sprintf("Kept macros (%d): %s\n", len(resp.KeptMacros), strings.Join(resp.KeptMacros, ", ")))
	}

	return strings.TrimRight(b.String(), "\n")
}
