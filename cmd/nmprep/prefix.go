package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nmprep/internal/config"
	"nmprep/internal/naming"
)

var prefixCmd = &cobra.Command{
	Use:   "prefix <EnumName>...",
	Short: "Print the enumerator prefix derived for enum names",
	Long: `Print the prefix stripped from each enum's enumerators.

Examples:
  nmprep prefix NMDeviceStateReason       # NM_DEVICE_STATE_REASON_
  nmprep prefix NM80211Mode               # NM_802_11_MODE_ (override)`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSession(runPrefix),
}

func init() {
	rootCmd.AddCommand(prefixCmd)
}

// PrefixResult is one row of `nmprep prefix`.
type PrefixResult struct {
	Enum     string
	Prefix   string
	Override bool
}

func runPrefix(s *session, cmd *cobra.Command, args []string) error {
	overrides, err := config.LoadOverrides(s.repoRoot, s.cfg)
	if err != nil {
		return err
	}
	d := naming.NewDeriver(overrides, s.cfg.Header.Namespace)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, r := range derivePrefixes(d, args) {
		source := "derived"
		if r.Override {
			source = "override"
		}
		fmt.Fprintf(w, "%s\t%s\t(%s)\n", r.Enum, r.Prefix, source)
	}
	return w.Flush()
}

func derivePrefixes(d *naming.Deriver, names []string) []PrefixResult {
	results := make([]PrefixResult, 0, len(names))
	for _, name := range names {
		_, override := d.Override(name)
		results = append(results, PrefixResult{Enum: name, Prefix: d.Prefix(name), Override: override})
	}
	return results
}
