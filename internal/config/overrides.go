package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	preperrors "nmprep/internal/errors"
	"nmprep/internal/naming"
	"nmprep/internal/paths"
)

// overridesFile is the layout of .nmprep/overrides.toml:
//
//	[prefixes]
//	NMExampleFlags = "NM_EXAMPLE_"
type overridesFile struct {
	Prefixes map[string]string `toml:"prefixes"`
}

// LoadOverrides returns the built-in prefix overrides merged with the entries of
// the configured override file. A missing file is not an error.
func LoadOverrides(repoRoot string, cfg *Config) (naming.Overrides, error) {
	defaults := naming.DefaultOverrides()
	if cfg == nil || cfg.Naming.OverridesFile == "" {
		return defaults, nil
	}

	path := paths.ResolveRepoPath(repoRoot, cfg.Naming.OverridesFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	if err != nil {
		return nil, preperrors.Wrap(preperrors.InvalidConfig, err, "reading override table %s", path)
	}

	extra, err := ParseOverrides(string(data))
	if err != nil {
		return nil, preperrors.Wrap(preperrors.InvalidConfig, err, "parsing override table %s", path)
	}
	return defaults.Merge(extra), nil
}

// ParseOverrides decodes an override table. Unknown keys and empty prefixes
// are rejected.
func ParseOverrides(data string) (naming.Overrides, error) {
	var f overridesFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, preperrors.New(preperrors.InvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	out := make(naming.Overrides, len(f.Prefixes))
	for name, prefix := range f.Prefixes {
		if strings.TrimSpace(prefix) == "" {
			return nil, preperrors.New(preperrors.InvalidConfig, "empty prefix for %s", name)
		}
		out[name] = prefix
	}
	return out, nil
}
