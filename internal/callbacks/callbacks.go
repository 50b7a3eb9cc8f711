// Package callbacks implements the hooks the binding generator invokes while
// it translates the processed header.
package callbacks

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"nmprep/internal/buildsignal"
	"nmprep/internal/naming"
	"nmprep/internal/slogutil"
)

// TypeKind is the kind of C type a derive request is made for.
type TypeKind int

const (
	KindStruct TypeKind = iota
	KindUnion
	KindEnum
)

func (k TypeKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// DeriveInfo describes the type the generator is about to emit.
type DeriveInfo struct {
	Name string
	Kind TypeKind
}

// MacroBehavior tells the generator what to do with a #define.
type MacroBehavior int

const (
	MacroDefault MacroBehavior = iota
	MacroIgnore
)

func (b MacroBehavior) String() string {
	if b == MacroIgnore {
		return "ignore"
	}
	return "default"
}

// VariantValue is the integer value of an enumerator.
type VariantValue struct {
	Signed   int64
	Unsigned uint64
	// IsUnsigned selects which field holds the value.
	IsUnsigned bool
}

func (v VariantValue) String() string {
	if v.IsUnsigned {
		return fmt.Sprintf("%d", v.Unsigned)
	}
	return fmt.Sprintf("%d", v.Signed)
}

// TryFromPrimitive is the derive requested for every enum.
const TryFromPrimitive = "TryFromPrimitive"

// Options configures Callbacks.
type Options struct {
	// Namespace is the identifier namespace, e.g. "NM". Macros named
	// Namespace+"_..." are skipped and digit-leading variants are escaped
	// with Namespace+"_".
	Namespace string
	// Overrides holds literal prefixes for irregular enums.
	Overrides naming.Overrides
	// EnumPattern selects the enums generated as native enums. It is
	// anchored at both ends. Empty matches every enum.
	EnumPattern string
}

// Callbacks holds the generator hooks.
type Callbacks struct {
	namespace string
	renamer   *naming.Renamer
	enums     *regexp.Regexp
	signals   *buildsignal.Emitter
	logger    *slog.Logger
}

// New creates Callbacks. signals receives env-var dependencies; nil discards them.
func New(opts Options, signals *buildsignal.Emitter, logger *slog.Logger) (*Callbacks, error) {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	if signals == nil {
		signals = buildsignal.NewEmitter(nil, "")
	}

	var enums *regexp.Regexp
	if opts.EnumPattern != "" {
		re, err := regexp.Compile("^(?:" + opts.EnumPattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid enum pattern %q: %w", opts.EnumPattern, err)
		}
		enums = re
	}

	escape := ""
	if opts.Namespace != "" {
		escape = opts.Namespace + "_"
	}

	return &Callbacks{
		namespace: opts.Namespace,
		renamer:   naming.NewRenamer(naming.NewDeriver(opts.Overrides, opts.Namespace), escape),
		enums:     enums,
		signals:   signals,
		logger:    logger,
	}, nil
}

// AddDerives returns the extra derives for a generated type: enums can be
// built fallibly from their integer value.
func (c *Callbacks) AddDerives(info DeriveInfo) []string {
	if info.Kind == KindEnum {
		return []string{TryFromPrimitive}
	}
	return nil
}

// WillParseMacro skips the namespace's macros, which only hold D-Bus paths
// and interface names.
func (c *Callbacks) WillParseMacro(name string) MacroBehavior {
	if c.namespace != "" && strings.HasPrefix(name, c.namespace+"_") {
		return MacroIgnore
	}
	return MacroDefault
}

// RenameEnum reports whether enumName is generated as a native enum.
func (c *Callbacks) RenameEnum(enumName string) bool {
	return c.enums == nil || c.enums.MatchString(enumName)
}

// EnumPrefix returns the prefix stripped from enumName's variants.
func (c *Callbacks) EnumPrefix(enumName string) string {
	return c.renamer.Prefix(enumName)
}

// EnumVariantName returns the short name for a variant, or false to keep the
// generator's default name.
func (c *Callbacks) EnumVariantName(enumName, original string, value VariantValue) (string, bool) {
	if enumName == "" {
		return "", false
	}
	name, ok := c.renamer.Rename(enumName, original)
	if !ok {
		c.logger.Debug("Keeping default variant name",
			"enum", enumName,
			"variant", original,
			"prefix", c.renamer.Prefix(enumName),
			"value", value.String(),
		)
	}
	return name, ok
}

// ReadEnvVar records that the generator read an environment variable.
func (c *Callbacks) ReadEnvVar(key string) {
	c.signals.RerunIfEnvChanged(key)
}
