// Package naming derives short enumerator names for generated bindings.
//
// C enumerators repeat their enum's name as a prefix (NMState ->
// NM_STATE_CONNECTED_GLOBAL). Deriver computes that prefix and Normalize
// strips it, so the generated variant reads NMState::CONNECTED_GLOBAL.
package naming

import "strings"

// DefaultRoot is the namespace token enum names start with.
const DefaultRoot = "NM"

// Overrides maps enum names to literal prefixes for enums whose enumerators
// do not follow their CamelCase name.
type Overrides map[string]string

// DefaultOverrides returns a fresh copy of the built-in override table.
func DefaultOverrides() Overrides {
	return Overrides{
		"NMConnectivityState":       "NM_CONNECTIVITY_",
		"NMDeviceCapabilities":      "NM_DEVICE_CAP_",
		"NMDeviceWifiCapabilities":  "NM_WIFI_DEVICE_CAP_",
		"NM80211ApFlags":            "NM_802_11_AP_FLAGS_",
		"NM80211ApSecurityFlags":    "NM_802_11_AP_SEC_",
		"NM80211Mode":               "NM_802_11_MODE_",
		"NMBluetoothCapabilities":   "NM_BT_CAPABILITY_",
		"NMDeviceModemCapabilities": "NM_DEVICE_MODEM_CAPABILITY_",
		"NMSecretAgentCapabilities": "NM_SECRET_AGENT_CAPABILITY_",
		"NMIPTunnelMode":            "NM_IP_TUNNEL_MODE_",
	}
}

// Merge returns a new table holding o's entries overlaid with extra's.
func (o Overrides) Merge(extra Overrides) Overrides {
	merged := make(Overrides, len(o)+len(extra))
	for k, v := range o {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// Deriver computes enumerator prefixes. It holds no mutable state; the
// override table must not be modified after construction.
type Deriver struct {
	overrides Overrides
	root      string
}

// NewDeriver creates a Deriver. An empty root disables root-token splitting.
func NewDeriver(overrides Overrides, root string) *Deriver {
	return &Deriver{overrides: overrides, root: root}
}

// Root returns the namespace token the deriver splits off.
func (d *Deriver) Root() string {
	return d.root
}

// Override returns the literal prefix configured for enumName, if any.
func (d *Deriver) Override(enumName string) (string, bool) {
	p, ok := d.overrides[enumName]
	return p, ok
}

// Prefix returns the prefix shared by enumName's enumerators, including the
// trailing underscore.
func (d *Deriver) Prefix(enumName string) string {
	if p, ok := d.Override(enumName); ok {
		return p
	}
	return SplitCamel(enumName, d.root)
}

// SplitCamel derives a prefix from a CamelCase enum name: the root token (if
// the name starts with it) becomes its own segment, the rest is cut before
// every ASCII uppercase letter, a trailing "Flags" becomes "Flag", and the
// segments are upper-cased and joined with '_'.
//
//	SplitCamel("NMDeviceStateReason", "NM") == "NM_DEVICE_STATE_REASON_"
//	SplitCamel("ExampleFlags", "NM")        == "EXAMPLE_FLAG_"
func SplitCamel(enumName, root string) string {
	var parts []string

	name := enumName
	if root != "" && strings.HasPrefix(name, root) {
		parts = append(parts, root)
		name = name[len(root):]
	}

	start := 0
	for i := 0; i < len(name); i++ {
		if isUpper(name[i]) && i != start {
			parts = append(parts, name[start:i])
			start = i
		}
	}
	last := name[start:]
	if strings.HasSuffix(last, "Flags") {
		last = last[:len(last)-1]
	}
	parts = append(parts, last)

	return strings.ToUpper(strings.Join(parts, "_")) + "_"
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}
