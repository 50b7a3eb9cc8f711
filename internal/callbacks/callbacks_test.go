package callbacks

import (
	"bytes"
	"strings"
	"testing"

	"nmprep/internal/buildsignal"
	"nmprep/internal/naming"
)

func newTestCallbacks(t *testing.T, signals *buildsignal.Emitter) *Callbacks {
	t.Helper()
	cb, err := New(Options{
		Namespace:   "NM",
		Overrides:   naming.DefaultOverrides(),
		EnumPattern: "NM.*",
	}, signals, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return cb
}

func TestAddDerives(t *testing.T) {
	cb := newTestCallbacks(t, nil)

	got := cb.AddDerives(DeriveInfo{Name: "NMState", Kind: KindEnum})
	if len(got) != 1 || got[0] != TryFromPrimitive {
		t.Errorf("enum derives = %v", got)
	}
	for _, k := range []TypeKind{KindStruct, KindUnion} {
		if got := cb.AddDerives(DeriveInfo{Name: "x", Kind: k}); len(got) != 0 {
			t.Errorf("%s derives = %v, want none", k, got)
		}
	}
}

func TestWillParseMacro(t *testing.T) {
	cb := newTestCallbacks(t, nil)

	tests := []struct {
		name string
		want MacroBehavior
	}{
		{"NM_DBUS_PATH", MacroIgnore},
		{"NM_DBUS_INTERFACE_DEVICE", MacroIgnore},
		{"NMX", MacroDefault},
		{"__NM_DBUS_INTERFACE_H__", MacroDefault},
		{"G_BEGIN_DECLS", MacroDefault},
	}
	for _, tt := range tests {
		if got := cb.WillParseMacro(tt.name); got != tt.want {
			t.Errorf("WillParseMacro(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEnumVariantName(t *testing.T) {
	cb := newTestCallbacks(t, nil)

	tests := []struct {
		enum, variant string
		want          string
		wantOK        bool
	}{
		{"NMState", "NM_STATE_CONNECTED_SITE", "CONNECTED_SITE", true},
		{"NMConnectivityState", "NM_CONNECTIVITY_PORTAL", "PORTAL", true},
		{"NM80211Mode", "NM_802_11_MODE_AP", "AP", true},
		{"NMWifiBand", "NM_WIFI_BAND_2_4_GHZ", "NM_2_4_GHZ", true},
		{"NMState", "NM_DEVICE_STATE_FAILED", "", false},
		{"", "NM_STATE_ASLEEP", "", false},
	}
	for _, tt := range tests {
		got, ok := cb.EnumVariantName(tt.enum, tt.variant, VariantValue{Signed: 1})
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("EnumVariantName(%q, %q) = %q, %v; want %q, %v", tt.enum, tt.variant, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRenameEnum(t *testing.T) {
	cb := newTestCallbacks(t, nil)
	if !cb.RenameEnum("NMState") {
		t.Error("NMState should match NM.*")
	}
	if cb.RenameEnum("GBusType") {
		t.Error("GBusType should not match NM.*")
	}
	if cb.RenameEnum("XNMState") {
		t.Error("pattern should be anchored")
	}

	all, err := New(Options{Namespace: "NM"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !all.RenameEnum("anything") {
		t.Error("empty pattern should match every enum")
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New(Options{EnumPattern: "NM("}, nil, nil); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestReadEnvVar(t *testing.T) {
	var buf bytes.Buffer
	cb := newTestCallbacks(t, buildsignal.NewEmitter(&buf, buildsignal.DefaultPrefix))

	cb.ReadEnvVar("BINDGEN_EXTRA_CLANG_ARGS")
	cb.ReadEnvVar("BINDGEN_EXTRA_CLANG_ARGS")

	if got := strings.Count(buf.String(), "cargo:rerun-if-env-changed=BINDGEN_EXTRA_CLANG_ARGS"); got != 1 {
		t.Errorf("directive emitted %d times, output %q", got, buf.String())
	}
}

func TestVariantValue_String(t *testing.T) {
	if got := (VariantValue{Signed: -1}).String(); got != "-1" {
		t.Errorf("got %q", got)
	}
	if got := (VariantValue{Unsigned: 1 << 63, IsUnsigned: true}).String(); got != "9223372036854775808" {
		t.Errorf("got %q", got)
	}
}
