package main

import (
	"strings"
	"testing"

	"nmprep/internal/callbacks"
	"nmprep/internal/cheader"
	"nmprep/internal/naming"
)

func testCallbacks(t *testing.T) *callbacks.Callbacks {
	t.Helper()
	cb, err := callbacks.New(callbacks.Options{
		Namespace:   "NM",
		Overrides:   naming.DefaultOverrides(),
		EnumPattern: "NM.*",
	}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return cb
}

func testHeader() *cheader.Header {
	return &cheader.Header{
		Enums: []cheader.Enum{
			{Name: "NMState", Typedef: true, Enumerators: []cheader.Enumerator{
				{Name: "NM_STATE_UNKNOWN", Value: 0, Known: true},
				{Name: "NM_STATE_ASLEEP", Value: 10, Known: true},
			}},
			{Name: "NM80211Mode", Typedef: true, Enumerators: []cheader.Enumerator{
				{Name: "NM_802_11_MODE_UNKNOWN", Value: 0, Known: true},
				{Name: "NM_802_11_MODE_ADHOC", Value: 1, Known: true},
			}},
			{Name: "ExampleFlags", Typedef: true, Enumerators: []cheader.Enumerator{
				{Name: "EXAMPLE_FLAG_2GHZ", Value: 1, Known: true},
				{Name: "OTHER_THING", Known: false},
			}},
			{Name: "", Enumerators: []cheader.Enumerator{
				{Name: "NM_ANON_A", Value: 0, Known: true},
			}},
		},
		Macros: []cheader.Macro{
			{Name: "NM_DBUS_PATH"},
			{Name: "G_VALUE"},
		},
	}
}

func TestBuildVariantsResponse_Pattern(t *testing.T) {
	resp := buildVariantsResponse("nm.h", testHeader(), testCallbacks(t), false)

	if len(resp.Enums) != 2 {
		t.Fatalf("got %d enums, want 2 (NMState, NM80211Mode)", len(resp.Enums))
	}

	state := resp.Enums[0]
	if state.Name != "NMState" || state.Prefix != "NM_STATE_" || !state.Rustified {
		t.Errorf("NMState report = %+v", state)
	}
	if len(state.Derives) != 1 || state.Derives[0] != callbacks.TryFromPrimitive {
		t.Errorf("Derives = %v", state.Derives)
	}
	if v := state.Variants[1]; v.Name != "ASLEEP" || !v.Renamed || v.Value != "10" {
		t.Errorf("NM_STATE_ASLEEP = %+v", v)
	}

	mode := resp.Enums[1]
	if mode.Prefix != "NM_802_11_MODE_" {
		t.Errorf("NM80211Mode prefix = %q, want override", mode.Prefix)
	}
	if mode.Variants[1].Name != "ADHOC" {
		t.Errorf("NM_802_11_MODE_ADHOC -> %q", mode.Variants[1].Name)
	}

	if strings.Join(resp.IgnoredMacros, ",") != "NM_DBUS_PATH" {
		t.Errorf("IgnoredMacros = %v", resp.IgnoredMacros)
	}
	if strings.Join(resp.KeptMacros, ",") != "G_VALUE" {
		t.Errorf("KeptMacros = %v", resp.KeptMacros)
	}
}

func TestBuildVariantsResponse_All(t *testing.T) {
	resp := buildVariantsResponse("nm.h", testHeader(), testCallbacks(t), true)

	if len(resp.Enums) != 4 {
		t.Fatalf("got %d enums, want 4", len(resp.Enums))
	}

	example := resp.Enums[2]
	if example.Rustified {
		t.Error("ExampleFlags should not match NM.*")
	}
	if example.Prefix != "EXAMPLE_FLAG_" {
		t.Errorf("ExampleFlags prefix = %q", example.Prefix)
	}
	if v := example.Variants[0]; v.Name != "NM_2GHZ" || !v.Renamed {
		t.Errorf("digit-leading variant = %+v", v)
	}
	if v := example.Variants[1]; v.Renamed || v.Name != "OTHER_THING" || v.Value != "?" {
		t.Errorf("non-matching variant = %+v", v)
	}

	anon := resp.Enums[3]
	if anon.Prefix != "" || anon.Variants[0].Renamed {
		t.Errorf("anonymous enum should not be renamed: %+v", anon)
	}
}

func TestFormatVariantsHuman(t *testing.T) {
	resp := buildVariantsResponse("nm.h", testHeader(), testCallbacks(t), true)
	out := formatVariantsHuman(resp)

	for _, want := range []string{
		"NMState  prefix NM_STATE_  derives TryFromPrimitive",
		"NM_STATE_ASLEEP  -> ASLEEP = 10",
		"ExampleFlags  prefix EXAMPLE_FLAG_  (constants)",
		"(anonymous)",
		"Ignored macros (1): NM_DBUS_PATH",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
