package naming

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		variant string
		prefix  string
		want    string
		wantOK  bool
	}{
		{"strip", "NM_STATE_CONNECTED_GLOBAL", "NM_STATE_", "CONNECTED_GLOBAL", true},
		{"digit leading", "NM_FOO_2_4_GHZ", "NM_FOO_", "NM_2_4_GHZ", true},
		{"every digit", "NM_FOO_9", "NM_FOO_", "NM_9", true},
		{"prefix mismatch", "NM_BAR_A", "NM_FOO_", "", false},
		{"nothing left", "NM_FOO_", "NM_FOO_", "", false},
		{"case sensitive", "nm_foo_a", "NM_FOO_", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.variant, tt.prefix, "NM_")
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Normalize(%q, %q) = %q, %v; want %q, %v", tt.variant, tt.prefix, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRenamer(t *testing.T) {
	r := NewRenamer(NewDeriver(DefaultOverrides(), DefaultRoot), "")

	tests := []struct {
		enum    string
		variant string
		want    string
		wantOK  bool
	}{
		{"NMState", "NM_STATE_ASLEEP", "ASLEEP", true},
		{"NMConnectivityState", "NM_CONNECTIVITY_FULL", "FULL", true},
		{"NM80211ApSecurityFlags", "NM_802_11_AP_SEC_PAIR_WEP40", "PAIR_WEP40", true},
		{"NMDeviceWifiCapabilities", "NM_WIFI_DEVICE_CAP_FREQ_2GHZ", "FREQ_2GHZ", true},
		{"NMWifiBand", "NM_WIFI_BAND_5_GHZ", "NM_5_GHZ", true},
		{"NMDeviceType", "NM_STATE_ASLEEP", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			got, ok := r.Rename(tt.enum, tt.variant)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Rename(%q, %q) = %q, %v; want %q, %v", tt.enum, tt.variant, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestRenamer_EscapeDefaultsToRoot(t *testing.T) {
	r := NewRenamer(NewDeriver(nil, "GDK"), "")
	if got, _ := r.Rename("GDKKeySym", "GDK_KEY_SYM_1"); got != "GDK_1" {
		t.Errorf("got %q, want GDK_1", got)
	}

	explicit := NewRenamer(NewDeriver(nil, "GDK"), "K_")
	if got, _ := explicit.Rename("GDKKeySym", "GDK_KEY_SYM_1"); got != "K_1" {
		t.Errorf("got %q, want K_1", got)
	}
}
