package buildsignal

import (
	"bytes"
	"errors"
	"testing"
)

func TestEmitter_Directives(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultPrefix)

	e.RerunIfChanged("nm-dbus-interface.h")
	e.RerunIfEnvChanged("OUT_DIR")

	want := "cargo:rerun-if-changed=nm-dbus-interface.h\ncargo:rerun-if-env-changed=OUT_DIR\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestEmitter_Dedup(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf, "")

	e.RerunIfEnvChanged("CLANG_PATH")
	e.RerunIfEnvChanged("CLANG_PATH")
	e.RerunIfChanged("CLANG_PATH")

	want := "rerun-if-env-changed=CLANG_PATH\nrerun-if-changed=CLANG_PATH\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestEmitter_LookupEnv(t *testing.T) {
	t.Setenv("NMPREP_TEST_OUT", "/tmp/out")

	var buf bytes.Buffer
	e := NewEmitter(&buf, DefaultPrefix)

	v, ok := e.LookupEnv("NMPREP_TEST_OUT")
	if !ok || v != "/tmp/out" {
		t.Errorf("LookupEnv = %q, %v", v, ok)
	}
	if buf.String() != "cargo:rerun-if-env-changed=NMPREP_TEST_OUT\n" {
		t.Errorf("output = %q", buf.String())
	}

	if _, ok := e.LookupEnv("NMPREP_TEST_UNSET_VARIABLE"); ok {
		t.Error("unset variable should report false")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestEmitter_Err(t *testing.T) {
	e := NewEmitter(failingWriter{}, DefaultPrefix)
	e.RerunIfChanged("a.h")
	if e.Err() == nil {
		t.Error("expected write error to be recorded")
	}

	if NewEmitter(nil, DefaultPrefix).Err() != nil {
		t.Error("nil writer should discard without error")
	}
}
