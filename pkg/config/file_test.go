package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/battray/battray/pkg/power"
)

func TestFileDefaultsWhenMissing(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "battray.json"))
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if f.SysfsRoot() != power.DefaultSysfsRoot {
		t.Errorf("SysfsRoot = %q, want default", f.SysfsRoot())
	}
	if f.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess should default to false")
	}
	if f.BackendTimeout() != power.DefaultBackendTimeout {
		t.Errorf("BackendTimeout = %v, want %v", f.BackendTimeout(), power.DefaultBackendTimeout)
	}
	if f.PreferredBackends() != nil {
		t.Error("PreferredBackends should default to nil")
	}
}

func TestFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")
	raw := `{
  "sysfsRoot": "/tmp/power_supply",
  "allowNonRootAccess": true,
  "backendTimeoutSeconds": 3,
  "preferredBackends": {"linux": ["sysfs"]}
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	if f.SysfsRoot() != "/tmp/power_supply" {
		t.Errorf("SysfsRoot = %q", f.SysfsRoot())
	}
	if !f.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess should be true")
	}
	if f.BackendTimeout() != 3*time.Second {
		t.Errorf("BackendTimeout = %v, want 3s", f.BackendTimeout())
	}
	if got := f.PreferredBackends()["linux"]; len(got) != 1 || got[0] != "sysfs" {
		t.Errorf("PreferredBackends[linux] = %v", got)
	}
}

func TestFileSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	f.SetAllowNonRootAccess(true)
	if err := f.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	g, err := NewFile(path)
	if err != nil {
		t.Fatalf("NewFile (reload) returned error: %v", err)
	}
	if !g.AllowNonRootAccess() {
		t.Error("AllowNonRootAccess should survive a save/load round trip")
	}
}

func TestFileMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battray.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := NewFile(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
