package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	data := []byte("storage: sqlite\npath: " + dir + "\nfirst_weekday: monday\ntimezone: UTC\nevents: false\n")
	if err := os.WriteFile(filepath.Join(dir, ".spreads.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPREADS_CONFIG_PATH", dir)
	t.Setenv("SPREADS_LOG_DEBUG", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage != StorageSQLite {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.Path != dir {
		t.Errorf("path = %q, want %q", cfg.Path, dir)
	}
	if cfg.Events {
		t.Errorf("events should be disabled")
	}
	if !cfg.LogDebug {
		t.Errorf("log.debug should come from the environment")
	}
	cal, err := cfg.Calendar()
	if err != nil {
		t.Fatal(err)
	}
	if cal.FirstWeekday != time.Monday || cal.Location != time.UTC {
		t.Errorf("unexpected calendar %+v", cal)
	}
	if cfg.SQLitePath() != filepath.Join(dir, "spreads.sqlite") {
		t.Errorf("sqlite path = %q", cfg.SQLitePath())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]Config{
		"storage":  {Storage: "floppy"},
		"weekday":  {Storage: StorageDiskv, FirstWeekday: "someday"},
		"timezone": {Storage: StorageDiskv, Timezone: "Mars/Olympus"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected %s to be rejected", name)
			}
		})
	}
}
