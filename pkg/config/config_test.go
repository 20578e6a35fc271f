package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danpilch/diskspace/pkg/diskspace"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if len(c.Sensors) != 1 {
		t.Fatalf("expected one sensor, got %d", len(c.Sensors))
	}
	s := c.Sensors[0]
	if s.Name != DefaultName || s.Path != "/" || s.Icon != "mdi:harddisk" || s.Unit != "GB" || s.ScanInterval != time.Minute {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "diskspace.yaml", `
log_level: debug
sensors:
  - name: Media
    path: /mnt/media
    unit_of_measure: TiB
    scan_interval: 5m
  - name: Root
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.LogLevel != "debug" || len(c.Sensors) != 2 {
		t.Fatalf("unexpected config: %+v", c)
	}
	media := c.Sensors[0]
	if media.Path != "/mnt/media" || media.Unit != "TiB" || media.ScanInterval != 5*time.Minute || media.Icon != "mdi:harddisk" {
		t.Fatalf("unexpected media sensor: %+v", media)
	}
	if c.Sensors[1].Path != "/" {
		t.Fatalf("expected default path for root sensor, got %q", c.Sensors[1].Path)
	}

	sc, err := media.SamplerConfig()
	if err != nil {
		t.Fatalf("SamplerConfig: %v", err)
	}
	if sc.DisplayUnit != diskspace.Tebibytes || sc.MinInterval != 5*time.Minute {
		t.Fatalf("unexpected sampler config: %+v", sc)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "sensors: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		sensors []SensorConfig
	}{
		{"missing name", []SensorConfig{{Path: "/", Unit: "GB", ScanInterval: time.Minute}}},
		{"duplicate", []SensorConfig{
			{Name: "a", Path: "/", Unit: "GB", ScanInterval: time.Minute},
			{Name: "a", Path: "/tmp", Unit: "GB", ScanInterval: time.Minute},
		}},
		{"bad unit", []SensorConfig{{Name: "a", Path: "/", Unit: "parsecs", ScanInterval: time.Minute}}},
		{"negative interval", []SensorConfig{{Name: "a", Path: "/", Unit: "GB", ScanInterval: -time.Second}}},
		{"empty", nil},
	}
	for _, tt := range tests {
		c := &Config{Sensors: tt.sensors}
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	_, err := SensorConfig{Name: "a", Unit: "GB"}.SamplerConfig()
	if !errors.Is(err, diskspace.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvName, "Backup")
	t.Setenv(EnvPath, "/srv/backup")
	t.Setenv(EnvUnit, "MB")
	t.Setenv(EnvInterval, "30s")
	t.Setenv(EnvLogLevel, "info")

	c := Default()
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	s := c.Sensors[0]
	if s.Name != "Backup" || s.Path != "/srv/backup" || s.Unit != "MB" || s.ScanInterval != 30*time.Second {
		t.Fatalf("unexpected sensor after env: %+v", s)
	}
	if c.LogLevel != "info" {
		t.Fatalf("unexpected log level %q", c.LogLevel)
	}

	t.Setenv(EnvInterval, "soon")
	if err := Default().ApplyEnv(); err == nil {
		t.Fatal("expected error for invalid interval")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"), false); err != nil {
		t.Fatalf("optional missing env file: %v", err)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "absent.env"), true); err == nil {
		t.Fatal("expected error for required missing env file")
	}

	t.Setenv(EnvPath, "")
	os.Unsetenv(EnvPath)
	path := writeFile(t, "test.env", EnvPath+"=/from/envfile\n")
	if err := LoadEnvFile(path, true); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv(EnvPath); got != "/from/envfile" {
		t.Fatalf("expected env file value, got %q", got)
	}
}

func TestExplicitZeroIntervalIsRejected(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvInterval, "0s")
		c := Default()
		if err := c.ApplyEnv(); err != nil {
			t.Fatalf("ApplyEnv: %v", err)
		}
		if c.Sensors[0].ScanInterval != 0 {
			t.Fatalf("expected explicit zero to be kept, got %v", c.Sensors[0].ScanInterval)
		}
		if err := c.Validate(); !errors.Is(err, diskspace.ErrInvalidInterval) {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		for _, v := range []string{"0s", "0", "-5s"} {
			c, err := Load(writeFile(t, "zero.yaml", "sensors:\n  - name: Root\n    scan_interval: "+v+"\n"))
			if err != nil {
				t.Fatalf("Load(%s): %v", v, err)
			}
			if err := c.Validate(); !errors.Is(err, diskspace.ErrInvalidInterval) {
				t.Errorf("scan_interval %s: expected ErrInvalidInterval, got %v", v, err)
			}
		}
	})

	t.Run("setter", func(t *testing.T) {
		c := Default()
		c.Sensors[0].SetScanInterval(0)
		c.applyDefaults()
		if err := c.Validate(); !errors.Is(err, diskspace.ErrInvalidInterval) {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}
	})
}

func TestScanIntervalForms(t *testing.T) {
	c, err := Load(writeFile(t, "forms.yaml", `
sensors:
  - name: seconds
    scan_interval: 90
  - name: duration
    scan_interval: 2m30s
  - name: absent
  - name: empty
    scan_interval:
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []time.Duration{90 * time.Second, 150 * time.Second, time.Minute, time.Minute}
	for i, w := range want {
		if got := c.Sensors[i].ScanInterval; got != w {
			t.Errorf("%s: interval = %v, want %v", c.Sensors[i].Name, got, w)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if _, err := Load(writeFile(t, "bad.yaml", "sensors:\n  - name: a\n    scan_interval: often\n")); err == nil {
		t.Fatal("expected error for unparseable scan_interval")
	}

	t.Setenv(EnvInterval, "45")
	env := Default()
	if err := env.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if env.Sensors[0].ScanInterval != 45*time.Second {
		t.Fatalf("expected integer seconds from env, got %v", env.Sensors[0].ScanInterval)
	}
}
