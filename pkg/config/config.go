// Package config loads sensor definitions from YAML, an optional .env file
// and DISKSPACE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danpilch/diskspace/pkg/diskspace"
	"github.com/danpilch/diskspace/pkg/sensor"
)

// Environment variables read by ApplyEnv.
const (
	EnvPath     = "DISKSPACE_PATH"
	EnvName     = "DISKSPACE_NAME"
	EnvIcon     = "DISKSPACE_ICON"
	EnvUnit     = "DISKSPACE_UNIT"
	EnvInterval = "DISKSPACE_INTERVAL"
	EnvLogLevel = "DISKSPACE_LOG_LEVEL"
)

// DefaultName is the sensor name used when none is configured.
const DefaultName = "Root"

// SensorConfig is one configured sensor. In YAML, scan_interval accepts a
// duration string ("90s", "5m") or a plain number of seconds.
type SensorConfig struct {
	Name         string
	Path         string
	Icon         string
	Unit         string
	ScanInterval time.Duration

	// intervalSet records an explicitly configured interval, so that an
	// explicit zero is rejected instead of replaced by the default.
	intervalSet bool
}

// UnmarshalYAML decodes a sensor, tracking whether scan_interval was given.
func (s *SensorConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name         string    `yaml:"name"`
		Path         string    `yaml:"path"`
		Icon         string    `yaml:"icon"`
		Unit         string    `yaml:"unit_of_measure"`
		ScanInterval yaml.Node `yaml:"scan_interval"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	*s = SensorConfig{
		Name: raw.Name,
		Path: raw.Path,
		Icon: raw.Icon,
		Unit: raw.Unit,
	}
	if raw.ScanInterval.Kind == 0 || raw.ScanInterval.Tag == "!!null" {
		return nil
	}
	d, err := ParseInterval(raw.ScanInterval.Value)
	if err != nil {
		return fmt.Errorf("line %d: scan_interval: %w", raw.ScanInterval.Line, err)
	}
	s.ScanInterval = d
	s.intervalSet = true
	return nil
}

// SetScanInterval sets an explicit interval; zero or negative values are
// left for Validate to reject.
func (s *SensorConfig) SetScanInterval(d time.Duration) {
	s.ScanInterval = d
	s.intervalSet = true
}

// ParseInterval parses a duration string or an integer number of seconds.
func ParseInterval(v string) (time.Duration, error) {
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: want a duration like 90s or seconds", v)
	}
	return d, nil
}

// Config is the full configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Sensors  []SensorConfig `yaml:"sensors"`
}

// Default returns a single sensor for the root filesystem.
func Default() *Config {
	c := &Config{Sensors: []SensorConfig{{Name: DefaultName}}}
	c.applyDefaults()
	return c
}

// Load reads a YAML config file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	if len(c.Sensors) == 0 {
		c.Sensors = []SensorConfig{{Name: DefaultName}}
	}
	c.applyDefaults()
	return &c, nil
}

// LoadEnvFile loads variables from a .env file into the process
// environment without overriding ones already set. A missing file is not
// an error unless required is set.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot load env file %q: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides the log level and the first sensor from DISKSPACE_*
// variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if len(c.Sensors) == 0 {
		c.Sensors = []SensorConfig{{Name: DefaultName}}
	}
	s := &c.Sensors[0]
	if v, ok := os.LookupEnv(EnvName); ok {
		s.Name = v
	}
	if v, ok := os.LookupEnv(EnvPath); ok {
		s.Path = v
	}
	if v, ok := os.LookupEnv(EnvIcon); ok {
		s.Icon = v
	}
	if v, ok := os.LookupEnv(EnvUnit); ok {
		s.Unit = v
	}
	if v, ok := os.LookupEnv(EnvInterval); ok {
		d, err := ParseInterval(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvInterval, err)
		}
		s.SetScanInterval(d)
	}
	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	for i := range c.Sensors {
		s := &c.Sensors[i]
		if s.Path == "" {
			s.Path = diskspace.DefaultPath
		}
		if s.Icon == "" {
			s.Icon = sensor.DefaultIcon
		}
		if s.Unit == "" {
			s.Unit = string(diskspace.DefaultUnit)
		}
		if !s.intervalSet && s.ScanInterval == 0 {
			s.ScanInterval = diskspace.DefaultMinInterval
		}
	}
}

// Validate checks every sensor definition.
func (c *Config) Validate() error {
	if len(c.Sensors) == 0 {
		return errors.New("no sensors configured")
	}
	seen := make(map[string]bool, len(c.Sensors))
	for i, s := range c.Sensors {
		if s.Name == "" {
			return fmt.Errorf("sensor %d: name is required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("sensor %q: duplicate name", s.Name)
		}
		seen[s.Name] = true
		if _, err := s.SamplerConfig(); err != nil {
			return fmt.Errorf("sensor %q: %w", s.Name, err)
		}
	}
	return nil
}

// SamplerConfig converts the definition into a sampler config.
func (s SensorConfig) SamplerConfig() (diskspace.Config, error) {
	unit, err := diskspace.ParseUnit(s.Unit)
	if err != nil {
		return diskspace.Config{}, err
	}
	if s.ScanInterval <= 0 {
		return diskspace.Config{}, diskspace.ErrInvalidInterval
	}
	return diskspace.Config{
		Path:        s.Path,
		MinInterval: s.ScanInterval,
		DisplayUnit: unit,
	}, nil
}
