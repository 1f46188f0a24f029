// Package config defines the runtime configuration of the conformance suite:
// which targets to test, which admin accounts to try, timeouts, and report
// and notification settings. Configuration comes from a YAML file with
// environment variable expansion, validated after load; every field has a
// default so the suite can also run with no file at all.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

type Config struct {
	Targets          []Target      `yaml:"targets" validate:"min=1,dive"`
	AdminAccounts    []Credentials `yaml:"admin_accounts" validate:"min=1,dive"`
	ProbeTimeout     Duration      `yaml:"probe_timeout"`
	PreflightTimeout Duration      `yaml:"preflight_timeout"`
	MaxBodyBytes     int           `yaml:"max_body_bytes" validate:"min=0"`
	OutputDir        string        `yaml:"output_dir"`
	Notify           *Notify       `yaml:"notify"`
}

// Target is one deployment of the service under test.
type Target struct {
	Label   string `yaml:"label" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
}

type Credentials struct {
	Username string `yaml:"username" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// Notify configures optional run-summary notifications. URLs are Shoutrrr
// service URLs; Template overrides the built-in message template.
type Notify struct {
	URLs      []string `yaml:"urls"`
	Template  string   `yaml:"template"`
	OnSuccess bool     `yaml:"on_success"`
}

// Duration handles YAML duration strings such as "10s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return fmt.Errorf("duration: must be a string such as \"10s\"")
	}
	parsed, err := time.ParseDuration(str)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Value() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no config file is present:
// the three standard deployment modes, the standard admin accounts, and the
// original timeout and truncation settings.
func Default() *Config {
	return &Config{
		Targets: []Target{
			{Label: "monolithic", BaseURL: "http://localhost:8080"},
			{Label: "layered", BaseURL: "http://localhost:8090"},
			{Label: "microservices", BaseURL: "http://localhost:30080"},
		},
		AdminAccounts: []Credentials{
			{Username: "sysadmin", Password: "Admin123"},
			{Username: "testadmin", Password: "Admin123"},
		},
		ProbeTimeout:     Duration(10 * time.Second),
		PreflightTimeout: Duration(5 * time.Second),
		MaxBodyBytes:     harness.DefaultMaxBodyBytes,
		OutputDir:        "docs",
	}
}

// Load reads, expands, parses, and validates the config file at path.
// Fields left unset fall back to their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the config from the given explicit path, or from
// ./conformance.yaml if one exists, or returns the defaults.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file not found: %s", explicit)
		}
		return Load(explicit)
	}
	if _, err := os.Stat("conformance.yaml"); err == nil {
		return Load("conformance.yaml")
	}
	return Default(), nil
}

// applyDefaults restores defaults for fields an explicit config set to their
// zero values, such as an empty targets list.
func applyDefaults(cfg *Config) {
	def := Default()
	if len(cfg.Targets) == 0 {
		cfg.Targets = def.Targets
	}
	if len(cfg.AdminAccounts) == 0 {
		cfg.AdminAccounts = def.AdminAccounts
	}
	if cfg.ProbeTimeout == 0 {
		cfg.ProbeTimeout = def.ProbeTimeout
	}
	if cfg.PreflightTimeout == 0 {
		cfg.PreflightTimeout = def.PreflightTimeout
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	seen := make(map[string]bool, len(cfg.Targets))
	for _, t := range cfg.Targets {
		if seen[t.Label] {
			return fmt.Errorf("invalid config: duplicate target label %q", t.Label)
		}
		seen[t.Label] = true
	}
	return nil
}

// SelectTargets filters the target list down to the given labels, keeping
// configuration order. An empty selector keeps everything.
func (c *Config) SelectTargets(labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}
	var selected []Target
	for _, t := range c.Targets {
		if want[t.Label] {
			selected = append(selected, t)
			delete(want, t.Label)
		}
	}
	for l := range want {
		return fmt.Errorf("unknown target label %q", l)
	}
	c.Targets = selected
	return nil
}
