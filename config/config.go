package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/cairo-panic/errors"
	"github.com/wippyai/cairo-panic/runtime"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "panicfmt.yaml"

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all settings of the panicfmt command.
type Config struct {
	Runtime RuntimeConfig `yaml:"runtime"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RuntimeConfig configures guest execution.
type RuntimeConfig struct {
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`
	Entry            string `yaml:"entry"`
	HostModule       string `yaml:"host_module"`
	Interpreter      bool   `yaml:"interpreter"`
}

// OutputConfig configures how results are printed.
type OutputConfig struct {
	JSON  bool   `yaml:"json"`
	Color string `yaml:"color"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			MemoryLimitPages: 256,
			Entry:            "main",
			HostModule:       runtime.DefaultHostModule,
		},
		Output: OutputConfig{
			Color: ColorAuto,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if err := cfg.applyEnvOverrides(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse "+path)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if entry := os.Getenv("PANICFMT_ENTRY"); entry != "" {
		c.Runtime.Entry = entry
	}
	if mod := os.Getenv("PANICFMT_HOST_MODULE"); mod != "" {
		c.Runtime.HostModule = mod
	}
	if pages := os.Getenv("PANICFMT_MEMORY_LIMIT_PAGES"); pages != "" {
		n, err := strconv.ParseUint(pages, 10, 32)
		if err != nil {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path("env", "PANICFMT_MEMORY_LIMIT_PAGES").
				Value(pages).
				Cause(err).
				Detail("memory limit must be a page count, got %q", pages).
				Build()
		}
		c.Runtime.MemoryLimitPages = uint32(n)
	}
	if level := os.Getenv("PANICFMT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

// Validate checks the settings for values the command cannot use.
func (c *Config) Validate() error {
	if c.Runtime.Entry == "" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("runtime", "entry").
			Detail("entry function must not be empty").
			Build()
	}
	if c.Runtime.HostModule == "" {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("runtime", "host_module").
			Detail("host module must not be empty").
			Build()
	}
	if c.Runtime.MemoryLimitPages > 65536 {
		return errors.Overflow(errors.PhaseConfig, []string{"runtime", "memory_limit_pages"}, c.Runtime.MemoryLimitPages, "65536 pages")
	}

	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("output", "color").
			Value(c.Output.Color).
			Detail("color must be one of auto, always, never; got %q", c.Output.Color).
			Build()
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("logging", "level").
			Value(c.Logging.Level).
			Cause(err).
			Detail("unknown log level %q", c.Logging.Level).
			Build()
	}

	return nil
}

// RuntimeOptions converts the runtime section for runtime.NewWithConfig.
func (c *Config) RuntimeOptions() *runtime.Config {
	return &runtime.Config{
		HostModule:       c.Runtime.HostModule,
		MemoryLimitPages: c.Runtime.MemoryLimitPages,
		Interpreter:      c.Runtime.Interpreter,
	}
}

// BuildLogger creates the logger described by the logging section.
// verbose forces the debug level.
func (c *LoggingConfig) BuildLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if c.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
