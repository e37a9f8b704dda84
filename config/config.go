package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/flowpath/motion"
	"github.com/lixenwraith/flowpath/navigation"
	"github.com/lixenwraith/flowpath/parameter"
)

// EnvPrefix namespaces environment overrides, e.g. FLOWPATH_SEARCH_STRICT
const EnvPrefix = "FLOWPATH"

// Config is the application configuration
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search"`
	Smoothing SmoothingConfig `mapstructure:"smoothing" yaml:"smoothing"`
	Sandbox   SandboxConfig   `mapstructure:"sandbox" yaml:"sandbox"`
}

// LoggerConfig drives observability.NewLogger
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // console or json
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	Console     bool   `mapstructure:"console" yaml:"console"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

type SearchConfig struct {
	IterationCap int    `mapstructure:"iteration_cap" yaml:"iteration_cap"`
	StepBudget   int    `mapstructure:"step_budget" yaml:"step_budget"`
	Heuristic    string `mapstructure:"heuristic" yaml:"heuristic"`
	Strict       bool   `mapstructure:"strict" yaml:"strict"`
}

type SmoothingConfig struct {
	InitialHeading string `mapstructure:"initial_heading" yaml:"initial_heading"`
}

// SandboxConfig tunes the interactive terminal view
type SandboxConfig struct {
	Tick             time.Duration `mapstructure:"tick" yaml:"tick"`
	StepsPerTick     int           `mapstructure:"steps_per_tick" yaml:"steps_per_tick"`
	AgentSpeed       float64       `mapstructure:"agent_speed" yaml:"agent_speed"` // Segments per second
	Sound            bool          `mapstructure:"sound" yaml:"sound"`
	ReloadsPerSecond float64       `mapstructure:"reloads_per_second" yaml:"reloads_per_second"`
}

// SetDefaults registers every key so env overrides resolve without a config file
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "flowpath")
	v.SetDefault("logger.console", true)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	v.SetDefault("search.iteration_cap", parameter.NavIterationCap)
	v.SetDefault("search.step_budget", parameter.NavStepBudget)
	v.SetDefault("search.heuristic", "manhattan")
	v.SetDefault("search.strict", false)

	v.SetDefault("smoothing.initial_heading", "S")

	v.SetDefault("sandbox.tick", parameter.SandboxTickInterval)
	v.SetDefault("sandbox.steps_per_tick", parameter.NavStepBudget)
	v.SetDefault("sandbox.agent_speed", parameter.SandboxAgentSpeed)
	v.SetDefault("sandbox.sound", false)
	v.SetDefault("sandbox.reloads_per_second", parameter.SandboxReloadsPerSecond)
}

// Load reads file (optional) plus FLOWPATH_* environment into a validated Config
// An empty file searches ./flowpath.yaml and tolerates its absence
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("flowpath")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper unmarshals and validates an already populated viper instance
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with no file or environment applied
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := FromViper(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.Search.IterationCap <= 0 {
		return fmt.Errorf("search.iteration_cap must be positive")
	}
	if c.Search.StepBudget <= 0 {
		return fmt.Errorf("search.step_budget must be positive")
	}
	if _, err := navigation.ParseHeuristic(c.Search.Heuristic); err != nil {
		return err
	}
	if _, err := motion.ParseDirection(c.Smoothing.InitialHeading); err != nil {
		return err
	}
	if c.Sandbox.Tick <= 0 {
		return fmt.Errorf("sandbox.tick must be positive")
	}
	if c.Sandbox.StepsPerTick <= 0 {
		return fmt.Errorf("sandbox.steps_per_tick must be positive")
	}
	if c.Sandbox.ReloadsPerSecond <= 0 {
		return fmt.Errorf("sandbox.reloads_per_second must be positive")
	}
	return nil
}

// SearchOptions converts the search section for navigation.WithSearchOptions
func (s SearchConfig) SearchOptions() navigation.SearchOptions {
	mode, _ := navigation.ParseHeuristic(s.Heuristic)
	return navigation.SearchOptions{
		IterationCap: s.IterationCap,
		StepBudget:   s.StepBudget,
		Heuristic:    mode,
		Strict:       s.Strict,
	}
}

// Heading returns the validated initial smoothing heading
func (s SmoothingConfig) Heading() motion.Direction {
	d, _ := motion.ParseDirection(s.InitialHeading)
	return d
}

// PlannerOptions bundles the navigation options derived from the config
func (c *Config) PlannerOptions() []navigation.Option {
	return []navigation.Option{
		navigation.WithSearchOptions(c.Search.SearchOptions()),
		navigation.WithInitialHeading(c.Smoothing.Heading()),
	}
}
