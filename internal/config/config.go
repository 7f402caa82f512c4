package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the service.
// Values come from defaults, an optional config file and DIETOPT_* env vars,
// in increasing order of precedence.
type Config struct {
	// Server
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// Solver
	SolverTimeout time.Duration `mapstructure:"solver_timeout"`
	MaxFoods      int           `mapstructure:"max_foods"`

	// Simplex pivot tolerance passed straight to the LP routine.
	PivotTol float64 `mapstructure:"pivot_tol"`

	// QuantityEpsilon suppresses solver noise: foods at or below this
	// quantity are omitted from the reported solution.
	QuantityEpsilon float64 `mapstructure:"quantity_epsilon"`

	// Constraint satisfaction tolerance: relative with an absolute floor.
	ToleranceAbs float64 `mapstructure:"tolerance_abs"`
	ToleranceRel float64 `mapstructure:"tolerance_rel"`

	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8080,
		SolverTimeout:   30 * time.Second,
		MaxFoods:        1000,
		PivotTol:        1e-10,
		QuantityEpsilon: 1e-9,
		ToleranceAbs:    1e-9,
		ToleranceRel:    1e-6,
		LogLevel:        "info",
	}
}

// Load reads configuration from the given file (optional, "" to skip),
// the environment and the defaults.
func Load(file string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("host", def.Host)
	v.SetDefault("port", def.Port)
	v.SetDefault("solver_timeout", def.SolverTimeout)
	v.SetDefault("max_foods", def.MaxFoods)
	v.SetDefault("pivot_tol", def.PivotTol)
	v.SetDefault("quantity_epsilon", def.QuantityEpsilon)
	v.SetDefault("tolerance_abs", def.ToleranceAbs)
	v.SetDefault("tolerance_rel", def.ToleranceRel)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("DIETOPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in (0, 65535], got %d", c.Port)
	}
	if c.SolverTimeout <= 0 {
		return fmt.Errorf("solver_timeout must be positive, got %v", c.SolverTimeout)
	}
	if c.MaxFoods <= 0 {
		return fmt.Errorf("max_foods must be positive, got %d", c.MaxFoods)
	}
	if c.QuantityEpsilon < 0 {
		return fmt.Errorf("quantity_epsilon must be >= 0, got %g", c.QuantityEpsilon)
	}
	if c.ToleranceAbs < 0 || c.ToleranceRel < 0 {
		return fmt.Errorf("tolerances must be >= 0, got abs=%g rel=%g", c.ToleranceAbs, c.ToleranceRel)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
