// Package config loads the core's recognised options (spec.md §6): RNG
// seed, plan depth bound, and the motion/sensor model parameters.
// Grounded on niceyeti-tabular's reinforcement/learning.go FromYaml,
// which reaches for viper.New() + Unmarshal rather than viper's global
// singleton, for the same reason that package gives: independent configs
// (one per simulated session here) don't suit viper's stateful globals.
package config

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/spf13/viper"

	"robotsim/internal/belief"
)

// Config is the fully-validated, typed configuration for one session.
type Config struct {
	Seed           int64   `mapstructure:"seed"`
	PlanDepthBound int     `mapstructure:"plan_depth_bound"`
	MotionCorrect  float64 `mapstructure:"motion_p_correct"`
	MotionStay     float64 `mapstructure:"motion_p_stay"`
	MotionSlip     float64 `mapstructure:"motion_p_slip"`
	SensorCorrect  float64 `mapstructure:"sensor_p_correct"`
	SensorAdjacent float64 `mapstructure:"sensor_p_adjacent"`
	SensorUnknown  float64 `mapstructure:"sensor_p_unknown"`
}

const probabilitySumTolerance = 1e-9

// Default returns the configuration matching spec.md §4.3's defaults
// and the plan_depth_bound=10 of §4.4, with seed left at 0 (callers
// should override it).
func Default() Config {
	return Config{
		Seed:           0,
		PlanDepthBound: 10,
		MotionCorrect:  belief.DefaultMotion.PCorrect,
		MotionStay:     belief.DefaultMotion.PStay,
		MotionSlip:     belief.DefaultMotion.PSlip,
		SensorCorrect:  belief.DefaultSensor.PCorrect,
		SensorAdjacent: belief.DefaultSensor.PAdjacent,
		SensorUnknown:  belief.DefaultSensor.PUnknown,
	}
}

// FromYAML loads a Config from a YAML file at path, starting from
// Default and overlaying whatever keys the file sets, then validates it.
func FromYAML(path string) (Config, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetConfigFile(filepath.Base(path))
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := vp.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the motion and sensor models are each proper
// categorical distributions (spec.md §6: "must sum to 1") and that the
// plan depth bound is usable.
func (c Config) Validate() error {
	if c.PlanDepthBound <= 0 {
		return fmt.Errorf("config: plan_depth_bound must be positive, got %d", c.PlanDepthBound)
	}
	motionSum := c.MotionCorrect + c.MotionStay + c.MotionSlip
	if math.Abs(motionSum-1) > probabilitySumTolerance {
		return fmt.Errorf("config: motion probabilities sum to %g, want 1", motionSum)
	}
	sensorSum := c.SensorCorrect + c.SensorAdjacent + c.SensorUnknown
	if math.Abs(sensorSum-1) > probabilitySumTolerance {
		return fmt.Errorf("config: sensor probabilities sum to %g, want 1", sensorSum)
	}
	return nil
}

// Motion returns the belief.Motion parameterisation of this config.
func (c Config) Motion() belief.Motion {
	return belief.Motion{PCorrect: c.MotionCorrect, PStay: c.MotionStay, PSlip: c.MotionSlip}
}

// Sensor returns the belief.Sensor parameterisation of this config.
func (c Config) Sensor() belief.Sensor {
	return belief.Sensor{PCorrect: c.SensorCorrect, PAdjacent: c.SensorAdjacent, PUnknown: c.SensorUnknown}
}
