package yieldly

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/yieldly/service/meta"
	"github.com/viant/yieldly/service/timer"
)

// Config is a serialisable representation of the scheduler configuration.
// The zero-value is not useful on its own - use DefaultConfig as the
// starting point and override selectively.
type Config struct {
	// CycleTime is the full wall-clock length of one kernel cycle.
	CycleTime time.Duration `json:"cycleTime" yaml:"cycleTime"`

	// UpRatio is the fraction of the cycle spent resuming ready jobs; the
	// remainder is idle time handed back to the host.
	UpRatio float64 `json:"upRatio" yaml:"upRatio"`

	// BurstRatio is the fraction of the active window a single job may
	// consume before Checkpoint requeues it.
	BurstRatio float64 `json:"burstRatio" yaml:"burstRatio"`

	// FrameInterval approximates one host frame for the default timer.
	FrameInterval time.Duration `json:"frameInterval" yaml:"frameInterval"`
}

// DefaultConfig returns the configuration used when the host supplies none.
func DefaultConfig() *Config {
	return &Config{
		CycleTime:     100 * time.Millisecond,
		UpRatio:       0.75,
		BurstRatio:    0.5,
		FrameInterval: timer.DefaultFrameInterval,
	}
}

// UpTime returns the cycle's processing budget: CycleTime * UpRatio.
func (c *Config) UpTime() time.Duration {
	return time.Duration(float64(c.CycleTime) * c.UpRatio)
}

// BurstTime returns the voluntary per-job budget within the active window:
// CycleTime * UpRatio * BurstRatio.
func (c *Config) BurstTime() time.Duration {
	return time.Duration(float64(c.CycleTime) * c.UpRatio * c.BurstRatio)
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.CycleTime <= 0 {
		return fmt.Errorf("cycleTime must be > 0")
	}
	if c.UpRatio <= 0 || c.UpRatio > 1 {
		return fmt.Errorf("upRatio must be in (0, 1]")
	}
	if c.BurstRatio <= 0 || c.BurstRatio > 1 {
		return fmt.Errorf("burstRatio must be in (0, 1]")
	}
	if c.FrameInterval < 0 {
		return fmt.Errorf("frameInterval must be >= 0")
	}
	return nil
}

// configDocument is the YAML shape of Config; durations are expressed as
// Go duration strings, e.g. "250ms".
type configDocument struct {
	CycleTime     string  `yaml:"cycleTime"`
	UpRatio       float64 `yaml:"upRatio"`
	BurstRatio    float64 `yaml:"burstRatio"`
	FrameInterval string  `yaml:"frameInterval"`
}

// LoadConfig reads scheduler configuration from any afs-addressable YAML
// location. Absent fields inherit DefaultConfig values; ${env.KEY}
// expressions are expanded before decoding.
func LoadConfig(ctx context.Context, location string) (*Config, error) {
	var doc configDocument
	if err := meta.New(nil, "").Load(ctx, location, &doc); err != nil {
		return nil, err
	}
	ret := DefaultConfig()
	if doc.CycleTime != "" {
		value, err := time.ParseDuration(doc.CycleTime)
		if err != nil {
			return nil, fmt.Errorf("invalid cycleTime: %w", err)
		}
		ret.CycleTime = value
	}
	if doc.UpRatio != 0 {
		ret.UpRatio = doc.UpRatio
	}
	if doc.BurstRatio != 0 {
		ret.BurstRatio = doc.BurstRatio
	}
	if doc.FrameInterval != "" {
		value, err := time.ParseDuration(doc.FrameInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid frameInterval: %w", err)
		}
		ret.FrameInterval = value
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", location, err)
	}
	return ret, nil
}
