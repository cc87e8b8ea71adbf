// Package config loads the service configuration from TOML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	ZoneModeOverride = "override"
	ZoneModePerCall  = "per-call"

	DefaultLocalAddr           = "127.0.0.1:7370"
	DefaultMetricsAddr         = "127.0.0.1:8080"
	DefaultNumGoroutine        = 8
	DefaultNTPSyncInterval     = 10 * time.Minute
	DefaultLogMaxSizeMB        = 10
	DefaultBenchmarkGoroutines = 8
	DefaultBenchmarkRequests   = 10000

	maxNumGoroutine = 1024
)

// Duration is a time.Duration written as a string such as "10m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type Config struct {
	LocalAddr           string   `toml:"local_address"`
	MetricsAddr         string   `toml:"metrics_address"`
	NumGoroutine        int      `toml:"num_goroutine"`
	ZoneMode            string   `toml:"zone_mode"`
	NTPServer           string   `toml:"ntp_server"`
	NTPSyncInterval     Duration `toml:"ntp_sync_interval"`
	LogFile             string   `toml:"log_file"`
	LogMaxSizeMB        int      `toml:"log_max_size_mb"`
	BenchmarkGoroutines int      `toml:"benchmark_goroutines"`
	BenchmarkRequests   int      `toml:"benchmark_requests"`
}

// Default returns the configuration used for keys absent from a file.
func Default() Config {
	return Config{
		LocalAddr:           DefaultLocalAddr,
		MetricsAddr:         DefaultMetricsAddr,
		NumGoroutine:        DefaultNumGoroutine,
		ZoneMode:            ZoneModeOverride,
		NTPSyncInterval:     Duration(DefaultNTPSyncInterval),
		LogMaxSizeMB:        DefaultLogMaxSizeMB,
		BenchmarkGoroutines: DefaultBenchmarkGoroutines,
		BenchmarkRequests:   DefaultBenchmarkRequests,
	}
}

// Decode reads a TOML configuration on top of the defaults. Unknown keys
// are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(configFile string) (Config, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, err
	}
	return Decode(bytes.NewReader(raw))
}

func (c Config) Validate() error {
	if c.LocalAddr != "" {
		_, _, err := net.SplitHostPort(c.LocalAddr)
		if err != nil {
			return fmt.Errorf("invalid local_address %q: %w", c.LocalAddr, err)
		}
	}
	if c.MetricsAddr != "" {
		_, _, err := net.SplitHostPort(c.MetricsAddr)
		if err != nil {
			return fmt.Errorf("invalid metrics_address %q: %w", c.MetricsAddr, err)
		}
	}
	if c.NumGoroutine < 1 || c.NumGoroutine > maxNumGoroutine {
		return fmt.Errorf("num_goroutine must be in range [1, %d], got %d",
			maxNumGoroutine, c.NumGoroutine)
	}
	if c.ZoneMode != ZoneModeOverride && c.ZoneMode != ZoneModePerCall {
		return fmt.Errorf("zone_mode must be %q or %q, got %q",
			ZoneModeOverride, ZoneModePerCall, c.ZoneMode)
	}
	if c.NTPSyncInterval < 0 {
		return fmt.Errorf("ntp_sync_interval must not be negative, got %v",
			time.Duration(c.NTPSyncInterval))
	}
	if c.LogMaxSizeMB < 0 {
		return fmt.Errorf("log_max_size_mb must not be negative, got %d", c.LogMaxSizeMB)
	}
	if c.BenchmarkGoroutines < 1 {
		return fmt.Errorf("benchmark_goroutines must be positive, got %d", c.BenchmarkGoroutines)
	}
	if c.BenchmarkRequests < 1 {
		return fmt.Errorf("benchmark_requests must be positive, got %d", c.BenchmarkRequests)
	}
	return nil
}

// PerCallZone reports whether the engines are told the zone per call
// instead of through an ambient override.
func (c Config) PerCallZone() bool {
	return c.ZoneMode == ZoneModePerCall
}
