package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/hamed0406/pingstatus/internal/probe"
)

type Config struct {
	LogDir   string `env:"LOG_DIR, default=logs"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	ProbeCommand   string        `env:"PROBE_COMMAND"`         // template with {{.Host}}; empty means the OS ping
	SuccessMarkers []string      `env:"PROBE_SUCCESS_MARKERS"` // any one means UP; empty means the OS ping's "all 4 received" texts
	ProbeTimeout   time.Duration `env:"PROBE_TIMEOUT, default=30s"`
	DNSDiagnose    bool          `env:"DNS_DIAGNOSE, default=true"`

	Addr     string   `env:"API_ADDR, default=127.0.0.1:8080"`
	APIKeys  []string `env:"API_KEYS"`
	APIRPM   int      `env:"API_RPM, default=60"`
	APIBurst int      `env:"API_BURST, default=10"`
}

// FromEnv loads the config from the process environment.
func FromEnv() (Config, error) {
	return load(envconfig.OsLookuper())
}

func load(l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if strings.TrimSpace(cfg.ProbeCommand) == "" {
		cfg.ProbeCommand = probe.DefaultCommand()
	}
	cfg.SuccessMarkers = compact(cfg.SuccessMarkers)
	if len(cfg.SuccessMarkers) == 0 {
		cfg.SuccessMarkers = probe.DefaultMarkersForOS()
	}
	cfg.APIKeys = compact(cfg.APIKeys)
	return cfg, nil
}

// compact trims entries and drops empty ones.
func compact(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.LogDir) == "" {
		err = multierr.Append(err, errors.New("LOG_DIR is empty"))
	}
	if _, lerr := zapcore.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL: %w", lerr))
	}
	if ep, perr := probe.NewExecProbe(c.ProbeCommand); perr != nil {
		err = multierr.Append(err, fmt.Errorf("PROBE_COMMAND: %w", perr))
	} else if !ep.ReferencesHost() {
		err = multierr.Append(err, errors.New("PROBE_COMMAND must reference {{.Host}}"))
	}
	if c.ProbeTimeout < 0 {
		err = multierr.Append(err, errors.New("PROBE_TIMEOUT must be >= 0"))
	}
	if c.Addr == "" {
		err = multierr.Append(err, errors.New("API_ADDR is empty"))
	}
	if c.APIRPM < 0 || c.APIBurst < 0 {
		err = multierr.Append(err, errors.New("API_RPM and API_BURST must be >= 0"))
	}
	if c.APIRPM > 0 && c.APIBurst == 0 {
		err = multierr.Append(err, errors.New("API_BURST must be > 0 when rate limiting is on"))
	}
	return err
}
