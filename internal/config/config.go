// Package config loads the probe files of the corsprobe command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jub0bs/corsclient"
	"github.com/jub0bs/corsclient/cfgerrors"
	"github.com/jub0bs/corsclient/internal/headers"
	"github.com/jub0bs/corsclient/internal/methods"
	"github.com/jub0bs/corsclient/internal/util"
)

// Possible values of Probe.Expect.
const (
	ExpectAllowed = "allowed"
	ExpectDenied  = "denied"
)

const (
	defaultConcurrency = 4
	maxConcurrency     = 256
	defaultRate        = 10 // requests per second
	maxRate            = 1000
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
)

// Config is the content of a probe file.
type Config struct {
	Origin               string        `yaml:"origin"`
	ValidateServerErrors bool          `yaml:"validate_server_errors"`
	PreflightTimeout     time.Duration `yaml:"preflight_timeout"`
	Concurrency          int           `yaml:"concurrency"`
	Rate                 float64       `yaml:"rate"`
	Log                  Log           `yaml:"log"`
	Probes               []Probe       `yaml:"probes"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// A Probe describes a request to send through a CORS-enforcing transport
// and the outcome expected from it.
type Probe struct {
	Name    string            `yaml:"name"`
	URL     string            `yaml:"url"`
	Method  string            `yaml:"method"`
	Headers map[string]string `yaml:"headers"`
	Expect  string            `yaml:"expect"`
}

// Transport returns the configuration of the CORS transport that probes
// must go through.
func (c *Config) Transport() corsclient.Config {
	return corsclient.Config{
		Origin:               c.Origin,
		ValidateServerErrors: c.ValidateServerErrors,
		PreflightTimeout:     c.PreflightTimeout,
	}
}

// Load reads and parses the probe file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse parses the content of a probe file, applies defaults, and
// validates the result. Unknown fields are rejected.
// Validation errors can be inspected through [cfgerrors.All].
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Concurrency == 0 {
		c.Concurrency = defaultConcurrency
	}
	if c.Rate == 0 {
		c.Rate = defaultRate
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
	for i := range c.Probes {
		p := &c.Probes[i]
		if p.Method == "" {
			p.Method = "GET"
		}
		if p.Expect == "" {
			p.Expect = ExpectAllowed
		}
	}
}

func (c *Config) validate() error {
	// Accumulate errors in a slice so as to call errors.Join at most once.
	var errs []error
	if _, err := corsclient.NewTransport(nil, c.Transport()); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency < 0 || maxConcurrency < c.Concurrency {
		err := &cfgerrors.LimitOutOfBoundsError{
			Name:  "concurrency",
			Value: float64(c.Concurrency),
			Max:   maxConcurrency,
		}
		errs = append(errs, err)
	}
	if c.Rate < 0 || maxRate < c.Rate {
		err := &cfgerrors.LimitOutOfBoundsError{
			Name:  "rate",
			Value: c.Rate,
			Max:   maxRate,
		}
		errs = append(errs, err)
	}
	for _, p := range c.Probes {
		errs = validateProbe(errs, &p)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateProbe(errs []error, p *Probe) []error {
	errs = validateURL(errs, p.URL)
	switch {
	case !methods.IsValid(p.Method):
		err := &cfgerrors.UnacceptableMethodError{
			Value:  p.Method,
			Reason: "invalid",
		}
		errs = append(errs, err)
	case methods.IsForbidden(p.Method):
		err := &cfgerrors.UnacceptableMethodError{
			Value:  p.Method,
			Reason: "forbidden",
		}
		errs = append(errs, err)
	}
	// Sort names so that errors come out in a deterministic order.
	names := make(util.Set, len(p.Headers))
	for name := range p.Headers {
		names.Add(name)
	}
	for _, name := range names.ToSortedSlice() {
		switch {
		case !headers.IsValid(name):
			err := &cfgerrors.UnacceptableHeaderNameError{
				Value:  name,
				Reason: "invalid",
			}
			errs = append(errs, err)
		case headers.IsForbiddenRequestHeaderName(util.ByteLowercase(name)):
			err := &cfgerrors.UnacceptableHeaderNameError{
				Value:  name,
				Reason: "forbidden",
			}
			errs = append(errs, err)
		}
	}
	if p.Expect != ExpectAllowed && p.Expect != ExpectDenied {
		err := &cfgerrors.UnacceptableExpectationError{
			Value: p.Expect,
		}
		errs = append(errs, err)
	}
	return errs
}

func validateURL(errs []error, raw string) []error {
	if raw == "" {
		err := &cfgerrors.UnacceptableURLError{Reason: "missing"}
		return append(errs, err)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err := &cfgerrors.UnacceptableURLError{
			Value:  raw,
			Reason: "invalid",
		}
		return append(errs, err)
	}
	return errs
}
