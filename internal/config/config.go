// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the spafallback process configuration from the
// environment, optionally populated from .env files first.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrMissingAddress is returned when the listening address is empty.
var ErrMissingAddress = errors.New("listening address is required")

// ErrInvalidLogFormat is returned for log formats other than FormatText and
// FormatJSON.
var ErrInvalidLogFormat = errors.New("invalid log format")

// Config holds the process configuration.
type Config struct {
	Addr  string `env:"SPA_ADDR" envDefault:":8000"`
	Root  string `env:"SPA_ROOT" envDefault:"./dist"`
	Index string `env:"SPA_INDEX" envDefault:"index.html"`
	// Base, if set, rewrites the href of the index document's <base> element.
	Base string `env:"SPA_BASE"`

	ReadTimeout     time.Duration `env:"SPA_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SPA_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SPA_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SPA_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads the specified .env files (or just ".env" if none are given) into
// the process environment and then parses the configuration from it. Missing
// .env files are silently skipped; variables already set in the environment
// take precedence over .env files.
func Load(envfiles ...string) (Config, error) {
	if len(envfiles) == 0 {
		envfiles = []string{".env"}
	}
	for _, envfile := range envfiles {
		if err := godotenv.Load(envfile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("cannot load %s: %w", envfile, err)
		}
	}
	return Parse(nil)
}

// Parse returns the configuration parsed from the specified environment
// variables, or from the process environment if environ is nil.
func Parse(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("cannot parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddress
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}

// NewLogger returns a logger writing to w in the configured format and level.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
