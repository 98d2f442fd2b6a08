/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"dirpx.dev/jbridge/apis"
)

const (
	// DefaultClassPathEnv names the environment variable holding the class path.
	DefaultClassPathEnv = "CLASSPATH"
	// DefaultVersion is the native interface version requested at launch (1.8).
	DefaultVersion int32 = 0x00010008
	// DefaultCheckArgs turns argument checking on for dispatched calls.
	DefaultCheckArgs = true
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ClassPathEnv == "" {
		cfg.ClassPathEnv = DefaultClassPathEnv
	}
	if cfg.Version <= 0 {
		cfg.Version = DefaultVersion
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		ClassPathEnv: DefaultClassPathEnv,
		Version:      DefaultVersion,
		SkipArgCheck: !DefaultCheckArgs,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithClassPathEnv sets the environment variable read for the class path.
// An empty name resets to the default.
func WithClassPathEnv(name string) Option {
	return func(c *apis.Config) {
		c.ClassPathEnv = name
	}
}

// WithOptions appends runtime options ("-ea", "-Xmx512m").
func WithOptions(opts ...string) Option {
	return func(c *apis.Config) {
		c.Options = append(append([]string(nil), c.Options...), opts...)
	}
}

// WithVersion sets the native interface version.
// A non-positive value resets to the default.
func WithVersion(v int32) Option {
	return func(c *apis.Config) {
		c.Version = v
	}
}

// WithCheckArgs turns argument checking of dispatched calls on or off.
func WithCheckArgs(check bool) Option {
	return func(c *apis.Config) {
		c.SkipArgCheck = !check
	}
}
