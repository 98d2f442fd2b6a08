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

package config_test

import (
	"reflect"
	"testing"

	"dirpx.dev/jbridge/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.ClassPathEnv != config.DefaultClassPathEnv {
		t.Fatalf("ClassPathEnv = %q, want %q", got.ClassPathEnv, config.DefaultClassPathEnv)
	}
	if got.Version != config.DefaultVersion {
		t.Fatalf("Version = %#x, want %#x", got.Version, config.DefaultVersion)
	}
	if got.CheckArgs() != config.DefaultCheckArgs {
		t.Fatalf("CheckArgs = %v, want %v", got.CheckArgs(), config.DefaultCheckArgs)
	}
	if len(got.Options) != 0 {
		t.Fatalf("Options = %v, want none", got.Options)
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if !reflect.DeepEqual(got, def) {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithCheckArgs(t *testing.T) {
	if c := config.NewConfig(config.WithCheckArgs(false)); c.CheckArgs() {
		t.Fatalf("CheckArgs = %v, want false", c.CheckArgs())
	}
	if c := config.NewConfig(config.WithCheckArgs(true)); !c.CheckArgs() {
		t.Fatalf("CheckArgs = %v, want true", c.CheckArgs())
	}
}

func TestWithOptions_Appends(t *testing.T) {
	c := config.NewConfig(config.WithOptions("-ea"), config.WithOptions("-Xmx64m", "-Xss1m"))
	want := []string{"-ea", "-Xmx64m", "-Xss1m"}
	if !reflect.DeepEqual(c.Options, want) {
		t.Fatalf("Options = %v, want %v", c.Options, want)
	}
}

func TestGuardrails_ResetToDefault(t *testing.T) {
	c := config.NewConfig(config.WithClassPathEnv(""), config.WithVersion(-1))
	if c.ClassPathEnv != config.DefaultClassPathEnv {
		t.Fatalf("ClassPathEnv = %q, want default", c.ClassPathEnv)
	}
	if c.Version != config.DefaultVersion {
		t.Fatalf("Version = %#x, want default", c.Version)
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithClassPathEnv("A"),
		config.WithClassPathEnv("JB_CLASSPATH"),
		config.WithVersion(0x00010006),
		config.WithVersion(0x000a0000),
		config.WithCheckArgs(false),
		config.WithCheckArgs(true),
	)
	if c.ClassPathEnv != "JB_CLASSPATH" {
		t.Errorf("ClassPathEnv = %q, want JB_CLASSPATH (last option wins)", c.ClassPathEnv)
	}
	if c.Version != 0x000a0000 {
		t.Errorf("Version = %#x, want 0xa0000 (last option wins)", c.Version)
	}
	if !c.CheckArgs() {
		t.Errorf("CheckArgs = %v, want true (last option wins)", c.CheckArgs())
	}
}
