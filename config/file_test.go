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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/config"
)

const sample = `
[runtime]
classpath-env = "JB_CP"
options = ["-ea"]
version = 0x00010006
check-args = false

[catalog]
driver = "sqlite"
path = "cache/catalog.db"

[[class]]
name = "example/Calc"
introspect = true

[[class.member]]
name = "add"
descriptor = "(II)I"
static = true

[[class.member]]
key = "ctor"
name = "<init>"
descriptor = "()V"

[[class]]
name = "java/lang/Math"
`

func TestParse(t *testing.T) {
	f, err := config.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := f.Config()
	if cfg.ClassPathEnv != "JB_CP" || cfg.Version != 0x00010006 || cfg.CheckArgs() {
		t.Fatalf("Config() = %+v", cfg)
	}
	if len(cfg.Options) != 1 || cfg.Options[0] != "-ea" {
		t.Fatalf("Options = %v", cfg.Options)
	}

	specs := f.Specs()
	if len(specs) != 2 {
		t.Fatalf("Specs() = %d classes, want 2", len(specs))
	}
	calc := specs[0]
	if calc.Name != "example/Calc" || !calc.Introspect || len(calc.Members) != 2 {
		t.Fatalf("specs[0] = %+v", calc)
	}
	want := apis.Member{Key: "add", Name: "add", Descriptor: "(II)I", Static: true}
	if calc.Members[0] != want {
		t.Fatalf("member[0] = %+v, want %+v (key defaults to name)", calc.Members[0], want)
	}
	if calc.Members[1].Key != "ctor" || calc.Members[1].Name != apis.ConstructorName {
		t.Fatalf("member[1] = %+v", calc.Members[1])
	}
	if _, ok := f.Spec("java/lang/Math"); !ok {
		t.Fatalf("Spec(java/lang/Math) not found")
	}
	if f.Catalog.Driver != "sqlite" {
		t.Fatalf("Catalog.Driver = %q", f.Catalog.Driver)
	}
}

func TestParse_Defaults(t *testing.T) {
	f, err := config.Parse([]byte("[[class]]\nname = \"a/B\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cfg := f.Config()
	if cfg.ClassPathEnv != config.DefaultClassPathEnv || cfg.Version != config.DefaultVersion || !cfg.CheckArgs() {
		t.Fatalf("Config() = %+v, want defaults", cfg)
	}
	// Explicit options still win over the file.
	if cfg := f.Config(config.WithCheckArgs(false)); cfg.CheckArgs() {
		t.Fatalf("override ignored")
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"no class name":   "[[class]]\nintrospect = true\n",
		"duplicate class": "[[class]]\nname = \"a/B\"\n[[class]]\nname = \"a/B\"\n",
		"member no desc":  "[[class]]\nname = \"a/B\"\n[[class.member]]\nname = \"f\"\n",
		"version range":   "[runtime]\nversion = 0x100000000\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Parse([]byte(doc)); !errors.Is(err, config.ErrInvalidFile) {
				t.Fatalf("want ErrInvalidFile, got %v", err)
			}
		})
	}
	if _, err := config.Parse([]byte("[runtime\n")); err == nil {
		t.Fatalf("malformed TOML accepted")
	}
}

func TestFindAndLoad_WalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, config.FileName), []byte(sample), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	f, err := config.FindAndLoad(deep)
	if err != nil || f == nil {
		t.Fatalf("FindAndLoad = (%v, %v)", f, err)
	}
	wantDir, _ := filepath.Abs(root)
	if f.Dir != wantDir {
		t.Fatalf("Dir = %q, want %q", f.Dir, wantDir)
	}
	if got := f.CatalogPath(); got != filepath.Join(wantDir, "cache", "catalog.db") {
		t.Fatalf("CatalogPath() = %q", got)
	}
}

func TestFindAndLoad_None(t *testing.T) {
	f, err := config.FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad: %v", err)
	}
	// A jbridge.toml above the temp dir would be found; only assert when none is.
	if f != nil && f.Dir == "" {
		t.Fatalf("loaded file without a Dir")
	}
}
