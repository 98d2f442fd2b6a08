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
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"dirpx.dev/jbridge/apis"
)

// FileName is the project configuration file looked up by FindAndLoad.
const FileName = "jbridge.toml"

var (
	// ErrInvalidFile is returned for a configuration file that parses but
	// does not describe a usable setup.
	ErrInvalidFile = errors.New("jbridge(config): invalid configuration file")
)

// File is a parsed jbridge.toml.
type File struct {
	Runtime Runtime `toml:"runtime"`
	Catalog Catalog `toml:"catalog"`
	Classes []Class `toml:"class"`

	// Dir is the directory containing the file (set at load time).
	Dir string `toml:"-"`
}

// Runtime configures the launch of the managed runtime.
type Runtime struct {
	ClassPathEnv string   `toml:"classpath-env"`
	Options      []string `toml:"options"`
	Version      int64    `toml:"version"`
	CheckArgs    *bool    `toml:"check-args"`
}

// Catalog selects the signature catalog store.
type Catalog struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

// Class declares one registry.
type Class struct {
	Name       string   `toml:"name"`
	Introspect bool     `toml:"introspect"`
	Members    []Member `toml:"member"`
}

// Member is one explicitly registered member. Key defaults to Name.
type Member struct {
	Key        string `toml:"key"`
	Name       string `toml:"name"`
	Descriptor string `toml:"descriptor"`
	Static     bool   `toml:"static"`
}

// Parse decodes and validates a jbridge.toml document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	f.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return f, nil
}

// FindAndLoad walks up from startDir to find a jbridge.toml file and loads
// it. It returns nil, nil if there is none.
func FindAndLoad(startDir string) (*File, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (f *File) validate() error {
	if f.Runtime.Version < 0 || f.Runtime.Version > math.MaxInt32 {
		return fmt.Errorf("%w: runtime.version %#x out of range", ErrInvalidFile, f.Runtime.Version)
	}
	seen := make(map[string]bool, len(f.Classes))
	for i, c := range f.Classes {
		if c.Name == "" {
			return fmt.Errorf("%w: class #%d has no name", ErrInvalidFile, i+1)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: class %s declared twice", ErrInvalidFile, c.Name)
		}
		seen[c.Name] = true
		for j, m := range c.Members {
			if m.Name == "" || m.Descriptor == "" {
				return fmt.Errorf("%w: class %s member #%d needs a name and a descriptor", ErrInvalidFile, c.Name, j+1)
			}
		}
	}
	return nil
}

// Config converts the [runtime] section, applying defaults and then opts.
func (f *File) Config(opts ...Option) apis.Config {
	base := []Option{
		WithClassPathEnv(f.Runtime.ClassPathEnv),
		WithOptions(f.Runtime.Options...),
		WithVersion(int32(f.Runtime.Version)),
	}
	if f.Runtime.CheckArgs != nil {
		base = append(base, WithCheckArgs(*f.Runtime.CheckArgs))
	}
	return NewConfig(append(base, opts...)...)
}

// Specs converts the [[class]] sections.
func (f *File) Specs() []apis.ClassSpec {
	specs := make([]apis.ClassSpec, 0, len(f.Classes))
	for _, c := range f.Classes {
		spec := apis.ClassSpec{Name: c.Name, Introspect: c.Introspect}
		for _, m := range c.Members {
			key := m.Key
			if key == "" {
				key = m.Name
			}
			spec.Members = append(spec.Members, apis.Member{
				Key:        key,
				Name:       m.Name,
				Descriptor: m.Descriptor,
				Static:     m.Static,
			})
		}
		specs = append(specs, spec)
	}
	return specs
}

// Spec returns the spec of the class called name.
func (f *File) Spec(name string) (apis.ClassSpec, bool) {
	for _, s := range f.Specs() {
		if s.Name == name {
			return s, true
		}
	}
	return apis.ClassSpec{}, false
}

// CatalogPath returns the catalog path, relative paths taken from Dir.
func (f *File) CatalogPath() string {
	p := f.Catalog.Path
	if p == "" || filepath.IsAbs(p) || f.Dir == "" {
		return p
	}
	return filepath.Join(f.Dir, p)
}
