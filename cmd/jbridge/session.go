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

package main

import (
	"os"

	"dirpx.dev/jbridge"
	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/builder"
	"dirpx.dev/jbridge/catalog"
	"dirpx.dev/jbridge/config"
)

// session is one CLI run: a launched VM plus the project configuration.
type session struct {
	vm    *jbridge.VM
	file  *config.File
	store catalog.Store
}

func openSession(opts *options) (*session, error) {
	f, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = &config.File{}
	}

	cfg := f.Config()
	prepareEnv(cfg)
	vm, err := jbridge.Launch(newLauncher(), cfg)
	if err != nil {
		return nil, err
	}

	s := &session{vm: vm, file: f}
	if f.Catalog.Driver != "" {
		if s.store, err = catalog.Open(f.Catalog.Driver, f.CatalogPath()); err != nil {
			jbridge.Shutdown()
			return nil, err
		}
	}
	return s, nil
}

func loadConfig(path string) (*config.File, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.FindAndLoad(wd)
}

// registry builds the registry of class. Classes missing from the
// configuration are introspected. A partially bound registry is returned
// together with the bind error.
func (s *session) registry(class string) (apis.Registry, error) {
	spec, ok := s.file.Spec(class)
	if !ok {
		spec = apis.ClassSpec{Name: class, Introspect: true}
	}
	var opts []builder.Option
	if s.store != nil {
		opts = append(opts, builder.WithStore(s.store))
	}
	return s.vm.Builder(opts...).Build(spec, nil)
}

func (s *session) close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Warningf("catalog close: %v", err)
		}
	}
	jbridge.Shutdown()
}
