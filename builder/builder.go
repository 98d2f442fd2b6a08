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

// Package builder assembles bound registries from class specs.
package builder

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/catalog"
	"dirpx.dev/jbridge/introspect"
	"dirpx.dev/jbridge/registry"
	"dirpx.dev/jbridge/resolver"
)

// ErrEmptyClass is returned for a spec without a class name.
var ErrEmptyClass = errors.New("jbridge(builder): class spec has no name")

var log = commonlog.GetLogger("jbridge.builder")

// Option configures a builder.
type Option func(*builder)

// WithStore makes introspection go through a signature catalog: members
// saved for a class are used instead of reflection, and fresh reflection
// results are saved.
func WithStore(s catalog.Store) Option {
	return func(b *builder) {
		b.store = s
	}
}

// WithKeyStrategy selects how introspected overloads are keyed.
func WithKeyStrategy(ks apis.KeyStrategy) Option {
	return func(b *builder) {
		b.ks = ks
	}
}

// New creates and returns a new apis.Builder over rt.
func New(rt apis.Runtime, opts ...Option) apis.Builder {
	b := &builder{rt: rt}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type builder struct {
	rt    apis.Runtime
	store catalog.Store
	ks    apis.KeyStrategy
}

// Build returns a registry bound to spec.Name. Members come, in order, from
// prev (when given), from introspection (when spec.Introspect is set) and
// from spec.Members. A registration error aborts the build. A Bind error is
// returned together with the registry, whose failed members stay Unresolved.
func (b *builder) Build(spec apis.ClassSpec, prev apis.Registry) (apis.Registry, error) {
	if spec.Name == "" {
		return nil, ErrEmptyClass
	}
	if b.rt == nil {
		return nil, apis.ErrNilRuntime
	}

	reg := registry.New(b.rt)
	if prev != nil {
		for _, e := range prev.Entries() {
			if err := reg.RegisterAs(e.Key, e.Name, e.Descriptor, e.Static); err != nil {
				return nil, fmt.Errorf("migrating %s from registry %s: %w", e.Key, prev.ID(), err)
			}
		}
	}

	if spec.Introspect {
		members, err := b.introspected(spec.Name)
		if err != nil {
			return nil, err
		}
		if _, err := introspect.RegisterAll(reg, members); err != nil {
			return nil, err
		}
	}
	if _, err := introspect.RegisterAll(reg, spec.Members); err != nil {
		return nil, err
	}

	if err := reg.Bind(spec.Name); err != nil {
		return reg, err
	}
	log.Infof("registry %s: built %s with %d members", reg.ID(), spec.Name, reg.Count())
	return reg, nil
}

// introspected returns the members of class from the catalog, falling back
// to reflection. Catalog entries are rekeyed with the builder's strategy.
func (b *builder) introspected(class string) ([]apis.Member, error) {
	in := introspect.New(b.rt, b.ks)
	if b.store != nil {
		members, ok, err := b.store.Load(class)
		if err != nil {
			return nil, err
		}
		if ok {
			log.Debugf("%s: %d members from catalog", class, len(members))
			return in.Rekey(members), nil
		}
	}

	cls, err := resolver.New(b.rt).ResolveClass(class)
	if err != nil {
		return nil, err
	}
	members, err := in.Members(cls)
	if err != nil {
		return nil, err
	}
	if b.store != nil {
		if err := b.store.Save(class, members); err != nil {
			log.Warningf("%s: catalog save failed: %v", class, err)
		}
	}
	return members, nil
}
