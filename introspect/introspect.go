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

// Package introspect populates registries from the managed runtime's own
// reflection instead of hand-written signatures.
package introspect

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/fault"
	"dirpx.dev/jbridge/strategy"
)

// ErrMisaligned is returned when reflection yields sequences of different lengths.
var ErrMisaligned = errors.New("jbridge(introspect): reflection returned misaligned sequences")

var log = commonlog.GetLogger("jbridge.introspect")

// Introspector lists the members of a class and keys them.
type Introspector struct {
	rt apis.Runtime
	ks apis.KeyStrategy
}

// New constructs an Introspector over rt. A nil ks selects the ordinal
// (encounter order) strategy.
func New(rt apis.Runtime, ks apis.KeyStrategy) *Introspector {
	if ks == nil {
		ks = strategy.NewOrdinalStrategy()
	}
	return &Introspector{rt: rt, ks: ks}
}

// Members returns the declared members of cls, keyed by the strategy, in
// the order the runtime reports them.
func (in *Introspector) Members(cls apis.ClassRef) ([]apis.Member, error) {
	if in.rt == nil {
		return nil, apis.ErrNilRuntime
	}
	names, descs, static, err := in.rt.DeclaredMembers(cls)
	if err != nil {
		return nil, fault.Wrap(in.rt, "declared members", fmt.Errorf("jbridge(introspect): %w", err))
	}
	if err := fault.Drain(in.rt, "declared members"); err != nil {
		return nil, err
	}
	if len(names) != len(descs) || len(names) != len(static) {
		return nil, fmt.Errorf("%w: %d names, %d descriptors, %d flags",
			ErrMisaligned, len(names), len(descs), len(static))
	}

	members := make([]apis.Member, len(names))
	for i := range names {
		members[i] = apis.Member{Name: names[i], Descriptor: descs[i], Static: static[i]}
	}
	return in.Rekey(members), nil
}

// Rekey returns a copy of members keyed by the strategy of in. Keys the
// members already carry are ignored.
func (in *Introspector) Rekey(members []apis.Member) []apis.Member {
	names := make([]string, len(members))
	descs := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
		descs[i] = m.Descriptor
	}
	keys := in.ks.Keys(names, descs)
	out := make([]apis.Member, len(members))
	for i, m := range members {
		m.Key = keys[i]
		out[i] = m
	}
	return out
}

// Populate registers every member of cls into reg. It returns how many
// members were registered and the first registration error; the remaining
// members are still registered.
func (in *Introspector) Populate(reg apis.Registry, cls apis.ClassRef) (int, error) {
	members, err := in.Members(cls)
	if err != nil {
		return 0, err
	}
	n, err := RegisterAll(reg, members)
	log.Debugf("registry %s: introspected %d/%d members", reg.ID(), n, len(members))
	return n, err
}

// RegisterAll registers members into reg, continuing past failures.
func RegisterAll(reg apis.Registry, members []apis.Member) (int, error) {
	var first error
	n := 0
	for _, m := range members {
		if err := reg.RegisterAs(m.Key, m.Name, m.Descriptor, m.Static); err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		n++
	}
	return n, first
}
