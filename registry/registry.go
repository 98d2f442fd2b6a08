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

// Package registry keeps the per-class table of member signatures and their
// invocation handles.
//
// A registry is populated with (name, descriptor, static) triples, then bound
// to a class of the managed runtime. Binding resolves every member to a
// handle; Unbind invalidates them all at once.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/fault"
	"dirpx.dev/jbridge/resolver"
)

var (
	// ErrEmptyKey is returned when an empty key is provided.
	ErrEmptyKey = errors.New("jbridge(registry): empty member key provided")
	// ErrEmptyName is returned when an empty member name is provided.
	ErrEmptyName = errors.New("jbridge(registry): empty member name provided")
	// ErrConflictingRegistration indicates an attempt to re-register a key
	// with a different member.
	ErrConflictingRegistration = errors.New("jbridge(registry): conflicting member registration")
	// ErrNoSuchMember is returned by UniqueKey when no signature matches.
	ErrNoSuchMember = errors.New("jbridge(registry): no member with that name and descriptor")
	// ErrAlreadyBound is returned by Bind on a bound registry.
	ErrAlreadyBound = errors.New("jbridge(registry): registry is already bound")
	// ErrNotBound is returned by operations that need a bound class.
	ErrNotBound = errors.New("jbridge(registry): registry is not bound")
	// ErrNotConstructor is returned by Construct for keys naming a method.
	ErrNotConstructor = errors.New("jbridge(registry): member is not a constructor")
	// ErrBadConstructor is returned when a constructor is static or returns a value.
	ErrBadConstructor = errors.New("jbridge(registry): constructors must be non-static and return void")
	// ErrConstruction is returned when the runtime fails to create an object.
	ErrConstruction = errors.New("jbridge(registry): object construction failed")

	// ErrClassNotFound is resolver.ErrClassNotFound.
	ErrClassNotFound = resolver.ErrClassNotFound
	// ErrHandleResolution is resolver.ErrHandleResolution.
	ErrHandleResolution = resolver.ErrHandleResolution
)

var log = commonlog.GetLogger("jbridge.registry")

// New constructs an empty, unbound Registry over rt. rt may be nil for a
// registry that is only populated and inspected; Bind then fails.
func New(rt apis.Runtime) apis.Registry {
	r := &registry{
		id:   uuid.NewString(),
		rt:   rt,
		sigs: make(map[string]*apis.Signature),
	}
	if rt != nil {
		r.res = resolver.New(rt)
	}
	return r
}

// registry is the map-backed Registry implementation.
type registry struct {
	id  string
	rt  apis.Runtime
	res apis.HandleResolver

	// mu guards everything below.
	mu        sync.RWMutex
	sigs      map[string]*apis.Signature
	cls       apis.ClassRef
	className string
	obj       apis.ObjectRef
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register adds a member under its own name.
func (r *registry) Register(name, desc string, static bool) error {
	return r.RegisterAs(name, name, desc, static)
}

// RegisterAs adds a member under key. It is idempotent for the same
// (key, member) pair. On a bound registry the member is resolved first and
// only inserted once it has a handle.
func (r *registry) RegisterAs(key, name, desc string, static bool) error {
	sig, err := newSignature(key, name, desc, static)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.sigs[key]; ok {
		if sameMember(old, name, desc, static) {
			return nil
		}
		return fmt.Errorf("%w: %s is %s%s", ErrConflictingRegistration, key, old.Name, old.Descriptor)
	}

	if !r.cls.IsNil() {
		mid, err := r.res.ResolveMember(r.cls, name, desc, static)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		resolve(sig, mid)
	}
	r.sigs[key] = sig
	return nil
}

// Lookup returns a snapshot of the signature registered under key.
func (r *registry) Lookup(key string) (apis.Signature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sig, ok := r.sigs[key]
	if !ok {
		return apis.Signature{}, fmt.Errorf("%w: %q", apis.ErrUnknownKey, key)
	}
	return snapshot(sig), nil
}

// Target returns the signature under key together with the bound class and
// the current instance, read under a single lock.
func (r *registry) Target(key string) (apis.Signature, apis.Receiver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sig, ok := r.sigs[key]
	if !ok {
		return apis.Signature{}, apis.Receiver{}, fmt.Errorf("%w: %q", apis.ErrUnknownKey, key)
	}
	return snapshot(sig), apis.Receiver{Class: r.cls, Object: r.obj}, nil
}

// UniqueKey finds the key registered for (name, desc).
func (r *registry) UniqueKey(name, desc string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := ""
	for key, sig := range r.sigs {
		if sig.Name != name || sig.Descriptor != desc {
			continue
		}
		// A name can be registered under several keys; report the smallest.
		if found == "" || key < found {
			found = key
		}
	}
	if found == "" {
		return "", fmt.Errorf("%w: %s%s", ErrNoSuchMember, name, desc)
	}
	return found, nil
}

// Descriptor returns the descriptor registered under key, verbatim.
func (r *registry) Descriptor(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sig, ok := r.sigs[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", apis.ErrUnknownKey, key)
	}
	return sig.Descriptor, nil
}

// Bind resolves className and then every registered member against it.
// When the class cannot be found the registry is left untouched. Member
// failures do not stop the walk: the failing members stay Unresolved and
// the first failure is returned.
func (r *registry) Bind(className string) error {
	if r.rt == nil {
		return apis.ErrNilRuntime
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.cls.IsNil() {
		return fmt.Errorf("%w: to %s", ErrAlreadyBound, r.className)
	}

	cls, err := r.res.ResolveClass(className)
	if err != nil {
		return err
	}

	var first error
	failed := 0
	for _, key := range r.sortedKeys() {
		sig := r.sigs[key]
		mid, err := r.res.ResolveMember(cls, sig.Name, sig.Descriptor, sig.Static)
		if err != nil {
			failed++
			invalidate(sig)
			log.Debugf("registry %s: %s.%s: %v", r.id, className, key, err)
			if first == nil {
				first = fmt.Errorf("%s: %w", key, err)
			}
			continue
		}
		resolve(sig, mid)
	}
	r.cls = cls
	r.className = className
	log.Debugf("registry %s: bound %s (%d members, %d unresolved)", r.id, className, len(r.sigs), failed)
	return first
}

// Unbind invalidates every handle and forgets the class and the instance.
// The instance reference is not released.
func (r *registry) Unbind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sig := range r.sigs {
		invalidate(sig)
	}
	if !r.cls.IsNil() {
		log.Debugf("registry %s: unbound %s", r.id, r.className)
	}
	r.cls = 0
	r.className = ""
	r.obj = 0
}

// Bound reports whether a class is bound.
func (r *registry) Bound() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.cls.IsNil()
}

// Class returns the bound class, or null.
func (r *registry) Class() apis.ClassRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cls
}

// ClassName returns the name the registry was bound with.
func (r *registry) ClassName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.className
}

// Construct runs the constructor registered under key and makes the new
// object the current instance. The previous instance is not released.
// Arguments are checked against the descriptor before the runtime sees them.
func (r *registry) Construct(key string, args ...apis.Value) (apis.ObjectRef, error) {
	r.mu.RLock()
	sig, ok := r.sigs[key]
	var s apis.Signature
	if ok {
		s = *sig
	}
	cls := r.cls
	r.mu.RUnlock()

	switch {
	case !ok:
		return 0, fmt.Errorf("%w: %q", apis.ErrUnknownKey, key)
	case !s.IsConstructor():
		return 0, fmt.Errorf("%w: %s is %s%s", ErrNotConstructor, key, s.Name, s.Descriptor)
	case cls.IsNil():
		return 0, fmt.Errorf("%w: %w: %s", ErrNotBound, apis.ErrUnresolved, key)
	case s.State != apis.Resolved:
		return 0, fmt.Errorf("%w: %s", apis.ErrUnresolved, key)
	}
	if err := s.CheckArgs(args); err != nil {
		return 0, err
	}

	obj := r.rt.NewObject(cls, s.Method, args)
	if err := fault.Drain(r.rt, "construct "+key); err != nil {
		if !obj.IsNil() {
			r.rt.DeleteRef(obj)
		}
		return 0, fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	if obj.IsNil() {
		return 0, fmt.Errorf("%w: %s returned null", ErrConstruction, key)
	}

	r.mu.Lock()
	r.obj = obj
	r.mu.Unlock()
	return obj, nil
}

// Instance returns the current instance, or null.
func (r *registry) Instance() apis.ObjectRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.obj
}

// SetInstance replaces the current instance without releasing the old one.
func (r *registry) SetInstance(obj apis.ObjectRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obj = obj
}

// Release deletes the current instance reference and clears it.
func (r *registry) Release() {
	r.mu.Lock()
	obj := r.obj
	r.obj = 0
	r.mu.Unlock()
	if !obj.IsNil() && r.rt != nil {
		r.rt.DeleteRef(obj)
	}
}

// Entries returns a snapshot of every signature, sorted by key.
func (r *registry) Entries() []apis.Signature {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := r.sortedKeys()
	out := make([]apis.Signature, 0, len(keys))
	for _, key := range keys {
		out = append(out, snapshot(r.sigs[key]))
	}
	return out
}

// Count returns the number of registered members.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sigs)
}

// Reset drops every registered member. The binding is kept, so members
// registered afterwards resolve immediately.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sigs = make(map[string]*apis.Signature)
}

// Runtime returns the runtime the registry was created over.
func (r *registry) Runtime() apis.Runtime { return r.rt }

// ID returns the registry's correlation id.
func (r *registry) ID() string { return r.id }

// sortedKeys must be called with mu held.
func (r *registry) sortedKeys() []string {
	keys := make([]string, 0, len(r.sigs))
	for k := range r.sigs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
