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

package apis

// Registry maps member keys to signatures for one managed class.
// A registry owns its signatures; handles are valid only for the class it
// is bound to.
type Registry interface {
	// Register adds a member under its own name as key.
	Register(name, descriptor string, static bool) error
	// RegisterAs adds a member under a caller-chosen key.
	// Re-registering an identical member is a no-op; a different member
	// under an existing key is a conflict.
	RegisterAs(key, name, descriptor string, static bool) error
	// Lookup returns a snapshot of the signature stored under key.
	Lookup(key string) (Signature, error)
	// Target is Lookup plus the bound class and current instance, all read
	// in one consistent snapshot.
	Target(key string) (Signature, Receiver, error)
	// UniqueKey finds the key registered for (name, descriptor).
	UniqueKey(name, descriptor string) (string, error)
	// Descriptor returns the descriptor registered under key, verbatim.
	Descriptor(key string) (string, error)

	// Bind resolves the class and every member handle against it.
	// A bound registry must be Unbind-ed before it can be bound again.
	Bind(className string) error
	// Unbind invalidates every handle and forgets the class and instance.
	Unbind()
	// Bound reports whether a class is bound.
	Bound() bool
	// Class returns the bound class, or null.
	Class() ClassRef
	// ClassName returns the bound class name, or "".
	ClassName() string

	// Construct runs the constructor registered under key and makes the
	// result the current instance. The previous instance is not released.
	// args are always checked against the constructor's descriptor.
	Construct(key string, args ...Value) (ObjectRef, error)
	// Instance returns the current instance, or null.
	Instance() ObjectRef
	// SetInstance makes obj the current instance.
	SetInstance(obj ObjectRef)
	// Release deletes the runtime reference of the current instance.
	Release()

	// Entries returns all signatures sorted by key.
	Entries() []Signature
	// Count returns the number of registered signatures.
	Count() int
	// Reset removes every signature. The binding and instance are kept.
	Reset()
	// Runtime returns the runtime the registry resolves against.
	Runtime() Runtime
	// ID identifies the registry in logs.
	ID() string
}
