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

import "fmt"

// HandleState is the lifecycle of a signature's invocation handle.
type HandleState uint8

const (
	// Unresolved signatures have no handle; they cannot be invoked.
	Unresolved HandleState = iota
	// Resolved signatures carry a handle valid for the bound class.
	Resolved
)

func (s HandleState) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "unresolved"
}

// Receiver is what a thunk is invoked against: the bound class for static
// members, an instance for the others.
type Receiver struct {
	Class  ClassRef
	Object ObjectRef
}

// Thunk is a typed invocation primitive. Exactly one Thunk exists per
// (TypeTag, static) pair; a signature holds the one matching its descriptor.
type Thunk[T Shape] func(rt Runtime, recv Receiver, mid MethodID, args []Value) T

// Member is a registration record: a key plus the raw member triple.
type Member struct {
	Key        string `yaml:"key" cbor:"1,keyasint"`
	Name       string `yaml:"name" cbor:"2,keyasint"`
	Descriptor string `yaml:"descriptor" cbor:"3,keyasint"`
	Static     bool   `yaml:"static" cbor:"4,keyasint"`
}

// Signature is a read-only snapshot of a registered member.
type Signature struct {
	// Key is the registry-unique member key.
	Key string
	// Name is the runtime's member name (e.g. "add", "<init>").
	Name string
	// Descriptor is the encoded signature, verbatim.
	Descriptor string
	// Static marks members invoked against the class.
	Static bool
	// Tag is the return shape derived from Descriptor.
	Tag TypeTag
	// Params are the argument shapes derived from Descriptor.
	Params []TypeTag
	// State tells whether Method is usable.
	State HandleState
	// Method is the resolved handle; null while Unresolved.
	Method MethodID
	// Thunk holds the Thunk[T] selected by Tag and Static.
	Thunk any
}

// Member returns the registration record of s.
func (s Signature) Member() Member {
	return Member{Key: s.Key, Name: s.Name, Descriptor: s.Descriptor, Static: s.Static}
}

// IsConstructor reports whether s names a constructor.
func (s Signature) IsConstructor() bool {
	return s.Name == ConstructorName
}

// CheckArgs matches args against the parameter shapes of s. It fails with
// ErrArgCount or ErrArgShape.
func (s Signature) CheckArgs(args []Value) error {
	if len(args) != len(s.Params) {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, s.Key, len(s.Params), len(args))
	}
	for i, a := range args {
		if a == nil {
			return fmt.Errorf("%w: %s argument %d is nil, want %s", ErrArgShape, s.Key, i, s.Params[i])
		}
		if a.Tag() != s.Params[i] {
			return fmt.Errorf("%w: %s argument %d is %s, want %s", ErrArgShape, s.Key, i, a.Tag(), s.Params[i])
		}
	}
	return nil
}

// ClassSpec declares how a registry for one class is populated.
type ClassSpec struct {
	// Name is the internal class name, e.g. "example/Example".
	Name string
	// Introspect populates the registry from the runtime's reflection.
	Introspect bool
	// Members are registered explicitly, after any introspected ones.
	Members []Member
}
