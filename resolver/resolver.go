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

package resolver

import (
	"errors"
	"fmt"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/fault"
)

var (
	// ErrClassNotFound is returned when the runtime reports no such class.
	ErrClassNotFound = errors.New("jbridge(resolver): class not found")
	// ErrHandleResolution is returned when the runtime cannot find a member.
	ErrHandleResolution = errors.New("jbridge(resolver): member handle not found")
)

// New constructs an apis.HandleResolver over the class lookup and fault
// primitives of rt.
func New(rt apis.Runtime) apis.HandleResolver {
	return resolver{rt: rt}
}

// resolver is stateless; it only forwards to the runtime and drains faults.
type resolver struct {
	rt apis.Runtime
}

// Ensure resolver implements apis.HandleResolver.
var _ apis.HandleResolver = resolver{}

// ResolveClass looks className up and drains the fault left by a miss.
func (r resolver) ResolveClass(className string) (apis.ClassRef, error) {
	if r.rt == nil {
		return 0, apis.ErrNilRuntime
	}
	cls := r.rt.FindClass(className)
	if cls.IsNil() {
		return 0, fault.Wrap(r.rt, "find class "+className,
			fmt.Errorf("%w: %s", ErrClassNotFound, className))
	}
	// A non-null class with a pending fault (e.g. a failed static
	// initializer) is still a failure.
	if err := fault.Drain(r.rt, "find class "+className); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrClassNotFound, className, err)
	}
	return cls, nil
}

// ResolveMember resolves static members against the class through the
// static lookup primitive, and everything else (constructors included)
// through the instance one.
func (r resolver) ResolveMember(cls apis.ClassRef, name, descriptor string, static bool) (apis.MethodID, error) {
	if r.rt == nil {
		return 0, apis.ErrNilRuntime
	}
	var mid apis.MethodID
	if static {
		mid = r.rt.GetStaticMethodID(cls, name, descriptor)
	} else {
		mid = r.rt.GetMethodID(cls, name, descriptor)
	}
	op := "resolve " + name + descriptor
	if mid.IsNil() {
		return 0, fault.Wrap(r.rt, op,
			fmt.Errorf("%w: %s with descriptor %s (static=%t)", ErrHandleResolution, name, descriptor, static))
	}
	if err := fault.Drain(r.rt, op); err != nil {
		return 0, fmt.Errorf("%w: %s%s: %w", ErrHandleResolution, name, descriptor, err)
	}
	return mid, nil
}
