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

package registry

import (
	"fmt"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/utils/descriptor"
)

// newSignature classifies descriptor and picks the invocation primitive.
// The result is Unresolved.
func newSignature(key, name, desc string, static bool) (*apis.Signature, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	tag, err := descriptor.Classify(desc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	params, err := descriptor.Params(desc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if name == apis.ConstructorName && (static || tag != apis.TagVoid) {
		return nil, fmt.Errorf("%w: %s%s (static=%t)", ErrBadConstructor, name, desc, static)
	}
	return &apis.Signature{
		Key:        key,
		Name:       name,
		Descriptor: desc,
		Static:     static,
		Tag:        tag,
		Params:     params,
		State:      apis.Unresolved,
		Thunk:      thunkFor(tag, static),
	}, nil
}

// sameMember reports whether s was registered from the given triple.
func sameMember(s *apis.Signature, name, desc string, static bool) bool {
	return s.Name == name && s.Descriptor == desc && s.Static == static
}

// snapshot copies s so callers cannot reach the registry's record.
func snapshot(s *apis.Signature) apis.Signature {
	out := *s
	if s.Params != nil {
		out.Params = append([]apis.TypeTag(nil), s.Params...)
	}
	return out
}

// invalidate moves s back to Unresolved.
func invalidate(s *apis.Signature) {
	s.State = apis.Unresolved
	s.Method = 0
}

// resolve moves s to Resolved with handle mid.
func resolve(s *apis.Signature, mid apis.MethodID) {
	s.State = apis.Resolved
	s.Method = mid
}
