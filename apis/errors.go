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

import "errors"

// Errors shared by the registry and the dispatch engine.
var (
	// ErrUnknownKey is returned when no signature is registered under a key.
	ErrUnknownKey = errors.New("jbridge: unknown member key")
	// ErrUnresolved is returned when a signature has no resolved handle.
	ErrUnresolved = errors.New("jbridge: member handle is unresolved")
	// ErrNilRuntime is returned when an operation needs a runtime and has none.
	ErrNilRuntime = errors.New("jbridge: no managed runtime")
	// ErrArgCount is returned when the argument count differs from the descriptor's.
	ErrArgCount = errors.New("jbridge: wrong number of arguments")
	// ErrArgShape is returned when an argument's shape differs from its parameter's.
	ErrArgShape = errors.New("jbridge: argument shape does not match the parameter")
)
