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

// Package jbridge lets Go code call constructors, static methods and
// instance methods of objects living in a managed runtime (a JVM reached
// through its native embedding interface) without per-method glue.
//
// # Design
//
// A member is registered as a (name, descriptor, static) triple, where the
// descriptor is the runtime's own encoded signature, e.g. "(II)I". The
// return code of the descriptor is classified into one of ten shapes
// (apis.TypeTag), and the shape together with the static flag selects one
// of twenty typed invocation primitives when the member is registered.
//
// A registry holds the members of one class under unique keys:
//
//   - registry: registration, handle resolution (Bind/Unbind) and
//     construction of instances. A member is Unresolved until its registry
//     is bound to a class, and Resolved afterwards.
//
//   - dispatch: typed calls by key. The requested return shape is a type
//     parameter and is checked against the member before anything runs:
//
//     eng := vm.Dispatcher(reg)
//     sum, err := dispatch.Call[apis.Int](eng, "add", apis.Int(2), apis.Int(3))
//
//   - introspect and strategy: registration from the runtime's reflection.
//     Overloaded names get keys like "add_1", "add_2" in the order the
//     runtime reports them (or, with the descriptor strategy, in descriptor
//     order).
//
//   - builder and catalog: assembly of bound registries from class specs,
//     optionally caching reflection results in a CBOR, SQLite or YAML
//     catalog.
//
// Every failure at the runtime boundary drains the runtime's pending fault
// before it is reported (package fault), so a failed call never poisons the
// next one.
//
// # Process-wide runtime
//
// A process hosts at most one managed runtime. Launch creates it from an
// apis.Launcher (runtime/jni for a real JVM, runtime/vmtest in tests) and is
// idempotent; Shutdown destroys it for good. Everything below this package
// receives the runtime explicitly instead of reading globals.
//
//	vm, err := jbridge.Launch(jni.Launcher{}, config.NewConfig(config.WithOptions("-ea")))
//	if err != nil {
//		return err
//	}
//	defer jbridge.Shutdown()
//
// Registries are not meant to be shared between goroutines that call into
// the runtime at the same time; the runtime binds calls to threads.
package jbridge
