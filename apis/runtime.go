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

// ClassResolver looks up classes and member handles.
// A failed lookup returns a null handle and leaves a pending fault.
type ClassResolver interface {
	// FindClass resolves a class by its internal name ("java/util/ArrayList").
	FindClass(name string) ClassRef
	// GetMethodID resolves an instance method or constructor of cls.
	GetMethodID(cls ClassRef, name, descriptor string) MethodID
	// GetStaticMethodID resolves a static method of cls.
	GetStaticMethodID(cls ClassRef, name, descriptor string) MethodID
}

// Faults exposes the runtime's pending-exception state. A fault stays
// pending until it is cleared; every boundary error must drain it.
type Faults interface {
	// ExceptionCheck reports whether a fault is pending.
	ExceptionCheck() bool
	// ExceptionDescribe returns a human-readable description of the pending fault.
	ExceptionDescribe() string
	// ExceptionClear drops the pending fault.
	ExceptionClear()
}

// StaticInvoker holds the ten static invocation primitives.
type StaticInvoker interface {
	CallStaticBooleanMethod(cls ClassRef, mid MethodID, args []Value) Boolean
	CallStaticByteMethod(cls ClassRef, mid MethodID, args []Value) Byte
	CallStaticCharMethod(cls ClassRef, mid MethodID, args []Value) Char
	CallStaticShortMethod(cls ClassRef, mid MethodID, args []Value) Short
	CallStaticIntMethod(cls ClassRef, mid MethodID, args []Value) Int
	CallStaticLongMethod(cls ClassRef, mid MethodID, args []Value) Long
	CallStaticFloatMethod(cls ClassRef, mid MethodID, args []Value) Float
	CallStaticDoubleMethod(cls ClassRef, mid MethodID, args []Value) Double
	CallStaticObjectMethod(cls ClassRef, mid MethodID, args []Value) ObjectRef
	CallStaticVoidMethod(cls ClassRef, mid MethodID, args []Value)
}

// InstanceInvoker holds the ten instance invocation primitives.
type InstanceInvoker interface {
	CallBooleanMethod(obj ObjectRef, mid MethodID, args []Value) Boolean
	CallByteMethod(obj ObjectRef, mid MethodID, args []Value) Byte
	CallCharMethod(obj ObjectRef, mid MethodID, args []Value) Char
	CallShortMethod(obj ObjectRef, mid MethodID, args []Value) Short
	CallIntMethod(obj ObjectRef, mid MethodID, args []Value) Int
	CallLongMethod(obj ObjectRef, mid MethodID, args []Value) Long
	CallFloatMethod(obj ObjectRef, mid MethodID, args []Value) Float
	CallDoubleMethod(obj ObjectRef, mid MethodID, args []Value) Double
	CallObjectMethod(obj ObjectRef, mid MethodID, args []Value) ObjectRef
	CallVoidMethod(obj ObjectRef, mid MethodID, args []Value)
}

// Allocator creates objects and releases references.
type Allocator interface {
	// NewObject runs the constructor ctor of cls and returns the new instance.
	NewObject(cls ClassRef, ctor MethodID, args []Value) ObjectRef
	// DeleteRef releases a reference handed out by the runtime.
	DeleteRef(ref ObjectRef)
}

// Reflector is the runtime's own reflection facility.
type Reflector interface {
	// DeclaredMembers returns three positionally aligned sequences describing
	// the declared methods of cls followed by its constructors ("<init>").
	DeclaredMembers(cls ClassRef) (names, descriptors []string, static []bool, err error)
}

// Runtime is the embedding boundary of a live managed runtime.
// Implementations are not safe for concurrent use unless they say so.
type Runtime interface {
	ClassResolver
	Faults
	StaticInvoker
	InstanceInvoker
	Allocator
	Reflector
	// Destroy tears the runtime down. It is called once, by the owner.
	Destroy() error
}

// Launcher creates a Runtime from a native version and a list of options.
type Launcher interface {
	Launch(version int32, options []string) (Runtime, error)
}

// ConstructorName is the runtime's own member name for constructors.
const ConstructorName = "<init>"
