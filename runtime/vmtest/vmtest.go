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

// Package vmtest is an in-memory managed runtime.
//
// Classes and their members are defined in Go. A member body that returns an
// error raises a runtime fault, which stays pending until it is cleared, the
// same way a real runtime behaves. Every primitive that runs while a fault is
// pending is counted as a violation, so tests can assert that nothing leaks
// a fault.
package vmtest

import (
	"errors"
	"fmt"
	"sync"

	"dirpx.dev/jbridge/apis"
)

// Func is a member body. this is nil for static members. A nil result is
// the void (or null) result.
type Func func(rt *Runtime, this *Object, args []apis.Value) (apis.Value, error)

// Member declares one method or constructor of a Class.
type Member struct {
	Name       string
	Descriptor string
	Static     bool
	Fn         Func
}

// Class declares a managed class.
type Class struct {
	// Name is the internal class name ("example/Calc").
	Name string
	// Members are reported by reflection in this order, methods first.
	Members []Member
	// InitFault, when set, is raised by every FindClass of this class.
	InitFault string
}

// Object is a live instance.
type Object struct {
	Ref    apis.ObjectRef
	Class  string
	Fields map[string]apis.Value
}

type method struct {
	id    apis.MethodID
	class *class
	Member
}

type class struct {
	ref     apis.ClassRef
	decl    *Class
	methods []*method
}

// Runtime implements apis.Runtime in memory. It is safe for concurrent use.
type Runtime struct {
	mu         sync.Mutex
	classes    map[string]*class
	byRef      map[apis.ClassRef]*class
	methods    map[apis.MethodID]*method
	objects    map[apis.ObjectRef]*Object
	nextClass  apis.ClassRef
	nextMethod apis.MethodID
	nextObject apis.ObjectRef

	pending    bool
	fault      string
	violations int
	faults     int
	last       string
	calls      map[string]int
	destroyed  bool
}

// Ensure Runtime implements apis.Runtime.
var _ apis.Runtime = (*Runtime)(nil)

// New returns a runtime with the given classes defined.
func New(classes ...*Class) *Runtime {
	rt := &Runtime{
		classes: make(map[string]*class),
		byRef:   make(map[apis.ClassRef]*class),
		methods: make(map[apis.MethodID]*method),
		objects: make(map[apis.ObjectRef]*Object),
		calls:   make(map[string]int),
	}
	for _, c := range classes {
		rt.Define(c)
	}
	return rt
}

// Define adds c, replacing any class of the same name.
func (rt *Runtime) Define(c *Class) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.nextClass++
	k := &class{ref: rt.nextClass, decl: c}
	for _, m := range c.Members {
		rt.nextMethod++
		md := &method{id: rt.nextMethod, class: k, Member: m}
		k.methods = append(k.methods, md)
		rt.methods[md.id] = md
	}
	rt.classes[c.Name] = k
	rt.byRef[k.ref] = k
}

// Raise makes a fault pending, as a member body throwing would.
func (rt *Runtime) Raise(format string, args ...any) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.raiseLocked(fmt.Sprintf(format, args...))
}

func (rt *Runtime) raiseLocked(desc string) {
	rt.pending = true
	rt.fault = desc
	rt.faults++
}

// enter records a primitive call. It must be called with mu held.
func (rt *Runtime) enter(primitive string) {
	if rt.pending {
		rt.violations++
	}
	rt.last = primitive
	rt.calls[primitive]++
}

// Last returns the name of the last primitive called ("CallStaticIntMethod").
func (rt *Runtime) Last() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.last
}

// Calls returns how often primitive has been called.
func (rt *Runtime) Calls(primitive string) int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.calls[primitive]
}

// Violations counts primitives that ran while a fault was pending.
func (rt *Runtime) Violations() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.violations
}

// Faults counts the faults raised so far.
func (rt *Runtime) Faults() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.faults
}

// Object returns the live object behind ref.
func (rt *Runtime) Object(ref apis.ObjectRef) (*Object, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	o, ok := rt.objects[ref]
	return o, ok
}

// Live returns the number of live object references.
func (rt *Runtime) Live() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return len(rt.objects)
}

// Alloc creates an object of className without running a constructor.
// Member bodies use it to return fresh objects.
func (rt *Runtime) Alloc(className string) apis.ObjectRef {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.allocLocked(className).Ref
}

func (rt *Runtime) allocLocked(className string) *Object {
	rt.nextObject++
	o := &Object{Ref: rt.nextObject, Class: className, Fields: make(map[string]apis.Value)}
	rt.objects[o.Ref] = o
	return o
}

// Destroyed reports whether Destroy has run.
func (rt *Runtime) Destroyed() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.destroyed
}

// FindClass resolves a class by name.
func (rt *Runtime) FindClass(name string) apis.ClassRef {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.enter("FindClass")
	k, ok := rt.classes[name]
	if !ok {
		rt.raiseLocked("java.lang.NoClassDefFoundError: " + name)
		return 0
	}
	if k.decl.InitFault != "" {
		rt.raiseLocked("java.lang.ExceptionInInitializerError: " + k.decl.InitFault)
	}
	return k.ref
}

// GetMethodID resolves an instance method or constructor.
func (rt *Runtime) GetMethodID(cls apis.ClassRef, name, desc string) apis.MethodID {
	return rt.getMethod("GetMethodID", cls, name, desc, false)
}

// GetStaticMethodID resolves a static method.
func (rt *Runtime) GetStaticMethodID(cls apis.ClassRef, name, desc string) apis.MethodID {
	return rt.getMethod("GetStaticMethodID", cls, name, desc, true)
}

func (rt *Runtime) getMethod(primitive string, cls apis.ClassRef, name, desc string, static bool) apis.MethodID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.enter(primitive)
	if k, ok := rt.byRef[cls]; ok {
		for _, m := range k.methods {
			if m.Name == name && m.Descriptor == desc && m.Static == static {
				return m.id
			}
		}
	}
	rt.raiseLocked("java.lang.NoSuchMethodError: " + name + desc)
	return 0
}

// ExceptionCheck reports whether a fault is pending.
func (rt *Runtime) ExceptionCheck() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.pending
}

// ExceptionDescribe returns the pending fault's description.
func (rt *Runtime) ExceptionDescribe() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.fault
}

// ExceptionClear drops the pending fault.
func (rt *Runtime) ExceptionClear() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.pending = false
	rt.fault = ""
}

// invoke runs the body of mid. Bodies run without mu held so they can call
// back into the runtime.
func (rt *Runtime) invoke(primitive string, recv apis.ObjectRef, static bool, cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Value {
	rt.mu.Lock()
	rt.enter(primitive)
	m, ok := rt.methods[mid]
	var this *Object
	switch {
	case !ok:
		rt.raiseLocked(fmt.Sprintf("java.lang.NoSuchMethodError: method id %d", mid))
	case m.Static != static:
		rt.raiseLocked(fmt.Sprintf("java.lang.IncompatibleClassChangeError: %s%s", m.Name, m.Descriptor))
		ok = false
	case static && m.class.ref != cls:
		rt.raiseLocked(fmt.Sprintf("java.lang.IllegalArgumentException: %s is not a member of class %d", m.Name, cls))
		ok = false
	case !static:
		if this, ok = rt.objects[recv]; !ok {
			rt.raiseLocked("java.lang.NullPointerException")
		}
	}
	rt.mu.Unlock()
	if !ok || m.Fn == nil {
		return nil
	}

	v, err := m.Fn(rt, this, args)
	if err != nil {
		rt.Raise("%s", describe(err))
		return nil
	}
	return v
}

func describe(err error) string {
	var t *Throwable
	if errors.As(err, &t) {
		return t.Error()
	}
	return "java.lang.RuntimeException: " + err.Error()
}

// Throwable is an error a member body returns to raise a specific exception class.
type Throwable struct {
	Class   string
	Message string
}

func (t *Throwable) Error() string {
	if t.Message == "" {
		return t.Class
	}
	return t.Class + ": " + t.Message
}

func result[T apis.Value](v apis.Value) T {
	out, _ := v.(T)
	return out
}

func (rt *Runtime) CallStaticBooleanMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Boolean {
	return result[apis.Boolean](rt.invoke("CallStaticBooleanMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticByteMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Byte {
	return result[apis.Byte](rt.invoke("CallStaticByteMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticCharMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Char {
	return result[apis.Char](rt.invoke("CallStaticCharMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticShortMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Short {
	return result[apis.Short](rt.invoke("CallStaticShortMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticIntMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Int {
	return result[apis.Int](rt.invoke("CallStaticIntMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticLongMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Long {
	return result[apis.Long](rt.invoke("CallStaticLongMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticFloatMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Float {
	return result[apis.Float](rt.invoke("CallStaticFloatMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticDoubleMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Double {
	return result[apis.Double](rt.invoke("CallStaticDoubleMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticObjectMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
	return result[apis.ObjectRef](rt.invoke("CallStaticObjectMethod", 0, true, cls, mid, args))
}

func (rt *Runtime) CallStaticVoidMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) {
	rt.invoke("CallStaticVoidMethod", 0, true, cls, mid, args)
}

func (rt *Runtime) CallBooleanMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Boolean {
	return result[apis.Boolean](rt.invoke("CallBooleanMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallByteMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Byte {
	return result[apis.Byte](rt.invoke("CallByteMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallCharMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Char {
	return result[apis.Char](rt.invoke("CallCharMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallShortMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Short {
	return result[apis.Short](rt.invoke("CallShortMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallIntMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Int {
	return result[apis.Int](rt.invoke("CallIntMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallLongMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Long {
	return result[apis.Long](rt.invoke("CallLongMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallFloatMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Float {
	return result[apis.Float](rt.invoke("CallFloatMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallDoubleMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Double {
	return result[apis.Double](rt.invoke("CallDoubleMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallObjectMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
	return result[apis.ObjectRef](rt.invoke("CallObjectMethod", obj, false, 0, mid, args))
}

func (rt *Runtime) CallVoidMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) {
	rt.invoke("CallVoidMethod", obj, false, 0, mid, args)
}

// NewObject allocates an instance of cls and runs constructor ctor on it.
// A constructor that faults leaves no object behind.
func (rt *Runtime) NewObject(cls apis.ClassRef, ctor apis.MethodID, args []apis.Value) apis.ObjectRef {
	rt.mu.Lock()
	rt.enter("NewObject")
	k, ok := rt.byRef[cls]
	m, mok := rt.methods[ctor]
	if !ok || !mok || m.class != k || m.Name != apis.ConstructorName {
		rt.raiseLocked(fmt.Sprintf("java.lang.InstantiationException: method id %d", ctor))
		rt.mu.Unlock()
		return 0
	}
	o := rt.allocLocked(k.decl.Name)
	rt.mu.Unlock()

	if m.Fn != nil {
		if _, err := m.Fn(rt, o, args); err != nil {
			rt.mu.Lock()
			delete(rt.objects, o.Ref)
			rt.raiseLocked(describe(err))
			rt.mu.Unlock()
			return 0
		}
	}
	return o.Ref
}

// DeleteRef releases ref.
func (rt *Runtime) DeleteRef(ref apis.ObjectRef) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.enter("DeleteRef")
	delete(rt.objects, ref)
}

// DeclaredMembers reports the members of cls, methods first, then
// constructors, each in declaration order.
func (rt *Runtime) DeclaredMembers(cls apis.ClassRef) (names, descriptors []string, static []bool, err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.enter("DeclaredMembers")
	k, ok := rt.byRef[cls]
	if !ok {
		rt.raiseLocked(fmt.Sprintf("java.lang.IllegalArgumentException: class %d", cls))
		return nil, nil, nil, fmt.Errorf("vmtest: unknown class %d", cls)
	}
	var ctors []*method
	for _, m := range k.methods {
		if m.Name == apis.ConstructorName {
			ctors = append(ctors, m)
			continue
		}
		names = append(names, m.Name)
		descriptors = append(descriptors, m.Descriptor)
		static = append(static, m.Static)
	}
	for _, m := range ctors {
		names = append(names, m.Name)
		descriptors = append(descriptors, m.Descriptor)
		static = append(static, false)
	}
	return names, descriptors, static, nil
}

// Destroy tears the runtime down.
func (rt *Runtime) Destroy() error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.destroyed {
		return errors.New("vmtest: runtime already destroyed")
	}
	rt.destroyed = true
	rt.objects = make(map[apis.ObjectRef]*Object)
	return nil
}
