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

//go:build jni && cgo

package jni

/*
#cgo LDFLAGS: -ljvm
#include <jni.h>
#include <stdlib.h>
#include <string.h>

static jint jb_create(JavaVM **vm, jint version, char **opts, int n) {
	JNIEnv *env = NULL;
	JavaVMOption *o = calloc(n > 0 ? n : 1, sizeof(JavaVMOption));
	if (o == NULL) return JNI_ENOMEM;
	for (int i = 0; i < n; i++) o[i].optionString = opts[i];
	JavaVMInitArgs args;
	args.version = version;
	args.nOptions = n;
	args.options = o;
	args.ignoreUnrecognized = JNI_FALSE;
	jint rc = JNI_CreateJavaVM(vm, (void **)&env, &args);
	free(o);
	return rc;
}

static jint jb_destroy(JavaVM *vm) { return (*vm)->DestroyJavaVM(vm); }

static JNIEnv *jb_env(JavaVM *vm, jint version) {
	JNIEnv *env = NULL;
	jint rc = (*vm)->GetEnv(vm, (void **)&env, version);
	if (rc == JNI_EDETACHED) {
		if ((*vm)->AttachCurrentThread(vm, (void **)&env, NULL) != JNI_OK) return NULL;
	} else if (rc != JNI_OK) {
		return NULL;
	}
	return env;
}

static jobject jb_global(JNIEnv *env, jobject local) {
	if (local == NULL) return NULL;
	jobject g = (*env)->NewGlobalRef(env, local);
	(*env)->DeleteLocalRef(env, local);
	return g;
}

static jclass jb_find_class(JavaVM *vm, jint ver, const char *name) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	return (jclass)jb_global(env, (*env)->FindClass(env, name));
}

static jmethodID jb_method(JavaVM *vm, jint ver, jclass c, const char *n, const char *s, int is_static) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	if (is_static) return (*env)->GetStaticMethodID(env, c, n, s);
	return (*env)->GetMethodID(env, c, n, s);
}

static jboolean jb_check(JavaVM *vm, jint ver) {
	JNIEnv *env = jb_env(vm, ver);
	return env != NULL && (*env)->ExceptionCheck(env);
}

static void jb_clear(JavaVM *vm, jint ver) {
	JNIEnv *env = jb_env(vm, ver);
	if (env != NULL) (*env)->ExceptionClear(env);
}

static char *jb_string(JNIEnv *env, jstring s) {
	if (s == NULL) return NULL;
	const char *c = (*env)->GetStringUTFChars(env, s, NULL);
	char *out = c != NULL ? strdup(c) : NULL;
	if (c != NULL) (*env)->ReleaseStringUTFChars(env, s, c);
	(*env)->DeleteLocalRef(env, s);
	return out;
}

// jb_describe renders the pending throwable with toString and leaves it pending.
static char *jb_describe(JavaVM *vm, jint ver) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	jthrowable t = (*env)->ExceptionOccurred(env);
	if (t == NULL) return NULL;
	(*env)->ExceptionClear(env);
	char *out = NULL;
	jclass tc = (*env)->GetObjectClass(env, t);
	jmethodID ts = (*env)->GetMethodID(env, tc, "toString", "()Ljava/lang/String;");
	if (ts != NULL) {
		jstring s = (jstring)(*env)->CallObjectMethod(env, t, ts);
		if (!(*env)->ExceptionCheck(env)) out = jb_string(env, s);
	}
	(*env)->ExceptionClear(env);
	(*env)->DeleteLocalRef(env, tc);
	(*env)->Throw(env, t);
	(*env)->DeleteLocalRef(env, t);
	return out;
}

#define JB_CALLS(T, R) \
static R jb_call_static_##T(JavaVM *vm, jint ver, jclass c, jmethodID m, jvalue *a) { \
	JNIEnv *env = jb_env(vm, ver); \
	if (env == NULL) return 0; \
	return (*env)->CallStatic##T##MethodA(env, c, m, a); \
} \
static R jb_call_##T(JavaVM *vm, jint ver, jobject o, jmethodID m, jvalue *a) { \
	JNIEnv *env = jb_env(vm, ver); \
	if (env == NULL) return 0; \
	return (*env)->Call##T##MethodA(env, o, m, a); \
}

JB_CALLS(Boolean, jboolean)
JB_CALLS(Byte, jbyte)
JB_CALLS(Char, jchar)
JB_CALLS(Short, jshort)
JB_CALLS(Int, jint)
JB_CALLS(Long, jlong)
JB_CALLS(Float, jfloat)
JB_CALLS(Double, jdouble)

static jobject jb_call_static_Object(JavaVM *vm, jint ver, jclass c, jmethodID m, jvalue *a) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	return jb_global(env, (*env)->CallStaticObjectMethodA(env, c, m, a));
}

static jobject jb_call_Object(JavaVM *vm, jint ver, jobject o, jmethodID m, jvalue *a) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	return jb_global(env, (*env)->CallObjectMethodA(env, o, m, a));
}

static void jb_call_static_Void(JavaVM *vm, jint ver, jclass c, jmethodID m, jvalue *a) {
	JNIEnv *env = jb_env(vm, ver);
	if (env != NULL) (*env)->CallStaticVoidMethodA(env, c, m, a);
}

static void jb_call_Void(JavaVM *vm, jint ver, jobject o, jmethodID m, jvalue *a) {
	JNIEnv *env = jb_env(vm, ver);
	if (env != NULL) (*env)->CallVoidMethodA(env, o, m, a);
}

static jobject jb_new_object(JavaVM *vm, jint ver, jclass c, jmethodID m, jvalue *a) {
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return NULL;
	return jb_global(env, (*env)->NewObjectA(env, c, m, a));
}

static void jb_delete_ref(JavaVM *vm, jint ver, jobject o) {
	JNIEnv *env = jb_env(vm, ver);
	if (env != NULL && o != NULL) (*env)->DeleteGlobalRef(env, o);
}

typedef struct {
	char *name;
	char *ret;
	char *params;
	int is_static;
} jb_member;

static void jb_free_members(jb_member *ms, int n) {
	if (ms == NULL) return;
	for (int i = 0; i < n; i++) {
		free(ms[i].name);
		free(ms[i].ret);
		free(ms[i].params);
	}
	free(ms);
}

static char *jb_class_name(JNIEnv *env, jobject cls, jmethodID getName) {
	if (cls == NULL) return NULL;
	return jb_string(env, (jstring)(*env)->CallObjectMethod(env, cls, getName));
}

static char *jb_param_names(JNIEnv *env, jobjectArray types, jmethodID getName) {
	if (types == NULL) return NULL;
	jsize n = (*env)->GetArrayLength(env, types);
	char *buf = calloc(1, 1);
	for (jsize i = 0; i < n && buf != NULL; i++) {
		jobject t = (*env)->GetObjectArrayElement(env, types, i);
		char *nm = jb_class_name(env, t, getName);
		(*env)->DeleteLocalRef(env, t);
		if (nm == NULL) {
			free(buf);
			return NULL;
		}
		size_t l = strlen(buf), m = strlen(nm);
		char *grown = realloc(buf, l + m + 2);
		if (grown == NULL) {
			free(buf);
			free(nm);
			return NULL;
		}
		buf = grown;
		if (l > 0) buf[l++] = ',';
		memcpy(buf + l, nm, m + 1);
		free(nm);
	}
	return buf;
}

// jb_declared lists the declared methods of cls, then its constructors.
// It returns the member count, or -1 with an exception pending.
static int jb_declared(JavaVM *vm, jint ver, jclass cls, jb_member **out) {
	*out = NULL;
	JNIEnv *env = jb_env(vm, ver);
	if (env == NULL) return -1;

	jclass classClass = (*env)->FindClass(env, "java/lang/Class");
	jclass methodClass = (*env)->FindClass(env, "java/lang/reflect/Method");
	jclass ctorClass = (*env)->FindClass(env, "java/lang/reflect/Constructor");
	if (classClass == NULL || methodClass == NULL || ctorClass == NULL) return -1;

	jmethodID getName = (*env)->GetMethodID(env, classClass, "getName", "()Ljava/lang/String;");
	jmethodID getMethods = (*env)->GetMethodID(env, classClass, "getDeclaredMethods", "()[Ljava/lang/reflect/Method;");
	jmethodID getCtors = (*env)->GetMethodID(env, classClass, "getDeclaredConstructors", "()[Ljava/lang/reflect/Constructor;");
	jmethodID mName = (*env)->GetMethodID(env, methodClass, "getName", "()Ljava/lang/String;");
	jmethodID mParams = (*env)->GetMethodID(env, methodClass, "getParameterTypes", "()[Ljava/lang/Class;");
	jmethodID mRet = (*env)->GetMethodID(env, methodClass, "getReturnType", "()Ljava/lang/Class;");
	jmethodID mMods = (*env)->GetMethodID(env, methodClass, "getModifiers", "()I");
	jmethodID cParams = (*env)->GetMethodID(env, ctorClass, "getParameterTypes", "()[Ljava/lang/Class;");
	if ((*env)->ExceptionCheck(env)) return -1;

	jobjectArray methods = (jobjectArray)(*env)->CallObjectMethod(env, cls, getMethods);
	if ((*env)->ExceptionCheck(env)) return -1;
	jobjectArray ctors = (jobjectArray)(*env)->CallObjectMethod(env, cls, getCtors);
	if ((*env)->ExceptionCheck(env)) return -1;

	jsize nm = methods != NULL ? (*env)->GetArrayLength(env, methods) : 0;
	jsize nc = ctors != NULL ? (*env)->GetArrayLength(env, ctors) : 0;
	jb_member *ms = calloc(nm + nc > 0 ? nm + nc : 1, sizeof(jb_member));
	if (ms == NULL) return -1;
	int k = 0;

	for (jsize i = 0; i < nm; i++, k++) {
		jobject m = (*env)->GetObjectArrayElement(env, methods, i);
		ms[k].name = jb_string(env, (jstring)(*env)->CallObjectMethod(env, m, mName));
		jobject ret = (*env)->CallObjectMethod(env, m, mRet);
		ms[k].ret = jb_class_name(env, ret, getName);
		(*env)->DeleteLocalRef(env, ret);
		jobjectArray ps = (jobjectArray)(*env)->CallObjectMethod(env, m, mParams);
		ms[k].params = jb_param_names(env, ps, getName);
		(*env)->DeleteLocalRef(env, ps);
		ms[k].is_static = ((*env)->CallIntMethod(env, m, mMods) & 0x0008) != 0;
		(*env)->DeleteLocalRef(env, m);
		if ((*env)->ExceptionCheck(env) || ms[k].name == NULL || ms[k].ret == NULL || ms[k].params == NULL) {
			jb_free_members(ms, k + 1);
			return -1;
		}
	}
	for (jsize i = 0; i < nc; i++, k++) {
		jobject c = (*env)->GetObjectArrayElement(env, ctors, i);
		ms[k].name = strdup("<init>");
		ms[k].ret = strdup("void");
		jobjectArray ps = (jobjectArray)(*env)->CallObjectMethod(env, c, cParams);
		ms[k].params = jb_param_names(env, ps, getName);
		(*env)->DeleteLocalRef(env, ps);
		(*env)->DeleteLocalRef(env, c);
		if ((*env)->ExceptionCheck(env) || ms[k].params == NULL) {
			jb_free_members(ms, k + 1);
			return -1;
		}
	}

	(*env)->DeleteLocalRef(env, methods);
	(*env)->DeleteLocalRef(env, ctors);
	(*env)->DeleteLocalRef(env, classClass);
	(*env)->DeleteLocalRef(env, methodClass);
	(*env)->DeleteLocalRef(env, ctorClass);
	*out = ms;
	return k;
}

static jb_member *jb_member_at(jb_member *ms, int i) { return &ms[i]; }
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"dirpx.dev/jbridge/apis"
)

// Launcher creates the JVM through JNI_CreateJavaVM.
type Launcher struct{}

// Ensure Launcher implements apis.Launcher.
var _ apis.Launcher = Launcher{}

// Launch creates the JVM with the given options. A JVM can only be created
// once per process.
func (Launcher) Launch(version int32, options []string) (apis.Runtime, error) {
	opts := make([]*C.char, len(options))
	for i, o := range options {
		opts[i] = C.CString(o)
	}
	defer func() {
		for _, p := range opts {
			C.free(unsafe.Pointer(p))
		}
	}()
	var argv **C.char
	if len(opts) > 0 {
		argv = &opts[0]
	}

	var vm *C.JavaVM
	if rc := C.jb_create(&vm, C.jint(version), argv, C.int(len(opts))); rc != C.JNI_OK {
		return nil, fmt.Errorf("JNI_CreateJavaVM returned %d", int(rc))
	}
	return &Runtime{vm: vm, ver: C.jint(version)}, nil
}

// Runtime is a live JVM. Class and object references it hands out are
// global references.
type Runtime struct {
	vm  *C.JavaVM
	ver C.jint
}

// Ensure Runtime implements apis.Runtime.
var _ apis.Runtime = (*Runtime)(nil)

func jclass(c apis.ClassRef) C.jclass { return C.jclass(unsafe.Pointer(uintptr(c))) }
func jobject(o apis.ObjectRef) C.jobject { return C.jobject(unsafe.Pointer(uintptr(o))) }
func jmethod(m apis.MethodID) C.jmethodID { return C.jmethodID(unsafe.Pointer(uintptr(m))) }
func objectRef(o C.jobject) apis.ObjectRef { return apis.ObjectRef(uintptr(unsafe.Pointer(o))) }
func classRef(c C.jclass) apis.ClassRef { return apis.ClassRef(uintptr(unsafe.Pointer(c))) }
func methodID(m C.jmethodID) apis.MethodID { return apis.MethodID(uintptr(unsafe.Pointer(m))) }

// jvalues lays args out as a jvalue array.
func jvalues(args []apis.Value) []C.jvalue {
	if len(args) == 0 {
		return nil
	}
	out := make([]C.jvalue, len(args))
	for i, a := range args {
		p := unsafe.Pointer(&out[i])
		switch v := a.(type) {
		case apis.Boolean:
			if v {
				*(*C.jboolean)(p) = C.JNI_TRUE
			} else {
				*(*C.jboolean)(p) = C.JNI_FALSE
			}
		case apis.Byte:
			*(*C.jbyte)(p) = C.jbyte(v)
		case apis.Char:
			*(*C.jchar)(p) = C.jchar(v)
		case apis.Short:
			*(*C.jshort)(p) = C.jshort(v)
		case apis.Int:
			*(*C.jint)(p) = C.jint(v)
		case apis.Long:
			*(*C.jlong)(p) = C.jlong(v)
		case apis.Float:
			*(*C.jfloat)(p) = C.jfloat(v)
		case apis.Double:
			*(*C.jdouble)(p) = C.jdouble(v)
		case apis.ObjectRef:
			*(*C.jobject)(p) = jobject(v)
		}
	}
	return out
}

func argp(a []C.jvalue) *C.jvalue {
	if len(a) == 0 {
		return nil
	}
	return &a[0]
}

func (r *Runtime) FindClass(name string) apis.ClassRef {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return classRef(C.jb_find_class(r.vm, r.ver, cs))
}

func (r *Runtime) GetMethodID(cls apis.ClassRef, name, desc string) apis.MethodID {
	return r.method(cls, name, desc, 0)
}

func (r *Runtime) GetStaticMethodID(cls apis.ClassRef, name, desc string) apis.MethodID {
	return r.method(cls, name, desc, 1)
}

func (r *Runtime) method(cls apis.ClassRef, name, desc string, static C.int) apis.MethodID {
	cn, cd := C.CString(name), C.CString(desc)
	defer C.free(unsafe.Pointer(cn))
	defer C.free(unsafe.Pointer(cd))
	return methodID(C.jb_method(r.vm, r.ver, jclass(cls), cn, cd, static))
}

func (r *Runtime) ExceptionCheck() bool { return C.jb_check(r.vm, r.ver) != 0 }

func (r *Runtime) ExceptionDescribe() string {
	cs := C.jb_describe(r.vm, r.ver)
	if cs == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs)
}

func (r *Runtime) ExceptionClear() { C.jb_clear(r.vm, r.ver) }

func (r *Runtime) CallStaticBooleanMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Boolean {
	a := jvalues(args)
	return C.jb_call_static_Boolean(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)) != 0
}

func (r *Runtime) CallStaticByteMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Byte {
	a := jvalues(args)
	return apis.Byte(C.jb_call_static_Byte(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticCharMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Char {
	a := jvalues(args)
	return apis.Char(C.jb_call_static_Char(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticShortMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Short {
	a := jvalues(args)
	return apis.Short(C.jb_call_static_Short(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticIntMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Int {
	a := jvalues(args)
	return apis.Int(C.jb_call_static_Int(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticLongMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Long {
	a := jvalues(args)
	return apis.Long(C.jb_call_static_Long(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticFloatMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Float {
	a := jvalues(args)
	return apis.Float(C.jb_call_static_Float(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticDoubleMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.Double {
	a := jvalues(args)
	return apis.Double(C.jb_call_static_Double(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticObjectMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
	a := jvalues(args)
	return objectRef(C.jb_call_static_Object(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a)))
}

func (r *Runtime) CallStaticVoidMethod(cls apis.ClassRef, mid apis.MethodID, args []apis.Value) {
	a := jvalues(args)
	C.jb_call_static_Void(r.vm, r.ver, jclass(cls), jmethod(mid), argp(a))
}

func (r *Runtime) CallBooleanMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Boolean {
	a := jvalues(args)
	return C.jb_call_Boolean(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)) != 0
}

func (r *Runtime) CallByteMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Byte {
	a := jvalues(args)
	return apis.Byte(C.jb_call_Byte(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallCharMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Char {
	a := jvalues(args)
	return apis.Char(C.jb_call_Char(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallShortMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Short {
	a := jvalues(args)
	return apis.Short(C.jb_call_Short(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallIntMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Int {
	a := jvalues(args)
	return apis.Int(C.jb_call_Int(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallLongMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Long {
	a := jvalues(args)
	return apis.Long(C.jb_call_Long(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallFloatMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Float {
	a := jvalues(args)
	return apis.Float(C.jb_call_Float(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallDoubleMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.Double {
	a := jvalues(args)
	return apis.Double(C.jb_call_Double(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallObjectMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
	a := jvalues(args)
	return objectRef(C.jb_call_Object(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a)))
}

func (r *Runtime) CallVoidMethod(obj apis.ObjectRef, mid apis.MethodID, args []apis.Value) {
	a := jvalues(args)
	C.jb_call_Void(r.vm, r.ver, jobject(obj), jmethod(mid), argp(a))
}

func (r *Runtime) NewObject(cls apis.ClassRef, ctor apis.MethodID, args []apis.Value) apis.ObjectRef {
	a := jvalues(args)
	return objectRef(C.jb_new_object(r.vm, r.ver, jclass(cls), jmethod(ctor), argp(a)))
}

func (r *Runtime) DeleteRef(ref apis.ObjectRef) {
	C.jb_delete_ref(r.vm, r.ver, jobject(ref))
}

// DeclaredMembers reflects over cls with Class.getDeclaredMethods and
// Class.getDeclaredConstructors.
func (r *Runtime) DeclaredMembers(cls apis.ClassRef) (names, descriptors []string, static []bool, err error) {
	var ms *C.jb_member
	n := int(C.jb_declared(r.vm, r.ver, jclass(cls), &ms))
	if n < 0 {
		return nil, nil, nil, errors.New("jni: reflection over class failed")
	}
	defer C.jb_free_members(ms, C.int(n))

	names = make([]string, n)
	descriptors = make([]string, n)
	static = make([]bool, n)
	for i := 0; i < n; i++ {
		m := C.jb_member_at(ms, C.int(i))
		names[i] = C.GoString(m.name)
		descriptors[i] = MethodDescriptor(splitParams(C.GoString(m.params)), C.GoString(m.ret))
		static[i] = m.is_static != 0
	}
	return names, descriptors, static, nil
}

// Destroy unloads the JVM.
func (r *Runtime) Destroy() error {
	if rc := C.jb_destroy(r.vm); rc != C.JNI_OK {
		return fmt.Errorf("DestroyJavaVM returned %d", int(rc))
	}
	return nil
}
