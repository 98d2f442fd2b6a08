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

// Package jni is the apis.Runtime of a real JVM, reached through the JNI
// invocation interface. The runtime itself needs cgo and the build tag jni:
//
//	CGO_CFLAGS="-I$JAVA_HOME/include -I$JAVA_HOME/include/linux" \
//	CGO_LDFLAGS="-L$JAVA_HOME/lib/server -ljvm" \
//	go build -tags jni ./...
//
// JNI binds the pending-exception state and local references to the calling
// thread. Goroutines using the runtime must be locked to their OS thread
// (runtime.LockOSThread) for the whole of a call and its fault check.
package jni

import "strings"

var primitiveCodes = map[string]string{
	"boolean": "Z",
	"byte":    "B",
	"char":    "C",
	"short":   "S",
	"int":     "I",
	"long":    "J",
	"float":   "F",
	"double":  "D",
	"void":    "V",
}

// TypeDescriptor converts a binary class name as reported by
// Class.getName ("int", "java.lang.String", "[Ljava.lang.String;") into its
// descriptor form.
func TypeDescriptor(name string) string {
	if c, ok := primitiveCodes[name]; ok {
		return c
	}
	internal := strings.ReplaceAll(name, ".", "/")
	if strings.HasPrefix(name, "[") {
		return internal
	}
	return "L" + internal + ";"
}

// MethodDescriptor builds "(<params>)<ret>" from binary class names.
func MethodDescriptor(params []string, ret string) string {
	var b strings.Builder
	b.WriteByte('(')
	for _, p := range params {
		b.WriteString(TypeDescriptor(p))
	}
	b.WriteByte(')')
	b.WriteString(TypeDescriptor(ret))
	return b.String()
}

// splitParams splits the comma-joined parameter list reported by the
// reflection helper.
func splitParams(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
