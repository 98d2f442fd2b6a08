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

package jni

import (
	"testing"

	"dirpx.dev/jbridge/utils/descriptor"
)

func TestTypeDescriptor(t *testing.T) {
	cases := map[string]string{
		"int":                 "I",
		"boolean":             "Z",
		"void":                "V",
		"java.lang.String":    "Ljava/lang/String;",
		"[I":                  "[I",
		"[[D":                 "[[D",
		"[Ljava.lang.Object;": "[Ljava/lang/Object;",
		"java.util.Map$Entry": "Ljava/util/Map$Entry;",
	}
	for in, want := range cases {
		if got := TypeDescriptor(in); got != want {
			t.Errorf("TypeDescriptor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMethodDescriptor_Classifies(t *testing.T) {
	cases := []struct {
		params []string
		ret    string
		want   string
	}{
		{[]string{"int", "int"}, "int", "(II)I"},
		{nil, "void", "()V"},
		{[]string{"int", "int"}, "[Ljava.util.ArrayList;", "(II)[Ljava/util/ArrayList;"},
		{splitParams("java.lang.String,[B"), "long", "(Ljava/lang/String;[B)J"},
	}
	for _, tc := range cases {
		got := MethodDescriptor(tc.params, tc.ret)
		if got != tc.want {
			t.Errorf("MethodDescriptor(%v, %s) = %q, want %q", tc.params, tc.ret, got, tc.want)
			continue
		}
		if _, err := descriptor.Classify(got); err != nil {
			t.Errorf("Classify(%q): %v", got, err)
		}
	}
}

func TestSplitParams(t *testing.T) {
	if got := splitParams(""); got != nil {
		t.Fatalf("splitParams(\"\") = %v, want nil", got)
	}
	if got := splitParams("int,[I"); len(got) != 2 || got[1] != "[I" {
		t.Fatalf("splitParams = %v", got)
	}
}
