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

package descriptor_test

import (
	"errors"
	"reflect"
	"testing"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/utils/descriptor"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		desc string
		want apis.TypeTag
	}{
		{"boolean", "(Z)Z", apis.TagBoolean},
		{"byte", "(B)B", apis.TagByte},
		{"char", "(C)C", apis.TagChar},
		{"short", "(S)S", apis.TagShort},
		{"int", "(I)I", apis.TagInt},
		{"long", "(J)J", apis.TagLong},
		{"float", "(F)F", apis.TagFloat},
		{"double", "(D)D", apis.TagDouble},
		{"reference", "(Ljava/lang/String;)Ljava/lang/String;", apis.TagObject},
		{"void", "()V", apis.TagVoid},
		{"array of reference", "(II)[Ljava/util/ArrayList;", apis.TagObject},
		{"array of primitive", "()[I", apis.TagObject},
		{"nested array", "()[[D", apis.TagObject},
		{"constructor", "([Ljava/lang/String;[I)V", apis.TagVoid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := descriptor.Classify(tc.desc)
			if err != nil {
				t.Fatalf("Classify(%q): unexpected error: %v", tc.desc, err)
			}
			if got != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.desc, got, tc.want)
			}
		})
	}
}

func TestClassify_Malformed(t *testing.T) {
	cases := []string{
		"",
		"I",
		"(I",
		"(I)",
		"(I)[",
		"(I)X",
		"(I)[V",
		"(I)Ljava/lang/String",
		"(I)II",
		"I)I",
	}
	for _, desc := range cases {
		t.Run(desc, func(t *testing.T) {
			got, err := descriptor.Classify(desc)
			if !errors.Is(err, descriptor.ErrMalformedDescriptor) {
				t.Fatalf("Classify(%q) = (%v, %v), want ErrMalformedDescriptor", desc, got, err)
			}
			if got != apis.TagInvalid {
				t.Fatalf("Classify(%q) tag = %v, want invalid", desc, got)
			}
		})
	}
}

func TestParams(t *testing.T) {
	cases := []struct {
		desc string
		want []apis.TypeTag
	}{
		{"()V", []apis.TypeTag{}},
		{"(II)I", []apis.TypeTag{apis.TagInt, apis.TagInt}},
		{"(ZBCSJFD)V", []apis.TypeTag{
			apis.TagBoolean, apis.TagByte, apis.TagChar, apis.TagShort,
			apis.TagLong, apis.TagFloat, apis.TagDouble,
		}},
		{"(Ljava/lang/String;I[J[[Ljava/lang/Object;)V", []apis.TypeTag{
			apis.TagObject, apis.TagInt, apis.TagObject, apis.TagObject,
		}},
	}
	for _, tc := range cases {
		got, err := descriptor.Params(tc.desc)
		if err != nil {
			t.Fatalf("Params(%q): %v", tc.desc, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Params(%q) = %v, want %v", tc.desc, got, tc.want)
		}
	}

	for _, bad := range []string{"(V)V", "(Ljava/lang/String)V", "(Q)V", "([)V"} {
		if _, err := descriptor.Params(bad); !errors.Is(err, descriptor.ErrMalformedDescriptor) {
			t.Fatalf("Params(%q): want ErrMalformedDescriptor, got %v", bad, err)
		}
	}
}

func TestSplit(t *testing.T) {
	params, ret, err := descriptor.Split("(II)[Ljava/util/ArrayList;")
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if params != "II" || ret != "[Ljava/util/ArrayList;" {
		t.Fatalf("Split = (%q, %q)", params, ret)
	}
}

func BenchmarkClassify(b *testing.B) {
	descs := []string{"(I)I", "(II)[Ljava/util/ArrayList;", "()V", "(Ljava/lang/String;)Ljava/lang/String;"}
	for i := 0; i < b.N; i++ {
		_, _ = descriptor.Classify(descs[i%len(descs)])
	}
}
