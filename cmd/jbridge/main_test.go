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

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/builder"
	"dirpx.dev/jbridge/config"
	"dirpx.dev/jbridge/dispatch"
	"dirpx.dev/jbridge/runtime/vmtest"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		in   string
		want apis.Value
	}{
		{"Z:true", apis.Boolean(true)},
		{"B:-3", apis.Byte(-3)},
		{"C:x", apis.Char('x')},
		{"C:65", apis.Char(65)},
		{"S:0x10", apis.Short(16)},
		{"I:2", apis.Int(2)},
		{"J:-9000000000", apis.Long(-9000000000)},
		{"F:1.5", apis.Float(1.5)},
		{"D:2.25", apis.Double(2.25)},
		{"L:null", apis.ObjectRef(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseArg(tt.in)
			if err != nil {
				t.Fatalf("parseArg: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseArg_Errors(t *testing.T) {
	for _, in := range []string{"2", "I", "II:2", "V:1", "Q:1", "B:300", "I:x", "Z:maybe", "C:xy", "L:1"} {
		t.Run(in, func(t *testing.T) {
			if _, err := parseArg(in); !errors.Is(err, errBadArg) {
				t.Fatalf("want errBadArg, got %v", err)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{apis.Int(5), "5"},
		{apis.Boolean(false), "false"},
		{apis.Char('A'), "'A'"},
		{apis.ObjectRef(0), "null"},
		{apis.ObjectRef(0x10), "object@0x10"},
		{apis.Void{}, ""},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func calcRegistry(t *testing.T) apis.Registry {
	t.Helper()
	reg, err := builder.New(vmtest.New(vmtest.Calc())).Build(apis.ClassSpec{Name: vmtest.CalcName, Introspect: true}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

func TestInvoke(t *testing.T) {
	reg := calcRegistry(t)
	e := dispatch.New(reg, config.DefaultConfig())

	tests := []struct {
		key  string
		args []string
		want string
	}{
		{"add_1", []string{"I:2", "I:3"}, "5"},
		{"add_2", []string{"J:2", "J:3"}, "5"},
		{"add_3", []string{"D:0.5", "D:0.25"}, "0.75"},
		{"isEven", []string{"I:4"}, "true"},
		{"low", []string{"I:257"}, "1"},
		{"upper", []string{"C:q"}, "'Q'"},
		{"half", []string{"S:9"}, "4"},
		{"scale", []string{"F:1.5"}, "3"},
		{"noop", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			args, err := parseArgs(tt.args)
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			got, err := invoke(e, tt.key, args)
			if err != nil {
				t.Fatalf("invoke: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := invoke(e, "div", []apis.Value{apis.Int(1), apis.Int(0)}); err == nil ||
		!strings.Contains(err.Error(), "ArithmeticException") {
		t.Fatalf("want the runtime fault, got %v", err)
	}
	if _, err := invoke(e, "missing", nil); err == nil {
		t.Fatalf("unknown key accepted")
	}
}

func TestInvoke_Instance(t *testing.T) {
	reg := calcRegistry(t)
	e := dispatch.New(reg, config.DefaultConfig())

	if _, err := invoke(e, "get", nil); !errors.Is(err, dispatch.ErrNoInstance) {
		t.Fatalf("want ErrNoInstance, got %v", err)
	}
	if _, err := reg.Construct("<init>_2", apis.Int(7)); err != nil {
		t.Fatalf("Construct: %v", err)
	}
	defer reg.Release()

	if _, err := invoke(e, "inc", []apis.Value{apis.Int(3)}); err != nil {
		t.Fatalf("inc: %v", err)
	}
	got, err := invoke(e, "get", nil)
	if err != nil || got != "10" {
		t.Fatalf("get = %q, %v; want 10", got, err)
	}
}

func TestDescribeOutput(t *testing.T) {
	rows := rowsOf(calcRegistry(t).Entries())
	if len(rows) != 16 {
		t.Fatalf("got %d rows, want 16", len(rows))
	}
	if rows[0].Key != "<init>_1" || rows[0].Returns != "void" || rows[0].State != "resolved" {
		t.Fatalf("first row = %+v", rows[0])
	}

	var buf bytes.Buffer
	if err := writeYAML(&buf, rows); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}
	var back []memberRow
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(back) != len(rows) || back[3] != rows[3] {
		t.Fatalf("yaml output does not describe the rows")
	}

	buf.Reset()
	if err := writeTable(&buf, rows); err != nil {
		t.Fatalf("writeTable: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(rows)+1 || !strings.HasPrefix(lines[0], "KEY") {
		t.Fatalf("table:\n%s", buf.String())
	}
	if isTerminal(&buf) {
		t.Fatalf("a buffer is not a terminal")
	}
}
