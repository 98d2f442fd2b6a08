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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"dirpx.dev/jbridge/apis"
)

var errBadArg = errors.New("jbridge: bad argument")

// parseArg decodes a TYPE:VALUE argument, TYPE being a descriptor code:
// Z:true, B:-1, C:x, S:7, I:2, J:10, F:1.5, D:2.25, L:null.
func parseArg(s string) (apis.Value, error) {
	code, text, ok := strings.Cut(s, ":")
	if !ok || len(code) != 1 {
		return nil, fmt.Errorf("%w: %q, want TYPE:VALUE", errBadArg, s)
	}
	tag, ok := apis.TagOf(code[0])
	if !ok || tag == apis.TagVoid {
		return nil, fmt.Errorf("%w: %q: unknown type code %q", errBadArg, s, code)
	}

	var (
		v   apis.Value
		err error
	)
	switch tag {
	case apis.TagBoolean:
		var b bool
		b, err = strconv.ParseBool(text)
		v = apis.Boolean(b)
	case apis.TagByte:
		var n int64
		n, err = strconv.ParseInt(text, 0, 8)
		v = apis.Byte(n)
	case apis.TagChar:
		v, err = parseChar(text)
	case apis.TagShort:
		var n int64
		n, err = strconv.ParseInt(text, 0, 16)
		v = apis.Short(n)
	case apis.TagInt:
		var n int64
		n, err = strconv.ParseInt(text, 0, 32)
		v = apis.Int(n)
	case apis.TagLong:
		var n int64
		n, err = strconv.ParseInt(text, 0, 64)
		v = apis.Long(n)
	case apis.TagFloat:
		var f float64
		f, err = strconv.ParseFloat(text, 32)
		v = apis.Float(f)
	case apis.TagDouble:
		var f float64
		f, err = strconv.ParseFloat(text, 64)
		v = apis.Double(f)
	case apis.TagObject:
		if text != "null" {
			err = errors.New("only null objects can be passed")
		}
		v = apis.ObjectRef(0)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errBadArg, s, err)
	}
	return v, nil
}

// parseChar takes a single BMP character or a numeric code unit.
func parseChar(text string) (apis.Char, error) {
	r := []rune(text)
	if len(r) == 1 && r[0] <= math.MaxUint16 && !utf16.IsSurrogate(r[0]) {
		return apis.Char(r[0]), nil
	}
	n, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		return 0, errors.New("want a single character or a code unit")
	}
	return apis.Char(n), nil
}

func parseArgs(ss []string) ([]apis.Value, error) {
	out := make([]apis.Value, 0, len(ss))
	for _, s := range ss {
		v, err := parseArg(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// formatValue renders a call result for the terminal.
func formatValue(v any) string {
	switch x := v.(type) {
	case apis.Char:
		return strconv.QuoteRune(rune(x))
	case apis.ObjectRef:
		if x.IsNil() {
			return "null"
		}
		return fmt.Sprintf("object@%#x", uintptr(x))
	case apis.Void:
		return ""
	}
	return fmt.Sprint(v)
}
