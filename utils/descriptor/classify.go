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

package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/jbridge/apis"
)

// ErrMalformedDescriptor indicates a descriptor outside the "(<params>)<ret>"
// grammar.
var ErrMalformedDescriptor = errors.New("jbridge(descriptor): malformed descriptor")

// Classify returns the return shape of a member descriptor.
//
// The return code is the character right after the first ')'. When it is
// the array marker '[', the following codes are read to validate the
// element type, but every array is a reference at the top level and
// classifies as TagObject:
//
//	Classify("(I)I")                         -> TagInt
//	Classify("(II)[Ljava/util/ArrayList;")   -> TagObject
//	Classify("()V")                          -> TagVoid
func Classify(desc string) (apis.TypeTag, error) {
	i := strings.IndexByte(desc, ')')
	if i < 0 || desc == "" || desc[0] != '(' {
		return apis.TagInvalid, malformed(desc, "missing parameter list")
	}
	ret := desc[i+1:]
	tag, n, err := scan(ret)
	if err != nil {
		return apis.TagInvalid, malformed(desc, err.Error())
	}
	if n != len(ret) {
		return apis.TagInvalid, malformed(desc, "trailing characters after return type")
	}
	return tag, nil
}

// Params returns the argument shapes of a member descriptor, in order.
// Reference and array parameters are TagObject.
func Params(desc string) ([]apis.TypeTag, error) {
	params, _, err := Split(desc)
	if err != nil {
		return nil, err
	}
	out := make([]apis.TypeTag, 0, 4)
	for len(params) > 0 {
		tag, n, err := scan(params)
		if err != nil {
			return nil, malformed(desc, err.Error())
		}
		if tag == apis.TagVoid {
			return nil, malformed(desc, "void parameter")
		}
		out = append(out, tag)
		params = params[n:]
	}
	return out, nil
}

// Split cuts a descriptor into its parameter list and return type,
// without the surrounding parentheses.
func Split(desc string) (params, ret string, err error) {
	i := strings.IndexByte(desc, ')')
	if i < 0 || desc == "" || desc[0] != '(' {
		return "", "", malformed(desc, "missing parameter list")
	}
	if i+1 >= len(desc) {
		return "", "", malformed(desc, "missing return type")
	}
	return desc[1:i], desc[i+1:], nil
}

// scan reads one type from the head of s and returns its shape and the
// number of bytes consumed.
func scan(s string) (apis.TypeTag, int, error) {
	dims := 0
	for dims < len(s) && s[dims] == '[' {
		dims++
	}
	if dims == len(s) {
		if dims == 0 {
			return apis.TagInvalid, 0, errors.New("missing type code")
		}
		return apis.TagInvalid, 0, errors.New("array marker without element type")
	}
	tag, ok := apis.TagOf(s[dims])
	if !ok {
		return apis.TagInvalid, 0, fmt.Errorf("unknown type code %q", s[dims])
	}
	n := dims + 1
	if tag == apis.TagObject {
		end := strings.IndexByte(s[dims:], ';')
		if end <= 1 {
			return apis.TagInvalid, 0, errors.New("unterminated reference type")
		}
		n = dims + end + 1
	}
	if dims > 0 {
		if tag == apis.TagVoid {
			return apis.TagInvalid, 0, errors.New("array of void")
		}
		return apis.TagObject, n, nil
	}
	return tag, n, nil
}

func malformed(desc, why string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedDescriptor, desc, why)
}
