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

// TypeTag is the closed classification of a member's return shape.
// It selects which typed invocation primitive a call is routed to.
type TypeTag uint8

const (
	// TagInvalid is the zero value; it is never produced by a successful classification.
	TagInvalid TypeTag = iota
	// TagBoolean is a jboolean return (descriptor code 'Z').
	TagBoolean
	// TagByte is a jbyte return (descriptor code 'B').
	TagByte
	// TagChar is a jchar return (descriptor code 'C').
	TagChar
	// TagShort is a jshort return (descriptor code 'S').
	TagShort
	// TagInt is a jint return (descriptor code 'I').
	TagInt
	// TagLong is a jlong return (descriptor code 'J').
	TagLong
	// TagFloat is a jfloat return (descriptor code 'F').
	TagFloat
	// TagDouble is a jdouble return (descriptor code 'D').
	TagDouble
	// TagObject is a reference return (descriptor code 'L', or any array).
	TagObject
	// TagVoid is a void return (descriptor code 'V').
	TagVoid
)

// TagCount is the size of tables indexed by TypeTag.
const TagCount = int(TagVoid) + 1

var tagNames = [TagCount]string{
	TagInvalid: "invalid",
	TagBoolean: "boolean",
	TagByte:    "byte",
	TagChar:    "char",
	TagShort:   "short",
	TagInt:     "int",
	TagLong:    "long",
	TagFloat:   "float",
	TagDouble:  "double",
	TagObject:  "object",
	TagVoid:    "void",
}

var tagCodes = [TagCount]byte{
	TagBoolean: 'Z',
	TagByte:    'B',
	TagChar:    'C',
	TagShort:   'S',
	TagInt:     'I',
	TagLong:    'J',
	TagFloat:   'F',
	TagDouble:  'D',
	TagObject:  'L',
	TagVoid:    'V',
}

// String returns the lower-case shape name ("int", "object", ...).
func (t TypeTag) String() string {
	if int(t) >= TagCount {
		return "invalid"
	}
	return tagNames[t]
}

// Code returns the descriptor letter for t, or 0 for TagInvalid.
func (t TypeTag) Code() byte {
	if int(t) >= TagCount {
		return 0
	}
	return tagCodes[t]
}

// Valid reports whether t is one of the ten return shapes.
func (t TypeTag) Valid() bool {
	return t > TagInvalid && t <= TagVoid
}

// TagOf maps a descriptor type code to its TypeTag.
// '[' is not a code on its own; callers look one character ahead.
func TagOf(code byte) (TypeTag, bool) {
	switch code {
	case 'Z':
		return TagBoolean, true
	case 'B':
		return TagByte, true
	case 'C':
		return TagChar, true
	case 'S':
		return TagShort, true
	case 'I':
		return TagInt, true
	case 'J':
		return TagLong, true
	case 'F':
		return TagFloat, true
	case 'D':
		return TagDouble, true
	case 'L':
		return TagObject, true
	case 'V':
		return TagVoid, true
	}
	return TagInvalid, false
}
