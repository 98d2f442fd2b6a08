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

// Native value types, one per primitive shape of the managed runtime.
// They are the runtime's own representation: the bridge never boxes
// or unboxes them.
type (
	// Boolean mirrors jboolean.
	Boolean bool
	// Byte mirrors jbyte.
	Byte int8
	// Char mirrors jchar (a UTF-16 code unit).
	Char uint16
	// Short mirrors jshort.
	Short int16
	// Int mirrors jint.
	Int int32
	// Long mirrors jlong.
	Long int64
	// Float mirrors jfloat.
	Float float32
	// Double mirrors jdouble.
	Double float64
	// Void is the return shape of members that return nothing.
	Void struct{}
)

// ClassRef is an opaque class reference issued by the runtime. Zero is null.
type ClassRef uintptr

// ObjectRef is an opaque object reference issued by the runtime. Zero is null.
type ObjectRef uintptr

// MethodID is an opaque member handle issued by the runtime. Zero is null.
type MethodID uintptr

// IsNil reports whether the reference is null.
func (c ClassRef) IsNil() bool { return c == 0 }

// IsNil reports whether the reference is null.
func (o ObjectRef) IsNil() bool { return o == 0 }

// IsNil reports whether the handle is null.
func (m MethodID) IsNil() bool { return m == 0 }

// Value is an argument in the runtime's native representation.
// The set of implementations is closed.
type Value interface {
	// Tag reports the shape of the value.
	Tag() TypeTag
	value()
}

// Shape constrains the return type of a dispatched call to the ten
// shapes a member can return.
type Shape interface {
	Boolean | Byte | Char | Short | Int | Long | Float | Double | ObjectRef | Void
}

func (Boolean) Tag() TypeTag   { return TagBoolean }
func (Byte) Tag() TypeTag      { return TagByte }
func (Char) Tag() TypeTag      { return TagChar }
func (Short) Tag() TypeTag     { return TagShort }
func (Int) Tag() TypeTag       { return TagInt }
func (Long) Tag() TypeTag      { return TagLong }
func (Float) Tag() TypeTag     { return TagFloat }
func (Double) Tag() TypeTag    { return TagDouble }
func (ObjectRef) Tag() TypeTag { return TagObject }

func (Boolean) value()   {}
func (Byte) value()      {}
func (Char) value()      {}
func (Short) value()     {}
func (Int) value()       {}
func (Long) value()      {}
func (Float) value()     {}
func (Double) value()    {}
func (ObjectRef) value() {}

// ShapeOf returns the TypeTag corresponding to the Go shape T.
func ShapeOf[T Shape]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case Boolean:
		return TagBoolean
	case Byte:
		return TagByte
	case Char:
		return TagChar
	case Short:
		return TagShort
	case Int:
		return TagInt
	case Long:
		return TagLong
	case Float:
		return TagFloat
	case Double:
		return TagDouble
	case ObjectRef:
		return TagObject
	case Void:
		return TagVoid
	}
	return TagInvalid
}
