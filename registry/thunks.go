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

package registry

import "dirpx.dev/jbridge/apis"

// thunks is the dispatch table: one typed invocation primitive per
// (return shape, static) pair. Column 0 holds instance primitives, column 1
// static ones. Each entry is an apis.Thunk[T] for the Go shape T of its row,
// so a caller asking for the wrong shape fails a checked type assertion.
var thunks = [apis.TagCount][2]any{
	apis.TagBoolean: {
		apis.Thunk[apis.Boolean](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Boolean {
			return rt.CallBooleanMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Boolean](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Boolean {
			return rt.CallStaticBooleanMethod(r.Class, mid, args)
		}),
	},
	apis.TagByte: {
		apis.Thunk[apis.Byte](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Byte {
			return rt.CallByteMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Byte](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Byte {
			return rt.CallStaticByteMethod(r.Class, mid, args)
		}),
	},
	apis.TagChar: {
		apis.Thunk[apis.Char](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Char {
			return rt.CallCharMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Char](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Char {
			return rt.CallStaticCharMethod(r.Class, mid, args)
		}),
	},
	apis.TagShort: {
		apis.Thunk[apis.Short](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Short {
			return rt.CallShortMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Short](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Short {
			return rt.CallStaticShortMethod(r.Class, mid, args)
		}),
	},
	apis.TagInt: {
		apis.Thunk[apis.Int](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Int {
			return rt.CallIntMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Int](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Int {
			return rt.CallStaticIntMethod(r.Class, mid, args)
		}),
	},
	apis.TagLong: {
		apis.Thunk[apis.Long](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Long {
			return rt.CallLongMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Long](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Long {
			return rt.CallStaticLongMethod(r.Class, mid, args)
		}),
	},
	apis.TagFloat: {
		apis.Thunk[apis.Float](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Float {
			return rt.CallFloatMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Float](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Float {
			return rt.CallStaticFloatMethod(r.Class, mid, args)
		}),
	},
	apis.TagDouble: {
		apis.Thunk[apis.Double](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Double {
			return rt.CallDoubleMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.Double](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Double {
			return rt.CallStaticDoubleMethod(r.Class, mid, args)
		}),
	},
	apis.TagObject: {
		apis.Thunk[apis.ObjectRef](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
			return rt.CallObjectMethod(r.Object, mid, args)
		}),
		apis.Thunk[apis.ObjectRef](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.ObjectRef {
			return rt.CallStaticObjectMethod(r.Class, mid, args)
		}),
	},
	apis.TagVoid: {
		apis.Thunk[apis.Void](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Void {
			rt.CallVoidMethod(r.Object, mid, args)
			return apis.Void{}
		}),
		apis.Thunk[apis.Void](func(rt apis.Runtime, r apis.Receiver, mid apis.MethodID, args []apis.Value) apis.Void {
			rt.CallStaticVoidMethod(r.Class, mid, args)
			return apis.Void{}
		}),
	},
}

// thunkFor selects the invocation primitive for a return shape.
func thunkFor(tag apis.TypeTag, static bool) any {
	if !tag.Valid() {
		return nil
	}
	col := 0
	if static {
		col = 1
	}
	return thunks[tag][col]
}
