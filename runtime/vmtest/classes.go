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

package vmtest

import (
	"errors"

	"dirpx.dev/jbridge/apis"
)

// CalcName is the class name of Calc.
const CalcName = "example/Calc"

// Calc returns a small class covering every return shape, overloads, and
// a constructor pair:
//
//	static int add(int, int)
//	static long add(long, long)
//	static double add(double, double)
//	static int div(int, int)          divides, faults on zero
//	static boolean isEven(int)
//	static byte low(int)
//	static char upper(char)
//	static short half(short)
//	static float scale(float)
//	static Calc create(int)
//	static void noop()
//	int get()                         instance accumulator
//	void inc(int)
//	long sum(long)
//	Calc()
//	Calc(int)
func Calc() *Class {
	return &Class{
		Name: CalcName,
		Members: []Member{
			{Name: "add", Descriptor: "(II)I", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return arg[apis.Int](a, 0) + arg[apis.Int](a, 1), nil
			}},
			{Name: "add", Descriptor: "(JJ)J", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return arg[apis.Long](a, 0) + arg[apis.Long](a, 1), nil
			}},
			{Name: "add", Descriptor: "(DD)D", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return arg[apis.Double](a, 0) + arg[apis.Double](a, 1), nil
			}},
			{Name: "div", Descriptor: "(II)I", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				d := arg[apis.Int](a, 1)
				if d == 0 {
					return nil, &Throwable{Class: "java.lang.ArithmeticException", Message: "/ by zero"}
				}
				return arg[apis.Int](a, 0) / d, nil
			}},
			{Name: "isEven", Descriptor: "(I)Z", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return apis.Boolean(arg[apis.Int](a, 0)%2 == 0), nil
			}},
			{Name: "low", Descriptor: "(I)B", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return apis.Byte(arg[apis.Int](a, 0)), nil
			}},
			{Name: "upper", Descriptor: "(C)C", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				c := arg[apis.Char](a, 0)
				if c >= 'a' && c <= 'z' {
					c -= 'a' - 'A'
				}
				return c, nil
			}},
			{Name: "half", Descriptor: "(S)S", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return arg[apis.Short](a, 0) / 2, nil
			}},
			{Name: "scale", Descriptor: "(F)F", Static: true, Fn: func(_ *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				return arg[apis.Float](a, 0) * 2, nil
			}},
			{Name: "create", Descriptor: "(I)Lexample/Calc;", Static: true, Fn: func(rt *Runtime, _ *Object, a []apis.Value) (apis.Value, error) {
				ref := rt.Alloc(CalcName)
				o, _ := rt.Object(ref)
				o.Fields["acc"] = arg[apis.Int](a, 0)
				return ref, nil
			}},
			{Name: "noop", Descriptor: "()V", Static: true, Fn: func(*Runtime, *Object, []apis.Value) (apis.Value, error) {
				return nil, nil
			}},
			{Name: "get", Descriptor: "()I", Fn: func(_ *Runtime, this *Object, _ []apis.Value) (apis.Value, error) {
				v, _ := this.Fields["acc"].(apis.Int)
				return v, nil
			}},
			{Name: "inc", Descriptor: "(I)V", Fn: func(_ *Runtime, this *Object, a []apis.Value) (apis.Value, error) {
				v, _ := this.Fields["acc"].(apis.Int)
				this.Fields["acc"] = v + arg[apis.Int](a, 0)
				return nil, nil
			}},
			{Name: "sum", Descriptor: "(J)J", Fn: func(_ *Runtime, this *Object, a []apis.Value) (apis.Value, error) {
				v, _ := this.Fields["acc"].(apis.Int)
				return apis.Long(v) + arg[apis.Long](a, 0), nil
			}},
			{Name: apis.ConstructorName, Descriptor: "()V", Fn: func(_ *Runtime, this *Object, _ []apis.Value) (apis.Value, error) {
				this.Fields["acc"] = apis.Int(0)
				return nil, nil
			}},
			{Name: apis.ConstructorName, Descriptor: "(I)V", Fn: func(_ *Runtime, this *Object, a []apis.Value) (apis.Value, error) {
				v := arg[apis.Int](a, 0)
				if v < 0 {
					return nil, errors.New("negative seed")
				}
				this.Fields["acc"] = v
				return nil, nil
			}},
		},
	}
}

// arg returns a[i] as T, or the zero T.
func arg[T apis.Value](a []apis.Value, i int) T {
	if i >= len(a) {
		var zero T
		return zero
	}
	v, _ := a[i].(T)
	return v
}
