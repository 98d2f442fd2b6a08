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

// Package dispatch routes calls by member key to the typed invocation
// primitive selected for the member at registration.
//
// The requested return shape is a type parameter. It is checked against the
// member's shape before anything is invoked:
//
//	sum, err := dispatch.Call[apis.Int](eng, "add", apis.Int(2), apis.Int(3))
package dispatch

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/fault"
)

var (
	// ErrReturnShape is returned when the requested shape differs from the member's.
	ErrReturnShape = errors.New("jbridge(dispatch): requested return shape does not match the member")
	// ErrArgCount is returned when the argument count differs from the descriptor's.
	ErrArgCount = apis.ErrArgCount
	// ErrArgShape is returned when an argument's shape differs from its parameter's.
	ErrArgShape = apis.ErrArgShape
	// ErrNoInstance is returned for instance members when no receiver is set.
	ErrNoInstance = errors.New("jbridge(dispatch): no instance to invoke the member on")
	// ErrConstructorCall is returned when a constructor key is called like a method.
	ErrConstructorCall = errors.New("jbridge(dispatch): constructors are invoked through Registry.Construct")
)

var log = commonlog.GetLogger("jbridge.dispatch")

// Engine dispatches calls against one registry.
// It is as safe for concurrent use as the runtime behind the registry.
type Engine struct {
	reg   apis.Registry
	check bool
}

// New constructs an Engine over reg. cfg.CheckArgs() turns on argument checking.
func New(reg apis.Registry, cfg apis.Config) *Engine {
	return &Engine{reg: reg, check: cfg.CheckArgs()}
}

// Registry returns the registry e dispatches against.
func (e *Engine) Registry() apis.Registry { return e.reg }

// Call invokes the member registered under key. Static members run against
// the bound class, instance members against the registry's current instance.
func Call[T apis.Shape](e *Engine, key string, args ...apis.Value) (T, error) {
	return invoke[T](e, key, 0, false, args)
}

// CallOn invokes the instance member key on obj, leaving the registry's
// current instance alone. Static members ignore obj.
func CallOn[T apis.Shape](e *Engine, obj apis.ObjectRef, key string, args ...apis.Value) (T, error) {
	return invoke[T](e, key, obj, true, args)
}

// CallVoid invokes a member that returns nothing.
func (e *Engine) CallVoid(key string, args ...apis.Value) error {
	_, err := invoke[apis.Void](e, key, 0, false, args)
	return err
}

// CallVoidOn is CallVoid on an explicit receiver.
func (e *Engine) CallVoidOn(obj apis.ObjectRef, key string, args ...apis.Value) error {
	_, err := invoke[apis.Void](e, key, obj, true, args)
	return err
}

func invoke[T apis.Shape](e *Engine, key string, obj apis.ObjectRef, explicit bool, args []apis.Value) (T, error) {
	var zero T

	sig, target, err := e.reg.Target(key)
	if err != nil {
		return zero, err
	}
	if sig.IsConstructor() {
		return zero, fmt.Errorf("%w: %s", ErrConstructorCall, key)
	}
	thunk, ok := sig.Thunk.(apis.Thunk[T])
	if !ok {
		log.Debugf("%s: requested %s, member returns %s", key, apis.ShapeOf[T](), sig.Tag)
		return zero, fmt.Errorf("%w: %s returns %s, requested %s", ErrReturnShape, key, sig.Tag, apis.ShapeOf[T]())
	}
	if sig.State != apis.Resolved {
		return zero, fmt.Errorf("%w: %s", apis.ErrUnresolved, key)
	}
	if e.check {
		if err := sig.CheckArgs(args); err != nil {
			return zero, err
		}
	}

	var recv apis.Receiver
	if sig.Static {
		recv.Class = target.Class
	} else {
		if !explicit {
			obj = target.Object
		}
		if obj.IsNil() {
			return zero, fmt.Errorf("%w: %s", ErrNoInstance, key)
		}
		recv.Object = obj
	}

	rt := e.reg.Runtime()
	out := thunk(rt, recv, sig.Method, args)
	if err := fault.Drain(rt, "call "+key); err != nil {
		return zero, err
	}
	return out, nil
}
