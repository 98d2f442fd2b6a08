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

// Package fault drains the managed runtime's pending-exception state.
//
// A runtime fault is sticky: until it is cleared, every later call into the
// runtime observes it. Every boundary error in jbridge goes through Drain
// before it is reported, so no failure leaves a fault behind.
package fault

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
)

// ErrRuntimeFault is matched by every *Error.
var ErrRuntimeFault = errors.New("jbridge(fault): managed runtime raised an exception")

var log = commonlog.GetLogger("jbridge.fault")

// Error is a drained runtime fault.
type Error struct {
	// Op is the bridge operation that observed the fault.
	Op string
	// Description is the runtime's own rendering of the fault.
	Description string
}

func (e *Error) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("jbridge(fault): %s: managed runtime raised an exception", e.Op)
	}
	return fmt.Sprintf("jbridge(fault): %s: %s", e.Op, e.Description)
}

// Unwrap lets errors.Is match ErrRuntimeFault.
func (e *Error) Unwrap() error { return ErrRuntimeFault }

// Pending reports whether f has a fault pending, without clearing it.
func Pending(f apis.Faults) bool {
	return f != nil && f.ExceptionCheck()
}

// Drain clears the pending fault of f, if any, and returns it as an *Error.
// It returns nil when nothing is pending.
func Drain(f apis.Faults, op string) error {
	if f == nil || !f.ExceptionCheck() {
		return nil
	}
	desc := f.ExceptionDescribe()
	f.ExceptionClear()
	log.Warningf("%s: drained runtime fault: %s", op, desc)
	return &Error{Op: op, Description: desc}
}

// Wrap drains f and joins the drained fault, if any, under err.
// It is used where a null handle already tells that the operation failed.
func Wrap(f apis.Faults, op string, err error) error {
	if ferr := Drain(f, op); ferr != nil {
		return fmt.Errorf("%w: %w", err, ferr)
	}
	return err
}
