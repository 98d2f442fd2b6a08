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

package fault_test

import (
	"errors"
	"testing"

	"dirpx.dev/jbridge/fault"
)

// stickyFaults keeps a fault pending until cleared.
type stickyFaults struct {
	pending string
	cleared int
}

func (s *stickyFaults) ExceptionCheck() bool      { return s.pending != "" }
func (s *stickyFaults) ExceptionDescribe() string { return s.pending }
func (s *stickyFaults) ExceptionClear()           { s.pending = ""; s.cleared++ }

func TestDrain_NothingPending(t *testing.T) {
	f := &stickyFaults{}
	if err := fault.Drain(f, "bind"); err != nil {
		t.Fatalf("Drain: want nil, got %v", err)
	}
	if f.cleared != 0 {
		t.Fatalf("cleared = %d, want 0", f.cleared)
	}
	if err := fault.Drain(nil, "bind"); err != nil {
		t.Fatalf("Drain(nil): want nil, got %v", err)
	}
}

func TestDrain_ClearsAndDescribes(t *testing.T) {
	f := &stickyFaults{pending: "java.lang.NoClassDefFoundError: nope/Missing"}
	err := fault.Drain(f, "bind")
	if !errors.Is(err, fault.ErrRuntimeFault) {
		t.Fatalf("Drain: want ErrRuntimeFault, got %v", err)
	}
	var fe *fault.Error
	if !errors.As(err, &fe) {
		t.Fatalf("Drain: want *fault.Error, got %T", err)
	}
	if fe.Op != "bind" || fe.Description != "java.lang.NoClassDefFoundError: nope/Missing" {
		t.Fatalf("unexpected fault: %+v", fe)
	}
	if fault.Pending(f) {
		t.Fatal("fault still pending after Drain")
	}
	if f.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", f.cleared)
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("class not found")

	f := &stickyFaults{pending: "boom"}
	err := fault.Wrap(f, "bind", base)
	if !errors.Is(err, base) || !errors.Is(err, fault.ErrRuntimeFault) {
		t.Fatalf("Wrap: want both base and ErrRuntimeFault, got %v", err)
	}

	err = fault.Wrap(&stickyFaults{}, "bind", base)
	if err != base {
		t.Fatalf("Wrap without fault: want base error unchanged, got %v", err)
	}
}
