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

package dispatch_test

import (
	"errors"
	"sync"
	"testing"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/dispatch"
	"dirpx.dev/jbridge/registry"
	"dirpx.dev/jbridge/runtime/vmtest"
)

// TestCall_ConcurrentUnbind dispatches while another goroutine unbinds and
// rebinds the registry. A call either runs against a bound class or fails
// with ErrUnresolved before reaching the runtime. Run with -race.
func TestCall_ConcurrentUnbind(t *testing.T) {
	rt, eng := bound(t, apis.Member{Key: "add", Name: "add", Descriptor: "(II)I", Static: true})
	reg := eng.Registry()

	const callers = 4
	const rounds = 500

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			reg.Unbind()
			if err := reg.Bind(vmtest.CalcName); err != nil && !errors.Is(err, registry.ErrAlreadyBound) {
				t.Errorf("Bind: %v", err)
				return
			}
		}
	}()

	var callWG sync.WaitGroup
	callWG.Add(callers)
	for c := 0; c < callers; c++ {
		go func() {
			defer callWG.Done()
			for i := 0; i < rounds; i++ {
				got, err := dispatch.Call[apis.Int](eng, "add", apis.Int(2), apis.Int(3))
				switch {
				case err == nil && got != 5:
					t.Errorf("add(2,3) = %d", got)
					return
				case err != nil && !errors.Is(err, apis.ErrUnresolved):
					t.Errorf("add(2,3): %v", err)
					return
				}
			}
		}()
	}
	callWG.Wait()
	close(stop)
	wg.Wait()

	if rt.Faults() != 0 || rt.Violations() != 0 {
		t.Fatalf("faults = %d, violations = %d, want 0", rt.Faults(), rt.Violations())
	}
}
