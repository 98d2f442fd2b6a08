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

package jbridge

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"dirpx.dev/jbridge/apis"
	"dirpx.dev/jbridge/builder"
	"dirpx.dev/jbridge/config"
	"dirpx.dev/jbridge/dispatch"
	"dirpx.dev/jbridge/registry"
)

var (
	// ErrClassPathUnset is returned when the class path variable is missing.
	ErrClassPathUnset = errors.New("jbridge: class path environment variable is not set")
	// ErrLaunch wraps a failure of the native launcher.
	ErrLaunch = errors.New("jbridge: managed runtime failed to launch")
	// ErrRuntimeTornDown is returned by Launch after Shutdown.
	ErrRuntimeTornDown = errors.New("jbridge: managed runtime was shut down and cannot be relaunched")
	// ErrNilLauncher is returned when Launch is given no launcher.
	ErrNilLauncher = errors.New("jbridge: nil launcher provided")
)

// ClassPathOption is the runtime option carrying the class path.
const ClassPathOption = "-Djava.class.path="

var log = commonlog.GetLogger("jbridge")

var (
	// launchMu serializes Launch and Shutdown.
	launchMu sync.Mutex
	// current is the process-wide VM, nil before Launch and after Shutdown.
	current atomic.Pointer[VM]
	// tornDown is set by Shutdown and never cleared.
	tornDown atomic.Bool
)

// VM is the process-wide managed runtime.
type VM struct {
	id  string
	rt  apis.Runtime
	cfg apis.Config
}

// Launch starts the process-wide managed runtime through l. The class path
// is read from the variable named by cfg.ClassPathEnv and appended to
// cfg.Options as a -Djava.class.path option.
//
// Launch is idempotent: once a VM is running every call returns it and does
// nothing else, whatever l and cfg are. After Shutdown it fails with
// ErrRuntimeTornDown.
func Launch(l apis.Launcher, cfg apis.Config) (*VM, error) {
	if vm := current.Load(); vm != nil {
		return vm, nil
	}

	launchMu.Lock()
	defer launchMu.Unlock()

	// Re-check under lock in case another goroutine launched meanwhile.
	if vm := current.Load(); vm != nil {
		return vm, nil
	}
	if tornDown.Load() {
		return nil, ErrRuntimeTornDown
	}
	if l == nil {
		return nil, ErrNilLauncher
	}

	cfg = config.NewConfig(func(c *apis.Config) { *c = cfg })
	cp := os.Getenv(cfg.ClassPathEnv)
	if cp == "" {
		return nil, fmt.Errorf("%w: %s", ErrClassPathUnset, cfg.ClassPathEnv)
	}
	opts := make([]string, 0, len(cfg.Options)+1)
	opts = append(opts, cfg.Options...)
	opts = append(opts, ClassPathOption+cp)

	rt, err := l.Launch(cfg.Version, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if rt == nil {
		return nil, fmt.Errorf("%w: launcher returned no runtime", ErrLaunch)
	}

	vm := &VM{id: uuid.NewString(), rt: rt, cfg: cfg}
	current.Store(vm)
	log.Infof("vm %s: launched (version %#x, %d options)", vm.id, cfg.Version, len(opts))
	return vm, nil
}

// Current returns the running VM, if any.
func Current() (*VM, bool) {
	vm := current.Load()
	return vm, vm != nil
}

// Shutdown destroys the running VM. It is a no-op when none is running.
// The runtime cannot be launched again in this process.
func Shutdown() {
	launchMu.Lock()
	defer launchMu.Unlock()

	vm := current.Swap(nil)
	if vm == nil {
		return
	}
	tornDown.Store(true)
	if err := vm.rt.Destroy(); err != nil {
		log.Errorf("vm %s: destroy: %v", vm.id, err)
		return
	}
	log.Infof("vm %s: shut down", vm.id)
}

// ID returns the VM's correlation id.
func (vm *VM) ID() string { return vm.id }

// Runtime returns the embedding boundary of the VM.
func (vm *VM) Runtime() apis.Runtime { return vm.rt }

// Config returns the configuration the VM was launched with.
func (vm *VM) Config() apis.Config { return vm.cfg }

// NewRegistry returns an empty, unbound registry over the VM.
func (vm *VM) NewRegistry() apis.Registry {
	return registry.New(vm.rt)
}

// Builder returns a registry builder over the VM.
func (vm *VM) Builder(opts ...builder.Option) apis.Builder {
	return builder.New(vm.rt, opts...)
}

// Dispatcher returns a dispatch engine over reg, configured like the VM.
func (vm *VM) Dispatcher(reg apis.Registry) *dispatch.Engine {
	return dispatch.New(reg, vm.cfg)
}

// Bind builds a registry for spec and returns an engine over it.
func (vm *VM) Bind(spec apis.ClassSpec, opts ...builder.Option) (*dispatch.Engine, error) {
	reg, err := vm.Builder(opts...).Build(spec, nil)
	if err != nil {
		return nil, err
	}
	return vm.Dispatcher(reg), nil
}
