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
	"sync"

	"dirpx.dev/jbridge/apis"
)

// Launcher hands out a Runtime and records how it was launched.
type Launcher struct {
	// Runtime is returned by Launch. A fresh Runtime with Classes is
	// created when it is nil.
	Runtime *Runtime
	// Classes seed a Runtime created by Launch.
	Classes []*Class
	// Err, when set, fails every Launch.
	Err error

	mu       sync.Mutex
	launches int
	version  int32
	options  []string
}

// Ensure Launcher implements apis.Launcher.
var _ apis.Launcher = (*Launcher)(nil)

// Launch records version and options and returns l.Runtime.
func (l *Launcher) Launch(version int32, options []string) (apis.Runtime, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launches++
	l.version = version
	l.options = append([]string(nil), options...)
	if l.Err != nil {
		return nil, l.Err
	}
	if l.Runtime == nil {
		l.Runtime = New(l.Classes...)
	}
	return l.Runtime, nil
}

// Launches returns how often Launch ran.
func (l *Launcher) Launches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launches
}

// Version returns the version passed to the last Launch.
func (l *Launcher) Version() int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Options returns the options passed to the last Launch.
func (l *Launcher) Options() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.options...)
}
