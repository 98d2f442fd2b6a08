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

// Config carries the knobs of a bridge session.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// ClassPathEnv names the environment variable holding the managed-code
	// search path. It is required at launch.
	ClassPathEnv string

	// Options are forwarded to the runtime before the derived class path
	// option (e.g. "-ea", "-Xcheck:jni").
	Options []string

	// Version is the requested native interface version.
	Version int32

	// SkipArgCheck turns off the arity and argument shape check made
	// against the descriptor before a dispatched call. The zero value checks.
	SkipArgCheck bool
}

// CheckArgs reports whether dispatched calls check their arguments.
func (c Config) CheckArgs() bool { return !c.SkipArgCheck }
