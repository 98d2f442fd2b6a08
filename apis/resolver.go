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

// HandleResolver turns names into runtime handles, draining the runtime's
// pending fault on every failure.
type HandleResolver interface {
	// ResolveClass returns the class named className.
	ResolveClass(className string) (ClassRef, error)
	// ResolveMember returns the handle of a member of cls.
	ResolveMember(cls ClassRef, name, descriptor string, static bool) (MethodID, error)
}
