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

import "reflect"

// Pather lets a type pin its own stable type path instead of the derived
// "import/path.Name" form. The method is called on a pointer to the zero
// value, so implementations must not depend on instance state.
type Pather interface {
	// StaticTypePath returns the stable, fully qualified path of the type.
	StaticTypePath() string
}

// Resolver coordinates strategies to resolve stable type paths for values
// and types. Typical chain: PatherStrategy -> RegistryStrategy -> ReflectStrategy.
type Resolver interface {
	// Resolve returns the stable path of v's type, or "" if none can be determined.
	Resolve(v any, cfg Config) string

	// ResolveType returns the stable path of t, or "" if none can be determined.
	ResolveType(t reflect.Type, cfg Config) string
}
