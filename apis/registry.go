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

// Registry stores type registrations: records that pin a stable path for a
// concrete type and carry capability data inserted by the type's author.
// Lookups must be safe for concurrent use.
type Registry interface {
	// Register stores reg under its type. Re-registering the same
	// (type, path) pair is a no-op; a different path for the same type, or
	// the same path for a different type, is a conflict.
	Register(reg *Registration) error
	// Lookup returns the registration of t if present.
	Lookup(t reflect.Type) (*Registration, bool)
	// LookupPath returns the registration whose stable path is path.
	LookupPath(path string) (*Registration, bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registrations.
	Count() int
	// Reset clears all registrations.
	Reset()
}

// Entry is a single (type, path) association in a Registry snapshot.
type Entry struct {
	// Type is the registered reflect.Type.
	Type reflect.Type
	// Path is the stable path registered for Type.
	Path string
}
