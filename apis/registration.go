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

// Registration is the record a Registry keeps for one concrete type.
//
// Capability data is keyed by its own dynamic type, so a registration holds
// at most one value per capability type. Insert everything before handing
// the record to a Registry; published records are read concurrently.
type Registration struct {
	typ  reflect.Type
	path string
	data map[reflect.Type]any
}

// NewRegistration creates an empty record for t under path.
func NewRegistration(t reflect.Type, path string) *Registration {
	return &Registration{
		typ:  t,
		path: path,
		data: make(map[reflect.Type]any),
	}
}

// Type returns the registered type.
func (r *Registration) Type() reflect.Type { return r.typ }

// Path returns the stable path the type is registered under.
func (r *Registration) Path() string { return r.path }

// Insert adds (or replaces) a capability.
func (r *Registration) Insert(data any) {
	if data == nil {
		return
	}
	r.data[reflect.TypeOf(data)] = data
}

// Data returns the capability stored under type t.
func (r *Registration) Data(t reflect.Type) (any, bool) {
	d, ok := r.data[t]
	return d, ok
}

// Contains reports whether a capability of type t was inserted.
func (r *Registration) Contains(t reflect.Type) bool {
	_, ok := r.data[t]
	return ok
}

// Len returns the number of capabilities.
func (r *Registration) Len() int { return len(r.data) }

// RegistrationData returns the capability of type D stored in r.
func RegistrationData[D any](r *Registration) (D, bool) {
	var zero D
	if r == nil {
		return zero, false
	}
	d, ok := r.data[reflect.TypeFor[D]()]
	if !ok {
		return zero, false
	}
	return d.(D), true
}
