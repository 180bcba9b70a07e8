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

package rfl

import (
	"reflect"
	"unsafe"

	"dirpx.dev/rfl/apis"
)

// ReflectFromPtr is the registration capability that turns an untyped
// pointer into a Value of the registered type.
type ReflectFromPtr struct {
	typ     reflect.Type
	fromPtr func(p unsafe.Pointer) Value
}

// NewReflectFromPtr returns the capability for T.
func NewReflectFromPtr[T any]() ReflectFromPtr {
	return ReflectFromPtr{
		typ: reflect.TypeFor[T](),
		fromPtr: func(p unsafe.Pointer) Value {
			return ValueOf((*T)(p))
		},
	}
}

// Type returns the type the capability was made for.
func (r ReflectFromPtr) Type() reflect.Type { return r.typ }

// FromPtr returns a Value aliasing the value at p. p must point to a live
// value of Type(); nothing checks it.
func (r ReflectFromPtr) FromPtr(p unsafe.Pointer) Value {
	return r.fromPtr(p)
}

// RegistrationProvider is implemented by *T for types that build their own
// registration record.
type RegistrationProvider interface {
	TypeRegistration() *apis.Registration
}

// GetTypeRegistration returns the registration record of T: its own when
// *T is a RegistrationProvider, otherwise one carrying ReflectFromPtr under
// the resolved path.
func GetTypeRegistration[T any]() *apis.Registration {
	var zero T
	if p, ok := any(&zero).(RegistrationProvider); ok {
		return p.TypeRegistration()
	}
	r := apis.NewRegistration(reflect.TypeFor[T](), TypePathFor[T]().Path())
	r.Insert(NewReflectFromPtr[T]())
	return r
}

// RegisterType adds the registration record of T to the process registry.
func RegisterType[T any]() error {
	return Registry().Register(GetTypeRegistration[T]())
}

// RegisterTypePath adds T to the process registry under path, which then
// becomes its resolved path. Descriptors already cached for T keep the
// path they were built with.
func RegisterTypePath[T any](path string) error {
	r := apis.NewRegistration(reflect.TypeFor[T](), path)
	src := GetTypeRegistration[T]()
	if d, ok := apis.RegistrationData[ReflectFromPtr](src); ok {
		r.Insert(d)
	}
	return Registry().Register(r)
}

// ReflectPtr looks up the registration of t and returns a Value for the
// value at p.
func ReflectPtr(t reflect.Type, p unsafe.Pointer) (Value, bool) {
	r, ok := Registry().Lookup(t)
	if !ok {
		return nil, false
	}
	fp, ok := apis.RegistrationData[ReflectFromPtr](r)
	if !ok {
		return nil, false
	}
	return fp.FromPtr(p), true
}
