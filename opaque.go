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
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig = spew.ConfigState{
	Indent:                  "    ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Opaque is the Value of a type without structural capability: scalars,
// strings and anything reflected as a whole.
type Opaque[T any] struct {
	ptr *T
}

// NewOpaque returns an Opaque aliasing *p.
func NewOpaque[T any](p *T) *Opaque[T] {
	if p == nil {
		p = new(T)
	}
	return &Opaque[T]{ptr: p}
}

// Get returns a copy of the held value.
func (o *Opaque[T]) Get() T { return *o.ptr }

// Ptr returns the address of the held value.
func (o *Opaque[T]) Ptr() *T { return o.ptr }

// Type returns T.
func (o *Opaque[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

// TypePath returns the full path of T.
func (o *Opaque[T]) TypePath() string { return TypePathFor[T]().Path() }

// RepresentedType returns the opaque descriptor of T.
func (o *Opaque[T]) RepresentedType() *TypeInfo {
	t := reflect.TypeFor[T]()
	return TypeInfoOf(t, func() *TypeInfo {
		return NewOpaqueTypeInfo(NewOpaqueInfo(t))
	})
}

// Any returns a copy of the held value.
func (o *Opaque[T]) Any() any { return *o.ptr }

// Kind returns KindOpaque.
func (o *Opaque[T]) Kind() Kind { return KindOpaque }

// Ref returns an OpaqueRef.
func (o *Opaque[T]) Ref() Ref { return OpaqueRef{Value: o} }

// Clone deep-copies the held value.
func (o *Opaque[T]) Clone() Value {
	c := cloneOpaque(*o.ptr)
	return &Opaque[T]{ptr: &c}
}

// Apply is TryApply that panics on mismatch.
func (o *Opaque[T]) Apply(v Value) {
	if err := o.TryApply(v); err != nil {
		fatal(err)
	}
}

// TryApply overwrites the held value with a clone of v.
func (o *Opaque[T]) TryApply(v Value) error {
	x, ok := Downcast[T](v)
	if !ok {
		return MismatchedTypesError(v, o)
	}
	*o.ptr = cloneOpaque(x)
	return nil
}

// Set takes the value held by v.
func (o *Opaque[T]) Set(v Value) error {
	x, ok := Take[T](v)
	if !ok {
		return MismatchedTypesError(v, o)
	}
	*o.ptr = x
	return nil
}

// Hash uses ReflectHasher on T or *T, else hashes bool, integer and string
// kinds.
func (o *Opaque[T]) Hash() (uint64, bool) {
	if rh, ok := any(o.ptr).(ReflectHasher); ok {
		return rh.ReflectHash()
	}
	return hashOpaque(any(*o.ptr))
}

// PartialEq uses an Equal(T) bool method when T has one, then == on
// comparable values. Other values are undecidable.
func (o *Opaque[T]) PartialEq(v Value) (bool, bool) {
	x, ok := Downcast[T](v)
	if !ok {
		return false, true
	}
	a := *o.ptr
	if e, ok := any(a).(interface{ Equal(T) bool }); ok {
		return e.Equal(x), true
	}
	ra, rb := reflect.ValueOf(any(a)), reflect.ValueOf(any(x))
	if !ra.IsValid() || !rb.IsValid() {
		return ra.IsValid() == rb.IsValid(), true
	}
	if ra.Type() != rb.Type() {
		return false, true
	}
	if !ra.Comparable() || !rb.Comparable() {
		return false, false
	}
	return ra.Equal(rb), true
}

// Debug quotes strings and formats everything else with spew.
func (o *Opaque[T]) Debug(w io.Writer) error {
	if rv := reflect.ValueOf(any(*o.ptr)); rv.IsValid() && rv.Kind() == reflect.String {
		_, err := fmt.Fprintf(w, "%q", rv.String())
		return err
	}
	_, err := spewConfig.Fprintf(w, "%v", *o.ptr)
	return err
}

// IsDynamic reports false.
func (o *Opaque[T]) IsDynamic() bool { return false }

// String returns the Debug rendering.
func (o *Opaque[T]) String() string { return DebugString(o) }
