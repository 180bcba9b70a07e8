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

// Package vec binds plain Go slices to rfl.List through the named slice
// type Vec.
package vec

import (
	"io"
	"reflect"
	"slices"

	"dirpx.dev/rfl"
	"dirpx.dev/rfl/apis"
)

// Vec is a slice with list reflection.
type Vec[T any] []T

// Of returns a Vec holding items.
func Of[T any](items ...T) Vec[T] { return Vec[T](slices.Clone(items)) }

// Reflect returns the rfl.List adapter over v.
func (v *Vec[T]) Reflect() rfl.Value { return &list[T]{v: v} }

// List is Reflect with the list type.
func (v *Vec[T]) List() rfl.List { return &list[T]{v: v} }

// FromReflect rebuilds v from any list whose every element can be
// reconstructed as a T. On failure v is left untouched.
func (v *Vec[T]) FromReflect(src rfl.Value) bool {
	l, ok := rfl.AsList(src)
	if !ok {
		return false
	}
	out := make(Vec[T], 0, l.Len())
	for e := range rfl.Values(l) {
		x, ok := rfl.FromReflect[T](e)
		if !ok {
			return false
		}
		out = append(out, x)
	}
	*v = out
	return true
}

// TypeRegistration returns the registration record of Vec[T].
func (v *Vec[T]) TypeRegistration() *apis.Registration {
	r := apis.NewRegistration(reflect.TypeFor[Vec[T]](), rfl.TypePathFor[Vec[T]]().Path())
	r.Insert(rfl.NewReflectFromPtr[Vec[T]]())
	r.Insert(typeInfo[T]())
	return r
}

func typeInfo[T any]() *rfl.TypeInfo {
	t := reflect.TypeFor[Vec[T]]()
	return rfl.TypeInfoOf(t, func() *rfl.TypeInfo {
		return rfl.NewListTypeInfo(rfl.ListInfoFor[Vec[T], T]())
	})
}

type list[T any] struct {
	v *Vec[T]
}

// Get returns the element at index, or false when out of range.
func (l *list[T]) Get(index int) (rfl.Value, bool) {
	if index < 0 || index >= len(*l.v) {
		return nil, false
	}
	return rfl.ValueOf(&(*l.v)[index]), true
}

// GetMut is Get; elements are reached by pointer already.
func (l *list[T]) GetMut(index int) (rfl.Value, bool) { return l.Get(index) }

// Insert converts x to T and places it at index.
func (l *list[T]) Insert(index int, x rfl.Value) {
	if n := len(*l.v); index < 0 || index > n {
		rfl.Fatalf("insertion index (is %d) should be <= len (is %d) on %s", index, n, l.TypePath())
	}
	*l.v = slices.Insert(*l.v, index, rfl.ItemFrom[T](x, "insert"))
}

// Remove deletes and returns the element at index.
func (l *list[T]) Remove(index int) rfl.Value {
	if n := len(*l.v); index < 0 || index >= n {
		rfl.Fatalf("removal index (is %d) should be < len (is %d) on %s", index, n, l.TypePath())
	}
	x := (*l.v)[index]
	*l.v = slices.Delete(*l.v, index, index+1)
	return rfl.New(x)
}

// Push converts x to T and appends it.
func (l *list[T]) Push(x rfl.Value) { *l.v = append(*l.v, rfl.ItemFrom[T](x, "push")) }

// Pop removes and returns the last element.
func (l *list[T]) Pop() (rfl.Value, bool) { return rfl.ListPop(l) }

// Len returns the number of elements.
func (l *list[T]) Len() int { return len(*l.v) }

// IsEmpty reports whether the list has no elements.
func (l *list[T]) IsEmpty() bool { return rfl.ListIsEmpty(l) }

// Iter returns an iterator over the elements.
func (l *list[T]) Iter() *rfl.ListIter { return rfl.NewListIter(l) }

// Drain removes every element and returns them in order.
func (l *list[T]) Drain() []rfl.Value {
	out := make([]rfl.Value, len(*l.v))
	for i, x := range *l.v {
		out[i] = rfl.New(x)
	}
	clear(*l.v)
	*l.v = (*l.v)[:0]
	return out
}

// CloneDynamic returns a DynamicList holding clones of the elements.
func (l *list[T]) CloneDynamic() *rfl.DynamicList { return rfl.ListCloneDynamic(l) }

// Type returns the concrete Go type.
func (l *list[T]) Type() reflect.Type { return reflect.TypeFor[Vec[T]]() }

// TypePath returns the full type path.
func (l *list[T]) TypePath() string { return rfl.TypePathFor[Vec[T]]().Path() }

// RepresentedType returns the type info of the represented type.
func (l *list[T]) RepresentedType() *rfl.TypeInfo { return typeInfo[T]() }

// Any returns the underlying container by pointer.
func (l *list[T]) Any() any { return l.v }

// Kind returns KindList.
func (l *list[T]) Kind() rfl.Kind { return rfl.KindList }

// Ref returns a ListRef.
func (l *list[T]) Ref() rfl.Ref { return rfl.ListRef{List: l} }

// Clone returns a deep copy.
func (l *list[T]) Clone() rfl.Value {
	c := make(Vec[T], len(*l.v))
	for i, x := range *l.v {
		c[i] = rfl.CloneOf(x)
	}
	return c.Reflect()
}

// Apply patches the list from v and panics on mismatch.
func (l *list[T]) Apply(x rfl.Value) { rfl.ListApply(l, x) }

// TryApply patches the list from v element by element.
func (l *list[T]) TryApply(x rfl.Value) error { return rfl.ListTryApply(l, x) }

// Set moves x into the list, leaving x empty.
func (l *list[T]) Set(x rfl.Value) error {
	v, ok := rfl.Take[Vec[T]](x)
	if !ok {
		return rfl.MismatchedTypesError(x, l)
	}
	*l.v = v
	return nil
}

// Hash combines the element hashes.
func (l *list[T]) Hash() (uint64, bool) { return rfl.ListHash(l) }

// PartialEq compares element by element.
func (l *list[T]) PartialEq(x rfl.Value) (bool, bool) { return rfl.ListPartialEq(l, x) }

// Debug writes the elements as a bracketed list.
func (l *list[T]) Debug(w io.Writer) error { return rfl.ListDebug(l, w) }

// IsDynamic reports false.
func (l *list[T]) IsDynamic() bool { return false }
