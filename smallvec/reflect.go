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

package smallvec

import (
	"io"
	"reflect"

	"dirpx.dev/rfl"
	"dirpx.dev/rfl/apis"
)

// Reflect returns the rfl.List adapter over s.
func (s *SmallVec[A, T]) Reflect() rfl.Value { return &list[A, T]{s: s} }

// List is Reflect with the list type.
func (s *SmallVec[A, T]) List() rfl.List { return &list[A, T]{s: s} }

// String renders s the way rfl debug-prints lists.
func (s *SmallVec[A, T]) String() string { return rfl.DebugString(s.Reflect()) }

// FromReflect rebuilds s from any list whose every element can be
// reconstructed as a T. On failure s is left untouched.
func (s *SmallVec[A, T]) FromReflect(v rfl.Value) bool {
	l, ok := rfl.AsList(v)
	if !ok {
		return false
	}
	out := WithCapacity[A, T](l.Len())
	for e := range rfl.Values(l) {
		x, ok := rfl.FromReflect[T](e)
		if !ok {
			return false
		}
		out.Append(x)
	}
	*s = *out
	return true
}

// TypeRegistration returns the registration record of SmallVec[A, T]. It
// carries rfl.ReflectFromPtr and the type descriptor.
func (s *SmallVec[A, T]) TypeRegistration() *apis.Registration {
	r := apis.NewRegistration(reflect.TypeFor[SmallVec[A, T]](), rfl.TypePathFor[SmallVec[A, T]]().Path())
	r.Insert(rfl.NewReflectFromPtr[SmallVec[A, T]]())
	r.Insert(listTypeInfo[A, T]())
	return r
}

func listTypeInfo[A, T any]() *rfl.TypeInfo {
	t := reflect.TypeFor[SmallVec[A, T]]()
	return rfl.TypeInfoOf(t, func() *rfl.TypeInfo {
		return rfl.NewListTypeInfo(rfl.ListInfoFor[SmallVec[A, T], T]())
	})
}

// list adapts *SmallVec to rfl.List. Element views alias the items.
type list[A, T any] struct {
	s *SmallVec[A, T]
}

// Get returns the element at index, or false when out of range.
func (l *list[A, T]) Get(index int) (rfl.Value, bool) {
	if index < 0 || index >= l.s.Len() {
		return nil, false
	}
	return rfl.ValueOf(l.s.Ptr(index)), true
}

// GetMut is Get; elements are reached by pointer already.
func (l *list[A, T]) GetMut(index int) (rfl.Value, bool) { return l.Get(index) }

// Insert converts v to T and places it at index.
func (l *list[A, T]) Insert(index int, v rfl.Value) {
	if n := l.s.Len(); index < 0 || index > n {
		rfl.Fatalf("insertion index (is %d) should be <= len (is %d) on %s", index, n, l.TypePath())
	}
	l.s.InsertAt(index, rfl.ItemFrom[T](v, "insert"))
}

// Remove deletes and returns the element at index.
func (l *list[A, T]) Remove(index int) rfl.Value {
	if n := l.s.Len(); index < 0 || index >= n {
		rfl.Fatalf("removal index (is %d) should be < len (is %d) on %s", index, n, l.TypePath())
	}
	return rfl.New(l.s.RemoveAt(index))
}

// Push converts v to T and appends it, spilling when full.
func (l *list[A, T]) Push(v rfl.Value) {
	l.s.Append(rfl.ItemFrom[T](v, "push"))
}

// Pop removes and returns the last element.
func (l *list[A, T]) Pop() (rfl.Value, bool) {
	x, ok := l.s.PopBack()
	if !ok {
		return nil, false
	}
	return rfl.New(x), true
}

// Len returns the number of elements.
func (l *list[A, T]) Len() int { return l.s.Len() }

// IsEmpty reports whether the list has no elements.
func (l *list[A, T]) IsEmpty() bool { return l.s.Len() == 0 }

// Iter returns an iterator over the elements.
func (l *list[A, T]) Iter() *rfl.ListIter { return rfl.NewListIter(l) }

// Drain removes every element and returns them in order.
func (l *list[A, T]) Drain() []rfl.Value {
	items := l.s.Items()
	out := make([]rfl.Value, len(items))
	for i, x := range items {
		out[i] = rfl.New(x)
	}
	l.s.Clear()
	return out
}

// CloneDynamic returns a DynamicList holding clones of the elements.
func (l *list[A, T]) CloneDynamic() *rfl.DynamicList { return rfl.ListCloneDynamic(l) }

// Type returns the concrete Go type.
func (l *list[A, T]) Type() reflect.Type { return reflect.TypeFor[SmallVec[A, T]]() }

// TypePath returns the full type path.
func (l *list[A, T]) TypePath() string { return rfl.TypePathFor[SmallVec[A, T]]().Path() }

// RepresentedType returns the type info of the represented type.
func (l *list[A, T]) RepresentedType() *rfl.TypeInfo { return listTypeInfo[A, T]() }

// Any returns the underlying container by pointer.
func (l *list[A, T]) Any() any { return l.s }

// Kind returns KindList.
func (l *list[A, T]) Kind() rfl.Kind { return rfl.KindList }

// Ref returns a ListRef.
func (l *list[A, T]) Ref() rfl.Ref { return rfl.ListRef{List: l} }

// Clone returns a deep copy.
func (l *list[A, T]) Clone() rfl.Value {
	items := l.s.Items()
	c := WithCapacity[A, T](len(items))
	for _, x := range items {
		c.Append(rfl.CloneOf(x))
	}
	return c.Reflect()
}

// Apply patches the list from v and panics on mismatch.
func (l *list[A, T]) Apply(v rfl.Value) { rfl.ListApply(l, v) }

// TryApply patches the list from v element by element.
func (l *list[A, T]) TryApply(v rfl.Value) error { return rfl.ListTryApply(l, v) }

// Set moves v into the list, leaving v empty.
func (l *list[A, T]) Set(v rfl.Value) error {
	x, ok := rfl.Take[SmallVec[A, T]](v)
	if !ok {
		return rfl.MismatchedTypesError(v, l)
	}
	*l.s = x
	return nil
}

// Hash combines the element hashes.
func (l *list[A, T]) Hash() (uint64, bool) { return rfl.ListHash(l) }

// PartialEq compares element by element.
func (l *list[A, T]) PartialEq(v rfl.Value) (bool, bool) { return rfl.ListPartialEq(l, v) }

// Debug writes the elements as a bracketed list.
func (l *list[A, T]) Debug(w io.Writer) error { return rfl.ListDebug(l, w) }

// IsDynamic reports false.
func (l *list[A, T]) IsDynamic() bool { return false }
