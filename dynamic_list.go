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
	"io"
	"reflect"
	"slices"
)

// DynamicList is a list of arbitrary values with no fixed item type. It can
// stand in for a concrete list type through its represented type.
type DynamicList struct {
	represented *TypeInfo
	values      []Value
}

// NewDynamicList returns a list owning values.
func NewDynamicList(values ...Value) *DynamicList {
	return &DynamicList{values: slices.Clone(values)}
}

// NewDynamicListWithCapacity returns an empty list with room for n values.
func NewDynamicListWithCapacity(n int) *DynamicList {
	return &DynamicList{values: make([]Value, 0, n)}
}

// SetRepresentedType marks the list as standing in for the type ti
// describes. nil clears it; a non-list descriptor is a contract violation.
func (d *DynamicList) SetRepresentedType(ti *TypeInfo) {
	if ti != nil && ti.Kind() != KindList {
		Fatalf("expected list type info, got %s", ti)
	}
	d.represented = ti
}

// PushBoxed appends v without any conversion.
func (d *DynamicList) PushBoxed(v Value) {
	d.values = append(d.values, v)
}

// Push wraps v and appends it to d.
func Push[T any](d *DynamicList, v T) {
	d.PushBoxed(New(v))
}

// Get returns the element at index, or false when out of range.
func (d *DynamicList) Get(index int) (Value, bool) {
	if index < 0 || index >= len(d.values) {
		return nil, false
	}
	return d.values[index], true
}

// GetMut is Get; elements are reached by pointer already.
func (d *DynamicList) GetMut(index int) (Value, bool) { return d.Get(index) }

// Insert places v at index, shifting later elements right.
func (d *DynamicList) Insert(index int, v Value) {
	if index < 0 || index > len(d.values) {
		Fatalf("insertion index (is %d) should be <= len (is %d) on %s", index, len(d.values), d.TypePath())
	}
	d.values = slices.Insert(d.values, index, v)
}

// Remove deletes and returns the element at index.
func (d *DynamicList) Remove(index int) Value {
	if index < 0 || index >= len(d.values) {
		Fatalf("removal index (is %d) should be < len (is %d) on %s", index, len(d.values), d.TypePath())
	}
	v := d.values[index]
	d.values = slices.Delete(d.values, index, index+1)
	return v
}

// Push appends v as is.
func (d *DynamicList) Push(v Value) { d.PushBoxed(v) }

// Pop removes and returns the last element.
func (d *DynamicList) Pop() (Value, bool) {
	n := len(d.values)
	if n == 0 {
		return nil, false
	}
	v := d.values[n-1]
	d.values[n-1] = nil
	d.values = d.values[:n-1]
	return v, true
}

// Len returns the number of elements.
func (d *DynamicList) Len() int { return len(d.values) }

// IsEmpty reports whether the list has no elements.
func (d *DynamicList) IsEmpty() bool { return len(d.values) == 0 }

// Iter returns an iterator over the elements.
func (d *DynamicList) Iter() *ListIter { return NewListIter(d) }

// Drain removes every element and returns them in order.
func (d *DynamicList) Drain() []Value {
	vs := d.values
	d.values = nil
	return vs
}

// CloneDynamic returns a DynamicList holding clones of the elements.
func (d *DynamicList) CloneDynamic() *DynamicList { return ListCloneDynamic(d) }

// Type returns the DynamicList type.
func (d *DynamicList) Type() reflect.Type { return reflect.TypeFor[DynamicList]() }

// TypePath returns the full type path.
func (d *DynamicList) TypePath() string { return TypePathFor[DynamicList]().Path() }

// RepresentedType returns the type set by SetRepresentedType, or nil.
func (d *DynamicList) RepresentedType() *TypeInfo { return d.represented }

// Any returns d.
func (d *DynamicList) Any() any { return d }

// Kind returns KindList.
func (d *DynamicList) Kind() Kind { return KindList }

// Ref returns a ListRef.
func (d *DynamicList) Ref() Ref { return ListRef{List: d} }

// Clone returns a deep copy.
func (d *DynamicList) Clone() Value { return d.CloneDynamic() }

// Apply patches the list from v and panics on mismatch.
func (d *DynamicList) Apply(v Value) { ListApply(d, v) }

// TryApply patches the list from v element by element.
func (d *DynamicList) TryApply(v Value) error { return ListTryApply(d, v) }

// Set moves another DynamicList into d, leaving the source empty.
func (d *DynamicList) Set(v Value) error {
	x, ok := Take[DynamicList](v)
	if !ok {
		return MismatchedTypesError(v, d)
	}
	*d = x
	return nil
}

// Hash combines the element hashes.
func (d *DynamicList) Hash() (uint64, bool) { return ListHash(d) }

// PartialEq compares element by element.
func (d *DynamicList) PartialEq(v Value) (bool, bool) { return ListPartialEq(d, v) }

// Debug writes the elements, prefixed with the represented type when one is set.
func (d *DynamicList) Debug(w io.Writer) error {
	ew := &errWriter{w: w}
	ew.WriteString("DynamicList(")
	if ew.err == nil {
		ew.err = ListDebug(d, w)
	}
	ew.WriteString(")")
	return ew.err
}

// IsDynamic reports true.
func (d *DynamicList) IsDynamic() bool { return true }

// FromReflect replaces d with a dynamic clone of any list.
func (d *DynamicList) FromReflect(v Value) bool {
	l, ok := AsList(v)
	if !ok {
		return false
	}
	*d = *l.CloneDynamic()
	return true
}

// String returns the Debug rendering.
func (d *DynamicList) String() string { return DebugString(d) }
