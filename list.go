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
	"iter"
)

// List is the capability of an ordered, growable, index-addressable
// collection of reflected elements.
//
// Every element view returned by Get, GetMut or the iterator aliases the
// list; elements handed in through Insert and Push become owned by it.
type List interface {
	Value

	// Get returns the element at index, or false when out of range.
	Get(index int) (Value, bool)
	// GetMut is Get for callers that intend to mutate the element.
	GetMut(index int) (Value, bool)
	// Insert places v at index, shifting later elements right. index may
	// equal Len. A larger index, or a v that cannot become an item, is a
	// contract violation.
	Insert(index int, v Value)
	// Remove takes out the element at index, shifting later elements
	// left. An index not below Len is a contract violation.
	Remove(index int) Value
	// Push appends v. It is Insert at Len.
	Push(v Value)
	// Pop removes the last element, or returns false on an empty list.
	Pop() (Value, bool)
	// Len returns the element count.
	Len() int
	// IsEmpty reports Len() == 0.
	IsEmpty() bool
	// Iter returns an iterator from the first element.
	Iter() *ListIter
	// Drain moves every element out in order and leaves the list empty.
	Drain() []Value
	// CloneDynamic deep-copies the list into a DynamicList representing
	// the same type.
	CloneDynamic() *DynamicList
}

// ListIter walks a list by index. It is exhausted for good once the list
// reports no element at its position, unless the list grows.
type ListIter struct {
	list  List
	index int
}

// NewListIter returns an iterator positioned at the start of l.
func NewListIter(l List) *ListIter {
	return &ListIter{list: l}
}

// Next returns the next element. The position only advances when an
// element is returned.
func (it *ListIter) Next() (Value, bool) {
	v, ok := it.list.Get(it.index)
	if !ok {
		return nil, false
	}
	it.index++
	return v, true
}

// SizeHint returns the list's current length as both bounds.
func (it *ListIter) SizeHint() (lower, upper int) {
	n := it.list.Len()
	return n, n
}

// Values yields the elements of l in order.
func Values(l List) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		it := l.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields the elements of l with their indices.
func All(l List) iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		it := l.Iter()
		for i := 0; ; i++ {
			v, ok := it.Next()
			if !ok || !yield(i, v) {
				return
			}
		}
	}
}

// ItemFrom converts v into an item of a typed list: a checked take first,
// then reconstruction. When both fail it panics with a contract violation
// naming v's type path; verb names the operation in the message.
func ItemFrom[T any](v Value, verb string) T {
	if x, ok := Take[T](v); ok {
		return x
	}
	if x, ok := FromReflect[T](v); ok {
		return x
	}
	panic(ContractViolation("attempted to %s invalid value of type %s", verb, PathOfValue(v)))
}

// ListPush appends v through Insert.
func ListPush(l List, v Value) {
	l.Insert(l.Len(), v)
}

// ListPop removes the last element through Remove.
func ListPop(l List) (Value, bool) {
	if l.IsEmpty() {
		return nil, false
	}
	return l.Remove(l.Len() - 1), true
}

// ListIsEmpty reports whether l has no elements.
func ListIsEmpty(l List) bool {
	return l.Len() == 0
}

// ListCloneDynamic deep-copies l into a DynamicList that represents the
// same type as l.
func ListCloneDynamic(l List) *DynamicList {
	d := &DynamicList{
		represented: l.RepresentedType(),
		values:      make([]Value, 0, l.Len()),
	}
	for v := range Values(l) {
		d.values = append(d.values, v.Clone())
	}
	return d
}

// ListHash combines the type of l, its length and every element hash. It
// reports false as soon as one element is unhashable.
func ListHash(l List) (uint64, bool) {
	h := newHasher(l.Type())
	writeUint64(h, uint64(l.Len()))
	for v := range Values(l) {
		eh, ok := v.Hash()
		if !ok {
			return 0, false
		}
		writeUint64(h, eh)
	}
	return h.Sum64(), true
}

// ListTryApply updates a from any list b: shared positions are applied
// element by element, extra elements of b are cloned and pushed, and extra
// elements of a are kept. On error a may already be partially updated.
func ListTryApply(a List, b Value) error {
	lb, ok := AsList(b)
	if !ok {
		return MismatchedKindsError(b, KindList)
	}
	for i, v := range All(lb) {
		if i < a.Len() {
			dst, ok := a.GetMut(i)
			if !ok {
				continue
			}
			if err := dst.TryApply(v); err != nil {
				return err
			}
			continue
		}
		a.Push(v.Clone())
	}
	return nil
}

// ListApply is ListTryApply that panics instead of returning an error.
func ListApply(a List, b Value) {
	if err := ListTryApply(a, b); err != nil {
		fatal(err)
	}
}

// ListPartialEq compares a with any list b element by element. A non-list
// b is unequal; an undecidable element pair makes the whole comparison
// undecidable.
func ListPartialEq(a List, b Value) (equal, ok bool) {
	lb, isList := AsList(b)
	if !isList {
		return false, true
	}
	if a.Len() != lb.Len() {
		return false, true
	}
	ib := lb.Iter()
	for va := range Values(a) {
		vb, _ := ib.Next()
		eq, ok := va.PartialEq(vb)
		if !ok {
			return false, false
		}
		if !eq {
			return false, true
		}
	}
	return true, true
}

// ListDebug writes l as a bracketed sequence of element renderings, one
// element per indented line when Config().PrettyDebug is set.
func ListDebug(l List, w io.Writer) error {
	if Config().PrettyDebug {
		return listDebugPretty(l, w)
	}
	ew := &errWriter{w: w}
	ew.WriteString("[")
	for i, v := range All(l) {
		if i > 0 {
			ew.WriteString(", ")
		}
		if ew.err == nil {
			ew.err = v.Debug(ew.w)
		}
	}
	ew.WriteString("]")
	return ew.err
}

func listDebugPretty(l List, w io.Writer) error {
	if l.IsEmpty() {
		_, err := io.WriteString(w, "[]")
		return err
	}
	ew := &errWriter{w: w}
	ew.WriteString("[\n")
	pw := &padWriter{w: w, pad: "    ", bol: true}
	for v := range Values(l) {
		if ew.err != nil {
			break
		}
		ew.err = v.Debug(pw)
		if ew.err == nil {
			_, ew.err = io.WriteString(pw, ",\n")
		}
	}
	ew.WriteString("]")
	return ew.err
}
