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

// Package smallvec provides SmallVec, a growable array that keeps its first
// items inline and spills to the heap when it outgrows them.
//
// The inline storage is the array type A, which must be [N]T:
//
//	s := smallvec.From[[4]int](1, 2, 3) // inline, no heap allocation
//	s.Append(4, 5)                       // spilled
//
// *SmallVec is Reflectable; its adapter exposes it as an rfl.List.
package smallvec

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"unsafe"
)

// ErrInlineType is the panic raised when A is not an array of T.
var ErrInlineType = errors.New("smallvec: inline storage must be an array of the item type")

// SmallVec holds up to len(A) items in place and the rest on the heap.
//
// Copying a SmallVec copies the inline items but shares spilled ones; use
// Clone for an independent copy.
type SmallVec[A, T any] struct {
	inline  A
	n       int
	heap    []T
	spilled bool
}

// New returns an empty SmallVec. It panics with ErrInlineType when A is
// not [N]T.
func New[A, T any]() *SmallVec[A, T] {
	inlineCap[A, T]()
	return &SmallVec[A, T]{}
}

// WithCapacity returns an empty SmallVec with room for n items. It spills
// right away when n exceeds the inline capacity.
func WithCapacity[A, T any](n int) *SmallVec[A, T] {
	s := New[A, T]()
	if n > inlineCap[A, T]() {
		s.heap = make([]T, 0, n)
		s.spilled = true
	}
	return s
}

// From returns a SmallVec holding items.
func From[A, T any](items ...T) *SmallVec[A, T] {
	s := WithCapacity[A, T](len(items))
	s.Append(items...)
	return s
}

func inlineCap[A, T any]() int {
	a := reflect.TypeFor[A]()
	if a.Kind() != reflect.Array || a.Elem() != reflect.TypeFor[T]() {
		panic(fmt.Errorf("%w: got %s for %s", ErrInlineType, a, reflect.TypeFor[T]()))
	}
	return a.Len()
}

// buf returns the whole inline storage.
func (s *SmallVec[A, T]) buf() []T {
	c := inlineCap[A, T]()
	if c == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&s.inline)), c)
}

// Len returns the number of items.
func (s *SmallVec[A, T]) Len() int {
	if s.spilled {
		return len(s.heap)
	}
	return s.n
}

// Cap returns the number of items s can hold without reallocating.
func (s *SmallVec[A, T]) Cap() int {
	if s.spilled {
		return cap(s.heap)
	}
	return inlineCap[A, T]()
}

// InlineCap returns len(A).
func (s *SmallVec[A, T]) InlineCap() int { return inlineCap[A, T]() }

// Spilled reports whether the items live on the heap.
func (s *SmallVec[A, T]) Spilled() bool { return s.spilled }

// Items returns the live items. The slice aliases s until the next call
// that changes its length.
func (s *SmallVec[A, T]) Items() []T {
	if s.spilled {
		return s.heap
	}
	return s.buf()[:s.n]
}

// At returns the item at i. It panics when i is out of range.
func (s *SmallVec[A, T]) At(i int) T { return s.Items()[i] }

// Ptr returns the address of the item at i.
func (s *SmallVec[A, T]) Ptr(i int) *T { return &s.Items()[i] }

// Append adds items at the end.
func (s *SmallVec[A, T]) Append(items ...T) {
	if !s.spilled {
		if s.n+len(items) <= inlineCap[A, T]() {
			copy(s.buf()[s.n:], items)
			s.n += len(items)
			return
		}
		s.spill(s.n + len(items))
	}
	s.heap = append(s.heap, items...)
}

// InsertAt places x at i, shifting later items right. i may equal Len.
func (s *SmallVec[A, T]) InsertAt(i int, x T) {
	n := s.Len()
	if i < 0 || i > n {
		panic(fmt.Sprintf("smallvec: insertion index (is %d) should be <= len (is %d)", i, n))
	}
	if !s.spilled {
		if n < inlineCap[A, T]() {
			b := s.buf()[:n+1]
			copy(b[i+1:], b[i:n])
			b[i] = x
			s.n++
			return
		}
		s.spill(n + 1)
	}
	s.heap = slices.Insert(s.heap, i, x)
}

// RemoveAt takes out the item at i, shifting later items left.
func (s *SmallVec[A, T]) RemoveAt(i int) T {
	n := s.Len()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("smallvec: removal index (is %d) should be < len (is %d)", i, n))
	}
	if s.spilled {
		x := s.heap[i]
		s.heap = slices.Delete(s.heap, i, i+1)
		return x
	}
	b := s.buf()[:n]
	x := b[i]
	copy(b[i:], b[i+1:])
	var zero T
	b[n-1] = zero
	s.n--
	return x
}

// PopBack removes the last item.
func (s *SmallVec[A, T]) PopBack() (T, bool) {
	n := s.Len()
	if n == 0 {
		var zero T
		return zero, false
	}
	return s.RemoveAt(n - 1), true
}

// Clear removes every item. Spilled storage is kept for reuse.
func (s *SmallVec[A, T]) Clear() {
	if s.spilled {
		clear(s.heap)
		s.heap = s.heap[:0]
		return
	}
	clear(s.buf()[:s.n])
	s.n = 0
}

// Clone returns a copy of s that shares no storage with it. Items are
// copied by assignment.
func (s *SmallVec[A, T]) Clone() *SmallVec[A, T] {
	return From[A](s.Items()...)
}

// spill moves the inline items to a heap slice with room for at least
// want items.
func (s *SmallVec[A, T]) spill(want int) {
	c := max(want, 2*inlineCap[A, T](), 1)
	h := make([]T, s.n, c)
	b := s.buf()
	copy(h, b[:s.n])
	clear(b[:s.n])
	s.heap, s.n, s.spilled = h, 0, true
}
