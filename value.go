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
	"strings"
)

// Value is a type-erased, reflectable value.
//
// Implementations are single-owner: nothing here synchronizes concurrent
// mutation of one value.
type Value interface {
	// Type returns the runtime identity of the concrete type.
	Type() reflect.Type
	// TypePath returns the stable path of the concrete type.
	TypePath() string
	// RepresentedType returns the descriptor of the type this value
	// stands for, or nil. Dynamic values may represent a concrete type.
	RepresentedType() *TypeInfo
	// Any returns the concrete value. Containers return a pointer to
	// themselves.
	Any() any
	// Kind returns the shape tag.
	Kind() Kind
	// Ref returns the kind-specific view.
	Ref() Ref
	// Clone returns an independent deep copy.
	Clone() Value
	// Apply updates the receiver from v and panics where TryApply errors.
	Apply(v Value)
	// TryApply updates the receiver from v.
	TryApply(v Value) error
	// Set replaces the receiver with v when both have the same type. v is
	// consumed: a container moved in this way is left empty.
	Set(v Value) error
	// Hash reports false when the value is unhashable.
	Hash() (uint64, bool)
	// PartialEq reports ok == false when equality cannot be decided.
	PartialEq(v Value) (equal, ok bool)
	// Debug writes a debug rendering to w.
	Debug(w io.Writer) error
	// IsDynamic reports whether the value is a dynamic container.
	IsDynamic() bool
}

// Reflectable is implemented by concrete containers that expose a Value
// adapter aliasing themselves.
type Reflectable interface {
	Reflect() Value
}

// FromReflector is implemented by *T for types that can be rebuilt from any
// value of the same shape. FromReflect leaves the receiver untouched when it
// returns false.
type FromReflector interface {
	FromReflect(v Value) bool
}

// Cloner is implemented by opaque types whose copies must not alias.
type Cloner[T any] interface {
	Clone() T
}

// ValueOf returns a Value aliasing *p, or nil for a nil p.
func ValueOf[T any](p *T) Value {
	if p == nil {
		return nil
	}
	switch x := any(p).(type) {
	case Value:
		return x
	case Reflectable:
		return x.Reflect()
	}
	if v, ok := any(*p).(Value); ok {
		return v
	}
	return &Opaque[T]{ptr: p}
}

// New returns an owned Value holding v.
func New[T any](v T) Value {
	p := new(T)
	*p = v
	return ValueOf(p)
}

// Downcast returns the concrete value when its type is exactly T.
func Downcast[T any](v Value) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	t, ok := v.Any().(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Take consumes v as a T. Containers, which expose themselves by pointer,
// are moved out: the result takes over their storage and v is reset to the
// zero value of T.
func Take[T any](v Value) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	switch x := v.Any().(type) {
	case T:
		return x, true
	case *T:
		if x != nil {
			out := *x
			var zero T
			*x = zero
			return out, true
		}
	}
	return zero, false
}

// FromReflect rebuilds a T from v without consuming it. Types whose pointer
// implements FromReflector decide for themselves; any other type is cloned
// out of a value of exactly that type.
func FromReflect[T any](v Value) (T, bool) {
	var out T
	if v == nil {
		return out, false
	}
	if fr, ok := any(&out).(FromReflector); ok {
		if fr.FromReflect(v) {
			return out, true
		}
		var zero T
		return zero, false
	}
	t, ok := Downcast[T](v)
	if !ok {
		return out, false
	}
	return cloneOpaque(t), true
}

// CloneOf returns the deep copy reflected cloning makes of v.
func CloneOf[T any](v T) T {
	c, ok := Take[T](ValueOf(&v).Clone())
	if !ok {
		return v
	}
	return c
}

// PathOfValue returns v.TypePath(), or "<nil>".
func PathOfValue(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.TypePath()
}

// DebugString renders v with its Debug method.
func DebugString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	var b strings.Builder
	_ = v.Debug(&b)
	return b.String()
}

func cloneOpaque[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}
