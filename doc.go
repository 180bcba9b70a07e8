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

// Package rfl is a runtime reflection layer for ordered, growable
// collections.
//
// A List is any index-addressable sequence whose elements are themselves
// reflected Values. Code that knows nothing about the concrete element type
// can read, insert, remove, compare, hash, clone and patch such a sequence:
//
//	v := smallvec.From[[4]int](1, 2, 3)
//	l, _ := rfl.AsList(v.Reflect())
//	l.Push(rfl.New(4))
//	l.Apply(rfl.NewDynamicList(rfl.New(10), rfl.New(20)))
//	fmt.Println(rfl.DebugString(l)) // [10, 20, 3, 4]
//
// # Values
//
// Value is the type-erased handle. Scalars and other types reflected as a
// whole are wrapped in Opaque; containers such as smallvec.SmallVec and
// vec.Vec expose an adapter through Reflectable. DynamicList holds values of
// any type and can represent a concrete list type, which makes it the
// interchange form produced by CloneDynamic.
//
// Elements handed to a concrete list are converted in two steps: a checked
// downcast to the item type, then reconstruction through FromReflect. A
// value that survives neither is a contract violation and panics with an
// error wrapping ErrContractViolation. Rebuilding a whole container with
// FromReflect never panics; it reports false and leaves no partial result.
//
// # Descriptors
//
// ListInfo describes a list type and its item type. Descriptors are built
// once per type through TypeInfoOf and shared by every value of that type.
//
// # Snapshot
//
// Type paths come from a read-mostly global snapshot holding a Config, a
// Registry, a Resolver, a Builder and the process logger. Readers load the
// snapshot lock-free; writers (SetConfig, SetRegistry, SetLogger, ...)
// build a new one and swap it in atomically. The default resolver tries, in
// order, apis.Pather, the Registry and a reflect-based path such as
// "dirpx.dev/rfl/smallvec.SmallVec[[4]int,int]".
//
// Values are single-owner. Nothing in this package synchronizes
// concurrent mutation of one container.
package rfl
