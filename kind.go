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

// Kind is the closed set of reflected shapes.
//
// Only KindList and KindOpaque have capabilities in this package; the other
// tags exist so dispatch and error messages can name any shape.
type Kind uint8

const (
	KindStruct Kind = iota
	KindTupleStruct
	KindTuple
	KindList
	KindArray
	KindMap
	KindEnum
	KindOpaque
)

var kindNames = [...]string{
	KindStruct:      "struct",
	KindTupleStruct: "tuple struct",
	KindTuple:       "tuple",
	KindList:        "list",
	KindArray:       "array",
	KindMap:         "map",
	KindEnum:        "enum",
	KindOpaque:      "opaque",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Ref is the kind-specific view of a Value. Its variants are ListRef and
// OpaqueRef. A view aliases the value it came from.
type Ref interface {
	Kind() Kind
	isRef()
}

// ListRef is the view of a value with list capability.
type ListRef struct {
	List List
}

func (ListRef) Kind() Kind { return KindList }
func (ListRef) isRef()     {}

// OpaqueRef is the view of a value without structural capability.
type OpaqueRef struct {
	Value Value
}

func (OpaqueRef) Kind() Kind { return KindOpaque }
func (OpaqueRef) isRef()     {}

// AsList returns the list behind v, if v has list capability.
func AsList(v Value) (List, bool) {
	if v == nil {
		return nil, false
	}
	r, ok := v.Ref().(ListRef)
	if !ok {
		return nil, false
	}
	return r.List, true
}
