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

	cmap "github.com/orcaman/concurrent-map/v2"

	"dirpx.dev/rfl/apis"
	uref "dirpx.dev/rfl/utils/reflect"
)

var documenterType = reflect.TypeFor[apis.Documenter]()

// typeDocs returns the docs t declares through apis.Documenter.
func typeDocs(t reflect.Type) string {
	if t == nil || t.Kind() == reflect.Interface || !reflect.PointerTo(t).Implements(documenterType) {
		return ""
	}
	return reflect.New(t).Interface().(apis.Documenter).TypeDocs()
}

// TypePathTable holds the stable path of a type in its usual forms.
type TypePathTable struct {
	path   string
	short  string
	ident  string
	module string
}

func newTypePathTable(t reflect.Type, path string) TypePathTable {
	if path == "" {
		path = t.String()
	}
	ident := uref.StripTypeParams(t.Name())
	if ident == "" {
		ident = uref.Shorten(path)
	}
	return TypePathTable{
		path:   path,
		short:  uref.Shorten(path),
		ident:  ident,
		module: t.PkgPath(),
	}
}

// Path returns the full path, e.g. "dirpx.dev/rfl/smallvec.SmallVec[[4]int,int]".
func (p TypePathTable) Path() string { return p.path }

// ShortPath returns the path with import paths cut down to package names,
// e.g. "smallvec.SmallVec[[4]int,int]".
func (p TypePathTable) ShortPath() string { return p.short }

// Ident returns the bare type name, without type arguments. Unnamed types
// use their short path.
func (p TypePathTable) Ident() string { return p.ident }

// ModulePath returns the import path of the defining package, "" for
// unnamed and builtin types.
func (p TypePathTable) ModulePath() string { return p.module }

func (p TypePathTable) String() string { return p.path }

// ListInfo describes a list type and its item type. It is immutable.
type ListInfo struct {
	path     TypePathTable
	typ      reflect.Type
	itemPath TypePathTable
	itemType reflect.Type
	docs     string
}

// NewListInfo describes the list type listType holding itemType items.
// Docs come from apis.Documenter when listType implements it.
func NewListInfo(listType, itemType reflect.Type) *ListInfo {
	return &ListInfo{
		path:     TypePathOf(listType),
		typ:      listType,
		itemPath: TypePathOf(itemType),
		itemType: itemType,
		docs:     typeDocs(listType),
	}
}

// ListInfoFor describes the list type L holding T items.
func ListInfoFor[L, T any]() *ListInfo {
	return NewListInfo(reflect.TypeFor[L](), reflect.TypeFor[T]())
}

// WithDocs returns a copy of i carrying docs.
func (i *ListInfo) WithDocs(docs string) *ListInfo {
	c := *i
	c.docs = docs
	return &c
}

func (i *ListInfo) TypePathTable() TypePathTable     { return i.path }
func (i *ListInfo) TypePath() string                 { return i.path.Path() }
func (i *ListInfo) Type() reflect.Type               { return i.typ }
func (i *ListInfo) ItemTypePathTable() TypePathTable { return i.itemPath }
func (i *ListInfo) ItemType() reflect.Type           { return i.itemType }
func (i *ListInfo) Docs() string                     { return i.docs }

// IsType reports whether t is the described list type.
func (i *ListInfo) IsType(t reflect.Type) bool { return i.typ == t }

// ItemIsType reports whether t is the described item type.
func (i *ListInfo) ItemIsType(t reflect.Type) bool { return i.itemType == t }

// Equal compares the described types. Paths and docs are ignored.
func (i *ListInfo) Equal(o *ListInfo) bool {
	if i == nil || o == nil {
		return i == o
	}
	return i.typ == o.typ && i.itemType == o.itemType
}

// ListIs reports whether i describes the list type T.
func ListIs[T any](i *ListInfo) bool { return i.IsType(reflect.TypeFor[T]()) }

// ListItemIs reports whether i describes lists of T.
func ListItemIs[T any](i *ListInfo) bool { return i.ItemIsType(reflect.TypeFor[T]()) }

// OpaqueInfo describes a type reflected as a whole.
type OpaqueInfo struct {
	path TypePathTable
	typ  reflect.Type
	docs string
}

// NewOpaqueInfo describes t.
func NewOpaqueInfo(t reflect.Type) *OpaqueInfo {
	return &OpaqueInfo{path: TypePathOf(t), typ: t, docs: typeDocs(t)}
}

// WithDocs returns a copy of i carrying docs.
func (i *OpaqueInfo) WithDocs(docs string) *OpaqueInfo {
	c := *i
	c.docs = docs
	return &c
}

func (i *OpaqueInfo) TypePathTable() TypePathTable { return i.path }
func (i *OpaqueInfo) TypePath() string             { return i.path.Path() }
func (i *OpaqueInfo) Type() reflect.Type           { return i.typ }
func (i *OpaqueInfo) Docs() string                 { return i.docs }

// TypeInfo is the descriptor of a reflected type: exactly one of a list
// or an opaque descriptor.
type TypeInfo struct {
	list   *ListInfo
	opaque *OpaqueInfo
}

func NewListTypeInfo(i *ListInfo) *TypeInfo     { return &TypeInfo{list: i} }
func NewOpaqueTypeInfo(i *OpaqueInfo) *TypeInfo { return &TypeInfo{opaque: i} }

// Kind returns KindList or KindOpaque.
func (ti *TypeInfo) Kind() Kind {
	if ti.list != nil {
		return KindList
	}
	return KindOpaque
}

// AsList returns the list descriptor.
func (ti *TypeInfo) AsList() (*ListInfo, bool) { return ti.list, ti.list != nil }

// AsOpaque returns the opaque descriptor.
func (ti *TypeInfo) AsOpaque() (*OpaqueInfo, bool) { return ti.opaque, ti.opaque != nil }

func (ti *TypeInfo) Type() reflect.Type {
	if ti.list != nil {
		return ti.list.Type()
	}
	return ti.opaque.Type()
}

func (ti *TypeInfo) TypePathTable() TypePathTable {
	if ti.list != nil {
		return ti.list.TypePathTable()
	}
	return ti.opaque.TypePathTable()
}

func (ti *TypeInfo) TypePath() string { return ti.TypePathTable().Path() }

func (ti *TypeInfo) Docs() string {
	if ti.list != nil {
		return ti.list.Docs()
	}
	return ti.opaque.Docs()
}

func (ti *TypeInfo) String() string { return ti.Kind().String() + " " + ti.TypePath() }

// cells is the process-wide descriptor cache.
var cells = cmap.NewWithCustomShardingFunction[reflect.Type, *TypeInfo](uref.Shard)

// TypeInfoOf returns the cached descriptor of t, running init on first
// access. Concurrent first accesses may all run init; the first stored
// result wins and every caller gets it. A nil result is not stored.
func TypeInfoOf(t reflect.Type, init func() *TypeInfo) *TypeInfo {
	if ti, ok := cells.Get(t); ok {
		return ti
	}
	ti := init()
	if ti == nil {
		return nil
	}
	if cells.SetIfAbsent(t, ti) {
		l := Logger()
		l.Debug().
			Str("type", ti.TypePath()).
			Stringer("kind", ti.Kind()).
			Msg("type info initialized")
		return ti
	}
	ti, _ = cells.Get(t)
	return ti
}
