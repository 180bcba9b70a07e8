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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfl/apis"
	uref "dirpx.dev/rfl/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}

// leaf renders named types as "<name>" to make expansion visible.
func leaf(t reflect.Type) string { return "<" + t.Name() + ">" }

func TestRender_Composites(t *testing.T) {
	cfg := apis.Config{MaxUnwrap: 8}

	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"named", reflect.TypeOf(A{}), "<A>"},
		{"builtin", reflect.TypeOf(0), "<int>"},
		{"ptr", reflect.TypeOf(&A{}), "*<A>"},
		{"slice", reflect.TypeOf([]A{}), "[]<A>"},
		{"array", reflect.TypeOf([3]A{}), "[3]<A>"},
		{"chan", reflect.TypeOf((chan A)(nil)), "chan <A>"},
		{"recv chan", reflect.TypeOf((<-chan A)(nil)), "<-chan <A>"},
		{"send chan", reflect.TypeOf((chan<- A)(nil)), "chan<- <A>"},
		{"map", reflect.TypeOf(map[string]A{}), "map[<string>]<A>"},
		{"nested", reflect.TypeOf([]*map[int][]A{}), "[]*map[<int>][]<A>"},
		{"func", reflect.TypeOf(func(int, ...A) {}), "func(<int>, ...<A>)"},
		{"func one result", reflect.TypeOf(func() error { return nil }), "func() <error>"},
		{"func results", reflect.TypeOf(func() (int, A) { return 0, A{} }), "func() (<int>, <A>)"},
		{"generic", reflect.TypeOf(G[int]{}), "<G[int]>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Render(tc.typ, cfg, leaf)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRender_MaxUnwrap(t *testing.T) {
	typ := reflect.TypeOf([][][]A{})

	got, err := uref.Render(typ, apis.Config{MaxUnwrap: 2}, leaf)
	require.NoError(t, err)
	assert.Equal(t, "[][]...", got)

	// non-positive falls back to the default depth
	got, err = uref.Render(typ, apis.Config{MaxUnwrap: 0}, leaf)
	require.NoError(t, err)
	assert.Equal(t, "[][][]<A>", got)
}

func TestRender_NilType(t *testing.T) {
	_, err := uref.Render(nil, apis.Config{}, leaf)
	assert.ErrorIs(t, err, uref.ErrReflectNilType)
}

func TestRender_AnonymousStruct(t *testing.T) {
	got, err := uref.Render(reflect.TypeOf(struct{ X int }{}), apis.Config{}, leaf)
	require.NoError(t, err)
	assert.Equal(t, "struct { X int }", got)
}

func TestShorten(t *testing.T) {
	cases := map[string]string{
		"dirpx.dev/rfl.DynamicList":                         "rfl.DynamicList",
		"dirpx.dev/rfl/smallvec.SmallVec[[4]int,int]":       "smallvec.SmallVec[[4]int,int]",
		"[]github.com/x/y.Z":                                "[]y.Z",
		"map[string]dirpx.dev/rfl/vec.Vec[example.com/a.B]": "map[string]vec.Vec[a.B]",
		"int": "int",
	}
	for in, want := range cases {
		assert.Equal(t, want, uref.Shorten(in), in)
	}
}

func TestStripTypeParams(t *testing.T) {
	assert.Equal(t, "T", uref.StripTypeParams("T[int,string]"))
	assert.Equal(t, "T", uref.StripTypeParams("T"))
}

func TestShard_Stable(t *testing.T) {
	a := uref.Shard(reflect.TypeOf(A{}))
	assert.Equal(t, a, uref.Shard(reflect.TypeOf(A{})))
}
