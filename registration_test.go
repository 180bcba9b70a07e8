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

package rfl_test

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfl"
	"dirpx.dev/rfl/apis"
	"dirpx.dev/rfl/vec"
)

type gadget struct{ Serial int }

func TestReflectFromPtr(t *testing.T) {
	fp := rfl.NewReflectFromPtr[gadget]()
	assert.Equal(t, reflect.TypeFor[gadget](), fp.Type())

	g := gadget{Serial: 1}
	v := fp.FromPtr(unsafe.Pointer(&g))
	require.NoError(t, v.Set(rfl.New(gadget{Serial: 2})))
	assert.Equal(t, 2, g.Serial, "the value aliases the pointee")
}

func TestReflectFromPtr_ContainerGetsAdapter(t *testing.T) {
	fp := rfl.NewReflectFromPtr[vec.Vec[int]]()
	xs := vec.Of(1)

	l, ok := rfl.AsList(fp.FromPtr(unsafe.Pointer(&xs)))
	require.True(t, ok)
	l.Push(rfl.New(2))
	assert.Equal(t, []int{1, 2}, []int(xs))
}

func TestGetTypeRegistration(t *testing.T) {
	t.Run("default record", func(t *testing.T) {
		r := rfl.GetTypeRegistration[gadget]()
		assert.Equal(t, reflect.TypeFor[gadget](), r.Type())
		assert.Equal(t, "dirpx.dev/rfl_test.gadget", r.Path())
		assert.True(t, r.Contains(reflect.TypeFor[rfl.ReflectFromPtr]()))
	})
	t.Run("provider", func(t *testing.T) {
		r := rfl.GetTypeRegistration[vec.Vec[string]]()
		assert.Equal(t, "dirpx.dev/rfl/vec.Vec[string]", r.Path())

		ti, ok := apis.RegistrationData[*rfl.TypeInfo](r)
		require.True(t, ok)
		li, ok := ti.AsList()
		require.True(t, ok)
		assert.True(t, rfl.ListItemIs[string](li))
	})
}

type widget struct{ N int }

func TestRegisterType_And_ReflectPtr(t *testing.T) {
	require.NoError(t, rfl.RegisterType[widget]())

	w := widget{N: 3}
	v, ok := rfl.ReflectPtr(reflect.TypeFor[widget](), unsafe.Pointer(&w))
	require.True(t, ok)
	assert.Equal(t, widget{N: 3}, v.Any())

	_, ok = rfl.ReflectPtr(reflect.TypeFor[gadget](), unsafe.Pointer(&gadget{}))
	assert.False(t, ok)
}

type renamed struct{}

func TestRegisterTypePath_OverridesResolvedPath(t *testing.T) {
	require.NoError(t, rfl.RegisterTypePath[renamed]("shop.renamed"))

	assert.Equal(t, "shop.renamed", rfl.PathOf(renamed{}))
	assert.Equal(t, "shop.renamed", rfl.TypePathFor[renamed]().Path())

	r, ok := rfl.Registry().LookupPath("shop.renamed")
	require.True(t, ok)
	assert.True(t, r.Contains(reflect.TypeFor[rfl.ReflectFromPtr]()))
}

type pathed struct{}

func (*pathed) StaticTypePath() string { return "custom/pathed" }

func TestTypePath_PatherWins(t *testing.T) {
	assert.Equal(t, "custom/pathed", rfl.New(pathed{}).TypePath())
}
