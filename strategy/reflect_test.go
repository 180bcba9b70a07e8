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

package strategy

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/rfl/apis"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

const pkg = "dirpx.dev/rfl/strategy"

// cfg returns a convenient baseline Config for tests.
func cfg(opts ...func(*apis.Config)) apis.Config {
	c := apis.Config{MaxUnwrap: 8}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func strip(c *apis.Config) { c.StripTypeParams = true }

func TestReflectStrategy_ByValue(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name     string
		val      any
		cfg      apis.Config
		expected string
	}{
		{"plain struct", A{}, cfg(), pkg + ".A"},
		{"ptr", &A{}, cfg(), "*" + pkg + ".A"},
		{"slice", []A{}, cfg(), "[]" + pkg + ".A"},
		{"array", [2]A{}, cfg(), "[2]" + pkg + ".A"},
		{"chan", make(chan A), cfg(), "chan " + pkg + ".A"},
		{"map", map[string]A{}, cfg(), "map[string]" + pkg + ".A"},
		{"builtin", 42, cfg(), "int"},
		{"generic keeps params", G[int]{}, cfg(), pkg + ".G[int]"},
		{"generic strips params", G[int]{}, cfg(strip), pkg + ".G"},
		{"wrapped generic stripped", []W[G[int]]{}, cfg(strip), "[]" + pkg + ".W"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolve(tc.val, tc.cfg)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, ok := s.TryResolve(nil, cfg())
	assert.False(t, ok)
}

func TestReflectStrategy_ByType(t *testing.T) {
	s := NewReflectStrategy()

	cases := []struct {
		name     string
		typ      reflect.Type
		cfg      apis.Config
		expected string
	}{
		{"type plain", reflect.TypeOf(A{}), cfg(), pkg + ".A"},
		{"type ptr", reflect.TypeOf(&A{}), cfg(), "*" + pkg + ".A"},
		{"type nested", reflect.TypeOf([]*A{}), cfg(), "[]*" + pkg + ".A"},
		{"type depth guard", reflect.TypeOf([]*A{}), cfg(func(c *apis.Config) { c.MaxUnwrap = 1 }), "[]..."},
		{"type generic instantiation", reflect.TypeOf(W[G[int]]{}), cfg(), pkg + ".W[" + pkg + ".G[int]]"},
		{"type error interface", reflect.TypeFor[error](), cfg(), "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := s.TryResolveType(tc.typ, tc.cfg)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, ok := s.TryResolveType(nil, cfg())
	assert.False(t, ok)
}

func TestReflectStrategy_CacheRespectsConfig(t *testing.T) {
	s := NewReflectStrategy()
	typ := reflect.TypeOf(G[int]{})

	full, _ := s.TryResolveType(typ, cfg())
	stripped, _ := s.TryResolveType(typ, cfg(strip))
	again, _ := s.TryResolveType(typ, cfg())

	assert.Equal(t, pkg+".G[int]", full)
	assert.Equal(t, pkg+".G", stripped)
	assert.Equal(t, full, again)
}

// This test stresses the memoization and Render path under concurrency.
func TestReflectStrategy_Concurrent(t *testing.T) {
	s := NewReflectStrategy()
	conf := cfg()

	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(0),
	}
	expect := []string{
		pkg + ".A",
		"*" + pkg + ".A",
		"[]" + pkg + ".A",
		"map[string]" + pkg + ".A",
		pkg + ".G[int]",
		"int",
	}

	workers := runtime.GOMAXPROCS(0) * 4
	iters := 2000

	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan string, workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				idx := i % len(types)
				got, ok := s.TryResolveType(types[idx], conf)
				if !ok || got != expect[idx] {
					errCh <- got
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for e := range errCh {
		t.Fatalf("concurrent resolve mismatch: got=%q", e)
	}
}

// ---- Benchmarks ----

func BenchmarkReflectStrategy_ByType(b *testing.B) {
	s := NewReflectStrategy()

	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(&A{}),
		reflect.TypeOf([]A{}),
		reflect.TypeOf(map[string]A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(W[G[int]]{}),
		reflect.TypeOf(0),
	}

	configs := []struct {
		name string
		cfg  apis.Config
	}{
		{"default", cfg()},
		{"strip_params", cfg(strip)},
		{"low_maxunwrap", cfg(func(c *apis.Config) { c.MaxUnwrap = 1 })},
	}

	for _, cc := range configs {
		b.Run(cc.name, func(b *testing.B) {
			// Warm-up cache
			for _, t0 := range types {
				s.TryResolveType(t0, cc.cfg)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				t0 := types[i%len(types)]
				s.TryResolveType(t0, cc.cfg)
			}
		})
	}
}
