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
	"bytes"
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rfl/apis"
	"dirpx.dev/rfl/builder"
	"dirpx.dev/rfl/config"
)

// resetWithBuilder installs a clean snapshot built by b and restores the
// default one when the test ends.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, nil, nil, b)
	tb.Cleanup(func() {
		def := config.DefaultConfig()
		SetAll(&def, builder.Ext{Logger: zerolog.Nop()}, nil, nil, builder.New())
	})
}

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]*apis.Registration
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[reflect.Type]*apis.Registration)}
}

func (m *mockRegistry) Register(r *apis.Registration) error {
	m.mu.Lock()
	m.data[r.Type()] = r
	m.mu.Unlock()
	return nil
}

func (m *mockRegistry) Lookup(t reflect.Type) (*apis.Registration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[t]
	return r, ok
}

func (m *mockRegistry) LookupPath(path string) (*apis.Registration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.data {
		if r.Path() == path {
			return r, true
		}
	}
	return nil, false
}

func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for t, r := range m.data {
		out = append(out, apis.Entry{Type: t, Path: r.Path()})
	}
	return out
}

func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockRegistry) Reset() {
	m.mu.Lock()
	m.data = make(map[reflect.Type]*apis.Registration)
	m.mu.Unlock()
}

type mockResolver struct {
	id string
}

func (r *mockResolver) Resolve(v any, cfg apis.Config) string {
	if v == nil {
		return ""
	}
	return r.ResolveType(reflect.TypeOf(v), cfg)
}

func (r *mockResolver) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.id + ":" + strconv.Itoa(cfg.MaxUnwrap) + ":" + t.String()
}

type mockBuilder struct {
	mu         sync.Mutex
	lastCfg    apis.Config
	lastExt    any
	regCounter int
	resCounter int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, _ apis.Registry, ext any) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Registry, _ apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter)}
}

func (b *mockBuilder) counters() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	s1Reg, s1Res := Registry(), Resolver()
	SetConfig(apis.Config{MaxUnwrap: 4, PrettyDebug: true})

	assert.NotSame(t, s1Reg, Registry())
	assert.NotSame(t, s1Res, Resolver())

	b.mu.Lock()
	got := b.lastCfg
	b.mu.Unlock()
	assert.Equal(t, apis.Config{MaxUnwrap: 4, PrettyDebug: true}, got)
	assert.Equal(t, got, Config())
}

func TestSetRegistry_Pins_And_RebuildsResolver(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)

	custom := newMockRegistry("custom")
	SetRegistry(custom)
	require.True(t, IsRegistryPinned())

	before := Resolver()
	SetConfig(apis.Config{MaxUnwrap: 6})

	assert.Same(t, custom, Registry())
	assert.NotSame(t, before, Resolver())
}

func TestSetResolver_Pins(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)

	custom := &mockResolver{id: "custom"}
	SetResolver(custom)
	require.True(t, IsResolverPinned())

	regBefore := Registry()
	SetConfig(apis.Config{MaxUnwrap: 6})

	assert.Same(t, custom, Resolver())
	assert.NotSame(t, regBefore, Registry())
	assert.Equal(t, "custom:6:int", PathOf(1))
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)

	SetResolver(&mockResolver{id: "pinned"})
	regBefore, resBefore := Registry(), Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	assert.Same(t, b, Builder())
	assert.NotSame(t, regBefore, Registry())
	assert.Same(t, resBefore, Resolver())
}

func TestSetExt_PassesValue_And_RespectsPins(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, apis.Config{MaxUnwrap: 8}, nil)

	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	assert.Equal(t, extCfg{X: 42}, got)

	ec, ok := ExtAs[extCfg]()
	require.True(t, ok)
	assert.Equal(t, 42, ec.X)

	PinRegistry()
	PinResolver()
	r0, s0 := b.counters()
	SetExt(extCfg{X: 7})
	r1, s1 := b.counters()
	assert.Equal(t, r0, r1)
	assert.Equal(t, s0, s1)
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)

	PinRegistry()
	PinResolver()
	reg1, res1 := Registry(), Resolver()

	SetConfig(apis.Config{MaxUnwrap: 4})
	require.Same(t, reg1, Registry())
	require.Same(t, res1, Resolver())

	UnpinRegistry()
	UnpinResolver()
	assert.False(t, IsRegistryPinned())
	assert.False(t, IsResolverPinned())

	SetConfig(apis.Config{MaxUnwrap: 6})
	assert.NotSame(t, reg1, Registry())
	assert.NotSame(t, res1, Resolver())
}

type nilBuilder struct{ mockBuilder }

func (*nilBuilder) BuildRegistry(apis.Config, apis.Registry, any) apis.Registry { return nil }

func TestSetBuilder_NilRegistry_Panics(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)
	before := Registry()

	assert.PanicsWithValue(t, ErrNilRegistry, func() { SetBuilder(&nilBuilder{}) })
	assert.Same(t, before, Registry(), "a failed rebuild must not publish")
}

func TestLogger_DefaultsToNop_And_FollowsSetLogger(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)
	assert.Equal(t, zerolog.Disabled, Logger().GetLevel())

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	_, ok := ExtAs[builder.Ext]()
	require.True(t, ok)

	require.NoError(t, Registry().Register(apis.NewRegistration(reflect.TypeFor[token](), "test.token")))
	assert.Contains(t, buf.String(), `"component":"registry"`)
	assert.Contains(t, buf.String(), "test.token")
}

type token struct{}

func TestPathOf_Concurrent_With_SetConfig(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, apis.Config{MaxUnwrap: 8}, nil)

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = PathOf(token{})
				_ = TypePathOf(reflect.TypeOf(token{}))
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(apis.Config{MaxUnwrap: 4 + (i % 5), PrettyDebug: i%2 == 0})
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
