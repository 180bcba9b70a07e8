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
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"dirpx.dev/rfl/apis"
	"dirpx.dev/rfl/builder"
	"dirpx.dev/rfl/config"
)

// init publishes the default snapshot.
func init() {
	s := &state{
		cfg: config.DefaultConfig(),
		ext: builder.Ext{Logger: zerolog.Nop()},
		bld: builder.New(),
	}
	s.reg = s.bld.BuildRegistry(s.cfg, nil, s.ext)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil, s.ext)
	st.Store(s)
}

var (
	// ErrNilRegistry is raised when a builder returns a nil registry.
	ErrNilRegistry = errors.New("rfl: builder returned nil registry")
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("rfl: builder returned nil resolver")
)

// PathOf returns the stable type path of v's dynamic type, or "" for nil.
func PathOf(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// SetAll replaces every component at once.
//
// A nil cfg or bld keeps the current one. A nil reg or res is rebuilt by
// the builder and left unpinned; a non-nil one is installed pinned. ext is
// always replaced.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	update(true, func(next *state) {
		if cfg != nil {
			next.cfg = *cfg
		}
		if bld != nil {
			next.bld = bld
		}
		next.ext = ext
		next.reg, next.preg = reg, reg != nil
		next.res, next.pres = res, res != nil
	})
}

// Config returns the current configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig installs cfg and rebuilds the unpinned layers.
func SetConfig(cfg apis.Config) {
	update(true, func(next *state) { next.cfg = cfg })
}

// Registry returns the current registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs and pins reg. An unpinned resolver is rebuilt on top
// of it. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(true, func(next *state) { next.reg, next.preg = reg, true })
}

// Resolver returns the current type-path resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs and pins res. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(false, func(next *state) { next.res, next.pres = res, true })
}

// Builder returns the current builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(true, func(next *state) { next.bld = b })
}

// SetExt replaces the builder extension payload and rebuilds the unpinned
// layers.
func SetExt(ext any) {
	update(true, func(next *state) { next.ext = ext })
}

// ExtAs returns the extension payload as T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// Logger returns the process logger. It is a no-op logger unless SetLogger
// was called.
func Logger() zerolog.Logger {
	if e, ok := ExtAs[builder.Ext](); ok {
		return e.Logger
	}
	return zerolog.Nop()
}

// SetLogger installs l as the process logger. The default builder hands it
// to the registry it builds.
func SetLogger(l zerolog.Logger) {
	SetExt(builder.Ext{Logger: l})
}

// IsRegistryPinned reports whether the registry survives rebuilds.
func IsRegistryPinned() bool { return st.Load().preg }

// PinRegistry keeps the current registry across rebuilds.
func PinRegistry() { update(false, func(next *state) { next.preg = true }) }

// UnpinRegistry lets the next rebuild replace the registry.
func UnpinRegistry() { update(false, func(next *state) { next.preg = false }) }

// IsResolverPinned reports whether the resolver survives rebuilds.
func IsResolverPinned() bool { return st.Load().pres }

// PinResolver keeps the current resolver across rebuilds.
func PinResolver() { update(false, func(next *state) { next.pres = true }) }

// UnpinResolver lets the next rebuild replace the resolver.
func UnpinResolver() { update(false, func(next *state) { next.pres = false }) }

// TypePathOf returns the path table of t as resolved by the current
// snapshot. Types without a resolvable path fall back to t.String().
func TypePathOf(t reflect.Type) TypePathTable {
	if t == nil {
		return TypePathTable{}
	}
	s := st.Load()
	return newTypePathTable(t, s.res.ResolveType(t, s.cfg))
}

// TypePathFor is TypePathOf for a static type.
func TypePathFor[T any]() TypePathTable {
	return TypePathOf(reflect.TypeFor[T]())
}

// update derives the next snapshot from the current one. When rebuild is
// set the unpinned layers are rebuilt by the (possibly new) builder.
func update(rebuild bool, mutate func(next *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	mutate(&next)

	if rebuild {
		if !next.preg {
			next.reg = next.bld.BuildRegistry(next.cfg, old.reg, next.ext)
		}
		if !next.pres {
			next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res, next.ext)
		}
	}

	if next.reg == nil {
		panic(ErrNilRegistry)
	}
	if next.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(&next)
}

// buildMu serializes writers so a partially built snapshot is never
// published.
var buildMu sync.Mutex

// st is the current snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot. Writers copy it, change the copy and
// swap it in.
type state struct {
	cfg  apis.Config
	ext  any
	reg  apis.Registry
	res  apis.Resolver
	bld  apis.Builder
	preg bool
	pres bool
}
