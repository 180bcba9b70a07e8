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

package registry

import (
	"errors"
	"reflect"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"

	"dirpx.dev/rfl/apis"
	uref "dirpx.dev/rfl/utils/reflect"
)

var (
	// ErrNilRegistration is returned when a nil registration is provided.
	ErrNilRegistration = errors.New("rfl(registry): nil registration provided")
	// ErrNilType is returned when a registration carries a nil reflect.Type.
	ErrNilType = errors.New("rfl(registry): nil reflect.Type provided")
	// ErrEmptyPath is returned when a registration carries an empty path.
	ErrEmptyPath = errors.New("rfl(registry): empty path provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type under a different path.
	ErrConflictingRegistration = errors.New("rfl(registry): conflicting type registration")
	// ErrConflictingPath indicates an attempt to register a path that is
	// already taken by another type.
	ErrConflictingPath = errors.New("rfl(registry): path registered for another type")
)

// Option configures a registry during construction.
type Option func(*registry)

// WithLogger sets the logger registrations and conflicts are reported to.
func WithLogger(l zerolog.Logger) Option {
	return func(r *registry) {
		r.log = l.With().Str("component", "registry").Logger()
	}
}

// New constructs an empty Registry.
func New(opts ...Option) apis.Registry {
	r := &registry{
		log:   zerolog.Nop(),
		types: cmap.NewWithCustomShardingFunction[reflect.Type, *apis.Registration](uref.Shard),
		paths: cmap.New[*apis.Registration](),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// registry is a Registry implementation backed by two concurrent maps:
// one keyed by type identity, one keyed by stable path.
type registry struct {
	// log receives registration events.
	log zerolog.Logger
	// mu guards write-side consistency between types and paths.
	mu sync.Mutex
	// types maps reflect.Type to its registration.
	types cmap.ConcurrentMap[reflect.Type, *apis.Registration]
	// paths maps stable paths to registrations.
	paths cmap.ConcurrentMap[string, *apis.Registration]
}

// Register stores reg. It is idempotent for the same (type, path) pair.
func (r *registry) Register(reg *apis.Registration) error {
	// Validate inputs early.
	if reg == nil {
		return ErrNilRegistration
	}
	t, p := reg.Type(), reg.Path()
	if t == nil {
		return ErrNilType
	}
	if p == "" {
		return ErrEmptyPath
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.types.Get(t); ok {
		return r.compare(old, p)
	}

	// Write path: guard with a mutex so both indexes stay consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.types.Get(t); ok {
		return r.compare(old, p)
	}
	if other, ok := r.paths.Get(p); ok {
		r.log.Warn().
			Str("path", p).
			Stringer("type", t).
			Stringer("registered", other.Type()).
			Msg("path already taken")
		return ErrConflictingPath
	}

	r.types.Set(t, reg)
	r.paths.Set(p, reg)
	r.log.Debug().Str("path", p).Int("capabilities", reg.Len()).Msg("type registered")
	return nil
}

// compare checks a re-registration against the stored record.
func (r *registry) compare(old *apis.Registration, path string) error {
	if old.Path() == path {
		return nil // idempotent re-registration
	}
	r.log.Warn().
		Stringer("type", old.Type()).
		Str("path", path).
		Str("registered", old.Path()).
		Msg("conflicting registration")
	return ErrConflictingRegistration
}

// Lookup returns the registration of t if present.
func (r *registry) Lookup(t reflect.Type) (*apis.Registration, bool) {
	if t == nil {
		return nil, false
	}
	return r.types.Get(t)
}

// LookupPath returns the registration stored under path.
func (r *registry) LookupPath(path string) (*apis.Registration, bool) {
	if path == "" {
		return nil, false
	}
	return r.paths.Get(path)
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	items := r.types.Items()
	entries := make([]apis.Entry, 0, len(items))
	for t, reg := range items {
		entries = append(entries, apis.Entry{Type: t, Path: reg.Path()})
	}
	return entries
}

// Count returns the number of registrations.
func (r *registry) Count() int {
	return r.types.Count()
}

// Reset clears all registrations.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types.Clear()
	r.paths.Clear()
}
