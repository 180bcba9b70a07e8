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

package builder

import (
	"github.com/rs/zerolog"

	"dirpx.dev/rfl/apis"
	"dirpx.dev/rfl/registry"
	"dirpx.dev/rfl/resolver"
	"dirpx.dev/rfl/strategy"
)

// Ext is the extension payload understood by the default builder.
// Any other ext value is ignored.
type Ext struct {
	// Logger receives registry events.
	Logger zerolog.Logger
}

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its registrations are carried over.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, ext any) apis.Registry {
	var opts []registry.Option
	if e, ok := ext.(Ext); ok {
		opts = append(opts, registry.WithLogger(e.Logger))
	}
	nreg := registry.New(opts...)
	if preg != nil {
		for _, e := range preg.Entries() {
			if r, ok := preg.Lookup(e.Type); ok {
				_ = nreg.Register(r)
			}
		}
	}
	return nreg
}

// BuildResolver builds and returns the default resolver chain:
// Pather -> Registry -> Reflect.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewPatherStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}
