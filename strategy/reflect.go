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
	"sync"

	"dirpx.dev/rfl/apis"
	uref "dirpx.dev/rfl/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that derives paths via
// reflection using utils/reflect.Render and memoization.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback that computes a stable
// "import/path.Type[args]" path. Composite types are rendered structurally
// ("[]pkg.T", "map[string]pkg.T") and builtins keep their bare name.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// cacheKey ensures memoization respects all config knobs that affect derivation.
type cacheKey struct {
	t               reflect.Type
	maxUnwrap       int16
	stripTypeParams bool
}

// typePathCache caches derived type paths by (type, config knobs).
var typePathCache sync.Map // key: cacheKey, val: string

// TryResolve derives the path of v's type.
func (reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return byType(reflect.TypeOf(v), cfg), true
}

// TryResolveType derives the path of t.
func (reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return byType(t, cfg), true
}

// byType derives the path for t with memoization.
func byType(t reflect.Type, cfg apis.Config) string {
	key := cacheKey{
		t:               t,
		maxUnwrap:       int16(cfg.MaxUnwrap),
		stripTypeParams: cfg.StripTypeParams,
	}
	if v, ok := typePathCache.Load(key); ok {
		return v.(string)
	}

	p, err := uref.Render(t, cfg, leaf(cfg.StripTypeParams))
	if err != nil {
		return ""
	}

	typePathCache.Store(key, p)
	return p
}

// leaf renders a named type as "import/path.Name"; builtins keep their name.
func leaf(strip bool) uref.Leaf {
	return func(t reflect.Type) string {
		name := t.Name()
		if strip {
			name = uref.StripTypeParams(name)
		}
		if p := t.PkgPath(); p != "" {
			return p + "." + name
		}
		return name
	}
}
