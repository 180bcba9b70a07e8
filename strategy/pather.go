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

	"dirpx.dev/rfl/apis"
)

// NewPatherStrategy creates an apis.Strategy that uses apis.Pather.
func NewPatherStrategy() apis.Strategy {
	return &patherStrategy{}
}

// patherStrategy is a zero-cost fast path: if the type implements
// apis.Pather, return its StaticTypePath() and stop the chain.
type patherStrategy struct{}

// Ensure patherStrategy implements apis.Strategy.
var _ apis.Strategy = (*patherStrategy)(nil)

// patherType is the reflect.Type of apis.Pather.
var patherType = reflect.TypeFor[apis.Pather]()

// TryResolve checks the dynamic type of v.
func (s *patherStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.TryResolveType(reflect.TypeOf(v), cfg)
}

// TryResolveType calls StaticTypePath on a pointer to a fresh zero value of t.
// Pointer and interface types are never handled: a method promoted through
// the pointer would report the pointee's path.
func (*patherStrategy) TryResolveType(t reflect.Type, _ apis.Config) (string, bool) {
	if t == nil || t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return "", false
	}
	if !reflect.PointerTo(t).Implements(patherType) {
		return "", false
	}
	p := reflect.New(t).Interface().(apis.Pather).StaticTypePath()
	if p == "" {
		return "", false
	}
	return p, true
}
