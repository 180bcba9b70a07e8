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

package reflect

import (
	"errors"
	"hash/fnv"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"dirpx.dev/rfl/apis"
	"dirpx.dev/rfl/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
)

// Leaf renders the path of a named type (one with a non-empty Name()).
type Leaf func(t reflect.Type) string

// Render renders the path of t. Named types are handed to leaf; unnamed
// composite types are expanded structurally.
//
// Expansion policy:
//   - ptr/slice/array/chan -> prefix + Elem()
//   - map[K]V              -> "map[" + K + "]" + V
//   - func                 -> "func(" + params + ")" + results
//   - anonymous struct/interface -> t.String()
//
// Expansion stops after cfg.MaxUnwrap levels and the remainder renders as
// "...". If MaxUnwrap <= 0, DefaultMaxUnwrap is used.
func Render(t reflect.Type, cfg apis.Config, leaf Leaf) (string, error) {
	if t == nil {
		return "", ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	var b strings.Builder
	render(&b, t, maxUnwrap, leaf)
	return b.String(), nil
}

func render(b *strings.Builder, t reflect.Type, depth int, leaf Leaf) {
	if t.Name() != "" {
		b.WriteString(leaf(t))
		return
	}
	if depth <= 0 {
		b.WriteString("...")
		return
	}

	switch t.Kind() {
	case reflect.Pointer:
		b.WriteByte('*')
		render(b, t.Elem(), depth-1, leaf)

	case reflect.Slice:
		b.WriteString("[]")
		render(b, t.Elem(), depth-1, leaf)

	case reflect.Array:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len()))
		b.WriteByte(']')
		render(b, t.Elem(), depth-1, leaf)

	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			b.WriteString("<-chan ")
		case reflect.SendDir:
			b.WriteString("chan<- ")
		default:
			b.WriteString("chan ")
		}
		render(b, t.Elem(), depth-1, leaf)

	case reflect.Map:
		b.WriteString("map[")
		render(b, t.Key(), depth-1, leaf)
		b.WriteByte(']')
		render(b, t.Elem(), depth-1, leaf)

	case reflect.Func:
		b.WriteString("func(")
		for i := 0; i < t.NumIn(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if t.IsVariadic() && i == t.NumIn()-1 {
				b.WriteString("...")
				render(b, t.In(i).Elem(), depth-1, leaf)
				continue
			}
			render(b, t.In(i), depth-1, leaf)
		}
		b.WriteByte(')')
		switch t.NumOut() {
		case 0:
		case 1:
			b.WriteByte(' ')
			render(b, t.Out(0), depth-1, leaf)
		default:
			b.WriteString(" (")
			for i := 0; i < t.NumOut(); i++ {
				if i > 0 {
					b.WriteString(", ")
				}
				render(b, t.Out(i), depth-1, leaf)
			}
			b.WriteByte(')')
		}

	default:
		// anonymous struct or interface
		b.WriteString(t.String())
	}
}

// importPrefix matches the leading segments of an import path ("dirpx.dev/rfl/").
var importPrefix = regexp.MustCompile(`[A-Za-z0-9_.\-~]+/`)

// Shorten drops import path prefixes, keeping the package name:
// "dirpx.dev/rfl/smallvec.SmallVec[[4]int,int]" -> "smallvec.SmallVec[[4]int,int]".
func Shorten(path string) string {
	return importPrefix.ReplaceAllString(path, "")
}

// StripTypeParams removes the generic instantiation suffix: "T[int,string]" -> "T".
func StripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Shard spreads types over concurrent-map shards by their runtime name.
func Shard(t reflect.Type) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(t.String()))
	return h.Sum32()
}
