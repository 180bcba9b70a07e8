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
	"encoding/binary"
	"hash/maphash"
	"reflect"
)

// ReflectHasher lets an opaque type take part in reflected hashing.
type ReflectHasher interface {
	ReflectHash() (uint64, bool)
}

// seed is fixed for the process so equal values hash equally everywhere.
var seed = maphash.MakeSeed()

func newHasher(t reflect.Type) *maphash.Hash {
	h := new(maphash.Hash)
	h.SetSeed(seed)
	maphash.WriteComparable(h, t)
	return h
}

func writeUint64(h *maphash.Hash, x uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	_, _ = h.Write(b[:])
}

// hashOpaque hashes scalars whose equality is total. Floats, slices, maps
// and the like report false.
func hashOpaque(v any) (uint64, bool) {
	if rh, ok := v.(ReflectHasher); ok {
		return rh.ReflectHash()
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0, false
	}
	h := newHasher(rv.Type())
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			writeUint64(h, 1)
		} else {
			writeUint64(h, 0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(h, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(h, rv.Uint())
	case reflect.String:
		_, _ = h.WriteString(rv.String())
	default:
		return 0, false
	}
	return h.Sum64(), true
}
