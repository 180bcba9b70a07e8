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

package apis

// Config carries read-only knobs that influence path derivation and debug
// rendering. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// MaxUnwrap limits how deep composite types (ptr/slice/array/chan/map/func)
	// are expanded when deriving a type path. Deeper levels render as "...".
	MaxUnwrap int

	// StripTypeParams drops generic instantiation arguments from derived
	// paths: "pkg.T[int]" becomes "pkg.T".
	StripTypeParams bool

	// PrettyDebug renders lists one element per line, indented, instead of
	// the compact "[a, b, c]" form.
	PrettyDebug bool
}
