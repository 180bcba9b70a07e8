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
	"fmt"
)

// ErrContractViolation is wrapped by every panic raised for a broken
// container contract (out-of-range insert or remove, an element that cannot
// be converted to the item type, a non-list descriptor on a list).
var ErrContractViolation = errors.New("rfl: contract violation")

// ApplyErrorKind classifies an ApplyError.
type ApplyErrorKind uint8

const (
	// MismatchedKinds means the source is not of the target's kind.
	MismatchedKinds ApplyErrorKind = iota + 1
	// MismatchedTypes means the source kind matches but its type does not.
	MismatchedTypes
)

func (k ApplyErrorKind) String() string {
	switch k {
	case MismatchedKinds:
		return "mismatched kinds"
	case MismatchedTypes:
		return "mismatched types"
	default:
		return "unknown"
	}
}

// ApplyError is returned by TryApply and Set. The target may be partially
// updated when it is returned from a list apply.
type ApplyError struct {
	Kind     ApplyErrorKind
	FromKind Kind
	ToKind   Kind
	FromType string
	ToType   string
}

func (e *ApplyError) Error() string {
	switch e.Kind {
	case MismatchedKinds:
		return fmt.Sprintf("rfl: attempted to apply %s to %s", e.FromKind, e.ToKind)
	case MismatchedTypes:
		return fmt.Sprintf("rfl: attempted to apply type %q to type %q", e.FromType, e.ToType)
	default:
		return "rfl: apply failed"
	}
}

// MismatchedKindsError reports that from is not of kind to.
func MismatchedKindsError(from Value, to Kind) *ApplyError {
	e := &ApplyError{Kind: MismatchedKinds, ToKind: to}
	if from != nil {
		e.FromKind = from.Kind()
		e.FromType = from.TypePath()
	}
	return e
}

// MismatchedTypesError reports that from cannot be applied to to.
func MismatchedTypesError(from, to Value) *ApplyError {
	e := &ApplyError{Kind: MismatchedTypes, ToKind: to.Kind(), ToType: to.TypePath()}
	if from != nil {
		e.FromKind = from.Kind()
		e.FromType = from.TypePath()
	}
	return e
}

// ContractViolation logs a contract violation at error level and returns
// it as an error wrapping ErrContractViolation. Containers outside this
// package panic with it for the breaches List documents as fatal.
func ContractViolation(format string, args ...any) error {
	return violation(fmt.Errorf("%w: "+format, append([]any{ErrContractViolation}, args...)...))
}

// Fatalf panics with ContractViolation(format, args...).
func Fatalf(format string, args ...any) {
	panic(ContractViolation(format, args...))
}

func fatal(err error) {
	panic(violation(err))
}

func violation(err error) error {
	if !errors.Is(err, ErrContractViolation) {
		err = fmt.Errorf("%w: %w", ErrContractViolation, err)
	}
	l := Logger()
	l.Error().Err(err).Msg("contract violation")
	return err
}
