// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by TypeRegistry operations, grouped by category.
var (
	// ErrAlreadyRegistered is returned by Register when a type is already
	// bound and override was not requested.
	ErrAlreadyRegistered = errors.New("registry: type already registered")

	// ErrUnsupportedType is returned by Resolve when no user generator is
	// registered and structural synthesis cannot construct a leaf — §4.1.
	ErrUnsupportedType = errors.New("registry: unsupported type")

	// ErrNotRegistered is returned by Unregister for an unknown key.
	ErrNotRegistered = errors.New("registry: type not registered")
)

// UnsupportedTypeError carries the offending type's key alongside
// [ErrUnsupportedType] so callers can report which route/parameter failed.
type UnsupportedTypeError struct {
	Key string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("registry: unsupported type %q", e.Key)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// AlreadyRegisteredError carries the offending type's key.
type AlreadyRegisteredError struct {
	Key string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("registry: type %q already registered", e.Key)
}

func (e *AlreadyRegisteredError) Unwrap() error { return ErrAlreadyRegistered }
