// Copyright 2025 walteh LLC
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

// Package fault defines the error taxonomy shared by the enumerate and
// transfer packages.
package fault

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidArgument is matched by errors raised before any filesystem
	// access when a parameter fails its precondition.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIO is matched by every underlying filesystem failure.
	ErrIO = errors.New("io error")

	// ErrDestinationExists is matched when the pre-flight gate of a transfer
	// finds destination paths that already exist.
	ErrDestinationExists = errors.New("destination exists")
)

// 🚫 InvalidArgument returns an error wrapping ErrInvalidArgument
func InvalidArgument(format string, args ...any) error {
	return errors.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// 💾 IOError records a failed filesystem operation on a path
type IOError struct {
	Op   string // operation that failed (walk, stat, mkdir, open, create, copy)
	Path string // path the operation was applied to
	Err  error  // underlying error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO so callers can match the category without a type assertion.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// 💾 IO wraps err in an IOError, returning nil when err is nil
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// ⚠️ ConflictError lists the destination paths that blocked a transfer
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	switch len(e.Paths) {
	case 0:
		return ErrDestinationExists.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrDestinationExists, e.Paths[0])
	default:
		return fmt.Sprintf("%s: %s and %d more", ErrDestinationExists, e.Paths[0], len(e.Paths)-1)
	}
}

// Is reports ErrDestinationExists.
func (e *ConflictError) Is(target error) bool {
	return target == ErrDestinationExists
}
