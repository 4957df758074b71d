// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vector

import "fmt"

// Cloner is implemented by pointers to element types whose copies may fail,
// such as elements that own resources.
//
// CloneInto constructs a copy of the receiver in dst, which is a raw slot: it
// holds the zero value and must not be treated as a live element. If
// CloneInto returns an error, it must leave dst raw, i.e. it must release
// anything it already acquired for the copy.
//
// Element types that do not implement Cloner are copied by assignment, which
// cannot fail.
type Cloner[T any] interface {
	CloneInto(dst *T) error
}

// Destroyer is implemented by pointers to element types that must be torn
// down explicitly before their slot is reused or released.
//
// Destroy must not panic.
type Destroyer interface {
	Destroy()
}

// ConstructionError is returned when copying an element into a slot fails.
//
// By the time a ConstructionError is returned, every element constructed
// by the failed operation has already been destroyed again.
type ConstructionError struct {
	Index int   // The slot whose construction failed.
	Err   error // The error returned by [Cloner.CloneInto].
}

// Error implements [error].
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("vector: constructing element %d: %v", e.Index, e.Err)
}

// Unwrap returns the element's own error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// construct copy-constructs *src into the raw slot dst.
func construct[T any](dst, src *T) error {
	if c, ok := any(src).(Cloner[T]); ok {
		return c.CloneInto(dst)
	}
	*dst = *src
	return nil
}

// destroy tears down the live element at p, leaving a raw slot behind.
func destroy[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

// destroyRange destroys every element of live, highest index first, so that
// a range built low-to-high is unwound in exactly the opposite order.
func destroyRange[T any](live []T) {
	for i := len(live) - 1; i >= 0; i-- {
		destroy(&live[i])
	}
}

// copyConstructRange copy-constructs src[i] into dst[i] for every i, lowest
// index first.
//
// If constructing dst[i] fails, dst[:i] is destroyed (in reverse) before the
// failure is returned, so dst is left entirely raw.
func copyConstructRange[T any](dst, src []T) error {
	dst = dst[:len(src)]
	for i := range src {
		if err := construct(&dst[i], &src[i]); err != nil {
			destroyRange(dst[:i])
			return &ConstructionError{Index: i, Err: err}
		}
	}
	return nil
}
