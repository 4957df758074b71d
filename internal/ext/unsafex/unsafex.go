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

// package unsafex contains extensions to Go's package unsafe.
//
// Importing this package should be treated as equivalent to importing unsafe.
package unsafex

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints" //nolint:exptostd // cmp has no Integer.
)

// Int is any integer type that can be used as an index or a count.
type Int = constraints.Integer

// Layout is the layout of a type.
//
// This is a more convenient abstraction that manipulating the size and
// alignment separately.
type Layout struct {
	Size, Align int
}

// LayoutOf returns the layout of some type.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{
		Size:  int(unsafe.Sizeof(v)),
		Align: int(unsafe.Alignof(v)),
	}
}

// Bytes returns the number of bytes needed to hold n values of this layout.
//
// Returns false if n is negative or the product overflows an int.
func (l Layout) Bytes(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	if l.Size != 0 && n > math.MaxInt/l.Size {
		return 0, false
	}
	return n * l.Size, true
}

// Index is like [unsafe.Add], but it operates on a typed pointer and scales the
// offset by that type's size, similar to pointer arithmetic in Rust or C.
//
// This function has the same safety caveats as [unsafe.Add].
//
//go:nosplit
func Index[T any, I Int](p *T, idx I) *T {
	raw := unsafe.Pointer(p)
	raw = unsafe.Add(raw, int(idx)*LayoutOf[T]().Size)
	return (*T)(raw)
}
