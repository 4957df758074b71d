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

// Package arena provides raw element storage: blocks of slots that are
// obtained and released without constructing or destroying anything in them.
//
// Memory is always created by the Go runtime, typed, so that the garbage
// collector can see any pointers elements place into their slots. An
// [Allocator] only decides whether a block may be obtained and keeps whatever
// books it likes; this lets callers impose budgets, inject faults, track
// leaks, or export metrics without ever handing out untyped memory.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/bufbuild/vector/internal/ext/unsafex"
)

var (
	// ErrTooLarge is returned when a block's byte size cannot be represented,
	// or exceeds what an allocator is willing to hand out in one piece.
	ErrTooLarge = errors.New("arena: block too large")

	// ErrExhausted is returned by allocators that have run out of budget.
	ErrExhausted = errors.New("arena: out of memory")
)

// Allocator decides whether blocks of memory may be obtained.
//
// Allocators must be safe for concurrent use: a single allocator is often
// shared by many containers.
type Allocator interface {
	// Allocate obtains a block of size bytes, aligned to align.
	//
	// backing creates the memory; on success, Allocate must return exactly
	// the pointer backing returned. backing must be called at most once, and
	// not at all if Allocate fails. Allocate never partially succeeds.
	Allocate(size, align int, backing func() unsafe.Pointer) (unsafe.Pointer, error)

	// Release returns a block obtained from Allocate. It never fails.
	Release(ptr unsafe.Pointer, size int)
}

// AllocationError is returned when raw memory for a block could not be
// obtained.
type AllocationError struct {
	Count int   // The number of slots requested.
	Size  int   // The size of a single slot, in bytes.
	Err   error // The allocator's reason.
}

// Error implements [error].
func (e *AllocationError) Error() string {
	return fmt.Sprintf(
		"arena: cannot allocate %d slots of %d bytes: %v",
		e.Count, e.Size, e.Err,
	)
}

// Unwrap returns the allocator's reason.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// Block is a contiguous run of slots able to hold values of type T.
//
// The zero Block is the null block, which has no slots. Slots in a freshly
// allocated block hold zero values, which must not be treated as live
// elements.
type Block[T any] struct {
	slots []T // Invariant: len(slots) == cap(slots).
}

// Len returns the number of slots in this block.
func (b Block[T]) Len() int {
	return len(b.slots)
}

// Nil returns whether this is the null block.
func (b Block[T]) Nil() bool {
	return b.slots == nil
}

// Slots returns the slots of this block.
func (b Block[T]) Slots() []T {
	return b.slots
}

// Slot returns a pointer to the nth slot.
func (b Block[T]) Slot(n int) *T {
	return &b.slots[n]
}

// Allocate obtains a block of n slots from a. Nothing is constructed in the
// slots.
//
// Returns the null block for n == 0, without consulting a.
func Allocate[T any](a Allocator, n int) (Block[T], error) {
	if n == 0 {
		return Block[T]{}, nil
	}

	layout := unsafex.LayoutOf[T]()
	size, ok := layout.Bytes(n)
	if !ok {
		return Block[T]{}, &AllocationError{Count: n, Size: layout.Size, Err: ErrTooLarge}
	}

	ptr, err := a.Allocate(size, layout.Align, func() unsafe.Pointer {
		return unsafe.Pointer(unsafe.SliceData(make([]T, n)))
	})
	if err != nil {
		return Block[T]{}, &AllocationError{Count: n, Size: layout.Size, Err: err}
	}
	return Block[T]{slots: unsafe.Slice((*T)(ptr), n)}, nil
}

// Release returns b to a. This is a no-op on the null block.
//
// Every element constructed in b must have been destroyed already.
func Release[T any](a Allocator, b Block[T]) {
	if b.Nil() {
		return
	}
	size, _ := unsafex.LayoutOf[T]().Bytes(b.Len())
	a.Release(unsafe.Pointer(unsafe.SliceData(b.slots)), size)
}
