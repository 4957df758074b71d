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

import (
	"github.com/bufbuild/vector/arena"
	"github.com/bufbuild/vector/internal/ext/slicesx"
	"github.com/bufbuild/vector/internal/owner"
)

// Vector is a growable sequence of T stored in a single contiguous block.
//
// Slots [0, Len()) hold live elements; slots [Len(), Cap()) are raw storage
// and never hold a live element. The block is owned exclusively by one
// Vector; use [Vector.Clone] or [Vector.Assign] to copy one, and
// [Vector.Move] to transfer it.
//
// A zero Vector is empty and ready to use. A Vector must not be copied after
// first use.
type Vector[T any] struct {
	_ noCopy

	size  int            // Invariant: 0 <= size <= block.Len().
	block arena.Block[T] // Null iff the capacity is zero.

	alloc  arena.Allocator
	growth Growth
	owner  owner.Checker
}

// New returns an empty vector configured with the given options.
func New[T any](opts ...Option) *Vector[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &Vector[T]{alloc: o.allocator, growth: o.growth}
	if o.checkOwner {
		v.owner = owner.New()
	}
	return v
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots, live or raw.
func (v *Vector[T]) Cap() int {
	return v.block.Len()
}

// Empty returns whether v has no live elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// At returns a pointer to the ith element.
//
// Panics if i is out of range. The pointer is invalidated by any operation
// that reallocates or reorders the vector.
func (v *Vector[T]) At(i int) *T {
	return &v.live()[i]
}

// Get returns a copy of the ith element, or false if i is out of range.
func (v *Vector[T]) Get(i int) (T, bool) {
	return slicesx.Get(v.live(), i)
}

// Front returns a pointer to the first element. Panics if v is empty.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns a pointer to the last element. Panics if v is empty.
func (v *Vector[T]) Back() *T {
	return v.At(v.size - 1)
}

// Data returns the live elements as a slice that aliases v's storage.
//
// The slice has no spare capacity, so appending to it never writes into v's
// raw slots. It is invalidated by the same operations as [Vector.At].
func (v *Vector[T]) Data() []T {
	live := v.live()
	return live[:len(live):len(live)]
}

// IndexOf returns the position of the element p points to, or -1 if p does
// not point to a live element of v.
//
// This converts pointers obtained from [Vector.At], [Vector.Front] and the
// like back into positions for [Vector.Insert] and [Vector.Erase].
func (v *Vector[T]) IndexOf(p *T) int {
	return slicesx.PointerIndex(v.live(), p)
}

// Push appends a copy of value.
//
// If v is full, it first grows according to its growth policy. On failure v
// is unchanged.
func (v *Vector[T]) Push(value T) error {
	v.owner.Check("Push")

	if v.size < v.Cap() {
		if err := construct(v.block.Slot(v.size), &value); err != nil {
			return &ConstructionError{Index: v.size, Err: err}
		}
		v.size++
		return nil
	}

	n, err := v.nextCapacity()
	if err != nil {
		return err
	}
	block, err := v.growAndCopy(n)
	if err != nil {
		return err
	}
	if err := construct(block.Slot(v.size), &value); err != nil {
		destroyRange(block.Slots()[:v.size])
		arena.Release(v.allocator(), block)
		return &ConstructionError{Index: v.size, Err: err}
	}

	v.adopt(block)
	v.size++
	return nil
}

// Pop destroys the last element. Panics if v is empty.
func (v *Vector[T]) Pop() {
	v.owner.Check("Pop")

	last := v.size - 1
	destroy(v.At(last))
	v.size = last
}

// Reserve ensures that v has at least n slots, growing to exactly n if it
// has fewer. On failure v is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	v.owner.Check("Reserve")

	if n <= v.Cap() {
		return nil
	}
	block, err := v.growAndCopy(n)
	if err != nil {
		return err
	}
	v.adopt(block)
	return nil
}

// ShrinkToFit reduces the capacity to the number of live elements, releasing
// the storage entirely if v is empty. On failure v is unchanged.
func (v *Vector[T]) ShrinkToFit() error {
	v.owner.Check("ShrinkToFit")

	switch {
	case v.size == 0:
		arena.Release(v.allocator(), v.block)
		v.block = arena.Block[T]{}
	case v.size != v.Cap():
		block, err := v.growAndCopy(v.size)
		if err != nil {
			return err
		}
		v.adopt(block)
	}
	return nil
}

// Clear destroys every element, last first. The capacity is unchanged.
func (v *Vector[T]) Clear() {
	v.owner.Check("Clear")

	destroyRange(v.live())
	v.size = 0
}

// Destroy destroys every element, last first, and releases the storage.
//
// Afterwards v is empty, holds no storage, and may be reused.
func (v *Vector[T]) Destroy() {
	v.owner.Check("Destroy")

	destroyRange(v.live())
	arena.Release(v.allocator(), v.block)
	v.size = 0
	v.block = arena.Block[T]{}
	v.owner.Release()
}

// Swap exchanges the contents of v and other, including the allocators their
// storage came from. No element is copied.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.owner.Check("Swap")
	other.owner.Check("Swap")

	v.size, other.size = other.size, v.size
	v.block, other.block = other.block, v.block
	v.alloc, other.alloc = other.alloc, v.alloc
	v.growth, other.growth = other.growth, v.growth
}

// Clone returns a deep copy of v, with exactly as many slots as v has live
// elements. v is not modified, whether or not this succeeds.
//
// The copy shares v's configuration but not its owner.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	block, err := v.growAndCopy(v.size)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{
		size:   v.size,
		block:  block,
		alloc:  v.alloc,
		growth: v.growth,
		owner:  v.owner.Fork(),
	}, nil
}

// Move transfers v's elements and storage into a new vector and leaves v
// empty, holding no storage. No element is copied.
func (v *Vector[T]) Move() *Vector[T] {
	v.owner.Check("Move")

	moved := &Vector[T]{
		size:   v.size,
		block:  v.block,
		alloc:  v.alloc,
		growth: v.growth,
		owner:  v.owner.Fork(),
	}
	v.size = 0
	v.block = arena.Block[T]{}
	return moved
}

// Assign replaces v's elements with copies of src's, leaving v with exactly
// as many slots as src has live elements.
//
// The copy is built in full before v is touched, so on failure v is
// unchanged. Assigning a vector to itself does nothing.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	v.owner.Check("Assign")
	if v == src {
		return nil
	}

	block, err := copyToNewBlock(v.allocator(), src.size, src.live())
	if err != nil {
		return err
	}

	old := Vector[T]{size: src.size, block: block, alloc: v.alloc}
	v.size, old.size = old.size, v.size
	v.block, old.block = old.block, v.block
	old.Destroy()
	return nil
}

// MoveAssign exchanges the contents of v and src, as if by [Vector.Swap]:
// src receives v's previous elements, which it destroys whenever it is
// destroyed. Move-assigning a vector to itself does nothing.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if v == src {
		v.owner.Check("MoveAssign")
		return
	}
	v.Swap(src)
}

// live returns the live elements.
func (v *Vector[T]) live() []T {
	return v.block.Slots()[:v.size]
}

func (v *Vector[T]) allocator() arena.Allocator {
	if v.alloc == nil {
		return arena.Heap{}
	}
	return v.alloc
}

// noCopy makes go vet's copylocks check flag copies of a [Vector].
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
