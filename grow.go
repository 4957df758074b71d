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
	"math"

	"github.com/bufbuild/vector/arena"
	"github.com/bufbuild/vector/internal/ext/bitsx"
	"github.com/bufbuild/vector/internal/ext/unsafex"
)

// Growth computes the capacity a full vector grows to when an element is
// appended to it.
//
// A result that is not strictly greater than the current capacity is
// replaced with the current capacity plus one.
type Growth func(capacity int) int

// DefaultGrowth grows a vector of capacity c to 2c+1.
//
// The +1 makes growth from zero possible, and doubling makes appending N
// elements cost O(N) copies in total.
func DefaultGrowth(c int) int {
	if c > (math.MaxInt-1)/2 {
		return math.MaxInt
	}
	return 2*c + 1
}

// PowerOfTwoGrowth grows a vector to the smallest power of two larger than
// its current capacity.
func PowerOfTwoGrowth(c int) int {
	n, ok := bitsx.CeilPowerOfTwo(c + 1)
	if !ok {
		return math.MaxInt
	}
	return n
}

// nextCapacity returns the capacity to grow a full vector to.
func (v *Vector[T]) nextCapacity() (int, error) {
	c := v.Cap()
	if c == math.MaxInt {
		return 0, &arena.AllocationError{
			Count: c,
			Size:  unsafex.LayoutOf[T]().Size,
			Err:   arena.ErrTooLarge,
		}
	}

	growth := v.growth
	if growth == nil {
		growth = DefaultGrowth
	}
	if n := growth(c); n > c {
		return n, nil
	}
	return c + 1, nil
}

// growAndCopy returns a new block of n slots holding copies of the live
// elements. n must be at least v.Len().
//
// v is not modified, whether or not this succeeds.
func (v *Vector[T]) growAndCopy(n int) (arena.Block[T], error) {
	return copyToNewBlock(v.allocator(), n, v.live())
}

// adopt destroys the live elements, releases the current block and installs
// block in its place. block must already hold copies of the live elements.
//
// adopt cannot fail; it is the commit point of every reallocation.
func (v *Vector[T]) adopt(block arena.Block[T]) {
	destroyRange(v.live())
	arena.Release(v.allocator(), v.block)
	v.block = block
}

// copyToNewBlock allocates n slots from a and copy-constructs live into the
// first len(live) of them.
//
// On failure, anything constructed is destroyed and the block is released.
func copyToNewBlock[T any](a arena.Allocator, n int, live []T) (arena.Block[T], error) {
	block, err := arena.Allocate[T](a, n)
	if err != nil {
		return arena.Block[T]{}, err
	}
	if err := copyConstructRange(block.Slots(), live); err != nil {
		arena.Release(a, block)
		return arena.Block[T]{}, err
	}
	return block, nil
}
