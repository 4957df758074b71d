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
	"fmt"

	"github.com/bufbuild/vector/internal/ext/slicesx"
)

// Insert inserts a copy of value at position pos, shifting the elements at
// pos and after it up by one. Returns pos, the position of the new element.
//
// value is appended and then rotated into place by adjacent swaps, so the
// append is the only step that can fail; on failure v is unchanged.
// Inserting at v.Len() is an append.
//
// Panics if pos is not in [0, v.Len()].
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	if pos < 0 || pos > v.size {
		panic(fmt.Sprintf("vector: insert position %d out of range [0, %d]", pos, v.size))
	}

	if err := v.Push(value); err != nil {
		return pos, err
	}
	slicesx.RotateDown(v.live(), pos)
	return pos, nil
}

// Erase destroys the element at pos, shifting the elements after it down by
// one. Returns pos, which is now the position of the element that followed
// the erased one (or v.Len(), if there was none).
//
// Panics if pos is not in [0, v.Len()).
func (v *Vector[T]) Erase(pos int) int {
	return v.EraseRange(pos, pos+1)
}

// EraseRange destroys the elements in [first, last), shifting the elements
// after them down to close the gap. Returns first, which is now the position
// of the element that followed the erased range (or v.Len(), if there was
// none). Erasing an empty range does nothing.
//
// The surviving tail is moved by pairwise swaps, so this cannot fail.
//
// Panics if [first, last) is not a subrange of [0, v.Len()].
func (v *Vector[T]) EraseRange(first, last int) int {
	v.owner.Check("EraseRange")

	live := v.live()
	if first < 0 || first > last || last > len(live) {
		panic(fmt.Sprintf("vector: erase range [%d, %d) out of range [0, %d]", first, last, len(live)))
	}
	if first == last {
		return first
	}

	n := slicesx.SwapShift(live, first, last)
	destroyRange(live[n:])
	v.size = n
	return first
}
