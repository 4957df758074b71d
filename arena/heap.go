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

package arena

import "unsafe"

// MaxSize is the largest block, in bytes, that [Heap] will hand out.
//
// This mirrors the Go runtime's own limit on a single allocation on 64-bit
// platforms; larger requests would crash the process instead of failing.
const MaxSize = 1 << 47

// Heap is an [Allocator] backed directly by the Go heap.
//
// Heap keeps no state; the zero value is ready to use.
type Heap struct{}

var _ Allocator = Heap{}

// Allocate implements [Allocator].
func (Heap) Allocate(size, _ int, backing func() unsafe.Pointer) (unsafe.Pointer, error) {
	if size < 0 || uint64(size) > MaxSize {
		return nil, ErrTooLarge
	}
	return backing(), nil
}

// Release implements [Allocator]. The garbage collector reclaims the block
// once nothing refers to it.
func (Heap) Release(unsafe.Pointer, int) {}
