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

import (
	"fmt"
	"sync"
	"unsafe"
)

// Limited is an [Allocator] that enforces a budget on the number of bytes
// that may be live at once.
type Limited struct {
	upstream Allocator

	mu           sync.Mutex
	budget, used int
	peak         int
}

var _ Allocator = (*Limited)(nil)

// NewLimited wraps upstream with a budget of the given number of bytes.
//
// If upstream is nil, [Heap] is used.
func NewLimited(upstream Allocator, budget int) *Limited {
	if upstream == nil {
		upstream = Heap{}
	}
	return &Limited{upstream: upstream, budget: budget}
}

// Allocate implements [Allocator].
func (l *Limited) Allocate(size, align int, backing func() unsafe.Pointer) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if size > l.budget-l.used {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrExhausted, size, l.used, l.budget)
	}
	ptr, err := l.upstream.Allocate(size, align, backing)
	if err != nil {
		return nil, err
	}
	l.used += size
	l.peak = max(l.peak, l.used)
	return ptr, nil
}

// Release implements [Allocator].
func (l *Limited) Release(ptr unsafe.Pointer, size int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.upstream.Release(ptr, size)
	l.used -= size
}

// InUse returns the number of bytes currently allocated through l.
func (l *Limited) InUse() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used
}

// Peak returns the high-water mark of [Limited.InUse].
func (l *Limited) Peak() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.peak
}
