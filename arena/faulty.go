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
	"errors"
	"sync"
	"unsafe"
)

// ErrInjected is the failure reported by a [Faulty] allocator.
var ErrInjected = errors.New("arena: injected allocation failure")

// Faulty is an [Allocator] that fails on request. It is intended for
// exercising failure paths in tests.
type Faulty struct {
	upstream Allocator

	mu     sync.Mutex
	calls  int
	failAt int // 0 means never.
}

var _ Allocator = (*Faulty)(nil)

// NewFaulty wraps upstream. The result does not fail until [Faulty.FailAt]
// is called.
//
// If upstream is nil, [Heap] is used.
func NewFaulty(upstream Allocator) *Faulty {
	if upstream == nil {
		upstream = Heap{}
	}
	return &Faulty{upstream: upstream}
}

// FailAt arranges for the nth call to Allocate from now to fail with
// [ErrInjected]. Calls before and after it are forwarded upstream. n <= 0
// disarms the fault.
func (f *Faulty) FailAt(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = 0
	f.failAt = max(n, 0)
}

// Allocate implements [Allocator].
func (f *Faulty) Allocate(size, align int, backing func() unsafe.Pointer) (unsafe.Pointer, error) {
	f.mu.Lock()
	f.calls++
	fail := f.calls == f.failAt
	if fail {
		f.failAt = 0
	}
	f.mu.Unlock()

	if fail {
		return nil, ErrInjected
	}
	return f.upstream.Allocate(size, align, backing)
}

// Release implements [Allocator].
func (f *Faulty) Release(ptr unsafe.Pointer, size int) {
	f.upstream.Release(ptr, size)
}
