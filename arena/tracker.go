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

	"github.com/tidwall/btree"
	"go.uber.org/zap"
)

// Tracker is an [Allocator] that records every live block, so that leaks,
// double releases and releases of foreign memory can be detected.
//
// Blocks are keyed by address. Go's garbage collector does not move heap
// objects, and a tracked block is kept reachable by its owner until it is
// released, so addresses are stable for as long as they are tracked.
type Tracker struct {
	upstream Allocator
	logger   *zap.Logger

	mu         sync.Mutex
	live       btree.Map[uintptr, int] // Start address to size in bytes.
	empty      int                     // Live zero-byte blocks, which share an address.
	violations []Violation
}

var _ Allocator = (*Tracker)(nil)

// Violation describes a misuse of a [Tracker].
type Violation struct {
	Addr   uintptr
	Size   int
	Reason string
}

// String implements [fmt.Stringer].
func (v Violation) String() string {
	return fmt.Sprintf("%#x+%d: %s", v.Addr, v.Size, v.Reason)
}

// NewTracker wraps upstream. Violations are logged to logger at error level;
// logger may be nil.
//
// If upstream is nil, [Heap] is used.
func NewTracker(upstream Allocator, logger *zap.Logger) *Tracker {
	if upstream == nil {
		upstream = Heap{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{upstream: upstream, logger: logger}
}

// Allocate implements [Allocator].
func (t *Tracker) Allocate(size, align int, backing func() unsafe.Pointer) (unsafe.Pointer, error) {
	ptr, err := t.upstream.Allocate(size, align, backing)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if size == 0 {
		t.empty++
		return ptr, nil
	}
	t.live.Set(uintptr(ptr), size)
	return ptr, nil
}

// Release implements [Allocator].
//
// Misuse is recorded rather than reported to the caller, since releasing
// memory never fails. Misused blocks are not forwarded upstream.
func (t *Tracker) Release(ptr unsafe.Pointer, size int) {
	addr := uintptr(ptr)

	t.mu.Lock()
	if size == 0 {
		if t.empty == 0 {
			t.violate(addr, size, "release of untracked zero-size block")
			t.mu.Unlock()
			return
		}
		t.empty--
	} else {
		got, ok := t.live.Get(addr)
		switch {
		case !ok && t.interior(addr):
			t.violate(addr, size, "release of interior pointer")
			t.mu.Unlock()
			return
		case !ok:
			t.violate(addr, size, "release of untracked block (double release?)")
			t.mu.Unlock()
			return
		case got != size:
			t.violate(addr, size, fmt.Sprintf("release with wrong size, allocated %d", got))
			t.mu.Unlock()
			return
		}
		t.live.Delete(addr)
	}
	t.mu.Unlock()

	t.upstream.Release(ptr, size)
}

// Live returns the number of blocks that have been allocated but not yet
// released.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live.Len() + t.empty
}

// LiveBytes returns the total size of all live blocks.
func (t *Tracker) LiveBytes() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total int
	t.live.Scan(func(_ uintptr, size int) bool {
		total += size
		return true
	})
	return total
}

// Violations returns every misuse recorded so far.
func (t *Tracker) Violations() []Violation {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Violation(nil), t.violations...)
}

// Leaks logs every live block at warn level and returns how many there are.
// Call it once all owners are expected to have released their storage.
func (t *Tracker) Leaks() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.live.Scan(func(addr uintptr, size int) bool {
		t.logger.Warn("arena: leaked block", zap.Uintptr("addr", addr), zap.Int("size", size))
		return true
	})
	if t.empty > 0 {
		t.logger.Warn("arena: leaked zero-size blocks", zap.Int("count", t.empty))
	}
	return t.live.Len() + t.empty
}

// interior returns whether addr points inside, but not at the start of, a
// live block. Must be called with t.mu held.
func (t *Tracker) interior(addr uintptr) bool {
	var inside bool
	t.live.Descend(addr, func(start uintptr, size int) bool {
		inside = addr < start+uintptr(size)
		return false
	})
	return inside
}

// violate records a violation. Must be called with t.mu held.
func (t *Tracker) violate(addr uintptr, size int, reason string) {
	v := Violation{Addr: addr, Size: size, Reason: reason}
	t.violations = append(t.violations, v)
	t.logger.Error("arena: allocator misuse",
		zap.Uintptr("addr", addr),
		zap.Int("size", size),
		zap.String("reason", reason),
	)
}
