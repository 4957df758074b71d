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

package arena_test

import (
	"math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/vector/arena"
)

func TestAllocate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	b, err := arena.Allocate[string](arena.Heap{}, 0)
	assert.NoError(err)
	assert.True(b.Nil())
	assert.Equal(0, b.Len())
	arena.Release(arena.Heap{}, b) // No-op.

	b, err = arena.Allocate[string](arena.Heap{}, 5)
	require.NoError(t, err)
	assert.False(b.Nil())
	assert.Equal(5, b.Len())
	assert.Len(b.Slots(), 5)
	assert.Same(&b.Slots()[3], b.Slot(3))
	arena.Release(arena.Heap{}, b)
}

func TestAllocateTooLarge(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := arena.Allocate[[64]byte](arena.Heap{}, math.MaxInt/8)
	var allocErr *arena.AllocationError
	require.ErrorAs(t, err, &allocErr)
	assert.ErrorIs(err, arena.ErrTooLarge)
	assert.Equal(math.MaxInt/8, allocErr.Count)
	assert.Equal(64, allocErr.Size)

	_, err = arena.Allocate[byte](arena.Heap{}, arena.MaxSize+1)
	assert.ErrorIs(err, arena.ErrTooLarge)

	_, err = arena.Allocate[byte](arena.Heap{}, -1)
	assert.ErrorIs(err, arena.ErrTooLarge)
}

func TestZeroSize(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	tr := arena.NewTracker(nil, nil)
	b, err := arena.Allocate[struct{}](tr, 16)
	require.NoError(t, err)
	assert.Equal(16, b.Len())
	assert.Equal(1, tr.Live())
	assert.Equal(0, tr.LiveBytes())

	arena.Release(tr, b)
	assert.Equal(0, tr.Live())
	assert.Empty(tr.Violations())
}

func TestLimited(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	l := arena.NewLimited(nil, 64)
	a, err := arena.Allocate[int64](l, 4)
	require.NoError(t, err)
	assert.Equal(32, l.InUse())

	b, err := arena.Allocate[int64](l, 4)
	require.NoError(t, err)
	assert.Equal(64, l.InUse())

	_, err = arena.Allocate[int64](l, 1)
	assert.ErrorIs(err, arena.ErrExhausted)
	assert.Equal(64, l.InUse())

	arena.Release(l, a)
	assert.Equal(32, l.InUse())
	c, err := arena.Allocate[int32](l, 8)
	require.NoError(t, err)

	arena.Release(l, b)
	arena.Release(l, c)
	assert.Equal(0, l.InUse())
	assert.Equal(64, l.Peak())
}

func TestFaulty(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	f := arena.NewFaulty(nil)
	for range 3 {
		_, err := arena.Allocate[int](f, 1)
		assert.NoError(err)
	}

	f.FailAt(2)
	_, err := arena.Allocate[int](f, 1)
	assert.NoError(err)
	_, err = arena.Allocate[int](f, 1)
	assert.ErrorIs(err, arena.ErrInjected)
	_, err = arena.Allocate[int](f, 1)
	assert.NoError(err, "faults fire once")

	f.FailAt(1)
	f.FailAt(0)
	_, err = arena.Allocate[int](f, 1)
	assert.NoError(err)
}

func TestFaultyDoesNotCallBacking(t *testing.T) {
	t.Parallel()

	f := arena.NewFaulty(nil)
	f.FailAt(1)
	called := false
	_, err := f.Allocate(8, 8, func() unsafe.Pointer {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, arena.ErrInjected)
	assert.False(t, called)
}
