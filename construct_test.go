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
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/vector/arena"
)

var errRefused = errors.New("refused")

// journaled records its copies and destructions in a shared journal.
type journaled struct {
	id      int
	journal *[]string
	refuse  bool // Copies of this element fail.
}

func (j *journaled) CloneInto(dst *journaled) error {
	if j.refuse {
		*j.journal = append(*j.journal, fmt.Sprint("refuse ", j.id))
		return errRefused
	}
	*j.journal = append(*j.journal, fmt.Sprint("copy ", j.id))
	*dst = *j
	return nil
}

func (j *journaled) Destroy() {
	*j.journal = append(*j.journal, fmt.Sprint("destroy ", j.id))
}

func TestDestroyRangeReverse(t *testing.T) {
	t.Parallel()

	var journal []string
	live := []journaled{{0, &journal, false}, {1, &journal, false}, {2, &journal, false}}
	destroyRange(live)

	assert.Equal(t, []string{"destroy 2", "destroy 1", "destroy 0"}, journal)
	assert.Equal(t, make([]journaled, 3), live, "destroyed slots are zeroed")
}

func TestCopyConstructRangeRollback(t *testing.T) {
	t.Parallel()

	var journal []string
	src := []journaled{{0, &journal, false}, {1, &journal, false}, {2, &journal, true}, {3, &journal, false}}
	dst := make([]journaled, 5)

	err := copyConstructRange(dst, src)
	var cerr *ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 2, cerr.Index)
	assert.ErrorIs(t, err, errRefused)
	assert.EqualError(t, err, "vector: constructing element 2: refused")

	assert.Equal(t, []string{
		"copy 0", "copy 1", "refuse 2",
		"destroy 1", "destroy 0",
	}, journal)
	assert.Equal(t, make([]journaled, 5), dst, "dst is left raw")
}

func TestConstructPlain(t *testing.T) {
	t.Parallel()

	var dst [2]string
	src := "hello"
	require.NoError(t, construct(&dst[0], &src))
	assert.Equal(t, "hello", dst[0])

	destroy(&dst[0])
	assert.Empty(t, dst[0])
}

func TestGrowthOrderOfEvents(t *testing.T) {
	t.Parallel()

	var journal []string
	var v Vector[journaled]
	for i := range 2 {
		require.NoError(t, v.Push(journaled{id: i, journal: &journal}))
	}
	journal = nil

	// Growing from 1 to 3 slots happened above; growing from 3 to 7 copies
	// the old elements before the new one, and destroys the old elements
	// only after the new block is complete.
	require.NoError(t, v.Push(journaled{id: 2, journal: &journal}))
	require.NoError(t, v.Push(journaled{id: 3, journal: &journal}))
	assert.Equal(t, []string{
		"copy 2",
		"copy 0", "copy 1", "copy 2", "copy 3",
		"destroy 2", "destroy 1", "destroy 0",
	}, journal)
	assert.Equal(t, 7, v.Cap())

	journal = nil
	v.At(1).refuse = true
	require.ErrorIs(t, v.Reserve(10), errRefused)
	assert.Equal(t, []string{
		"copy 0", "refuse 1",
		"destroy 0",
	}, journal, "a failed copy into a fresh block is unwound")
	assert.Equal(t, 7, v.Cap())
	assert.Equal(t, 4, v.Len())
}

func TestNextCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		growth Growth
		cap    int
		want   int
	}{
		{nil, 0, 1},
		{nil, 1, 3},
		{nil, 7, 15},
		{PowerOfTwoGrowth, 0, 1},
		{PowerOfTwoGrowth, 5, 8},
		{PowerOfTwoGrowth, 8, 16},
		{func(c int) int { return c - 1 }, 4, 5},
	}
	for _, tt := range tests {
		block, err := arena.Allocate[byte](arena.Heap{}, tt.cap)
		require.NoError(t, err)
		v := Vector[byte]{block: block, growth: tt.growth}
		got, err := v.nextCapacity()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "cap=%d", tt.cap)
	}

	assert.Equal(t, math.MaxInt, DefaultGrowth(1<<62))
	assert.Equal(t, math.MaxInt, PowerOfTwoGrowth(1<<62))
}
