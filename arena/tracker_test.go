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
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bufbuild/vector/arena"
)

func TestTracker(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	core, logs := observer.New(zap.WarnLevel)
	tr := arena.NewTracker(nil, zap.New(core))

	a, err := arena.Allocate[int64](tr, 4)
	require.NoError(t, err)
	b, err := arena.Allocate[int64](tr, 2)
	require.NoError(t, err)
	assert.Equal(2, tr.Live())
	assert.Equal(48, tr.LiveBytes())

	arena.Release(tr, a)
	assert.Equal(1, tr.Live())
	assert.Empty(tr.Violations())

	arena.Release(tr, a)
	require.Len(t, tr.Violations(), 1)
	assert.Contains(tr.Violations()[0].Reason, "double release")

	tr.Release(unsafe.Pointer(b.Slot(1)), 8)
	require.Len(t, tr.Violations(), 2)
	assert.Equal("release of interior pointer", tr.Violations()[1].Reason)

	tr.Release(unsafe.Pointer(b.Slot(0)), 8)
	require.Len(t, tr.Violations(), 3)
	assert.Contains(tr.Violations()[2].Reason, "wrong size")
	assert.Equal(1, tr.Live(), "misuse does not release anything")

	assert.Equal(3, logs.FilterMessage("arena: allocator misuse").Len())

	assert.Equal(1, tr.Leaks())
	assert.Equal(1, logs.FilterMessage("arena: leaked block").Len())

	arena.Release(tr, b)
	assert.Equal(0, tr.Leaks())
	assert.Equal(1, logs.FilterMessage("arena: leaked block").Len())
}

func TestTrackerForwardsFailures(t *testing.T) {
	t.Parallel()

	f := arena.NewFaulty(nil)
	tr := arena.NewTracker(f, nil)
	f.FailAt(1)

	_, err := arena.Allocate[byte](tr, 10)
	assert.ErrorIs(t, err, arena.ErrInjected)
	assert.Equal(t, 0, tr.Live())
}
