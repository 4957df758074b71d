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

package bitsx_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bufbuild/vector/internal/ext/bitsx"
)

func TestPowerOfTwo(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.False(bitsx.IsPowerOfTwo(0))
	assert.True(bitsx.IsPowerOfTwo(1))
	assert.True(bitsx.IsPowerOfTwo(64))
	assert.False(bitsx.IsPowerOfTwo(65))

	assert.Equal(uint(1), bitsx.NextPowerOfTwo(0))
	assert.Equal(uint(8), bitsx.NextPowerOfTwo(4))
	assert.Equal(uint(8), bitsx.NextPowerOfTwo(5))
	assert.Equal(uint(0), bitsx.NextPowerOfTwo(math.MaxUint))
}

func TestCeilPowerOfTwo(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct{ in, want int }{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {7, 8}, {8, 8}, {1000, 1024},
	} {
		got, ok := bitsx.CeilPowerOfTwo(tt.in)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "CeilPowerOfTwo(%d)", tt.in)
	}

	_, ok := bitsx.CeilPowerOfTwo(math.MaxInt)
	assert.False(t, ok)
}
