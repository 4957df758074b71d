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

// Package bitsx contains extensions to Go's package math/bits.
package bitsx

import (
	"math"
	"math/bits"
)

// IsPowerOfTwo returns whether n is a power of 2.
func IsPowerOfTwo(n uint) bool {
	return bits.OnesCount(n) == 1
}

// NextPowerOfTwo returns the smallest power of 2 strictly greater than n, or
// zero if there is no such power of 2 representable as a uint.
func NextPowerOfTwo(n uint) uint {
	// For n == 0, LeadingZeros returns 64, and Go does not mask the shift
	// amount, so MaxUint >> 64 is zero and the result is 1.
	//
	// If the highest bit of n is set, the addition overflows back to 0.
	return uint(math.MaxUint)>>uint(bits.LeadingZeros(n)) + 1
}

// CeilPowerOfTwo returns the smallest power of 2 that is at least n.
//
// Returns false if that power of 2 does not fit in an int.
func CeilPowerOfTwo(n int) (int, bool) {
	if n <= 1 {
		return 1, true
	}
	if IsPowerOfTwo(uint(n)) {
		return n, true
	}
	p := NextPowerOfTwo(uint(n))
	if p == 0 || p > math.MaxInt {
		return 0, false
	}
	return int(p), true
}
