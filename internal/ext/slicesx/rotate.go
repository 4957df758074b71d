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

package slicesx

// RotateDown moves the last element of s down to index to, shifting every
// element in s[to:len(s)-1] up by one.
//
// Only adjacent swaps are performed, so no element is ever copied or
// duplicated; the elements are merely permuted.
//
// Panics if to is out of range.
func RotateDown[S ~[]E, E any](s S, to int) {
	_ = s[to]
	for i := len(s) - 1; i > to; i-- {
		Swap(s, i, i-1)
	}
}

// SwapShift closes the gap s[first:last] by swapping each element of the
// tail s[last:] into it, pairwise, in order.
//
// Returns the index of the first slot past the surviving elements, i.e.
// len(s) - (last - first). After SwapShift returns, s[:n] holds the survivors
// in their original relative order and s[n:] holds the elements that were
// in the gap, in unspecified order, ready to be discarded.
//
// Panics if first > last or either is out of range.
func SwapShift[S ~[]E, E any](s S, first, last int) (n int) {
	_ = s[first:last:len(s)]
	for last < len(s) {
		Swap(s, first, last)
		first++
		last++
	}
	return first
}
