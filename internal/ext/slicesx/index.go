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

import (
	"unsafe"

	"github.com/bufbuild/vector/internal/ext/unsafex"
)

// PointerIndex returns an integer n such that p == &s[n], or -1 if there is
// no such integer.
//
//go:nosplit
func PointerIndex[S ~[]E, E any](s S, p *E) int {
	a := unsafe.Pointer(p)
	b := unsafe.Pointer(unsafe.SliceData(s))

	diff := uintptr(a) - uintptr(b)
	size := unsafex.LayoutOf[E]().Size
	byteLen := len(s) * size

	// A single unsigned comparison rejects a diff past the end of s, a
	// subtraction that wrapped around (p before s), an empty s or a
	// zero-sized E (byteLen == 0), and a nil p.
	if diff >= uintptr(byteLen) {
		return -1
	}

	// diff is always a multiple of size: a *E cannot straddle two elements
	// of a []E without abusing package unsafe.
	return int(diff) / size
}
