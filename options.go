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

import "github.com/bufbuild/vector/arena"

// Option configures a [Vector] created with [New].
type Option func(*options)

type options struct {
	// The allocator storage is obtained from. If nil, [arena.Heap] is used.
	allocator arena.Allocator
	// The growth policy used by Push. If nil, [DefaultGrowth] is used.
	growth Growth
	// Whether to detect mutation from goroutines other than the owner's.
	checkOwner bool
}

// WithAllocator sets the allocator the vector obtains its storage from.
func WithAllocator(a arena.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithGrowth sets the growth policy the vector uses when an append finds it
// full. It does not affect [Vector.Reserve] or [Vector.ShrinkToFit], which
// always allocate exactly what they are asked for.
func WithGrowth(g Growth) Option {
	return func(o *options) {
		o.growth = g
	}
}

// WithOwnerCheck makes the vector panic when it is mutated from a goroutine
// other than the one that first mutated it.
//
// This is a debugging aid: a Vector is not safe for concurrent mutation, and
// this check catches accidental sharing early, at the cost of looking up the
// current goroutine on every mutation.
func WithOwnerCheck() Option {
	return func(o *options) {
		o.checkOwner = true
	}
}
