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

// Package owner detects values that are mutated from more than one goroutine.
package owner

import (
	"fmt"

	"github.com/petermattis/goid"
)

// Checker records which goroutine owns a value.
//
// A disabled Checker does nothing. The zero value is disabled.
type Checker struct {
	enabled bool
	id      int64 // 0 means unbound.
}

// New returns an enabled, unbound Checker.
func New() Checker {
	return Checker{enabled: true}
}

// Enabled returns whether c performs any checks.
func (c *Checker) Enabled() bool {
	return c.enabled
}

// Check binds c to the calling goroutine if it is unbound, and panics if it
// is bound to a different goroutine. what names the operation, for the panic
// message.
func (c *Checker) Check(what string) {
	if !c.enabled {
		return
	}
	id := goid.Get()
	if c.id == 0 {
		c.id = id
		return
	}
	if c.id != id {
		panic(fmt.Sprintf(
			"owner: %s called on goroutine %d, but the value is owned by goroutine %d",
			what, id, c.id,
		))
	}
}

// Rebind transfers ownership to the calling goroutine.
func (c *Checker) Rebind() {
	if c.enabled {
		c.id = goid.Get()
	}
}

// Fork returns an unbound Checker that is enabled iff c is.
func (c *Checker) Fork() Checker {
	return Checker{enabled: c.enabled}
}

// Release unbinds c, so that the next goroutine to call [Checker.Check]
// becomes the owner.
func (c *Checker) Release() {
	c.id = 0
}
