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

package script

import (
	"errors"
	"fmt"
)

// ErrCopyFailed is returned by a [Probe] copy that was told to fail.
var ErrCopyFailed = errors.New("script: injected copy failure")

// Counters tallies the lifecycle events of a family of [Probe] values.
//
// Not safe for concurrent use.
type Counters struct {
	Copies   int // Successful copy constructions.
	Destroys int // Destructions.

	attempts int
	failAt   int // 0 means never.
}

// FailCopyAt arranges for the nth copy attempt from now to fail. n <= 0
// disarms the fault.
func (c *Counters) FailCopyAt(n int) {
	c.attempts = 0
	c.failAt = max(n, 0)
}

// Live returns the number of constructed probes that have not been destroyed.
func (c *Counters) Live() int {
	return c.Copies - c.Destroys
}

// String implements [fmt.Stringer].
func (c *Counters) String() string {
	return fmt.Sprintf("live=%d copies=%d destroys=%d", c.Live(), c.Copies, c.Destroys)
}

// Probe is an instrumented element: every copy and destruction of it is
// counted, and copies can be made to fail on demand.
type Probe struct {
	Value int

	counters *Counters
}

// NewProbe returns a probe reporting to c.
//
// The returned value is a temporary, not a constructed element: it is not
// counted as live.
func NewProbe(c *Counters, value int) Probe {
	return Probe{Value: value, counters: c}
}

// CloneInto implements vector.Cloner.
func (p *Probe) CloneInto(dst *Probe) error {
	if c := p.counters; c != nil {
		c.attempts++
		if c.attempts == c.failAt {
			c.failAt = 0
			return ErrCopyFailed
		}
		c.Copies++
	}
	*dst = *p
	return nil
}

// Destroy implements vector.Destroyer.
func (p *Probe) Destroy() {
	if c := p.counters; c != nil {
		c.Destroys++
	}
}
