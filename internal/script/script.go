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

// Package script replays scripted operation sequences against a
// [vector.Vector] of instrumented elements and records a trace of the
// results.
//
// A script is a YAML document:
//
//	options:
//	  growth: pow2 # Or "default".
//	  budget: 256  # Byte budget for storage; 0 means unlimited.
//	ops:
//	  - push: [1, 2, 3]
//	  - insert: {at: 1, value: 9}
//	  - erase_range: [0, 2]
//	  - fail_copy: 2
//	  - reserve: 10
//
// Every op produces one trace line per step, showing its outcome followed by
// the length, capacity and contents of the vector. The last line reports
// whether every constructed element and every block was given back.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/vector"
	"github.com/bufbuild/vector/arena"
)

// Script is a parsed script.
type Script struct {
	Options Options `yaml:"options"`
	Ops     []Op    `yaml:"ops"`
}

// Options configures the vector a script runs against.
type Options struct {
	Growth string `yaml:"growth"` // "default", "pow2", or empty.
	Budget int    `yaml:"budget"` // In bytes; 0 means unlimited.
}

// Op is a single step of a script. Exactly one field must be set.
type Op struct {
	Push       []int   `yaml:"push,flow"`
	Pop        int     `yaml:"pop"` // The number of elements to pop.
	Insert     *Insert `yaml:"insert"`
	Erase      *int    `yaml:"erase"`
	EraseRange []int   `yaml:"erase_range,flow"` // [first, last].
	Reserve    *int    `yaml:"reserve"`
	Shrink     bool    `yaml:"shrink"`
	Clear      bool    `yaml:"clear"`
	Clone      bool    `yaml:"clone"`
	AssignSelf bool    `yaml:"assign_self"`
	Move       bool    `yaml:"move"`
	FailCopy   int     `yaml:"fail_copy"`  // Fail the nth copy from now.
	FailAlloc  int     `yaml:"fail_alloc"` // Fail the nth allocation from now.
}

// Insert is the argument of an insert op.
type Insert struct {
	At    int `yaml:"at"`
	Value int `yaml:"value"`
}

// Parse parses a script.
func Parse(text string) (*Script, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	dec.KnownFields(true)

	s := new(Script)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("script: %w", err)
	}

	switch s.Options.Growth {
	case "", "default", "pow2":
	default:
		return nil, fmt.Errorf("script: unknown growth policy %q", s.Options.Growth)
	}
	if s.Options.Budget < 0 {
		return nil, fmt.Errorf("script: negative budget %d", s.Options.Budget)
	}
	for i, op := range s.Ops {
		if n := op.count(); n != 1 {
			return nil, fmt.Errorf("script: op %d sets %d fields, want exactly 1", i, n)
		}
		if op.EraseRange != nil && len(op.EraseRange) != 2 {
			return nil, fmt.Errorf("script: op %d: erase_range wants [first, last]", i)
		}
	}
	return s, nil
}

// count returns how many fields of op are set.
func (op Op) count() int {
	var n int
	for _, set := range []bool{
		op.Push != nil, op.Pop != 0, op.Insert != nil, op.Erase != nil,
		op.EraseRange != nil, op.Reserve != nil, op.Shrink, op.Clear,
		op.Clone, op.AssignSelf, op.Move, op.FailCopy != 0, op.FailAlloc != 0,
	} {
		if set {
			n++
		}
	}
	return n
}

// Run replays s against a fresh vector and returns the trace.
//
// Allocator misuse is logged to logger, which may be nil.
func Run(s *Script, logger *zap.Logger) string {
	r := newRunner(s, logger)
	for _, op := range s.Ops {
		r.step(op)
	}
	r.finish()
	return r.out.String()
}

type runner struct {
	out      bytes.Buffer
	counters Counters
	faulty   *arena.Faulty
	tracker  *arena.Tracker
	vec      *vector.Vector[Probe]
}

func newRunner(s *Script, logger *zap.Logger) *runner {
	r := new(runner)

	var upstream arena.Allocator = arena.Heap{}
	if s.Options.Budget > 0 {
		upstream = arena.NewLimited(upstream, s.Options.Budget)
	}
	r.faulty = arena.NewFaulty(upstream)
	r.tracker = arena.NewTracker(r.faulty, logger)

	opts := []vector.Option{vector.WithAllocator(r.tracker)}
	if s.Options.Growth == "pow2" {
		opts = append(opts, vector.WithGrowth(vector.PowerOfTwoGrowth))
	}
	r.vec = vector.New[Probe](opts...)
	return r
}

func (r *runner) step(op Op) {
	v := r.vec
	switch {
	case op.Push != nil:
		for _, x := range op.Push {
			r.record(fmt.Sprintf("push %d", x), v.Push(NewProbe(&r.counters, x)))
		}

	case op.Pop != 0:
		for range op.Pop {
			if v.Empty() {
				r.line("pop", "skipped, empty")
				continue
			}
			v.Pop()
			r.record("pop", nil)
		}

	case op.Insert != nil:
		desc := fmt.Sprintf("insert %d at %d", op.Insert.Value, op.Insert.At)
		if op.Insert.At < 0 || op.Insert.At > v.Len() {
			r.line(desc, "skipped, out of range")
			return
		}
		pos, err := v.Insert(op.Insert.At, NewProbe(&r.counters, op.Insert.Value))
		r.recordPos(desc, pos, err)

	case op.Erase != nil:
		desc := fmt.Sprintf("erase %d", *op.Erase)
		if *op.Erase < 0 || *op.Erase >= v.Len() {
			r.line(desc, "skipped, out of range")
			return
		}
		r.recordPos(desc, v.Erase(*op.Erase), nil)

	case op.EraseRange != nil:
		first, last := op.EraseRange[0], op.EraseRange[1]
		desc := fmt.Sprintf("erase [%d, %d)", first, last)
		if first < 0 || first > last || last > v.Len() {
			r.line(desc, "skipped, out of range")
			return
		}
		r.recordPos(desc, v.EraseRange(first, last), nil)

	case op.Reserve != nil:
		r.record(fmt.Sprintf("reserve %d", *op.Reserve), v.Reserve(*op.Reserve))

	case op.Shrink:
		r.record("shrink", v.ShrinkToFit())

	case op.Clear:
		v.Clear()
		r.record("clear", nil)

	case op.Clone:
		c, err := v.Clone()
		if err != nil {
			r.record("clone", err)
			return
		}
		r.line("clone", fmt.Sprintf("copy len=%d cap=%d %v", c.Len(), c.Cap(), values(c)))
		c.Destroy()
		r.record("clone destroyed", nil)

	case op.AssignSelf:
		r.record("assign self", v.Assign(v))

	case op.Move:
		moved := v.Move()
		r.line("move", fmt.Sprintf("source len=%d cap=%d", v.Len(), v.Cap()))
		v.MoveAssign(moved)
		moved.Destroy()
		r.record("move back", nil)

	case op.FailCopy != 0:
		r.counters.FailCopyAt(op.FailCopy)
		r.line(fmt.Sprintf("fail_copy %d", op.FailCopy), "armed")

	case op.FailAlloc != 0:
		r.faulty.FailAt(op.FailAlloc)
		r.line(fmt.Sprintf("fail_alloc %d", op.FailAlloc), "armed")
	}
}

func (r *runner) finish() {
	r.vec.Destroy()
	r.line("destroy", fmt.Sprintf("%v blocks=%d", &r.counters, r.tracker.Live()))
	for _, v := range r.tracker.Violations() {
		r.line("violation", v.String())
	}
}

// record writes a trace line with the outcome err and the vector's state.
func (r *runner) record(desc string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error: " + err.Error()
	}
	r.line(desc, fmt.Sprintf("%s len=%d cap=%d %v", outcome, r.vec.Len(), r.vec.Cap(), values(r.vec)))
}

// recordPos is like record, for ops that return a position.
func (r *runner) recordPos(desc string, pos int, err error) {
	if err == nil {
		desc = fmt.Sprintf("%s -> %d", desc, pos)
	}
	r.record(desc, err)
}

func (r *runner) line(desc, outcome string) {
	fmt.Fprintf(&r.out, "%s: %s\n", desc, outcome)
}

func values(v *vector.Vector[Probe]) []int {
	out := make([]int, 0, v.Len())
	for p := range v.Values() {
		out = append(out, p.Value)
	}
	return out
}
