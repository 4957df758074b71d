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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte("ops:\n  - push: [1]\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("ops:\n  - pop: 1\n"), 0o644))

	core, logs := observer.New(zap.InfoLevel)
	var out strings.Builder
	require.NoError(t, run(zap.New(core), &out, []string{a, b}))

	assert.Equal(t, "== "+a+"\n"+
		"push 1: ok len=1 cap=1 [1]\n"+
		"destroy: live=0 copies=1 destroys=1 blocks=0\n"+
		"== "+b+"\n"+
		"pop: skipped, empty\n"+
		"destroy: live=0 copies=0 destroys=0 blocks=0\n",
		out.String())
	assert.Equal(t, 2, logs.FilterMessage("running script").Len())
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("ops: [{nope: 1}]\n"), 0o644))

	var out strings.Builder
	err := run(zap.NewNop(), &out, []string{bad})
	assert.ErrorContains(t, err, "bad.yaml")

	err = run(zap.NewNop(), &out, []string{filepath.Join(dir, "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out.String())
}
