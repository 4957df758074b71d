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

// vecscript replays vector operation scripts and prints their traces.
//
// Usage:
//
//	vecscript [-v] script.yaml...
//
// See package internal/script for the script format.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/bufbuild/vector/internal/script"
)

func main() {
	verbose := flag.Bool("v", false, "log each script as it runs")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: vecscript [-v] script.yaml...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := zap.NewDevelopmentConfig()
	if !*verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vecscript:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, os.Stdout, flag.Args()); err != nil {
		logger.Error("vecscript failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, out io.Writer, paths []string) error {
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		s, err := script.Parse(string(text))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		logger.Info("running script", zap.String("path", path), zap.Int("ops", len(s.Ops)))
		if len(paths) > 1 {
			fmt.Fprintf(out, "== %s\n", path)
		}
		fmt.Fprint(out, script.Run(s, logger.With(zap.String("path", path))))
	}
	return nil
}
