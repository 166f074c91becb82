// Copyright 2024 The Android Open Source Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package execsupport runs the external build and test processes that the
// tools orchestrate, one at a time, blocking until each exits.
package execsupport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
)

// Runner runs one external command in dir, streaming its combined output
// to out, and blocks until the command exits. A non-nil error means the
// command could not be started or exited non-zero.
//
// Tests substitute a recording implementation; everything else uses Run.
type Runner func(ctx context.Context, dir string, out io.Writer, args ...string) error

// Run executes args[0] with the remaining arguments in dir.
//
// Stdout and stderr both go to out so build and test output interleaves
// the way it does on a terminal.
func Run(ctx context.Context, dir string, out io.Writer, args ...string) error {
	if len(args) == 0 {
		return errors.New("no command specified")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	log.Printf("running in %q: %s", dir, strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		if errExit := (&exec.ExitError{}); errors.As(err, &errExit) {
			return fmt.Errorf("error running %s: %w", strings.Join(args, " "), err)
		}
		return err
	}
	return nil
}
