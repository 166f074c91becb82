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

// Package reporting prints the linear progress of a tool run.
package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Reporter emits the step-by-step progress of a tool run. Subprocess
// output is interleaved by handing Out to the process runner.
type Reporter struct {
	out   io.Writer
	color bool
}

// Get returns the right reporting implementation based on the current
// environment.
func Get() *Reporter {
	if os.Getenv("TERM") != "dumb" && isatty.IsTerminal(os.Stderr.Fd()) {
		// Active terminal. Colors! This includes VSCode's integrated
		// terminal.
		return New(colorable.NewColorableStdout(), true)
	}
	// Anything else, e.g. redirected output.
	return New(os.Stdout, false)
}

// New returns a Reporter writing to out, colorizing step headers when
// color is set.
func New(out io.Writer, color bool) *Reporter {
	return &Reporter{out: out, color: color}
}

// Out is the writer subprocess output should be streamed to.
func (r *Reporter) Out() io.Writer {
	return r.out
}

// Step prints one top-level progress line.
func (r *Reporter) Step(format string, args ...any) {
	if r.color {
		fmt.Fprintf(r.out, "%s%s%s\n", bold, fmt.Sprintf(format, args...), reset)
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Item prints one indented entry under the current step.
func (r *Reporter) Item(s string) {
	fmt.Fprintf(r.out, "    %s\n", s)
}

// Blank prints an empty separator line.
func (r *Reporter) Blank() {
	fmt.Fprintln(r.out)
}
