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

package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"go.metalava.dev/devtools/internal/execsupport"
	"go.metalava.dev/devtools/internal/gather"
	"go.metalava.dev/devtools/internal/reporting"
)

type gatherCmd struct {
	stubSrcJars []string
}

func (*gatherCmd) Name() string {
	return "gather"
}

func (*gatherCmd) Description() string {
	return "Gather Android artifacts created by metalava.\n" +
		"Builds and then copies a set of targets into the output directory. Run it\n" +
		"before and after making a change, with two separate output directories,\n" +
		"then compare them to see what, if anything, changed. Signature file\n" +
		"generation is not covered as `m checkapi` checks that directly."
}

func (c *gatherCmd) SetFlags(f *flag.FlagSet) {
	f.StringArrayVar(&c.stubSrcJars, "stub-src-jar", nil, "additional stub jar to gather instead of the default targets")
}

func (c *gatherCmd) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one output directory")
	}
	o := gather.Options{
		Report:  reporting.Get(),
		Dir:     args[0],
		Targets: c.stubSrcJars,
		Runner:  execsupport.Run,
	}
	return gather.Run(ctx, &o)
}
