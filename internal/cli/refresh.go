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

	flag "github.com/spf13/pflag"

	"go.metalava.dev/devtools/internal/baseline"
	"go.metalava.dev/devtools/internal/execsupport"
	"go.metalava.dev/devtools/internal/reporting"
)

type refreshCmd struct {
	cwd string
}

func (*refreshCmd) Name() string {
	return "refresh-baselines"
}

func (*refreshCmd) Description() string {
	return "Refresh the model test suite baseline files.\n" +
		"Deletes stale test reports and baselines, re-runs each project's tests\n" +
		"and regenerates its baseline from the fresh results. Positional arguments\n" +
		"restrict the run to the named projects."
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVarP(&c.cwd, "cwd", "C", ".", "path to the metalava checkout root")
}

func (c *refreshCmd) Execute(ctx context.Context, args []string) error {
	o := baseline.Options{
		Report:   reporting.Get(),
		Root:     c.cwd,
		Projects: args,
		Runner:   execsupport.Run,
	}
	return baseline.Refresh(ctx, &o)
}
