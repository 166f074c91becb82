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

// Package gather builds metalava's build targets and copies the resulting
// artifacts into a fresh output directory so before/after runs can be
// diffed.
package gather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.metalava.dev/devtools/internal/execsupport"
	"go.metalava.dev/devtools/internal/reporting"
)

// envBuildTop names the Android checkout root. All relative target and
// output paths resolve against it.
const envBuildTop = "ANDROID_BUILD_TOP"

// soongUI is the build system entry point, relative to the build top.
const soongUI = "build/soong/soong_ui.bash"

// Options is the configuration for a gather run.
type Options struct {
	// Report is where progress is printed. Required.
	Report *reporting.Reporter
	// Dir is the output directory artifacts are copied into. It must not
	// already exist.
	Dir string
	// Targets overrides the default target list when non-empty.
	Targets []string
	// Runner invokes the build system. Required.
	Runner execsupport.Runner
}

// DefaultTargets returns the targets built when none are specified. They
// cover stub generation, signature to JDiff conversion and
// api-versions.xml file generation. Signature file generation is not
// covered as that can be easily checked by running `m checkapi`.
func DefaultTargets() []string {
	var targets []string

	for _, x := range []string{
		"api-stubs-docs-non-updatable",
		"system-api-stubs-docs-non-updatable",
		"test-api-stubs-docs-non-updatable",
		"module-lib-api-stubs-docs-non-updatable",
	} {
		targets = append(targets, fmt.Sprintf("out/target/common/docs/%s-stubs.srcjar", x))
	}

	targets = append(targets,
		"out/target/common/obj/api.xml",
		"out/target/common/obj/system-api.xml",
		"out/target/common/obj/module-lib-api.xml",
		"out/target/common/obj/system-server-api.xml",
		"out/target/common/obj/test-api.xml",
	)

	targets = append(targets,
		"out/soong/lint/api_versions_public.xml",
		"out/soong/lint/api_versions_system.xml",
		"out/soong/lint/api_versions_module_lib.xml",
		"out/soong/lint/api_versions_system_server.xml",
	)

	return targets
}

// Run builds the resolved target list and copies each artifact into
// o.Dir. The output directory must not exist beforehand; re-running into
// prior output is an error, not a merge.
func Run(ctx context.Context, o *Options) error {
	top := os.Getenv(envBuildTop)
	if top == "" {
		return errors.New(envBuildTop + " not specified")
	}

	outDir := o.Dir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(top, outDir)
	}
	if _, err := os.Stat(outDir); err == nil {
		return fmt.Errorf("%s exists, please delete or change", o.Dir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	targets := o.Targets
	if len(targets) == 0 {
		targets = DefaultTargets()
	}

	r := o.Report
	r.Blank()
	r.Step("Building the following targets:")
	for _, t := range targets {
		r.Item(t)
	}
	r.Blank()

	args := append([]string{soongUI, "--make-mode"}, targets...)
	if err := o.Runner(ctx, top, r.Out(), args...); err != nil {
		return err
	}
	r.Blank()

	r.Step("Making output directory: '%s'", o.Dir)
	if err := os.Mkdir(outDir, 0o755); err != nil {
		return err
	}
	r.Blank()

	r.Step("Copying the following targets into '%s':", o.Dir)
	for _, t := range targets {
		r.Item(t)
		src := t
		if !filepath.IsAbs(src) {
			src = filepath.Join(top, src)
		}
		if err := copyFile(src, filepath.Join(outDir, filepath.Base(t))); err != nil {
			return err
		}
	}
	r.Blank()
	return nil
}

// copyFile copies src to dst, carrying over the source's permission bits.
func copyFile(src, dst string) error {
	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()
	st, err := s.Stat()
	if err != nil {
		return err
	}
	d, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(d, s); err != nil {
		_ = d.Close()
		return err
	}
	return d.Close()
}
