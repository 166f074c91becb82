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

// Package baseline regenerates the expected-failure baseline files of the
// metalava model test suite from fresh test runs.
package baseline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"go.metalava.dev/devtools/internal/execsupport"
	"go.metalava.dev/devtools/internal/reporting"
)

// markerLine identifies a gradle project whose tests run under the model
// test suite and so has a baseline file to refresh.
const markerLine = `id("metalava-model-provider-plugin")`

// Project is a gradle project that has a baseline file to update.
type Project struct {
	// Name of the project, which is also its directory name.
	Name string

	// BaselineFile is the path of its expected-failures file.
	BaselineFile string
}

// resourcePath returns the path of a test resource within projectDir.
func resourcePath(projectDir, name string) string {
	return filepath.Join(projectDir, "src", "test", "resources", name)
}

// FindProjects returns the projects under root that have a baseline file,
// i.e. the subdirectories whose build.gradle.kts applies the model test
// suite plugin, plus metalava itself which has its own baseline without
// using the plugin.
func FindProjects(root string) ([]Project, error) {
	buildFiles, err := filepath.Glob(filepath.Join(root, "*", "build.gradle.kts"))
	if err != nil {
		return nil, err
	}
	var projects []Project
	for _, buildFile := range buildFiles {
		ok, err := hasMarker(buildFile)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		projectDir := filepath.Dir(buildFile)
		projects = append(projects, Project{
			Name:         filepath.Base(projectDir),
			BaselineFile: resourcePath(projectDir, "model-test-suite-baseline.txt"),
		})
	}
	projects = append(projects, Project{
		Name:         "metalava",
		BaselineFile: resourcePath(filepath.Join(root, "metalava"), "source-model-provider-baseline.txt"),
	})
	return projects, nil
}

func hasMarker(buildFile string) (bool, error) {
	f, err := os.Open(buildFile)
	if err != nil {
		return false, err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	for s.Scan() {
		if strings.Contains(s.Text(), markerLine) {
			return true, nil
		}
	}
	return false, s.Err()
}

// filterProjects keeps only the projects whose name is in names,
// preserving discovery order. Names matching no project are ignored.
func filterProjects(projects []Project, names []string) []Project {
	var kept []Project
	for _, p := range projects {
		for _, n := range names {
			if p.Name == n {
				kept = append(kept, p)
				break
			}
		}
	}
	return kept
}

// Options is the configuration for a baseline refresh run.
type Options struct {
	// Report is where progress is printed. Required.
	Report *reporting.Reporter
	// Root is the metalava checkout root.
	Root string
	// OutDir is the gradle output tree. Defaults to Root/../../out/metalava.
	OutDir string
	// Projects keeps only the named projects when non-empty.
	Projects []string
	// Runner invokes gradle. Required.
	Runner execsupport.Runner
}

// Refresh deletes each project's stale test reports and baseline file,
// re-runs its tests and regenerates the baseline from the fresh reports.
//
// Gradle failures do not abort the loop: test failures are the point of
// the exercise and each invocation's own output is the only feedback, so
// the remaining projects are still processed.
func Refresh(ctx context.Context, o *Options) error {
	root := o.Root
	if root == "" {
		root = "."
	}
	outDir := o.OutDir
	if outDir == "" {
		outDir = filepath.Join(root, "..", "..", "out", "metalava")
	}

	projects, err := FindProjects(root)
	if err != nil {
		return err
	}
	if len(o.Projects) > 0 {
		projects = filterProjects(projects, o.Projects)
	}

	r := o.Report
	for _, p := range projects {
		reportsDir := filepath.Join(outDir, p.Name, "build", "test-results", "test")

		r.Step("Deleting test report files for %s", p.Name)
		reports, err := reportFiles(reportsDir)
		if err != nil {
			return err
		}
		for _, f := range reports {
			if err := os.Remove(f); err != nil {
				return err
			}
		}

		r.Step("Deleting baseline file - %s", p.BaselineFile)
		if err := os.Remove(p.BaselineFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		r.Step("Running all tests in %s", p.Name)
		_ = o.Runner(ctx, root, r.Out(), "./gradlew", ":"+p.Name+":test", "--continue")

		r.Step("Updating baseline file - %s", p.BaselineFile)
		reports, err = reportFiles(reportsDir)
		if err != nil {
			return err
		}
		quoted := make([]string, len(reports))
		for i, f := range reports {
			quoted[i] = "'" + f + "'"
		}
		_ = o.Runner(ctx, root, r.Out(), "./gradlew", ":metalava-model-testsuite-cli:run",
			fmt.Sprintf("--args=%s --baseline-file '%s'", strings.Join(quoted, " "), p.BaselineFile))
	}
	return nil
}

// reportFiles returns the test report XML files anywhere under dir. A
// missing dir simply yields no files.
func reportFiles(dir string) ([]string, error) {
	return doublestar.FilepathGlob(filepath.Join(dir, "**", "TEST-*.xml"))
}
