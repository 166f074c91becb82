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
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"
)

func TestMainHelp(t *testing.T) {
	data := []struct {
		args []string
		want string
	}{
		{nil, "Usage of metalava-dev:\n"},
		{[]string{"metalava-dev"}, "Usage of metalava-dev:\n"},
		{[]string{"metalava-dev", "--help"}, "Usage of metalava-dev:\n"},
		{[]string{"metalava-dev", "help"}, "Usage of metalava-dev:\n"},
		{[]string{"metalava-dev", "gather", "--help"}, "Usage of metalava-dev gather:\n"},
		{[]string{"metalava-dev", "refresh-baselines", "--help"}, "Usage of metalava-dev refresh-baselines:\n"},
	}
	for i, line := range data {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			b := getBuf(t)
			if Main(context.Background(), line.args) == nil {
				t.Fatal("expected error")
			}
			if s := b.String(); !strings.HasPrefix(s, line.want) {
				t.Fatalf("Got:\n%q", s)
			}
		})
	}
}

func TestMainUnknownCommand(t *testing.T) {
	getBuf(t)
	err := Main(context.Background(), []string{"metalava-dev", "frobnicate"})
	if err == nil || !strings.Contains(err.Error(), `no such command "frobnicate"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMainGatherMissingDirectory(t *testing.T) {
	getBuf(t)
	err := Main(context.Background(), []string{"metalava-dev", "gather"})
	if err == nil || err.Error() != "expected exactly one output directory" {
		t.Fatalf("unexpected error: %v", err)
	}
}

type panicWrite struct{}

func (panicWrite) Write(b []byte) (int, error) {
	panic("unexpected write!")
}

func getBuf(t *testing.T) *bytes.Buffer {
	old := helpOut
	t.Cleanup(func() {
		helpOut = old
	})
	b := &bytes.Buffer{}
	helpOut = b
	return b
}

func init() {
	helpOut = panicWrite{}
}
