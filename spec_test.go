// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commonmark

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/coreglow/mdstream/internal/normhtml"
)

// specExample is one example from testdata/spec-subset.json, a trimmed
// stand-in for the upstream CommonMark/GFM example suites: the full
// 652-example upstream file is not vendored here, but loadSpecExamples
// is shaped to accept it as a drop-in replacement.
type specExample struct {
	Markdown string
	HTML     string
	Example  int
	Section  string
}

//go:embed testdata/spec-subset.json
var specSubsetData []byte

func loadSpecExamples(t *testing.T) []specExample {
	t.Helper()
	var examples []specExample
	if err := json.Unmarshal(specSubsetData, &examples); err != nil {
		t.Fatal(err)
	}
	return examples
}

func TestSpec(t *testing.T) {
	opts := DefaultOptions()
	for _, test := range loadSpecExamples(t) {
		t.Run(fmt.Sprintf("Example%d", test.Example), func(t *testing.T) {
			got := string(normhtml.NormalizeHTML(ToHTMLInto(nil, []byte(test.Markdown))))
			want := string(normhtml.NormalizeHTML([]byte(test.HTML)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("options: %+v\nInput:\n%s\nOutput (-want +got):\n%s", opts, test.Markdown, diff)
			}
		})
	}
}
