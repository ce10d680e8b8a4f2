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

// Command mdhtml renders a Markdown file (or stdin) to HTML on stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/coreglow/mdstream"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mdhtml: ")

	opts := commonmark.DefaultOptions()
	flag.BoolVar(&opts.Tables, "tables", opts.Tables, "enable GFM pipe tables")
	flag.BoolVar(&opts.Strikethrough, "strikethrough", opts.Strikethrough, "enable ~~strikethrough~~")
	flag.BoolVar(&opts.TaskLists, "tasklists", opts.TaskLists, "enable [ ]/[x] task list items")
	flag.BoolVar(&opts.AutolinkLiterals, "autolinks", opts.AutolinkLiterals, "autolink bare URLs and email addresses")
	flag.BoolVar(&opts.DisallowedRawHTML, "filter-html", opts.DisallowedRawHTML, "defuse GFM-disallowed raw HTML tags")
	flag.BoolVar(&opts.AllowHTML, "allow-html", opts.AllowHTML, "pass raw HTML through instead of escaping it")
	flag.BoolVar(&opts.Footnotes, "footnotes", opts.Footnotes, "enable [^id] footnote references and definitions")
	flag.BoolVar(&opts.FrontMatter, "frontmatter", opts.FrontMatter, "strip a leading ---/+++ front-matter block")
	flag.BoolVar(&opts.HeadingIDs, "heading-ids", opts.HeadingIDs, "emit id=\"slug\" attributes on headings")
	flag.BoolVar(&opts.Math, "math", opts.Math, "enable $inline$ and $$display$$ math spans")
	flag.BoolVar(&opts.Callouts, "callouts", opts.Callouts, "recognize [!NOTE]-style block quote callouts")
	flag.Parse()

	var source []byte
	var err error
	switch flag.NArg() {
	case 0:
		source, err = io.ReadAll(os.Stdin)
	case 1:
		source, err = os.ReadFile(flag.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "usage: mdhtml [flags] [file]")
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	out, _ := commonmark.Parse(nil, source, &opts)
	if _, err := os.Stdout.Write(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
}
