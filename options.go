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

// Options controls which CommonMark extensions are recognized by the
// parsers. Both the block and inline parsers consult Options at every
// state-machine branch point that corresponds to a gated feature.
//
// The zero value of Options is not the default configuration; use
// [DefaultOptions] to obtain the documented defaults.
type Options struct {
	// Tables enables GFM pipe tables. Default true.
	Tables bool
	// Strikethrough enables ~~deleted~~ text. Default true.
	Strikethrough bool
	// TaskLists recognizes "[ ]"/"[x]"/"[X]" at the start of a list item's
	// first content line. Default true.
	TaskLists bool
	// AutolinkLiterals autolinks bare http(s):// URLs, www. URLs, and email
	// addresses outside of angle brackets. Default false.
	AutolinkLiterals bool
	// DisallowedRawHTML strips the GFM-disallowed tag set
	// (title, textarea, style, xmp, iframe, noembed, noframes, script,
	// plaintext) from raw HTML output. Default true.
	DisallowedRawHTML bool
	// AllowHTML passes raw HTML through; if false, raw HTML and HTML
	// blocks are escaped instead. Default true.
	AllowHTML bool
	// AllowLinkRefs enables link reference definitions. Default true.
	AllowLinkRefs bool
	// Footnotes enables "[^id]" references and "[^id]: ..." definitions.
	// Default false.
	Footnotes bool
	// FrontMatter strips a leading "---\n...\n---" or "+++\n...\n+++"
	// block before block parsing begins. Default false.
	FrontMatter bool
	// HeadingIDs emits "<hN id=\"slug\">" with a GitHub-style slug.
	// Default true.
	HeadingIDs bool
	// Math enables "$...$" and "$$...$$" spans. Default false.
	Math bool
	// Callouts treats a block quote beginning with "[!NOTE]" (and TIP,
	// IMPORTANT, WARNING, CAUTION) as an admonition. Default false.
	Callouts bool
}

// DefaultOptions returns the recognized options with their documented
// defaults applied (§6.1): all booleans true except AutolinkLiterals,
// Footnotes, FrontMatter, Math, and Callouts.
func DefaultOptions() Options {
	return Options{
		Tables:            true,
		Strikethrough:     true,
		TaskLists:         true,
		AutolinkLiterals:  false,
		DisallowedRawHTML: true,
		AllowHTML:         true,
		AllowLinkRefs:     true,
		Footnotes:         false,
		FrontMatter:       false,
		HeadingIDs:        true,
		Math:              false,
		Callouts:          false,
	}
}

// Limits are the resource budgets enforced inside the core (§5). They are
// not configurable: exceeding any of them degrades the offending construct
// to literal text rather than aborting compilation.
const (
	maxBlockNestingDepth   = 32
	maxInlineNestingDepth  = 32 // not consulted: inline parsing applies no nesting-depth cap
	maxBracketStackDepth   = 1000
	maxDelimiterStackDepth = 1024
	maxBacktickRunLengths  = 32
	maxParenDepth          = 32
	maxOrderedListDigits   = 9
	maxTableColumns        = 128
	minExpansionBudget     = 100 * 1024
	maxFrontMatterBytes    = 1 << 20
)
