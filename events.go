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

// BlockEventKind enumerates the tagged variants of a BlockEvent.
type BlockEventKind uint8

const (
	ParagraphStart BlockEventKind = 1 + iota
	ParagraphEnd
	HeadingStart
	HeadingEnd
	CodeBlockStart
	CodeBlockText
	CodeBlockEnd
	BlockquoteStart
	BlockquoteEnd
	ListStart
	ListEnd
	ListItemStart
	ListItemEnd
	ThematicBreak
	HTMLBlockStart
	HTMLBlockLine
	HTMLBlockEnd
	TableStart
	TableHeadRow
	TableBodyRow
	TableCellStart
	TableCellEnd
	TableEnd
	FootnoteDefStart
	FootnoteDefEnd
	InlineText
	InlineMultiRange
)

// CodeBlockKind distinguishes fenced from indented code blocks.
type CodeBlockKind uint8

const (
	FencedCode CodeBlockKind = iota
	IndentedCode
)

// ListMarkerKind distinguishes bullet from ordered lists.
type ListMarkerKind uint8

const (
	BulletList ListMarkerKind = iota
	OrderedList
)

// TaskState is the checkbox state of a list item's task marker.
type TaskState uint8

const (
	NoTask TaskState = iota
	TaskUnchecked
	TaskChecked
)

// HTMLBlockKind is one of the seven CommonMark HTML block start conditions.
type HTMLBlockKind uint8

// CalloutKind names a GFM-style admonition class, recognized on a
// BlockquoteStart event when Options.Callouts is set.
type CalloutKind uint8

const (
	NoCallout CalloutKind = iota
	CalloutNote
	CalloutTip
	CalloutImportant
	CalloutWarning
	CalloutCaution
)

// Alignment is a GFM table column alignment.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// BlockEvent is a single tagged emission from the block parser (§3).
// Only the fields relevant to Kind are populated; the rest are zero.
type BlockEvent struct {
	Kind BlockEventKind

	// HeadingStart / HeadingEnd
	Level int
	Raw   Span
	Slug  string // HeadingStart only, set by the driver once Options.HeadingIDs and the heading's plain text are known

	// CodeBlockStart
	CodeKind CodeBlockKind
	Info     Span

	// CodeBlockText
	Text Span

	// ListStart
	ListKind   ListMarkerKind
	BulletChar byte
	OrderStart int
	OrderDelim byte
	Tight      bool

	// ListItemStart
	Task TaskState

	// HTMLBlockStart
	HTMLKind HTMLBlockKind

	// HTMLBlockLine
	Line Span

	// TableStart
	Aligns []Alignment

	// FootnoteDefStart
	Label string

	// BlockquoteStart
	Callout CalloutKind

	// InlineText, TableCellStart: the raw source range(s) to hand to the
	// inline parser.
	InlineRange Span

	// InlineMultiRange
	InlineRanges []Span

	// Inlines holds the InlineEvent stream produced by running the inline
	// parser over InlineRange/InlineRanges or a table cell's content (a
	// heading's content is the InlineText or InlineMultiRange event that
	// follows its HeadingStart). Populated by the compilation driver after the block
	// parser finishes, immediately before the event reaches the sink —
	// this is the "inline parser runs once per block that requires inline
	// interpretation" step from the control-flow description in §2.
	Inlines []InlineEvent

	// InlineSource is set only on InlineMultiRange events: the block's
	// content lines joined by '\n' with container prefixes already
	// stripped. The driver also appends this chunk to the shared buffer
	// and rebases the Inlines ranges onto that buffer, so the ranges index
	// the buffer handed to ToHTMLEvents, not InlineSource itself.
	InlineSource []byte
}

// InlineEventKind enumerates the tagged variants of an InlineEvent.
type InlineEventKind uint8

const (
	Text InlineEventKind = 1 + iota
	Code
	MathInline
	MathDisplay
	HTMLSpan
	Autolink
	EmphStart
	EmphEnd
	StrongStart
	StrongEnd
	StrikeStart
	StrikeEnd
	LinkStart
	LinkEnd
	SoftBreak
	HardBreak
	FootnoteRef
)

// InlineEvent is a single tagged emission from the inline parser (§3).
type InlineEvent struct {
	Kind InlineEventKind

	// Text, Code, MathInline, MathDisplay, HTMLSpan
	Range Span

	// Autolink
	URL     string
	IsEmail bool

	// LinkStart
	Dest        string
	Title       string
	HasTitle    bool
	IsImage     bool
	ReferenceID string // non-empty if resolved from a link reference definition

	// FootnoteRef
	FootnoteLabel string

	// Text when Kind is Text and the event represents a decoded entity
	// reference rather than a literal source range: Range is zero and
	// Literal holds the already-decoded replacement text verbatim (the
	// sink must not re-escape byte-for-byte, only HTML-escape it same as
	// any other text).
	Literal string
}
