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

// This file collects the pure, per-line leaf-start recognizers: ATX
// headings, thematic breaks, code fences, list markers, and setext
// underlines. They are grounded directly on the teacher's same-named
// functions in blocks.go, which parse these leaf starts the identical
// way regardless of whether the caller builds a tree (as the teacher
// does) or emits events (as this module does) — the recognizers only
// look at the bytes of one already-indent-stripped line.

const codeBlockIndentLimit = 4

// parseThematicBreak attempts to parse line as a thematic break. It
// returns the end of the thematic break characters, or -1 if line is not
// a thematic break. Assumes indentation has already been stripped.
//
// https://spec.commonmark.org/0.31/#thematic-breaks
func parseThematicBreak(line []byte) (end int) {
	n := 0
	var want byte
	for i, b := range line {
		switch b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return -1
			}
			n++
			end = i + 1
		case ' ', '\t', '\r', '\n':
			// Ignore.
		default:
			return -1
		}
	}
	if n < 3 {
		return -1
	}
	return end
}

type atxHeading struct {
	level   int
	content Span
}

// parseATXHeading attempts to parse line as an ATX heading. The level is
// zero if line is not an ATX heading. Assumes indentation has already
// been stripped.
//
// https://spec.commonmark.org/0.31/#atx-headings
func parseATXHeading(line []byte) atxHeading {
	var h atxHeading
	for h.level < len(line) && line[h.level] == '#' {
		h.level++
	}
	if h.level == 0 || h.level > 6 {
		return atxHeading{}
	}

	i := h.level
	if i >= len(line) || line[i] == '\n' || line[i] == '\r' {
		h.content = Span{Start: i, End: i}
		return h
	}
	if !(line[i] == ' ' || line[i] == '\t') {
		return atxHeading{}
	}
	i++
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	h.content.Start = i
	h.content.End = len(line)

	hitHash := false
scanBack:
	for ; h.content.End > h.content.Start; h.content.End-- {
		switch line[h.content.End-1] {
		case '\r', '\n':
			// Skip.
		case ' ', '\t':
			if isEndEscaped(line[:h.content.End-1]) {
				break scanBack
			}
		case '#':
			hitHash = true
			break scanBack
		default:
			break scanBack
		}
	}
	if !hitHash {
		return h
	}
scanTrailingHashes:
	for i := h.content.End - 1; ; i-- {
		if i <= h.content.Start {
			h.content.End = h.content.Start
			break
		}
		switch line[i] {
		case '#':
			// Keep going.
		case ' ', '\t':
			h.content.End = i + 1
			break scanTrailingHashes
		default:
			return h
		}
	}
	for ; h.content.End > h.content.Start; h.content.End-- {
		if b := line[h.content.End-1]; !(b == ' ' || b == '\t') || isEndEscaped(line[:h.content.End-1]) {
			break
		}
	}
	return h
}

// parseSetextHeadingUnderline returns the heading level if line is a
// setext heading underline, or zero otherwise.
//
// https://spec.commonmark.org/0.31/#setext-heading-underline
func parseSetextHeadingUnderline(line []byte) (level int) {
	if len(line) == 0 {
		return 0
	}
	switch line[0] {
	case '=':
		level = 1
	case '-':
		level = 2
	default:
		return 0
	}
	for i := 1; i < len(line); i++ {
		if line[i] != line[0] {
			if !isBlankLine(line[i:]) {
				return 0
			}
			return level
		}
	}
	return level
}

type codeFence struct {
	char byte
	n    int
	info Span
}

// parseCodeFence attempts to parse a code fence at the start of line.
// codeFence.n is 0 if line does not begin with a fence marker. Assumes
// indentation has already been stripped.
//
// https://spec.commonmark.org/0.31/#code-fence
func parseCodeFence(line []byte) codeFence {
	const minConsecutive = 3
	if len(line) < minConsecutive || (line[0] != '`' && line[0] != '~') {
		return codeFence{info: NullSpan()}
	}
	f := codeFence{char: line[0], n: 1, info: NullSpan()}
	for f.n < len(line) && line[f.n] == f.char {
		f.n++
	}
	if f.n < minConsecutive {
		return codeFence{info: NullSpan()}
	}
	for i := f.n; i < len(line) && f.info.Start < 0; i++ {
		if c := line[i]; !isSpaceTabOrLineEnding(c) {
			f.info.Start = i
		}
	}
	if f.info.Start >= 0 {
		for f.info.End = len(line); f.info.End > f.info.Start; f.info.End-- {
			if c := line[f.info.End-1]; !isSpaceTabOrLineEnding(c) {
				break
			}
		}
		if f.char == '`' {
			for i := f.info.Start; i < f.info.End; i++ {
				if line[i] == '`' {
					return codeFence{info: NullSpan()}
				}
			}
		}
	}
	return f
}

type listMarker struct {
	delim byte
	n     int
	end   int // -1 if line does not begin with a marker
}

// parseListMarker attempts to parse a list marker at the start of line.
// Assumes indentation has already been stripped.
//
// https://spec.commonmark.org/0.31/#list-marker
func parseListMarker(line []byte) listMarker {
	if len(line) == 0 {
		return listMarker{end: -1}
	}
	switch c := line[0]; {
	case c == '-' || c == '+' || c == '*':
		if !hasTabOrSpacePrefixOrEOL(line[1:]) {
			return listMarker{end: -1}
		}
		return listMarker{delim: line[0], end: 1}
	case isASCIIDigit(c):
		n := int(c - '0')
		for i := 1; i < maxOrderedListDigits+1 && i < len(line); i++ {
			switch c := line[i]; {
			case isASCIIDigit(c):
				n = n*10 + int(c-'0')
			case c == '.' || c == ')':
				if !hasTabOrSpacePrefixOrEOL(line[i+1:]) {
					return listMarker{end: -1}
				}
				return listMarker{delim: c, n: n, end: i + 1}
			default:
				return listMarker{end: -1}
			}
		}
		return listMarker{end: -1}
	default:
		return listMarker{end: -1}
	}
}

func (m listMarker) isOrdered() bool {
	return m.delim == '.' || m.delim == ')'
}

// parseFootnoteDefMarker attempts to parse a "[^label]:" footnote
// definition marker at the start of line. Returns the label and the byte
// offset just past the marker, or an empty label if line does not begin
// with one.
func parseFootnoteDefMarker(line []byte) (label string, end int) {
	if len(line) < 4 || line[0] != '[' || line[1] != '^' {
		return "", -1
	}
	i := 2
	start := i
	for i < len(line) && line[i] != ']' && !isSpaceTabOrLineEnding(line[i]) {
		i++
	}
	if i == start || i >= len(line) || line[i] != ']' {
		return "", -1
	}
	label = string(line[start:i])
	i++
	if i >= len(line) || line[i] != ':' {
		return "", -1
	}
	i++
	return label, i
}

// calloutKindForLine reports whether a blockquote's first content line is
// exactly one of the GFM-alert-style "[!NOTE]" markers (§6.1 callouts).
func calloutKindForLine(line []byte) CalloutKind {
	trimmed := line
	for len(trimmed) > 0 && isSpaceTabOrLineEnding(trimmed[len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}
	switch {
	case caseInsensitiveEqual(trimmed, "[!NOTE]"):
		return CalloutNote
	case caseInsensitiveEqual(trimmed, "[!TIP]"):
		return CalloutTip
	case caseInsensitiveEqual(trimmed, "[!IMPORTANT]"):
		return CalloutImportant
	case caseInsensitiveEqual(trimmed, "[!WARNING]"):
		return CalloutWarning
	case caseInsensitiveEqual(trimmed, "[!CAUTION]"):
		return CalloutCaution
	default:
		return NoCallout
	}
}

func caseInsensitiveEqual(b []byte, s string) bool {
	return len(b) == len(s) && hasCaseInsensitiveBytePrefix(b, s)
}
