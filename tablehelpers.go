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

import "bytes"

// This file implements GFM pipe table detection: splitting a row into
// cells on unescaped, non-code-span pipes, and validating a delimiter
// row's alignment markers. Grounded on the same byte-slice/Span style as
// blockhelpers.go; tables have no teacher precedent since the teacher
// predates GFM table support, so this follows the GFM specification's
// own row-splitting algorithm directly.

// splitTableRow splits line on unescaped top-level '|' bytes, trimming a
// single leading and trailing unescaped pipe if present, and returns the
// trimmed cell spans (relative to line). Pipes inside a backtick code
// span are not split on.
func splitTableRow(line []byte) []Span {
	trimmed := bytes.TrimRight(line, " \t\r\n")
	start := 0
	end := len(trimmed)
	if start < end && trimmed[start] == '|' {
		start++
	}
	if end > start && trimmed[end-1] == '|' && !isEndEscaped(trimmed[start:end-1]) {
		end--
	}
	body := trimmed[start:end]

	var cells []Span
	cellStart := 0
	i := 0
	inCode := false
	var codeFence int
	for i < len(body) {
		c := body[i]
		switch {
		case c == '`' && !inCode:
			n := i
			for n < len(body) && body[n] == '`' {
				n++
			}
			inCode = true
			codeFence = n - i
			i = n
		case c == '`' && inCode:
			n := i
			for n < len(body) && body[n] == '`' {
				n++
			}
			if n-i == codeFence {
				inCode = false
			}
			i = n
		case c == '\\' && i+1 < len(body) && isEscapable(body[i+1]):
			i += 2
		case c == '|' && !inCode:
			cells = append(cells, trimCellSpan(body, cellStart, i, start))
			cellStart = i + 1
			i++
		default:
			i++
		}
	}
	cells = append(cells, trimCellSpan(body, cellStart, len(body), start))
	if len(cells) == 1 && cells[0].Len() == 0 {
		return nil
	}
	return cells
}

func trimCellSpan(body []byte, from, to, base int) Span {
	for from < to && (body[from] == ' ' || body[from] == '\t') {
		from++
	}
	for to > from && (body[to-1] == ' ' || body[to-1] == '\t') {
		to--
	}
	return Span{Start: base + from, End: base + to}
}

// parseDelimiterRow recognizes a GFM table delimiter row: cells composed
// only of '-' with optional leading/trailing ':' for alignment.
func parseDelimiterRow(line []byte) ([]Alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 || len(cells) > maxTableColumns {
		return nil, false
	}
	aligns := make([]Alignment, len(cells))
	for i, sp := range cells {
		cell := bytes.TrimSpace(line[sp.Start:sp.End])
		if len(cell) == 0 {
			return nil, false
		}
		left := cell[0] == ':'
		right := cell[len(cell)-1] == ':'
		dashes := cell
		if left {
			dashes = dashes[1:]
		}
		if right && len(dashes) > 0 {
			dashes = dashes[:len(dashes)-1]
		}
		if len(dashes) == 0 {
			return nil, false
		}
		for _, b := range dashes {
			if b != '-' {
				return nil, false
			}
		}
		switch {
		case left && right:
			aligns[i] = AlignCenter
		case left:
			aligns[i] = AlignLeft
		case right:
			aligns[i] = AlignRight
		default:
			aligns[i] = AlignNone
		}
	}
	return aligns, true
}
