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
	"bytes"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// linkDefinition is the data of a link reference definition (§4.3).
type linkDefinition struct {
	label       string
	destination string
	title       string
	hasTitle    bool
}

// refStore is the label-normalized link-reference store, populated only by
// the block parser and queried only by the inline parser (§4.3). It is
// first-writer-wins: later duplicate labels are silently dropped.
type refStore struct {
	order []linkDefinition
	index map[string]int

	// expansionBudget bounds the total bytes that may be resolved from
	// reference-link expansion, guarding against amplification through
	// pathological documents (§4.3, §9 "Cyclic references").
	expansionBudget int
	expansionSpent  int
}

func newRefStore(inputLen int) *refStore {
	budget := inputLen
	if budget < minExpansionBudget {
		budget = minExpansionBudget
	}
	return &refStore{
		index:           make(map[string]int),
		expansionBudget: budget,
	}
}

// reset clears the store for reuse, amortizing its backing allocations
// across compilations the way the design's "buffer reuse" note calls for.
func (s *refStore) reset(inputLen int) {
	s.order = s.order[:0]
	for k := range s.index {
		delete(s.index, k)
	}
	budget := inputLen
	if budget < minExpansionBudget {
		budget = minExpansionBudget
	}
	s.expansionBudget = budget
	s.expansionSpent = 0
}

// insert adds a definition if its label has not already been seen,
// reporting whether this call performed the insertion.
func (s *refStore) insert(label, dest, title string, hasTitle bool) bool {
	norm := normalizeLabel(label)
	if norm == "" {
		return false
	}
	if _, exists := s.index[norm]; exists {
		return false
	}
	s.index[norm] = len(s.order)
	s.order = append(s.order, linkDefinition{
		label:       norm,
		destination: dest,
		title:       title,
		hasTitle:    hasTitle,
	})
	return true
}

// lookup returns the definition for a normalized label and whether it was
// found, also enforcing the expansion-byte guard: once resolving this
// definition would push cumulative expansion past the budget, lookup
// reports "not found" to block amplification.
func (s *refStore) lookup(label string) (linkDefinition, bool) {
	norm := normalizeLabel(label)
	idx, ok := s.index[norm]
	if !ok {
		return linkDefinition{}, false
	}
	def := s.order[idx]
	cost := len(def.destination) + len(def.title)
	if s.expansionSpent+cost > s.expansionBudget {
		return linkDefinition{}, false
	}
	s.expansionSpent += cost
	return def, true
}

// normalizeLabel implements §4.2.5's label normalization: Unicode
// case-fold (NFC-normalized, then lowercased by toLowerRune: ASCII, Latin-1
// and a short table of other letters, resolving §9(a)'s open
// question pragmatically the way the teacher's module ecosystem already
// depends on golang.org/x/text for), collapse internal whitespace runs to
// a single space, and trim.
func normalizeLabel(label string) string {
	label = norm.NFC.String(label)
	var sb strings.Builder
	sb.Grow(len(label))
	lastWasSpace := true // trims leading space
	for _, r := range label {
		if isUnicodeSpace(r) {
			if !lastWasSpace {
				sb.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		sb.WriteRune(toLowerRune(r))
	}
	out := strings.TrimRight(sb.String(), " ")
	return out
}

// scanReferenceDefinition recognizes a single leading
// "[label]: destination" optionally followed by a title, at the start
// of text (§4.7). It returns the number of bytes of text consumed
// (which may stop mid-line, leaving the rest for paragraph content) and
// ok=false if text does not begin with a well-formed definition.
func scanReferenceDefinition(text []byte) (label, dest, title string, hasTitle bool, consumed int, ok bool) {
	if len(text) == 0 || text[0] != '[' {
		return "", "", "", false, 0, false
	}
	n, lbl, labelOK := scanLinkLabel(text)
	if !labelOK || lbl == "" {
		return "", "", "", false, 0, false
	}
	i := n
	if i >= len(text) || text[i] != ':' {
		return "", "", "", false, 0, false
	}
	i++
	i = skipLinkWhitespace(text, i)
	destEnd, dest, destOK := scanLinkDestination(text, i)
	if !destOK {
		return "", "", "", false, 0, false
	}
	i = destEnd

	// A title may follow on the same or a subsequent line; if it's
	// malformed or absent, the definition still ends at the end of this
	// line as long as nothing but whitespace follows the destination.
	save := i
	afterDestLineEnd := lineEndFrom(text, i)
	rest := text[i:afterDestLineEnd]
	if len(bytes.TrimSpace(rest)) == 0 && afterDestLineEnd < len(text) {
		titleLineStart := afterDestLineEnd + 1
		j := skipLinkWhitespace(text, titleLineStart)
		if j < len(text) && (text[j] == '"' || text[j] == '\'' || text[j] == '(') {
			if titleEnd, t, titleOK := scanLinkTitle(text, j); titleOK {
				lineEnd := lineEndFrom(text, titleEnd)
				if len(bytes.TrimSpace(text[titleEnd:lineEnd])) == 0 {
					title = t
					hasTitle = true
					i = lineEnd
					return lbl, dest, title, hasTitle, i, true
				}
			}
		}
	}
	i = save
	lineEnd := lineEndFrom(text, i)
	if len(bytes.TrimSpace(text[i:lineEnd])) != 0 {
		// Trailing garbage on the destination line with no valid title:
		// try a same-line title anyway, else fail the whole definition.
		j := skipLinkWhitespace(text, i)
		if j < len(text) && (text[j] == '"' || text[j] == '\'' || text[j] == '(') {
			if titleEnd, t, titleOK := scanLinkTitle(text, j); titleOK {
				le := lineEndFrom(text, titleEnd)
				if len(bytes.TrimSpace(text[titleEnd:le])) == 0 {
					return lbl, dest, t, true, le, true
				}
			}
		}
		return "", "", "", false, 0, false
	}
	return lbl, dest, "", false, lineEnd, true
}

func lineEndFrom(text []byte, i int) int {
	for i < len(text) && text[i] != '\n' {
		i++
	}
	return i
}


func isUnicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0x85, 0xA0:
		return true
	}
	return false
}

// toLowerRune performs a pragmatic case fold: ASCII fast path plus a small
// hand-list of common Unicode mappings, per §9(a)'s explicit allowance
// that exhaustive Unicode folding is not required.
func toLowerRune(r rune) rune {
	switch {
	case 'A' <= r && r <= 'Z':
		return r + ('a' - 'A')
	case r >= 0xC0 && r <= 0xDE && r != 0xD7:
		return r + 0x20
	default:
		if l, ok := extraFoldTable[r]; ok {
			return l
		}
		return r
	}
}

var extraFoldTable = map[rune]rune{
	0x130: 'i',    // İ
	0x131: 'i',    // ı (dotless i folds pragmatically to i)
	0x39C: 0x3BC,  // Μ -> μ
	0x396: 0x3B6,  // Ζ -> ζ
}
