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

// tabStopSize is the multiple of columns that a tab advances to.
//
// https://spec.commonmark.org/0.31/#tabs
const tabStopSize = 4

// 256-entry boolean tables, computed once at init, consulted on every
// inline-parser byte instead of re-deriving the classification each time.
// This is the "character-class tables" component: the teacher derives the
// same classifications with small per-call predicates (isASCIIDigit,
// isSpaceTabOrLineEnding, hasBytePrefix); at document scale a table lookup
// amortizes better, per the design's explicit performance note.
var (
	isWhitespaceTable   [256]bool
	isASCIIPunctTable   [256]bool
	isMarkCharTable     [256]bool // bytes the inline mark-collection pass must stop on
	isEscapableTable    [256]bool
	isURLSpecialTable   [256]bool // bytes NormalizeURI passes through unescaped
)

func init() {
	for _, b := range []byte(" \t\n\v\f\r") {
		isWhitespaceTable[b] = true
	}
	for _, b := range []byte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~") {
		isASCIIPunctTable[b] = true
		isEscapableTable[b] = true
	}
	for _, b := range []byte("`$<[]!*_~\\&\n") {
		isMarkCharTable[b] = true
	}
	for _, b := range []byte(";/?:@&=+$,-_.!~*'()#") {
		isURLSpecialTable[b] = true
	}
}

func isSpaceTabOrLineEnding(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isASCIIPunct(c byte) bool {
	return isASCIIPunctTable[c]
}

func isEscapable(c byte) bool {
	return isEscapableTable[c]
}

func isMarkChar(c byte) bool {
	return isMarkCharTable[c]
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isASCIIAlnum(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c)
}

func toLowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// scanNextMark returns the offset of the next mark-significant byte in b,
// or -1 if there is none. Paired with scanNextNewline and scanNextEscapable,
// these are the "fast scanners" the design calls for: they never read past
// len(b) and return immediately on an empty slice.
func scanNextMark(b []byte) int {
	for i, c := range b {
		if isMarkChar(c) {
			return i
		}
	}
	return -1
}

func scanNextNewline(b []byte) int {
	return scanToAny(b, "\n")
}

func scanNextEscapable(b []byte) int {
	for i, c := range b {
		if isEscapable(c) {
			return i
		}
	}
	return -1
}

// hasBytePrefix reports whether b starts with prefix.
func hasBytePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

func hasCaseInsensitiveBytePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if toLowerASCII(b[i]) != toLowerASCII(prefix[i]) {
			return false
		}
	}
	return true
}

func contains(b []byte, search string) bool {
	return indexBytes(b, search) >= 0
}

func caseInsensitiveContains(b []byte, search string) bool {
	for i := 0; i+len(search) <= len(b); i++ {
		if hasCaseInsensitiveBytePrefix(b[i:], search) {
			return true
		}
	}
	return false
}

func indexBytes(b []byte, search string) int {
	if len(search) == 0 {
		return 0
	}
	for i := 0; i+len(search) <= len(b); i++ {
		if hasBytePrefix(b[i:], search) {
			return i
		}
	}
	return -1
}

func isBlankLine(line []byte) bool {
	for _, b := range line {
		if !isSpaceTabOrLineEnding(b) {
			return false
		}
	}
	return true
}

func indentLength(line []byte) int {
	for i, b := range line {
		if b != ' ' && b != '\t' {
			return i
		}
	}
	return len(line)
}

func hasTabOrSpacePrefixOrEOL(line []byte) bool {
	return len(line) == 0 ||
		line[0] == ' ' || line[0] == '\t' || line[0] == '\n' || line[0] == '\r'
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s []byte) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}
