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

// This file implements the GFM autolink-literals extension: bare
// "http://", "https://", "www."-prefixed, and email-shaped text outside
// of angle brackets is autolinked. It has no teacher precedent (the
// teacher predates this GFM extension); grounded directly on the GFM
// specification's extended-autolink algorithm, reusing looksLikeEmail
// and the byte scanners tagreader.go already established for
// angle-bracket autolinks.

// scanAutolinkLiteral attempts to match a "http://", "https://", or
// "www."-prefixed bare autolink starting at b[0], returning the number
// of bytes consumed. The caller only tries this at an 'h'/'w' byte not
// itself preceded by an alphanumeric byte (a word-boundary check it
// performs before calling, since that requires looking behind b[0]).
func scanAutolinkLiteral(b []byte) (n int, ok bool) {
	switch {
	case hasCaseInsensitiveBytePrefix(b, "https://"):
		if end := scanAutolinkExtent(b, 0); end > 8 {
			return end, true
		}
	case hasCaseInsensitiveBytePrefix(b, "http://"):
		if end := scanAutolinkExtent(b, 0); end > 7 {
			return end, true
		}
	case hasBytePrefix(b, "www."):
		if end := scanAutolinkExtent(b, 0); end > 4 {
			return end, true
		}
	}
	return 0, false
}

// scanAutolinkEmailAt attempts to match an email-shaped autolink around
// the '@' byte at b[at], scanning backward for the local part and
// forward for the domain. b is the full buffer being scanned (not a
// suffix starting at at), since the local part lies before at.
func scanAutolinkEmailAt(b []byte, at int) (start, end int, ok bool) {
	if at >= len(b) || b[at] != '@' {
		return 0, 0, false
	}
	start = at
	for start > 0 && isAutolinkLocalByte(b[start-1]) {
		start--
	}
	if start == at {
		return 0, 0, false
	}
	end = scanAutolinkDomain(b, at+1)
	if end <= at+1 {
		return 0, 0, false
	}
	if !looksLikeEmail(b[start:end]) {
		return 0, 0, false
	}
	return start, end, true
}

// scanAutolinkExtent finds the end of a "www."/"http(s)://" autolink
// starting at offset start in b, consuming URL-ish bytes and then
// trimming trailing punctuation and unbalanced closing brackets per the
// GFM extended-autolink trailing-punctuation rule.
func scanAutolinkExtent(b []byte, start int) int {
	i := start
	for i < len(b) && !isSpaceTabOrLineEnding(b[i]) && b[i] != '<' {
		i++
	}
	end := i
	openParens := 0
	for j := start; j < end; j++ {
		switch b[j] {
		case '(':
			openParens++
		case ')':
			openParens--
		}
	}
	for end > start {
		c := b[end-1]
		switch {
		case c == ')' && openParens < 0:
			end--
			openParens++
		case c == '?' || c == '!' || c == '.' || c == ',' || c == ':' || c == '*' || c == '_' || c == '~' || c == '\'' || c == '"':
			end--
		case c == ';':
			// Trim a trailing entity-like "&...;" tail conservatively.
			k := end - 2
			for k > start && b[k] != '&' && isASCIIAlnum(b[k]) {
				k--
			}
			if k > start && b[k] == '&' {
				end = k
			} else {
				return end
			}
		default:
			return end
		}
	}
	return end
}

func isAutolinkLocalByte(c byte) bool {
	return isASCIIAlnum(c) || c == '.' || c == '+' || c == '-' || c == '_'
}

// scanAutolinkDomain consumes a dotted hostname starting at offset start,
// trimming a trailing '.'/'-'/'_' the same way scanAutolinkExtent trims
// trailing punctuation, and requires at least one internal '.'.
func scanAutolinkDomain(b []byte, start int) int {
	i := start
	for i < len(b) && (isASCIIAlnum(b[i]) || b[i] == '.' || b[i] == '-' || b[i] == '_') {
		i++
	}
	end := i
	for end > start && (b[end-1] == '.' || b[end-1] == '-' || b[end-1] == '_') {
		end--
	}
	if indexByteLimited(b[start:end], '.', end-start) < 0 {
		return start
	}
	return end
}

func indexByteLimited(b []byte, c byte, limit int) int {
	if limit > len(b) {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
