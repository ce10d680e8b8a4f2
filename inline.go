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
	"html"
	"strings"
)

// This file is the inline parser (§3): a three-phase pass over a single
// flattened content buffer (a paragraph, heading, or table cell, already
// joined from its source lines by resolveInlines). It follows the
// teacher's general house style of operating on byte slices and Span
// ranges rather than runes, and of separating pure recognizers from the
// stateful pass that calls them, the same separation blockhelpers.go
// uses for block-level leaf starts.
//
// Phase 1 walks the buffer once, collecting "marks": candidate positions
// for code spans, math spans, autolinks, raw HTML, entities, brackets,
// and emphasis/strikethrough delimiter runs.
//
// Phase 2 resolves marks in CommonMark's mandated precedence order:
// code/math/autolink/raw-HTML spans first (they make everything inside
// them literal), then link and image openers via a bracket stack, then
// emphasis and strong emphasis via a single opener stack that applies the
// modulo-3 rule (§6.2) as a check on each candidate pair (the stack is not
// partitioned by run length), then strikethrough.
//
// Phase 3 walks the resolved marks in order and emits the InlineEvent
// stream.

type markKind uint8

const (
	markText markKind = iota
	markCodeSpan
	markMathSpan
	markAutolinkOrHTML
	markEntity
	markBracketOpen
	markImageOpen
	markBracketClose
	markEmphDelim
	markStrikeDelim
	markHardBreak
	markSoftBreak
	markAutolinkLiteral
	markFootnoteRef
)

// mark is a candidate inline token discovered during phase 1. Most marks
// resolve directly; bracket and delimiter marks are mutated in place by
// phase 2 (active/resolved flags) before phase 3 walks them.
type mark struct {
	kind markKind
	span Span // the mark's own characters (e.g. the backtick run, the "[")

	// code/math span
	closeSpan Span // the matching closer's own characters
	content   Span // content strictly between span and closeSpan

	// autolink / raw HTML / entity
	text    string
	isEmail bool

	// bracket (link/image open or close)
	active      bool // false once deactivated by an intervening link
	resolved    bool // true once paired into a link/image
	matchIndex  int  // index of the paired bracket mark, or -1
	dest        string
	title       string
	hasTitle    bool
	isImage     bool
	referenceID string

	// emphasis / strikethrough delimiter run
	delimChar  byte
	delimN     int
	canOpen    bool
	canClose   bool
	usedLeft   int // characters consumed from the left of the run so far
	usedRight  int
}

type inlineParser struct {
	opts        *Options
	source      []byte
	refs        *refStore
	notes       *footnoteStore
	marks       []mark
	depth       int
	emphPairs   []emphPair
	strikePairs []emphPair
	markTable   [256]bool
}

// parseInline runs the three-phase inline pass over source and appends
// the resulting events to dst.
func parseInline(source []byte, opts *Options, refs *refStore, notes *footnoteStore, dst []InlineEvent) []InlineEvent {
	p := &inlineParser{opts: opts, source: source, refs: refs, notes: notes}
	p.markTable = isMarkCharTable
	if opts.AutolinkLiterals {
		p.markTable['h'] = true
		p.markTable['w'] = true
		p.markTable['@'] = true
	}
	p.collectMarks()
	p.resolveCodeAndRawSpans()
	p.resolveBrackets()
	p.resolveEmphasis()
	if opts.Strikethrough {
		p.resolveStrikethrough()
	}
	return p.emit(dst)
}

// --- Phase 1: mark collection ---

// scanNextMark is scanNextMark generalized over this parser's own mark
// table, which additionally flags 'h'/'w'/'@' when AutolinkLiterals is
// enabled: those bytes are too common in ordinary prose to add to the
// shared isMarkCharTable unconditionally.
func (p *inlineParser) scanNextMark(b []byte) int {
	for i, c := range b {
		if p.markTable[c] {
			return i
		}
	}
	return -1
}

func (p *inlineParser) collectMarks() {
	b := p.source
	i := 0
	lastText := 0
	flushText := func(end int) {
		if end > lastText {
			p.marks = append(p.marks, mark{kind: markText, span: Span{Start: lastText, End: end}})
		}
	}
	for i < len(b) {
		rel := p.scanNextMark(b[i:])
		if rel < 0 {
			break
		}
		i += rel
		c := b[i]
		switch c {
		case '\\':
			if i+1 < len(b) && isEscapable(b[i+1]) {
				flushText(i)
				p.marks = append(p.marks, mark{kind: markText, span: Span{Start: i + 1, End: i + 2}})
				i += 2
				lastText = i
				continue
			}
			if i+1 < len(b) && b[i+1] == '\n' {
				flushText(i)
				p.marks = append(p.marks, mark{kind: markHardBreak, span: Span{Start: i, End: i + 2}})
				i += 2
				lastText = i
				continue
			}
			i++
		case '\n':
			// Trailing spaces before a line break are not part of the text.
			trim := i
			for trim > lastText && b[trim-1] == ' ' {
				trim--
			}
			flushText(trim)
			end := i + 1
			hard := false
			// Two or more trailing spaces before the newline make a hard break;
			// the block parser keeps such spaces in the line content, so check
			// the two bytes immediately preceding i.
			if i >= 2 && b[i-1] == ' ' && b[i-2] == ' ' {
				hard = true
			}
			if hard {
				p.marks = append(p.marks, mark{kind: markHardBreak, span: Span{Start: i, End: end}})
			} else {
				p.marks = append(p.marks, mark{kind: markSoftBreak, span: Span{Start: i, End: end}})
			}
			i = end
			lastText = i
		case '`':
			flushText(i)
			n := i
			for n < len(b) && b[n] == '`' {
				n++
			}
			p.marks = append(p.marks, mark{kind: markCodeSpan, span: Span{Start: i, End: n}})
			i = n
			lastText = i
		case '$':
			if !p.opts.Math {
				i++
				continue
			}
			flushText(i)
			n := i
			for n < len(b) && b[n] == '$' {
				n++
			}
			if n-i <= 2 {
				p.marks = append(p.marks, mark{kind: markMathSpan, span: Span{Start: i, End: n}})
			}
			i = n
			lastText = i
		case '<':
			flushText(i)
			p.marks = append(p.marks, mark{kind: markAutolinkOrHTML, span: Span{Start: i, End: i + 1}})
			i++
			lastText = i
		case '[':
			if p.opts.Footnotes && i+1 < len(b) && b[i+1] == '^' {
				if end, label, ok := scanLinkLabel(b[i:]); ok && p.notes.reference(label[1:]) > 0 {
					flushText(i)
					p.marks = append(p.marks, mark{kind: markFootnoteRef, span: Span{Start: i, End: i + end}, text: normalizeLabel(label[1:])})
					i += end
					lastText = i
					continue
				}
			}
			flushText(i)
			p.marks = append(p.marks, mark{kind: markBracketOpen, span: Span{Start: i, End: i + 1}, active: true, matchIndex: -1})
			i++
			lastText = i
		case '!':
			if i+1 < len(b) && b[i+1] == '[' {
				flushText(i)
				p.marks = append(p.marks, mark{kind: markImageOpen, span: Span{Start: i, End: i + 2}, active: true, isImage: true, matchIndex: -1})
				i += 2
				lastText = i
			} else {
				i++
			}
		case ']':
			flushText(i)
			p.marks = append(p.marks, mark{kind: markBracketClose, span: Span{Start: i, End: i + 1}, matchIndex: -1})
			i++
			lastText = i
		case '&':
			if end, ok := scanEntity(b[i:]); ok {
				flushText(i)
				p.marks = append(p.marks, mark{kind: markEntity, span: Span{Start: i, End: i + end}})
				i += end
				lastText = i
			} else {
				i++
			}
		case '*', '_':
			flushText(i)
			n := i
			for n < len(b) && b[n] == c {
				n++
			}
			before, after := flankingBytes(b, i, n)
			canOpen, canClose := delimiterFlanks(c, before, after)
			p.marks = append(p.marks, mark{
				kind: markEmphDelim, span: Span{Start: i, End: n},
				delimChar: c, delimN: n - i, canOpen: canOpen, canClose: canClose,
			})
			i = n
			lastText = i
		case '~':
			if !p.opts.Strikethrough {
				i++
				continue
			}
			flushText(i)
			n := i
			for n < len(b) && b[n] == '~' {
				n++
			}
			if n-i <= 2 {
				before, after := flankingBytes(b, i, n)
				canOpen, canClose := delimiterFlanks('~', before, after)
				p.marks = append(p.marks, mark{
					kind: markStrikeDelim, span: Span{Start: i, End: n},
					delimChar: '~', delimN: n - i, canOpen: canOpen, canClose: canClose,
				})
			}
			i = n
			lastText = i
		case 'h', 'w':
			if !p.opts.AutolinkLiterals || (i > 0 && isASCIIAlnum(b[i-1])) {
				i++
				continue
			}
			if n, ok := scanAutolinkLiteral(b[i:]); ok {
				flushText(i)
				p.marks = append(p.marks, mark{kind: markAutolinkLiteral, span: Span{Start: i, End: i + n}, text: string(b[i : i+n])})
				i += n
				lastText = i
			} else {
				i++
			}
		case '@':
			if !p.opts.AutolinkLiterals {
				i++
				continue
			}
			if start, end, ok := scanAutolinkEmailAt(b, i); ok && start >= lastText {
				flushText(start)
				p.marks = append(p.marks, mark{kind: markAutolinkLiteral, span: Span{Start: start, End: end}, text: string(b[start:end]), isEmail: true})
				i = end
				lastText = i
			} else {
				i++
			}
		default:
			i++
		}
	}
	flushText(len(b))
}

// flankingBytes returns the rune-ish bytes immediately before start and
// at (or after) end, using 0 to mean "start/end of buffer" (treated as
// whitespace per §6.2's flanking rule).
func flankingBytes(b []byte, start, end int) (before, after byte) {
	if start > 0 {
		before = b[start-1]
	}
	if end < len(b) {
		after = b[end]
	}
	return before, after
}

// delimiterFlanks implements the left-/right-flanking delimiter run test
// (§6.2), collapsed to single boundary bytes since multi-byte runes only
// matter insofar as they are not ASCII punctuation or whitespace.
func delimiterFlanks(delim, before, after byte) (canOpen, canClose bool) {
	beforeWS := before == 0 || isSpaceTabOrLineEnding(before)
	afterWS := after == 0 || isSpaceTabOrLineEnding(after)
	beforePunct := !beforeWS && isASCIIPunct(before)
	afterPunct := !afterWS && isASCIIPunct(after)

	leftFlanking := !afterWS && (!afterPunct || beforeWS || beforePunct)
	rightFlanking := !beforeWS && (!beforePunct || afterWS || afterPunct)

	canOpen = leftFlanking
	canClose = rightFlanking
	if delim == '_' {
		canOpen = leftFlanking && (!rightFlanking || beforePunct)
		canClose = rightFlanking && (!leftFlanking || afterPunct)
	}
	return canOpen, canClose
}

// scanEntity recognizes a named, decimal, or hex character reference
// starting at b[0] == '&'. Returns the length consumed and whether it
// matched; unmatched runs are left as literal text.
func scanEntity(b []byte) (n int, ok bool) {
	if len(b) < 3 {
		return 0, false
	}
	if b[1] == '#' {
		i := 2
		hex := i < len(b) && (b[i] == 'x' || b[i] == 'X')
		if hex {
			i++
		}
		start := i
		for i < len(b) && i-start < 8 {
			c := b[i]
			if hex && !isHexDigit(c) {
				break
			}
			if !hex && !isASCIIDigit(c) {
				break
			}
			i++
		}
		if i == start || i >= len(b) || b[i] != ';' {
			return 0, false
		}
		return i + 1, true
	}
	i := 1
	start := i
	for i < len(b) && isASCIIAlnum(b[i]) && i-start < 32 {
		i++
	}
	if i == start || i >= len(b) || b[i] != ';' {
		return 0, false
	}
	name := string(b[start:i])
	raw := "&" + name + ";"
	if html.UnescapeString(raw) == raw {
		return 0, false
	}
	return i + 1, true
}

func isHexDigit(c byte) bool {
	return isASCIIDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// --- Phase 2a: code spans, math spans, autolinks, raw HTML ---

func (p *inlineParser) resolveCodeAndRawSpans() {
	for i := 0; i < len(p.marks); i++ {
		m := &p.marks[i]
		switch m.kind {
		case markCodeSpan:
			p.resolveCodeSpan(i)
		case markMathSpan:
			p.resolveMathSpan(i)
		case markAutolinkOrHTML:
			p.resolveAngleBracket(i)
		}
		if m.kind == markText || !m.closeSpan.IsValid() {
			continue
		}
		// Everything inside a resolved span is literal: drop the marks it
		// covers, cutting back any text mark that runs past its end.
		for j := i + 1; j < len(p.marks) && p.marks[j].span.Start < m.closeSpan.End; j++ {
			if p.marks[j].span.End > m.closeSpan.End {
				p.marks[j].kind, p.marks[j].span.Start = markText, m.closeSpan.End
			} else {
				p.marks[j].kind, p.marks[j].span = markText, NullSpan()
			}
		}
	}
}

func (p *inlineParser) resolveCodeSpan(i int) {
	opener := &p.marks[i]
	n := opener.span.Len()
	if n > maxBacktickRunLengths {
		opener.kind = markText
		return
	}
	for j := i + 1; j < len(p.marks); j++ {
		cand := &p.marks[j]
		if cand.kind != markCodeSpan || cand.span.Len() != n {
			continue
		}
		opener.closeSpan = cand.span
		opener.content = Span{Start: opener.span.End, End: cand.span.Start}
		cand.kind = markText
		cand.span = NullSpan()
		return
	}
	opener.kind = markText
}

func (p *inlineParser) resolveMathSpan(i int) {
	opener := &p.marks[i]
	n := opener.span.Len()
	for j := i + 1; j < len(p.marks); j++ {
		cand := &p.marks[j]
		if cand.kind != markMathSpan || cand.span.Len() != n {
			continue
		}
		opener.closeSpan = cand.span
		opener.content = Span{Start: opener.span.End, End: cand.span.Start}
		if n == 2 {
			opener.kind = markMathSpan
			opener.delimN = 2
		} else {
			opener.delimN = 1
		}
		cand.kind = markText
		cand.span = NullSpan()
		return
	}
	opener.kind = markText
}

// resolveAngleBracket tries, in order, an autolink, then a raw HTML tag,
// at a '<' mark. If neither matches it degrades to literal text.
func (p *inlineParser) resolveAngleBracket(i int) {
	m := &p.marks[i]
	rest := p.source[m.span.Start:]
	if url, email, n, ok := scanAutolink(rest); ok {
		m.kind = markAutolinkOrHTML
		m.text = url
		m.isEmail = email
		m.closeSpan = Span{Start: m.span.Start, End: m.span.Start + n}
		return
	}
	r := newTagReader(rest, 1)
	end := parseHTMLTagBody(r)
	if end >= 0 {
		m.text = string(rest[:end])
		m.closeSpan = Span{Start: m.span.Start, End: m.span.Start + end}
		return
	}
	m.kind = markText
}

// --- Phase 2b: links and images ---

func (p *inlineParser) resolveBrackets() {
	var stack []int
	for i := 0; i < len(p.marks); i++ {
		m := &p.marks[i]
		switch m.kind {
		case markBracketOpen, markImageOpen:
			if len(stack) < maxBracketStackDepth {
				stack = append(stack, i)
			}
		case markBracketClose:
			idx := -1
			for k := len(stack) - 1; k >= 0; k-- {
				if p.marks[stack[k]].active {
					idx = k
					break
				}
			}
			if idx < 0 {
				continue
			}
			openPos := stack[idx]
			if p.tryResolveLink(openPos, i) {
				// Marks inside an inline or reference tail belong to the link.
				if tail := p.marks[i].closeSpan; tail.IsValid() {
					for j := i + 1; j < len(p.marks) && p.marks[j].span.Start < tail.End; j++ {
						p.marks[j].kind, p.marks[j].span = markText, NullSpan()
					}
				}
				if p.marks[openPos].kind == markBracketOpen {
					for k := 0; k < idx; k++ {
						p.marks[stack[k]].active = false
					}
				}
				stack = stack[:idx]
			} else {
				p.marks[openPos].active = false
				stack = append(stack[:idx], stack[idx+1:]...)
			}
		}
	}
}

// tryResolveLink attempts to pair an opener at openPos with the closing
// ']' at closePos, trying inline destination, then full/collapsed/
// shortcut reference forms (§4.7's four link forms).
func (p *inlineParser) tryResolveLink(openPos, closePos int) bool {
	opener := &p.marks[openPos]
	closer := &p.marks[closePos]
	after := p.source[closer.span.End:]

	if hasBytePrefix(after, "(") {
		if dest, title, hasTitle, n, ok := scanInlineLinkTail(after); ok {
			p.finishLink(openPos, closePos, dest, title, hasTitle, "")
			closer.closeSpan = Span{Start: closer.span.End, End: closer.span.End + n}
			return true
		}
	}

	label := strings.TrimSpace(string(p.source[opener.span.End:closer.span.Start]))
	if hasBytePrefix(after, "[") {
		if end, refLabel, ok := scanLinkLabel(after); ok {
			lookup := refLabel
			if lookup == "" {
				lookup = label
			}
			if def, found := p.refs.lookup(normalizeLabel(lookup)); found {
				p.finishLink(openPos, closePos, def.destination, def.title, def.hasTitle, normalizeLabel(lookup))
				closer.closeSpan = Span{Start: closer.span.End, End: closer.span.End + end}
				return true
			}
			return false
		}
	}

	if def, found := p.refs.lookup(normalizeLabel(label)); found {
		p.finishLink(openPos, closePos, def.destination, def.title, def.hasTitle, normalizeLabel(label))
		closer.closeSpan = NullSpan() // shortcut form: no tail after "]"
		return true
	}
	return false
}

func (p *inlineParser) finishLink(openPos, closePos int, dest, title string, hasTitle bool, refID string) {
	opener := &p.marks[openPos]
	closer := &p.marks[closePos]
	opener.resolved = true
	opener.matchIndex = closePos
	opener.dest = dest
	opener.title = title
	opener.hasTitle = hasTitle
	opener.referenceID = refID
	opener.isImage = opener.kind == markImageOpen
	closer.resolved = true
	closer.matchIndex = openPos
}

// --- Phase 2c: emphasis and strong emphasis ---

// resolveEmphasis pairs emphasis delimiter runs using the modulo-3 rule
// (§6.2): when scanning left for an opener, the rule only blocks a
// pairing when either the opener or the closer can both open and close,
// and the sum of the two run lengths is a multiple of three while the
// lengths themselves are not.
func (p *inlineParser) resolveEmphasis() {
	var openers []int
	depth := 0
	for i := 0; i < len(p.marks); i++ {
		m := &p.marks[i]
		if m.kind != markEmphDelim {
			continue
		}
		depth++
		if depth > maxDelimiterStackDepth {
			continue
		}
		paired := false
		if m.canClose {
			for k := len(openers) - 1; k >= 0; k-- {
				o := &p.marks[openers[k]]
				if o.delimChar != m.delimChar || o.usedLeft >= o.delimN {
					continue
				}
				if (o.canOpen && o.canClose || m.canOpen && m.canClose) &&
					(o.delimN+m.delimN)%3 == 0 && o.delimN%3 != 0 {
					continue
				}
				n := 1
				if o.delimN-o.usedLeft >= 2 && m.delimN-m.usedRight >= 2 {
					n = 2
				}
				o.usedLeft += n
				m.usedRight += n
				p.emitEmphPair(openers[k], i, n)
				if o.usedLeft >= o.delimN {
					openers = append(openers[:k], openers[k+1:]...)
				}
				if m.usedRight < m.delimN {
					i--
				}
				paired = true
				break
			}
		}
		if !paired && m.canOpen {
			openers = append(openers, i)
		}
	}
}

// emphPair records a resolved (possibly partial) emphasis/strong span so
// phase 3 can emit matching start/end events without re-scanning marks.
type emphPair struct {
	openIdx, closeIdx int
	strong            bool
	openStart, openEnd int
	closeStart, closeEnd int
}

func (p *inlineParser) emitEmphPair(openIdx, closeIdx, n int) {
	o := &p.marks[openIdx]
	c := &p.marks[closeIdx]
	// The caller has already added n to o.usedLeft/c.usedRight, so these
	// reflect the run's cumulative consumption through this pair: the
	// delimiters used here sit immediately past whatever the run already
	// gave up, nearer the content for the first pair out of a run and
	// progressively farther out for each later pair from the same run.
	// That ordering is what makes nested pairs from one run (***foo***)
	// come out with the right-most-consumed pair innermost.
	pair := emphPair{
		openIdx: openIdx, closeIdx: closeIdx, strong: n == 2,
		openStart: o.span.End - o.usedLeft, closeEnd: c.span.Start + c.usedRight,
	}
	pair.openEnd = pair.openStart + n
	pair.closeStart = pair.closeEnd - n
	p.emphPairs = append(p.emphPairs, pair)
}

func (p *inlineParser) resolveStrikethrough() {
	var opener *int
	for i := range p.marks {
		m := &p.marks[i]
		if m.kind != markStrikeDelim {
			continue
		}
		if opener != nil && m.canClose {
			o := &p.marks[*opener]
			pair := emphPair{openIdx: *opener, closeIdx: i, strong: false,
				openStart: o.span.Start, openEnd: o.span.End,
				closeStart: m.span.Start, closeEnd: m.span.End}
			p.strikePairs = append(p.strikePairs, pair)
			opener = nil
			continue
		}
		if m.canOpen {
			idx := i
			opener = &idx
		}
	}
}

// --- Phase 3: emission ---

func (p *inlineParser) emit(dst []InlineEvent) []InlineEvent {
	events := make([]rangedEvent, 0, len(p.marks))
	for i := range p.marks {
		m := &p.marks[i]
		switch m.kind {
		case markText:
			if m.span.IsValid() && m.span.Len() > 0 {
				events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{Kind: Text, Range: m.span}})
			}
		case markEntity:
			decoded := html.UnescapeString(string(p.source[m.span.Start:m.span.End]))
			events = append(events, rangedEvent{pos: m.span.Start, end: m.span.End, ev: InlineEvent{Kind: Text, Literal: decoded}})
		case markSoftBreak:
			events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{Kind: SoftBreak, Range: m.span}})
		case markHardBreak:
			events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{Kind: HardBreak, Range: m.span}})
		case markCodeSpan:
			if m.closeSpan.IsValid() {
				events = append(events, rangedEvent{pos: m.span.Start, end: m.closeSpan.End, ev: InlineEvent{Kind: Code, Range: normalizeCodeSpanContent(p.source, m.content)}})
			}
		case markMathSpan:
			if m.closeSpan.IsValid() {
				kind := MathInline
				if m.delimN == 2 {
					kind = MathDisplay
				}
				events = append(events, rangedEvent{pos: m.span.Start, end: m.closeSpan.End, ev: InlineEvent{Kind: kind, Range: m.content}})
			}
		case markAutolinkOrHTML:
			if m.closeSpan.IsValid() {
				if m.text != "" && (m.isEmail || looksLikeURL(m.text)) {
					events = append(events, rangedEvent{pos: m.span.Start, end: m.closeSpan.End, ev: InlineEvent{Kind: Autolink, URL: m.text, IsEmail: m.isEmail}})
				} else {
					events = append(events, rangedEvent{pos: m.span.Start, end: m.closeSpan.End, ev: InlineEvent{Kind: HTMLSpan, Range: m.closeSpan}})
				}
			}
		case markBracketOpen, markImageOpen:
			if m.resolved {
				events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{
					Kind: LinkStart, Dest: m.dest, Title: m.title, HasTitle: m.hasTitle,
					IsImage: m.isImage, ReferenceID: m.referenceID,
				}})
			} else {
				events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{Kind: Text, Range: m.span}})
			}
		case markBracketClose:
			if m.resolved {
				end := m.span.End
				if m.closeSpan.IsValid() {
					end = m.closeSpan.End
				}
				events = append(events, rangedEvent{pos: end, ev: InlineEvent{Kind: LinkEnd}})
			} else {
				events = append(events, rangedEvent{pos: m.span.Start, ev: InlineEvent{Kind: Text, Range: m.span}})
			}
		case markAutolinkLiteral:
			// URL is kept exactly as written (e.g. a bare "www." form with
			// no scheme); the sink adds "http://"/"mailto:" to the href
			// while keeping this text as the visible label.
			events = append(events, rangedEvent{pos: m.span.Start, end: m.span.End, ev: InlineEvent{Kind: Autolink, URL: m.text, IsEmail: m.isEmail}})
		case markFootnoteRef:
			events = append(events, rangedEvent{pos: m.span.Start, end: m.span.End, ev: InlineEvent{Kind: FootnoteRef, FootnoteLabel: m.text}})
		}
	}
	for _, pair := range p.emphPairs {
		startKind, endKind := EmphStart, EmphEnd
		if pair.strong {
			startKind, endKind = StrongStart, StrongEnd
		}
		events = append(events, rangedEvent{pos: pair.openStart, ev: InlineEvent{Kind: startKind}})
		events = append(events, rangedEvent{pos: pair.closeStart, ev: InlineEvent{Kind: endKind}})
	}
	for _, pair := range p.strikePairs {
		events = append(events, rangedEvent{pos: pair.openStart, ev: InlineEvent{Kind: StrikeStart}})
		events = append(events, rangedEvent{pos: pair.closeStart, ev: InlineEvent{Kind: StrikeEnd}})
	}
	sortRangedEvents(events)
	for _, re := range events {
		dst = append(dst, re.ev)
	}
	return dst
}

type rangedEvent struct {
	pos int
	end int
	ev  InlineEvent
}

// sortRangedEvents performs a stable insertion sort by position: event
// counts per inline span are small enough that this beats importing
// sort for a one-off, and stability preserves emission order for events
// that share a position (an emphasis close and a link end, say).
func sortRangedEvents(events []rangedEvent) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].pos < events[j-1].pos; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}

func normalizeCodeSpanContent(source []byte, content Span) Span {
	// Leading/trailing single spaces are stripped by the sink when it
	// detects the span isn't all-whitespace; stripping here would require
	// a second buffer, so the sink (html.go) performs the trim while
	// writing, per CommonMark's code-span normalization rule (§6.1).
	return content
}

func looksLikeURL(s string) bool {
	scheme, _, ok := strings.Cut(s, ":")
	if !ok || len(scheme) < 2 || len(scheme) > 32 {
		return false
	}
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		if !isASCIIAlnum(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}
	return isASCIILetter(scheme[0])
}
