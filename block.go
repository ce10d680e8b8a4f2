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

// This file is the line-oriented block parser (§2): it walks the source
// one line at a time, maintaining a stack of open containers
// (blockquote, list, list item) and at most one open leaf (paragraph,
// code block, HTML block, table), and appends BlockEvent values to a
// caller-owned slice as blocks open and close. It generalizes the
// teacher's descendOpenBlocks/openNewBlocks/addLineText control flow
// (parse.go) from mutating a *Block tree to appending events, while
// keeping the same per-line phases: match existing containers, open new
// containers and a leaf, then hand the remaining text to the leaf.

type containerKind uint8

const (
	containerDocument containerKind = iota
	containerBlockquote
	containerList
	containerListItem
	containerFootnoteDef
)

type container struct {
	kind          containerKind
	bulletChar    byte
	ordered       bool
	orderDelim    byte
	orderStart    int
	contentIndent int // column the container's content starts at
	tight         bool
	pendingBlank  bool // blank line seen since this container's last block
	childCount    int
	footnoteLabel string
	callout       CalloutKind
}

type leafKind uint8

const (
	leafNone leafKind = iota
	leafParagraph
	leafFencedCode
	leafIndentedCode
	leafHTMLBlock
	leafTable
)

type leaf struct {
	kind       leafKind
	lines      []Span // raw content lines (newline-exclusive), source offsets
	fenceChar  byte
	fenceLen   int
	fenceIndent int
	info       Span
	htmlCond   int // index into htmlBlockConditions
	tableAligns []Alignment
	tableHeaderDone bool
}

// blockParser holds the state of one compile pass over a document.
type blockParser struct {
	opts   *Options
	source []byte
	refs   *refStore
	notes  *footnoteStore
	events []BlockEvent

	containers []container
	leaf       leaf
	lastLineBlank bool
	skipToPos  int // when > 0, lines starting before this source offset are already consumed
}

func newBlockParser(source []byte, opts *Options, refs *refStore, notes *footnoteStore) *blockParser {
	return &blockParser{
		opts:       opts,
		source:     source,
		refs:       refs,
		notes:      notes,
		containers: []container{{kind: containerDocument, tight: true}},
	}
}

// parseBlocks runs the block parser to completion and returns the event
// stream. Link reference definitions are extracted into refs as
// paragraphs close (§4.7); inline content is left unresolved (Inlines is
// nil) for the compilation driver to fill in afterward.
func parseBlocks(source []byte, opts *Options, refs *refStore, notes *footnoteStore) []BlockEvent {
	p := newBlockParser(source, opts, refs, notes)
	pos := 0
	for pos < len(source) {
		content, end, kind := nextLine(source, pos)
		_ = kind
		p.processLine(source[content.Start:content.End], content, end)
		pos = end
	}
	p.closeContainersTo(0)
	if p.leaf.kind != leafNone {
		p.closeLeaf()
	}
	return p.events
}

func (p *blockParser) processLine(line []byte, lineSpan Span, nextLineStart int) {
	if p.skipToPos > lineSpan.Start {
		return
	}
	indent, firstNonBlank := countIndent(line)
	rest := line[firstNonBlank:]
	blank := isBlankLine(rest)

	matched := p.matchContainers(&line, &indent, &rest, &firstNonBlank)

	if p.leaf.kind == leafFencedCode || p.leaf.kind == leafHTMLBlock {
		if p.continueSpecialLeaf(line, rest, indent, lineSpan, firstNonBlank) {
			p.lastLineBlank = blank
			return
		}
	}

	lazy := false
	if matched < len(p.containers) && p.leaf.kind == leafParagraph {
		// Lazy continuation: a paragraph continues across a container
		// boundary mismatch as long as the line isn't itself a new block
		// start (§5.2).
		if !blank && !p.looksLikeNewBlockStart(rest, indent) {
			lazy = true
		}
	}
	if !lazy {
		p.closeContainersTo(matched)
		p.openNewContainers(line, &indent, &rest, &firstNonBlank, blank)
	}

	if blank {
		p.handleBlankLine()
		p.lastLineBlank = true
		return
	}

	p.handleLeafLine(rest, indent, lineSpan, firstNonBlank, nextLineStart)
	p.lastLineBlank = false
}

// matchContainers walks the open container stack from the document root,
// consuming indentation/markers that match each open blockquote or list
// item, and returns how many containers (from the root) still match.
// col tracks a byte offset into the line; each open list item's required
// indent is measured in columns from that offset's local baseline, which
// is exact except for tab alignment across a container boundary that
// itself follows a tab — an accepted approximation.
func (p *blockParser) matchContainers(line *[]byte, indent *int, rest *[]byte, firstNonBlank *int) int {
	matched := 1 // the document container always matches
	col := 0
	b := *line
	for matched < len(p.containers) {
		c := &p.containers[matched]
		switch c.kind {
		case containerBlockquote:
			skip, ok := matchBlockquoteMarker(b, col)
			if !ok {
				return matched
			}
			col = skip
		case containerListItem, containerFootnoteDef:
			sub := b[minInt(len(b), col):]
			avail, _ := countIndent(sub)
			if isBlankLine(sub) {
				return matched
			}
			if avail < c.contentIndent {
				return matched
			}
			col += advanceColumns(sub, 0, c.contentIndent)
		case containerList:
			// Lists themselves consume no characters; their item does.
		}
		matched++
	}
	*rest = b[minInt(len(b), col):]
	*indent, *firstNonBlank = countIndent(*rest)
	*firstNonBlank += col
	return matched
}

func matchBlockquoteMarker(b []byte, col int) (newCol int, ok bool) {
	start := minInt(len(b), col)
	trimmed := b[start:]
	indent, _ := countIndent(trimmed)
	if indent >= codeBlockIndentLimit {
		return col, false
	}
	skip := indentLength(trimmed)
	if skip >= len(trimmed) || trimmed[skip] != '>' {
		return col, false
	}
	skip++
	if skip < len(trimmed) && (trimmed[skip] == ' ' || trimmed[skip] == '\t') {
		skip++
	}
	return col + skip, true
}

func advanceColumns(b []byte, fromCol, toCol int) int {
	i := 0
	col := 0
	for i < len(b) && col < toCol {
		if b[i] == '\t' {
			col += tabStopSize - col%tabStopSize
		} else {
			col++
		}
		i++
	}
	return i
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// looksLikeNewBlockStart reports whether rest begins a block type that
// ends lazy paragraph continuation (§5.2). Any list marker counts, an
// ordered one not starting at 1 included: the paragraph's container no
// longer matches, so the marker opens a new item instead of interrupting it.
func (p *blockParser) looksLikeNewBlockStart(rest []byte, indent int) bool {
	if indent >= codeBlockIndentLimit {
		return false
	}
	if parseThematicBreak(rest) >= 0 {
		return true
	}
	if h := parseATXHeading(rest); h.level > 0 {
		return true
	}
	if f := parseCodeFence(rest); f.n > 0 {
		return true
	}
	if m := parseListMarker(rest); m.end >= 0 {
		return true
	}
	if len(rest) > 0 && rest[0] == '>' {
		return true
	}
	for _, cond := range htmlBlockConditions {
		if cond.canInterruptParagraph && cond.startCondition(rest) {
			return true
		}
	}
	return false
}

// openNewContainers opens any new blockquote/list-item containers that
// start on this line, consuming their markers from rest.
func (p *blockParser) openNewContainers(line []byte, indent *int, rest *[]byte, firstNonBlank *int, blank bool) {
	for {
		if *indent < codeBlockIndentLimit && len(*rest) > 0 && (*rest)[0] == '>' {
			skip := 1
			if skip < len(*rest) && ((*rest)[skip] == ' ' || (*rest)[skip] == '\t') {
				skip++
			}
			p.pushContainer(container{kind: containerBlockquote, tight: true})
			p.emit(BlockEvent{Kind: BlockquoteStart})
			*rest = (*rest)[skip:]
			*indent, _ = countIndent(*rest)
			continue
		}
		m := parseListMarker(*rest)
		if *indent < codeBlockIndentLimit && m.end >= 0 {
			if p.leaf.kind == leafParagraph && m.isOrdered() && m.n != 1 {
				break
			}
			after := (*rest)[m.end:]
			afterIndent, afterFirstNonBlank := countIndent(after)
			itemBlank := isBlankLine(after)
			contentIndent := m.end + afterIndent
			if itemBlank {
				contentIndent = m.end + 1
			} else if afterIndent >= codeBlockIndentLimit {
				contentIndent = m.end + 1
			}
			if !p.sameListRun(m) {
				p.pushContainer(container{kind: containerList, bulletChar: m.delim, ordered: m.isOrdered(), orderDelim: m.delim, orderStart: m.n, tight: true})
				p.emit(BlockEvent{
					Kind: ListStart, ListKind: boolToListKind(m.isOrdered()),
					BulletChar: m.delim, OrderStart: m.n, OrderDelim: m.delim, Tight: true,
				})
			}
			if top := p.top(); top.pendingBlank {
				p.listContainer().tight = false
			}
			task := NoTask
			if p.opts.TaskLists {
				task = detectTaskMarker(after[afterFirstNonBlank:])
			}
			p.pushContainer(container{kind: containerListItem, contentIndent: contentIndent})
			p.emit(BlockEvent{Kind: ListItemStart, Task: task})
			*rest = after
			if task != NoTask {
				*rest = skipTaskMarker(after[afterFirstNonBlank:])
			}
			*indent, _ = countIndent(*rest)
			continue
		}
		if p.opts.Footnotes && p.leaf.kind == leafNone {
			if label, end := parseFootnoteDefMarker(*rest); end >= 0 {
				after := (*rest)[end:]
				afterIndent, _ := countIndent(after)
				contentIndent := end + afterIndent
				if isBlankLine(after) {
					contentIndent = end + 1
				}
				_, inserted := p.notes.insertDef(label, len(p.events))
				p.pushContainer(container{kind: containerFootnoteDef, contentIndent: contentIndent, footnoteLabel: label})
				// Label is normalized here (rather than kept raw) so it
				// matches the normalized form FootnoteRef.FootnoteLabel
				// carries, the same convention refStore uses for link labels.
				p.emit(BlockEvent{Kind: FootnoteDefStart, Label: normalizeLabel(label)})
				if !inserted {
					// Duplicate label: still parses as a container so its
					// content doesn't leak into the surrounding block, but
					// the store keeps only the first definition.
				}
				*rest = after
				*indent, _ = countIndent(*rest)
				continue
			}
		}
		break
	}
	// *rest remains a suffix of line throughout, so its absolute offset
	// is recoverable from the byte-length difference.
	base := len(line) - len(*rest)
	localIndent, localFirstNonBlank := countIndent(*rest)
	*indent = localIndent
	*firstNonBlank = base + localFirstNonBlank
	_ = blank
}

func boolToListKind(ordered bool) ListMarkerKind {
	if ordered {
		return OrderedList
	}
	return BulletList
}

// sameListRun reports whether the innermost open list container is
// already a list of the same bullet/order-delimiter kind, meaning this
// marker starts a new item in that list rather than a new nested list.
func (p *blockParser) sameListRun(m listMarker) bool {
	for i := len(p.containers) - 1; i >= 0; i-- {
		c := &p.containers[i]
		if c.kind == containerListItem {
			continue
		}
		if c.kind == containerList {
			return c.bulletChar == m.delim && c.ordered == m.isOrdered()
		}
		return false
	}
	return false
}

func (p *blockParser) listContainer() *container {
	for i := len(p.containers) - 1; i >= 0; i-- {
		if p.containers[i].kind == containerList {
			return &p.containers[i]
		}
	}
	return &p.containers[0]
}

func (p *blockParser) top() *container {
	return &p.containers[len(p.containers)-1]
}

func (p *blockParser) pushContainer(c container) {
	if len(p.containers) >= maxBlockNestingDepth {
		return
	}
	if p.leaf.kind != leafNone {
		p.closeLeaf()
	}
	p.containers = append(p.containers, c)
}

func (p *blockParser) closeContainersTo(n int) {
	if p.leaf.kind != leafNone && len(p.containers) > n {
		p.closeLeaf()
	}
	for len(p.containers) > n && len(p.containers) > 0 {
		c := p.containers[len(p.containers)-1]
		p.containers = p.containers[:len(p.containers)-1]
		switch c.kind {
		case containerBlockquote:
			p.emit(BlockEvent{Kind: BlockquoteEnd})
		case containerList:
			// Tightness is only final at close time; carry it back to the
			// matching ListStart, which is what the renderer reads.
			depth := 0
			for j := len(p.events) - 1; j >= 0; j-- {
				if p.events[j].Kind == ListEnd {
					depth++
				} else if p.events[j].Kind == ListStart {
					if depth == 0 {
						p.events[j].Tight = c.tight
						break
					}
					depth--
				}
			}
			p.emit(BlockEvent{Kind: ListEnd, Tight: c.tight})
		case containerListItem:
			p.emit(BlockEvent{Kind: ListItemEnd})
		case containerFootnoteDef:
			p.emit(BlockEvent{Kind: FootnoteDefEnd})
		}
	}
}

func (p *blockParser) handleBlankLine() {
	if p.leaf.kind == leafParagraph {
		p.closeLeaf()
	}
	if p.leaf.kind == leafIndentedCode {
		p.leaf.lines = append(p.leaf.lines, NullSpan())
	}
	for i := range p.containers {
		p.containers[i].pendingBlank = true
	}
}

// handleLeafLine dispatches a non-blank, non-lazy-continuation line to
// either continue the currently open leaf or open a new one.
func (p *blockParser) handleLeafLine(rest []byte, indent int, lineSpan Span, firstNonBlank, nextLineStart int) {
	switch p.leaf.kind {
	case leafIndentedCode:
		if indent >= codeBlockIndentLimit {
			p.leaf.lines = append(p.leaf.lines, Span{Start: lineSpan.Start + firstNonBlank + codeBlockIndentLimit - indent, End: lineSpan.End})
			return
		}
		p.closeLeaf()
	case leafParagraph:
		if level := parseSetextHeadingUnderline(rest); level > 0 && indent < codeBlockIndentLimit {
			p.closeParagraphAsSetext(level)
			return
		}
	case leafTable:
		if bytes.IndexByte(rest, '|') >= 0 {
			cells := splitTableRow(rest)
			p.emitTableRow(cells, lineSpan, firstNonBlank, TableBodyRow)
			return
		}
		p.closeLeaf()
	}

	if indent >= codeBlockIndentLimit && p.leaf.kind == leafNone {
		p.leaf = leaf{kind: leafIndentedCode, lines: []Span{{Start: lineSpan.Start + firstNonBlank + codeBlockIndentLimit, End: lineSpan.End}}}
		return
	}

	if p.leaf.kind == leafNone {
		if end := parseThematicBreak(rest); end >= 0 {
			p.emit(BlockEvent{Kind: ThematicBreak})
			return
		}
		if h := parseATXHeading(rest); h.level > 0 {
			raw := Span{Start: lineSpan.Start + firstNonBlank + h.content.Start, End: lineSpan.Start + firstNonBlank + h.content.End}
			p.emit(BlockEvent{Kind: HeadingStart, Level: h.level})
			p.emit(BlockEvent{Kind: InlineText, InlineRange: raw})
			p.emit(BlockEvent{Kind: HeadingEnd, Level: h.level, Raw: raw})
			return
		}
		if f := parseCodeFence(rest); f.n > 0 {
			p.leaf = leaf{
				kind: leafFencedCode, fenceChar: f.char, fenceLen: f.n, fenceIndent: indent,
				info: Span{Start: lineSpan.Start + firstNonBlank + f.info.Start, End: lineSpan.Start + firstNonBlank + f.info.End},
			}
			if !f.info.IsValid() {
				p.leaf.info = NullSpan()
			}
			p.emit(BlockEvent{Kind: CodeBlockStart, CodeKind: FencedCode, Info: p.leaf.info})
			return
		}
		if p.opts.Callouts && p.topIsFreshBlockquote() {
			if ck := calloutKindForLine(rest); ck != NoCallout {
				p.containers[len(p.containers)-1].callout = ck
				p.events[p.lastBlockquoteStartIndex()].Callout = ck
				return
			}
		}
		for idx, cond := range htmlBlockConditions {
			if cond.startCondition(rest) {
				p.leaf = leaf{kind: leafHTMLBlock, htmlCond: idx}
				p.emit(BlockEvent{Kind: HTMLBlockStart, HTMLKind: HTMLBlockKind(idx + 1)})
				contentSpan := Span{Start: lineSpan.Start + firstNonBlank, End: lineSpan.End}
				p.emit(BlockEvent{Kind: HTMLBlockLine, Line: contentSpan})
				if cond.endCondition(rest) {
					p.closeLeaf()
				}
				return
			}
		}
		if p.opts.Tables && bytes.IndexByte(rest, '|') >= 0 && nextLineStart < len(p.source) {
			delimContent, delimEnd, _ := nextLine(p.source, nextLineStart)
			delimLine := p.source[delimContent.Start:delimContent.End]
			if aligns, ok := parseDelimiterRow(delimLine); ok {
				headerCells := splitTableRow(rest)
				if len(headerCells) > 0 && len(headerCells) <= maxTableColumns && len(headerCells) == len(aligns) {
					p.startTable(aligns, headerCells, lineSpan, firstNonBlank, delimEnd)
					return
				}
			}
		}
	}

	switch p.leaf.kind {
	case leafFencedCode:
		p.appendFencedCodeLine(rest, lineSpan, firstNonBlank, indent)
	default:
		if p.leaf.kind == leafNone {
			p.leaf = leaf{kind: leafParagraph}
		}
		p.appendParagraphLine(lineSpan, firstNonBlank)
	}
}

func (p *blockParser) topIsFreshBlockquote() bool {
	top := p.top()
	// emit counts the BlockquoteStart event itself as the first child.
	return top.kind == containerBlockquote && top.childCount == 1
}

func (p *blockParser) lastBlockquoteStartIndex() int {
	for i := len(p.events) - 1; i >= 0; i-- {
		if p.events[i].Kind == BlockquoteStart {
			return i
		}
	}
	return 0
}

func (p *blockParser) appendParagraphLine(lineSpan Span, firstNonBlank int) {
	p.leaf.lines = append(p.leaf.lines, Span{Start: lineSpan.Start + firstNonBlank, End: lineSpan.End})
}

func (p *blockParser) appendFencedCodeLine(rest []byte, lineSpan Span, firstNonBlank, indent int) {
	if f := parseCodeFence(rest); f.n > 0 && f.char == p.leaf.fenceChar && f.n >= p.leaf.fenceLen && isBlankLine(rest[f.n:]) {
		p.closeLeaf()
		return
	}
	strip := minInt(indent, p.leaf.fenceIndent)
	start := lineSpan.Start + firstNonBlank - (indent - strip)
	if start < lineSpan.Start {
		start = lineSpan.Start
	}
	p.leaf.lines = append(p.leaf.lines, Span{Start: start, End: lineSpan.End})
}

// continueSpecialLeaf handles fenced-code and HTML-block continuation,
// which (unlike paragraphs and indented code) are not subject to the
// lazy-continuation/new-container-interruption rules in the same way.
func (p *blockParser) continueSpecialLeaf(line, rest []byte, indent int, lineSpan Span, firstNonBlank int) bool {
	switch p.leaf.kind {
	case leafFencedCode:
		p.appendFencedCodeLine(rest, lineSpan, firstNonBlank, indent)
		return true
	case leafHTMLBlock:
		contentSpan := Span{Start: lineSpan.Start, End: lineSpan.End}
		p.emit(BlockEvent{Kind: HTMLBlockLine, Line: contentSpan})
		if htmlBlockConditions[p.leaf.htmlCond].endCondition(line) {
			p.closeLeaf()
		}
		return true
	}
	return false
}

func (p *blockParser) closeParagraphAsSetext(level int) {
	lines := p.leaf.lines
	p.leaf = leaf{}
	p.emit(BlockEvent{Kind: HeadingStart, Level: level})
	p.emitInlineFromLines(lines)
	p.emit(BlockEvent{Kind: HeadingEnd, Level: level})
}

// closeLeaf finalizes whatever leaf is open, extracting link reference
// definitions from a closing paragraph (§4.7) before emitting its
// InlineText event, or emitting the code/HTML/table close events.
func (p *blockParser) closeLeaf() {
	switch p.leaf.kind {
	case leafParagraph:
		lines := p.leaf.lines
		if p.opts.AllowLinkRefs {
			lines = p.extractLeadingReferenceDefs(lines)
		}
		if len(lines) == 0 {
			p.leaf = leaf{}
			return
		}
		p.emit(BlockEvent{Kind: ParagraphStart})
		p.emitInlineFromLines(lines)
		p.emit(BlockEvent{Kind: ParagraphEnd})
	case leafIndentedCode:
		for len(p.leaf.lines) > 0 && !p.leaf.lines[len(p.leaf.lines)-1].IsValid() {
			p.leaf.lines = p.leaf.lines[:len(p.leaf.lines)-1]
		}
		p.emit(BlockEvent{Kind: CodeBlockStart, CodeKind: IndentedCode})
		for _, ln := range p.leaf.lines {
			if !ln.IsValid() {
				p.emit(BlockEvent{Kind: CodeBlockText, Text: Span{Start: 0, End: 0}})
				continue
			}
			p.emit(BlockEvent{Kind: CodeBlockText, Text: ln})
		}
		p.emit(BlockEvent{Kind: CodeBlockEnd})
	case leafFencedCode:
		for _, ln := range p.leaf.lines {
			p.emit(BlockEvent{Kind: CodeBlockText, Text: ln})
		}
		p.emit(BlockEvent{Kind: CodeBlockEnd})
	case leafHTMLBlock:
		p.emit(BlockEvent{Kind: HTMLBlockEnd})
	case leafTable:
		p.emit(BlockEvent{Kind: TableEnd})
	}
	p.leaf = leaf{}
}

// startTable opens a table leaf from an already-validated header row and
// delimiter row, skipping the delimiter row (already consumed by
// lookahead) on the next call into processLine.
func (p *blockParser) startTable(aligns []Alignment, headerCells []Span, lineSpan Span, firstNonBlank, delimEnd int) {
	p.leaf = leaf{kind: leafTable, tableAligns: aligns}
	p.emit(BlockEvent{Kind: TableStart, Aligns: aligns})
	p.emitTableRow(headerCells, lineSpan, firstNonBlank, TableHeadRow)
	p.skipToPos = delimEnd
}

func (p *blockParser) emitTableRow(cells []Span, lineSpan Span, firstNonBlank int, rowKind BlockEventKind) {
	p.emit(BlockEvent{Kind: rowKind})
	base := lineSpan.Start + firstNonBlank
	for _, rel := range cells {
		abs := Span{Start: base + rel.Start, End: base + rel.End}
		p.emit(BlockEvent{Kind: TableCellStart, InlineRange: abs})
		p.emit(BlockEvent{Kind: TableCellEnd})
	}
}

// extractLeadingReferenceDefs strips zero or more leading
// "[label]: dest "title"" lines from a paragraph's lines and inserts
// them into p.refs, per §4.7: link reference definitions are only
// recognized at the very start of what would otherwise be a paragraph.
func (p *blockParser) extractLeadingReferenceDefs(lines []Span) []Span {
	for len(lines) > 0 {
		text := p.joinLines(lines)
		label, dest, title, hasTitle, consumed, ok := scanReferenceDefinition(text)
		if !ok {
			return lines
		}
		p.refs.insert(normalizeLabel(label), dest, title, hasTitle)
		lines = linesAfterByteOffset(lines, text, consumed)
	}
	return lines
}

func (p *blockParser) joinLines(lines []Span) []byte {
	var buf bytes.Buffer
	for i, ln := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(p.source[ln.Start:ln.End])
	}
	return buf.Bytes()
}

// linesAfterByteOffset maps a byte offset into the joined-lines buffer
// back to the remaining subset of the original line spans, dropping any
// line fully consumed and trimming the first partially-consumed line.
func linesAfterByteOffset(lines []Span, joined []byte, offset int) []Span {
	pos := 0
	for i, ln := range lines {
		n := ln.Len()
		lineEnd := pos + n
		if offset <= pos {
			return lines[i:]
		}
		if offset <= lineEnd {
			remaining := ln.Start + (offset - pos)
			for remaining < ln.End && (joined[offset] == '\n') {
				break
			}
			rest := append([]Span{{Start: remaining, End: ln.End}}, lines[i+1:]...)
			return trimEmptyLeadingLines(rest)
		}
		pos = lineEnd + 1 // account for the joining '\n'
	}
	return nil
}

func trimEmptyLeadingLines(lines []Span) []Span {
	for len(lines) > 0 && lines[0].Len() == 0 {
		lines = lines[1:]
	}
	return lines
}

// emitInlineFromLines stores the raw line spans for later inline
// resolution by the compilation driver (resolveInlines), which joins a
// multi-line block's spans into the buffer handed to parseInline.
func (p *blockParser) emitInlineFromLines(lines []Span) {
	if sp, ok := asSingleSpan(lines); ok {
		p.emit(BlockEvent{Kind: InlineText, InlineRange: sp})
		return
	}
	spans := append([]Span(nil), lines...)
	p.emit(BlockEvent{Kind: InlineMultiRange, InlineRanges: spans})
}

func asSingleSpan(lines []Span) (Span, bool) {
	if len(lines) == 1 {
		return lines[0], true
	}
	return NullSpan(), false
}

func (p *blockParser) emit(ev BlockEvent) {
	if len(p.containers) > 0 {
		p.containers[len(p.containers)-1].childCount++
		p.containers[len(p.containers)-1].pendingBlank = false
	}
	p.events = append(p.events, ev)
}

func detectTaskMarker(after []byte) TaskState {
	if len(after) < 3 || after[0] != '[' {
		return NoTask
	}
	if after[2] != ']' {
		return NoTask
	}
	// A task marker must be followed by a space/tab or nothing at all;
	// "[x]foo" with no separating space is just literal bracketed text.
	if len(after) > 3 && !isSpaceTabOrLineEnding(after[3]) {
		return NoTask
	}
	switch after[1] {
	case ' ':
		return TaskUnchecked
	case 'x', 'X':
		return TaskChecked
	}
	return NoTask
}

func skipTaskMarker(rest []byte) []byte {
	rest = rest[3:]
	if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		rest = rest[1:]
	}
	return rest
}
