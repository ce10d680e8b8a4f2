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

// Package commonmark provides a streaming CommonMark-to-HTML compiler with
// a handful of GFM and superset extensions, gated by [Options].
//
// Compilation happens in two passes rather than building a tree: a
// block parser produces a []BlockEvent stream, and a second pass over
// that stream resolves each block's inline content into an []InlineEvent
// stream attached to the event that carries it. [ToHTMLEvents] is the only
// consumer of both streams shipped in this package, but either stream can
// be walked by a caller that wants its own sink; [Parse] and [ToHTML] run
// the whole pipeline for callers that just want HTML out.
package commonmark

import "bytes"

// ToHTML renders source as HTML using [DefaultOptions] and returns a fresh
// buffer.
func ToHTML(source []byte) []byte {
	return ToHTMLInto(nil, source)
}

// ToHTMLInto renders source as HTML using [DefaultOptions], appending to
// dst and returning the extended buffer. It is the append-style entry
// point for callers that want to reuse a buffer across calls.
func ToHTMLInto(dst []byte, source []byte) []byte {
	opts := DefaultOptions()
	out, _ := Parse(dst, source, &opts)
	return out
}

// Parse compiles source to HTML under opts (or [DefaultOptions] if opts is
// nil), appending the result to dst. It returns the extended buffer and the
// byte range of any leading front-matter block recognized under
// Options.FrontMatter (a zero-length invalid span if none was present),
// so a caller can separately parse that block (as YAML or TOML) without
// re-scanning the input.
func Parse(dst []byte, source []byte, opts *Options) (out []byte, frontMatter Span) {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	source = sanitizeSource(source)
	body := source
	if opts.FrontMatter {
		body, frontMatter = stripFrontMatter(source)
	} else {
		frontMatter = NullSpan()
	}

	refs := newRefStore(len(body))
	var notes *footnoteStore
	if opts.Footnotes {
		notes = newFootnoteStore()
	}
	events := parseBlocks(body, opts, refs, notes)

	buf := append([]byte(nil), body...)
	var ids *headingIDStore
	if opts.HeadingIDs {
		ids = newHeadingIDStore()
	}
	buf = resolveInlines(events, buf, opts, refs, notes, ids)

	out = ToHTMLEvents(dst, buf, events, opts)
	return out, frontMatter
}

// resolveInlines runs the inline parser over every block event that carries
// unresolved inline content, storing each event's InlineEvent stream on its
// own Inlines field and, for headings, computing the heading's slug once
// its content is resolved. It returns the (possibly grown) backing buffer
// that every Span in events indexes into: single-range events are resolved
// in place against buf, but a multi-range event's lines are first joined
// into a fresh chunk appended to the end of buf, since the inline parser
// requires one contiguous []byte per block.
func resolveInlines(events []BlockEvent, buf []byte, opts *Options, refs *refStore, notes *footnoteStore, ids *headingIDStore) []byte {
	for i := range events {
		switch events[i].Kind {
		case InlineText:
			sp := events[i].InlineRange
			src := buf[sp.Start:sp.End]
			inlines := parseInline(src, opts, refs, notes, nil)
			rebaseInlineEvents(inlines, sp.Start)
			events[i].Inlines = inlines
		case InlineMultiRange:
			start := len(buf)
			chunk := joinSpans(buf[:start], events[i].InlineRanges)
			buf = append(buf, chunk...)
			inlines := parseInline(chunk, opts, refs, notes, nil)
			rebaseInlineEvents(inlines, start)
			events[i].Inlines = inlines
			events[i].InlineSource = chunk
		case TableCellStart:
			sp := events[i].InlineRange
			src := buf[sp.Start:sp.End]
			inlines := parseInline(src, opts, refs, notes, nil)
			rebaseInlineEvents(inlines, sp.Start)
			events[i].Inlines = inlines
		}
	}
	if ids != nil {
		for i := 0; i+1 < len(events); i++ {
			if events[i].Kind == HeadingStart && (events[i+1].Kind == InlineText || events[i+1].Kind == InlineMultiRange) {
				events[i].Slug = ids.slugify(inlinePlainText(events[i+1].Inlines, buf))
			}
		}
	}
	return buf
}

// joinSpans joins a block's non-contiguous source lines with '\n', the same
// way blockParser.joinLines does for reference-definition scanning, so a
// container's stripped-prefix lines read as one contiguous buffer for the
// inline parser.
func joinSpans(source []byte, spans []Span) []byte {
	var buf bytes.Buffer
	for i, sp := range spans {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(source[sp.Start:sp.End])
	}
	return buf.Bytes()
}

// rebaseInlineEvents shifts every byte-range field of events that indexes
// into the buffer the inline parser was run over, so the events can be
// read against the larger buffer that buffer was copied or appended into.
func rebaseInlineEvents(events []InlineEvent, delta int) {
	for i := range events {
		if events[i].Range.IsValid() {
			events[i].Range = Span{Start: events[i].Range.Start + delta, End: events[i].Range.End + delta}
		}
	}
}

// inlinePlainText flattens a resolved InlineEvent stream to plain text,
// dropping markers (emphasis/strong/strike/link delimiters) and rendering
// breaks as a single space, for feeding to headingIDStore.slugify.
func inlinePlainText(events []InlineEvent, source []byte) string {
	var sb bytes.Buffer
	for _, ev := range events {
		switch ev.Kind {
		case Text:
			if ev.Literal != "" {
				sb.WriteString(ev.Literal)
			} else {
				sb.Write(spanSlice(source, ev.Range))
			}
		case Code, MathInline, MathDisplay:
			sb.Write(spanSlice(source, ev.Range))
		case SoftBreak, HardBreak:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
