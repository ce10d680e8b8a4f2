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

import "golang.org/x/net/html/atom"

// htmlBlockConditions is the set of the seven HTML block start and end
// conditions (§4.2.7), ported directly from the teacher's identically
// named table in html.go, which already draws its block-level tag list
// from golang.org/x/net/html/atom instead of a hand-written string list.
var htmlBlockConditions = []struct {
	startCondition        func(line []byte) bool
	endCondition          func(line []byte) bool
	canInterruptParagraph bool
}{
	{
		// Kind 1: <script>, <pre>, <style>, <textarea>.
		startCondition: func(line []byte) bool {
			for _, starter := range htmlBlockStarters1 {
				if hasCaseInsensitiveBytePrefix(line, starter) {
					rest := line[len(starter):]
					if len(rest) == 0 || isSpaceTabOrLineEnding(rest[0]) || rest[0] == '>' {
						return true
					}
				}
			}
			return false
		},
		endCondition: func(line []byte) bool {
			for _, ender := range htmlBlockEnders1 {
				if caseInsensitiveContains(line, ender) {
					return true
				}
			}
			return false
		},
		canInterruptParagraph: true,
	},
	{
		// Kind 2: <!-- comment -->.
		startCondition: func(line []byte) bool { return hasBytePrefix(line, "<!--") },
		endCondition:   func(line []byte) bool { return contains(line, "-->") },
		canInterruptParagraph: true,
	},
	{
		// Kind 3: <?processing instruction?>.
		startCondition: func(line []byte) bool { return hasBytePrefix(line, "<?") },
		endCondition:   func(line []byte) bool { return contains(line, "?>") },
		canInterruptParagraph: true,
	},
	{
		// Kind 4: <!DECLARATION>.
		startCondition: func(line []byte) bool {
			return hasBytePrefix(line, "<!") && len(line) >= 3 && isASCIILetter(line[2])
		},
		endCondition:          func(line []byte) bool { return contains(line, ">") },
		canInterruptParagraph: true,
	},
	{
		// Kind 5: <![CDATA[ ... ]]>.
		startCondition:        func(line []byte) bool { return hasBytePrefix(line, "<![CDATA[") },
		endCondition:          func(line []byte) bool { return contains(line, "]]>") },
		canInterruptParagraph: true,
	},
	{
		// Kind 6: block-level tags.
		startCondition: func(line []byte) bool {
			switch {
			case hasBytePrefix(line, "</"):
				line = line[2:]
			case hasBytePrefix(line, "<"):
				line = line[1:]
			default:
				return false
			}
			for _, starter := range htmlBlockStarters6 {
				if hasCaseInsensitiveBytePrefix(line, starter) {
					rest := line[len(starter):]
					if len(rest) == 0 || isSpaceTabOrLineEnding(rest[0]) || rest[0] == '>' || hasBytePrefix(rest, "/>") {
						return true
					}
				}
			}
			return false
		},
		endCondition:          isBlankLine,
		canInterruptParagraph: true,
	},
	{
		// Kind 7: any other complete open/closing tag, alone on its line.
		startCondition: func(line []byte) bool {
			if !hasBytePrefix(line, "<") {
				return false
			}
			r := newTagReader(line, 1)
			var end int
			if hasBytePrefix(line, "</") {
				end = parseHTMLClosingTag(r)
			} else {
				end = parseHTMLOpenTag(r)
			}
			if end < 0 {
				return false
			}
			return isBlankLine(line[end:])
		},
		endCondition:          isBlankLine,
		canInterruptParagraph: false,
	},
}

var htmlBlockStarters1 = []string{"<pre", "<script", "<style", "<textarea"}
var htmlBlockEnders1 = []string{"</pre>", "</script>", "</style>", "</textarea>"}

var htmlBlockStarters6 = []string{
	atom.Address.String(), atom.Article.String(), atom.Aside.String(), atom.Base.String(),
	atom.Basefont.String(), atom.Blockquote.String(), atom.Body.String(), atom.Caption.String(),
	atom.Center.String(), atom.Col.String(), atom.Colgroup.String(), atom.Dd.String(),
	atom.Details.String(), atom.Dialog.String(), atom.Dir.String(), atom.Div.String(),
	atom.Dl.String(), atom.Dt.String(), atom.Fieldset.String(), atom.Figcaption.String(),
	atom.Figure.String(), atom.Footer.String(), atom.Form.String(), atom.Frame.String(),
	atom.Frameset.String(), atom.H1.String(), atom.H2.String(), atom.H3.String(),
	atom.H4.String(), atom.H5.String(), atom.H6.String(), atom.Head.String(),
	atom.Header.String(), atom.Hr.String(), atom.Html.String(), atom.Iframe.String(),
	atom.Legend.String(), atom.Li.String(), atom.Link.String(), atom.Main.String(),
	atom.Menu.String(), atom.Menuitem.String(), atom.Nav.String(), atom.Noframes.String(),
	atom.Ol.String(), atom.Optgroup.String(), atom.Option.String(), atom.P.String(),
	atom.Param.String(), atom.Section.String(), atom.Source.String(), atom.Summary.String(),
	atom.Table.String(), atom.Tbody.String(), atom.Td.String(), atom.Tfoot.String(),
	atom.Th.String(), atom.Thead.String(), atom.Title.String(), atom.Tr.String(),
	atom.Track.String(), atom.Ul.String(),
}
