/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script parses the content block of one page into panels and
// lettering lines. Supported syntax:
//   - Panel markers: "Panel 2", "PANEL 2:", optionally followed by the
//     start of the visual description on the same line.
//   - Dialogue: NAME: text (NAME captured as Speaker, upper-cased).
//     Continuation lines indented by 2+ spaces append to the previous
//     dialogue or caption.
//   - Caption: CAPTION: text or NARRATION: text.
//   - Sound effects: SFX: text or SOUND: text.
//   - Notes: lines starting with ';'.
//   - Anything else accumulates into the panel's visual description.
//
// Content before the first panel marker belongs to an implicit panel 1.
// Tags like @tag-name are extracted from lettering text.
package script

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	rePanel   = regexp.MustCompile(`(?i)^Panel\s+(\d+)\s*[:.\-]?\s*(.*)$`)
	reSpeaker = regexp.MustCompile(`^([A-Za-z0-9_\- ]{1,64})\s*:\s*(.*)$`)
	reTag     = regexp.MustCompile(`(?i)@([a-z0-9_\-]+)`)
)

// ParsePanels parses a page content block. baseLine is the 1-based line
// number of the block's first line in the whole script, so reported
// line numbers stay absolute. Empty input yields no panels.
func ParsePanels(input string, baseLine int) []Panel {
	if baseLine < 1 {
		baseLine = 1
	}
	var panels []Panel
	var cur *Panel
	var lastLine *Line

	ensurePanel := func(lineNo int) *Panel {
		if cur == nil {
			panels = append(panels, Panel{Number: len(panels) + 1, StartLine: lineNo})
			cur = &panels[len(panels)-1]
		}
		return cur
	}

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	offset := 0
	for scanner.Scan() {
		lineNo := baseLine + offset
		offset++
		line := strings.TrimRight(scanner.Text(), "\r")

		// Continuation line (indented) -> append to last dialogue/caption
		if strings.HasPrefix(line, "  ") && lastLine != nil && (lastLine.Type == LineDialogue || lastLine.Type == LineCaption) {
			cont := strings.TrimSpace(line)
			if cont != "" {
				lastLine.Text += "\n" + cont
				lastLine.Tags = mergeTags(lastLine.Tags, extractTags(cont))
			}
			continue
		}

		trim := strings.TrimSpace(line)
		if trim == "" {
			lastLine = nil
			continue
		}

		if m := rePanel.FindStringSubmatch(trim); m != nil {
			num, _ := strconv.Atoi(m[1])
			panels = append(panels, Panel{Number: num, StartLine: lineNo})
			cur = &panels[len(panels)-1]
			if rest := strings.TrimSpace(m[2]); rest != "" {
				cur.Description = rest
				cur.Tags = mergeTags(cur.Tags, extractTags(rest))
			}
			lastLine = nil
			continue
		}

		if strings.HasPrefix(trim, ";") {
			p := ensurePanel(lineNo)
			p.Lines = append(p.Lines, Line{Type: LineNote, Text: strings.TrimSpace(strings.TrimPrefix(trim, ";")), LineNo: lineNo})
			lastLine = nil
			continue
		}

		if m := reSpeaker.FindStringSubmatch(trim); m != nil {
			name := strings.ToUpper(strings.TrimSpace(m[1]))
			text := strings.TrimSpace(m[2])
			lt := LineDialogue
			speaker := name
			switch name {
			case "CAPTION", "NARRATION":
				lt = LineCaption
				speaker = ""
			case "SFX", "SOUND":
				lt = LineSFX
				speaker = ""
			}
			p := ensurePanel(lineNo)
			p.Lines = append(p.Lines, Line{Type: lt, Speaker: speaker, Text: text, Tags: extractTags(text), LineNo: lineNo})
			lastLine = &p.Lines[len(p.Lines)-1]
			continue
		}

		// anything else is visual description
		p := ensurePanel(lineNo)
		if p.Description != "" {
			p.Description += " "
		}
		p.Description += trim
		p.Tags = mergeTags(p.Tags, extractTags(trim))
		lastLine = nil
	}
	return panels
}

// Speakers returns the distinct dialogue speakers across panels, sorted.
func Speakers(panels []Panel) []string {
	set := map[string]struct{}{}
	for _, p := range panels {
		for _, l := range p.Lines {
			if l.Type == LineDialogue && l.Speaker != "" {
				set[l.Speaker] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func extractTags(s string) []string {
	found := reTag.FindAllStringSubmatch(s, -1)
	if len(found) == 0 {
		return nil
	}
	m := map[string]struct{}{}
	for _, f := range found {
		if len(f) > 1 {
			t := strings.ToLower(strings.TrimSpace(f[1]))
			if t != "" {
				m[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func mergeTags(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	m := map[string]struct{}{}
	for _, t := range a {
		m[t] = struct{}{}
	}
	for _, t := range b {
		m[t] = struct{}{}
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
