/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package structure

import (
	"regexp"
	"strconv"
	"strings"
)

// marker is the outcome of matching one line against the pattern table.
type marker struct {
	kind      markerKind
	number    int    // act or page number; 0 when absent
	title     string // act title or scene title
	location  string
	timeOfDay string
	interior  bool
}

type markerKind int

const (
	markerNone markerKind = iota
	markerAct
	markerScene
	markerPage
)

// Patterns are tried in order; the first match wins. Bracketed and
// dashed decorations are stripped before matching so `[ACT TWO]` and
// `--- ACT TWO ---` hit the same act pattern as `ACT TWO`.
var (
	reDecorBrackets = regexp.MustCompile(`^\[\s*(.*?)\s*\]$`)
	reDecorDashes   = regexp.MustCompile(`^-{2,}\s*(.*?)\s*-{2,}$`)
	reDecorHeading  = regexp.MustCompile(`^#{1,6}\s*(.*)$`)

	reAct = regexp.MustCompile(`(?i)^ACT\s+([A-Z0-9]+)\s*(?:[:.\-]\s*(.*))?$`)

	reSceneExplicit = regexp.MustCompile(`(?i)^SCENE\s*(\d+)?\s*(?:[:.\-]\s*(.*))?$`)
	reSceneIntExt   = regexp.MustCompile(`(?i)^(INT/EXT|I/E|INT|EXT)[.\s/]+\s*(.+?)(?:\s+-\s+(.+))?$`)
	reSceneBare     = regexp.MustCompile(`^([A-Z][A-Z0-9' .]{2,})\s+-\s+(DAY|NIGHT|DUSK|DAWN|MORNING|EVENING|AFTERNOON|LATER|CONTINUOUS)$`)

	rePage = regexp.MustCompile(`(?i)^(?:PAGE|PG\.?)\s+([A-Z0-9]+)\s*[:.\-]?\s*$`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100}

// parseCount reads a count expressed as digits, a spelled-out word
// (one through twenty), or a roman numeral. Returns 0 when the token is
// none of those.
func parseCount(tok string) int {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0
	}
	if n, err := strconv.Atoi(tok); err == nil && n > 0 {
		return n
	}
	if n, ok := numberWords[strings.ToLower(tok)]; ok {
		return n
	}
	return parseRoman(strings.ToUpper(tok))
}

func parseRoman(s string) int {
	total := 0
	prev := 0
	for i := len(s) - 1; i >= 0; i-- {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0
		}
		if v < prev {
			total -= v
		} else {
			total += v
			prev = v
		}
	}
	return total
}

// stripDecoration removes one layer of bracket, dash, or markdown
// heading decoration around a candidate marker line.
func stripDecoration(line string) string {
	if m := reDecorBrackets.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reDecorDashes.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reDecorHeading.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return line
}

// classify matches a trimmed line against the ordered pattern table.
func classify(line string) marker {
	line = stripDecoration(strings.TrimSpace(line))
	if line == "" {
		return marker{kind: markerNone}
	}

	if m := reAct.FindStringSubmatch(line); m != nil {
		if n := parseCount(m[1]); n > 0 {
			return marker{kind: markerAct, number: n, title: strings.TrimSpace(m[2])}
		}
	}
	if m := reSceneExplicit.FindStringSubmatch(line); m != nil {
		num := 0
		if m[1] != "" {
			num, _ = strconv.Atoi(m[1])
		}
		return marker{kind: markerScene, number: num, title: strings.TrimSpace(m[2])}
	}
	if m := reSceneIntExt.FindStringSubmatch(line); m != nil {
		loc := strings.TrimSpace(m[2])
		return marker{
			kind:      markerScene,
			title:     loc,
			location:  loc,
			timeOfDay: strings.TrimSpace(m[3]),
			interior:  !strings.EqualFold(m[1], "EXT"),
		}
	}
	if m := reSceneBare.FindStringSubmatch(line); m != nil {
		loc := strings.TrimSpace(m[1])
		return marker{kind: markerScene, title: loc, location: loc, timeOfDay: m[2]}
	}
	if m := rePage.FindStringSubmatch(line); m != nil {
		if n := parseCount(m[1]); n > 0 {
			return marker{kind: markerPage, number: n}
		}
	}
	return marker{kind: markerNone}
}
