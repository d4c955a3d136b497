/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package markdown implements the emphasis subset used across script
// content: *italic*, **bold**, and ***bold italic***. It is shared by
// the word counter, search indexing, and pacing warnings. Anything the
// parser cannot balance degrades to literal text; it never fails.
package markdown

import (
	"strings"
	"unicode"
)

// Kind classifies a parsed segment.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindBoldItalic
)

func (k Kind) String() string {
	switch k {
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindBoldItalic:
		return "bold-italic"
	default:
		return "text"
	}
}

// Segment is one run of uniformly styled text. Concatenating the
// Content of all segments of a parse reproduces the visible characters
// of the input in order; segments never overlap.
type Segment struct {
	Kind    Kind
	Content string
}

// marker returns the asterisk run that opens and closes a segment kind.
func marker(k Kind) string {
	switch k {
	case KindBoldItalic:
		return "***"
	case KindBold:
		return "**"
	case KindItalic:
		return "*"
	default:
		return ""
	}
}

// Parse tokenizes s into styled segments. Longer marker runs win:
// *** is tried before ** before *. An opening run without a matching
// closing run of the same length is kept as literal text. Escaped
// asterisks (\*) are treated as literal and the backslash is dropped.
func Parse(s string) []Segment {
	if s == "" {
		return nil
	}
	var segs []Segment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			segs = append(segs, Segment{Kind: KindText, Content: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '*' {
			plain.WriteByte('*')
			i += 2
			continue
		}
		if s[i] != '*' {
			plain.WriteByte(s[i])
			i++
			continue
		}
		run := asteriskRun(s, i)
		matched := false
		for _, try := range []int{3, 2, 1} {
			if run < try {
				continue
			}
			open := i + try
			close := findClose(s, open, try)
			if close < 0 {
				continue
			}
			flush()
			kind := KindItalic
			switch try {
			case 3:
				kind = KindBoldItalic
			case 2:
				kind = KindBold
			}
			segs = append(segs, Segment{Kind: kind, Content: unescape(s[open:close])})
			i = close + try
			matched = true
			break
		}
		if !matched {
			// lone or unbalanced markers stay literal
			plain.WriteString(s[i : i+run])
			i += run
		}
	}
	flush()
	return segs
}

// asteriskRun returns the length of the asterisk run starting at i,
// capped at 3 since longer runs carry no extra meaning.
func asteriskRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '*' && n < 3 {
		n++
	}
	return n
}

// findClose locates an unescaped run of exactly-or-more width asterisks
// after from, returning the index where the content ends, or -1.
func findClose(s string, from, width int) int {
	for j := from; j+width <= len(s); j++ {
		if s[j] == '\\' && j+1 < len(s) && s[j+1] == '*' {
			j++
			continue
		}
		if s[j] != '*' {
			continue
		}
		if asteriskRunExact(s, j) >= width {
			if j == from {
				return -1 // empty emphasis like **** is not a span
			}
			return j
		}
	}
	return -1
}

func asteriskRunExact(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '*' {
		n++
	}
	return n
}

// ToMarkdown serializes segments back to marker syntax. For input with
// balanced markers and no literal backslashes, ToMarkdown(Parse(s))
// reproduces s exactly.
func ToMarkdown(segs []Segment) string {
	var b strings.Builder
	for _, seg := range segs {
		m := marker(seg.Kind)
		b.WriteString(m)
		if seg.Kind == KindText {
			b.WriteString(escapeLiteral(seg.Content))
		} else {
			b.WriteString(Escape(seg.Content))
		}
		b.WriteString(m)
	}
	return b.String()
}

// Strip returns the visible text of s with all emphasis markers removed.
func Strip(s string) string {
	segs := Parse(s)
	var b strings.Builder
	for _, seg := range segs {
		b.WriteString(seg.Content)
	}
	return b.String()
}

// CountWords counts whitespace-separated words in the visible text,
// excluding the marker characters themselves.
func CountWords(s string) int {
	return len(strings.Fields(Strip(s)))
}

// Replace performs a case-insensitive replacement of find within each
// segment's content, preserving segment styling. Matches never span a
// segment boundary; markers are not searched.
func Replace(s, find, repl string) string {
	if find == "" {
		return s
	}
	segs := Parse(s)
	for i := range segs {
		segs[i].Content = replaceFold(segs[i].Content, find, repl)
	}
	return ToMarkdown(segs)
}

// replaceFold is strings.ReplaceAll with case folding on the haystack
// side. Matching compares rune by rune; lowercasing a whole string can
// change its UTF-8 length (U+0130 shrinks, for one), so byte offsets
// into a lowered copy would drift from the original.
func replaceFold(s, find, repl string) string {
	needle := []rune(strings.ToLower(find))
	if len(needle) == 0 {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	start := 0
	for i := 0; i+len(needle) <= len(runes); i++ {
		match := true
		for j, nr := range needle {
			if unicode.ToLower(runes[i+j]) != nr {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		b.WriteString(string(runes[start:i]))
		b.WriteString(repl)
		i += len(needle) - 1
		start = i + 1
	}
	if start == 0 {
		return s
	}
	b.WriteString(string(runes[start:]))
	return b.String()
}

// Escape prefixes every asterisk with a backslash so the text survives
// a later Parse as literal content.
func Escape(s string) string {
	return strings.ReplaceAll(s, "*", `\*`)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return strings.ReplaceAll(s, `\*`, "*")
}

// unescape drops backslash-escapes inside an emphasis span.
func unescape(s string) string { return Unescape(s) }

// escapeLiteral protects asterisks in plain text segments only when
// they would otherwise open a span. Lone unbalanced asterisks parsed as
// literal text round-trip unescaped.
func escapeLiteral(s string) string {
	// a literal segment produced by Parse contains only asterisk runs
	// that had no closing partner, so writing them back verbatim
	// re-parses to the same literal text
	return s
}
