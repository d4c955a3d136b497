/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package markdown

import "testing"

func TestParseBoldRun(t *testing.T) {
	segs := Parse("I **love** this")
	want := []Segment{
		{Kind: KindText, Content: "I "},
		{Kind: KindBold, Content: "love"},
		{Kind: KindText, Content: " this"},
	}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %+v", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d: expected %+v, got %+v", i, want[i], segs[i])
		}
	}
	if n := CountWords("I **love** this"); n != 3 {
		t.Fatalf("expected 3 words, got %d", n)
	}
}

func TestParsePrefersBoldItalic(t *testing.T) {
	segs := Parse("***all three***")
	if len(segs) != 1 || segs[0].Kind != KindBoldItalic || segs[0].Content != "all three" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestParseItalic(t *testing.T) {
	segs := Parse("a *b* c")
	if len(segs) != 3 || segs[1].Kind != KindItalic || segs[1].Content != "b" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestUnbalancedMarkersStayLiteral(t *testing.T) {
	for _, in := range []string{"a * b", "a ** b", "*never closed", "**nope"} {
		segs := Parse(in)
		for _, s := range segs {
			if s.Kind != KindText {
				t.Fatalf("input %q: expected only text segments, got %+v", in, segs)
			}
		}
		if Strip(in) != in {
			t.Fatalf("input %q: strip changed literal text to %q", in, Strip(in))
		}
	}
}

func TestAdjacentRunsStaySeparate(t *testing.T) {
	segs := Parse("**a****b**")
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %+v", segs)
	}
	if segs[0].Kind != KindBold || segs[0].Content != "a" || segs[1].Kind != KindBold || segs[1].Content != "b" {
		t.Fatalf("unexpected segments: %+v", segs)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain text only",
		"I **love** this",
		"mix *i* and **b** and ***bi***",
		"**lead** trailing text",
		"tail text **end**",
		"*a* *b* *c*",
	}
	for _, in := range inputs {
		if out := ToMarkdown(Parse(in)); out != in {
			t.Fatalf("round trip failed: %q -> %q", in, out)
		}
	}
}

func TestStripAndCountAgree(t *testing.T) {
	inputs := []string{
		"I **love** this",
		"***one*** *two* **three four**",
		"no markers here at all",
	}
	for _, in := range inputs {
		stripped := Strip(in)
		if got, want := CountWords(in), CountWords(stripped); got != want {
			t.Fatalf("input %q: CountWords %d != stripped count %d", in, got, want)
		}
	}
}

func TestReplaceCaseInsensitive(t *testing.T) {
	got := Replace("The **Villain** meets the villain", "villain", "Doctor Null")
	want := "The **Doctor Null** meets the Doctor Null"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestReplaceFoldMultibyteCase(t *testing.T) {
	// U+0130 lowercases to a shorter UTF-8 sequence; offsets must still
	// line up with the original text around the match.
	got := Replace("İstanbul harbor at dawn", "istanbul", "Ankara")
	want := "Ankara harbor at dawn"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	got = Replace("the CAFÉ scene", "café", "rooftop")
	if got != "the rooftop scene" {
		t.Fatalf("expected %q, got %q", "the rooftop scene", got)
	}
}

func TestEscapeUnescape(t *testing.T) {
	in := "rated 5* by *everyone*"
	esc := Escape(in)
	if esc != `rated 5\* by \*everyone\*` {
		t.Fatalf("unexpected escape: %q", esc)
	}
	if Unescape(esc) != in {
		t.Fatalf("unescape did not invert escape: %q", Unescape(esc))
	}
	// escaped asterisks never open an emphasis span
	segs := Parse(esc)
	for _, s := range segs {
		if s.Kind != KindText {
			t.Fatalf("escaped input produced styled segment: %+v", segs)
		}
	}
	if Strip(esc) != in {
		t.Fatalf("expected stripped escape to equal original, got %q", Strip(esc))
	}
}

func TestEmptyInput(t *testing.T) {
	if segs := Parse(""); segs != nil {
		t.Fatalf("expected nil segments for empty input, got %+v", segs)
	}
	if CountWords("") != 0 {
		t.Fatalf("expected 0 words for empty input")
	}
}
