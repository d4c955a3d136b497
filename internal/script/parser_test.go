/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "testing"

func TestParsePanelsBasic(t *testing.T) {
	input := `Panel 1: Wide shot of the rooftop at night.
ALICE: Hello, world!
  And a continuation line.
SFX: KRAKOOM
Panel 2
Closer on Alice's face.
CAPTION: Meanwhile, elsewhere...
BOB: Hi, Alice.`

	panels := ParsePanels(input, 1)
	if len(panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(panels))
	}
	p1 := panels[0]
	if p1.Number != 1 || p1.Description != "Wide shot of the rooftop at night." {
		t.Fatalf("unexpected panel 1: %+v", p1)
	}
	if len(p1.Lines) != 2 {
		t.Fatalf("expected 2 lettering lines on panel 1, got %+v", p1.Lines)
	}
	if p1.Lines[0].Type != LineDialogue || p1.Lines[0].Speaker != "ALICE" {
		t.Fatalf("expected ALICE dialogue first, got %+v", p1.Lines[0])
	}
	if p1.Lines[0].Text != "Hello, world!\nAnd a continuation line." {
		t.Fatalf("unexpected dialogue text: %q", p1.Lines[0].Text)
	}
	if p1.Lines[1].Type != LineSFX || p1.Lines[1].Text != "KRAKOOM" {
		t.Fatalf("expected SFX line, got %+v", p1.Lines[1])
	}
	p2 := panels[1]
	if p2.Number != 2 || p2.Description != "Closer on Alice's face." {
		t.Fatalf("unexpected panel 2: %+v", p2)
	}
	if p2.Lines[0].Type != LineCaption || p2.Lines[0].Speaker != "" {
		t.Fatalf("expected caption, got %+v", p2.Lines[0])
	}
	if p2.Lines[1].Speaker != "BOB" {
		t.Fatalf("expected BOB dialogue, got %+v", p2.Lines[1])
	}
}

func TestParsePanelsImplicitFirstPanel(t *testing.T) {
	input := `A cold open without a panel marker.
CAPTION: A caption.
; reminder for the artist`

	panels := ParsePanels(input, 10)
	if len(panels) != 1 {
		t.Fatalf("expected implicit panel, got %d", len(panels))
	}
	p := panels[0]
	if p.Number != 1 || p.StartLine != 10 {
		t.Fatalf("unexpected implicit panel: %+v", p)
	}
	if p.Description != "A cold open without a panel marker." {
		t.Fatalf("unexpected description: %q", p.Description)
	}
	if len(p.Lines) != 2 || p.Lines[0].Type != LineCaption || p.Lines[1].Type != LineNote {
		t.Fatalf("unexpected lines: %+v", p.Lines)
	}
	if p.Lines[1].LineNo != 12 {
		t.Fatalf("expected absolute line numbers, got %+v", p.Lines[1])
	}
}

func TestParsePanelsDescriptionAccumulates(t *testing.T) {
	input := `Panel 3 - The chase begins. @chase
More description on the next line.`

	panels := ParsePanels(input, 1)
	if len(panels) != 1 || panels[0].Number != 3 {
		t.Fatalf("unexpected panels: %+v", panels)
	}
	want := "The chase begins. @chase More description on the next line."
	if panels[0].Description != want {
		t.Fatalf("expected %q, got %q", want, panels[0].Description)
	}
	if len(panels[0].Tags) != 1 || panels[0].Tags[0] != "chase" {
		t.Fatalf("expected tag [chase], got %+v", panels[0].Tags)
	}
}

func TestParsePanelsTagsAndSpeakers(t *testing.T) {
	input := `Panel 1
ALICE: Hello @prop
  cont @extra
BOB: Hey.
CAPTION: Meanwhile @loc1`

	panels := ParsePanels(input, 1)
	if len(panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(panels))
	}
	dlg := panels[0].Lines[0]
	if !containsAll(dlg.Tags, []string{"extra", "prop"}) {
		t.Fatalf("expected tags [extra prop], got %+v", dlg.Tags)
	}
	speakers := Speakers(panels)
	if len(speakers) != 2 || speakers[0] != "ALICE" || speakers[1] != "BOB" {
		t.Fatalf("unexpected speakers: %+v", speakers)
	}
}

func TestParsePanelsEmptyInput(t *testing.T) {
	if panels := ParsePanels("", 1); len(panels) != 0 {
		t.Fatalf("expected no panels for empty input, got %+v", panels)
	}
	if panels := ParsePanels("\n\n   \n", 1); len(panels) != 0 {
		t.Fatalf("expected no panels for blank input, got %+v", panels)
	}
}

func containsAll(haystack []string, needles []string) bool {
	m := map[string]struct{}{}
	for _, h := range haystack {
		m[h] = struct{}{}
	}
	for _, n := range needles {
		if _, ok := m[n]; !ok {
			return false
		}
	}
	return true
}
