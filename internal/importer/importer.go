/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package importer turns a pasted or imported script text into the
// persistent domain model: structure detection first, then the panel
// parser over each page's content block.
package importer

import (
	"strings"

	"github.com/google/uuid"

	"comicscript/internal/domain"
	"comicscript/internal/script"
	"comicscript/internal/structure"
)

// Result carries the built issue together with the detection report so
// callers can show what was recognized.
type Result struct {
	Issue     domain.Issue
	Detection structure.Detection
}

// builder threads line data and page numbering through one import.
type builder struct {
	lines      []string
	boundaries []int
	nextPage   int
}

// Build parses scriptText into an issue. Scripts without any markers
// come back as the implicit one-act, one-scene structure with a single
// synthesized page; an empty text yields an empty issue. Build never
// fails: unrecognized lines end up as panel description content.
func Build(scriptText string) Result {
	det := structure.Detect(scriptText)
	b := &builder{
		lines:      splitLines(scriptText),
		boundaries: det.MarkerLines(),
		nextPage:   1,
	}

	iss := domain.Issue{Number: 1, ReadingDirection: "ltr"}
	for _, da := range det.Acts {
		act := domain.Act{Number: da.Number, Title: da.Title}
		for _, ds := range da.Scenes {
			sc := domain.Scene{
				Number:    ds.Number,
				Title:     ds.Title,
				Location:  ds.Location,
				TimeOfDay: ds.TimeOfDay,
				Interior:  ds.Interior,
			}
			for _, pageNo := range ds.Pages {
				if mark, ok := markFor(pageNo, det); ok {
					sc.Pages = append(sc.Pages, b.buildPage(pageNo, mark.Line))
					if pageNo >= b.nextPage {
						b.nextPage = pageNo + 1
					}
				}
			}
			if len(ds.Pages) == 0 {
				// scene body without page markers becomes one page so
				// no content is dropped
				if pg, ok := b.synthesizePage(ds.StartLine); ok {
					sc.Pages = append(sc.Pages, pg)
				}
			}
			act.Scenes = append(act.Scenes, sc)
		}
		iss.Acts = append(iss.Acts, act)
	}
	return Result{Issue: iss, Detection: det}
}

// buildPage slices the content block after the marker line at markLine
// and parses it into panels.
func (b *builder) buildPage(pageNo, markLine int) domain.Page {
	pg := domain.Page{Number: pageNo}
	start, end := b.blockRange(markLine)
	if start >= end {
		return pg
	}
	block := strings.Join(b.lines[start:end], "\n")
	for _, sp := range script.ParsePanels(block, start+1) {
		pg.Panels = append(pg.Panels, toPanel(sp))
	}
	return pg
}

// synthesizePage builds a page from a scene body that carries no page
// markers. markLine is the scene heading line, 0 for implicit scenes.
func (b *builder) synthesizePage(markLine int) (domain.Page, bool) {
	start, end := b.blockRange(markLine)
	if start >= end {
		return domain.Page{}, false
	}
	block := strings.Join(b.lines[start:end], "\n")
	if strings.TrimSpace(block) == "" {
		return domain.Page{}, false
	}
	pg := domain.Page{Number: b.nextPage}
	b.nextPage++
	for _, sp := range script.ParsePanels(block, start+1) {
		pg.Panels = append(pg.Panels, toPanel(sp))
	}
	return pg, true
}

// blockRange returns the half-open index range of content lines after
// the marker at markLine, up to the next structural boundary.
func (b *builder) blockRange(markLine int) (int, int) {
	start := markLine // marker occupies index markLine-1; content follows
	end := len(b.lines)
	for _, bl := range b.boundaries {
		if bl > markLine {
			end = bl - 1
			break
		}
	}
	return start, end
}

func markFor(pageNo int, det structure.Detection) (structure.PageMark, bool) {
	for _, pm := range det.PageMarks {
		if pm.Number == pageNo {
			return pm, true
		}
	}
	return structure.PageMark{}, false
}

func toPanel(sp script.Panel) domain.Panel {
	pn := domain.Panel{
		ID:                uuid.NewString(),
		Number:            sp.Number,
		VisualDescription: sp.Description,
		Tags:              sp.Tags,
	}
	for _, l := range sp.Lines {
		switch l.Type {
		case script.LineDialogue:
			pn.Lettering = append(pn.Lettering, domain.Lettering{Kind: domain.LetteringDialogue, Speaker: l.Speaker, Text: l.Text})
		case script.LineCaption:
			pn.Lettering = append(pn.Lettering, domain.Lettering{Kind: domain.LetteringCaption, Text: l.Text})
		case script.LineSFX:
			pn.Lettering = append(pn.Lettering, domain.Lettering{Kind: domain.LetteringSFX, Text: l.Text})
		case script.LineNote:
			if pn.Notes != "" {
				pn.Notes += "\n"
			}
			pn.Notes += l.Text
		}
	}
	return pn
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	for i := range parts {
		parts[i] = strings.TrimSuffix(parts[i], "\r")
	}
	return parts
}
