/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diff

import (
	"testing"

	"comicscript/internal/domain"
)

func page(num int, descs ...string) domain.Page {
	pg := domain.Page{Number: num}
	for i, d := range descs {
		pg.Panels = append(pg.Panels, domain.Panel{Number: i + 1, VisualDescription: d})
	}
	return pg
}

func TestComparePagesIdentical(t *testing.T) {
	pages := []domain.Page{
		page(1, "Wide shot.", "Close-up."),
		page(2, "Splash page."),
	}
	diffs := ComparePages(pages, pages)
	if len(diffs) != 2 {
		t.Fatalf("expected 2 page diffs, got %d", len(diffs))
	}
	for _, pd := range diffs {
		if pd.Status != StatusUnchanged {
			t.Fatalf("expected unchanged page, got %+v", pd)
		}
		for _, pn := range pd.Panels {
			if pn.Status != StatusUnchanged {
				t.Fatalf("expected unchanged panel, got %+v", pn)
			}
		}
	}
}

func TestComparePagesModifiedPanel(t *testing.T) {
	oldPages := []domain.Page{page(1, "Wide shot.", "Close-up.")}
	newPages := []domain.Page{page(1, "Wide shot.", "Extreme close-up.")}
	diffs := ComparePages(oldPages, newPages)
	if diffs[0].Status != StatusModified {
		t.Fatalf("expected page modified, got %+v", diffs[0])
	}
	if diffs[0].Panels[0].Status != StatusUnchanged {
		t.Fatalf("expected panel 0 unchanged, got %+v", diffs[0].Panels[0])
	}
	p1 := diffs[0].Panels[1]
	if p1.Status != StatusModified || p1.VisualDiff == nil {
		t.Fatalf("expected panel 1 modified with visual diff, got %+v", p1)
	}
}

func TestComparePagesAddedAndRemoved(t *testing.T) {
	oldPages := []domain.Page{page(1, "a"), page(2, "b")}
	newPages := []domain.Page{page(1, "a")}
	diffs := ComparePages(oldPages, newPages)
	if len(diffs) != 2 || diffs[1].Status != StatusRemoved {
		t.Fatalf("expected trailing removed page, got %+v", diffs)
	}
	diffs = ComparePages(newPages, oldPages)
	if len(diffs) != 2 || diffs[1].Status != StatusAdded {
		t.Fatalf("expected trailing added page, got %+v", diffs)
	}
}

// Comparison is positional, not identity based: prepending a page
// shifts every later page into a different slot, so byte-identical
// pages downstream report as modified. That behavior is contract.
func TestComparePagesPrependShiftsStatuses(t *testing.T) {
	p1 := page(1, "First page art.")
	p2 := page(2, "Second page art.")
	p0 := page(1, "A brand new opening page.")
	diffs := ComparePages(
		[]domain.Page{p1, p2},
		[]domain.Page{p0, p1, p2},
	)
	if len(diffs) != 3 {
		t.Fatalf("expected 3 page diffs, got %d", len(diffs))
	}
	if diffs[0].Status != StatusModified {
		t.Fatalf("slot 0 compares p1 vs p0 and must be modified, got %+v", diffs[0])
	}
	if diffs[1].Status != StatusModified {
		t.Fatalf("slot 1 compares p2 vs p1 and must be modified, got %+v", diffs[1])
	}
	if diffs[2].Status != StatusAdded {
		t.Fatalf("slot 2 exists only on the new side, got %+v", diffs[2])
	}
}

func TestComparePanelsIgnoreLettering(t *testing.T) {
	oldPg := domain.Page{Number: 1, Panels: []domain.Panel{{
		VisualDescription: "Same art.",
		Lettering:         []domain.Lettering{{Kind: domain.LetteringDialogue, Speaker: "A", Text: "old line"}},
	}}}
	newPg := domain.Page{Number: 1, Panels: []domain.Panel{{
		VisualDescription: "Same art.",
		Lettering:         []domain.Lettering{{Kind: domain.LetteringDialogue, Speaker: "A", Text: "totally new line"}},
	}}}
	diffs := ComparePages([]domain.Page{oldPg}, []domain.Page{newPg})
	if diffs[0].Status != StatusUnchanged {
		t.Fatalf("panel equality is decided on visual description only, got %+v", diffs[0])
	}
}

func TestComparePagesEmpty(t *testing.T) {
	if diffs := ComparePages(nil, nil); len(diffs) != 0 {
		t.Fatalf("expected no diffs for empty inputs, got %+v", diffs)
	}
}
