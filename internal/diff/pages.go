/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diff

import "comicscript/internal/domain"

// PanelDiff compares one panel position across two page versions.
// Equality is decided solely on the visual description; lettering is
// not diffed at the panel level. VisualDiff is set for modified panels.
type PanelDiff struct {
	Index      int
	Status     Status
	OldText    string
	NewText    string
	VisualDiff *Result
}

// PageDiff aggregates the panel diffs of one page position. The page
// status is modified iff any panel differs.
type PageDiff struct {
	PageNumber int
	Status     Status
	Panels     []PanelDiff
}

// ComparePages compares two page lists position by position: page i of
// the old version against page i of the new version, regardless of
// content or page numbers. A page present on one side only is
// added/removed wholesale. Because matching is positional rather than
// identity-based, inserting a page shifts the status of every page
// after it to modified even when its content is byte-identical; callers
// relying on this output accept that trade-off.
func ComparePages(oldPages, newPages []domain.Page) []PageDiff {
	n := len(oldPages)
	if len(newPages) > n {
		n = len(newPages)
	}
	out := make([]PageDiff, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i >= len(oldPages):
			out = append(out, PageDiff{PageNumber: newPages[i].Number, Status: StatusAdded, Panels: wholePagePanels(newPages[i], StatusAdded)})
		case i >= len(newPages):
			out = append(out, PageDiff{PageNumber: oldPages[i].Number, Status: StatusRemoved, Panels: wholePagePanels(oldPages[i], StatusRemoved)})
		default:
			out = append(out, comparePage(oldPages[i], newPages[i]))
		}
	}
	return out
}

func comparePage(oldPage, newPage domain.Page) PageDiff {
	pd := PageDiff{PageNumber: newPage.Number, Status: StatusUnchanged}
	n := len(oldPage.Panels)
	if len(newPage.Panels) > n {
		n = len(newPage.Panels)
	}
	for i := 0; i < n; i++ {
		var panel PanelDiff
		switch {
		case i >= len(oldPage.Panels):
			panel = PanelDiff{Index: i, Status: StatusAdded, NewText: newPage.Panels[i].VisualDescription}
		case i >= len(newPage.Panels):
			panel = PanelDiff{Index: i, Status: StatusRemoved, OldText: oldPage.Panels[i].VisualDescription}
		default:
			panel = comparePanel(i, oldPage.Panels[i], newPage.Panels[i])
		}
		if panel.Status != StatusUnchanged {
			pd.Status = StatusModified
		}
		pd.Panels = append(pd.Panels, panel)
	}
	return pd
}

func comparePanel(idx int, oldPanel, newPanel domain.Panel) PanelDiff {
	if oldPanel.VisualDescription == newPanel.VisualDescription {
		return PanelDiff{Index: idx, Status: StatusUnchanged, OldText: oldPanel.VisualDescription, NewText: newPanel.VisualDescription}
	}
	vd := ComputeLineDiff(oldPanel.VisualDescription, newPanel.VisualDescription)
	return PanelDiff{
		Index:      idx,
		Status:     StatusModified,
		OldText:    oldPanel.VisualDescription,
		NewText:    newPanel.VisualDescription,
		VisualDiff: &vd,
	}
}

func wholePagePanels(pg domain.Page, status Status) []PanelDiff {
	out := make([]PanelDiff, 0, len(pg.Panels))
	for i, pn := range pg.Panels {
		pd := PanelDiff{Index: i, Status: status}
		if status == StatusAdded {
			pd.NewText = pn.VisualDescription
		} else {
			pd.OldText = pn.VisualDescription
		}
		out = append(out, pd)
	}
	return out
}
