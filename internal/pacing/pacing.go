/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pacing scores an issue's page rhythm against editorial
// thresholds: lettering density, panel count, and the dialogue/silent
// panel balance. The exact scoring curve is a heuristic; the threshold
// table and the three insight kinds are the stable surface.
package pacing

import (
	"fmt"
	"sort"

	"comicscript/internal/domain"
)

// Threshold table. Ratios are over the panels of one page.
const (
	IdealWordsPerPageMin  = 30
	IdealWordsPerPageMax  = 100
	IdealPanelsPerPageMin = 4
	IdealPanelsPerPageMax = 6

	IdealDialogueRatioMin = 0.40
	IdealDialogueRatioMax = 0.60
	IdealSilentRatioMin   = 0.10
	IdealSilentRatioMax   = 0.20
)

// Panel lettering levels for per-panel length warnings.
const (
	PanelWordsWarn  = 25
	PanelWordsError = 35
)

// LengthLevel classifies a panel's lettering word count.
type LengthLevel string

const (
	LengthOK      LengthLevel = "ok"
	LengthWarning LengthLevel = "warning"
	LengthError   LengthLevel = "error"
)

// PanelLengthLevel returns ok below 25 words, warning from 25 through
// 34, and error at 35 or more.
func PanelLengthLevel(words int) LengthLevel {
	switch {
	case words >= PanelWordsError:
		return LengthError
	case words >= PanelWordsWarn:
		return LengthWarning
	default:
		return LengthOK
	}
}

// PageStats are the externally derived per-page inputs to the analyzer.
type PageStats struct {
	PageNumber     int
	Words          int
	Panels         int
	DialoguePanels int
	SilentPanels   int
}

// StatsFor derives PageStats from domain pages in order.
func StatsFor(pages []domain.Page) []PageStats {
	out := make([]PageStats, 0, len(pages))
	for _, pg := range pages {
		st := PageStats{PageNumber: pg.Number, Words: pg.WordCount(), Panels: len(pg.Panels)}
		for _, pn := range pg.Panels {
			if pn.HasDialogue() {
				st.DialoguePanels++
			}
			if pn.IsSilent() {
				st.SilentPanels++
			}
		}
		out = append(out, st)
	}
	return out
}

// InsightKind tags an insight.
type InsightKind string

const (
	InsightWarning    InsightKind = "warning"
	InsightSuggestion InsightKind = "suggestion"
	InsightStrength   InsightKind = "strength"
)

// Insight names an observation and the pages it applies to.
type Insight struct {
	Kind    InsightKind
	Message string
	Pages   []int
}

// Report is the analyzer output. Score is 0..100, monotonic in how far
// pages sit from the ideal ranges, deterministic for identical input.
type Report struct {
	Score      int
	PageScores map[int]int
	Insights   []Insight
}

// Analyze scores the given pages. Empty input yields an empty report
// with score 0 and no insights; pages with no panels or no words are
// flagged as warnings and never crash the scoring.
func Analyze(pages []PageStats) Report {
	rep := Report{PageScores: make(map[int]int, len(pages))}
	if len(pages) == 0 {
		return rep
	}

	var empty, dense, sparse, crowded, talky, quiet, airless, strong []int
	total := 0
	for _, pg := range pages {
		score := scorePage(pg)
		rep.PageScores[pg.PageNumber] = score
		total += score

		if pg.Panels == 0 || pg.Words == 0 {
			empty = append(empty, pg.PageNumber)
			continue
		}
		ideal := true
		if pg.Words > IdealWordsPerPageMax {
			dense = append(dense, pg.PageNumber)
			ideal = false
		}
		if pg.Words < IdealWordsPerPageMin {
			sparse = append(sparse, pg.PageNumber)
			ideal = false
		}
		if pg.Panels < IdealPanelsPerPageMin || pg.Panels > IdealPanelsPerPageMax {
			crowded = append(crowded, pg.PageNumber)
			ideal = false
		}
		dr := float64(pg.DialoguePanels) / float64(pg.Panels)
		sr := float64(pg.SilentPanels) / float64(pg.Panels)
		if dr > IdealDialogueRatioMax {
			talky = append(talky, pg.PageNumber)
			ideal = false
		} else if dr < IdealDialogueRatioMin {
			quiet = append(quiet, pg.PageNumber)
			ideal = false
		}
		if sr < IdealSilentRatioMin || sr > IdealSilentRatioMax {
			airless = append(airless, pg.PageNumber)
			ideal = false
		}
		if ideal {
			strong = append(strong, pg.PageNumber)
		}
	}
	rep.Score = total / len(pages)

	add := func(kind InsightKind, msg string, pgs []int) {
		if len(pgs) == 0 {
			return
		}
		sort.Ints(pgs)
		rep.Insights = append(rep.Insights, Insight{Kind: kind, Message: msg, Pages: pgs})
	}
	add(InsightWarning, "pages with no panels or no lettering", empty)
	add(InsightWarning, fmt.Sprintf("overloaded pages (more than %d words)", IdealWordsPerPageMax), dense)
	add(InsightSuggestion, fmt.Sprintf("sparse pages (fewer than %d words)", IdealWordsPerPageMin), sparse)
	add(InsightSuggestion, fmt.Sprintf("panel count outside %d-%d", IdealPanelsPerPageMin, IdealPanelsPerPageMax), crowded)
	add(InsightSuggestion, "dialogue-heavy pages", talky)
	add(InsightSuggestion, "dialogue-light pages", quiet)
	add(InsightSuggestion, "silent-panel ratio outside 10-20%", airless)
	add(InsightStrength, "well-paced pages", strong)
	return rep
}

// scorePage is the internal heuristic: each metric contributes a
// penalty proportional to its distance from the ideal range.
func scorePage(pg PageStats) int {
	if pg.Panels == 0 || pg.Words == 0 {
		return 0
	}
	penalty := 0.0
	penalty += 40 * rangePenalty(float64(pg.Words), IdealWordsPerPageMin, IdealWordsPerPageMax)
	penalty += 30 * rangePenalty(float64(pg.Panels), IdealPanelsPerPageMin, IdealPanelsPerPageMax)
	dr := float64(pg.DialoguePanels) / float64(pg.Panels)
	sr := float64(pg.SilentPanels) / float64(pg.Panels)
	penalty += 15 * rangePenalty(dr, IdealDialogueRatioMin, IdealDialogueRatioMax)
	penalty += 15 * rangePenalty(sr, IdealSilentRatioMin, IdealSilentRatioMax)
	score := 100 - int(penalty+0.5)
	if score < 0 {
		score = 0
	}
	return score
}

// rangePenalty is 0 inside [lo,hi] and approaches 1 as the value moves
// a full range-width away from the nearer bound.
func rangePenalty(v, lo, hi float64) float64 {
	width := hi - lo
	if width <= 0 {
		return 0
	}
	var d float64
	switch {
	case v < lo:
		d = lo - v
	case v > hi:
		d = v - hi
	default:
		return 0
	}
	p := d / width
	if p > 1 {
		p = 1
	}
	return p
}

// TurnIndicator marks whether a page ends on a page turn and whether
// its final panel is doing reveal work.
type TurnIndicator struct {
	PageNumber       int
	IsTurn           bool
	LastPanelSilent  bool
	LastPanelLoaded  bool // final panel carries lettering
	LastPanelPreview string
}

// PageTurns reports turn pages for an issue. In left-to-right reading,
// odd pages sit on the right and end on a turn; in right-to-left the
// even pages do.
func PageTurns(iss domain.Issue) []TurnIndicator {
	rtl := iss.ReadingDirection == "rtl"
	var out []TurnIndicator
	for _, pg := range iss.Pages() {
		ti := TurnIndicator{PageNumber: pg.Number}
		if rtl {
			ti.IsTurn = pg.Number%2 == 0
		} else {
			ti.IsTurn = pg.Number%2 == 1
		}
		if n := len(pg.Panels); n > 0 {
			last := pg.Panels[n-1]
			ti.LastPanelSilent = last.IsSilent()
			ti.LastPanelLoaded = !last.IsSilent()
			ti.LastPanelPreview = last.VisualDescription
		}
		out = append(out, ti)
	}
	return out
}
