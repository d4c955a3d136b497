/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package structure

import "sort"

// DetectedAct is a transient act node built during one detection pass.
// Callers map detected nodes onto persistent records; nothing here is
// stored directly.
type DetectedAct struct {
	Number    int
	Title     string
	StartLine int // 1-based line of the act marker, 0 for implicit acts
	EndLine   int // line before the next act marker; 0 while open
	Scenes    []DetectedScene
}

// DetectedScene is a transient scene node under an act. Location and
// TimeOfDay are extracted from screenplay-style headings when present.
type DetectedScene struct {
	Number    int
	Title     string
	Location  string
	TimeOfDay string
	Interior  bool
	StartLine int
	EndLine   int
	Pages     []int // page numbers attached in source order
}

// Suggestion classifies what kind of explicit structure a script uses.
type Suggestion string

const (
	SuggestActsAndScenes Suggestion = "acts-and-scenes"
	SuggestActsOnly      Suggestion = "acts-only"
	SuggestScenesOnly    Suggestion = "scenes-only"
	SuggestFlat          Suggestion = "flat"
)

// PageMark records where a page marker sits in the source text, so an
// importer can slice the content block belonging to each page.
type PageMark struct {
	Number int
	Line   int // 1-based marker line
}

// Detection is the result of one pass over a script text.
type Detection struct {
	Acts            []DetectedAct
	PageMarks       []PageMark
	HasActMarkers   bool
	HasSceneMarkers bool
	TotalPages      int
	Suggested       Suggestion
}

// MarkerLines returns every structural marker line in ascending order:
// act and scene headings plus page markers. Content between two
// consecutive boundaries belongs to the earlier one.
func (d Detection) MarkerLines() []int {
	var out []int
	for _, a := range d.Acts {
		if a.StartLine > 0 {
			out = append(out, a.StartLine)
		}
		for _, s := range a.Scenes {
			if s.StartLine > 0 {
				out = append(out, s.StartLine)
			}
		}
	}
	for _, pm := range d.PageMarks {
		out = append(out, pm.Line)
	}
	sort.Ints(out)
	return out
}

// ActRange is a page span proposed by SuggestActBreaks.
type ActRange struct {
	Number    int
	FirstPage int
	LastPage  int
}
