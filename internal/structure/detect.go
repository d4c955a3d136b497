/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package structure detects act, scene, and page markers in free-form
// script text and reconstructs the Act → Scene → Page hierarchy. The
// scan is a single left-to-right fold over lines: every line advances
// an explicit parser state, so behavior is testable line by line.
package structure

import (
	"bufio"
	"fmt"
	"strings"
)

// state carries the detection cursors between lines. actOpen/sceneOpen
// index into acts; -1 means no element of that level is open yet.
type state struct {
	acts      []DetectedAct
	marks     []PageMark
	actOpen   int
	sceneOpen int
	hasAct    bool
	hasScene  bool
	pages     int
}

func newState() state {
	return state{actOpen: -1, sceneOpen: -1}
}

// step consumes one line and returns the advanced state.
func (st state) step(lineNo int, line string) state {
	m := classify(line)
	switch m.kind {
	case markerAct:
		st = st.closeAct(lineNo - 1)
		title := m.title
		if title == "" {
			title = fmt.Sprintf("Act %d", m.number)
		}
		st.acts = append(st.acts, DetectedAct{Number: m.number, Title: title, StartLine: lineNo})
		st.actOpen = len(st.acts) - 1
		st.sceneOpen = -1
		st.hasAct = true
	case markerScene:
		st = st.ensureAct(lineNo)
		st = st.closeScene(lineNo - 1)
		act := &st.acts[st.actOpen]
		num := m.number
		if num == 0 {
			num = len(act.Scenes) + 1
		}
		title := m.title
		if title == "" {
			title = fmt.Sprintf("Scene %d", num)
		}
		act.Scenes = append(act.Scenes, DetectedScene{
			Number:    num,
			Title:     title,
			Location:  m.location,
			TimeOfDay: m.timeOfDay,
			Interior:  m.interior,
			StartLine: lineNo,
		})
		st.sceneOpen = len(act.Scenes) - 1
		st.hasScene = true
	case markerPage:
		st = st.ensureAct(lineNo)
		st = st.ensureScene(lineNo)
		sc := &st.acts[st.actOpen].Scenes[st.sceneOpen]
		sc.Pages = append(sc.Pages, m.number)
		st.marks = append(st.marks, PageMark{Number: m.number, Line: lineNo})
		st.pages++
	default:
		if strings.TrimSpace(line) != "" {
			// content before any marker forces the implicit containers
			// so nothing is lost when the script has no structure
			if st.actOpen < 0 {
				st = st.ensureAct(lineNo)
				st = st.ensureScene(lineNo)
			}
		}
	}
	return st
}

// ensureAct opens the implicit "Act 1" when content or a lower-level
// marker arrives before any explicit act heading.
func (st state) ensureAct(lineNo int) state {
	if st.actOpen >= 0 {
		return st
	}
	st.acts = append(st.acts, DetectedAct{Number: 1, Title: "Act 1"})
	st.actOpen = len(st.acts) - 1
	st.sceneOpen = -1
	_ = lineNo
	return st
}

func (st state) ensureScene(lineNo int) state {
	if st.sceneOpen >= 0 {
		return st
	}
	act := &st.acts[st.actOpen]
	act.Scenes = append(act.Scenes, DetectedScene{Number: len(act.Scenes) + 1, Title: fmt.Sprintf("Scene %d", len(act.Scenes)+1)})
	st.sceneOpen = len(act.Scenes) - 1
	_ = lineNo
	return st
}

// closeAct stamps EndLine on the open act (and its open scene).
func (st state) closeAct(endLine int) state {
	st = st.closeScene(endLine)
	if st.actOpen >= 0 && st.acts[st.actOpen].StartLine > 0 {
		st.acts[st.actOpen].EndLine = endLine
	}
	st.actOpen = -1
	st.sceneOpen = -1
	return st
}

func (st state) closeScene(endLine int) state {
	if st.actOpen >= 0 && st.sceneOpen >= 0 {
		sc := &st.acts[st.actOpen].Scenes[st.sceneOpen]
		if sc.StartLine > 0 {
			sc.EndLine = endLine
		}
	}
	st.sceneOpen = -1
	return st
}

// Detect scans scriptText once and reconstructs its structure. It never
// fails: unmatched lines are content, empty input yields an empty
// Detection with Suggested == flat.
func Detect(scriptText string) Detection {
	st := newState()
	scanner := bufio.NewScanner(strings.NewReader(scriptText))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		st = st.step(lineNo, strings.TrimRight(scanner.Text(), "\r"))
	}
	st = st.closeAct(lineNo)

	return Detection{
		Acts:            st.acts,
		PageMarks:       st.marks,
		HasActMarkers:   st.hasAct,
		HasSceneMarkers: st.hasScene,
		TotalPages:      st.pages,
		Suggested:       suggest(st.hasAct, st.hasScene),
	}
}

func suggest(hasAct, hasScene bool) Suggestion {
	switch {
	case hasAct && hasScene:
		return SuggestActsAndScenes
	case hasAct:
		return SuggestActsOnly
	case hasScene:
		return SuggestScenesOnly
	default:
		return SuggestFlat
	}
}

// DefaultStructure synthesizes the single-act, single-scene fallback
// used when a script has no markers at all.
func DefaultStructure(pageCount int) []DetectedAct {
	if pageCount < 0 {
		pageCount = 0
	}
	pages := make([]int, 0, pageCount)
	for p := 1; p <= pageCount; p++ {
		pages = append(pages, p)
	}
	return []DetectedAct{{
		Number: 1,
		Title:  "Act 1",
		Scenes: []DetectedScene{{Number: 1, Title: "Scene 1", Pages: pages}},
	}}
}

// SuggestActBreaks proposes page ranges for a 1, 2, or 3 act split from
// the page count alone: up to 8 pages stay one act, up to 16 split at
// the midpoint, longer scripts cut at 25% and 75%.
func SuggestActBreaks(pageCount int) []ActRange {
	if pageCount <= 0 {
		return nil
	}
	switch {
	case pageCount <= 8:
		return []ActRange{{Number: 1, FirstPage: 1, LastPage: pageCount}}
	case pageCount <= 16:
		mid := pageCount / 2
		return []ActRange{
			{Number: 1, FirstPage: 1, LastPage: mid},
			{Number: 2, FirstPage: mid + 1, LastPage: pageCount},
		}
	default:
		first := pageCount / 4
		if first < 1 {
			first = 1
		}
		second := pageCount * 3 / 4
		if second <= first {
			second = first + 1
		}
		return []ActRange{
			{Number: 1, FirstPage: 1, LastPage: first},
			{Number: 2, FirstPage: first + 1, LastPage: second},
			{Number: 3, FirstPage: second + 1, LastPage: pageCount},
		}
	}
}
