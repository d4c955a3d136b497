/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "comicscript/internal/markdown"

// Pages flattens the act/scene tree into source order, the shape the
// diff engine and the pacing analyzer consume.
func (i Issue) Pages() []Page {
	var out []Page
	for _, act := range i.Acts {
		for _, sc := range act.Scenes {
			out = append(out, sc.Pages...)
		}
	}
	return out
}

// WordCount counts the visible words of all lettering on the page,
// markers excluded.
func (p Page) WordCount() int {
	total := 0
	for _, pn := range p.Panels {
		total += pn.WordCount()
	}
	return total
}

// WordCount counts visible lettering words on the panel.
func (p Panel) WordCount() int {
	total := 0
	for _, l := range p.Lettering {
		total += markdown.CountWords(l.Text)
	}
	return total
}

// HasDialogue reports whether any lettering on the panel is spoken.
func (p Panel) HasDialogue() bool {
	for _, l := range p.Lettering {
		if l.Kind == LetteringDialogue {
			return true
		}
	}
	return false
}

// IsSilent reports a panel with no lettering at all.
func (p Panel) IsSilent() bool { return len(p.Lettering) == 0 }
