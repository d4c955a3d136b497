/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package domain defines the script data model: a project holds issues,
// an issue holds acts, acts hold scenes, scenes hold pages, pages hold
// panels, and panels carry a visual description plus lettering lines.
// Everything serializes to the human-readable JSON manifest.
package domain

// Project is the root of the manifest (script.json).
type Project struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Issues   []Issue  `json:"issues"`
}

// Metadata carries optional descriptive fields for the series.
type Metadata struct {
	Series   string `json:"series,omitempty"`
	Writer   string `json:"writer,omitempty"`
	Artist   string `json:"artist,omitempty"`
	Deadline string `json:"deadline,omitempty"` // ISO date, informational
	Notes    string `json:"notes,omitempty"`
}

// Issue is one installment of the series.
type Issue struct {
	Number           int    `json:"number"`
	Title            string `json:"title,omitempty"`
	ReadingDirection string `json:"readingDirection,omitempty"` // ltr or rtl
	Acts             []Act  `json:"acts"`
}

// Act groups scenes; most issues use one to three.
type Act struct {
	Number int     `json:"number"`
	Title  string  `json:"title,omitempty"`
	Scenes []Scene `json:"scenes"`
}

// Scene is a continuous location/time unit holding pages.
type Scene struct {
	Number    int    `json:"number"`
	Title     string `json:"title,omitempty"`
	Location  string `json:"location,omitempty"`
	TimeOfDay string `json:"timeOfDay,omitempty"`
	Interior  bool   `json:"interior,omitempty"`
	Pages     []Page `json:"pages"`
}

// Page carries the panels drawn on one physical page.
type Page struct {
	Number int     `json:"number"`
	Panels []Panel `json:"panels"`
}

// Panel is the atomic story unit: what the artist draws plus the
// lettering placed over it. Text fields use the emphasis markdown
// subset (see internal/markdown).
type Panel struct {
	ID                string      `json:"id"`
	Number            int         `json:"number"`
	VisualDescription string      `json:"visualDescription,omitempty"`
	Lettering         []Lettering `json:"lettering,omitempty"`
	Tags              []string    `json:"tags,omitempty"`
	Notes             string      `json:"notes,omitempty"`
}

// LetteringKind distinguishes lettering elements on a panel.
type LetteringKind string

const (
	LetteringDialogue LetteringKind = "dialogue"
	LetteringCaption  LetteringKind = "caption"
	LetteringSFX      LetteringKind = "sfx"
)

// Lettering is one dialogue balloon, caption box, or sound effect.
// Speaker is set for dialogue only.
type Lettering struct {
	Kind    LetteringKind `json:"kind"`
	Speaker string        `json:"speaker,omitempty"`
	Text    string        `json:"text"`
}
