/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

// Panel is one parsed panel block of a page: the visual description the
// artist draws plus the lettering placed over it.
type Panel struct {
	Number      int
	Description string // joined description lines
	Lines       []Line
	Tags        []string
	StartLine   int // 1-based source line of the panel marker (or first content line)
}

// LineType indicates the kind of a lettering/content line.
// Dialogue: CHARACTER: text
// Caption:  CAPTION: text or NARRATION: text
// SFX:      SFX: text or SOUND: text
// Note:     lines starting with ";" are author notes
type LineType int

const (
	LineUnknown LineType = iota
	LineDialogue
	LineCaption
	LineSFX
	LineNote
)

// Line captures a single logical lettering line (possibly with indented
// continuations). For Dialogue, Speaker holds the upper-cased character
// name. Text may use the emphasis markdown subset.
type Line struct {
	Type    LineType
	Speaker string
	Text    string
	Tags    []string
	LineNo  int // 1-based starting line number in the source
}
