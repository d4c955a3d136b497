/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diff

import (
	"math"
	"testing"
)

func TestComputeLineDiffSingleEdit(t *testing.T) {
	res := ComputeLineDiff("A\nB\nC", "A\nX\nC")
	if len(res.Lines) != 3 {
		t.Fatalf("expected 3 rows, got %+v", res.Lines)
	}
	mid := res.Lines[1]
	if mid.Status != StatusModified {
		t.Fatalf("expected B->X reported as modified, got %+v", mid)
	}
	if mid.OldText != "B" || mid.NewText != "X" {
		t.Fatalf("modified row should carry both texts: %+v", mid)
	}
	if res.Stats.Unchanged != 2 || res.Stats.Modified != 1 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	want := 2.0 / 3.0 * 100
	if math.Abs(res.Similarity-want) > 0.01 {
		t.Fatalf("expected similarity %.2f, got %.2f", want, res.Similarity)
	}
}

func TestComputeLineDiffEditedLineReclassified(t *testing.T) {
	oldText := "The crowd roars below.\nShe jumps."
	newText := "The crowd roars far below.\nShe jumps."
	res := ComputeLineDiff(oldText, newText)
	if res.Stats.Modified != 1 {
		t.Fatalf("expected one modified line, got %+v", res.Lines)
	}
	if res.Stats.Added != 0 || res.Stats.Removed != 0 {
		t.Fatalf("similar lines must pair as modified, got %+v", res.Stats)
	}
}

func TestComputeLineDiffDissimilarReplacement(t *testing.T) {
	res := ComputeLineDiff("completely different sentence here", "nothing shared with that at all")
	if res.Stats.Removed != 1 || res.Stats.Added != 1 || res.Stats.Modified != 0 {
		t.Fatalf("dissimilar lines must stay removed+added, got %+v", res.Stats)
	}
	if res.Similarity != 0 {
		t.Fatalf("expected 0%% similarity, got %.2f", res.Similarity)
	}
}

func TestComputeLineDiffAddRemove(t *testing.T) {
	res := ComputeLineDiff("A\nB", "A\nB\nC")
	if res.Stats.Added != 1 || res.Stats.Unchanged != 2 {
		t.Fatalf("unexpected stats for append: %+v", res.Stats)
	}
	last := res.Lines[len(res.Lines)-1]
	if last.Status != StatusAdded || last.NewNo != 3 || last.OldNo != 0 {
		t.Fatalf("unexpected added row: %+v", last)
	}

	res = ComputeLineDiff("A\nB\nC", "A\nC")
	if res.Stats.Removed != 1 || res.Stats.Unchanged != 2 {
		t.Fatalf("unexpected stats for delete: %+v", res.Stats)
	}
}

func TestComputeLineDiffEmptyInputs(t *testing.T) {
	res := ComputeLineDiff("", "")
	if len(res.Lines) != 0 || res.Similarity != 100 {
		t.Fatalf("expected neutral result for empty inputs, got %+v", res)
	}
	res = ComputeLineDiff("", "only new")
	if res.Stats.Added != 1 || res.Stats.Removed != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	res = ComputeLineDiff("only old", "")
	if res.Stats.Removed != 1 || res.Stats.Added != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
}

func TestComputeLineDiffIdentical(t *testing.T) {
	text := "PAGE 1\nPanel 1: A street.\nPanel 2: The same street."
	res := ComputeLineDiff(text, text)
	if res.Stats.Unchanged != 3 || res.Similarity != 100 {
		t.Fatalf("identical texts must be 100%% unchanged: %+v", res)
	}
	for _, ln := range res.Lines {
		if ln.OldNo != ln.NewNo {
			t.Fatalf("identical texts must align line numbers: %+v", ln)
		}
	}
}

func TestLookaheadWindow(t *testing.T) {
	// the edited partner sits beyond the 3-line lookahead, so the old
	// line stays removed
	oldText := "unique sentence about the rooftop chase"
	newText := "n1\nn2\nn3\nunique sentence about that rooftop chase"
	res := ComputeLineDiff(oldText, newText)
	if res.Stats.Removed != 1 {
		t.Fatalf("expected removal when partner is past lookahead, got %+v", res.Lines)
	}
	if res.Stats.Modified != 0 {
		t.Fatalf("expected no modified rows, got %+v", res.Stats)
	}
}

func TestDiceCoefficient(t *testing.T) {
	if got := DiceCoefficient("night", "night"); got != 1 {
		t.Fatalf("identical strings must score 1, got %f", got)
	}
	if got := DiceCoefficient("night", "nacht"); got >= 0.6 {
		t.Fatalf("expected low similarity, got %f", got)
	}
	if got := DiceCoefficient("the rooftop at night", "the rooftop at dusk"); got <= 0.6 {
		t.Fatalf("expected high similarity, got %f", got)
	}
	if got := DiceCoefficient("", "x"); got != 0 {
		t.Fatalf("empty vs non-empty must score 0, got %f", got)
	}
	if got := DiceCoefficient("B", "X"); got != 1 {
		t.Fatalf("two one-character lines count as an edit pair, got %f", got)
	}
}
