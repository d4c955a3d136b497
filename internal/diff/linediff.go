/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package diff compares two versions of script content. Line diffs are
// anchored on a longest-common-subsequence alignment; page and panel
// diffs are positional by index, which is part of the contract (see
// ComparePages).
package diff

import "strings"

// Status tags one diff row or structural unit.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusModified  Status = "modified"
)

// Line is one row of a line-level comparison. OldNo/NewNo are 1-based
// and 0 when the line does not exist on that side. For modified rows
// OldText and NewText both carry content.
type Line struct {
	Status  Status
	OldNo   int
	NewNo   int
	OldText string
	NewText string
}

// Stats aggregates per-line counts of a Result.
type Stats struct {
	Unchanged int
	Added     int
	Removed   int
	Modified  int
}

// Result is a full line-level comparison of two texts.
type Result struct {
	Lines      []Line
	Stats      Stats
	Similarity float64 // unchanged / total * 100; empty inputs count as 100
}

// Reclassification constants. A removed line within lookahead distance
// of an added line whose bigram similarity exceeds the threshold is
// reported as one modified line instead of a removed/added pair.
// Changing either value changes observable diff output.
const (
	similarityThreshold = 0.6
	modifiedLookahead   = 3
)

// ComputeLineDiff compares two texts line by line. The alignment uses
// an explicit O(n·m) dynamic-programming LCS table with backtrack, so
// both time and memory grow with the product of the line counts;
// callers diffing very large documents should diff per page instead.
func ComputeLineDiff(oldText, newText string) Result {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)

	common := lcs(oldLines, newLines)

	var res Result
	oi, ni := 0, 0
	for _, anchor := range common {
		// everything before the anchor on either side changed
		res.Lines, oi, ni = emitChanged(res.Lines, oldLines, newLines, oi, ni, anchor.oldIdx, anchor.newIdx)
		res.Lines = append(res.Lines, Line{
			Status:  StatusUnchanged,
			OldNo:   anchor.oldIdx + 1,
			NewNo:   anchor.newIdx + 1,
			OldText: oldLines[anchor.oldIdx],
			NewText: newLines[anchor.newIdx],
		})
		oi = anchor.oldIdx + 1
		ni = anchor.newIdx + 1
	}
	res.Lines, _, _ = emitChanged(res.Lines, oldLines, newLines, oi, ni, len(oldLines), len(newLines))

	for _, ln := range res.Lines {
		switch ln.Status {
		case StatusUnchanged:
			res.Stats.Unchanged++
		case StatusAdded:
			res.Stats.Added++
		case StatusRemoved:
			res.Stats.Removed++
		case StatusModified:
			res.Stats.Modified++
		}
	}
	total := len(res.Lines)
	if total == 0 {
		res.Similarity = 100
	} else {
		res.Similarity = float64(res.Stats.Unchanged) / float64(total) * 100
	}
	return res
}

// emitChanged walks the non-common span [oi,oldEnd) x [ni,newEnd),
// pairing removed lines with similar upcoming added lines as modified.
func emitChanged(lines []Line, oldLines, newLines []string, oi, ni, oldEnd, newEnd int) ([]Line, int, int) {
	for ; oi < oldEnd; oi++ {
		matched := -1
		limit := ni + modifiedLookahead
		if limit > newEnd {
			limit = newEnd
		}
		for j := ni; j < limit; j++ {
			if DiceCoefficient(oldLines[oi], newLines[j]) > similarityThreshold {
				matched = j
				break
			}
		}
		if matched < 0 {
			lines = append(lines, Line{Status: StatusRemoved, OldNo: oi + 1, OldText: oldLines[oi]})
			continue
		}
		// added lines skipped over by the pairing come out first
		for ; ni < matched; ni++ {
			lines = append(lines, Line{Status: StatusAdded, NewNo: ni + 1, NewText: newLines[ni]})
		}
		lines = append(lines, Line{
			Status:  StatusModified,
			OldNo:   oi + 1,
			NewNo:   matched + 1,
			OldText: oldLines[oi],
			NewText: newLines[matched],
		})
		ni = matched + 1
	}
	for ; ni < newEnd; ni++ {
		lines = append(lines, Line{Status: StatusAdded, NewNo: ni + 1, NewText: newLines[ni]})
	}
	return lines, oi, ni
}

type anchor struct {
	oldIdx int
	newIdx int
}

// lcs computes the longest common subsequence of two line slices with a
// full DP table and backtrack reconstruction.
func lcs(a, b []string) []anchor {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}
	// backtrack from the corner; anchors come out reversed
	var rev []anchor
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			rev = append(rev, anchor{oldIdx: i - 1, newIdx: j - 1})
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}
	out := make([]anchor, len(rev))
	for k := range rev {
		out[len(rev)-1-k] = rev[k]
	}
	return out
}

// DiceCoefficient measures bigram overlap between two strings in
// [0,1]. Identical strings score 1. Two non-empty strings that are both
// too short to carry a bigram score 1 as well: a one-character line
// replaced by another one-character line reads as an edit, not as a
// remove/add pair.
func DiceCoefficient(a, b string) float64 {
	if a == b {
		return 1
	}
	ab := bigrams(a)
	bb := bigrams(b)
	if len(ab) == 0 || len(bb) == 0 {
		if len(ab) == 0 && len(bb) == 0 && a != "" && b != "" {
			return 1
		}
		return 0
	}
	overlap := 0
	totalA, totalB := 0, 0
	for _, n := range ab {
		totalA += n
	}
	for _, n := range bb {
		totalB += n
	}
	for g, n := range ab {
		if m, ok := bb[g]; ok {
			if m < n {
				overlap += m
			} else {
				overlap += n
			}
		}
	}
	return 2 * float64(overlap) / float64(totalA+totalB)
}

// bigrams returns the multiset of overlapping two-rune substrings.
func bigrams(s string) map[string]int {
	runes := []rune(s)
	out := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		out[string(runes[i:i+2])]++
	}
	return out
}

// splitLines splits on \n, trimming a trailing \r per line. An empty
// text yields no lines rather than one empty line.
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
