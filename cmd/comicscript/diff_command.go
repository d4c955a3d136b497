/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"comicscript/internal/diff"
	"comicscript/internal/importer"
	"comicscript/internal/storage"
)

func newDiffCommand(ctx *commandContext) *cobra.Command {
	var pages bool

	cmd := &cobra.Command{
		Use:   "diff <old-version> [new-version]",
		Short: "Compare two script versions",
		Long: "Compares two saved versions line by line. With one argument the\n" +
			"old version is compared against the current draft. --pages switches\n" +
			"to a page-by-page panel comparison of the parsed scripts.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}

			oldID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid version id %q", args[0])
			}
			oldV, err := storage.GetVersion(cmd.Context(), ph, oldID)
			if err != nil {
				return err
			}

			var newText, newLabel string
			if len(args) == 2 {
				newID, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid version id %q", args[1])
				}
				newV, err := storage.GetVersion(cmd.Context(), ph, newID)
				if err != nil {
					return err
				}
				newText, newLabel = newV.Text, fmt.Sprintf("version %d", newV.ID)
			} else {
				newText, err = ctx.scriptText(ph)
				if err != nil {
					return err
				}
				newLabel = "current draft"
			}

			out := cmd.OutOrStdout()
			if pages {
				printPageDiff(out, oldV.Text, newText)
				return nil
			}

			res := diff.ComputeLineDiff(oldV.Text, newText)
			fmt.Fprintf(out, "version %d vs %s: +%d -%d ~%d =%d (%.1f%% similar)\n",
				oldV.ID, newLabel,
				res.Stats.Added, res.Stats.Removed, res.Stats.Modified, res.Stats.Unchanged,
				res.Similarity)
			printLineDiff(out, res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pages, "pages", false, "Compare page by page instead of line by line")
	return cmd
}

func printLineDiff(out io.Writer, res diff.Result) {
	for _, ln := range res.Lines {
		switch ln.Status {
		case diff.StatusAdded:
			fmt.Fprintf(out, "+ %4d  %s\n", ln.NewNo, ln.NewText)
		case diff.StatusRemoved:
			fmt.Fprintf(out, "- %4d  %s\n", ln.OldNo, ln.OldText)
		case diff.StatusModified:
			fmt.Fprintf(out, "~ %4d  %s\n", ln.OldNo, ln.OldText)
			fmt.Fprintf(out, "       %s\n", ln.NewText)
		}
	}
}

func printPageDiff(out io.Writer, oldText, newText string) {
	oldPages := importer.Build(oldText).Issue.Pages()
	newPages := importer.Build(newText).Issue.Pages()

	rows := make([][]string, 0, 16)
	for _, pd := range diff.ComparePages(oldPages, newPages) {
		changed := 0
		for _, pn := range pd.Panels {
			if pn.Status != diff.StatusUnchanged {
				changed++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(pd.PageNumber),
			string(pd.Status),
			fmt.Sprintf("%d/%d", changed, len(pd.Panels)),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Page", "Status", "Panels changed"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
}
