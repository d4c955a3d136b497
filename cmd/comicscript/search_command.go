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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"comicscript/internal/storage"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		speaker  string
		tags     []string
		types    []string
		pageFrom int
		pageTo   int
		limit    int
		offset   int
		speakers bool
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the project index",
		Long: "Full-text search over descriptions, lettering and notes with\n" +
			"optional filters. Without text the filters alone select rows.\n" +
			"--speakers lists the distinct speakers instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if speakers {
				names, err := storage.Speakers(cmd.Context(), ph.Root)
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(out, n)
				}
				return nil
			}

			q := storage.SearchQuery{
				Speaker:  speaker,
				Tags:     tags,
				Types:    types,
				PageFrom: pageFrom,
				PageTo:   pageTo,
				Limit:    limit,
				Offset:   offset,
			}
			if len(args) == 1 {
				q.Text = args[0]
			}
			if q.Text == "" && speaker == "" && len(tags) == 0 && len(types) == 0 && pageFrom == 0 && pageTo == 0 {
				return fmt.Errorf("give search text or at least one filter")
			}

			results, err := storage.Search(cmd.Context(), ph.Root, q)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				page := ""
				if r.PageID > 0 {
					page = strconv.Itoa(r.PageID)
				}
				snippet := r.Snippet
				if snippet == "" {
					snippet = r.Path
				}
				rows = append(rows, []string{
					page,
					r.Type,
					r.Speaker,
					strings.TrimSpace(snippet),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Page", "Type", "Speaker", "Match"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&speaker, "speaker", "", "Only lettering spoken by this character")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only panels carrying this tag (repeatable)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Only these document types (repeatable)")
	cmd.Flags().IntVar(&pageFrom, "from", 0, "First page of the range")
	cmd.Flags().IntVar(&pageTo, "to", 0, "Last page of the range")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&speakers, "speakers", false, "List distinct speakers")
	return cmd
}
