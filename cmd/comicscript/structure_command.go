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
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"comicscript/internal/structure"
)

func newStructureCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "structure [scriptfile]",
		Short: "Detect the act/scene/page structure of a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read script file: %w", err)
				}
				text = string(b)
			} else {
				ph, err := ctx.openProject()
				if err != nil {
					return err
				}
				text, err = ctx.scriptText(ph)
				if err != nil {
					return err
				}
			}

			det := structure.Detect(text)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Structure: %s, %d pages\n", det.Suggested, det.TotalPages)

			rows := make([][]string, 0, 16)
			for _, act := range det.Acts {
				actLabel := fmt.Sprintf("Act %d", act.Number)
				if act.Title != "" {
					actLabel += " " + act.Title
				}
				for _, sc := range act.Scenes {
					loc := sc.Location
					if loc == "" {
						loc = sc.Title
					}
					pages := make([]string, 0, len(sc.Pages))
					for _, p := range sc.Pages {
						pages = append(pages, strconv.Itoa(p))
					}
					rows = append(rows, []string{
						actLabel,
						fmt.Sprintf("Scene %d", sc.Number),
						loc,
						sc.TimeOfDay,
						strings.Join(pages, ", "),
						strconv.Itoa(sc.StartLine),
					})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Act", "Scene", "Location", "Time", "Pages", "Line"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))

			if det.Suggested == structure.SuggestFlat && det.TotalPages > 0 {
				fmt.Fprintln(out, "Suggested act breaks:")
				for _, r := range structure.SuggestActBreaks(det.TotalPages) {
					fmt.Fprintf(out, "  Act %d: pages %d-%d\n", r.Number, r.FirstPage, r.LastPage)
				}
			}
			return nil
		},
	}
}
