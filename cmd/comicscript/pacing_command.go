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

	"comicscript/internal/pacing"
)

func newPacingCommand(ctx *commandContext) *cobra.Command {
	var turns bool

	cmd := &cobra.Command{
		Use:   "pacing",
		Short: "Score the pacing of the imported issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			iss, err := firstIssue(ph)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stats := pacing.StatsFor(iss.Pages())
			rep := pacing.Analyze(stats)
			fmt.Fprintf(out, "Pacing score: %d/100\n", rep.Score)

			rows := make([][]string, 0, len(stats))
			for _, st := range stats {
				rows = append(rows, []string{
					strconv.Itoa(st.PageNumber),
					strconv.Itoa(st.Panels),
					strconv.Itoa(st.Words),
					strconv.Itoa(st.DialoguePanels),
					strconv.Itoa(st.SilentPanels),
					strconv.Itoa(rep.PageScores[st.PageNumber]),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Page", "Panels", "Words", "Dialogue", "Silent", "Score"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))

			for _, ins := range rep.Insights {
				pages := make([]string, 0, len(ins.Pages))
				for _, p := range ins.Pages {
					pages = append(pages, strconv.Itoa(p))
				}
				fmt.Fprintf(out, "[%s] %s (pages %s)\n", ins.Kind, ins.Message, strings.Join(pages, ", "))
			}

			if turns {
				fmt.Fprintln(out, "Page turns:")
				for _, ti := range pacing.PageTurns(iss) {
					if !ti.IsTurn {
						continue
					}
					note := "silent final panel"
					if ti.LastPanelLoaded {
						note = "lettered final panel"
					}
					fmt.Fprintf(out, "  page %d: %s %q\n", ti.PageNumber, note, ti.LastPanelPreview)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&turns, "turns", false, "Also list page-turn reveal pages")
	return cmd
}
