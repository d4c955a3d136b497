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

	"github.com/spf13/cobra"

	"comicscript/internal/importer"
	"comicscript/internal/storage"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var issueNumber int

	cmd := &cobra.Command{
		Use:   "import [scriptfile]",
		Short: "Parse a plain-text script into the project manifest",
		Long: "Parses a plain-text comic script (ACT/SCENE/PAGE/PANEL markers,\n" +
			"NAME: dialogue, CAP:, SFX:) into the structured manifest, stores the\n" +
			"text as the working draft and refreshes the search index.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}

			var text string
			if len(args) == 1 {
				b, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read script file: %w", err)
				}
				text = string(b)
			} else {
				text, err = ctx.scriptText(ph)
				if err != nil {
					return err
				}
				if text == "" {
					return fmt.Errorf("no script draft at %s; pass a script file", storage.ScriptFilePath(ph))
				}
			}

			res := importer.Build(text)
			res.Issue.Number = issueNumber

			replaced := false
			for i := range ph.Project.Issues {
				if ph.Project.Issues[i].Number == issueNumber {
					ph.Project.Issues[i] = res.Issue
					replaced = true
					break
				}
			}
			if !replaced {
				ph.Project.Issues = append(ph.Project.Issues, res.Issue)
			}

			if err := storage.Save(ph); err != nil {
				return fmt.Errorf("save manifest: %w", err)
			}
			if err := storage.WriteScript(ph, text); err != nil {
				return err
			}
			if err := storage.UpdateIndex(cmd.Context(), ph.Root, ph.Project); err != nil {
				return fmt.Errorf("update index: %w", err)
			}

			det := res.Detection
			fmt.Fprintf(cmd.OutOrStdout(), "Imported issue %d: %d acts, %d pages (%s structure)\n",
				issueNumber, len(res.Issue.Acts), len(res.Issue.Pages()), det.Suggested)
			return nil
		},
	}

	cmd.Flags().IntVar(&issueNumber, "issue", 1, "Issue number to import into")
	return cmd
}
