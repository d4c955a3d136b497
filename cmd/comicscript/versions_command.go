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
	"time"

	"github.com/spf13/cobra"

	"comicscript/internal/storage"
)

func newVersionsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Manage the script version history",
	}
	cmd.AddCommand(newVersionsSaveCommand(ctx))
	cmd.AddCommand(newVersionsListCommand(ctx))
	cmd.AddCommand(newVersionsShowCommand(ctx))
	cmd.AddCommand(newVersionsPruneCommand(ctx))
	return cmd
}

func newVersionsSaveCommand(ctx *commandContext) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save the current draft as a new version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			text, err := ctx.scriptText(ph)
			if err != nil {
				return err
			}
			if text == "" {
				return fmt.Errorf("no script draft at %s", storage.ScriptFilePath(ph))
			}

			id, err := storage.SaveVersion(cmd.Context(), ph, text, label, time.Now())
			if err != nil {
				return fmt.Errorf("save version: %w", err)
			}

			cfg, _, err := ctx.loadConfig()
			if err == nil && cfg.General.KeepVersions > 0 {
				if _, err := storage.PruneVersions(cmd.Context(), ph, cfg.General.KeepVersions); err != nil {
					return fmt.Errorf("prune versions: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved version %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label for the version")
	return cmd
}

func newVersionsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved versions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			versions, err := storage.ListVersions(cmd.Context(), ph, limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(versions))
			for _, v := range versions {
				delta := ""
				if v.Delta != "" {
					delta = "yes"
				}
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.TS.Local().Format("2006-01-02 15:04"),
					v.Label,
					delta,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Saved", "Label", "Delta"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of versions to list")
	return cmd
}

func newVersionsShowCommand(ctx *commandContext) *cobra.Command {
	var showDelta bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the full text of a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid version id %q", args[0])
			}
			v, err := storage.GetVersion(cmd.Context(), ph, id)
			if err != nil {
				return err
			}
			if showDelta {
				if v.Delta == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "(first version, no delta)")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.Delta)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), v.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDelta, "delta", false, "Print the stored delta instead of the text")
	return cmd
}

func newVersionsPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old versions, keeping the most recent ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			n, err := storage.PruneVersions(cmd.Context(), ph, keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d versions, kept last %d\n", n, keep)
			return nil
		},
	}

	cmd.Flags().IntVarP(&keep, "keep", "k", 50, "Number of versions to keep")
	return cmd
}
