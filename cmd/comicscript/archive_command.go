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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"comicscript/internal/archive"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Work with the shared Postgres archive",
	}
	cmd.AddCommand(newArchivePushCommand(ctx))
	cmd.AddCommand(newArchiveListCommand(ctx))
	cmd.AddCommand(newArchiveSearchCommand(ctx))
	return cmd
}

// openArchive connects using the configured DSN, injecting the keyring
// password when the DSN omits one.
func openArchive(ctx *commandContext, cmd *cobra.Command) (*archive.Archive, error) {
	cfg, secret, err := ctx.loadConfig()
	if err != nil {
		return nil, err
	}
	ac := cfg.Archive
	if secret != "" && !strings.Contains(ac.DSN, "password=") {
		ac.DSN = ac.DSN + " password=" + secret
	}
	a, err := archive.Open(cmd.Context(), ac)
	if errors.Is(err, archive.ErrNotConfigured) {
		return nil, fmt.Errorf("no archive configured; set archive.dsn in the config or CSK_ARCHIVE_DSN")
	}
	return a, err
}

func newArchivePushCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload the local version history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			a, err := openArchive(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			n, err := a.PushHistory(cmd.Context(), ph, ph.Project.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d versions of %q\n", n, ph.Project.Name)
			return nil
		},
	}
}

func newArchiveListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived versions of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			a, err := openArchive(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			versions, err := a.ListVersions(cmd.Context(), ph.Project.Name, limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(versions))
			for _, v := range versions {
				rows = append(rows, []string{
					strconv.FormatInt(v.ID, 10),
					v.TS.Local().Format("2006-01-02 15:04"),
					v.Label,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Saved", "Label"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of versions to list")
	return cmd
}

func newArchiveSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Full-text search over archived version texts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ph, err := ctx.openProject()
			if err != nil {
				return err
			}
			a, err := openArchive(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			hits, err := a.SearchVersions(cmd.Context(), ph.Project.Name, args[0], limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(hits))
			for _, h := range hits {
				rows = append(rows, []string{
					strconv.FormatInt(h.LocalID, 10),
					h.Label,
					h.Snippet,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Version", "Label", "Match"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum hits")
	return cmd
}
