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

	"github.com/spf13/cobra"

	"comicscript/internal/domain"
	"comicscript/internal/storage"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var series, writer string

	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new project in the project directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := domain.Project{
				Name:     args[0],
				Metadata: domain.Metadata{Series: series, Writer: writer},
			}
			ph, err := storage.InitProject(ctx.projectRoot(), proj)
			if err != nil {
				return fmt.Errorf("init project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized project %q at %s\n", proj.Name, ph.Root)
			return nil
		},
	}

	cmd.Flags().StringVar(&series, "series", "", "Series title")
	cmd.Flags().StringVar(&writer, "writer", "", "Writer credit")
	return cmd
}
