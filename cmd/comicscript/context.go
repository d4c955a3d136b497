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
	"strings"

	"comicscript/internal/config"
	"comicscript/internal/domain"
	"comicscript/internal/storage"
)

// commandContext resolves the project directory flag and lazily loads
// the user config for commands that need it.
type commandContext struct {
	projectFlag *string

	cfg       config.AppConfig
	secret    string
	cfgLoaded bool
}

func newCommandContext(projectFlag *string) *commandContext {
	return &commandContext{projectFlag: projectFlag}
}

func (c *commandContext) projectRoot() string {
	root := strings.TrimSpace(*c.projectFlag)
	if root == "" {
		root = "."
	}
	return root
}

// openProject opens the manifest at the project root.
func (c *commandContext) openProject() (*storage.ProjectHandle, error) {
	ph, err := storage.Open(c.projectRoot())
	if err != nil {
		return nil, fmt.Errorf("open project at %s: %w", c.projectRoot(), err)
	}
	return ph, nil
}

// loadConfig loads the user config once per invocation.
func (c *commandContext) loadConfig() (config.AppConfig, string, error) {
	if c.cfgLoaded {
		return c.cfg, c.secret, nil
	}
	cfg, secret, err := config.Load()
	if err != nil {
		return config.AppConfig{}, "", err
	}
	c.cfg, c.secret, c.cfgLoaded = cfg, secret, true
	return cfg, secret, nil
}

// scriptText reads the working draft of the project.
func (c *commandContext) scriptText(ph *storage.ProjectHandle) (string, error) {
	text, err := storage.ReadScript(ph)
	if err != nil {
		return "", fmt.Errorf("read script draft: %w", err)
	}
	return text, nil
}

// firstIssue returns the first issue of the project, or an error when
// nothing has been imported yet.
func firstIssue(ph *storage.ProjectHandle) (domain.Issue, error) {
	if len(ph.Project.Issues) == 0 {
		return domain.Issue{}, fmt.Errorf("project %q has no issues; run import first", ph.Project.Name)
	}
	return ph.Project.Issues[0], nil
}
