/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const scriptTextFileName = "script.txt"

// ScriptFilePath returns the canonical location of the free-form script
// text inside the project, or "" for a nil handle.
func ScriptFilePath(ph *ProjectHandle) string {
	if ph == nil {
		return ""
	}
	return filepath.Join(ph.Root, "drafts", scriptTextFileName)
}

// ReadScript returns the stored script text. A missing file is not an
// error; it reads as empty.
func ReadScript(ph *ProjectHandle) (string, error) {
	if ph == nil {
		return "", errors.New("nil ProjectHandle")
	}
	b, err := os.ReadFile(ScriptFilePath(ph))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(b), nil
}

// WriteScript stores the script text, creating the drafts folder when
// the project was scaffolded by an older version.
func WriteScript(ph *ProjectHandle, text string) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	p := ScriptFilePath(ph)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("ensure drafts dir: %w", err)
	}
	if err := writeFileSync(p, []byte(text)); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	return nil
}
