/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package archive

import (
	"context"
	"fmt"
	"strings"
)

// SearchHit is a match inside an archived version's text.
type SearchHit struct {
	LocalID int64
	Label   string
	Snippet string
}

// SearchVersions runs a full-text query over the archived script texts
// of a project. Snippets use [ ] markers, matching the local index
// search output.
func (a *Archive) SearchVersions(ctx context.Context, project, text string, limit int) ([]SearchHit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	pid, err := a.projectID(ctx, project)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT local_id, label,
		        COALESCE(ts_headline('simple', text, plainto_tsquery('simple', $1),
		                 'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '')
		 FROM script_versions
		 WHERE project_id = $2 AND search_vector @@ plainto_tsquery('simple', $1)
		 ORDER BY local_id DESC LIMIT $3`, text, pid, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: search: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.LocalID, &h.Label, &h.Snippet); err != nil {
			return nil, fmt.Errorf("archive: scan hit: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
