/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package archive stores script version history in a central Postgres
// database so a project can be shared across machines. It is optional;
// nothing in the local workflow requires a DSN to be configured.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"comicscript/internal/config"
	applog "comicscript/internal/log"
	"comicscript/internal/storage"
)

// ErrNotConfigured is returned by Open when no DSN is set.
var ErrNotConfigured = errors.New("archive: no DSN configured")

// Archive is a handle to the remote version store.
type Archive struct {
	db      *sql.DB
	timeout time.Duration
	log     *slog.Logger
}

// Open connects using cfg, pings the server and ensures the schema.
func Open(ctx context.Context, cfg config.ArchiveConfig) (*Archive, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrNotConfigured
	}
	l := applog.WithComponent("archive")
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: open: %w", err)
	}
	a := &Archive{db: db, timeout: cfg.EffectiveTimeout(), log: l}
	pctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("archive: ping: %w", err)
	}
	if err := a.ensureSchema(pctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	l.Info("archive connected")
	return a, nil
}

// Close releases the connection pool.
func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// language=SQL
// dialect=PostgreSQL
const ensureProjectsSQL = `CREATE TABLE IF NOT EXISTS projects (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// language=SQL
// dialect=PostgreSQL
const ensureVersionsSQL = `CREATE TABLE IF NOT EXISTS script_versions (
	id BIGSERIAL PRIMARY KEY,
	project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	local_id BIGINT NOT NULL,
	ts TIMESTAMPTZ NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	text TEXT NOT NULL,
	delta TEXT NOT NULL DEFAULT '',
	search_vector tsvector GENERATED ALWAYS AS (to_tsvector('simple', text)) STORED,
	UNIQUE (project_id, local_id)
)`

// language=SQL
// dialect=PostgreSQL
const ensureVersionIndexSQL = `CREATE INDEX IF NOT EXISTS idx_script_versions_search
	ON script_versions USING GIN (search_vector)`

func (a *Archive) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{ensureProjectsSQL, ensureVersionsSQL, ensureVersionIndexSQL} {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("archive: ensure schema: %w", err)
		}
	}
	return nil
}

func (a *Archive) projectID(ctx context.Context, project string) (int64, error) {
	project = strings.TrimSpace(project)
	if project == "" {
		return 0, errors.New("archive: project name is required")
	}
	var id int64
	err := a.db.QueryRowContext(ctx,
		`INSERT INTO projects(name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, project).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("archive: resolve project %q: %w", project, err)
	}
	return id, nil
}

// PushVersion uploads one local version. Re-pushing the same local id
// is a no-op so a full history push is idempotent.
func (a *Archive) PushVersion(ctx context.Context, project string, v storage.Version) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	pid, err := a.projectID(ctx, project)
	if err != nil {
		return err
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO script_versions(project_id, local_id, ts, label, text, delta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (project_id, local_id) DO NOTHING`,
		pid, v.ID, v.TS.UTC(), v.Label, v.Text, v.Delta)
	if err != nil {
		return fmt.Errorf("archive: push version %d: %w", v.ID, err)
	}
	a.log.Info("version pushed", slog.String("project", project), slog.Int64("local_id", v.ID))
	return nil
}

// PushHistory uploads every local version of the project, newest last.
func (a *Archive) PushHistory(ctx context.Context, ph *storage.ProjectHandle, project string) (int, error) {
	versions, err := storage.ListVersions(ctx, ph, 1<<30)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := len(versions) - 1; i >= 0; i-- {
		if err := a.PushVersion(ctx, project, versions[i]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// ListVersions returns the archived versions for a project, newest
// first. limit <= 0 means all.
func (a *Archive) ListVersions(ctx context.Context, project string, limit int) ([]storage.Version, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	pid, err := a.projectID(ctx, project)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 1 << 30
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT local_id, ts, label, text, delta FROM script_versions
		 WHERE project_id = $1 ORDER BY local_id DESC LIMIT $2`, pid, limit)
	if err != nil {
		return nil, fmt.Errorf("archive: list versions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []storage.Version
	for rows.Next() {
		var v storage.Version
		if err := rows.Scan(&v.ID, &v.TS, &v.Label, &v.Text, &v.Delta); err != nil {
			return nil, fmt.Errorf("archive: scan version: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetVersion fetches one archived version by its local id.
func (a *Archive) GetVersion(ctx context.Context, project string, localID int64) (storage.Version, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	pid, err := a.projectID(ctx, project)
	if err != nil {
		return storage.Version{}, err
	}
	var v storage.Version
	err = a.db.QueryRowContext(ctx,
		`SELECT local_id, ts, label, text, delta FROM script_versions
		 WHERE project_id = $1 AND local_id = $2`, pid, localID).
		Scan(&v.ID, &v.TS, &v.Label, &v.Text, &v.Delta)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Version{}, fmt.Errorf("archive: version %d not found", localID)
	}
	if err != nil {
		return storage.Version{}, fmt.Errorf("archive: get version %d: %w", localID, err)
	}
	return v, nil
}
