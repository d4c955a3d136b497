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
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Version is one stored script text version. Delta is the compact
// encoding of the change against the previous version, empty for the
// first one.
type Version struct {
	ID    int64
	TS    time.Time
	Label string
	Text  string
	Delta string
}

// language=SQL
// dialect=SQLite
const insertVersionSQL = `INSERT INTO script_versions(ts, label, text, delta) VALUES (?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestVersionSQL = `SELECT id, ts, label, text, delta FROM script_versions ORDER BY id DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const selectVersionSQL = `SELECT id, ts, label, text, delta FROM script_versions WHERE id = ?`

// language=SQL
// dialect=SQLite
const listVersionsSQL = `SELECT id, ts, label, text, delta FROM script_versions ORDER BY id DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneVersionsSQL = `DELETE FROM script_versions WHERE id NOT IN (
	SELECT id FROM script_versions ORDER BY id DESC LIMIT ?
)`

// SaveVersion persists the full script text as a new version, tagging
// it with a delta against the previous version. The index database is
// derived data; the version history lives there because it is change
// tracking, not canonical storage.
func SaveVersion(ctx context.Context, ph *ProjectHandle, text, label string, ts time.Time) (int64, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()

	var prev string
	var prevID int64
	err = db.QueryRowContext(ctx, `SELECT id, text FROM script_versions ORDER BY id DESC LIMIT 1`).Scan(&prevID, &prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	delta := ""
	if prev != "" || prevID > 0 {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(prev, text, false)
		dmp.DiffCleanupEfficiency(diffs)
		delta = dmp.DiffToDelta(diffs)
	}

	res, err := db.ExecContext(ctx, insertVersionSQL, ts.UTC().Format(time.RFC3339Nano), label, text, delta)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LatestVersion returns the most recent version, or ok=false when the
// history is empty.
func LatestVersion(ctx context.Context, ph *ProjectHandle) (Version, bool, error) {
	if ph == nil {
		return Version{}, false, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return Version{}, false, err
	}
	defer func() { _ = db.Close() }()
	v, err := scanVersion(db.QueryRowContext(ctx, selectLatestVersionSQL))
	if errors.Is(err, sql.ErrNoRows) {
		return Version{}, false, nil
	}
	if err != nil {
		return Version{}, false, err
	}
	return v, true, nil
}

// GetVersion returns the version with the given id.
func GetVersion(ctx context.Context, ph *ProjectHandle, id int64) (Version, error) {
	if ph == nil {
		return Version{}, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return Version{}, err
	}
	defer func() { _ = db.Close() }()
	v, err := scanVersion(db.QueryRowContext(ctx, selectVersionSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Version{}, errors.New("version not found")
	}
	return v, err
}

// ListVersions returns up to limit most recent versions, newest first.
func ListVersions(ctx context.Context, ph *ProjectHandle, limit int) ([]Version, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listVersionsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Version
	for rows.Next() {
		var v Version
		var tsStr string
		var label, delta sql.NullString
		if err := rows.Scan(&v.ID, &tsStr, &label, &v.Text, &delta); err != nil {
			return nil, err
		}
		v.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
		v.Label = label.String
		v.Delta = delta.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// PruneVersions keeps at most keepLast versions and deletes older ones.
func PruneVersions(ctx context.Context, ph *ProjectHandle, keepLast int) (int64, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneVersionsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(r rowScanner) (Version, error) {
	var v Version
	var tsStr string
	var label, delta sql.NullString
	if err := r.Scan(&v.ID, &tsStr, &label, &v.Text, &delta); err != nil {
		return Version{}, err
	}
	v.TS, _ = time.Parse(time.RFC3339Nano, tsStr)
	v.Label = label.String
	v.Delta = delta.String
	return v, nil
}
