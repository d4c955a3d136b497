/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes a search over the embedded index.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// Filters are optional. Tags should be provided without the leading @.
// Types can restrict to kinds like: lettering_dialogue, lettering_caption,
// lettering_sfx, panel_description, panel_notes.
// PageFrom/To are inclusive; 0 means unset.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text     string
	Speaker  string
	Tags     []string
	Types    []string
	PageFrom int
	PageTo   int
	Limit    int
	Offset   int
}

// SearchResult is a single match row. Snippet is a highlighted excerpt
// using [ ] markers when FTS text is used; PageID is 0 when unknown.
type SearchResult struct {
	DocID   int64
	Type    string
	Path    string
	PageID  int
	Speaker string
	Snippet string
}

// Search performs full-text search with optional filters over the
// embedded index. When q.Text is empty it falls back to a plain scan
// over documents with the filters applied.
func Search(ctx context.Context, projectRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT d.doc_id, d.type, d.path, COALESCE(d.page_id,0), COALESCE(d.character_id,''), snippet(fts_documents, 0, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_documents JOIN documents d ON fts_documents.rowid = d.doc_id\n")
		sb.WriteString("WHERE fts_documents MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT d.doc_id, d.type, d.path, COALESCE(d.page_id,0), COALESCE(d.character_id,''), ''\n")
		sb.WriteString("FROM documents d\nWHERE 1=1\n")
	}
	if len(q.Types) > 0 {
		sb.WriteString(" AND d.type IN (" + placeholders(len(q.Types)) + ")\n")
		for _, t := range q.Types {
			args = append(args, t)
		}
	}
	if q.PageFrom > 0 && q.PageTo > 0 && q.PageTo >= q.PageFrom {
		sb.WriteString(" AND d.page_id BETWEEN ? AND ?\n")
		args = append(args, q.PageFrom, q.PageTo)
	} else if q.PageFrom > 0 {
		sb.WriteString(" AND d.page_id >= ?\n")
		args = append(args, q.PageFrom)
	} else if q.PageTo > 0 {
		sb.WriteString(" AND d.page_id <= ?\n")
		args = append(args, q.PageTo)
	}
	if s := strings.TrimSpace(q.Speaker); s != "" {
		sb.WriteString(" AND d.character_id IS NOT NULL AND lower(d.character_id)=?\n")
		args = append(args, strings.ToLower(s))
	}
	// Every requested tag must appear in the panel's tag list.
	for _, t := range q.Tags {
		tt := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(t, "@")))
		if tt == "" {
			continue
		}
		sb.WriteString(" AND lower(COALESCE(d.tags,'')) LIKE ?\n")
		args = append(args, likeContains(tt))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	sb.WriteString("ORDER BY d.page_id NULLS LAST, d.doc_id\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var page sql.NullInt64
		var sn sql.NullString
		if err := rows.Scan(&r.DocID, &r.Type, &r.Path, &page, &r.Speaker, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if page.Valid {
			r.PageID = int(page.Int64)
		}
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Speakers returns the distinct speaker names present in the index,
// sorted alphabetically.
func Speakers(ctx context.Context, projectRoot string) ([]string, error) {
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT character_id FROM documents WHERE character_id IS NOT NULL ORDER BY character_id`)
	if err != nil {
		return nil, fmt.Errorf("speakers query: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func likeContains(s string) string { return "%" + s + "%" }

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
	}
	return b.String()
}
