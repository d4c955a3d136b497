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
	"os"
	"strings"
	"testing"
	"time"

	"comicscript/internal/config"
	"comicscript/internal/storage"
)

func openArchiveForTest(t *testing.T) *Archive {
	t.Helper()
	dsn := os.Getenv("CSK_ARCHIVE_TEST_DSN")
	if dsn == "" {
		t.Skip("CSK_ARCHIVE_TEST_DSN not set; skipping archive integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a, err := Open(ctx, config.ArchiveConfig{DSN: dsn, TimeoutMs: 5000})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	return a
}

func TestOpenWithoutDSN(t *testing.T) {
	_, err := Open(context.Background(), config.ArchiveConfig{})
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestArchivePushListGet(t *testing.T) {
	a := openArchiveForTest(t)
	defer func() { _ = a.Close() }()
	ctx := context.Background()
	project := fmt.Sprintf("it-push-%d", time.Now().UnixNano())

	v1 := storage.Version{ID: 1, TS: time.Now().UTC(), Label: "first", Text: "PAGE 1\nPANEL 1\nSunrise over the bay."}
	v2 := storage.Version{ID: 2, TS: time.Now().UTC(), Label: "second", Text: "PAGE 1\nPANEL 1\nSunset over the bay.", Delta: "=7\t-4\t+set"}
	if err := a.PushVersion(ctx, project, v1); err != nil {
		t.Fatalf("push v1: %v", err)
	}
	if err := a.PushVersion(ctx, project, v2); err != nil {
		t.Fatalf("push v2: %v", err)
	}
	// Idempotent re-push
	if err := a.PushVersion(ctx, project, v1); err != nil {
		t.Fatalf("re-push v1: %v", err)
	}

	list, err := a.ListVersions(ctx, project, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("unexpected listing: %+v", list)
	}

	got, err := a.GetVersion(ctx, project, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Label != "first" || !strings.Contains(got.Text, "Sunrise") {
		t.Fatalf("unexpected version: %+v", got)
	}
	if _, err := a.GetVersion(ctx, project, 99); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestArchiveSearchVersions(t *testing.T) {
	a := openArchiveForTest(t)
	defer func() { _ = a.Close() }()
	ctx := context.Background()
	project := fmt.Sprintf("it-search-%d", time.Now().UnixNano())

	v := storage.Version{ID: 1, TS: time.Now().UTC(), Label: "draft", Text: "ALICE: Hello from the rooftop."}
	if err := a.PushVersion(ctx, project, v); err != nil {
		t.Fatalf("push: %v", err)
	}
	hits, err := a.SearchVersions(ctx, project, "rooftop", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].LocalID != 1 {
		t.Fatalf("unexpected hits: %+v", hits)
	}
	if !strings.Contains(hits[0].Snippet, "[rooftop]") {
		t.Fatalf("snippet missing marker: %q", hits[0].Snippet)
	}
	none, err := a.SearchVersions(ctx, project, "basement", 10)
	if err != nil {
		t.Fatalf("search none: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no hits, got %+v", none)
	}
}
