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
	"testing"
	"time"

	"comicscript/internal/domain"
)

func versionsFixture(t *testing.T) *ProjectHandle {
	t.Helper()
	ph, err := InitProject(t.TempDir(), domain.Project{Name: "Versions"})
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	return ph
}

func TestSaveVersionAndHistory(t *testing.T) {
	ph := versionsFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id1, err := SaveVersion(ctx, ph, "PAGE 1\nPanel 1: Dawn.", "first draft", t0)
	if err != nil {
		t.Fatalf("SaveVersion 1: %v", err)
	}
	id2, err := SaveVersion(ctx, ph, "PAGE 1\nPanel 1: Dusk.", "", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("SaveVersion 2: %v", err)
	}
	if id2 <= id1 {
		t.Fatalf("ids not increasing: %d then %d", id1, id2)
	}

	v, ok, err := LatestVersion(ctx, ph)
	if err != nil || !ok {
		t.Fatalf("LatestVersion: ok=%v err=%v", ok, err)
	}
	if v.ID != id2 || v.Text != "PAGE 1\nPanel 1: Dusk." {
		t.Fatalf("latest = %+v", v)
	}
	// The second version carries a delta against the first; the first
	// has none.
	if v.Delta == "" {
		t.Errorf("expected delta on second version")
	}
	first, err := GetVersion(ctx, ph, id1)
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if first.Delta != "" {
		t.Errorf("first version should have no delta, got %q", first.Delta)
	}
	if first.Label != "first draft" {
		t.Errorf("label = %q", first.Label)
	}

	list, err := ListVersions(ctx, ph, 10)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(list) != 2 || list[0].ID != id2 || list[1].ID != id1 {
		t.Fatalf("list = %+v", list)
	}
}

func TestLatestVersionEmptyHistory(t *testing.T) {
	ph := versionsFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, ok, err := LatestVersion(ctx, ph)
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if ok {
		t.Fatalf("expected empty history")
	}
}

func TestPruneVersionsKeepsNewest(t *testing.T) {
	ph := versionsFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := SaveVersion(ctx, ph, "draft", "", base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("SaveVersion %d: %v", i, err)
		}
	}
	n, err := PruneVersions(ctx, ph, 2)
	if err != nil {
		t.Fatalf("PruneVersions: %v", err)
	}
	if n != 3 {
		t.Fatalf("pruned %d, want 3", n)
	}
	list, err := ListVersions(ctx, ph, 10)
	if err != nil {
		t.Fatalf("ListVersions: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("remaining = %d, want 2", len(list))
	}
}
