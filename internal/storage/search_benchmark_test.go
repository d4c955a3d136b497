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
	"fmt"
	"testing"
	"time"
)

func BenchmarkSearchFTS(b *testing.B) {
	root := b.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		b.Fatalf("InitOrOpenIndex: %v", err)
	}
	for i := 0; i < 500; i++ {
		_, err := db.ExecContext(ctx, `INSERT INTO documents(type, path, page_id, character_id, text) VALUES(?,?,?,?,?)`,
			"lettering_dialogue",
			fmt.Sprintf("issue:1/act:1/scene:1/page:%d/panel:p/lettering:0", i%22+1),
			i%22+1, "ALICE", fmt.Sprintf("line %d about the lighthouse", i))
		if err != nil {
			b.Fatalf("seed: %v", err)
		}
	}
	db.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := Search(ctx, root, SearchQuery{Text: "lighthouse", Limit: 50})
		if err != nil {
			b.Fatalf("Search: %v", err)
		}
		if len(res) == 0 {
			b.Fatal("no results")
		}
	}
}
