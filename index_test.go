package dailypost

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func testRecord(i int) PostRecord {
	return PostRecord{
		Title:     fmt.Sprintf("Post %d", i),
		Date:      "15/01/2024",
		Timestamp: "2024-01-15T10:30:00Z",
		Category:  "Tendências",
		Excerpt:   "Resumo <b>destacado</b>",
		Filename:  fmt.Sprintf("post-%d.html", i),
		Image:     fmt.Sprintf("assets/images/post_%d.png", i),
	}
}

func TestIndexAppendFromAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts-index.json")
	s := NewIndexStore(path, zaptest.NewLogger(t))

	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	const n = 5
	for i := 0; i < n; i++ {
		if _, err := s.Append(testRecord(i), base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	idx, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(idx.Posts) != n {
		t.Fatalf("posts = %d, want %d", len(idx.Posts), n)
	}
	for i, p := range idx.Posts {
		if p.Filename != fmt.Sprintf("post-%d.html", i) {
			t.Errorf("posts[%d].Filename = %q, out of append order", i, p.Filename)
		}
	}
	wantUpdated := base.Add((n - 1) * time.Minute).Format(time.RFC3339)
	if idx.LastUpdated != wantUpdated {
		t.Errorf("LastUpdated = %q, want %q", idx.LastUpdated, wantUpdated)
	}
}

func TestIndexSelfHeals(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{not json"},
		{"empty file", ""},
		{"no posts key", `{"last_updated":"2024-01-01T00:00:00Z"}`},
		{"null posts", `{"posts":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "posts-index.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewIndexStore(path, zaptest.NewLogger(t))
			idx, err := s.Append(testRecord(1), time.Now())
			if err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if len(idx.Posts) != 1 {
				t.Errorf("posts = %d, want 1", len(idx.Posts))
			}
		})
	}
}

func TestIndexFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts-index.json")
	s := NewIndexStore(path, nil)
	if _, err := s.Append(testRecord(7), time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{`"posts": [`, `"last_updated": "2024-01-15T10:30:00Z"`, "Tendências", "<b>destacado</b>", `"filename": "post-7.html"`} {
		if !strings.Contains(text, want) {
			t.Errorf("index file missing %q:\n%s", want, text)
		}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("index is not a JSON object: %v", err)
	}
	if _, ok := raw["posts"]; !ok {
		t.Error("index missing posts key")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestIndexLoadEmptyWhenAbsent(t *testing.T) {
	s := NewIndexStore(filepath.Join(t.TempDir(), "missing.json"), nil)
	idx, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if idx.Posts == nil || len(idx.Posts) != 0 {
		t.Errorf("Posts = %#v, want empty non-nil slice", idx.Posts)
	}
}
