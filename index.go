package dailypost

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// IndexStore reads and appends to the JSON post index. It assumes a single
// writer; concurrent runs can lose appends.
type IndexStore struct {
	path string
	log  *zap.Logger
}

// NewIndexStore creates an IndexStore for the file at path.
func NewIndexStore(path string, log *zap.Logger) *IndexStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &IndexStore{path: path, log: log}
}

// Load returns the current index. A missing or corrupt file yields an empty
// index and no error; other read failures are returned.
func (s *IndexStore) Load() (PostIndex, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return PostIndex{Posts: []PostRecord{}}, nil
		}
		return PostIndex{}, fmt.Errorf("read index: %w", err)
	}

	var idx PostIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		s.log.Warn("corrupt post index, starting a new one", zap.String("path", s.path), zap.Error(err))
		return PostIndex{Posts: []PostRecord{}}, nil
	}
	if idx.Posts == nil {
		idx.Posts = []PostRecord{}
	}
	return idx, nil
}

// Append adds rec to the index, stamps last_updated with now and rewrites the file.
func (s *IndexStore) Append(rec PostRecord, now time.Time) (PostIndex, error) {
	idx, err := s.Load()
	if err != nil {
		return PostIndex{}, err
	}
	idx.Posts = append(idx.Posts, rec)
	idx.LastUpdated = now.Format(time.RFC3339)
	if err := s.write(idx); err != nil {
		return PostIndex{}, err
	}
	s.log.Info("post index updated", zap.String("title", rec.Title), zap.Int("posts", len(idx.Posts)))
	return idx, nil
}

// write replaces the index through a temporary file in the same directory.
func (s *IndexStore) write(idx PostIndex) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(idx); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".posts-index-*.json")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod index: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}
