package dailypost

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testInfo = FeedInfo{Name: "Ziara", URL: "https://ziara.example", Description: "Notícias de joias"}

func TestWriteRSS(t *testing.T) {
	posts := []PostRecord{archivedRecord(1, "A"), archivedRecord(2, "B")}
	var buf bytes.Buffer
	if err := WriteRSS(&buf, testInfo, posts, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteRSS failed: %v", err)
	}

	var feed rssXML
	if err := xml.Unmarshal(buf.Bytes(), &feed); err != nil {
		t.Fatalf("feed is not valid XML: %v", err)
	}
	if feed.Version != "2.0" {
		t.Errorf("Version = %q, want %q", feed.Version, "2.0")
	}
	if feed.Channel.Title != "Ziara" {
		t.Errorf("Title = %q, want %q", feed.Channel.Title, "Ziara")
	}
	if len(feed.Channel.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(feed.Channel.Items))
	}
	first := feed.Channel.Items[0]
	if first.Link != "https://ziara.example/posts/post-2.html" {
		t.Errorf("Link = %q, want newest post first", first.Link)
	}
	if first.PubDate != "Tue, 02 Jan 2024 10:00:00 +0000" {
		t.Errorf("PubDate = %q", first.PubDate)
	}
	if first.Description != "Resumo <b>destacado</b>" {
		t.Errorf("Description = %q", first.Description)
	}
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, testInfo, []PostRecord{archivedRecord(5, "A")}); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}
	var sm sitemapURLSet
	if err := xml.Unmarshal(buf.Bytes(), &sm); err != nil {
		t.Fatalf("sitemap is not valid XML: %v", err)
	}
	if len(sm.URLs) != 2 {
		t.Fatalf("urls = %d, want 2", len(sm.URLs))
	}
	if sm.URLs[0].Loc != "https://ziara.example/" {
		t.Errorf("home Loc = %q", sm.URLs[0].Loc)
	}
	if sm.URLs[1].LastMod != "2024-01-05" {
		t.Errorf("LastMod = %q, want %q", sm.URLs[1].LastMod, "2024-01-05")
	}
}

func TestWriteFeeds(t *testing.T) {
	dir := t.TempDir()
	if err := WriteFeeds(dir, testInfo, nil, time.Now()); err != nil {
		t.Fatalf("WriteFeeds failed: %v", err)
	}
	for _, name := range []string{"feed.xml", "sitemap.xml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "<?xml") {
			t.Errorf("%s missing XML header", name)
		}
	}
}
