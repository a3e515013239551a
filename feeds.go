package dailypost

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// FeedInfo describes the site in the generated feeds.
type FeedInfo struct {
	Name        string
	URL         string
	Description string
}

// newestFirst returns posts sorted by timestamp, newest first.
func newestFirst(posts []PostRecord) []PostRecord {
	sorted := make([]PostRecord, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

// WriteRSS encodes posts as an RSS 2.0 feed, newest first.
func WriteRSS(w io.Writer, info FeedInfo, posts []PostRecord, now time.Time) error {
	items := make([]rssItem, 0, len(posts))
	for _, p := range newestFirst(posts) {
		pubDate := ""
		if t, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(info.URL, "posts", p.Filename)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			Category:    p.Category,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:         info.Name,
			Link:          BuildURL(info.URL),
			Description:   info.Description,
			LastBuildDate: now.Format(time.RFC1123Z),
			Items:         items,
		},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}

// WriteSitemap encodes the home page and every post as a sitemap.
func WriteSitemap(w io.Writer, info FeedInfo, posts []PostRecord) error {
	urls := []sitemapURL{
		{Loc: BuildURL(info.URL)},
	}
	for _, p := range newestFirst(posts) {
		lastMod := ""
		if t, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
			lastMod = t.Format("2006-01-02")
		}
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(info.URL, "posts", p.Filename),
			LastMod: lastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}

// WriteFeeds writes feed.xml and sitemap.xml into dir.
func WriteFeeds(dir string, info FeedInfo, posts []PostRecord, now time.Time) error {
	var rss, sm bytes.Buffer
	if err := WriteRSS(&rss, info, posts, now); err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	if err := WriteSitemap(&sm, info, posts); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "feed.xml"), rss.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sitemap.xml"), sm.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write sitemap: %w", err)
	}
	return nil
}
