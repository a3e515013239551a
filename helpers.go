package dailypost

import (
	"net/url"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Layouts shared by filenames, the index and the rendered pages.
const (
	StampLayout = "20060102150405"
	DateLayout  = "02/01/2006"
)

// Slugify converts a title to a URL-safe slug. Accented letters are folded to
// their ASCII base ("Tendências" becomes "tendencias").
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// PostSlug derives the post slug from its title and the run time.
func PostSlug(title string, t time.Time) string {
	slug := Slugify(title + "-" + t.Format(StampLayout))
	if strings.HasPrefix(slug, t.Format(StampLayout)) {
		return "post-" + slug
	}
	return slug
}

// BuildURL joins a base URL with path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) == 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}
