// Package markdown converts the Markdown bodies some providers return, despite
// being asked for HTML, into the HTML fragment a post page expects.
package markdown

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`(^|\s)_([^_]+)_`)
	reLink             = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()]*)\)`)
	reOrderedList      = regexp.MustCompile(`^\d+[.)]\s`)
	reHeading          = regexp.MustCompile(`^#{1,6}\s`)
	reBlockTag         = regexp.MustCompile(`(?i)<(p|h[1-6]|ul|ol|li|div|table|blockquote|br|section|article)\b`)
)

// IsHTML reports whether body already contains block-level HTML markup.
func IsHTML(body string) bool {
	return reBlockTag.MatchString(body)
}

// ToHTML renders md as HTML. Headings become h3, since the page title is
// the only h1. Lines that are exactly one of keep pass through verbatim as
// their own block so placeholder tokens survive conversion.
func ToHTML(md string, keep ...string) string {
	r := &renderer{keep: keep}
	for _, raw := range strings.Split(md, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.close()
	return r.buf.String()
}

type renderer struct {
	buf  strings.Builder
	open string // tag of the block being written, "" when none
	keep []string
}

// enter makes tag the current block, closing any other.
func (r *renderer) enter(tag string) bool {
	if r.open == tag {
		return false
	}
	r.close()
	r.buf.WriteString("<" + tag + ">")
	r.open = tag
	return true
}

func (r *renderer) close() {
	if r.open != "" {
		r.buf.WriteString("</" + r.open + ">")
		r.open = ""
	}
}

func (r *renderer) line(line string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		r.close()
	case r.kept(trimmed):
		r.close()
		r.buf.WriteString(trimmed)
	case trimmed == "---" || trimmed == "***":
		r.close()
		r.buf.WriteString("<hr/>")
	case reHeading.MatchString(trimmed):
		r.close()
		r.buf.WriteString("<h3>" + FormatInline(strings.TrimLeft(trimmed, "# ")) + "</h3>")
	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		r.enter("ul")
		r.buf.WriteString("<li>" + FormatInline(strings.TrimSpace(trimmed[2:])) + "</li>")
	case reOrderedList.MatchString(trimmed):
		r.enter("ol")
		r.buf.WriteString("<li>" + FormatInline(reOrderedList.ReplaceAllString(trimmed, "")) + "</li>")
	case strings.HasPrefix(trimmed, ">"):
		if !r.enter("blockquote") {
			r.buf.WriteString(" ")
		}
		r.buf.WriteString(FormatInline(strings.TrimSpace(trimmed[1:])))
	default:
		if !r.enter("p") {
			r.buf.WriteString(" ")
		}
		r.buf.WriteString(FormatInline(trimmed))
	}
}

func (r *renderer) kept(line string) bool {
	for _, k := range r.keep {
		if line == k {
			return true
		}
	}
	return false
}

// FormatInline escapes s and applies bold, italic and link formatting.
func FormatInline(s string) string {
	escaped := html.EscapeString(s)
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + match[1] + `</a>`
	})
	return applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = reItalicUnderscore.ReplaceAllString(seg, "$1<em>$2</em>")
		return seg
	})
}

// applyOutsideTags applies fn only to text outside HTML tags, so formatting
// never touches URLs inside href attributes.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// SafeURL returns raw escaped for an href, or "" unless it is relative or
// uses http, https or mailto.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	default:
		return ""
	}
}
