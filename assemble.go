package dailypost

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/ziara/dailypost/markdown"
	"github.com/ziara/dailypost/views"
)

// Placeholder tokens the provider may put in the body to position the table
// and chart.
const (
	TablePlaceholder = "[[TABLE]]"
	ChartPlaceholder = "[[CHART]]"
)

// Assembler turns generated content into a post page and its images.
type Assembler struct {
	renderer *Renderer
	tmpl     *template.Template
	postsDir string
	siteName string
	log      *zap.Logger
}

// NewAssembler creates an Assembler writing pages into postsDir.
func NewAssembler(r *Renderer, tmpl *template.Template, postsDir, siteName string, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{renderer: r, tmpl: tmpl, postsDir: postsDir, siteName: siteName, log: log}
}

// Assemble renders c as posts/<slug>.html and returns the index record for it.
// A body without block-level HTML is treated as Markdown. A malformed or
// absent table or chart block is skipped and its placeholder left as is. A
// placeholder missing from the body is not an error.
func (a *Assembler) Assemble(ctx context.Context, c GeneratedContent, now time.Time) (PostRecord, error) {
	stamp := now.Format(StampLayout)
	slug := PostSlug(c.Title, now)
	filename := slug + ".html"

	image, err := a.renderer.RenderBanner(c.Title, "post_"+stamp+".png")
	if err != nil {
		return PostRecord{}, err
	}

	body := c.Body
	if !markdown.IsHTML(body) {
		a.log.Debug("body has no block markup, converting from markdown")
		body = markdown.ToHTML(body, TablePlaceholder, ChartPlaceholder)
	}
	if chart, ok := c.Chart(); ok {
		if chart.Title == "" {
			chart.Title = c.Title
		}
		chartPath, err := a.renderer.RenderChart(chart, "chart_"+stamp+".png")
		if err != nil {
			return PostRecord{}, err
		}
		body = strings.ReplaceAll(body, ChartPlaceholder, ChartFigure(chartPath, chart.Title))
	} else if len(c.ChartData) > 0 {
		a.log.Debug("skipping malformed chart block")
	}
	if table, ok := c.Table(); ok {
		body = strings.ReplaceAll(body, TablePlaceholder, BuildTable(table))
	} else if len(c.TableData) > 0 {
		a.log.Debug("skipping malformed table block")
	}

	page := views.PostPage{
		SiteName: a.siteName,
		Title:    c.Title,
		Date:     now.Format(DateLayout),
		Category: c.Category,
		Lead:     c.Lead,
		Body:     template.HTML(body),
		Image:    image,
		ImageAlt: c.ImageDescription,
		Summary:  c.Lead,
	}
	var buf bytes.Buffer
	if err := views.Post(a.tmpl, page).Render(ctx, &buf); err != nil {
		return PostRecord{}, fmt.Errorf("render post: %w", err)
	}

	if err := os.MkdirAll(a.postsDir, 0o755); err != nil {
		return PostRecord{}, fmt.Errorf("create posts dir: %w", err)
	}
	dest := filepath.Join(a.postsDir, filename)
	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return PostRecord{}, fmt.Errorf("write post: %w", err)
	}
	a.log.Info("post written", zap.String("path", dest), zap.String("image", image))

	return PostRecord{
		Title:     c.Title,
		Date:      page.Date,
		Timestamp: now.Format(time.RFC3339),
		Category:  c.Category,
		Excerpt:   c.Lead,
		Filename:  filename,
		Image:     image,
	}, nil
}

// ChartFigure returns the markup spliced in place of the chart placeholder.
// src is relative to the site root; pages live one level below it.
func ChartFigure(src, caption string) string {
	var b strings.Builder
	b.WriteString(`<figure class="post-chart"><img src="../`)
	b.WriteString(templ.EscapeString(src))
	b.WriteString(`" alt="`)
	if caption != "" {
		b.WriteString(templ.EscapeString(caption))
	} else {
		b.WriteString("Gráfico")
	}
	b.WriteString(`">`)
	if caption != "" {
		b.WriteString("<figcaption>" + templ.EscapeString(caption) + "</figcaption>")
	}
	b.WriteString("</figure>")
	return b.String()
}

// BuildTable renders t as an HTML table. Cell text is escaped.
func BuildTable(t TableData) string {
	var b strings.Builder
	b.WriteString(`<table class="post-table"><thead><tr>`)
	for _, h := range t.Headers {
		b.WriteString("<th>" + templ.EscapeString(h) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + templ.EscapeString(cellText(cell)) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatValue(v)
	case bool:
		if v {
			return "sim"
		}
		return "não"
	default:
		return fmt.Sprint(v)
	}
}
