// Package views renders the generated pages as templ components.
package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
)

// BaseTemplateName is the post template file looked up in a template directory.
const BaseTemplateName = "base.html"

//go:embed templates/base.html
var embedded embed.FS

// DefaultTemplate returns the source of the built-in post template.
func DefaultTemplate() []byte {
	b, _ := embedded.ReadFile("templates/" + BaseTemplateName)
	return b
}

// LoadTemplate parses dir/base.html, or the built-in template when dir has none.
func LoadTemplate(dir string) (*template.Template, error) {
	if dir != "" {
		p := filepath.Join(dir, BaseTemplateName)
		if _, err := os.Stat(p); err == nil {
			t, err := template.ParseFiles(p)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", p, err)
			}
			return t, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return template.ParseFS(embedded, "templates/"+BaseTemplateName)
}

// Post returns a component rendering page through t.
func Post(t *template.Template, page PostPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.Execute(w, page)
	})
}
