package dailypost

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RenderStylesheet writes the site stylesheet for p to w.
func RenderStylesheet(w io.Writer, p Palette) error {
	return stylesheetTemplate.Execute(w, p)
}

// EmitStylesheet overwrites the stylesheet at path with the CSS for p.
func EmitStylesheet(path string, p Palette) error {
	var buf bytes.Buffer
	if err := RenderStylesheet(&buf, p); err != nil {
		return fmt.Errorf("render stylesheet: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create stylesheet dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}
