package dailypost

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRenderStylesheetContainsPalette(t *testing.T) {
	palettes := []Palette{FixedPalette}
	for m := time.January; m <= time.December; m++ {
		palettes = append(palettes, SeasonalPalette(time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)))
	}
	for _, p := range palettes {
		var b strings.Builder
		if err := RenderStylesheet(&b, p); err != nil {
			t.Fatalf("RenderStylesheet failed: %v", err)
		}
		css := b.String()
		if !strings.Contains(css, "--primary-color: "+p.Primary+";") {
			t.Errorf("stylesheet missing primary %q", p.Primary)
		}
		if !strings.Contains(css, "--bg-color: "+p.Background+";") {
			t.Errorf("stylesheet missing background %q", p.Background)
		}
	}
}

func TestEmitStylesheetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "css", "style.css")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := EmitStylesheet(path, FixedPalette); err != nil {
		t.Fatalf("EmitStylesheet failed: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(first), "stale") {
		t.Error("stylesheet was not overwritten")
	}

	// Same palette, same bytes.
	if err := EmitStylesheet(path, FixedPalette); err != nil {
		t.Fatalf("EmitStylesheet failed: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("stylesheet output is not deterministic")
	}
}

func TestEmitStylesheetUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "assets")
	if err := os.WriteFile(blocker, []byte("file, not dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EmitStylesheet(filepath.Join(blocker, "css", "style.css"), FixedPalette); err == nil {
		t.Error("expected error when the stylesheet directory cannot be created")
	}
}
