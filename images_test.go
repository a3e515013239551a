package dailypost

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestRenderBannerWithoutFont(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "assets", "images")
	r := NewRenderer(dir, "assets/images", FixedPalette, filepath.Join(root, "missing.ttf"), zaptest.NewLogger(t))

	rel, err := r.RenderBanner("Tendências de Ouro 2024", "post_20240115103000.png")
	if err != nil {
		t.Fatalf("RenderBanner failed: %v", err)
	}
	if rel != "assets/images/post_20240115103000.png" {
		t.Errorf("path = %q, want %q", rel, "assets/images/post_20240115103000.png")
	}

	full := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		t.Fatalf("banner not written: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("banner is empty")
	}

	img := decodePNG(t, full)
	if got := img.Bounds(); got.Dx() != bannerWidth || got.Dy() != bannerHeight {
		t.Errorf("bounds = %v, want %dx%d", got, bannerWidth, bannerHeight)
	}
	if c := img.At(2, 2); !sameColor(c, fallbackPrimary) {
		t.Errorf("band color = %v, want primary %v", c, fallbackPrimary)
	}
	if c := img.At(2, bannerHeight-2); !sameColor(c, color.White) {
		t.Errorf("body color = %v, want white", c)
	}
}

func TestRenderBannerDrawsTitle(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "img", FixedPalette, "", nil)
	if _, err := r.RenderBanner("Ouro", "b.png"); err != nil {
		t.Fatalf("RenderBanner failed: %v", err)
	}
	img := decodePNG(t, filepath.Join(dir, "b.png"))

	found := false
	for y := 0; y < bannerBand && !found; y++ {
		for x := 0; x < bannerWidth; x++ {
			if !sameColor(img.At(x, y), fallbackPrimary) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no title pixels found inside the band")
	}
}

func TestRenderBannerLongTitle(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "img", FixedPalette, "", nil)
	title := "Um título muito longo sobre tendências de joias, semijoias, ouro, prata e pedras preciosas para atacadistas"
	if _, err := r.RenderBanner(title, "long.png"); err != nil {
		t.Fatalf("RenderBanner failed: %v", err)
	}
}

func TestRenderChart(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "assets/images", FixedPalette, "", nil)

	rel, err := r.RenderChart(ChartData{Title: "Vendas", Labels: []string{"A", "B"}, Values: []float64{1, 2}}, "chart_1.png")
	if err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
	if rel != "assets/images/chart_1.png" {
		t.Errorf("path = %q, want %q", rel, "assets/images/chart_1.png")
	}
	img := decodePNG(t, filepath.Join(dir, "chart_1.png"))
	if got := img.Bounds(); got.Dx() != chartWidth || got.Dy() != chartHeight {
		t.Errorf("bounds = %v, want %dx%d", got, chartWidth, chartHeight)
	}

	// The tallest bar reaches the top of the plot area in the middle of its slot.
	plotW := chartWidth - chartMarginLeft - chartMarginRight
	x := chartMarginLeft + plotW/2 + plotW/4
	y := chartMarginTop + 5
	if c := img.At(x, y); !sameColor(c, fallbackPrimary) {
		t.Errorf("bar pixel at (%d,%d) = %v, want %v", x, y, c, fallbackPrimary)
	}
}

func TestRenderChartInsufficientData(t *testing.T) {
	tests := []struct {
		name string
		data ChartData
	}{
		{"empty", ChartData{}},
		{"no values", ChartData{Labels: []string{"A"}}},
		{"no labels", ChartData{Values: []float64{3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			r := NewRenderer(dir, "img", FixedPalette, "", nil)
			if _, err := r.RenderChart(tt.data, "c.png"); err != nil {
				t.Fatalf("RenderChart failed: %v", err)
			}
			img := decodePNG(t, filepath.Join(dir, "c.png"))
			accent := rgba(FixedPalette.Accent, fallbackPrimary)
			if c := img.At(61, 61); !sameColor(c, accent) {
				t.Errorf("panel border = %v, want accent %v", c, accent)
			}
		})
	}
}

func TestRenderChartNegativeValues(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "img", FixedPalette, "", nil)
	data := ChartData{Labels: []string{"jan", "fev", "mar"}, Values: []float64{-2, 0, 5.5}}
	if _, err := r.RenderChart(data, "neg.png"); err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{2.5, "2.5"},
		{1.23456, "1.23"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.in); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderChartCaptions(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, "img", FixedPalette, "", nil)
	data := ChartData{Labels: []string{"jan", "fev"}, Values: []float64{1, 2}}
	if _, err := r.RenderChart(data, "cap.png"); err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
	img := decodePNG(t, filepath.Join(dir, "cap.png"))

	regions := []struct {
		name string
		rect image.Rectangle
	}{
		{"title", image.Rect(0, 0, chartWidth, 38)},
		{"y caption", image.Rect(0, 40, chartMarginLeft-10, 60)},
		{"x caption", image.Rect(chartMarginLeft, chartHeight-chartMarginBottom+36, chartWidth-chartMarginRight, chartHeight)},
	}
	for _, reg := range regions {
		if !hasInk(img, reg.rect) {
			t.Errorf("%s region is blank", reg.name)
		}
	}
}

func hasInk(img image.Image, rect image.Rectangle) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if !sameColor(img.At(x, y), color.White) {
				return true
			}
		}
	}
	return false
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("", defaultXLabel); got != defaultXLabel {
		t.Errorf("orDefault(\"\") = %q, want %q", got, defaultXLabel)
	}
	if got := orDefault("Mês", defaultXLabel); got != "Mês" {
		t.Errorf("orDefault(\"Mês\") = %q, want %q", got, "Mês")
	}
}
