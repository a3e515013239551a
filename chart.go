package dailypost

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/font"
)

const (
	chartWidth        = 1000
	chartHeight       = 600
	chartMarginLeft   = 90
	chartMarginRight  = 40
	chartMarginTop    = 70
	chartMarginBottom = 70
	chartTicks        = 4
)

var gridColor = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 255}

// insufficientData is drawn instead of bars when labels or values are missing.
const insufficientData = "Dados insuficientes para gerar o gráfico"

// Captions used when the chart block leaves them out.
const (
	defaultChartTitle = "Gráfico"
	defaultXLabel     = "Categoria"
	defaultYLabel     = "Valor"
)

// RenderChart draws a bar chart of data and writes it as filename, returning
// the path relative to the site root. Missing labels or values produce a
// placeholder panel rather than an error. Extra labels or values beyond the
// shorter of the two are ignored.
func (r *Renderer) RenderChart(data ChartData, filename string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, chartWidth, chartHeight))
	fill(img, img.Bounds(), color.White)

	ink := rgba(r.palette.Secondary, fallbackInk)
	n := min(len(data.Labels), len(data.Values))
	if n == 0 {
		r.drawPlaceholder(img, ink)
		return r.save(img, filename)
	}

	titleFace := r.face(24)
	defer titleFace.Close()
	labelFace := r.face(14)
	defer labelFace.Close()

	plot := image.Rect(chartMarginLeft, chartMarginTop, chartWidth-chartMarginRight, chartHeight-chartMarginBottom)

	drawCentered(img, titleFace, fitText(titleFace, orDefault(data.Title, defaultChartTitle), chartWidth-40), image.Rect(0, 0, chartWidth, 38), ink)
	drawLeftAligned(img, labelFace, orDefault(data.YLabel, defaultYLabel), 8, 50, ink)
	drawCentered(img, labelFace, orDefault(data.XLabel, defaultXLabel), image.Rect(plot.Min.X, plot.Max.Y+36, plot.Max.X, chartHeight-4), ink)

	values := data.Values[:n]

	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	yOf := func(v float64) int {
		return plot.Max.Y - int(math.Round((v-lo)/(hi-lo)*float64(plot.Dy())))
	}

	for i := 0; i <= chartTicks; i++ {
		v := lo + (hi-lo)*float64(i)/chartTicks
		y := yOf(v)
		fill(img, image.Rect(plot.Min.X, y, plot.Max.X, y+1), gridColor)
		drawRightAligned(img, labelFace, formatValue(v), plot.Min.X-8, y, ink)
	}

	bar := rgba(r.palette.Primary, fallbackPrimary)
	slot := plot.Dx() / n
	barW := max(slot*6/10, 1)
	base := yOf(0)
	for i, v := range values {
		x0 := plot.Min.X + i*slot + (slot-barW)/2
		y := yOf(v)
		fill(img, image.Rect(x0, min(y, base), x0+barW, max(y, base)), bar)

		cell := image.Rect(plot.Min.X+i*slot, plot.Max.Y+6, plot.Min.X+(i+1)*slot, plot.Max.Y+30)
		drawCentered(img, labelFace, fitText(labelFace, data.Labels[i], slot-4), cell, ink)

		valueBox := image.Rect(x0, min(y, base)-24, x0+barW, min(y, base)-2)
		drawCentered(img, labelFace, formatValue(v), valueBox, ink)
	}

	// Spines.
	fill(img, image.Rect(plot.Min.X-2, plot.Min.Y, plot.Min.X, plot.Max.Y+2), ink)
	fill(img, image.Rect(plot.Min.X-2, base, plot.Max.X, base+2), ink)

	return r.save(img, filename)
}

func (r *Renderer) drawPlaceholder(img *image.RGBA, ink color.Color) {
	face := r.face(28)
	defer face.Close()

	panel := image.Rect(60, 60, chartWidth-60, chartHeight-60)
	accent := rgba(r.palette.Accent, fallbackPrimary)
	fill(img, image.Rect(panel.Min.X, panel.Min.Y, panel.Max.X, panel.Min.Y+3), accent)
	fill(img, image.Rect(panel.Min.X, panel.Max.Y-3, panel.Max.X, panel.Max.Y), accent)
	fill(img, image.Rect(panel.Min.X, panel.Min.Y, panel.Min.X+3, panel.Max.Y), accent)
	fill(img, image.Rect(panel.Max.X-3, panel.Min.Y, panel.Max.X, panel.Max.Y), accent)
	drawCentered(img, face, insufficientData, panel, ink)
}

// drawRightAligned draws text ending at x, vertically centered on y.
func drawRightAligned(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	w := font.MeasureString(face, text).Ceil()
	drawCentered(img, face, text, image.Rect(x-w, y-10, x, y+10), c)
}

// drawLeftAligned draws text starting at x, vertically centered on y.
func drawLeftAligned(img *image.RGBA, face font.Face, text string, x, y int, c color.Color) {
	w := font.MeasureString(face, text).Ceil()
	drawCentered(img, face, text, image.Rect(x, y-10, x+w, y+10), c)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// fitText trims s with an ellipsis until it fits maxWidth.
func fitText(face font.Face, s string, maxWidth int) string {
	if font.MeasureString(face, s).Ceil() <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		t := string(runes) + "…"
		if font.MeasureString(face, t).Ceil() <= maxWidth {
			return t
		}
	}
	return ""
}

func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
