package dailypost

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	bannerWidth    = 1200
	bannerHeight   = 600
	bannerBand     = 220
	bannerMargin   = 40
	bannerFontSize = 48
	minFontSize    = 20
)

var (
	titleColor      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	fallbackPrimary = color.RGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 255}
	fallbackInk     = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 255}
)

// Renderer draws the banner and chart images for a post.
type Renderer struct {
	dir      string // where PNGs are written
	relDir   string // dir as seen from the site root, slash separated
	palette  Palette
	fontPath string
	log      *zap.Logger

	font       *opentype.Font
	fontLoaded bool
}

// NewRenderer creates a Renderer writing into dir. relDir is the same
// directory relative to the site root and prefixes every returned path.
func NewRenderer(dir, relDir string, p Palette, fontPath string, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		dir:      dir,
		relDir:   filepath.ToSlash(relDir),
		palette:  p,
		fontPath: fontPath,
		log:      log,
	}
}

// RenderBanner draws title centered in a primary-colored band on a 1200x600
// canvas and writes it as filename. It returns the path relative to the site root.
// A missing font never fails the render.
func (r *Renderer) RenderBanner(title, filename string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, bannerWidth, bannerHeight))
	fill(img, img.Bounds(), color.White)

	band := image.Rect(0, 0, bannerWidth, bannerBand)
	fill(img, band, rgba(r.palette.Primary, fallbackPrimary))

	face := r.fitFace(title, bannerFontSize, bannerWidth-2*bannerMargin)
	defer face.Close()
	drawCentered(img, face, title, band, titleColor)

	return r.save(img, filename)
}

// fitFace returns the largest face, stepping down from size, that renders s
// within maxWidth. It stops at minFontSize.
func (r *Renderer) fitFace(s string, size float64, maxWidth int) font.Face {
	for {
		face := r.face(size)
		if size <= minFontSize || font.MeasureString(face, s).Ceil() <= maxWidth {
			return face
		}
		face.Close()
		size -= 4
	}
}

// face resolves a font face: the configured font file, then Go Bold, then the
// fixed-size basic font.
func (r *Renderer) face(size float64) font.Face {
	if f := r.loadFont(); f != nil {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			return face
		}
		r.log.Warn("font face failed, using basic font", zap.Float64("size", size), zap.Error(err))
	}
	return basicfont.Face7x13
}

func (r *Renderer) loadFont() *opentype.Font {
	if r.fontLoaded {
		return r.font
	}
	r.fontLoaded = true

	if r.fontPath != "" {
		data, err := os.ReadFile(r.fontPath)
		if err == nil {
			f, err := opentype.Parse(data)
			if err == nil {
				r.font = f
				return f
			}
			r.log.Warn("parse font failed, using Go Bold", zap.String("path", r.fontPath), zap.Error(err))
		} else {
			r.log.Warn("font unavailable, using Go Bold", zap.String("path", r.fontPath), zap.Error(err))
		}
	}

	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		r.log.Warn("parse Go Bold failed, using basic font", zap.Error(err))
		return nil
	}
	r.font = f
	return f
}

func (r *Renderer) save(img image.Image, filename string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, filename), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(r.relDir, filename), nil
}

func fill(dst draw.Image, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawCentered draws text centered horizontally and vertically inside box.
func drawCentered(dst draw.Image, face font.Face, text string, box image.Rectangle, c color.Color) {
	bounds, advance := font.BoundString(face, text)
	textW := advance.Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := box.Min.X + (box.Dx()-textW)/2
	y := box.Min.Y + (box.Dy()-textH)/2 - bounds.Min.Y.Floor()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
