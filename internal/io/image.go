package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/handiism/art-gallery/internal/render"
)

// ImageFormat selects the encoding of exported images.
type ImageFormat int

const (
	// FormatPNG encodes lossless PNG images.
	FormatPNG ImageFormat = iota

	// FormatJPEG encodes JPEG images at quality 90.
	FormatJPEG
)

// Extension returns the file extension for the format, including the dot.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// SheetOptions controls swatch sheet layout.
type SheetOptions struct {
	// Columns is the number of tiles per row. Defaults to 4.
	Columns int

	// TileWidth is the width of one tile in pixels at scale 1. Defaults to 180.
	TileWidth int

	// Scale multiplies the final image size. Values above 1 produce
	// high-density output. Defaults to 1.
	Scale float64

	// Format selects PNG or JPEG encoding.
	Format ImageFormat
}

const (
	tilePadding  = 10
	swatchHeight = 90
	lineHeight   = 16
	textLines    = 3
)

var (
	sheetBackground = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	sheetText       = color.RGBA{R: 0x21, G: 0x25, B: 0x29, A: 0xff}
	sheetMuted      = color.RGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
	sheetHighlight  = color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
)

// ImageService renders galleries as images.
//
// A swatch sheet shows one tile per card: the color swatch, the title,
// the byline and the mood/style line. Highlighted cards get a colored
// frame. An empty gallery renders the placeholder text.
//
// Example usage:
//
//	svc := NewImageService()
//	data, err := svc.SwatchSheet(ctx, render.RenderCards(view, 0), SheetOptions{Columns: 3})
//	err = WriteFile(ctx, "gallery.png", data)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// SwatchSheet renders g as an encoded image.
func (s *ImageService) SwatchSheet(ctx context.Context, g render.Gallery, opts SheetOptions) ([]byte, error) {
	opts = withSheetDefaults(opts)

	tileHeight := swatchHeight + tilePadding*3 + lineHeight*textLines

	var img *image.RGBA
	if g.IsEmpty() {
		img = image.NewRGBA(image.Rect(0, 0, opts.TileWidth*2, tileHeight/2))
		draw.Draw(img, img.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)
		drawText(img, g.Placeholder, tilePadding, tileHeight/4, sheetMuted)
	} else {
		cols := opts.Columns
		if len(g.Cards) < cols {
			cols = len(g.Cards)
		}
		rows := (len(g.Cards) + cols - 1) / cols

		img = image.NewRGBA(image.Rect(0, 0, cols*opts.TileWidth, rows*tileHeight))
		draw.Draw(img, img.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)

		for i, card := range g.Cards {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			x := (i % cols) * opts.TileWidth
			y := (i / cols) * tileHeight
			drawTile(img, card, image.Rect(x, y, x+opts.TileWidth, y+tileHeight))
		}
	}

	var out image.Image = img
	if opts.Scale != 1 {
		out = scale(img, opts.Scale)
	}

	var buf bytes.Buffer
	var err error
	switch opts.Format {
	case FormatJPEG:
		err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(&buf, out)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding swatch sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func withSheetDefaults(opts SheetOptions) SheetOptions {
	if opts.Columns <= 0 {
		opts.Columns = 4
	}
	if opts.TileWidth <= 0 {
		opts.TileWidth = 180
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	return opts
}

func drawTile(dst *image.RGBA, card render.Card, bounds image.Rectangle) {
	inner := bounds.Inset(tilePadding / 2)
	if card.Highlighted {
		draw.Draw(dst, inner, image.NewUniform(sheetHighlight), image.Point{}, draw.Src)
		inner = inner.Inset(3)
		draw.Draw(dst, inner, image.NewUniform(sheetBackground), image.Point{}, draw.Src)
	}

	swatchRect := image.Rect(inner.Min.X+tilePadding/2, inner.Min.Y+tilePadding/2, inner.Max.X-tilePadding/2, inner.Min.Y+tilePadding/2+swatchHeight)
	draw.Draw(dst, swatchRect, image.NewUniform(swatchColor(card.Swatch)), image.Point{}, draw.Src)

	maxChars := (swatchRect.Dx()) / basicfont.Face7x13.Advance
	textY := swatchRect.Max.Y + tilePadding + basicfont.Face7x13.Ascent
	drawText(dst, clip(card.Title, maxChars), swatchRect.Min.X, textY, sheetText)
	drawText(dst, clip(card.Byline, maxChars), swatchRect.Min.X, textY+lineHeight, sheetMuted)
	drawText(dst, clip(card.Tags, maxChars), swatchRect.Min.X, textY+lineHeight*2, sheetMuted)
}

func swatchColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(render.FallbackSwatch)
	}
	return c.Clamped()
}

func drawText(dst draw.Image, text string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// clip shortens text to at most n runes, marking the cut with "...".
func clip(text string, n int) string {
	runes := []rune(text)
	if n <= 0 {
		return ""
	}
	if len(runes) <= n {
		return text
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// scale resizes src by factor using Catmull-Rom for smooth edges.
func scale(src image.Image, factor float64) image.Image {
	bounds := src.Bounds()
	width := int(float64(bounds.Dx()) * factor)
	height := int(float64(bounds.Dy()) * factor)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
