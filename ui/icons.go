// Package ui provides the graphical shell for OpenCami.
// This file contains icon generation for the system tray.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/yllada/opencami-desktop/common"
)

// IconConfig defines the configuration for icon generation.
type IconConfig struct {
	Size        int
	FillColor   color.RGBA
	BorderColor color.RGBA
	SymbolColor color.RGBA
}

// DefaultIconConfig returns the OpenCami tray colors.
func DefaultIconConfig() IconConfig {
	return IconConfig{
		Size:        common.TrayIconSize,
		FillColor:   color.RGBA{53, 132, 228, 255},  // Blue
		BorderColor: color.RGBA{26, 95, 180, 255},   // Dark blue
		SymbolColor: color.RGBA{255, 255, 255, 255}, // White
	}
}

// IconGenerator generates PNG icons for the system tray.
type IconGenerator struct {
	config IconConfig
}

// NewIconGenerator creates a new icon generator with the given config.
func NewIconGenerator(config IconConfig) *IconGenerator {
	return &IconGenerator{config: config}
}

// Generate creates a PNG icon and returns the bytes.
func (g *IconGenerator) Generate() []byte {
	size := g.config.Size
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	g.drawBubble(img)
	g.drawMonogram(img)

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// drawBubble draws a round speech bubble with a tail at the bottom left.
func (g *IconGenerator) drawBubble(img *image.RGBA) {
	size := float64(g.config.Size)
	cx, cy := size/2, size/2-1
	r := size/2 - 2

	inBubble := func(x, y float64) bool {
		dx, dy := x-cx, y-cy
		if dx*dx+dy*dy <= r*r {
			return true
		}
		// Tail: a small triangle below the circle.
		return y > cy && y < size-1 && x > 2 && x < cx-1 && (y-cy) > (x-2)*0.9
	}

	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inBubble(fx, fy) {
				continue
			}
			isBorder := !inBubble(fx-1, fy) || !inBubble(fx+1, fy) ||
				!inBubble(fx, fy-1) || !inBubble(fx, fy+1)
			if isBorder {
				img.Set(x, y, g.config.BorderColor)
			} else {
				img.Set(x, y, g.config.FillColor)
			}
		}
	}
}

// drawMonogram draws a "C": a ring opened towards the right.
func (g *IconGenerator) drawMonogram(img *image.RGBA) {
	size := float64(g.config.Size)
	cx, cy := size/2, size/2-1
	outer := size / 4
	inner := outer - 1.6

	for y := 0; y < g.config.Size; y++ {
		for x := 0; x < g.config.Size; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Hypot(dx, dy)
			if d > outer || d < inner {
				continue
			}
			// Leave a 90 degree gap centered on the positive x axis.
			if math.Abs(math.Atan2(dy, dx)) < math.Pi/4 {
				continue
			}
			img.Set(x, y, g.config.SymbolColor)
		}
	}
}

// GenerateTrayIcon generates the tray icon.
func GenerateTrayIcon() []byte {
	return NewIconGenerator(DefaultIconConfig()).Generate()
}
