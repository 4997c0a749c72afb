package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type Config struct {
	Content       string
	Size          int
	Background    color.Color
	Foreground    color.Color
	CornerRadius  float64 // Share of a module rounded off at each corner, 0..0.5
	RecoveryLevel qrcode.RecoveryLevel
	QuietZone     int // Modules of empty border around the code
	Logo          image.Image
	LogoScale     float64 // Logo width as a share of the code size
	LogoPadding   float64 // Background margin around the logo in pixels
}

// Event is the style used for event check-in codes.
var Event = Config{
	Size:          512,
	Background:    color.White,
	Foreground:    color.RGBA{R: 20, G: 20, B: 20, A: 255},
	CornerRadius:  0.35,
	RecoveryLevel: qrcode.High,
	QuietZone:     2,
	LogoScale:     0.2,
	LogoPadding:   6,
}

// LoadLogo reads a PNG or JPEG image from disk for use as Config.Logo.
func LoadLogo(path string) (image.Image, error) {
	return gg.LoadImage(path)
}

// Generate renders the code as a PNG image of Size x Size pixels.
func (c Config) Generate() ([]byte, error) {
	if c.Content == "" {
		return nil, errors.New("qr: empty content")
	}
	if c.Size <= 0 {
		return nil, errors.New("qr: size must be positive")
	}

	code, err := qrcode.New(c.Content, c.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	modules := len(bitmap) + 2*c.QuietZone
	cell := float64(c.Size) / float64(modules)
	radius := cell * clamp(c.CornerRadius, 0, 0.5)

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()

	dc.SetColor(c.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := float64(x+c.QuietZone) * cell
			py := float64(y+c.QuietZone) * cell
			if radius > 0 {
				dc.DrawRoundedRectangle(px, py, cell, cell, radius)
			} else {
				dc.DrawRectangle(px, py, cell, cell)
			}
		}
	}
	dc.Fill()

	if c.Logo != nil && c.LogoScale > 0 {
		width := uint(float64(c.Size) * clamp(c.LogoScale, 0, 0.3))
		logo := resize.Resize(width, 0, c.Logo, resize.Lanczos3)
		bounds := logo.Bounds()
		center := float64(c.Size) / 2

		dc.SetColor(c.Background)
		dc.DrawRoundedRectangle(
			center-float64(bounds.Dx())/2-c.LogoPadding,
			center-float64(bounds.Dy())/2-c.LogoPadding,
			float64(bounds.Dx())+2*c.LogoPadding,
			float64(bounds.Dy())+2*c.LogoPadding,
			c.LogoPadding,
		)
		dc.Fill()
		dc.DrawImageAnchored(logo, int(center), int(center), 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err = dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
