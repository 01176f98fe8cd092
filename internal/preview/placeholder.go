package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// PlaceholderFrame renders the flat card shown when a video cannot be
// decoded. 16:9 at the requested width.
func PlaceholderFrame(width int) []byte {
	if width <= 0 {
		width = 320
	}
	height := width * 9 / 16

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{R: 24, G: 28, B: 38, A: 255}}, image.Point{}, draw.Src)

	// faint center band so the card does not read as a dead pixel block
	band := image.Rect(0, height/2-2, width, height/2+2)
	draw.Draw(img, band, &image.Uniform{color.RGBA{R: 52, G: 60, B: 78, A: 255}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		// encoding a flat RGBA image into a buffer cannot fail in practice
		return nil
	}

	return buf.Bytes()
}
