package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	// Registered decoders for embedded artwork rasters.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"
)

// rescaleImage decodes an encoded image and re-encodes it scaled by the
// given factor. A factor of 1.0 returns the input unchanged.
func rescaleImage(data []byte, scale float64) ([]byte, error) {
	if scale == 1.0 {
		return data, nil
	}
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %f", scale)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scale %f collapses image %dx%d", scale, b.Dx(), b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode scaled image: %w", err)
	}
	return buf.Bytes(), nil
}

// binarize converts an image region to a boolean ink mask using a mean
// luminance threshold over that region.
func binarize(img image.Image, rect image.Rectangle) [][]bool {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return nil
	}

	var sum, count uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sum += uint64(luminance(img.At(x, y)))
			count++
		}
	}
	threshold := uint32(sum / count)

	mask := make([][]bool, rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := make([]bool, rect.Dx())
		for x := rect.Min.X; x < rect.Max.X; x++ {
			row[x-rect.Min.X] = luminance(img.At(x, y)) < threshold
		}
		mask[y-rect.Min.Y] = row
	}
	return mask
}

func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	// ITU-R BT.601 weights, 16-bit channels.
	return (299*r + 587*g + 114*b) / 1000
}
