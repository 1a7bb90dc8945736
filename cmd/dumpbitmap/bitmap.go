package main

import (
	"image"
	"image/color"

	"anotherengine/internal/video"
)

// decodeBitmapBuffer interprets raw as a bitmap resource's packed
// pixel data: exactly one full 320x200 4bpp framebuffer's worth of
// bytes, the same layout video.Buffer uses internally.
func decodeBitmapBuffer(raw []byte) (*video.Buffer, error) {
	return video.NewBufferFromPacked(raw)
}

// surfaceToImage converts an ApplyPalette ABGR surface into a
// standard library image for gobmp to encode.
func surfaceToImage(surface []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, video.Width, video.Height))
	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			off := (y*video.Width + x) * 4
			r, g, b, a := surface[off], surface[off+1], surface[off+2], surface[off+3]
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}
