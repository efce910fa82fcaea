// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// TextureFromImage converts img to a read-only texture of straight-alpha
// texels in [0, 1]. The texture has the size of img's bounds; texel (0, 0)
// is img.Bounds().Min.
func TextureFromImage(img image.Image) ReadOnlyTexture2D[Texel] {
	b := img.Bounds()
	dst := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return ReadOnlyTexture2D[Texel]{texelsOf(dst)}
}

// ScaledTextureFromImage resamples img to width x height with bilinear
// filtering and converts it to a read-only texture.
func ScaledTextureFromImage(img image.Image, width, height int) ReadOnlyTexture2D[Texel] {
	dst := image.NewNRGBA64(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return ReadOnlyTexture2D[Texel]{texelsOf(dst)}
}

func texelsOf(img *image.NRGBA64) grid2D[Texel] {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	data := make([]Texel, w*h)
	for y := range h {
		for x := range w {
			c := img.NRGBA64At(x, y)
			data[y*w+x] = Texel{
				float32(c.R) / 0xffff,
				float32(c.G) / 0xffff,
				float32(c.B) / 0xffff,
				float32(c.A) / 0xffff,
			}
		}
	}
	return grid2D[Texel]{width: w, height: h, data: data}
}

// ImageOf converts a texture of straight-alpha texels to an *image.NRGBA.
// Channels are clamped to [0, 1] and rounded to 8 bits.
func ImageOf(t ReadWriteTexture2D[Texel]) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := range t.height {
		for x := range t.width {
			v := t.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{
				R: unorm8(v[0]),
				G: unorm8(v[1]),
				B: unorm8(v[2]),
				A: unorm8(v[3]),
			})
		}
	}
	return img
}

func unorm8(v float32) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
