// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"image"
	"image/color"
	"testing"
)

func TestTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.SetNRGBA(10, 20, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(11, 20, color.NRGBA{G: 255, A: 0})

	tex := TextureFromImage(img)
	if tex.Width() != 2 || tex.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", tex.Width(), tex.Height())
	}
	if got := tex.At(0, 0); got != (Texel{1, 0, 0, 1}) {
		t.Errorf("At(0,0) = %v, want red", got)
	}
	if got := tex.At(1, 0); got[3] != 0 {
		t.Errorf("At(1,0) alpha = %v, want 0", got[3])
	}
}

func TestScaledTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	tex := ScaledTextureFromImage(img, 2, 2)
	if tex.Width() != 2 || tex.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", tex.Width(), tex.Height())
	}
	got := tex.At(1, 1)
	if got[0] < 0.49 || got[0] > 0.51 || got[3] != 1 {
		t.Errorf("At(1,1) = %v, want uniform gray", got)
	}
}

func TestImageOf(t *testing.T) {
	tex, err := NewReadWriteTexture2D[Texel](2, 1)
	if err != nil {
		t.Fatal(err)
	}
	tex.Set(0, 0, Texel{1, 0.5, -1, 1})
	tex.Set(1, 0, Texel{2, 0, 0, 0})

	img := ImageOf(tex)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("NRGBAAt(0,0) = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.R != 255 || got.A != 0 {
		t.Errorf("NRGBAAt(1,0) = %v, want clamped red with zero alpha", got)
	}
}
