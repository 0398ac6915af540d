// Package matte holds the elementwise mask and alpha-channel operations the
// harness performs on engine output. Everything heavier (inference, matting,
// mask generation) belongs to the engine.
package matte

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// ToNRGBA returns a zero-origin NRGBA copy of img.
func ToNRGBA(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// ToGray converts any image to an 8-bit grayscale mask.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) && g.Stride == g.Rect.Dx() {
		return g
	}

	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// InvertMask flips a foreground mask into a background mask (255 - v).
func InvertMask(mask *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, mask.Bounds().Dx(), mask.Bounds().Dy()))
	for i, v := range mask.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// ApplyMask writes mask values into the alpha channel of img and returns the
// result. The mask must match the image dimensions.
func ApplyMask(img image.Image, mask *image.Gray) (*image.NRGBA, error) {
	out := imaging.Clone(img)

	mw, mh := mask.Bounds().Dx(), mask.Bounds().Dy()
	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	if mw != w || mh != h {
		return nil, fmt.Errorf("mask size %dx%d does not match image size %dx%d", mw, mh, w, h)
	}

	minX, minY := mask.Bounds().Min.X, mask.Bounds().Min.Y
	for y := 0; y < h; y++ {
		row := y * out.Stride
		for x := 0; x < w; x++ {
			out.Pix[row+x*4+3] = mask.GrayAt(minX+x, minY+y).Y
		}
	}

	return out, nil
}

// ExtractAlpha returns the alpha channel of img as a grayscale mask.
func ExtractAlpha(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := y * src.Stride
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = src.Pix[row+x*4+3]
		}
	}
	return out
}

// Flatten composites img over an opaque fill, producing a fully opaque result.
func Flatten(img image.Image, fill color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// SubtractForeground makes orig transparent wherever the cutout has any
// opacity, leaving only the background pixels. Both images must share
// dimensions.
func SubtractForeground(orig, cutout image.Image) (*image.NRGBA, error) {
	base := imaging.Clone(orig)
	fg := imaging.Clone(cutout)

	if base.Bounds().Dx() != fg.Bounds().Dx() || base.Bounds().Dy() != fg.Bounds().Dy() {
		return nil, fmt.Errorf("cutout size %dx%d does not match image size %dx%d",
			fg.Bounds().Dx(), fg.Bounds().Dy(), base.Bounds().Dx(), base.Bounds().Dy())
	}

	for i := 3; i < len(base.Pix); i += 4 {
		if fg.Pix[i] > 0 {
			base.Pix[i] = 0
		}
	}

	return base, nil
}

// ClampEdge downscales img so its longest edge does not exceed maxEdge.
// Images already within the limit are returned unchanged.
func ClampEdge(img image.Image, maxEdge int) image.Image {
	if maxEdge <= 0 {
		return img
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	longest := max(w, h)
	if longest <= maxEdge {
		return img
	}

	scale := float64(maxEdge) / float64(longest)
	return resize.Resize(uint(float64(w)*scale), uint(float64(h)*scale), img, resize.Lanczos3)
}
