// Package draw has drawing primitives for the panel frame buffers.
package draw

import (
	"image"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Drawer is an alias for [image/draw.Drawer].
type Drawer = draw.Drawer

// Op is an alias for [image/draw.Op].
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over = draw.Over

	// Src specifies ``src in mask''.
	Src = draw.Src
)

// Draw aligns r.Min in dst with sp in src and composes src onto dst.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.Draw(dst, r, src, sp, op)
}

// Dither draws src onto dst using Floyd-Steinberg error diffusion against the color
// model of dst. Photos look a lot better on a two or three color panel this way than
// with plain thresholding.
func Dither(dst Image, r image.Rectangle, src image.Image, sp image.Point) {
	draw.FloydSteinberg.Draw(dst, r, src, sp)
}
