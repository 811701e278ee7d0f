package draw

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is used when no face is given.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws s with the left end of its baseline at pt and returns the point where
// drawing stopped.
func Text(dst Image, pt image.Point, face font.Face, c color.Color, s string) image.Point {
	if face == nil {
		face = DefaultFace
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Round(), d.Dot.Y.Round())
}

// TextBounds returns the pixels touched by drawing s at pt.
func TextBounds(face font.Face, pt image.Point, s string) image.Rectangle {
	if face == nil {
		face = DefaultFace
	}
	b, _ := font.BoundString(face, s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()).Add(pt)
}

// CenteredText draws s horizontally centered in r, with the baseline placed so the
// face's ascent fits below r.Min.Y.
func CenteredText(dst Image, r image.Rectangle, face font.Face, c color.Color, s string) {
	if face == nil {
		face = DefaultFace
	}
	var (
		width  = font.MeasureString(face, s).Round()
		ascent = face.Metrics().Ascent.Ceil()
	)
	Text(dst, image.Pt(r.Min.X+(r.Dx()-width)/2, r.Min.Y+ascent), face, c, s)
}
