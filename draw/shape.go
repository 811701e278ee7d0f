package draw

import (
	"image"
	"image/color"
	"math"
)

// Line draws a line from a to b, both ends included. Pixels outside dst are skipped.
func Line(dst Image, a, b image.Point, c color.Color) {
	var (
		bounds = dst.Bounds()
		dx, sx = span(a.X, b.X)
		dy, sy = span(a.Y, b.Y)
		e      = dx - dy
	)
	for p := a; ; {
		if p.In(bounds) {
			dst.Set(p.X, p.Y, c)
		}
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			p.X += sx
		}
		if e2 < dx {
			e += dx
			p.Y += sy
		}
	}
}

// span returns the distance from a to b and the step direction.
func span(a, b int) (d, step int) {
	if b < a {
		return a - b, -1
	}
	return b - a, 1
}

// HorizontalLine draws w pixels to the right of (x, y), clipped to dst.
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	Box(dst, image.Rect(x, y, x+w, y+1), c)
}

// VerticalLine draws h pixels down from (x, y), clipped to dst.
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	Box(dst, image.Rect(x, y, x+1, y+h), c)
}

// Rectangle draws the outline of rect. Max is exclusive, as for image.Rectangle.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, rect.Dx(), c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, rect.Dx(), c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, rect.Dy(), c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, rect.Dy(), c)
}

// Box draws a filled rectangle, clipped to dst.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon().Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, y, c)
		}
	}
}

// RoundedBox draws a filled rectangle with corners of the given radius. The radius is
// limited to half the shorter side.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	radius = max(0, min(radius, rect.Dx()/2, rect.Dy()/2))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		inset := cornerInset(radius, y-rect.Min.Y, rect.Max.Y-1-y)
		HorizontalLine(dst, rect.Min.X+inset, y, rect.Dx()-2*inset, c)
	}
}

// cornerInset is the number of pixels left blank at either end of a row that lies top rows
// below the upper edge and bottom rows above the lower edge.
func cornerInset(radius, top, bottom int) int {
	d := radius - min(top, bottom)
	if d <= 0 {
		return 0
	}
	return radius - int(math.Sqrt(float64(radius*radius-d*d)))
}
