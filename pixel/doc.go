// Package pixel implements the packed bit-plane framebuffers and color models used by
// SSD1680 e-paper panels.
//
// The images in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so anything that can draw into a [draw.Image]
// can draw onto a panel.
package pixel
