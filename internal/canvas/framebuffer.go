package canvas

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// Framebuffer is an RGBA pixel sink in world orientation: y grows upward,
// so pixel (0, 0) lands in the bottom-left corner of the image.
type Framebuffer struct {
	img *image.RGBA
}

// NewFramebuffer returns a w x h framebuffer cleared to bg.
func NewFramebuffer(w, h int, bg color.Color) *Framebuffer {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	return &Framebuffer{img: img}
}

// Plot writes one pixel. Pixels outside the buffer are dropped.
func (f *Framebuffer) Plot(x, y int, c color.Color) {
	b := f.img.Bounds()
	row := b.Max.Y - 1 - y
	if x < b.Min.X || x >= b.Max.X || row < b.Min.Y || row >= b.Max.Y {
		return
	}
	f.img.Set(x, row, c)
}

// At returns the color at world pixel (x, y).
func (f *Framebuffer) At(x, y int) color.Color {
	return f.img.At(x, f.img.Bounds().Max.Y-1-y)
}

// Bounds returns the world pixel rectangle. Rows are flipped against
// Image but the extent is the same.
func (f *Framebuffer) Bounds() image.Rectangle { return f.img.Bounds() }

// Image returns the backing image, top row first.
func (f *Framebuffer) Image() *image.RGBA { return f.img }

// Scaled returns the image enlarged by an integer factor with
// nearest-neighbor sampling so single pixels stay crisp.
func (f *Framebuffer) Scaled(factor int) image.Image {
	if factor <= 1 {
		return f.img
	}
	b := f.img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), f.img, b, xdraw.Src, nil)
	return dst
}

// Save encodes the image, scaled by factor, in the format implied by the
// path extension (png, jpg, gif, bmp, tif).
func (f *Framebuffer) Save(path string, factor int) error {
	if err := imaging.Save(f.Scaled(factor), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WritePNG encodes the image, scaled by factor, as PNG to w.
func (f *Framebuffer) WritePNG(w io.Writer, factor int) error {
	return imaging.Encode(w, f.Scaled(factor), imaging.PNG)
}
