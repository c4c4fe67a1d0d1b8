package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"iter"

	"github.com/soypat/geometry/ms2"
	"golang.org/x/image/vector"
	"honnef.co/go/curve"
)

// PathRasterizer fills Bézier paths into images with anti-aliasing.
// World coordinates inside Box map onto the destination image bounds with
// positive Y pointing up.
type PathRasterizer struct {
	Box ms2.Box
	z   vector.Rasterizer
}

// NewPathRasterizer returns a rasterizer that maps the world region bb to images.
func NewPathRasterizer(bb ms2.Box) (*PathRasterizer, error) {
	sz := bb.Size()
	if !(sz.X > 0 && sz.Y > 0) {
		return nil, fmt.Errorf("invalid rasterizer box %+v", bb)
	}
	return &PathRasterizer{Box: bb}, nil
}

// Fill draws src through the mask of the closed path onto dst. Open subpaths are closed implicitly.
func (pr *PathRasterizer) Fill(dst draw.Image, path iter.Seq[curve.PathElement], src image.Image) error {
	r := dst.Bounds()
	if r.Empty() {
		return errors.New("empty image")
	}
	pr.z.Reset(r.Dx(), r.Dy())
	sx := float64(r.Dx()) / float64(pr.Box.Max.X-pr.Box.Min.X)
	sy := float64(r.Dy()) / float64(pr.Box.Max.Y-pr.Box.Min.Y)
	minx, maxy := float64(pr.Box.Min.X), float64(pr.Box.Max.Y)
	px := func(p curve.Point) (float32, float32) {
		return float32((p.X - minx) * sx), float32((maxy - p.Y) * sy)
	}
	open := false
	for el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			if open {
				pr.z.ClosePath()
			}
			pr.z.MoveTo(px(el.P0))
			open = true
		case curve.LineToKind:
			pr.z.LineTo(px(el.P0))
		case curve.QuadToKind:
			bx, by := px(el.P0)
			cx, cy := px(el.P1)
			pr.z.QuadTo(bx, by, cx, cy)
		case curve.CubicToKind:
			bx, by := px(el.P0)
			cx, cy := px(el.P1)
			dx, dy := px(el.P2)
			pr.z.CubeTo(bx, by, cx, cy, dx, dy)
		case curve.ClosePathKind:
			pr.z.ClosePath()
			open = false
		default:
			return fmt.Errorf("unknown path element kind %v", el.Kind)
		}
	}
	if open {
		pr.z.ClosePath()
	}
	pr.z.Draw(dst, r, src, image.Point{})
	return nil
}

// Mask rasterizes the path into a new alpha mask of the given size.
func (pr *PathRasterizer) Mask(width, height int, path iter.Seq[curve.PathElement]) (*image.Alpha, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("mask dimensions must be positive")
	}
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	err := pr.Fill(mask, path, image.Opaque)
	if err != nil {
		return nil, err
	}
	return mask, nil
}
