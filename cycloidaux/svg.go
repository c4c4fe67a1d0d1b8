package cycloidaux

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"

	"honnef.co/go/curve"
)

// WriteSVG writes path as a stroked SVG outline with a viewBox fitted to the
// path plus margin on every side. Coordinates are in millimeters with Y flipped
// so the outline is not mirrored in SVG's downward Y convention.
func WriteSVG(w io.Writer, path iter.Seq[curve.PathElement], margin float64) error {
	if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return fmt.Errorf("invalid margin %g", margin)
	}
	elems := slices.Collect(path)
	if len(elems) < 2 {
		return errors.New("empty path")
	}
	if elems[0].Kind != curve.MoveToKind {
		return errors.New("path must start with MoveTo")
	}
	for _, el := range elems {
		switch el.Kind {
		case curve.MoveToKind, curve.LineToKind, curve.QuadToKind, curve.CubicToKind, curve.ClosePathKind:
		default:
			return fmt.Errorf("unknown path element kind %v", el.Kind)
		}
	}
	flipped := curve.Transform(slices.Values(elems), curve.FlipY)
	bb := curve.SegmentsBoundingBox(curve.Segments(flipped))
	if bb.Width() == 0 && bb.Height() == 0 {
		return errors.New("path has no extent")
	}
	bb = bb.Inflate(margin, margin)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%gmm" height="%gmm" viewBox="%g %g %g %g">`+"\n",
		bb.Width(), bb.Height(), bb.X0, bb.Y0, bb.Width(), bb.Height())
	bw.WriteString(`<path fill="none" stroke="black" stroke-width="0.1" d="`)
	err := curve.WriteSVG(bw, flipped, curve.SVGOptions{})
	if err != nil {
		return err
	}
	bw.WriteString("\"/>\n</svg>\n")
	return bw.Flush()
}
