package cycloidaux_test

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/soypat/cycloid"
	"github.com/soypat/cycloid/cycloidaux"
	"github.com/soypat/cycloid/gleval"
	"github.com/soypat/cycloid/glrender"
	"github.com/soypat/geometry/ms2"
	"honnef.co/go/curve"
)

func TestClearance(t *testing.T) {
	p1 := cycloid.DefaultParameters()
	p2 := cycloid.DefaultParameters()
	p2.NumLobes, p2.NumPins = 10, 11
	p2.Resolution = 720
	for _, p := range []cycloid.GearParameters{p1, p2} {
		disk, err := cycloid.Generate(p)
		if err != nil {
			t.Fatal(err)
		}
		dist, err := cycloidaux.Clearance(disk)
		if err != nil {
			t.Fatal(err)
		}
		if len(dist) != p.NumPins {
			t.Fatalf("want %d clearances, got %d", p.NumPins, len(dist))
		}
		rp := float32(disk.Derived.PinRadius)
		for i, d := range dist {
			if math.Abs(float64(d-rp)) > 0.05 {
				t.Errorf("n=%d pin %d: want clearance near %g, got %g", p.NumLobes, i, rp, d)
			}
		}
	}
	p := cycloid.DefaultParameters()
	p.NumPins = 10
	disk, err := cycloid.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	_, err = cycloidaux.Clearance(disk)
	if !errors.Is(err, cycloid.ErrInvalidParameter) {
		t.Errorf("want ErrInvalidParameter for two pin difference, got %v", err)
	}
}

func TestDiskFaceSDF(t *testing.T) {
	disk, err := cycloid.Generate(cycloid.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	face, err := cycloidaux.DiskFaceSDF(disk)
	if err != nil {
		t.Fatal(err)
	}
	holes := disk.Features.RollerHoleCenters()
	// Material on the pitch circle halfway between the first two roller holes.
	mid := math.Pi / float64(disk.Features.RollerHoles)
	r := disk.Features.RollerPitchDiameter / 2
	pos := []ms2.Vec{
		{},
		{X: float32(holes[1].X), Y: float32(holes[1].Y)},
		{X: float32(r * math.Cos(mid)), Y: float32(r * math.Sin(mid))},
		{X: 40},
	}
	dist := make([]float32, len(pos))
	var vp gleval.VecPool
	err = face.Evaluate(pos, dist, &vp)
	if err != nil {
		t.Fatal(err)
	}
	if err = vp.AssertAllReleased(); err != nil {
		t.Error(err)
	}
	if dist[0] <= 0 || dist[1] <= 0 || dist[3] <= 0 {
		t.Errorf("bore, roller hole and exterior should be outside the face: %v", dist)
	}
	if dist[2] >= 0 {
		t.Errorf("material should be inside the face: %v", dist)
	}
	// Nearest boundary is the roller hole wall: chord to hole center minus hole radius.
	want := 2*r*math.Sin(mid/2) - disk.Features.RollerHoleDiameter/2
	if math.Abs(float64(dist[2])+want) > 1e-3 {
		t.Errorf("want wall distance %g, got %g", want, -dist[2])
	}
}

func TestRenderImage(t *testing.T) {
	disk, err := cycloid.Generate(cycloid.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	cfg := cycloidaux.PreviewConfig{Height: 120, Silent: true, BezierAccuracy: 0.01}
	img, err := cycloidaux.RenderImage(disk, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 120 || img.Bounds().Dx() < 100 {
		t.Errorf("unexpected image size %v", img.Bounds())
	}
	_, err = cycloidaux.RenderImage(disk, cycloidaux.PreviewConfig{})
	if err == nil {
		t.Error("expected error for zero height")
	}
}

func TestRenderPNGFile(t *testing.T) {
	disk, err := cycloid.Generate(cycloid.DefaultParameters())
	if err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "disk.png")
	err = cycloidaux.RenderPNGFile(filename, disk, cycloidaux.PreviewConfig{Height: 64, Silent: true})
	if err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	img, err := png.Decode(fp)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dy() != 64 {
		t.Errorf("want height 64, got %d", img.Bounds().Dy())
	}
}

func TestBezierMaskArea(t *testing.T) {
	// Rasterized Bézier profile area should match the polyline profile area.
	p := cycloid.DefaultParameters()
	disk, err := cycloid.Generate(p)
	if err != nil {
		t.Fatal(err)
	}
	path, err := cycloid.BezierProfile(p, 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	const size = 400
	bb := ms2.Box{Min: ms2.Vec{X: -40, Y: -40}, Max: ms2.Vec{X: 40, Y: 40}}
	pr, err := glrender.NewPathRasterizer(bb)
	if err != nil {
		t.Fatal(err)
	}
	mask, err := pr.Mask(size, size, path)
	if err != nil {
		t.Fatal(err)
	}
	var cover float64
	for _, a := range mask.Pix {
		cover += float64(a) / 255
	}
	pixArea := 80. * 80. / (size * size)
	got := cover * pixArea
	want := cycloid.SignedArea(disk.Outline())
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("rasterized area %g differs from polyline area %g", got, want)
	}
}

func TestWriteSVG(t *testing.T) {
	path, err := cycloid.BezierProfile(cycloid.DefaultParameters(), 1e-3)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = cycloidaux.WriteSVG(&buf, path, 2)
	if err != nil {
		t.Fatal(err)
	}
	svg := buf.String()
	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("malformed svg document:\n%s", svg)
	}
	if strings.Count(svg, "M") != 1 || !strings.Contains(svg, " C") {
		t.Error("expected a single subpath of cubic segments")
	}
	if !strings.Contains(svg, `fill="none"`) || !strings.Contains(svg, `stroke="black"`) {
		t.Error("expected a stroked outline without fill")
	}
	buf.Reset()
	tri := []curve.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}
	err = cycloidaux.WriteSVG(&buf, cycloid.PolylinePath(tri), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `viewBox="0.5 -2.5 2 2"`) {
		t.Errorf("unexpected viewBox in %s", buf.String())
	}
	if !strings.Contains(buf.String(), `d="M1,-1 L2,-1 L2,-2 Z"`) {
		t.Errorf("unexpected path data in %s", buf.String())
	}
	if err = cycloidaux.WriteSVG(&buf, cycloid.PolylinePath(nil), 1); err == nil {
		t.Error("expected error for empty path")
	}
	closeFirst := slices.Values([]curve.PathElement{curve.ClosePath(), curve.MoveTo(curve.Pt(1, 1))})
	if err = cycloidaux.WriteSVG(&buf, closeFirst, 1); err == nil {
		t.Error("expected error for path not starting with MoveTo")
	}
}
