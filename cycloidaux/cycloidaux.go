package cycloidaux

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/soypat/cycloid"
	"github.com/soypat/cycloid/gleval"
	"github.com/soypat/cycloid/glrender"
	"github.com/soypat/geometry/ms2"
	"honnef.co/go/curve"
)

// PreviewConfig controls disk preview rendering.
type PreviewConfig struct {
	// Height of the image in pixels. Width is chosen to preserve aspect ratio.
	Height int
	// ColorConversion maps distances to colors. If nil Inigo Quilez's palette is used.
	ColorConversion func(float32) color.Color
	// BezierAccuracy, if positive, overlays the Bézier fit of the profile on
	// the preview, fitted within this accuracy.
	BezierAccuracy float64
	// HidePins omits the ring pins from the preview.
	HidePins bool
	Silent   bool
}

// ProfileSDF returns the signed distance field of the closed polyline pts.
func ProfileSDF(pts []curve.Point) (*gleval.Polygon, error) {
	verts := make([]ms2.Vec, 0, len(pts))
	for _, p := range pts {
		v := toVec(p)
		if len(verts) > 0 && verts[len(verts)-1] == v {
			continue // Collapsed by float32 conversion.
		}
		verts = append(verts, v)
	}
	return gleval.NewPolygon(verts)
}

// DiskFaceSDF returns the face of the disk: the profile with the center bore
// and roller holes removed.
func DiskFaceSDF(d *cycloid.Disk) (gleval.SDF2, error) {
	profile, err := ProfileSDF(d.Outline())
	if err != nil {
		return nil, err
	}
	var face gleval.SDF2 = profile
	f := d.Features
	if f.CenterHoleDiameter > 0 {
		bore, err := gleval.NewCircle(float32(f.CenterHoleDiameter / 2))
		if err != nil {
			return nil, err
		}
		face, err = gleval.NewDifference(face, bore)
		if err != nil {
			return nil, err
		}
	}
	if f.RollerHoles > 0 {
		hole, err := gleval.NewCircle(float32(f.RollerHoleDiameter / 2))
		if err != nil {
			return nil, err
		}
		holes, err := gleval.NewTranslateMulti(hole, toVecs(f.RollerHoleCenters()))
		if err != nil {
			return nil, err
		}
		face, err = gleval.NewDifference(face, holes)
		if err != nil {
			return nil, err
		}
	}
	return face, nil
}

// PinsSDF returns the ring pins of p placed in the disk frame, see [cycloid.PinCenters].
func PinsSDF(p cycloid.GearParameters) (gleval.SDF2, error) {
	centers, err := cycloid.PinCenters(p)
	if err != nil {
		return nil, err
	}
	pin, err := gleval.NewCircle(float32(p.PinDiameter / 2))
	if err != nil {
		return nil, err
	}
	return gleval.NewTranslateMulti(pin, toVecs(centers))
}

// Clearance evaluates the profile's signed distance at every ring pin center.
// A correctly contracted profile has each pin center a pin radius outside of it.
// Only meaningful when NumPins-NumLobes is 1, otherwise the pins are not all
// in contact at the reference position and an error is returned.
func Clearance(d *cycloid.Disk) ([]float32, error) {
	if d.Params.NumPins-d.Params.NumLobes != 1 {
		return nil, fmt.Errorf("%w: clearance requires one more pin than lobes, got %d pins and %d lobes",
			cycloid.ErrInvalidParameter, d.Params.NumPins, d.Params.NumLobes)
	}
	profile, err := ProfileSDF(d.Outline())
	if err != nil {
		return nil, err
	}
	centers, err := cycloid.PinCenters(d.Params)
	if err != nil {
		return nil, err
	}
	dist := make([]float32, len(centers))
	err = profile.Evaluate(toVecs(centers), dist, nil)
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// RenderPNGFile renders a preview of the disk face and saves it to a PNG file with said filename.
func RenderPNGFile(filename string, d *cycloid.Disk, cfg PreviewConfig) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	err = RenderPNG(fp, d, cfg)
	if err != nil {
		return err
	}
	return fp.Close()
}

// RenderPNG renders a preview of the disk face and writes it to w in PNG format.
func RenderPNG(w io.Writer, d *cycloid.Disk, cfg PreviewConfig) error {
	log := func(args ...any) {
		if !cfg.Silent {
			fmt.Println(args...)
		}
	}
	watch := stopwatch()
	img, err := RenderImage(d, cfg)
	if err != nil {
		return err
	}
	log("rendered", img.Bounds().Dx(), "x", img.Bounds().Dy(), "preview in", watch())
	watch = stopwatch()
	err = png.Encode(w, img)
	if err != nil {
		return err
	}
	filename := "PNG"
	if fp, ok := w.(*os.File); ok {
		filename = fp.Name()
	}
	log("wrote", filename, "in", watch())
	return nil
}

// RenderImage renders a preview of the disk face, the ring pins and optionally
// the Bézier profile overlay.
func RenderImage(d *cycloid.Disk, cfg PreviewConfig) (*image.RGBA, error) {
	if cfg.Height <= 0 {
		return nil, errors.New("preview height must be positive")
	}
	face, err := DiskFaceSDF(d)
	if err != nil {
		return nil, err
	}
	scene := face
	if !cfg.HidePins {
		pins, err := PinsSDF(d.Params)
		if err != nil {
			return nil, err
		}
		scene, err = gleval.NewUnion(face, pins)
		if err != nil {
			return nil, err
		}
	}
	sdf, err := gleval.NewCPUSDF2(scene)
	if err != nil {
		return nil, err
	}
	bb := sdf.Bounds()
	margin := 0.05 * ms2.Norm(bb.Size())
	bb.Min = ms2.Sub(bb.Min, ms2.Vec{X: margin, Y: margin})
	bb.Max = ms2.Add(bb.Max, ms2.Vec{X: margin, Y: margin})
	sz := bb.Size()
	width := max(1, int(float32(cfg.Height)*sz.X/sz.Y))
	conv := cfg.ColorConversion
	if conv == nil {
		conv = glrender.ColorConversionInigoQuilez(ms2.Norm(sz) / 3)
	}
	renderer, err := glrender.NewImageRendererSDF2(max(4096, cfg.Height), conv)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, cfg.Height))
	err = renderer.RenderBox(sdf, bb, img, nil)
	if err != nil {
		return nil, err
	}
	if cfg.BezierAccuracy > 0 {
		path, err := cycloid.BezierProfile(d.Params, cfg.BezierAccuracy)
		if err != nil {
			return nil, err
		}
		pr, err := glrender.NewPathRasterizer(bb)
		if err != nil {
			return nil, err
		}
		err = pr.Fill(img, path, image.NewUniform(color.NRGBA{B: 255, A: 80}))
		if err != nil {
			return nil, err
		}
	}
	return img, nil
}

func toVec(p curve.Point) ms2.Vec {
	return ms2.Vec{X: float32(p.X), Y: float32(p.Y)}
}

func toVecs(pts []curve.Point) []ms2.Vec {
	v := make([]ms2.Vec, len(pts))
	for i, p := range pts {
		v[i] = toVec(p)
	}
	return v
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
