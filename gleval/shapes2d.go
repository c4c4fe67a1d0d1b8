package gleval

import (
	"errors"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/math/ms1"
)

const largenum = 1e20

// Polygon is the SDF of a closed polygon. The polygon may be self-intersecting
// in which case the winding number decides the sign.
type Polygon struct {
	vert []ms2.Vec
}

// NewPolygon creates a polygon from a set of vertices. The closing edge from
// the last vertex to the first is implicit.
func NewPolygon(vertices []ms2.Vec) (*Polygon, error) {
	if len(vertices) == 0 {
		return nil, errors.New("polygon needs at least 3 distinct vertices")
	}
	prevIdx := len(vertices) - 1
	if vertices[0] == vertices[prevIdx] {
		vertices = vertices[:prevIdx] // Discard last vertex if equal to first (this algorithm closes automatically).
		prevIdx--
	}
	if len(vertices) < 3 {
		return nil, errors.New("polygon needs at least 3 distinct vertices")
	}
	for i := range vertices {
		if math32.IsNaN(vertices[i].X) || math32.IsNaN(vertices[i].Y) {
			return nil, errors.New("NaN value in vertices")
		}
		if vertices[i] == vertices[prevIdx] {
			return nil, errors.New("found two consecutive equal vertices in polygon")
		}
		prevIdx = i
	}
	return &Polygon{vert: vertices}, nil
}

// Bounds implements [SDF2].
func (c *Polygon) Bounds() ms2.Box {
	min := ms2.Vec{X: largenum, Y: largenum}
	max := ms2.Vec{X: -largenum, Y: -largenum}
	for _, v := range c.vert {
		min = ms2.MinElem(min, v)
		max = ms2.MaxElem(max, v)
	}
	return ms2.Box{Min: min, Max: max}
}

// Evaluate implements [SDF2].
func (c *Polygon) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	// https://www.shadertoy.com/view/wdBXRW
	verts := c.vert
	for i, p := range pos {
		d := ms2.Norm2(ms2.Sub(p, verts[0]))
		s := float32(1.0)
		jv := len(verts) - 1
		for iv, v1 := range verts {
			v2 := verts[jv]
			e := ms2.Sub(v2, v1)
			w := ms2.Sub(p, v1)
			b := ms2.Sub(w, ms2.Scale(ms1.Clamp(ms2.Dot(w, e)/ms2.Norm2(e), 0, 1), e))
			d = math32.Min(d, ms2.Norm2(b))
			// winding number from http://geomalgorithms.com/a03-_inclusion.html
			b1 := p.Y >= v1.Y
			b2 := p.Y < v2.Y
			b3 := e.X*w.Y > e.Y*w.X
			if (b1 && b2 && b3) || ((!b1) && (!b2) && (!b3)) {
				s = -s
			}
			jv = iv
		}
		dist[i] = s * math32.Sqrt(d)
	}
	return nil
}

// Circle is the SDF of a circle centered at the origin.
type Circle struct {
	r float32
}

// NewCircle returns a circle of the given radius.
func NewCircle(radius float32) (*Circle, error) {
	if !(radius > 0) || math32.IsInf(radius, 1) {
		return nil, errors.New("circle radius must be positive and finite")
	}
	return &Circle{r: radius}, nil
}

// Bounds implements [SDF2].
func (c *Circle) Bounds() ms2.Box {
	return ms2.Box{Min: ms2.Vec{X: -c.r, Y: -c.r}, Max: ms2.Vec{X: c.r, Y: c.r}}
}

// Evaluate implements [SDF2].
func (c *Circle) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	r := c.r
	for i, p := range pos {
		dist[i] = ms2.Norm(p) - r
	}
	return nil
}

// TranslateMulti places copies of an SDF at several displacements and joins them.
type TranslateMulti struct {
	s             SDF2
	displacements []ms2.Vec
}

// NewTranslateMulti returns the union of s translated by each displacement.
func NewTranslateMulti(s SDF2, displacements []ms2.Vec) (*TranslateMulti, error) {
	if s == nil {
		return nil, errors.New("nil SDF2")
	} else if len(displacements) == 0 {
		return nil, errors.New("no displacements")
	}
	return &TranslateMulti{s: s, displacements: displacements}, nil
}

// Bounds implements [SDF2].
func (c *TranslateMulti) Bounds() ms2.Box {
	bb := c.s.Bounds()
	out := ms2.Box{Min: ms2.Add(bb.Min, c.displacements[0]), Max: ms2.Add(bb.Max, c.displacements[0])}
	for _, d := range c.displacements[1:] {
		out.Min = ms2.MinElem(out.Min, ms2.Add(bb.Min, d))
		out.Max = ms2.MaxElem(out.Max, ms2.Add(bb.Max, d))
	}
	return out
}

// Evaluate implements [SDF2].
func (c *TranslateMulti) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = math.MaxFloat32
	}
	d1 := vp.Float.Acquire(len(pos))
	defer vp.Float.Release(d1)
	auxPos := vp.V2.Acquire(len(pos))
	defer vp.V2.Release(auxPos)
	for _, disp := range c.displacements {
		for i, p := range pos {
			auxPos[i] = ms2.Sub(p, disp)
		}
		err = c.s.Evaluate(auxPos, d1, userData)
		if err != nil {
			return err
		}
		minReduce(dist, d1)
	}
	return nil
}

// Union joins the shapes of several SDFs into one.
type Union struct {
	joined []SDF2
}

// NewUnion returns the union of at least two shapes.
func NewUnion(shapes ...SDF2) (*Union, error) {
	if len(shapes) < 2 {
		return nil, errors.New("need at least 2 arguments to union")
	}
	for _, s := range shapes {
		if s == nil {
			return nil, errors.New("nil SDF2 argument to union")
		}
	}
	return &Union{joined: shapes}, nil
}

// Bounds implements [SDF2].
func (u *Union) Bounds() ms2.Box {
	bb := u.joined[0].Bounds()
	for _, s := range u.joined[1:] {
		bb2 := s.Bounds()
		bb.Min = ms2.MinElem(bb.Min, bb2.Min)
		bb.Max = ms2.MaxElem(bb.Max, bb2.Max)
	}
	return bb
}

// Evaluate implements [SDF2].
func (u *Union) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	auxDist := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(auxDist)
	err = u.joined[0].Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for _, shape := range u.joined[1:] {
		err = shape.Evaluate(pos, auxDist, userData)
		if err != nil {
			return err
		}
		minReduce(dist, auxDist)
	}
	return nil
}

// Difference is the SDF of one shape with another removed from it.
type Difference struct {
	s1, s2 SDF2
}

// NewDifference returns s1 with s2 removed.
func NewDifference(s1, s2 SDF2) (*Difference, error) {
	if s1 == nil || s2 == nil {
		return nil, errors.New("nil SDF2 argument to difference")
	}
	return &Difference{s1: s1, s2: s2}, nil
}

// Bounds implements [SDF2].
func (u *Difference) Bounds() ms2.Box { return u.s1.Bounds() }

// Evaluate implements [SDF2].
func (u *Difference) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	d1 := dist
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = u.s1.Evaluate(pos, d1, userData)
	if err != nil {
		return err
	}
	err = u.s2.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] = math32.Max(d1[i], -d2[i])
	}
	return nil
}

// minReduce takes element-wise minimum of arguments and stores to first argument.
func minReduce(d1AndDst, d2 []float32) {
	for i := range d1AndDst {
		d1AndDst[i] = math32.Min(d1AndDst[i], d2[i])
	}
}
