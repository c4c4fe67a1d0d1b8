package gleval

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/ms2"
)

// SDF2 implements a 2D signed distance field in vectorized form.
type SDF2 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing, such as [VecPool].
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// NewCPUSDF2 wraps s so that it may be evaluated without the caller providing a [VecPool].
// It also keeps count of the amount of evaluated positions.
func NewCPUSDF2(s SDF2) (*SDF2CPU, error) {
	if s == nil {
		return nil, errors.New("nil SDF2")
	}
	return &SDF2CPU{SDF: s}, nil
}

// SDF2CPU evaluates an [SDF2] on the CPU with its own [VecPool].
type SDF2CPU struct {
	SDF   SDF2
	vp    VecPool
	evals uint64
}

// Evaluate implements [SDF2]. If userData is not a VecPool the wrapper's own pool is used.
func (sdf *SDF2CPU) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) == 0 {
		return errEmptyBuffers
	} else if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	if _, err := GetVecPool(userData); err != nil {
		userData = &sdf.vp
	}
	err := sdf.SDF.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	sdf.evals += uint64(len(pos))
	return nil
}

// Bounds implements [SDF2].
func (sdf *SDF2CPU) Bounds() ms2.Box { return sdf.SDF.Bounds() }

// Evaluations returns the total amount of positions evaluated.
func (sdf *SDF2CPU) Evaluations() uint64 { return sdf.evals }

// VecPool returns the pool used when the caller provides none.
func (sdf *SDF2CPU) VecPool() *VecPool { return &sdf.vp }

// VecPool holds scratch buffers used by evaluators that combine several SDFs.
// Its zero value is ready to use. It is not safe for concurrent use.
type VecPool struct {
	V2    bufPool[ms2.Vec]
	Float bufPool[float32]
}

// GetVecPool extracts a [VecPool] from userData. userData may be a *VecPool
// or implement a VecPool method returning one.
func GetVecPool(userData any) (*VecPool, error) {
	switch v := userData.(type) {
	case *VecPool:
		if v != nil {
			return v, nil
		}
	case interface{ VecPool() *VecPool }:
		if vp := v.VecPool(); vp != nil {
			return vp, nil
		}
	}
	return nil, fmt.Errorf("want *gleval.VecPool userData, got %T", userData)
}

// AssertAllReleased returns an error if any buffer acquired from the pool was not released.
func (vp *VecPool) AssertAllReleased() error {
	if err := vp.V2.assertAllReleased(); err != nil {
		return fmt.Errorf("V2: %w", err)
	}
	if err := vp.Float.assertAllReleased(); err != nil {
		return fmt.Errorf("Float: %w", err)
	}
	return nil
}

type bufPool[T any] struct {
	bufs     [][]T
	acquired []bool
}

// Acquire returns a buffer of length length, reusing a released one when possible.
func (bp *bufPool[T]) Acquire(length int) []T {
	for i, inUse := range bp.acquired {
		if !inUse && cap(bp.bufs[i]) >= length {
			bp.acquired[i] = true
			bp.bufs[i] = bp.bufs[i][:length]
			return bp.bufs[i]
		}
	}
	buf := make([]T, length, max(length, 1))
	bp.bufs = append(bp.bufs, buf)
	bp.acquired = append(bp.acquired, true)
	return buf
}

// Release marks buf as free for reuse. It panics if buf was not acquired from bp.
func (bp *bufPool[T]) Release(buf []T) {
	if cap(buf) == 0 {
		panic("release of zero capacity buffer")
	}
	for i, b := range bp.bufs {
		if bp.acquired[i] && &b[:1][0] == &buf[:1][0] {
			bp.acquired[i] = false
			return
		}
	}
	panic("release of buffer not acquired from pool")
}

func (bp *bufPool[T]) assertAllReleased() error {
	for i, inUse := range bp.acquired {
		if inUse {
			return fmt.Errorf("buffer %d of length %d not released", i, len(bp.bufs[i]))
		}
	}
	return nil
}
