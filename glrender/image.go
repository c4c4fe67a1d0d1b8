package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/cycloid/gleval"
	"github.com/soypat/geometry/ms2"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRendererSDF2 converts 2D SDFs to images.
type ImageRendererSDF2 struct {
	conv func(f float32) color.Color
	pos  []ms2.Vec
	dist []float32
}

// NewImageRendererSDF2 instances a new [ImageRendererSDF2] to render images from 2D SDFs. A nil float->color conversion
// function results in a simple black-white color scheme where black is the interior of the SDF (negative distance).
func NewImageRendererSDF2(evalBufferSize int, conversion func(float32) color.Color) (*ImageRendererSDF2, error) {
	if evalBufferSize <= 64 {
		return nil, errors.New("too small evaluation buffer size")
	}
	if conversion == nil {
		conversion = func(f float32) color.Color {
			switch {
			case math32.IsNaN(f) || math32.IsInf(f, 0):
				return red
			case f > 0:
				return color.White
			default:
				return color.Black
			}
		}
	}
	ir := &ImageRendererSDF2{
		conv: conversion,
		pos:  make([]ms2.Vec, evalBufferSize),
		dist: make([]float32, evalBufferSize),
	}
	return ir, nil
}

// Render maps the SDF2's bounding box to the input Image and renders it.
// It uses userData as an argument to all [gleval.SDF2.Evaluate] calls.
func (ir *ImageRendererSDF2) Render(sdf gleval.SDF2, img setImage, userData any) error {
	return ir.RenderBox(sdf, sdf.Bounds(), img, userData)
}

// RenderBox renders the region bb of the SDF2 onto img. Positive Y points
// up in bb and down in the image so shapes are not mirrored.
func (ir *ImageRendererSDF2) RenderBox(sdf gleval.SDF2, bb ms2.Box, img setImage, userData any) error {
	imgBB := img.Bounds()
	dxi := imgBB.Dx()
	dyi := imgBB.Dy()
	if dxi == 0 || dyi == 0 {
		return errors.New("empty image")
	} else if len(ir.dist) < dyi {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image columns (%d)", len(ir.dist), dyi)
	}
	sz := bb.Size()
	if !(sz.X > 0 && sz.Y > 0) {
		return fmt.Errorf("invalid render box %+v", bb)
	}
	dx := sz.X / float32(dxi)
	dy := sz.Y / float32(dyi)
	xmin := bb.Min.X + dx/2 // Sample at pixel centers.
	ymax := bb.Max.Y - dy/2
	for i := 0; i < dxi; i++ {
		x := float32(i)*dx + xmin
		err := ir.renderColumn(sdf, i, x, ymax, dy, imgBB, img, userData)
		if err != nil {
			return err
		}
	}
	return nil
}

func (ir *ImageRendererSDF2) renderColumn(sdf gleval.SDF2, col int, x, ymax, dy float32, imgBB image.Rectangle, img setImage, userData any) error {
	dyi := imgBB.Dy()
	for j := 0; j < dyi; j++ {
		ir.pos[j] = ms2.Vec{X: x, Y: ymax - float32(j)*dy}
	}
	err := sdf.Evaluate(ir.pos[:dyi], ir.dist[:dyi], userData)
	if err != nil {
		return err
	}
	conv := ir.conv
	for j := 0; j < dyi; j++ {
		img.Set(col+imgBB.Min.X, j+imgBB.Min.Y, conv(ir.dist[j]))
	}
	return nil
}
