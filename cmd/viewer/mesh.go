package main

import (
	"image"
	"image/color"
)

// cubeFaces lists each face's outward normal and two edge axes spanning it.
var cubeFaces = [6]struct {
	normal, u, v [3]float32
}{
	{normal: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
}

// buildCube returns a unit cube as 24 interleaved position/normal/texcoord vertices
// and 36 counter-clockwise indices.
//
// Returns:
//   - []float32: the interleaved vertices
//   - []uint32: the triangle indices
func buildCube() ([]float32, []uint32) {
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}
	vertices := make([]float32, 0, 24*8)
	indices := make([]uint32, 0, 36)

	for f, face := range cubeFaces {
		for _, c := range corners {
			for i := 0; i < 3; i++ {
				vertices = append(vertices, face.normal[i]*0.5+face.u[i]*c[0]+face.v[i]*c[1])
			}
			vertices = append(vertices, face.normal[0], face.normal[1], face.normal[2])
			vertices = append(vertices, c[0]+0.5, c[1]+0.5)
		}
		base := uint32(f * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return vertices, indices
}

// checker returns a size x size checkerboard of two colors in 8-pixel squares.
func checker(size int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}
