// Package projection provides the coordinate transforms that feed the resampler:
// raw map projections, the affine fit onto an output box, and composition of the two.
package projection

import "github.com/ONSdigital/dp-geo-resampler/resample"

// Func transforms a coordinate triple. For projections the input is longitude, latitude (radians) and elevation.
type Func func(x, y, z float64) (float64, float64, float64)

// InverseFunc undoes a Func, returning false where the input has no preimage.
type InverseFunc func(x, y, z float64) (float64, float64, float64, bool)

// Transform is a forward transform with an optional inverse.
type Transform struct {
	Forward Func
	Inverse InverseFunc
}

// Invertible reports whether the transform has an inverse.
func (t Transform) Invertible() bool {
	return t.Inverse != nil
}

// Compose returns the transform that applies a, then b.
// The result is invertible only if both a and b are.
func Compose(a, b Transform) Transform {
	c := Transform{
		Forward: func(x, y, z float64) (float64, float64, float64) {
			return b.Forward(a.Forward(x, y, z))
		},
	}
	if a.Invertible() && b.Invertible() {
		c.Inverse = func(x, y, z float64) (float64, float64, float64, bool) {
			x, y, z, ok := b.Inverse(x, y, z)
			if !ok {
				return x, y, z, false
			}
			return a.Inverse(x, y, z)
		}
	}
	return c
}

// Projection drops the third output coordinate, giving the form the resampler consumes.
func (t Transform) Projection() resample.Projection {
	return func(lambda, phi, h float64) (float64, float64) {
		x, y, _ := t.Forward(lambda, phi, h)
		return x, y
	}
}
