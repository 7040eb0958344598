package projection

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/golang/geo/s1"
)

// Names of the projections available through Lookup.
const (
	NameEquirectangular = "equirectangular"
	NameMercator        = "mercator"
	NameOrthographic    = "orthographic"
)

// maxMercatorLatitude is the latitude at which web mercator maps become square (about 85.0511 degrees).
var maxMercatorLatitude = math.Atan(math.Sinh(math.Pi))

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return (s1.Angle(degrees) * s1.Degree).Radians()
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return s1.Angle(radians).Degrees()
}

// Equirectangular maps longitude and latitude straight onto x and y.
func Equirectangular() Transform {
	return Transform{
		Forward: func(lambda, phi, h float64) (float64, float64, float64) {
			return lambda, phi, h
		},
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) {
			return x, y, z, true
		},
	}
}

// Mercator is the spherical Mercator projection, with y increasing northwards.
// Latitudes are clamped to the web mercator limit so the poles stay finite.
func Mercator() Transform {
	return Transform{
		Forward: func(lambda, phi, h float64) (float64, float64, float64) {
			phi = math.Max(-maxMercatorLatitude, math.Min(maxMercatorLatitude, phi))
			return lambda, math.Log(math.Tan(math.Pi/4 + phi/2)), h
		},
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) {
			return x, 2*math.Atan(math.Exp(y)) - math.Pi/2, z, true
		},
	}
}

// Orthographic views the unit sphere from infinitely far above (0, 0).
func Orthographic() Transform {
	return OrthographicAt(0, 0)
}

// OrthographicAt views the unit sphere from infinitely far above the given centre (radians).
// Points on the far hemisphere are not clipped; they fold back onto the visible disc.
func OrthographicAt(lambda0, phi0 float64) Transform {
	sinPhi0, cosPhi0 := math.Sincos(phi0)
	return Transform{
		Forward: func(lambda, phi, h float64) (float64, float64, float64) {
			sinPhi, cosPhi := math.Sincos(phi)
			sinL, cosL := math.Sincos(lambda - lambda0)
			x := cosPhi * sinL
			y := cosPhi0*sinPhi - sinPhi0*cosPhi*cosL
			return x, y, h
		},
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) {
			rho := math.Hypot(x, y)
			if rho > 1 {
				return x, y, z, false
			}
			if rho == 0 {
				return lambda0, phi0, z, true
			}
			sinC, cosC := math.Sincos(math.Asin(rho))
			phi := math.Asin(cosC*sinPhi0 + y*sinC*cosPhi0/rho)
			lambda := lambda0 + math.Atan2(x*sinC, rho*cosC*cosPhi0-y*sinC*sinPhi0)
			return lambda, phi, z, true
		},
	}
}

var registry = map[string]func() Transform{
	NameEquirectangular: Equirectangular,
	NameMercator:        Mercator,
	NameOrthographic:    Orthographic,
}

// Lookup returns the named projection. Names are case insensitive.
func Lookup(name string) (Transform, error) {
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Transform{}, fmt.Errorf("projection: unknown projection %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return p(), nil
}

// Names lists the projections known to Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
