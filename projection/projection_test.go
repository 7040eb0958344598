package projection_test

import (
	"math"
	"testing"

	"github.com/ONSdigital/dp-geo-resampler/projection"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLookup(t *testing.T) {
	Convey("Known projections are found regardless of case", t, func() {
		for _, name := range []string{"mercator", "Equirectangular", " ORTHOGRAPHIC "} {
			p, err := projection.Lookup(name)
			So(err, ShouldBeNil)
			So(p.Forward, ShouldNotBeNil)
			So(p.Invertible(), ShouldBeTrue)
		}
	})

	Convey("Unknown projections return an error naming the known ones", t, func() {
		_, err := projection.Lookup("azimuthal")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, `"azimuthal"`)
		So(err.Error(), ShouldContainSubstring, "equirectangular, mercator, orthographic")
	})
}

func TestRoundTrips(t *testing.T) {
	Convey("Each projection inverts its own output", t, func() {
		for _, name := range projection.Names() {
			p, _ := projection.Lookup(name)
			for _, ll := range [][2]float64{{0, 0}, {10, 20}, {-45.5, 60}, {80, -30}} {
				lambda, phi := projection.Radians(ll[0]), projection.Radians(ll[1])
				x, y, z := p.Forward(lambda, phi, 7)
				l, f, h, ok := p.Inverse(x, y, z)
				So(ok, ShouldBeTrue)
				So(l, ShouldAlmostEqual, lambda)
				So(f, ShouldAlmostEqual, phi)
				So(h, ShouldEqual, 7)
			}
		}
	})

	Convey("An off-centre orthographic inverts its own output", t, func() {
		p := projection.OrthographicAt(projection.Radians(-3), projection.Radians(54))
		lambda, phi := projection.Radians(1), projection.Radians(51)
		l, f, _, ok := p.Inverse(p.Forward(lambda, phi, 0))
		So(ok, ShouldBeTrue)
		So(l, ShouldAlmostEqual, lambda)
		So(f, ShouldAlmostEqual, phi)
	})

	Convey("The orthographic inverse rejects points outside the disc", t, func() {
		_, _, _, ok := projection.Orthographic().Inverse(1.5, 0, 0)
		So(ok, ShouldBeFalse)
	})
}

func TestMercator(t *testing.T) {
	Convey("Mercator stays finite at the poles", t, func() {
		_, y, _ := projection.Mercator().Forward(0, math.Pi/2, 0)
		So(math.IsInf(y, 0), ShouldBeFalse)
		So(y, ShouldAlmostEqual, math.Pi)
	})

	Convey("Mercator is the identity on the equator", t, func() {
		x, y, _ := projection.Mercator().Forward(1, 0, 0)
		So(x, ShouldEqual, 1)
		So(y, ShouldAlmostEqual, 0)
	})
}

func TestCompose(t *testing.T) {
	double := projection.Transform{
		Forward: func(x, y, z float64) (float64, float64, float64) { return 2 * x, 2 * y, z },
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) { return x / 2, y / 2, z, true },
	}
	shift := projection.Transform{
		Forward: func(x, y, z float64) (float64, float64, float64) { return x + 1, y, z + 1 },
		Inverse: func(x, y, z float64) (float64, float64, float64, bool) { return x - 1, y, z - 1, x >= 0 },
	}

	Convey("Compose applies the first transform, then the second", t, func() {
		c := projection.Compose(double, shift)
		x, y, z := c.Forward(1, 2, 3)
		So([]float64{x, y, z}, ShouldResemble, []float64{3, 4, 4})
	})

	Convey("The inverse runs the other way", t, func() {
		c := projection.Compose(double, shift)
		So(c.Invertible(), ShouldBeTrue)
		x, y, z, ok := c.Inverse(3, 4, 4)
		So(ok, ShouldBeTrue)
		So([]float64{x, y, z}, ShouldResemble, []float64{1, 2, 3})
	})

	Convey("A failed inverse stops the chain", t, func() {
		_, _, _, ok := projection.Compose(double, shift).Inverse(-3, 0, 0)
		So(ok, ShouldBeFalse)
	})

	Convey("Composing with a one-way transform is not invertible", t, func() {
		oneWay := projection.Transform{Forward: shift.Forward}
		So(projection.Compose(double, oneWay).Invertible(), ShouldBeFalse)
		So(projection.Compose(oneWay, double).Invertible(), ShouldBeFalse)
	})

	Convey("Projection drops the third coordinate", t, func() {
		x, y := projection.Compose(double, shift).Projection()(1, 2, 3)
		So(x, ShouldEqual, 3)
		So(y, ShouldEqual, 4)
	})
}

func TestFit(t *testing.T) {
	Convey("Given bounds twice as wide as they are tall", t, func() {
		b := projection.NewBounds()
		b.Extend(-2, -1)
		b.Extend(2, 1)

		Convey("They fill the width of the box, with y flipped", func() {
			fit := projection.Fit(b, 400, 400, projection.Padding{})
			x, y, _ := fit.Forward(-2, 1, 0)
			So(x, ShouldEqual, 0)
			So(y, ShouldEqual, 0)
			x, y, _ = fit.Forward(2, -1, 0)
			So(x, ShouldEqual, 400)
			So(y, ShouldEqual, 200)
		})

		Convey("Padding offsets the result", func() {
			fit := projection.Fit(b, 420, 400, projection.Padding{Top: 5, Left: 10, Right: 10})
			x, y, _ := fit.Forward(-2, 1, 0)
			So(x, ShouldEqual, 10)
			So(y, ShouldEqual, 5)

			l, f, _, ok := fit.Inverse(410, 205, 0)
			So(ok, ShouldBeTrue)
			So(l, ShouldAlmostEqual, 2)
			So(f, ShouldAlmostEqual, -1)
		})
	})

	Convey("A single point is centred", t, func() {
		b := projection.NewBounds()
		b.Extend(3, 4)
		x, y, _ := projection.Fit(b, 400, 300, projection.Padding{}).Forward(3, 4, 0)
		So(x, ShouldEqual, 200)
		So(y, ShouldEqual, 150)
	})

	Convey("Empty bounds give the identity", t, func() {
		b := projection.NewBounds()
		So(b.Empty(), ShouldBeTrue)
		x, y, _ := projection.Fit(b, 400, 300, projection.Padding{}).Forward(3, 4, 0)
		So(x, ShouldEqual, 3)
		So(y, ShouldEqual, 4)
	})

	Convey("Non-finite points do not extend bounds", t, func() {
		b := projection.NewBounds()
		b.Extend(math.Inf(1), 0)
		b.Extend(0, math.NaN())
		So(b.Empty(), ShouldBeTrue)
	})
}
