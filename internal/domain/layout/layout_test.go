package layout_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-6

func employees(hours ...float64) []model.AggregatedEmployee {
	out := make([]model.AggregatedEmployee, len(hours))
	for i, h := range hours {
		name := string(rune('A' + i))
		out[i] = model.AggregatedEmployee{EmployeeID: name, EmployeeName: name, TotalHours: h}
	}
	return out
}

func TestLayout(t *testing.T) {
	Convey("Given Alice with 11 hours and Bob with 4", t, func() {
		in := []model.AggregatedEmployee{
			{EmployeeID: "Alice", EmployeeName: "Alice", TotalHours: 11},
			{EmployeeID: "Bob", EmployeeName: "Bob", TotalHours: 4},
		}

		Convey("When laying out the pie", func() {
			slices, err := layout.Layout(in)

			Convey("Then Alice spans 264 degrees from 0 and Bob 96 from 264", func() {
				So(err, ShouldBeNil)
				So(slices, ShouldHaveLength, 2)
				So(slices[0].Label, ShouldEqual, "Alice")
				So(slices[0].StartAngleDeg, ShouldAlmostEqual, 0, tolerance)
				So(slices[0].SweepAngleDeg, ShouldAlmostEqual, 264, tolerance)
				So(slices[0].MidAngleDeg, ShouldAlmostEqual, 132, tolerance)
				So(slices[1].Label, ShouldEqual, "Bob")
				So(slices[1].StartAngleDeg, ShouldAlmostEqual, 264, tolerance)
				So(slices[1].SweepAngleDeg, ShouldAlmostEqual, 96, tolerance)
				So(slices[1].MidAngleDeg, ShouldAlmostEqual, 312, tolerance)
			})
		})
	})

	Convey("Given a single employee", t, func() {
		slices, err := layout.Layout(employees(3.25))

		Convey("Then the slice covers the full circle", func() {
			So(err, ShouldBeNil)
			So(slices, ShouldHaveLength, 1)
			So(slices[0].StartAngleDeg, ShouldEqual, 0.0)
			So(slices[0].SweepAngleDeg, ShouldAlmostEqual, 360, tolerance)
		})
	})

	Convey("Given two employees with equal hours", t, func() {
		slices, err := layout.Layout(employees(5, 5))

		Convey("Then each slice is a half circle", func() {
			So(err, ShouldBeNil)
			So(slices[0].SweepAngleDeg, ShouldAlmostEqual, 180, tolerance)
			So(slices[1].SweepAngleDeg, ShouldAlmostEqual, 180, tolerance)
			So(slices[1].StartAngleDeg, ShouldAlmostEqual, 180, tolerance)
		})
	})

	Convey("Given random positive hours", t, func() {
		rng := rand.New(rand.NewSource(11))
		hours := make([]float64, 37)
		var sum float64
		for i := range hours {
			hours[i] = rng.Float64() * 40
			sum += hours[i]
		}
		in := employees(hours...)
		slices, err := layout.Layout(in)
		So(err, ShouldBeNil)

		Convey("Then sweeps sum to 360 and are proportional and contiguous", func() {
			var total float64
			for i, s := range slices {
				total += s.SweepAngleDeg
				So(s.Label, ShouldEqual, in[i].EmployeeName)
				So(s.SweepAngleDeg/360, ShouldAlmostEqual, hours[i]/sum, tolerance)
				So(s.MidAngleDeg, ShouldAlmostEqual, s.StartAngleDeg+s.SweepAngleDeg/2, tolerance)
				if i > 0 {
					So(s.StartAngleDeg, ShouldAlmostEqual, slices[i-1].EndAngleDeg(), tolerance)
				}
			}
			So(total, ShouldAlmostEqual, 360, tolerance)
		})
	})

	Convey("Given an employee with zero hours among others", t, func() {
		slices, err := layout.Layout(employees(2, 0, 2))

		Convey("Then it still gets an empty slice in order", func() {
			So(err, ShouldBeNil)
			So(slices, ShouldHaveLength, 3)
			So(slices[1].SweepAngleDeg, ShouldEqual, 0.0)
			So(slices[1].StartAngleDeg, ShouldAlmostEqual, 180, tolerance)
		})
	})

	Convey("Given nothing to chart", t, func() {
		Convey("When the input is empty", func() {
			slices, err := layout.Layout(nil)

			Convey("Then it reports ErrNoData", func() {
				So(slices, ShouldBeNil)
				So(errors.Is(err, layout.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When every employee has zero hours", func() {
			slices, err := layout.Layout(employees(0, 0))

			Convey("Then it reports ErrNoData instead of NaN angles", func() {
				So(slices, ShouldBeNil)
				So(errors.Is(err, layout.ErrNoData), ShouldBeTrue)
			})
		})

		Convey("When hours overflow to infinity", func() {
			_, err := layout.Layout(employees(math.MaxFloat64, math.MaxFloat64))
			So(errors.Is(err, layout.ErrNoData), ShouldBeTrue)
		})
	})

	Convey("Given an employee with negative hours", t, func() {
		_, err := layout.Layout(employees(8, -1))

		Convey("Then it reports ErrNegativeHours", func() {
			So(errors.Is(err, layout.ErrNegativeHours), ShouldBeTrue)
		})
	})

	Convey("Given a custom color policy", t, func() {
		var calls [][2]int
		policy := func(index, total int) model.RGB {
			calls = append(calls, [2]int{index, total})
			return model.RGB{R: uint8(index)}
		}
		slices, err := layout.Layout(employees(1, 2, 3), layout.WithColorPolicy(policy))

		Convey("Then it is asked once per slice with the slice count", func() {
			So(err, ShouldBeNil)
			So(calls, ShouldResemble, [][2]int{{0, 3}, {1, 3}, {2, 3}})
			So(slices[2].Color, ShouldResemble, model.RGB{R: 2})
		})
	})
}

func TestLabelAnchor(t *testing.T) {
	Convey("Given a slice centered at 90 degrees", t, func() {
		s := model.PieSlice{StartAngleDeg: 45, SweepAngleDeg: 90, MidAngleDeg: 90}

		Convey("Then the anchor sits straight below the center", func() {
			x, y := layout.LabelAnchor(s, 400, 400, 280)
			So(x, ShouldAlmostEqual, 400, tolerance)
			So(y, ShouldAlmostEqual, 680, tolerance)
		})
	})

	Convey("Given a slice centered at 0 degrees", t, func() {
		x, y := layout.LabelAnchor(model.PieSlice{}, 10, 20, 5)
		So(x, ShouldAlmostEqual, 15, tolerance)
		So(y, ShouldAlmostEqual, 20, tolerance)
	})
}
