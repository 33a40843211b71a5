package render_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/workhours/internal/adapters/render"
	"github.com/okian/workhours/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var (
	red  = model.RGB{R: 200, G: 30, B: 30}
	blue = model.RGB{R: 30, G: 30, B: 200}
)

func twoSlices() []model.PieSlice {
	return []model.PieSlice{
		{Label: "Alice", StartAngleDeg: 0, SweepAngleDeg: 264, MidAngleDeg: 132, Color: red},
		{Label: "Bob", StartAngleDeg: 264, SweepAngleDeg: 96, MidAngleDeg: 312, Color: blue},
	}
}

func rgbAt(img image.Image, x, y int) model.RGB {
	r, g, b, _ := img.At(x, y).RGBA()
	return model.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// polar returns the pixel at distance d from (cx, cy) along angle deg.
func polar(cx, cy, d, deg float64) (int, int) {
	rad := deg * math.Pi / 180
	return int(math.Round(cx + d*math.Cos(rad))), int(math.Round(cy + d*math.Sin(rad)))
}

func decode(buf *bytes.Buffer) image.Image {
	img, err := png.Decode(buf)
	So(err, ShouldBeNil)
	return img
}

func TestPNGRenderer_Render(t *testing.T) {
	Convey("Given a default renderer", t, func() {
		r, err := render.NewPNGRenderer()
		So(err, ShouldBeNil)
		cx, cy, radius := r.Geometry()

		Convey("Then the pie geometry matches an 800x800 canvas with a 50px inset", func() {
			So(cx, ShouldEqual, 400.0)
			So(cy, ShouldEqual, 400.0)
			So(radius, ShouldEqual, 350.0)
		})

		Convey("When rendering two slices", func() {
			var buf bytes.Buffer
			So(r.Render(&buf, twoSlices()), ShouldBeNil)
			img := decode(&buf)

			Convey("Then the canvas is 800x800 with a white background", func() {
				So(img.Bounds().Dx(), ShouldEqual, 800)
				So(img.Bounds().Dy(), ShouldEqual, 800)
				So(rgbAt(img, 5, 5), ShouldResemble, model.RGB{R: 255, G: 255, B: 255})
			})

			Convey("And each wedge is filled with its slice color", func() {
				x, y := polar(cx, cy, 150, 132)
				So(rgbAt(img, x, y), ShouldResemble, red)
				x, y = polar(cx, cy, 150, 312)
				So(rgbAt(img, x, y), ShouldResemble, blue)
				x, y = polar(cx, cy, 340, 10)
				So(rgbAt(img, x, y), ShouldResemble, red)
			})

			Convey("And the label area contains dark text pixels", func() {
				x, y := polar(cx, cy, 280, 132)
				dark := false
				for dy := -12; dy <= 12 && !dark; dy++ {
					for dx := -30; dx <= 30; dx++ {
						c := rgbAt(img, x+dx, y+dy)
						if c.R < 60 && c.G < 60 && c.B < 60 {
							dark = true
							break
						}
					}
				}
				So(dark, ShouldBeTrue)
			})
		})

		Convey("When rendering a single full-circle slice without a label", func() {
			var buf bytes.Buffer
			slices := []model.PieSlice{{SweepAngleDeg: 360, MidAngleDeg: 180, Color: blue}}
			So(r.Render(&buf, slices), ShouldBeNil)
			img := decode(&buf)

			Convey("Then the whole disc is filled", func() {
				for _, deg := range []float64{0, 90, 180, 270} {
					x, y := polar(cx, cy, 300, deg)
					So(rgbAt(img, x, y), ShouldResemble, blue)
				}
				So(rgbAt(img, 400, 400), ShouldResemble, blue)
			})
		})

		Convey("When a slice has zero sweep", func() {
			var buf bytes.Buffer
			slices := []model.PieSlice{
				{Label: "Zed", StartAngleDeg: 0, SweepAngleDeg: 0, Color: red},
				{Label: "All", StartAngleDeg: 0, SweepAngleDeg: 360, MidAngleDeg: 180, Color: blue},
			}
			So(r.Render(&buf, slices), ShouldBeNil)

			Convey("Then it is skipped without error", func() {
				img := decode(&buf)
				x, y := polar(cx, cy, 150, 90)
				So(rgbAt(img, x, y), ShouldResemble, blue)
			})
		})

		Convey("When there are no slices", func() {
			err := r.Render(&bytes.Buffer{}, nil)

			Convey("Then ErrNoSlices is returned", func() {
				So(errors.Is(err, render.ErrNoSlices), ShouldBeTrue)
			})
		})
	})

	Convey("Given a renderer with custom options", t, func() {
		r, err := render.NewPNGRenderer(
			render.WithSize(400, 300),
			render.WithMargin(10),
			render.WithBackground(color.Black),
			render.WithFontSize(12),
			render.WithLabelRadiusFraction(0.5),
			render.WithLabelColor(color.White),
		)
		So(err, ShouldBeNil)

		Convey("Then geometry follows the smaller side", func() {
			cx, cy, radius := r.Geometry()
			So(cx, ShouldEqual, 200.0)
			So(cy, ShouldEqual, 150.0)
			So(radius, ShouldEqual, 140.0)
		})

		Convey("And the background is applied", func() {
			var buf bytes.Buffer
			So(r.Render(&buf, twoSlices()), ShouldBeNil)
			img := decode(&buf)
			So(img.Bounds().Dx(), ShouldEqual, 400)
			So(rgbAt(img, 1, 1), ShouldResemble, model.RGB{})
		})
	})

	Convey("Given a margin that swallows the canvas", t, func() {
		_, err := render.NewPNGRenderer(render.WithSize(100, 100), render.WithMargin(50))

		Convey("Then ErrInvalidCanvas is returned", func() {
			So(errors.Is(err, render.ErrInvalidCanvas), ShouldBeTrue)
		})
	})
}

func TestPNGRenderer_RenderFile(t *testing.T) {
	Convey("Given a renderer and a nested output path", t, func() {
		r, err := render.NewPNGRenderer(render.WithSize(200, 200), render.WithMargin(10))
		So(err, ShouldBeNil)
		dir := t.TempDir()
		path := filepath.Join(dir, "charts", "pie-chart.png")

		Convey("When rendering to the file", func() {
			So(r.RenderFile(path, twoSlices()), ShouldBeNil)

			Convey("Then a decodable PNG exists and no temp files remain", func() {
				f, err := os.Open(path)
				So(err, ShouldBeNil)
				defer func() { _ = f.Close() }()
				cfg, err := png.DecodeConfig(f)
				So(err, ShouldBeNil)
				So(cfg.Width, ShouldEqual, 200)

				names, err := os.ReadDir(filepath.Dir(path))
				So(err, ShouldBeNil)
				So(names, ShouldHaveLength, 1)
			})
		})

		Convey("When rendering fails", func() {
			err := r.RenderFile(path, nil)

			Convey("Then nothing is left behind", func() {
				So(errors.Is(err, render.ErrNoSlices), ShouldBeTrue)
				_, statErr := os.Stat(path)
				So(os.IsNotExist(statErr), ShouldBeTrue)
				names, _ := os.ReadDir(filepath.Dir(path))
				So(names, ShouldBeEmpty)
			})
		})
	})
}
