// Package render draws pie slices onto a PNG canvas.
package render

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/okian/workhours/internal/domain/layout"
	"github.com/okian/workhours/internal/domain/model"
)

// Default canvas configuration constants.
const (
	defaultWidth               = 800
	defaultHeight              = 800
	defaultMargin              = 50
	defaultLabelRadiusFraction = 0.8
	defaultFontSize            = 24
	fullCircleDeg              = 360.0
	angleEpsilon               = 1e-9
	filePermission             = 0o644
	dirPermission              = 0o755
)

// PNGRenderer renders slices as a filled pie with centered labels.
type PNGRenderer struct {
	width               int
	height              int
	margin              int
	labelRadiusFraction float64
	fontSize            float64
	background          color.Color
	labelColor          color.Color
	font                *truetype.Font
}

// NewPNGRenderer creates a renderer with an 800x800 white canvas by default.
func NewPNGRenderer(opts ...Option) (*PNGRenderer, error) {
	r := &PNGRenderer{
		width:               defaultWidth,
		height:              defaultHeight,
		margin:              defaultMargin,
		labelRadiusFraction: defaultLabelRadiusFraction,
		fontSize:            defaultFontSize,
		background:          color.White,
		labelColor:          color.Black,
	}
	for _, opt := range opts {
		opt(r)
	}
	if 2*r.margin >= r.width || 2*r.margin >= r.height {
		return nil, fmt.Errorf("%w: margin %d leaves no room on a %dx%d canvas", ErrInvalidCanvas, r.margin, r.width, r.height)
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFont, err)
	}
	r.font = f
	return r, nil
}

// Geometry returns the pie center and radius on the canvas.
func (r *PNGRenderer) Geometry() (cx, cy, radius float64) {
	w := float64(r.width - 2*r.margin)
	h := float64(r.height - 2*r.margin)
	radius = min(w, h) / 2
	return float64(r.width) / 2, float64(r.height) / 2, radius
}

func (r *PNGRenderer) face() font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: r.fontSize})
}

// Render draws slices and writes the PNG encoding to w.
func (r *PNGRenderer) Render(w io.Writer, slices []model.PieSlice) error {
	if len(slices) == 0 {
		return ErrNoSlices
	}
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(r.background)
	dc.Clear()

	cx, cy, radius := r.Geometry()
	for _, s := range slices {
		if s.SweepAngleDeg <= angleEpsilon {
			continue
		}
		dc.SetRGB255(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		if s.SweepAngleDeg >= fullCircleDeg-angleEpsilon {
			dc.DrawCircle(cx, cy, radius)
		} else {
			dc.MoveTo(cx, cy)
			dc.DrawArc(cx, cy, radius, gg.Radians(s.StartAngleDeg), gg.Radians(s.EndAngleDeg()))
			dc.ClosePath()
		}
		dc.Fill()
	}

	// Labels go on top so a later wedge never hides an earlier label.
	dc.SetFontFace(r.face())
	dc.SetColor(r.labelColor)
	for _, s := range slices {
		if s.Label == "" {
			continue
		}
		x, y := layout.LabelAnchor(s, cx, cy, radius*r.labelRadiusFraction)
		dc.DrawStringAnchored(s.Label, x, y, 0.5, 0.5)
	}

	bw := bufio.NewWriter(w)
	if err := dc.EncodePNG(bw); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// RenderFile renders slices to path. The file is written next to its final
// location and renamed into place, so an existing chart is never left half-written.
func (r *PNGRenderer) RenderFile(path string, slices []model.PieSlice) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmp, err := os.CreateTemp(dir, ".workhours-*.png")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := r.Render(tmp, slices); err != nil {
		return err
	}
	if err := tmp.Chmod(filePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
