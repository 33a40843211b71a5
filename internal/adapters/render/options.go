package render

import "image/color"

// Option applies a configuration option to the PNGRenderer.
type Option func(*PNGRenderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(r *PNGRenderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// WithMargin sets the gap between the canvas edge and the pie.
func WithMargin(margin int) Option {
	return func(r *PNGRenderer) {
		if margin >= 0 {
			r.margin = margin
		}
	}
}

// WithLabelRadiusFraction places labels at fraction*radius from the center.
func WithLabelRadiusFraction(fraction float64) Option {
	return func(r *PNGRenderer) {
		if fraction > 0 {
			r.labelRadiusFraction = fraction
		}
	}
}

// WithFontSize sets the label font size in points.
func WithFontSize(size float64) Option {
	return func(r *PNGRenderer) {
		if size > 0 {
			r.fontSize = size
		}
	}
}

// WithBackground sets the canvas fill color.
func WithBackground(c color.Color) Option {
	return func(r *PNGRenderer) {
		if c != nil {
			r.background = c
		}
	}
}

// WithLabelColor sets the label text color.
func WithLabelColor(c color.Color) Option {
	return func(r *PNGRenderer) {
		if c != nil {
			r.labelColor = c
		}
	}
}
