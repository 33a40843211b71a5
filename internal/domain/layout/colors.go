package layout

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/okian/workhours/internal/domain/model"
)

// ColorPolicy picks the color of slice index out of total slices.
type ColorPolicy func(index, total int) model.RGB

// DefaultPalette is a ten-color categorical palette.
var DefaultPalette = []model.RGB{ //nolint:gochecknoglobals // read-only palette
	{R: 0x1f, G: 0x77, B: 0xb4},
	{R: 0xff, G: 0x7f, B: 0x0e},
	{R: 0x2c, G: 0xa0, B: 0x2c},
	{R: 0xd6, G: 0x27, B: 0x28},
	{R: 0x94, G: 0x67, B: 0xbd},
	{R: 0x8c, G: 0x56, B: 0x4b},
	{R: 0xe3, G: 0x77, B: 0xc2},
	{R: 0x7f, G: 0x7f, B: 0x7f},
	{R: 0xbc, G: 0xbd, B: 0x22},
	{R: 0x17, G: 0xbe, B: 0xcf},
}

// PaletteColors cycles through palette by slice index. With no palette it uses DefaultPalette.
func PaletteColors(palette ...model.RGB) ColorPolicy {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	p := append([]model.RGB(nil), palette...)
	return func(index, total int) model.RGB {
		c := p[index%len(p)]
		// Avoid the last slice touching the first one with the same color.
		// p[1] differs from both neighbours only with three or more colors.
		if total > 1 && index == total-1 && index%len(p) == 0 && len(p) > 2 {
			c = p[1]
		}
		return c
	}
}

// SeededRandomColors returns uniformly random colors that depend only on seed and index.
func SeededRandomColors(seed int64) ColorPolicy {
	return func(index, _ int) model.RGB {
		rng := rand.New(rand.NewSource(seed + int64(index))) //nolint:gosec // colors, not secrets
		return randomRGB(rng.Intn)
	}
}

// RandomColors returns a fresh random color on every call. Output differs between runs.
func RandomColors() ColorPolicy {
	return func(_, _ int) model.RGB {
		return randomRGB(rand.Intn) //nolint:gosec // colors, not secrets
	}
}

func randomRGB(intn func(int) int) model.RGB {
	return model.RGB{R: uint8(intn(256)), G: uint8(intn(256)), B: uint8(intn(256))}
}

// Color policy names accepted by ParseColorPolicy.
const (
	ColorPolicyPalette = "palette"
	ColorPolicySeeded  = "seeded"
	ColorPolicyRandom  = "random"
)

// ParseColorPolicy maps a configured policy name to a ColorPolicy. Empty means palette.
func ParseColorPolicy(name string, seed int64) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ColorPolicyPalette:
		return PaletteColors(), nil
	case ColorPolicySeeded:
		return SeededRandomColors(seed), nil
	case ColorPolicyRandom:
		return RandomColors(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColorPolicy, name)
	}
}
