package render

import (
	"hash/fnv"
	"image/color"
)

// Base palette. Region colors come from category metadata when set; these
// fill in for categories without one, picked stably by name hash.
var fallbackPalette = []color.RGBA{
	{0x50, 0xfa, 0x7b, 0xff}, // green
	{0x8b, 0xe9, 0xfd, 0xff}, // cyan
	{0xff, 0x79, 0xc6, 0xff}, // pink
	{0xbd, 0x93, 0xf9, 0xff}, // purple
	{0xf1, 0xfa, 0x8c, 0xff}, // yellow
	{0xff, 0xb8, 0x6c, 0xff}, // orange
	{0x62, 0x72, 0xa4, 0xff}, // slate
}

// Chrome colors shared by the tiers.
var (
	colorBackground = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	colorCardBG     = color.RGBA{0x2a, 0x2a, 0x3e, 0xff}
	colorCardBorder = color.RGBA{0x44, 0x44, 0x5c, 0xff}
	colorText       = color.RGBA{0xf8, 0xf8, 0xf2, 0xff}
	colorTextDim    = color.RGBA{0xa0, 0xa0, 0xb0, 0xff}
	colorLink       = color.RGBA{0x6b, 0x80, 0xbf, 0x60}
	colorSelection  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorRegionFill = color.RGBA{0xff, 0xff, 0xff, 0x0a}
)

// RegionColor resolves a region's display color: its metadata color when
// parseable, otherwise a stable palette pick by name.
func RegionColor(name, hex string) color.RGBA {
	if c, ok := ParseHexColor(hex); ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (color.RGBA, bool) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, false
	}
	hexVal := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	switch len(s) {
	case 4: // #rgb
		var v [3]uint8
		for i := 0; i < 3; i++ {
			n, ok := hexVal(s[i+1])
			if !ok {
				return color.RGBA{}, false
			}
			v[i] = n*16 + n
		}
		return color.RGBA{v[0], v[1], v[2], 0xff}, true
	case 7: // #rrggbb
		var v [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hexVal(s[2*i+1])
			lo, ok2 := hexVal(s[2*i+2])
			if !ok1 || !ok2 {
				return color.RGBA{}, false
			}
			v[i] = hi*16 + lo
		}
		return color.RGBA{v[0], v[1], v[2], 0xff}, true
	}
	return color.RGBA{}, false
}

// withAlpha scales a color's alpha by t in [0, 1].
func withAlpha(c color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	c.A = uint8(float64(c.A) * t)
	return c
}
