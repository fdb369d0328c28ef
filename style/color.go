package style

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned for colour strings ParseColor does not understand.
var ErrBadColor = errors.New("unrecognised colour")

// Color is packed RGBA, 0xRRGGBBAA.
type Color uint32

// RGBA packs four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// Hex formats as #RRGGBB, or #RRGGBBAA when not fully opaque.
func (c Color) Hex() string {
	if c.A() == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R(), c.G(), c.B(), c.A())
}

func (c Color) String() string { return c.Hex() }

// ParseColor accepts #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b), rgba(r,g,b,a)
// with a in [0,1], and hsl(h,s%,l%).
func ParseColor(spec string) (Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGB(s[4:len(s)-1], false)
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		return parseHSL(s[4 : len(s)-1])
	}
	return 0, fmt.Errorf("%w: %q", ErrBadColor, spec)
}

func parseHex(s string) (Color, error) {
	alpha := uint8(0xFF)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	r, g, b := c.RGB255()
	return RGBA(r, g, b, alpha), nil
}

func parseRGB(body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return 0, fmt.Errorf("%w: rgb(%s)", ErrBadColor, body)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("%w: rgb(%s)", ErrBadColor, body)
		}
		ch[i] = uint8(n)
	}
	alpha := uint8(0xFF)
	if withAlpha {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return 0, fmt.Errorf("%w: rgba(%s)", ErrBadColor, body)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return RGBA(ch[0], ch[1], ch[2], alpha), nil
}

func parseHSL(body string) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: hsl(%s)", ErrBadColor, body)
	}
	var f [3]float64
	for i, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "%")
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: hsl(%s)", ErrBadColor, body)
		}
		f[i] = v
	}
	c := colorful.Hsl(f[0], f[1]/100, f[2]/100).Clamped()
	r, g, b := c.RGB255()
	return RGBA(r, g, b, 0xFF), nil
}
