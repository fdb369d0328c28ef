package style

import (
	"math"
	"strconv"
	"strings"
)

// SpacingUnit is the pixel size of one step on the utility spacing scale
// ("p-4" is 16px).
const SpacingUnit float32 = 4

// NormalizeKey lower-cases key and drops everything that is not an ASCII
// letter, so "background-color", "backgroundColor" and "BACKGROUND_COLOR"
// all resolve to "backgroundcolor".
func NormalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + ('a' - 'A'))
		}
	}
	return b.String()
}

// Classes is the result of parsing a utility class string.
// nil fields were not mentioned by any class.
type Classes struct {
	Vertical *bool
	Gap      *float32

	PaddingTop    *float32
	PaddingRight  *float32
	PaddingBottom *float32
	PaddingLeft   *float32

	Flex   *float32
	Width  *float32
	Height *float32

	Background *Color
	Hidden     *bool
}

// IsZero reports whether no class was recognised.
func (c Classes) IsZero() bool {
	return c == Classes{}
}

// ParseClasses parses a whitespace separated list of utility classes.
// Later classes override earlier ones; unknown classes are ignored.
//
//	"flex-row gap-5 p-[20px] bg-[#1F2937] flex-1"
func ParseClasses(classStr string) Classes {
	var out Classes
	for _, class := range strings.Fields(classStr) {
		parseClass(class, &out)
	}
	return out
}

func parseClass(class string, out *Classes) {
	switch class {
	case "flex-row":
		out.Vertical = ptr(false)
		return
	case "flex-col":
		out.Vertical = ptr(true)
		return
	case "hidden":
		out.Hidden = ptr(true)
		return
	case "visible":
		out.Hidden = ptr(false)
		return
	}

	prop, value, ok := splitUtility(class)
	if !ok {
		return
	}

	if prop == "bg" {
		if c, err := ParseColor(strings.Trim(value, "[]")); err == nil {
			out.Background = &c
		}
		return
	}

	n, ok := parseAmount(prop, value)
	if !ok {
		return
	}
	switch prop {
	case "gap":
		out.Gap = &n
	case "p":
		out.PaddingTop, out.PaddingRight, out.PaddingBottom, out.PaddingLeft = ptr(n), ptr(n), ptr(n), ptr(n)
	case "px":
		out.PaddingLeft, out.PaddingRight = ptr(n), ptr(n)
	case "py":
		out.PaddingTop, out.PaddingBottom = ptr(n), ptr(n)
	case "pt":
		out.PaddingTop = &n
	case "pr":
		out.PaddingRight = &n
	case "pb":
		out.PaddingBottom = &n
	case "pl":
		out.PaddingLeft = &n
	case "flex":
		out.Flex = &n
	case "w":
		out.Width = &n
	case "h":
		out.Height = &n
	}
}

// splitUtility splits "p-4" into ("p", "4") and "bg-[#fff]" into ("bg", "[#fff]").
func splitUtility(class string) (prop, value string, ok bool) {
	if i := strings.Index(class, "-["); i > 0 && strings.HasSuffix(class, "]") {
		return class[:i], class[i+1:], true
	}
	i := strings.LastIndexByte(class, '-')
	if i <= 0 || i == len(class)-1 {
		return "", "", false
	}
	return class[:i], class[i+1:], true
}

// parseAmount resolves a utility value. Bracketed values are literal
// dimensions; bare numbers are spacing-scale steps, except for flex which is
// a plain weight.
func parseAmount(prop, value string) (float32, bool) {
	if strings.HasPrefix(value, "[") {
		d, ok := parseDimension(strings.Trim(value, "[]"))
		return d, ok && usable(float64(d))
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, false
	}
	n := float32(f)
	if prop != "flex" {
		n *= SpacingUnit
	}
	return n, usable(float64(n))
}

// parseDimension parses "12", "12px", "1.5rem" or "2em" into pixels.
func parseDimension(value string) (float32, bool) {
	value = strings.TrimSpace(value)
	multiplier := float32(1)
	switch {
	case strings.HasSuffix(value, "px"):
		value = strings.TrimSuffix(value, "px")
	case strings.HasSuffix(value, "rem"):
		value = strings.TrimSuffix(value, "rem")
		multiplier = 16
	case strings.HasSuffix(value, "em"):
		value = strings.TrimSuffix(value, "em")
		multiplier = 16
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, false
	}
	return float32(f) * multiplier, true
}

// usable rejects negative, NaN and infinite amounts.
func usable(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func ptr[T any](v T) *T { return &v }
