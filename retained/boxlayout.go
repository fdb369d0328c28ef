package retained

import (
	"fmt"
	"strings"
)

// Orientation is the main axis of a box layout.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation parses "horizontal"/"row" or "vertical"/"column".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "row":
		return Horizontal, nil
	case "vertical", "column", "col":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: unknown orientation %q", ErrInvalidConfig, s)
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// BoxLayout places a container's visible children one after another along
// one axis.
//
// Children with a flex weight share whatever main-axis length the fixed
// children leave over; everyone else gets their preferred length verbatim.
// Overflow is left as is. On the cross axis children fill the container
// minus insets unless they declare their own cross size.
type BoxLayout struct {
	Orientation Orientation
	Spacing     float32
	Insets      Insets

	// MinimumCrossAxisSize is a floor for the cross-axis fill length.
	MinimumCrossAxisSize float32
}

// NewBoxLayout returns a layout with no spacing or insets.
func NewBoxLayout(o Orientation) BoxLayout {
	return BoxLayout{Orientation: o}
}

// Validate rejects negative or non-finite spacing, insets or minimum cross
// size.
func (l BoxLayout) Validate() error {
	if !extent(l.Spacing) {
		return fmt.Errorf("%w: spacing %g", ErrInvalidConfig, l.Spacing)
	}
	if !l.Insets.valid() {
		return fmt.Errorf("%w: insets %+v", ErrInvalidConfig, l.Insets)
	}
	if !extent(l.MinimumCrossAxisSize) {
		return fmt.Errorf("%w: minimum cross axis size %g", ErrInvalidConfig, l.MinimumCrossAxisSize)
	}
	if l.Orientation != Horizontal && l.Orientation != Vertical {
		return fmt.Errorf("%w: orientation %d", ErrInvalidConfig, l.Orientation)
	}
	return nil
}

// axes maps the layout onto (main, cross) terms.
type axes struct {
	horizontal bool
}

func (a axes) main(s Size) float32 {
	if a.horizontal {
		return s.Width
	}
	return s.Height
}

func (a axes) cross(s Size) float32 {
	if a.horizontal {
		return s.Height
	}
	return s.Width
}

func (a axes) rect(mainPos, crossPos, mainLen, crossLen float32) Rect {
	if a.horizontal {
		return Rect{X: mainPos, Y: crossPos, Width: mainLen, Height: crossLen}
	}
	return Rect{X: crossPos, Y: mainPos, Width: crossLen, Height: mainLen}
}

// leading/trailing insets along each axis.
func (l BoxLayout) insets(a axes) (lead, trail, crossLead, crossTrail float32) {
	if a.horizontal {
		return l.Insets.Left, l.Insets.Right, l.Insets.Top, l.Insets.Bottom
	}
	return l.Insets.Top, l.Insets.Bottom, l.Insets.Left, l.Insets.Right
}

// apply lays out container's visible children.
func (l BoxLayout) apply(container *View) {
	children := acquireViewSlice(0)
	defer func() { releaseViewSlice(children) }()
	for _, c := range container.children {
		if c.visible {
			children = append(children, c)
		}
	}
	n := len(children)
	if n == 0 {
		return
	}

	a := axes{horizontal: l.Orientation == Horizontal}
	lead, trail, crossLead, crossTrail := l.insets(a)
	containerSize := container.bounds.Size()

	// Step 1: main-axis length left for children.
	available := a.main(containerSize) - lead - trail - l.Spacing*float32(n-1)

	// Step 2: fixed children take their preferred length; flexible ones
	// share the remainder by weight.
	sizes := acquireFloatSlice(n)
	defer releaseFloatSlice(sizes)
	var fixed, totalFlex float32
	for i, c := range children {
		if c.flex > 0 {
			totalFlex += c.flex
			continue
		}
		sizes[i] = a.main(c.layoutSize())
		fixed += sizes[i]
	}
	if totalFlex > 0 {
		remaining := available - fixed
		if remaining < 0 {
			remaining = 0
		}
		for i, c := range children {
			if c.flex > 0 {
				sizes[i] = remaining * c.flex / totalFlex
			}
		}
	}

	// Step 3: cross-axis fill.
	fill := a.cross(containerSize) - crossLead - crossTrail
	if fill < l.MinimumCrossAxisSize {
		fill = l.MinimumCrossAxisSize
	}
	if fill < 0 {
		fill = 0
	}

	// Step 4: sequential placement.
	pos := lead
	for i, c := range children {
		cross := fill
		if declared, ok := c.declaredSize(); ok && a.cross(declared) > 0 {
			cross = a.cross(declared)
		}
		c.applyBounds(a.rect(pos, crossLead, sizes[i], cross))
		pos += sizes[i] + l.Spacing
	}

	container.engine.log.Debug("box layout",
		"container", container.id,
		"orientation", l.Orientation,
		"children", n,
		"used", pos-l.Spacing+trail)
}
