package retained

import (
	"fmt"
	"strings"
)

// ScrollBarMode is the visibility policy for one scroll bar.
type ScrollBarMode int

const (
	// ScrollBarEnabled always shows the bar and reserves its space.
	ScrollBarEnabled ScrollBarMode = iota
	// ScrollBarDisabled never shows the bar, even when content overflows.
	ScrollBarDisabled
	// ScrollBarAutomatic shows the bar exactly when content overflows the
	// scroll view on that axis.
	ScrollBarAutomatic
)

func (m ScrollBarMode) String() string {
	switch m {
	case ScrollBarDisabled:
		return "disabled"
	case ScrollBarAutomatic:
		return "automatic"
	default:
		return "enabled"
	}
}

// ParseScrollBarMode parses "enabled", "disabled" or "automatic".
func ParseScrollBarMode(s string) (ScrollBarMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled", "always":
		return ScrollBarEnabled, nil
	case "disabled", "never":
		return ScrollBarDisabled, nil
	case "automatic", "auto":
		return ScrollBarAutomatic, nil
	}
	return 0, fmt.Errorf("%w: unknown scroll bar mode %q", ErrInvalidConfig, s)
}

func (m ScrollBarMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *ScrollBarMode) UnmarshalText(b []byte) error {
	v, err := ParseScrollBarMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type scrollState struct {
	content *View
	offset  Point

	hMode, vMode       ScrollBarMode
	hVisible, vVisible bool
	viewport           Size

	// ClipHeightTo range; -1 when unset.
	clipMin, clipMax float32
}

// ScrollView shows a viewport onto a single, usually larger, content view.
// The content keeps whatever size its own layout gives it.
type ScrollView struct {
	*View
}

// ContentView returns the content view, or nil.
func (s *ScrollView) ContentView() *View {
	return s.scroll.content
}

// SetContentView replaces the content. The previous content is detached but
// stays alive. The offset resets to (0,0). Passing the current content is a
// no-op; nil clears the content.
func (s *ScrollView) SetContentView(content Node) error {
	if s.released {
		return nil
	}
	var c *View
	if content != nil {
		c = content.Base()
	}
	st := s.scroll
	if c == st.content || (c != nil && c.released) {
		return nil
	}
	if c != nil {
		if err := s.checkAdoptable(c); err != nil {
			return err
		}
		if old := c.parent; old != nil {
			old.detach(c)
		}
	}

	if old := st.content; old != nil {
		s.detach(old)
	}
	st.content = c
	st.offset = Point{}
	if c != nil {
		s.children = append(s.children[:0], c)
		c.parent = s.View
		s.engine.log.Debug("scroll content set", "scroll", s.id, "content", c.id)
	}
	s.updateViewport()
	return nil
}

// ContentSize returns the size of the content view.
func (s *ScrollView) ContentSize() Size {
	if s.scroll.content == nil {
		return Size{}
	}
	return s.scroll.content.bounds.Size()
}

// SetContentSize resizes the content view in place.
func (s *ScrollView) SetContentSize(size Size) error {
	if !size.valid() {
		return fmt.Errorf("set content size %+v on view %d: %w", size, s.id, ErrInvalidBounds)
	}
	c := s.scroll.content
	if c == nil || s.released {
		return nil
	}
	r := c.bounds
	r.Width, r.Height = size.Width, size.Height
	return c.SetBounds(r)
}

// ============================================================================
// Offset
// ============================================================================

// ScrollOffset returns the current offset.
func (s *ScrollView) ScrollOffset() Point {
	return s.scroll.offset
}

// MaxScrollOffset returns the largest offset the current sizes allow.
func (s *ScrollView) MaxScrollOffset() Point {
	cs := s.ContentSize()
	vp := s.scroll.viewport
	return Point{
		X: max(0, cs.Width-vp.Width),
		Y: max(0, cs.Height-vp.Height),
	}
}

// SetScrollOffset stores p clamped to [0, MaxScrollOffset] per axis and
// returns the stored value. Out-of-range requests are never an error.
func (s *ScrollView) SetScrollOffset(p Point) Point {
	if s.released {
		return s.scroll.offset
	}
	s.scroll.offset = s.clampOffset(p)
	return s.scroll.offset
}

// ScrollBy moves the offset by delta, clamped.
func (s *ScrollView) ScrollBy(delta Point) Point {
	return s.SetScrollOffset(s.scroll.offset.Add(delta))
}

func (s *ScrollView) clampOffset(p Point) Point {
	m := s.MaxScrollOffset()
	return Point{X: clamp(p.X, 0, m.X), Y: clamp(p.Y, 0, m.Y)}
}

// Viewport returns the area of the scroll view left for content once
// visible bars are subtracted.
func (s *ScrollView) Viewport() Size {
	return s.scroll.viewport
}

// VisibleRect returns the part of the content currently shown, in content
// coordinates.
func (s *ScrollView) VisibleRect() Rect {
	st := s.scroll
	if st.content == nil {
		return Rect{}
	}
	cs := s.ContentSize()
	return Rect{
		X:      st.offset.X,
		Y:      st.offset.Y,
		Width:  min(st.viewport.Width, cs.Width),
		Height: min(st.viewport.Height, cs.Height),
	}
}

// ScrollRectToVisible scrolls the minimum distance needed to bring r (in
// content coordinates) into view, keeping padding from the viewport edges.
// It reports whether the offset changed.
func (s *ScrollView) ScrollRectToVisible(r Rect, padding float32) bool {
	st := s.scroll
	target := st.offset
	target.X = scrollAxisTo(st.offset.X, st.viewport.Width, r.X, r.Width, padding)
	target.Y = scrollAxisTo(st.offset.Y, st.viewport.Height, r.Y, r.Height, padding)
	before := st.offset
	return s.SetScrollOffset(target) != before
}

// ScrollViewToVisible scrolls so that a descendant of the content is
// visible. Views outside the content subtree are ignored.
func (s *ScrollView) ScrollViewToVisible(target Node, padding float32) bool {
	c := s.scroll.content
	if c == nil || target == nil {
		return false
	}
	t := target.Base()
	if t != c && !c.isAncestorOf(t) {
		return false
	}
	// Position of target inside the content, ignoring our own offset.
	var pos Point
	for p := t; p != c; p = p.parent {
		pos = pos.Add(p.bounds.Origin())
		if pp := p.parent; pp != nil && pp != c && pp.scroll != nil {
			pos = pos.Sub(pp.scroll.offset)
		}
	}
	return s.ScrollRectToVisible(Rect{X: pos.X, Y: pos.Y, Width: t.bounds.Width, Height: t.bounds.Height}, padding)
}

// scrollAxisTo returns the offset on one axis that shows [start, start+length).
func scrollAxisTo(current, visible, start, length, padding float32) float32 {
	top := current + padding
	bottom := current + visible - padding
	end := start + length
	switch {
	case start >= top && end <= bottom:
		return current
	case end > bottom:
		target := end - visible + padding
		// Never push the start out of view to show the end.
		if limit := start - padding; target > limit {
			target = limit
		}
		return target
	default:
		return start - padding
	}
}

// ============================================================================
// Scroll bars
// ============================================================================

func (s *ScrollView) HorizontalScrollBarMode() ScrollBarMode { return s.scroll.hMode }
func (s *ScrollView) VerticalScrollBarMode() ScrollBarMode   { return s.scroll.vMode }

// SetHorizontalScrollBarMode sets the policy and recomputes the viewport.
func (s *ScrollView) SetHorizontalScrollBarMode(m ScrollBarMode) {
	if s.released {
		return
	}
	s.scroll.hMode = m
	s.updateViewport()
}

// SetVerticalScrollBarMode sets the policy and recomputes the viewport.
func (s *ScrollView) SetVerticalScrollBarMode(m ScrollBarMode) {
	if s.released {
		return
	}
	s.scroll.vMode = m
	s.updateViewport()
}

// HorizontalScrollBarVisible reports whether the horizontal bar is shown.
func (s *ScrollView) HorizontalScrollBarVisible() bool { return s.scroll.hVisible }

// VerticalScrollBarVisible reports whether the vertical bar is shown.
func (s *ScrollView) VerticalScrollBarVisible() bool { return s.scroll.vVisible }

func barVisible(m ScrollBarMode, content, length float32) bool {
	switch m {
	case ScrollBarEnabled:
		return true
	case ScrollBarAutomatic:
		return content > length
	default:
		return false
	}
}

// updateViewport recomputes bar visibility and viewport size from the
// current bounds and content, then re-clamps the offset.
//
// Automatic bars compare content against the full scroll view length on
// their own axis, so one bar appearing never forces the other.
func (v *View) updateViewport() {
	st := v.scroll
	var cs Size
	if st.content != nil {
		cs = st.content.bounds.Size()
	}
	st.hVisible = barVisible(st.hMode, cs.Width, v.bounds.Width)
	st.vVisible = barVisible(st.vMode, cs.Height, v.bounds.Height)

	thickness := v.engine.cfg.ScrollBarThickness
	vp := v.bounds.Size()
	if st.vVisible {
		vp.Width = max(0, vp.Width-thickness)
	}
	if st.hVisible {
		vp.Height = max(0, vp.Height-thickness)
	}
	st.viewport = vp

	m := Point{X: max(0, cs.Width-vp.Width), Y: max(0, cs.Height-vp.Height)}
	st.offset = Point{X: clamp(st.offset.X, 0, m.X), Y: clamp(st.offset.Y, 0, m.Y)}
}

// ============================================================================
// Height clipping
// ============================================================================

// ClipHeightTo makes the scroll view ask its parent's box layout for the
// content height clamped to [minHeight, maxHeight]. Negative values clear
// the range.
func (s *ScrollView) ClipHeightTo(minHeight, maxHeight float32) error {
	if s.released {
		return nil
	}
	if minHeight < 0 || maxHeight < 0 {
		s.scroll.clipMin, s.scroll.clipMax = -1, -1
		s.parentRelayout()
		return nil
	}
	if maxHeight < minHeight {
		return fmt.Errorf("clip height to [%g, %g] on view %d: %w", minHeight, maxHeight, s.id, ErrInvalidBounds)
	}
	s.scroll.clipMin, s.scroll.clipMax = minHeight, maxHeight
	s.parentRelayout()
	return nil
}

// MinHeight returns the lower clip bound, or -1.
func (s *ScrollView) MinHeight() float32 { return s.scroll.clipMin }

// MaxHeight returns the upper clip bound, or -1.
func (s *ScrollView) MaxHeight() float32 { return s.scroll.clipMax }

func (v *View) clippedHeight() float32 {
	st := v.scroll
	var h float32
	if st.content != nil {
		h = st.content.bounds.Height
	}
	return clamp(h, st.clipMin, st.clipMax)
}
