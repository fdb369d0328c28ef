package retained

import "fmt"

// AutoResizeFlags selects how a view follows its host window when the
// window changes size.
type AutoResizeFlags uint8

const (
	// AutoResizeWidth grows or shrinks the width by the window's width delta.
	AutoResizeWidth AutoResizeFlags = 1 << iota
	// AutoResizeHeight grows or shrinks the height by the window's height delta.
	AutoResizeHeight
	// AutoResizeHorizontal keeps x and width proportional to the window width.
	AutoResizeHorizontal
	// AutoResizeVertical keeps y and height proportional to the window height.
	AutoResizeVertical
)

type autoResizeState struct {
	flags AutoResizeFlags

	// Proportions relative to the window, captured lazily.
	hSet, vSet  bool
	left, width float32
	top, height float32
}

// reset forgets captured proportions so the next resize measures again.
func (s *autoResizeState) reset() {
	s.hSet, s.vSet = false, false
}

func (s *autoResizeState) capture(bounds Rect, window Size) {
	if s.flags&AutoResizeHorizontal != 0 && !s.hSet && window.Width > 0 {
		s.left = bounds.X / window.Width
		s.width = bounds.Width / window.Width
		s.hSet = true
	}
	if s.flags&AutoResizeVertical != 0 && !s.vSet && window.Height > 0 {
		s.top = bounds.Y / window.Height
		s.height = bounds.Height / window.Height
		s.vSet = true
	}
}

// AutoResizeFlags returns the current flags.
func (v *View) AutoResizeFlags() AutoResizeFlags { return v.autoResize.flags }

// SetAutoResize sets the flags and forgets captured proportions.
func (v *View) SetAutoResize(flags AutoResizeFlags) {
	v.autoResize.flags = flags
	v.autoResize.reset()
}

// AutoResize applies the flags after the host window changed to window, a
// change of (dw, dh). Proportions are captured against the previous window
// size the first time they are needed after SetAutoResize or SetBounds.
func (v *View) AutoResize(window Rect, dw, dh float32) error {
	if !window.valid() || !finite(dw) || !finite(dh) {
		return fmt.Errorf("auto resize view %d to window %v by (%g, %g): %w", v.id, window, dw, dh, ErrInvalidBounds)
	}
	st := &v.autoResize
	if v.released || st.flags == 0 {
		return nil
	}
	st.capture(v.bounds, Size{Width: window.Width - dw, Height: window.Height - dh})

	r := v.bounds
	if st.flags&AutoResizeWidth != 0 {
		r.Width = max(0, r.Width+dw)
	}
	if st.flags&AutoResizeHeight != 0 {
		r.Height = max(0, r.Height+dh)
	}
	if st.flags&AutoResizeHorizontal != 0 && st.hSet {
		r.X = window.Width * st.left
		r.Width = window.Width * st.width
	}
	if st.flags&AutoResizeVertical != 0 && st.vSet {
		r.Y = window.Height * st.top
		r.Height = window.Height * st.height
	}
	if r == v.bounds {
		return nil
	}
	v.applyBounds(r)
	v.notifyScrollParent()
	return nil
}
