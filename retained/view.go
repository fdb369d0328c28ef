// Package retained implements a retained view tree for an application shell:
// container views that host nested containers and externally owned content
// surfaces, a single-axis box layout, and a scroll view with a clamped
// viewport.
//
// All mutation is synchronous. Every operation that changes sizes or
// children recomputes the affected subtree before it returns; there is no
// background scheduler and no batching.
package retained

import (
	"fmt"
	"sync/atomic"

	"github.com/agiangrant/viewkit/style"
)

// ViewID uniquely identifies a view. IDs are never reused.
type ViewID uint64

var nextViewID atomic.Uint64

func newViewID() ViewID {
	return ViewID(nextViewID.Add(1))
}

// Kind identifies which capabilities a view carries.
type Kind string

const (
	KindContainer  Kind = "container"
	KindScrollView Kind = "scroll_view"
	KindSurface    Kind = "surface"
)

// Node is implemented by every view handle (*View, *ContainerView,
// *ScrollView, *SurfaceView).
type Node interface {
	Base() *View
}

// View is the node shared by every kind of view. Container, scroll and
// surface behaviour are capabilities stored on the node and exposed through
// the typed handles.
type View struct {
	id     ViewID
	kind   Kind
	engine *Engine
	handle Node

	parent   *View
	children []*View

	bounds       Rect
	preferred    Size
	hasPreferred bool
	flex         float32
	visible      bool
	background   *style.Color
	props        *style.Bag

	// capabilities
	layout  *BoxLayout
	scroll  *scrollState
	surface ContentSurface

	autoResize autoResizeState
	released   bool
}

// Base returns v itself.
func (v *View) Base() *View { return v }

// ID returns the view's identifier.
func (v *View) ID() ViewID { return v.id }

// Kind returns the view kind.
func (v *View) Kind() Kind { return v.kind }

// Handle returns the typed handle the view was created with.
func (v *View) Handle() Node { return v.handle }

// Engine returns the owning engine.
func (v *View) Engine() *Engine { return v.engine }

// Released reports whether Release has been called on v or an ancestor.
func (v *View) Released() bool { return v.released }

// IsContainer reports whether v can host children.
func (v *View) IsContainer() bool { return v.kind != KindSurface }

// Parent returns the parent view, or nil for a detached or root view.
func (v *View) Parent() *View { return v.parent }

// Children returns a copy of the child list.
func (v *View) Children() []*View {
	out := make([]*View, len(v.children))
	copy(out, v.children)
	return out
}

// Root returns the top-most ancestor of v.
func (v *View) Root() *View {
	r := v
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// ============================================================================
// Geometry
// ============================================================================

// Bounds returns the rectangle relative to the parent.
func (v *View) Bounds() Rect { return v.bounds }

// SetBounds sets position and size. Containers lay out their children
// against the new size and scroll views recompute their viewport. The parent
// is never resized.
func (v *View) SetBounds(r Rect) error {
	if !r.valid() {
		return fmt.Errorf("set bounds %v on view %d: %w", r, v.id, ErrInvalidBounds)
	}
	if v.released {
		return nil
	}
	v.autoResize.reset()
	v.applyBounds(r)
	v.notifyScrollParent()
	return nil
}

// notifyScrollParent refreshes a scroll parent after v, its content, was
// resized. A clipped scroll view also asks its own parent to lay out again.
func (v *View) notifyScrollParent() {
	p := v.parent
	if p == nil || p.scroll == nil {
		return
	}
	p.updateViewport()
	if p.scroll.clipMax >= 0 {
		p.parentRelayout()
	}
}

// applyBounds is the single writer of bounds. Surfaces are told about every
// write, and the view's own subtree is laid out again.
func (v *View) applyBounds(r Rect) {
	v.bounds = r
	if v.surface != nil {
		v.surface.SetBounds(r)
	}
	v.relayout()
}

// PreferredSize returns the explicit preferred size, if any.
func (v *View) PreferredSize() (Size, bool) {
	return v.preferred, v.hasPreferred
}

// SetPreferredSize records a size hint for the parent's box layout. A zero
// component on the cross axis means "fill".
func (v *View) SetPreferredSize(s Size) error {
	if !s.valid() {
		return fmt.Errorf("set preferred size %+v on view %d: %w", s, v.id, ErrInvalidBounds)
	}
	if v.released {
		return nil
	}
	v.preferred, v.hasPreferred = s, true
	v.parentRelayout()
	return nil
}

// ClearPreferredSize drops the explicit hint.
func (v *View) ClearPreferredSize() {
	if !v.hasPreferred {
		return
	}
	v.preferred, v.hasPreferred = Size{}, false
	v.parentRelayout()
}

// Flex returns the flex weight; 0 means fixed size.
func (v *View) Flex() float32 { return v.flex }

// SetFlex sets the share of leftover main-axis length the view receives in
// its parent's box layout.
func (v *View) SetFlex(weight float32) error {
	if !extent(weight) {
		return fmt.Errorf("set flex %g on view %d: %w", weight, v.id, ErrInvalidConfig)
	}
	if v.released || v.flex == weight {
		return nil
	}
	v.flex = weight
	v.parentRelayout()
	return nil
}

// declaredSize is the size the view asks for, if it asks at all: an explicit
// preferred size, the clip range of a scroll view, or a surface's own hint.
func (v *View) declaredSize() (Size, bool) {
	if v.hasPreferred {
		return v.preferred, true
	}
	if v.scroll != nil && v.scroll.clipMax >= 0 {
		return Size{Height: v.clippedHeight()}, true
	}
	if v.surface != nil {
		if ps, ok := v.surface.(PreferredSizer); ok {
			return ps.PreferredSize(), true
		}
	}
	return Size{}, false
}

// layoutSize is what a box layout uses for the main axis: the declared size,
// falling back to the current bounds.
func (v *View) layoutSize() Size {
	if s, ok := v.declaredSize(); ok {
		return s
	}
	return v.bounds.Size()
}

// ============================================================================
// Visibility
// ============================================================================

// Visible reports the view's own visibility flag.
func (v *View) Visible() bool { return v.visible }

// SetVisible shows or hides the view. Hidden views take no slot in their
// parent's box layout.
func (v *View) SetVisible(visible bool) {
	if v.released || v.visible == visible {
		return
	}
	v.visible = visible
	v.parentRelayout()
}

// TreeVisible reports whether v and every ancestor are visible.
func (v *View) TreeVisible() bool {
	for p := v; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
	}
	return true
}

// ============================================================================
// Coordinates
// ============================================================================

// OffsetFromRoot returns the position of v's origin in the root view's
// parent space, accounting for scroll offsets of scroll-view ancestors.
func (v *View) OffsetFromRoot() Point {
	var off Point
	for p := v; p != nil; p = p.parent {
		off = off.Add(p.bounds.Origin())
		if pp := p.parent; pp != nil && pp.scroll != nil {
			off = off.Sub(pp.scroll.offset)
		}
	}
	return off
}

// OffsetFromView returns the position of v's origin relative to from's origin.
func (v *View) OffsetFromView(from Node) Point {
	if from == nil {
		return v.OffsetFromRoot()
	}
	return v.OffsetFromRoot().Sub(from.Base().OffsetFromRoot())
}

// ============================================================================
// Background
// ============================================================================

// BackgroundColor returns the background, if one is set.
func (v *View) BackgroundColor() (style.Color, bool) {
	if v.background == nil {
		return 0, false
	}
	return *v.background, true
}

// SetBackgroundColor parses a colour string such as "#1F2937". It has no
// layout effect.
func (v *View) SetBackgroundColor(spec string) error {
	c, err := style.ParseColor(spec)
	if err != nil {
		return fmt.Errorf("set background on view %d: %w: %w", v.id, ErrInvalidColor, err)
	}
	if v.released {
		return nil
	}
	v.background = &c
	return nil
}

// ClearBackgroundColor makes the view transparent.
func (v *View) ClearBackgroundColor() {
	v.background = nil
}

// ============================================================================
// Layout
// ============================================================================

// Layout recomputes v's subtree from its current state. Calling it twice
// with nothing changed in between yields identical bounds everywhere.
func (v *View) Layout() {
	if v.released {
		return
	}
	v.relayout()
}

// relayout lays out v's direct children; writing each child's bounds
// recurses into that child.
func (v *View) relayout() {
	switch {
	case v.layout != nil:
		v.layout.apply(v)
	case v.scroll != nil:
		if c := v.scroll.content; c != nil {
			c.relayout()
		}
		v.updateViewport()
	default:
		for _, c := range v.children {
			c.relayout()
		}
	}
}

// parentRelayout re-runs the parent's layout after a hint on v changed.
// Parents without a layout strategy ignore child hints.
func (v *View) parentRelayout() {
	p := v.parent
	if p == nil {
		return
	}
	switch {
	case p.layout != nil:
		p.relayout()
	case p.scroll != nil:
		p.updateViewport()
	}
}

// ============================================================================
// Lifetime
// ============================================================================

// Release detaches v from its parent and releases v and all its
// descendants. Releasing twice is a no-op. Content surfaces are not touched;
// they belong to the caller.
func (v *View) Release() {
	if v.released {
		return
	}
	if p := v.parent; p != nil {
		p.detach(v)
	}
	v.engine.log.Debug("view released", "id", v.id)
	v.releaseTree()
}

func (v *View) releaseTree() {
	stack := acquireViewSlice(0)
	stack = append(stack, v)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, n.children...)

		n.released = true
		n.engine.unregister(n)
		for _, c := range n.children {
			c.parent = nil
		}
		n.children = nil
		if n.scroll != nil {
			n.scroll.content = nil
		}
	}
	releaseViewSlice(stack)
}

func (v *View) String() string {
	return fmt.Sprintf("%s#%d %v", v.kind, v.id, v.bounds)
}
