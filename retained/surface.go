package retained

import "reflect"

// ContentSurface is an externally owned embeddable view, such as a rendered
// web page. The engine only ever writes its bounds. Implementations must be
// comparable (pointer types are).
type ContentSurface interface {
	SetBounds(Rect)
}

// PreferredSizer is implemented by surfaces that report their own size hint.
// An explicit SetPreferredSize on the hosting leaf wins over it.
type PreferredSizer interface {
	PreferredSize() Size
}

// SurfaceView is the leaf that hosts a ContentSurface in the tree.
type SurfaceView struct {
	*View
}

// Surface returns the hosted surface.
func (s *SurfaceView) Surface() ContentSurface { return s.surface }

// comparableSurface reports whether cs can key the surface index. A value
// type holding a slice, map or func cannot.
func comparableSurface(cs ContentSurface) bool {
	return cs != nil && reflect.TypeOf(cs).Comparable()
}

// surfaceView returns the leaf for cs, creating it on first use. cs must be
// comparable.
func (e *Engine) surfaceView(cs ContentSurface) *SurfaceView {
	if v, ok := e.surfaces[cs]; ok {
		return v.handle.(*SurfaceView)
	}
	leaf := &SurfaceView{}
	leaf.View = e.newView(KindSurface, leaf)
	leaf.surface = cs
	e.surfaces[cs] = leaf.View
	return leaf
}
