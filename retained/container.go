package retained

import "fmt"

// ContainerView is a view that holds nested views and content surfaces and
// may carry a BoxLayout.
type ContainerView struct {
	*View
}

// SetBoxLayout attaches or replaces the layout strategy and lays out the
// children immediately.
func (c *ContainerView) SetBoxLayout(l BoxLayout) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("set box layout on view %d: %w", c.id, err)
	}
	if c.released {
		return nil
	}
	c.layout = &l
	c.relayout()
	return nil
}

// BoxLayout returns the attached layout, if any.
func (c *ContainerView) BoxLayout() (BoxLayout, bool) {
	if c.layout == nil {
		return BoxLayout{}, false
	}
	return *c.layout, true
}

// ClearBoxLayout detaches the layout strategy. Children keep their bounds.
func (c *ContainerView) ClearBoxLayout() {
	c.layout = nil
}

// AddChildView appends any view (container, scroll or surface leaf).
func (c *ContainerView) AddChildView(child Node) error {
	if child == nil {
		return nil
	}
	return c.attach(child.Base())
}

// AddContainerView appends a nested container or scroll view.
func (c *ContainerView) AddContainerView(child Node) error {
	return c.AddChildView(child)
}

// RemoveChildView removes a direct child. Removing anything else is a no-op.
func (c *ContainerView) RemoveChildView(child Node) {
	if child == nil {
		return
	}
	c.detach(child.Base())
}

// RemoveContainerView is RemoveChildView.
func (c *ContainerView) RemoveContainerView(child Node) {
	c.RemoveChildView(child)
}

// SetTopChildView moves a direct child to the end of the child order.
func (c *ContainerView) SetTopChildView(child Node) {
	if child == nil {
		return
	}
	c.raise(child.Base())
}

// SetTopContainerView is SetTopChildView.
func (c *ContainerView) SetTopContainerView(child Node) {
	c.SetTopChildView(child)
}

// ChildViews returns the typed handles of all children in order.
func (c *ContainerView) ChildViews() []Node {
	out := make([]Node, 0, len(c.children))
	for _, v := range c.children {
		out = append(out, v.handle)
	}
	return out
}

// ContainerViews returns the children that are not surface leaves.
func (c *ContainerView) ContainerViews() []Node {
	var out []Node
	for _, v := range c.children {
		if v.kind != KindSurface {
			out = append(out, v.handle)
		}
	}
	return out
}

// ============================================================================
// Content surfaces
// ============================================================================

// AddContentSurface embeds s as a leaf child. A surface already embedded
// elsewhere moves here under the engine's reparent policy.
func (c *ContainerView) AddContentSurface(s ContentSurface) (*SurfaceView, error) {
	if s == nil {
		return nil, nil
	}
	if !comparableSurface(s) {
		return nil, fmt.Errorf("add content surface %T to view %d: %w: surface type is not comparable", s, c.id, ErrInvalidConfig)
	}
	leaf := c.engine.surfaceView(s)
	if err := c.attach(leaf.View); err != nil {
		return nil, err
	}
	return leaf, nil
}

// AddBrowserView is AddContentSurface.
func (c *ContainerView) AddBrowserView(s ContentSurface) (*SurfaceView, error) {
	return c.AddContentSurface(s)
}

// RemoveContentSurface removes the leaf hosting s. The leaf stays alive and
// can be added again.
func (c *ContainerView) RemoveContentSurface(s ContentSurface) {
	if leaf := c.SurfaceView(s); leaf != nil {
		c.detach(leaf.View)
	}
}

// RemoveBrowserView is RemoveContentSurface.
func (c *ContainerView) RemoveBrowserView(s ContentSurface) {
	c.RemoveContentSurface(s)
}

// SetTopContentSurface moves the leaf hosting s to the end of the child order.
func (c *ContainerView) SetTopContentSurface(s ContentSurface) {
	if leaf := c.SurfaceView(s); leaf != nil {
		c.raise(leaf.View)
	}
}

// SetTopBrowserView is SetTopContentSurface.
func (c *ContainerView) SetTopBrowserView(s ContentSurface) {
	c.SetTopContentSurface(s)
}

// SurfaceView returns the direct child hosting s, or nil.
func (c *ContainerView) SurfaceView(s ContentSurface) *SurfaceView {
	if !comparableSurface(s) {
		return nil
	}
	for _, v := range c.children {
		if v.surface == s {
			return v.handle.(*SurfaceView)
		}
	}
	return nil
}

// SurfaceViews returns the surface leaves among the children.
func (c *ContainerView) SurfaceViews() []*SurfaceView {
	var out []*SurfaceView
	for _, v := range c.children {
		if v.kind == KindSurface {
			out = append(out, v.handle.(*SurfaceView))
		}
	}
	return out
}

// ContentSurfaces returns the embedded surfaces in child order.
func (c *ContainerView) ContentSurfaces() []ContentSurface {
	var out []ContentSurface
	for _, v := range c.children {
		if v.surface != nil {
			out = append(out, v.surface)
		}
	}
	return out
}
