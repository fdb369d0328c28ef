package retained

import "fmt"

// attach appends child to v's children, honouring the engine's reparent
// policy. Re-adding an existing child is a no-op.
func (v *View) attach(child *View) error {
	if child == nil || v.released || child.released {
		return nil
	}
	if child.parent == v {
		return nil
	}
	if err := v.checkAdoptable(child); err != nil {
		return err
	}
	if old := child.parent; old != nil {
		old.detach(child)
	}

	v.children = append(v.children, child)
	child.parent = v
	v.engine.log.Debug("view attached", "parent", v.id, "child", child.id)
	v.relayout()
	return nil
}

// checkAdoptable reports whether child may become a child of v.
func (v *View) checkAdoptable(child *View) error {
	if child == v || child.isAncestorOf(v) {
		return fmt.Errorf("add view %d to %d: %w", child.id, v.id, ErrCycle)
	}
	if child.parent != nil && child.parent != v && v.engine.cfg.ReparentPolicy == ReparentStrict {
		return fmt.Errorf("add view %d to %d (parent %d): %w",
			child.id, v.id, child.parent.id, ErrAlreadyParented)
	}
	return nil
}

// detach removes child from v. It reports false when child is not a direct
// child of v.
func (v *View) detach(child *View) bool {
	i := v.indexOf(child)
	if i < 0 {
		return false
	}
	v.children = append(v.children[:i], v.children[i+1:]...)
	child.parent = nil
	if v.scroll != nil && v.scroll.content == child {
		v.scroll.content = nil
		v.scroll.offset = Point{}
	}
	v.engine.log.Debug("view detached", "parent", v.id, "child", child.id)
	v.relayout()
	return true
}

// raise moves child to the end of v's children.
func (v *View) raise(child *View) {
	i := v.indexOf(child)
	if i < 0 || i == len(v.children)-1 {
		return
	}
	v.children = append(v.children[:i], v.children[i+1:]...)
	v.children = append(v.children, child)
	v.relayout()
}

func (v *View) indexOf(child *View) int {
	for i, c := range v.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (v *View) isAncestorOf(other *View) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == v {
			return true
		}
	}
	return false
}

// Walk visits v and its descendants depth first. Returning false from fn
// skips the node's children.
func (v *View) Walk(fn func(n *View, depth int) bool) {
	v.walk(fn, 0)
}

func (v *View) walk(fn func(n *View, depth int) bool, depth int) {
	if !fn(v, depth) {
		return
	}
	for _, c := range v.children {
		c.walk(fn, depth+1)
	}
}
