package scene

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/agiangrant/viewkit/retained"
)

// Surface is the stand-in content surface used for "surface" nodes. It
// records the bounds the engine writes.
type Surface struct {
	Name   string
	Bounds retained.Rect
	Writes int
}

func (s *Surface) SetBounds(r retained.Rect) {
	s.Bounds = r
	s.Writes++
}

// Scene is a built view tree.
type Scene struct {
	Root     *retained.View
	Engine   *retained.Engine
	names    map[string]*retained.View
	surfaces map[string]*Surface
}

// View returns the view named name, or nil.
func (s *Scene) View(name string) *retained.View {
	return s.names[name]
}

// ScrollView returns the scroll view named name.
func (s *Scene) ScrollView(name string) (*retained.ScrollView, bool) {
	v := s.names[name]
	if v == nil {
		return nil, false
	}
	sv, ok := v.Handle().(*retained.ScrollView)
	return sv, ok
}

// NameOf returns the name v was declared with, or "".
func (s *Scene) NameOf(v *retained.View) string {
	for name, nv := range s.names {
		if nv == v {
			return name
		}
	}
	return ""
}

// Surface returns the surface named name, or nil.
func (s *Scene) Surface(name string) *Surface {
	return s.surfaces[name]
}

// Names returns every view name in sorted order.
func (s *Scene) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

type pendingOffset struct {
	view   *retained.ScrollView
	offset retained.Point
}

type builder struct {
	e       *retained.Engine
	scene   *Scene
	offsets []pendingOffset
	created []*retained.View
}

// Build creates the tree described by f in e, lays it out and applies scroll
// offsets.
func Build(e *retained.Engine, f *File) (*Scene, error) {
	b := &builder{
		e: e,
		scene: &Scene{
			Engine:   e,
			names:    make(map[string]*retained.View),
			surfaces: make(map[string]*Surface),
		},
	}
	if f.Root == nil {
		return nil, fmt.Errorf("%w: missing [root]", ErrInvalidScene)
	}
	if f.Root.Kind == KindSurface {
		return nil, fmt.Errorf("%w: root: root must be a container or scroll view", ErrInvalidScene)
	}
	root, err := b.node(f.Root, nil, "root")
	if err != nil {
		for _, v := range b.created {
			v.Release()
		}
		return nil, err
	}
	b.scene.Root = root
	root.Layout()

	// Offsets clamp against final sizes, so they go last.
	for _, p := range b.offsets {
		p.view.SetScrollOffset(p.offset)
	}
	return b.scene, nil
}

// node builds n. parent is nil for the root and for scroll content.
func (b *builder) node(n *Node, parent *retained.ContainerView, path string) (*retained.View, error) {
	v, err := b.create(n, parent, path)
	if err != nil {
		return nil, err
	}
	b.created = append(b.created, v)
	if err := b.register(n, v, path); err != nil {
		return v, err
	}
	if err := b.common(n, v, path); err != nil {
		return v, err
	}

	switch h := v.Handle().(type) {
	case *retained.ContainerView:
		err = b.container(n, h, path)
	case *retained.ScrollView:
		err = b.scroll(n, h, path)
	case *retained.SurfaceView:
		if len(n.Children) > 0 || n.Layout != nil || n.Content != nil {
			err = fmt.Errorf("%w: %s: surfaces have no children", ErrInvalidScene, path)
		}
	}
	if err != nil {
		return v, err
	}

	if parent != nil && n.Kind != KindSurface {
		if err := parent.AddChildView(v); err != nil {
			return v, fmt.Errorf("%s: %w", path, err)
		}
	}
	return v, nil
}

func (b *builder) create(n *Node, parent *retained.ContainerView, path string) (*retained.View, error) {
	switch n.Kind {
	case "", KindContainer:
		return b.e.NewContainerView().View, nil
	case KindScroll:
		return b.e.NewScrollView().View, nil
	case KindSurface:
		if parent == nil {
			return nil, fmt.Errorf("%w: %s: surfaces must sit inside a container", ErrInvalidScene, path)
		}
		s := &Surface{Name: n.Name}
		leaf, err := parent.AddContentSurface(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if n.Name != "" {
			b.scene.surfaces[n.Name] = s
		}
		return leaf.View, nil
	}
	return nil, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidScene, path, n.Kind)
}

func (b *builder) register(n *Node, v *retained.View, path string) error {
	if n.Name == "" {
		return nil
	}
	if _, dup := b.scene.names[n.Name]; dup {
		return fmt.Errorf("%w: %s: duplicate name %q", ErrInvalidScene, path, n.Name)
	}
	b.scene.names[n.Name] = v
	return nil
}

// common applies the attributes every kind accepts.
func (b *builder) common(n *Node, v *retained.View, path string) error {
	if n.Bounds != nil {
		r, err := rect(n.Bounds)
		if err != nil {
			return fmt.Errorf("%s.bounds: %w", path, err)
		}
		if err := v.SetBounds(r); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if n.Preferred != nil {
		p, err := pair(n.Preferred)
		if err != nil {
			return fmt.Errorf("%s.preferred: %w", path, err)
		}
		if err := v.SetPreferredSize(retained.Size{Width: p[0], Height: p[1]}); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if n.Background != "" {
		if err := v.SetBackgroundColor(n.Background); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if n.Flex != 0 {
		if err := v.SetFlex(n.Flex); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if n.Visible != nil {
		v.SetVisible(*n.Visible)
	}
	if n.Class != "" {
		if err := v.SetStringProperty("class", n.Class); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := setProperty(v, k, n.Properties[k]); err != nil {
			return fmt.Errorf("%s.properties: %w", path, err)
		}
	}
	return nil
}

func setProperty(v *retained.View, key string, val any) error {
	switch x := val.(type) {
	case string:
		return v.SetStringProperty(key, x)
	case int64:
		return v.SetNumericProperty(key, float32(x))
	case float64:
		return v.SetNumericProperty(key, float32(x))
	case bool:
		return v.SetStringProperty(key, strconv.FormatBool(x))
	}
	return fmt.Errorf("%w: property %q has unsupported type %T", ErrInvalidScene, key, val)
}

func (b *builder) container(n *Node, c *retained.ContainerView, path string) error {
	if n.Content != nil || n.Offset != nil || n.ClipHeight != nil || n.HorizontalBar != "" || n.VerticalBar != "" {
		return fmt.Errorf("%w: %s: scroll settings on a %s", ErrInvalidScene, path, c.Kind())
	}
	if n.Layout != nil {
		if err := c.SetBoxLayout(n.Layout.BoxLayout()); err != nil {
			return fmt.Errorf("%s.layout: %w", path, err)
		}
	}
	for i := range n.Children {
		if _, err := b.node(&n.Children[i], c, fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) scroll(n *Node, s *retained.ScrollView, path string) error {
	if len(n.Children) > 0 || n.Layout != nil {
		return fmt.Errorf("%w: %s: scroll views take a single content node", ErrInvalidScene, path)
	}
	if n.HorizontalBar != "" {
		m, err := retained.ParseScrollBarMode(n.HorizontalBar)
		if err != nil {
			return fmt.Errorf("%s.horizontal_bar: %w", path, err)
		}
		s.SetHorizontalScrollBarMode(m)
	}
	if n.VerticalBar != "" {
		m, err := retained.ParseScrollBarMode(n.VerticalBar)
		if err != nil {
			return fmt.Errorf("%s.vertical_bar: %w", path, err)
		}
		s.SetVerticalScrollBarMode(m)
	}
	if n.Content != nil {
		if n.Content.Kind == KindSurface {
			return fmt.Errorf("%w: %s.content: wrap surfaces in a container", ErrInvalidScene, path)
		}
		content, err := b.node(n.Content, nil, path+".content")
		if err != nil {
			return err
		}
		if err := s.SetContentView(content); err != nil {
			return fmt.Errorf("%s.content: %w", path, err)
		}
	}
	if n.ClipHeight != nil {
		p, err := pair(n.ClipHeight)
		if err != nil {
			return fmt.Errorf("%s.clip_height: %w", path, err)
		}
		if err := s.ClipHeightTo(p[0], p[1]); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	if n.Offset != nil {
		p, err := pair(n.Offset)
		if err != nil {
			return fmt.Errorf("%s.offset: %w", path, err)
		}
		b.offsets = append(b.offsets, pendingOffset{view: s, offset: retained.Point{X: p[0], Y: p[1]}})
	}
	return nil
}

func rect(v []float32) (retained.Rect, error) {
	if len(v) != 4 {
		return retained.Rect{}, fmt.Errorf("%w: want [x, y, width, height], got %d numbers", ErrInvalidScene, len(v))
	}
	return retained.NewRect(v[0], v[1], v[2], v[3]), nil
}

func pair(v []float32) ([2]float32, error) {
	if len(v) != 2 {
		return [2]float32{}, fmt.Errorf("%w: want two numbers, got %d", ErrInvalidScene, len(v))
	}
	return [2]float32{v[0], v[1]}, nil
}
