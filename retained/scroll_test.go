package retained

import (
	"errors"
	"math"
	"testing"
)

func newScroll(t *testing.T, e *Engine, bounds Rect, h, v ScrollBarMode) *ScrollView {
	t.Helper()
	sv := e.NewScrollView()
	sv.SetHorizontalScrollBarMode(h)
	sv.SetVerticalScrollBarMode(v)
	if err := sv.SetBounds(bounds); err != nil {
		t.Fatalf("SetBounds() error = %v", err)
	}
	return sv
}

func newContent(t *testing.T, e *Engine, w, h float32) *ContainerView {
	t.Helper()
	c := e.NewContainerView()
	if err := c.SetBounds(NewRect(0, 0, w, h)); err != nil {
		t.Fatalf("SetBounds() error = %v", err)
	}
	return c
}

func TestScrollViewAutomaticBarsAndClamp(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 1000, 900), ScrollBarAutomatic, ScrollBarAutomatic)
	if err := sv.SetContentView(newContent(t, e, 3500, 900)); err != nil {
		t.Fatal(err)
	}

	if !sv.HorizontalScrollBarVisible() {
		t.Error("horizontal bar hidden, want visible")
	}
	if sv.VerticalScrollBarVisible() {
		t.Error("vertical bar visible, want hidden")
	}
	if got, want := sv.Viewport(), (Size{Width: 1000, Height: 885}); got != want {
		t.Errorf("Viewport() = %v, want %v", got, want)
	}

	got := sv.SetScrollOffset(Point{X: 5000, Y: 0})
	if want := (Point{X: 2500, Y: 0}); got != want {
		t.Errorf("SetScrollOffset() = %v, want %v", got, want)
	}
	if sv.ScrollOffset() != got {
		t.Errorf("ScrollOffset() = %v, want stored %v", sv.ScrollOffset(), got)
	}
}

func TestSetContentViewTwice(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 300, 300), ScrollBarDisabled, ScrollBarDisabled)
	first := newContent(t, e, 1000, 1000)
	second := newContent(t, e, 2000, 2000)

	if err := sv.SetContentView(first); err != nil {
		t.Fatal(err)
	}
	sv.SetScrollOffset(Point{X: 100, Y: 200})

	if err := sv.SetContentView(second); err != nil {
		t.Fatal(err)
	}

	if got := sv.ScrollOffset(); got != (Point{}) {
		t.Errorf("offset after replace = %v, want {0 0}", got)
	}
	if first.Parent() != nil {
		t.Error("old content still has a parent")
	}
	if first.Released() || e.ViewByID(first.ID()) == nil {
		t.Error("old content was destroyed")
	}
	if sv.ContentView() != second.View || second.Parent() != sv.View {
		t.Error("new content not installed")
	}
	if got := len(sv.Children()); got != 1 {
		t.Errorf("len(Children()) = %d, want 1", got)
	}

	// Same content again keeps the offset.
	sv.SetScrollOffset(Point{X: 50})
	if err := sv.SetContentView(second); err != nil {
		t.Fatal(err)
	}
	if got := sv.ScrollOffset(); got != (Point{X: 50}) {
		t.Errorf("offset after same content = %v, want {50 0}", got)
	}
}

func TestSetContentViewCycle(t *testing.T) {
	e := newTestEngine(t)
	outer := e.NewContainerView()
	sv := e.NewScrollView()
	_ = outer.AddChildView(sv)

	if err := sv.SetContentView(outer); !errors.Is(err, ErrCycle) {
		t.Errorf("SetContentView(ancestor) error = %v, want ErrCycle", err)
	}
}

func TestScrollBarModes(t *testing.T) {
	tests := []struct {
		name         string
		h, v         ScrollBarMode
		content      Size
		wantH, wantV bool
		wantViewport Size
	}{
		{
			name:         "enabled always reserves space",
			h:            ScrollBarEnabled,
			v:            ScrollBarEnabled,
			content:      Size{Width: 10, Height: 10},
			wantH:        true,
			wantV:        true,
			wantViewport: Size{Width: 385, Height: 285},
		},
		{
			name:         "disabled never shows",
			h:            ScrollBarDisabled,
			v:            ScrollBarDisabled,
			content:      Size{Width: 5000, Height: 5000},
			wantViewport: Size{Width: 400, Height: 300},
		},
		{
			name:         "automatic vertical only",
			h:            ScrollBarAutomatic,
			v:            ScrollBarAutomatic,
			content:      Size{Width: 400, Height: 301},
			wantV:        true,
			wantViewport: Size{Width: 385, Height: 300},
		},
		{
			name:         "automatic both",
			h:            ScrollBarAutomatic,
			v:            ScrollBarAutomatic,
			content:      Size{Width: 401, Height: 301},
			wantH:        true,
			wantV:        true,
			wantViewport: Size{Width: 385, Height: 285},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			sv := newScroll(t, e, NewRect(0, 0, 400, 300), tt.h, tt.v)
			if err := sv.SetContentView(newContent(t, e, tt.content.Width, tt.content.Height)); err != nil {
				t.Fatal(err)
			}
			if got := sv.HorizontalScrollBarVisible(); got != tt.wantH {
				t.Errorf("horizontal visible = %v, want %v", got, tt.wantH)
			}
			if got := sv.VerticalScrollBarVisible(); got != tt.wantV {
				t.Errorf("vertical visible = %v, want %v", got, tt.wantV)
			}
			if got := sv.Viewport(); got != tt.wantViewport {
				t.Errorf("Viewport() = %v, want %v", got, tt.wantViewport)
			}
		})
	}
}

func TestScrollOffsetClamp(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 100, 100), ScrollBarDisabled, ScrollBarDisabled)
	_ = sv.SetContentView(newContent(t, e, 300, 150))

	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	tests := []struct {
		in, want Point
	}{
		{Point{X: -10, Y: -10}, Point{}},
		{Point{X: 50, Y: 25}, Point{X: 50, Y: 25}},
		{Point{X: 1e9, Y: 1e9}, Point{X: 200, Y: 50}},
		{Point{X: nan, Y: nan}, Point{}},
		{Point{X: inf, Y: -inf}, Point{X: 200}},
	}
	for _, tt := range tests {
		if got := sv.SetScrollOffset(tt.in); got != tt.want {
			t.Errorf("SetScrollOffset(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	sv.SetScrollOffset(Point{X: 190})
	if got := sv.ScrollBy(Point{X: 30, Y: 10}); got != (Point{X: 200, Y: 10}) {
		t.Errorf("ScrollBy() = %v, want {200 10}", got)
	}
	if got := sv.ScrollBy(Point{X: nan}); got != (Point{Y: 10}) {
		t.Errorf("ScrollBy(NaN) = %v, want {0 10}", got)
	}

	// Content smaller than the viewport pins the offset at zero.
	small := newScroll(t, e, NewRect(0, 0, 100, 100), ScrollBarDisabled, ScrollBarDisabled)
	_ = small.SetContentView(newContent(t, e, 50, 50))
	if got := small.SetScrollOffset(Point{X: 10, Y: 10}); got != (Point{}) {
		t.Errorf("SetScrollOffset() on small content = %v, want {0 0}", got)
	}
}

func TestScrollViewResizeReclamps(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 100, 100), ScrollBarDisabled, ScrollBarDisabled)
	content := newContent(t, e, 100, 500)
	_ = sv.SetContentView(content)
	sv.SetScrollOffset(Point{Y: 400})

	if err := sv.SetBounds(NewRect(0, 0, 100, 300)); err != nil {
		t.Fatal(err)
	}
	if got := sv.ScrollOffset(); got != (Point{Y: 200}) {
		t.Errorf("offset after grow = %v, want {0 200}", got)
	}
	if got := content.Bounds(); got != NewRect(0, 0, 100, 500) {
		t.Errorf("content bounds = %v, want unchanged", got)
	}

	// Shrinking the content also re-clamps.
	if err := sv.SetContentSize(Size{Width: 100, Height: 350}); err != nil {
		t.Fatal(err)
	}
	if got := sv.ScrollOffset(); got != (Point{Y: 50}) {
		t.Errorf("offset after content shrink = %v, want {0 50}", got)
	}
}

func TestScrollModeChangeReclamps(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 100, 100), ScrollBarEnabled, ScrollBarDisabled)
	_ = sv.SetContentView(newContent(t, e, 100, 200))
	if got := sv.SetScrollOffset(Point{Y: 500}); got != (Point{Y: 115}) {
		t.Fatalf("SetScrollOffset() = %v, want {0 115}", got)
	}

	sv.SetHorizontalScrollBarMode(ScrollBarDisabled)
	if got := sv.ScrollOffset(); got != (Point{Y: 100}) {
		t.Errorf("offset after hiding bar = %v, want {0 100}", got)
	}
}

func TestVisibleRect(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 200, 100), ScrollBarDisabled, ScrollBarDisabled)
	if got := sv.VisibleRect(); got != (Rect{}) {
		t.Errorf("VisibleRect() without content = %v", got)
	}
	_ = sv.SetContentView(newContent(t, e, 150, 1000))
	sv.SetScrollOffset(Point{Y: 300})
	if got, want := sv.VisibleRect(), NewRect(0, 300, 150, 100); got != want {
		t.Errorf("VisibleRect() = %v, want %v", got, want)
	}
}

func TestScrollRectToVisible(t *testing.T) {
	e := newTestEngine(t)
	sv := newScroll(t, e, NewRect(0, 0, 200, 100), ScrollBarDisabled, ScrollBarDisabled)
	content := newContent(t, e, 200, 1000)
	_ = sv.SetContentView(content)

	tests := []struct {
		name    string
		rect    Rect
		padding float32
		want    Point
		changed bool
	}{
		{"below viewport", NewRect(0, 500, 200, 50), 0, Point{Y: 450}, true},
		{"already visible", NewRect(0, 460, 10, 20), 0, Point{Y: 450}, false},
		{"above with padding", NewRect(0, 100, 10, 10), 8, Point{Y: 92}, true},
		{"taller than viewport shows start", NewRect(0, 600, 10, 300), 0, Point{Y: 600}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := sv.ScrollRectToVisible(tt.rect, tt.padding)
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if got := sv.ScrollOffset(); got != tt.want {
				t.Errorf("offset = %v, want %v", got, tt.want)
			}
		})
	}

	item := e.NewContainerView()
	_ = item.SetBounds(NewRect(0, 800, 200, 50))
	_ = content.AddChildView(item)
	if !sv.ScrollViewToVisible(item, 0) {
		t.Error("ScrollViewToVisible() reported no change")
	}
	if got := sv.ScrollOffset(); got != (Point{Y: 750}) {
		t.Errorf("offset = %v, want {0 750}", got)
	}

	stranger := e.NewContainerView()
	if sv.ScrollViewToVisible(stranger, 0) {
		t.Error("ScrollViewToVisible() moved for a view outside the content")
	}
}

func TestClipHeightTo(t *testing.T) {
	e := newTestEngine(t)
	parent := newLayoutContainer(t, e, NewRect(0, 0, 300, 600), NewBoxLayout(Vertical))
	sv := e.NewScrollView()
	content := newContent(t, e, 300, 1000)
	_ = sv.SetContentView(content)
	_ = parent.AddChildView(sv)
	below := addFixed(t, parent, Size{Height: 50})

	if err := sv.ClipHeightTo(50, 200); err != nil {
		t.Fatal(err)
	}
	if got := sv.Bounds(); got != NewRect(0, 0, 300, 200) {
		t.Errorf("clipped bounds = %v, want height 200", got)
	}
	if got := below.Bounds().Y; got != 200 {
		t.Errorf("sibling Y = %g, want 200", got)
	}

	// Content shorter than the range sizes the scroll view to the content.
	if err := sv.SetContentSize(Size{Width: 300, Height: 120}); err != nil {
		t.Fatal(err)
	}
	if got := sv.Bounds().Height; got != 120 {
		t.Errorf("height with short content = %g, want 120", got)
	}
	if err := sv.SetContentSize(Size{Width: 300, Height: 10}); err != nil {
		t.Fatal(err)
	}
	if got := sv.Bounds().Height; got != 50 {
		t.Errorf("height with tiny content = %g, want 50", got)
	}

	if err := sv.ClipHeightTo(300, 100); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("ClipHeightTo(max<min) error = %v, want ErrInvalidBounds", err)
	}
	if err := sv.ClipHeightTo(-1, -1); err != nil {
		t.Fatal(err)
	}
	if sv.MinHeight() != -1 || sv.MaxHeight() != -1 {
		t.Errorf("clip range = [%g, %g], want unset", sv.MinHeight(), sv.MaxHeight())
	}
}

func TestParseScrollBarMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ScrollBarMode
		wantErr bool
	}{
		{"enabled", ScrollBarEnabled, false},
		{"Disabled", ScrollBarDisabled, false},
		{"auto", ScrollBarAutomatic, false},
		{"automatic", ScrollBarAutomatic, false},
		{"sometimes", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScrollBarMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScrollBarMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseScrollBarMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
