package retained

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/agiangrant/viewkit/style"
)

func TestPropertyBag(t *testing.T) {
	e := newTestEngine(t)
	v := e.NewContainerView()

	if got := v.Property("missing"); got.IsSet() {
		t.Errorf("Property(missing) = %v, want unset", got)
	}

	_ = v.SetStringProperty("cornerRadius", "large")
	_ = v.SetNumericProperty("opacity", 0.5)
	_ = v.SetNumericProperty("cornerRadius", 8)
	_ = v.SetStringProperty("col1", "a")
	_ = v.SetStringProperty("col2", "b")

	if got := v.Property("cornerRadius"); got.Kind() != style.KindNumber || got.Number() != 8 {
		t.Errorf("Property(cornerRadius) = %v, want number 8", got)
	}
	if got, want := v.PropertyKeys(), []string{"cornerRadius", "opacity", "col1", "col2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PropertyKeys() = %v, want %v", got, want)
	}
}

func TestInterpretedProperties(t *testing.T) {
	e := newTestEngine(t)
	root := newLayoutContainer(t, e, NewRect(0, 0, 400, 100), NewBoxLayout(Horizontal))
	fixed := addFixed(t, root, Size{Width: 100})
	grow := e.NewContainerView()
	_ = root.AddChildView(grow)

	if err := grow.SetNumericProperty("flex", 1); err != nil {
		t.Fatal(err)
	}
	if got := grow.Bounds().Width; got != 300 {
		t.Errorf("flex child width = %g, want 300", got)
	}

	if err := fixed.SetStringProperty("width", "150"); err != nil {
		t.Fatal(err)
	}
	if got := grow.Bounds(); got != NewRect(150, 0, 250, 100) {
		t.Errorf("flex child after width change = %v", got)
	}

	if err := root.SetNumericProperty("spacing", 10); err != nil {
		t.Fatal(err)
	}
	if got := grow.Bounds(); got != NewRect(160, 0, 240, 100) {
		t.Errorf("flex child after spacing change = %v", got)
	}

	if err := fixed.SetStringProperty("background-color", "#1F2937"); err != nil {
		t.Fatal(err)
	}
	if c, ok := fixed.BackgroundColor(); !ok || c.Hex() != "#1F2937" {
		t.Errorf("BackgroundColor() = %v, %v", c, ok)
	}

	if err := fixed.SetStringProperty("visible", "false"); err != nil {
		t.Fatal(err)
	}
	if got := grow.Bounds().X; got != 0 {
		t.Errorf("flex child X after hiding sibling = %g, want 0", got)
	}
}

func TestInterpretedPropertyErrors(t *testing.T) {
	tests := []struct {
		name    string
		set     func(v *View) error
		wantErr error
	}{
		{"bad colour", func(v *View) error { return v.SetStringProperty("backgroundColor", "#12") }, ErrInvalidColor},
		{"numeric colour", func(v *View) error { return v.SetNumericProperty("backgroundColor", 3) }, ErrInvalidColor},
		{"text flex", func(v *View) error { return v.SetStringProperty("flex", "lots") }, ErrInvalidConfig},
		{"negative flex", func(v *View) error { return v.SetNumericProperty("flex", -1) }, ErrInvalidConfig},
		{"negative width", func(v *View) error { return v.SetNumericProperty("width", -5) }, ErrInvalidBounds},
		{"NaN flex", func(v *View) error { return v.SetNumericProperty("flex", float32(math.NaN())) }, ErrInvalidConfig},
		{"infinite width", func(v *View) error { return v.SetNumericProperty("width", float32(math.Inf(1))) }, ErrInvalidConfig},
		{"NaN spacing", func(v *View) error { return v.SetNumericProperty("spacing", float32(math.NaN())) }, ErrInvalidConfig},
		{"text infinity padding", func(v *View) error { return v.SetStringProperty("padding", "+Inf") }, ErrInvalidConfig},
		{"numeric class", func(v *View) error { return v.SetNumericProperty("class", 1) }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			v := e.NewContainerView()
			err := tt.set(v.View)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if n := len(v.PropertyKeys()); n != 0 {
				t.Errorf("rejected value was stored (%d keys)", n)
			}
		})
	}
}

func TestClassProperty(t *testing.T) {
	e := newTestEngine(t)
	root := e.NewContainerView()
	_ = root.SetBounds(NewRect(0, 0, 300, 500))

	if err := root.SetStringProperty("class", "flex-col gap-5 p-[20px] bg-[#0EA5E9]"); err != nil {
		t.Fatal(err)
	}
	l, ok := root.BoxLayout()
	if !ok {
		t.Fatal("class did not attach a box layout")
	}
	want := BoxLayout{Orientation: Vertical, Spacing: 20, Insets: InsetsAll(20)}
	if l != want {
		t.Errorf("BoxLayout() = %+v, want %+v", l, want)
	}
	if c, ok := root.BackgroundColor(); !ok || c.Hex() != "#0EA5E9" {
		t.Errorf("BackgroundColor() = %v, %v", c, ok)
	}

	a := e.NewContainerView()
	_ = a.SetStringProperty("class", "h-10")
	b := e.NewContainerView()
	_ = b.SetStringProperty("class", "flex-1")
	_ = root.AddChildView(a)
	_ = root.AddChildView(b)

	if got := a.Bounds(); got != NewRect(20, 20, 260, 40) {
		t.Errorf("a bounds = %v", got)
	}
	if got := b.Bounds(); got != NewRect(20, 80, 260, 400) {
		t.Errorf("b bounds = %v", got)
	}
}

func TestInterpretedKeySpellingsShareEntry(t *testing.T) {
	e := newTestEngine(t)
	v := e.NewContainerView()

	if err := v.SetStringProperty("backgroundColor", "#111111"); err != nil {
		t.Fatal(err)
	}
	if err := v.SetStringProperty("background-color", "#222222"); err != nil {
		t.Fatal(err)
	}
	if got, want := v.PropertyKeys(), []string{"backgroundColor"}; !reflect.DeepEqual(got, want) {
		t.Errorf("PropertyKeys() = %v, want %v", got, want)
	}
	for _, key := range []string{"backgroundColor", "background-color", "BACKGROUND_COLOR"} {
		if got := v.Property(key).Text(); got != "#222222" {
			t.Errorf("Property(%q) = %q, want #222222", key, got)
		}
	}
	if c, ok := v.BackgroundColor(); !ok || c.Hex() != "#222222" {
		t.Errorf("BackgroundColor() = %v, %v, want #222222", c, ok)
	}
}

func TestClassPropertySkipsNonFinite(t *testing.T) {
	e := newTestEngine(t)
	root := e.NewContainerView()
	_ = root.SetBounds(NewRect(0, 0, 300, 50))

	if err := root.SetStringProperty("class", "flex-row gap-NaN"); err != nil {
		t.Fatal(err)
	}
	addFixed(t, root, Size{Width: 100, Height: 50})
	b := addFixed(t, root, Size{Width: 100, Height: 50})

	l, ok := root.BoxLayout()
	if !ok {
		t.Fatal("class did not attach a box layout")
	}
	if l.Spacing != 0 {
		t.Errorf("Spacing = %g, want 0", l.Spacing)
	}
	if got := b.Bounds().X; got != 100 {
		t.Errorf("second child X = %g, want 100", got)
	}
}

func TestApplyClassesIsAtomic(t *testing.T) {
	e := newTestEngine(t)
	v := e.NewContainerView()
	_ = v.SetPreferredSize(Size{Width: 10, Height: 10})

	two, negative, wide := float32(2), float32(-1), float32(50)
	err := v.applyClasses(style.Classes{Flex: &two, Width: &wide, Gap: &negative})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("applyClasses() error = %v, want ErrInvalidConfig", err)
	}
	if _, ok := v.BoxLayout(); ok {
		t.Error("rejected classes installed a box layout")
	}
	if got := v.Flex(); got != 0 {
		t.Errorf("Flex() = %g, want 0", got)
	}
	if got, _ := v.PreferredSize(); got != (Size{Width: 10, Height: 10}) {
		t.Errorf("PreferredSize() = %v, want 10x10", got)
	}
}
