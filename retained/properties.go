package retained

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agiangrant/viewkit/style"
)

// Keys the engine interprets, after style.NormalizeKey.
const (
	propBackgroundColor = "backgroundcolor"
	propFlex            = "flex"
	propWidth           = "width"
	propHeight          = "height"
	propClass           = "class"
	propSpacing         = "spacing"
	propGap             = "gap"
	propPadding         = "padding"
	propVisible         = "visible"
)

func interpreted(norm string) bool {
	switch norm {
	case propBackgroundColor, propFlex, propWidth, propHeight, propClass,
		propSpacing, propGap, propPadding, propVisible:
		return true
	}
	return false
}

// SetStringProperty upserts a text property. Interpreted keys take effect
// immediately; a value they cannot use is rejected and not stored. Spellings
// of one interpreted key ("backgroundColor", "background-color") share a
// single entry stored under the first spelling written. Other keys are kept
// verbatim with no effect.
func (v *View) SetStringProperty(key, value string) error {
	return v.setProperty(key, style.Text(value))
}

// SetNumericProperty upserts a numeric property. See SetStringProperty.
func (v *View) SetNumericProperty(key string, value float32) error {
	return v.setProperty(key, style.Number(value))
}

func (v *View) setProperty(key string, val style.Value) error {
	if v.released {
		return nil
	}
	if err := v.applyProperty(style.NormalizeKey(key), val); err != nil {
		return fmt.Errorf("set property %q on view %d: %w", key, v.id, err)
	}
	v.bag().Set(v.storedKey(key), val)
	return nil
}

// storedKey returns the bag key for key: for interpreted keys, the spelling
// already holding the same normalised key, if any.
func (v *View) storedKey(key string) string {
	if v.props == nil {
		return key
	}
	if _, ok := v.props.Lookup(key); ok {
		return key
	}
	norm := style.NormalizeKey(key)
	if !interpreted(norm) {
		return key
	}
	for _, k := range v.props.Keys() {
		if style.NormalizeKey(k) == norm {
			return k
		}
	}
	return key
}

// Property returns the value stored under key, or the zero Value. Any
// spelling of an interpreted key finds its entry.
func (v *View) Property(key string) style.Value {
	return v.props.Get(v.storedKey(key))
}

// PropertyKeys returns the property keys in first-write order.
func (v *View) PropertyKeys() []string {
	return v.props.Keys()
}

// EachProperty calls fn for every property in first-write order.
func (v *View) EachProperty(fn func(key string, val style.Value)) {
	v.props.Each(fn)
}

func (v *View) bag() *style.Bag {
	if v.props == nil {
		v.props = style.NewBag()
	}
	return v.props
}

func (v *View) applyProperty(key string, val style.Value) error {
	switch key {
	case propBackgroundColor:
		if val.Kind() != style.KindText {
			return fmt.Errorf("%w: background colour must be text", ErrInvalidColor)
		}
		return v.SetBackgroundColor(val.Text())
	case propFlex:
		n, err := numeric(val)
		if err != nil {
			return err
		}
		return v.SetFlex(n)
	case propWidth, propHeight:
		n, err := numeric(val)
		if err != nil {
			return err
		}
		s, _ := v.PreferredSize()
		if key == propWidth {
			s.Width = n
		} else {
			s.Height = n
		}
		return v.SetPreferredSize(s)
	case propVisible:
		switch val.Kind() {
		case style.KindNumber:
			v.SetVisible(val.Number() != 0)
		default:
			b, err := strconv.ParseBool(strings.TrimSpace(val.Text()))
			if err != nil {
				return fmt.Errorf("%w: visible %s", ErrInvalidConfig, val)
			}
			v.SetVisible(b)
		}
	case propSpacing, propGap:
		n, err := numeric(val)
		if err != nil {
			return err
		}
		return v.updateLayout(func(l *BoxLayout) { l.Spacing = n })
	case propPadding:
		n, err := numeric(val)
		if err != nil {
			return err
		}
		return v.updateLayout(func(l *BoxLayout) { l.Insets = InsetsAll(n) })
	case propClass:
		if val.Kind() != style.KindText {
			return fmt.Errorf("%w: class must be text", ErrInvalidConfig)
		}
		return v.applyClasses(style.ParseClasses(val.Text()))
	}
	return nil
}

// numeric accepts a number, or text that parses as one.
func numeric(val style.Value) (float32, error) {
	var n float32
	switch val.Kind() {
	case style.KindNumber:
		n = val.Number()
	case style.KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(val.Text()), 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not a number", ErrInvalidConfig, val)
		}
		n = float32(f)
	default:
		return 0, fmt.Errorf("%w: empty value", ErrInvalidConfig)
	}
	if !finite(n) {
		return 0, fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, val)
	}
	return n, nil
}

// updateLayout edits the box layout of a layout container. Views without a
// layout keep the property with no effect.
func (v *View) updateLayout(edit func(*BoxLayout)) error {
	if v.layout == nil {
		return nil
	}
	l := *v.layout
	edit(&l)
	if err := l.Validate(); err != nil {
		return err
	}
	v.layout = &l
	v.relayout()
	return nil
}

// applyClasses applies parsed utility classes. Layout classes give a plain
// container a box layout when it has none. Every value is checked before
// any is applied, so a rejected class string changes nothing.
func (v *View) applyClasses(c style.Classes) error {
	flex := v.flex
	if c.Flex != nil {
		flex = *c.Flex
		if !extent(flex) {
			return fmt.Errorf("%w: flex %g", ErrInvalidConfig, flex)
		}
	}

	pref, hasPref := v.PreferredSize()
	sized := c.Width != nil || c.Height != nil
	if sized {
		setIf(&pref.Width, c.Width)
		setIf(&pref.Height, c.Height)
		if !pref.valid() {
			return fmt.Errorf("preferred size %+v: %w", pref, ErrInvalidBounds)
		}
		hasPref = true
	}

	var layout *BoxLayout
	touchesLayout := c.Vertical != nil || c.Gap != nil ||
		c.PaddingTop != nil || c.PaddingRight != nil || c.PaddingBottom != nil || c.PaddingLeft != nil
	if touchesLayout && v.kind == KindContainer {
		var l BoxLayout
		if v.layout != nil {
			l = *v.layout
		}
		if c.Vertical != nil {
			l.Orientation = Horizontal
			if *c.Vertical {
				l.Orientation = Vertical
			}
		}
		setIf(&l.Spacing, c.Gap)
		setIf(&l.Insets.Top, c.PaddingTop)
		setIf(&l.Insets.Right, c.PaddingRight)
		setIf(&l.Insets.Bottom, c.PaddingBottom)
		setIf(&l.Insets.Left, c.PaddingLeft)
		if err := l.Validate(); err != nil {
			return err
		}
		layout = &l
	}

	if c.Background != nil {
		bg := *c.Background
		v.background = &bg
	}
	hintChanged := flex != v.flex || sized
	if c.Hidden != nil && v.visible == *c.Hidden {
		v.visible = !*c.Hidden
		hintChanged = true
	}
	v.flex = flex
	v.preferred, v.hasPreferred = pref, hasPref
	if layout != nil {
		v.layout = layout
		v.relayout()
	}
	if hintChanged {
		v.parentRelayout()
	}
	return nil
}

func setIf(dst *float32, src *float32) {
	if src != nil {
		*dst = *src
	}
}
