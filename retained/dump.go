package retained

import (
	"fmt"
	"strings"
)

// Describe returns one line per view in v's subtree, indented by depth.
// Scroll views also report offset, bars and viewport.
func (v *View) Describe() string {
	var b strings.Builder
	v.Walk(func(n *View, depth int) bool {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Summary())
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// Summary is the single-line description used by Describe.
func (v *View) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s#%d %v", v.kind, v.id, v.bounds)
	if !v.visible {
		b.WriteString(" hidden")
	}
	if v.flex > 0 {
		fmt.Fprintf(&b, " flex=%g", v.flex)
	}
	if v.background != nil {
		fmt.Fprintf(&b, " bg=%s", v.background.Hex())
	}
	if l := v.layout; l != nil {
		fmt.Fprintf(&b, " layout=%s spacing=%g", l.Orientation, l.Spacing)
	}
	if st := v.scroll; st != nil {
		fmt.Fprintf(&b, " offset=(%g,%g) viewport=%gx%g bars=%s",
			st.offset.X, st.offset.Y, st.viewport.Width, st.viewport.Height, barString(st.hVisible, st.vVisible))
	}
	return b.String()
}

func barString(h, v bool) string {
	switch {
	case h && v:
		return "hv"
	case h:
		return "h"
	case v:
		return "v"
	}
	return "-"
}
