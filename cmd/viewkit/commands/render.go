package commands

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/agiangrant/viewkit/retained"
	"github.com/agiangrant/viewkit/scene"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hiddenStyle  = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	enumStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).MarginRight(1)
	fileStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// renderTree draws the scene as a lipgloss tree, one node per view.
func renderTree(s *scene.Scene) string {
	t := viewTree(s, s.Root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)
	return t.String()
}

func viewTree(s *scene.Scene, v *retained.View) *tree.Tree {
	t := tree.Root(viewLabel(s, v))
	for _, c := range v.Children() {
		if len(c.Children()) == 0 {
			t.Child(viewLabel(s, c))
			continue
		}
		t.Child(viewTree(s, c))
	}
	return t
}

func viewLabel(s *scene.Scene, v *retained.View) string {
	label := summaryStyle.Render(v.Summary())
	if name := s.NameOf(v); name != "" {
		label = nameStyle.Render(name) + " " + label
	}
	if swatch := colorSwatch(v); swatch != "" {
		label = swatch + " " + label
	}
	if !v.Visible() {
		label = hiddenStyle.Render(label)
	}
	return label
}

func colorSwatch(v *retained.View) string {
	c, ok := v.BackgroundColor()
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()[:7])).Render("  ")
}
