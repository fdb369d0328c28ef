package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agiangrant/viewkit/retained"
	"github.com/agiangrant/viewkit/scene"
)

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Width(9)

type scrollOptions struct {
	view    string
	offset  string
	by      string
	reveal  string
	padding float32
}

func newScrollCmd(v *viper.Viper) *cobra.Command {
	var opts scrollOptions
	cmd := &cobra.Command{
		Use:   "scroll FILE",
		Short: "Scroll a view in a scene and report where it lands",
		Long: `Build a scene, apply a scroll operation to one of its scroll views and
print the clamped offset, the bars that are showing and the visible part of
the content.

Operations run in order: --offset, then --by, then --reveal.`,
		Example: `  viewkit scroll app.toml --view document --offset 0,5000
  viewkit scroll app.toml --view document --reveal footer --padding 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScroll(cmd, v, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.view, "view", "", "name of the scroll view (required)")
	cmd.Flags().StringVar(&opts.offset, "offset", "", "absolute offset as X,Y")
	cmd.Flags().StringVar(&opts.by, "by", "", "relative scroll as DX,DY")
	cmd.Flags().StringVar(&opts.reveal, "reveal", "", "name of a view to scroll into sight")
	cmd.Flags().Float32Var(&opts.padding, "padding", 0, "margin kept around a revealed view")
	_ = cmd.MarkFlagRequired("view")
	return cmd
}

func runScroll(cmd *cobra.Command, v *viper.Viper, file string, opts scrollOptions) error {
	sess, err := newSession(cmd, v)
	if err != nil {
		return err
	}
	defer sess.close()

	f, err := scene.Load(file)
	if err != nil {
		return err
	}
	e, err := sess.engine()
	if err != nil {
		return err
	}
	s, err := scene.Build(e, f)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	sv, ok := s.ScrollView(opts.view)
	if !ok {
		return fmt.Errorf("%s: no scroll view named %q", file, opts.view)
	}
	if opts.offset != "" {
		p, err := parsePoint(opts.offset)
		if err != nil {
			return fmt.Errorf("--offset: %w", err)
		}
		sv.SetScrollOffset(p)
	}
	if opts.by != "" {
		p, err := parsePoint(opts.by)
		if err != nil {
			return fmt.Errorf("--by: %w", err)
		}
		sv.ScrollBy(p)
	}
	if opts.reveal != "" {
		target := s.View(opts.reveal)
		if target == nil {
			return fmt.Errorf("%s: no view named %q", file, opts.reveal)
		}
		if !sv.ScrollViewToVisible(target, opts.padding) {
			sess.logger.Info("view already visible", "view", opts.reveal)
		}
	}

	printScrollState(cmd.OutOrStdout(), opts.view, sv)
	return nil
}

func printScrollState(w io.Writer, name string, sv *retained.ScrollView) {
	row := func(label, format string, args ...any) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render(label), fmt.Sprintf(format, args...))
	}
	off, limit := sv.ScrollOffset(), sv.MaxScrollOffset()
	content, viewport := sv.ContentSize(), sv.Viewport()
	row("view", "%s", name)
	row("content", "%gx%g", content.Width, content.Height)
	row("viewport", "%gx%g", viewport.Width, viewport.Height)
	row("bars", "horizontal=%t vertical=%t", sv.HorizontalScrollBarVisible(), sv.VerticalScrollBarVisible())
	row("offset", "%g,%g", off.X, off.Y)
	row("max", "%g,%g", limit.X, limit.Y)
	row("visible", "%v", sv.VisibleRect())
}

// parsePoint parses "X,Y".
func parsePoint(s string) (retained.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return retained.Point{}, fmt.Errorf("want X,Y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return retained.Point{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return retained.Point{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return retained.Point{X: float32(x), Y: float32(y)}, nil
}
