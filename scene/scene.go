// Package scene decodes declarative TOML scene files into a retained view
// tree.
//
//	[root]
//	kind = "container"
//	bounds = [0, 0, 1000, 300]
//	[root.layout]
//	orientation = "horizontal"
//	spacing = 20
//	[[root.children]]
//	kind = "surface"
//	name = "a"
//	preferred = [400, 300]
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/viewkit/retained"
)

// ErrInvalidScene is returned for scene files that decode but describe an
// impossible tree.
var ErrInvalidScene = errors.New("invalid scene")

// Node kinds.
const (
	KindContainer = "container"
	KindScroll    = "scroll"
	KindSurface   = "surface"
)

// File is a decoded scene file.
type File struct {
	Root *Node `toml:"root"`
}

// Node describes one view. Fields that do not apply to the node's kind must
// be left empty.
type Node struct {
	Kind       string         `toml:"kind"`
	Name       string         `toml:"name"`
	Bounds     []float32      `toml:"bounds"`
	Preferred  []float32      `toml:"preferred"`
	Background string         `toml:"background"`
	Flex       float32        `toml:"flex"`
	Visible    *bool          `toml:"visible"`
	Class      string         `toml:"class"`
	Properties map[string]any `toml:"properties"`

	// container
	Layout   *Layout `toml:"layout"`
	Children []Node  `toml:"children"`

	// scroll
	Content       *Node     `toml:"content"`
	HorizontalBar string    `toml:"horizontal_bar"`
	VerticalBar   string    `toml:"vertical_bar"`
	Offset        []float32 `toml:"offset"`
	ClipHeight    []float32 `toml:"clip_height"`
}

// Layout mirrors retained.BoxLayout.
type Layout struct {
	Orientation          retained.Orientation `toml:"orientation"`
	Spacing              float32              `toml:"spacing"`
	Insets               Insets               `toml:"insets"`
	MinimumCrossAxisSize float32              `toml:"minimum_cross_axis_size"`
}

type Insets struct {
	Top    float32 `toml:"top"`
	Left   float32 `toml:"left"`
	Bottom float32 `toml:"bottom"`
	Right  float32 `toml:"right"`
}

// BoxLayout converts to the engine type.
func (l Layout) BoxLayout() retained.BoxLayout {
	return retained.BoxLayout{
		Orientation: l.Orientation,
		Spacing:     l.Spacing,
		Insets: retained.Insets{
			Top:    l.Insets.Top,
			Left:   l.Insets.Left,
			Bottom: l.Insets.Bottom,
			Right:  l.Insets.Right,
		},
		MinimumCrossAxisSize: l.MinimumCrossAxisSize,
	}
}

// Load reads and decodes a scene file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a scene from r. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidScene, strict.String())
		}
		return nil, err
	}
	if f.Root == nil {
		return nil, fmt.Errorf("%w: missing [root]", ErrInvalidScene)
	}
	return &f, nil
}
