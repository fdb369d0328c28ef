package retained

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
)

// ReparentPolicy decides what an add does with a child that is still
// attached elsewhere.
type ReparentPolicy int

const (
	// ReparentAutoDetach silently detaches the child from its old parent.
	ReparentAutoDetach ReparentPolicy = iota
	// ReparentStrict rejects the add with ErrAlreadyParented.
	ReparentStrict
)

func (p ReparentPolicy) String() string {
	if p == ReparentStrict {
		return "strict"
	}
	return "auto-detach"
}

// ParseReparentPolicy parses "auto-detach" or "strict".
func ParseReparentPolicy(s string) (ReparentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto-detach", "auto":
		return ReparentAutoDetach, nil
	case "strict":
		return ReparentStrict, nil
	}
	return 0, fmt.Errorf("%w: unknown reparent policy %q", ErrInvalidConfig, s)
}

func (p ReparentPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *ReparentPolicy) UnmarshalText(b []byte) error {
	v, err := ParseReparentPolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// DefaultScrollBarThickness is the viewport space a visible bar reserves.
const DefaultScrollBarThickness float32 = 15

// Config holds engine-wide settings.
type Config struct {
	// ScrollBarThickness is subtracted from a scroll view's viewport for
	// every visible bar.
	ScrollBarThickness float32 `toml:"scrollbar_thickness"`

	ReparentPolicy ReparentPolicy `toml:"reparent_policy"`

	// DefaultScrollBarMode applies to both axes of new scroll views.
	DefaultScrollBarMode ScrollBarMode `toml:"default_scrollbar_mode"`
}

// DefaultConfig returns the settings used when none are supplied.
func DefaultConfig() Config {
	return Config{
		ScrollBarThickness:   DefaultScrollBarThickness,
		ReparentPolicy:       ReparentAutoDetach,
		DefaultScrollBarMode: ScrollBarEnabled,
	}
}

// Validate checks the config for impossible values.
func (c Config) Validate() error {
	if c.ScrollBarThickness < 0 {
		return fmt.Errorf("%w: scrollbar thickness %g", ErrInvalidConfig, c.ScrollBarThickness)
	}
	return nil
}

// Engine creates views and keeps the registry of live ones. It replaces any
// process-wide state: every view belongs to exactly one Engine.
//
// An Engine and its views are confined to one goroutine. Separate engines
// share nothing and may run on separate goroutines.
type Engine struct {
	cfg      Config
	log      *slog.Logger
	views    map[ViewID]*View
	surfaces map[ContentSurface]*View
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine(cfg Config, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		cfg:      cfg,
		log:      logger,
		views:    make(map[ViewID]*View),
		surfaces: make(map[ContentSurface]*View),
	}, nil
}

// Config returns the engine settings.
func (e *Engine) Config() Config { return e.cfg }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.log }

// NewContainerView creates a detached container with no layout.
func (e *Engine) NewContainerView() *ContainerView {
	c := &ContainerView{}
	c.View = e.newView(KindContainer, c)
	return c
}

// NewScrollView creates a detached scroll view with no content.
func (e *Engine) NewScrollView() *ScrollView {
	s := &ScrollView{}
	s.View = e.newView(KindScrollView, s)
	s.scroll = &scrollState{
		hMode:   e.cfg.DefaultScrollBarMode,
		vMode:   e.cfg.DefaultScrollBarMode,
		clipMin: -1,
		clipMax: -1,
	}
	return s
}

func (e *Engine) newView(kind Kind, handle Node) *View {
	v := &View{
		id:      newViewID(),
		kind:    kind,
		engine:  e,
		handle:  handle,
		visible: true,
	}
	e.views[v.id] = v
	e.log.Debug("view created", "id", v.id, "kind", kind)
	return v
}

// ViewByID returns a live view, or nil.
func (e *Engine) ViewByID(id ViewID) *View {
	return e.views[id]
}

// Views returns every live view ordered by ID.
func (e *Engine) Views() []*View {
	out := make([]*View, 0, len(e.views))
	for _, v := range e.views {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (e *Engine) unregister(v *View) {
	delete(e.views, v.id)
	if v.surface != nil {
		delete(e.surfaces, v.surface)
	}
}
