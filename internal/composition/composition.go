package composition

import (
	"errors"
	"fmt"
)

// Composition errors
var (
	ErrInvalidComposition = errors.New("invalid composition")
	ErrDuplicateID        = errors.New("composition already registered")
	ErrNotFound           = errors.New("composition not found")
	ErrFrameOutOfRange    = errors.New("frame out of range")
)

// Scene is a named span of frames, End exclusive
type Scene struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// Contains reports whether frame falls inside the scene
func (s Scene) Contains(frame int) bool {
	return frame >= s.Start && frame < s.End
}

// EvalFunc computes a layer's properties at an absolute frame
type EvalFunc func(frame, fps int) map[string]any

// Layer is one element of a composition. It is rendered while
// Start <= frame < End; an End of zero lasts until the composition ends.
type Layer struct {
	Name  string
	Start int
	End   int
	Eval  EvalFunc
}

func (l Layer) active(frame, duration int) bool {
	end := l.End
	if end == 0 {
		end = duration
	}
	return frame >= l.Start && frame < end
}

// Composition is a fixed-length video described as pure functions of frame
type Composition struct {
	ID               string
	Title            string
	DurationInFrames int
	FPS              int
	Width            int
	Height           int
	DefaultProps     map[string]any
	Scenes           []Scene
	Layers           []Layer
}

// LayerState is a layer evaluated at one frame
type LayerState struct {
	Name  string         `json:"name" yaml:"name"`
	Props map[string]any `json:"props" yaml:"props"`
}

// FrameState is everything visible at one frame
type FrameState struct {
	Frame   int          `json:"frame" yaml:"frame"`
	Seconds float64      `json:"seconds" yaml:"seconds"`
	Scene   string       `json:"scene" yaml:"scene"`
	Layers  []LayerState `json:"layers" yaml:"layers"`
}

// Metadata describes a composition without evaluating it
type Metadata struct {
	ID               string         `json:"id" yaml:"id"`
	Title            string         `json:"title" yaml:"title"`
	DurationInFrames int            `json:"duration_in_frames" yaml:"duration_in_frames"`
	DurationSeconds  float64        `json:"duration_seconds" yaml:"duration_seconds"`
	FPS              int            `json:"fps" yaml:"fps"`
	Width            int            `json:"width" yaml:"width"`
	Height           int            `json:"height" yaml:"height"`
	DefaultProps     map[string]any `json:"default_props" yaml:"default_props"`
	Scenes           []Scene        `json:"scenes" yaml:"scenes"`
}

// Metadata returns the composition's static description
func (c *Composition) Metadata() Metadata {
	props := c.DefaultProps
	if props == nil {
		props = map[string]any{}
	}
	return Metadata{
		ID:               c.ID,
		Title:            c.Title,
		DurationInFrames: c.DurationInFrames,
		DurationSeconds:  float64(c.DurationInFrames) / float64(c.FPS),
		FPS:              c.FPS,
		Width:            c.Width,
		Height:           c.Height,
		DefaultProps:     props,
		Scenes:           c.Scenes,
	}
}

// SceneAt returns the scene containing frame
func (c *Composition) SceneAt(frame int) (Scene, bool) {
	for _, s := range c.Scenes {
		if s.Contains(frame) {
			return s, true
		}
	}
	return Scene{}, false
}

// Frame evaluates every active layer at frame n
func (c *Composition) Frame(n int) (*FrameState, error) {
	if n < 0 || n >= c.DurationInFrames {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, n, c.DurationInFrames)
	}

	state := &FrameState{
		Frame:   n,
		Seconds: float64(n) / float64(c.FPS),
		Layers:  []LayerState{},
	}
	if s, ok := c.SceneAt(n); ok {
		state.Scene = s.Name
	}

	for _, l := range c.Layers {
		if !l.active(n, c.DurationInFrames) {
			continue
		}
		props := map[string]any{}
		if l.Eval != nil {
			if p := l.Eval(n, c.FPS); p != nil {
				props = p
			}
		}
		state.Layers = append(state.Layers, LayerState{Name: l.Name, Props: props})
	}
	return state, nil
}

// Validate checks the composition's shape
func (c *Composition) Validate() error {
	var errs []error
	if c.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if c.DurationInFrames <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %d", c.DurationInFrames))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}

	prevEnd := 0
	for i, s := range c.Scenes {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("scene %d: name is required", i))
		}
		if s.End <= s.Start {
			errs = append(errs, fmt.Errorf("scene %q: end %d not after start %d", s.Name, s.End, s.Start))
		}
		if s.Start < prevEnd {
			errs = append(errs, fmt.Errorf("scene %q: starts at %d before previous scene ends at %d", s.Name, s.Start, prevEnd))
		}
		if s.Start < 0 || s.End > c.DurationInFrames {
			errs = append(errs, fmt.Errorf("scene %q: [%d, %d) outside duration %d", s.Name, s.Start, s.End, c.DurationInFrames))
		}
		prevEnd = s.End
	}

	seen := make(map[string]bool, len(c.Layers))
	for i, l := range c.Layers {
		switch {
		case l.Name == "":
			errs = append(errs, fmt.Errorf("layer %d: name is required", i))
		case seen[l.Name]:
			errs = append(errs, fmt.Errorf("layer %q: duplicate name", l.Name))
		}
		seen[l.Name] = true
		if l.End != 0 && l.End <= l.Start {
			errs = append(errs, fmt.Errorf("layer %q: end %d not after start %d", l.Name, l.End, l.Start))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidComposition, c.ID, errors.Join(errs...))
	}
	return nil
}
