package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal value picker. Values snap to Step when it is set.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	Step     float64
	X, Y     float64
	W, H     float64

	// Format renders Value in the label, "%.0f" when empty.
	Format string

	changed bool
}

// NewSlider creates a slider; value is clamped into [min, max].
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     10,
	}
	s.Value = s.quantize(value)
	return s
}

// WithStep sets the snapping step and returns the slider.
func (s *Slider) WithStep(step float64, format string) *Slider {
	s.Step = step
	s.Format = format
	s.Value = s.quantize(s.Value)
	return s
}

// Text is the label followed by the current value.
func (s *Slider) Text() string {
	format := s.Format
	if format == "" {
		format = "%.0f"
	}
	return fmt.Sprintf("%s: "+format, s.Label, s.Value)
}

// Int returns the value rounded to the nearest integer.
func (s *Slider) Int() int {
	return int(math.Round(s.Value))
}

// Changed reports whether the last Update moved the value.
func (s *Slider) Changed() bool {
	return s.changed
}

// Contains reports whether the point lies on the slider track.
func (s *Slider) Contains(x, y float64) bool {
	return x >= s.X && x <= s.X+s.W && y >= s.Y && y <= s.Y+s.H
}

// ValueAt maps a horizontal cursor position to a snapped value.
func (s *Slider) ValueAt(x float64) float64 {
	p := (x - s.X) / s.W
	return s.quantize(s.Min + p*(s.Max-s.Min))
}

func (s *Slider) quantize(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	s.changed = false
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if !s.Contains(float64(mx), float64(my)) {
		return
	}
	if v := s.ValueAt(float64(mx)); v != s.Value {
		s.Value = v
		s.changed = true
	}
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}
