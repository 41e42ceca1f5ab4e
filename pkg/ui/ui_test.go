package ui

import (
	"math"
	"testing"
)

func TestSlider_ValueAt(t *testing.T) {
	tests := []struct {
		name string
		min  float64
		max  float64
		step float64
		x    float64
		want float64
	}{
		{"left edge", 5, 50, 1, 0, 5},
		{"right edge", 5, 50, 1, 100, 50},
		{"middle snaps to integer", 5, 50, 1, 50, 28},
		{"hundredths", 0, 1, 0.01, 33.333, 0.33},
		{"no step", 0, 1, 0, 25, 0.25},
		{"past the right edge clamps", 10, 500, 1, 150, 500},
		{"before the left edge clamps", 10, 500, 1, -20, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(0, 0, 100, "v", tt.min, tt.max, tt.min).WithStep(tt.step, "")
			if got := s.ValueAt(tt.x); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ValueAt(%v) = %v; want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestSlider_Text(t *testing.T) {
	s := NewSlider(0, 0, 100, "Noise Level", 0, 1, 0.2).WithStep(0.01, "%.2f")
	if got, want := s.Text(), "Noise Level: 0.20"; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
	r := NewSlider(0, 0, 100, "Interaction Radius", 5, 50, 20)
	if got, want := r.Text(), "Interaction Radius: 20"; got != want {
		t.Errorf("Text() = %q; want %q", got, want)
	}
	if r.Int() != 20 {
		t.Errorf("Int() = %d; want 20", r.Int())
	}
}

func TestNewSlider_ClampsInitialValue(t *testing.T) {
	if s := NewSlider(0, 0, 100, "n", 10, 500, 900); s.Value != 500 {
		t.Errorf("Value = %v; want 500", s.Value)
	}
}

func TestButton_FiresOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(10, 10, 50, 20, "Reset", func() { clicks++ })
	frames := []struct{ over, down bool }{
		{true, true}, {true, true}, {true, false}, {true, true}, {false, true}, {true, true},
	}
	for _, f := range frames {
		b.Press(f.over, f.down)
	}
	if clicks != 3 {
		t.Errorf("clicks = %d; want 3", clicks)
	}
	if !b.Contains(35, 20) || b.Contains(5, 20) {
		t.Error("Contains() disagrees with the button rectangle")
	}
}

func TestPanel_Layout(t *testing.T) {
	p := NewPanel(360, 10, 200, "Vicsek")
	p.AddSection("Model")
	radius := p.AddSlider("Interaction Radius", 5, 50, 20)
	noise := p.AddSlider("Noise Level", 0, 1, 0.2)
	p.AddSection("Run")
	pause := p.AddCheckbox("Paused", false)
	reset := p.AddButton("Reset", nil)
	p.AddText(func() string { return "order" })

	if radius.X != 370 || radius.W != 180 {
		t.Errorf("slider at x=%v w=%v; want 370/180", radius.X, radius.W)
	}
	if noise.Y-radius.Y != sliderHeight {
		t.Errorf("slider spacing = %v; want %v", noise.Y-radius.Y, sliderHeight)
	}
	if pause.Y <= noise.Y+noise.H || reset.Y <= pause.Y {
		t.Errorf("rows overlap: slider %v, checkbox %v, button %v", noise.Y, pause.Y, reset.Y)
	}

	want := titleHeight + 2*sectionHeight + 2*sliderHeight + checkboxHeight + buttonHeight + textHeight + margin
	if got := p.Height(); got != want {
		t.Errorf("Height() = %v; want %v", got, want)
	}
	if !p.Contains(400, 20) || p.Contains(10, 20) {
		t.Error("Contains() disagrees with the panel rectangle")
	}
}
