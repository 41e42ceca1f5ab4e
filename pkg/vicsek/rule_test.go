package vicsek

import (
	"math"
	"testing"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"
)

func TestNeighborRule_Interact(t *testing.T) {
	rule := NeighborRule{Radius: 20, BodySize: 5, PersonalSpace: 10}
	self := geometry.Vector2D{X: 100, Y: 100}
	otherVel := geometry.Vector2D{X: 0, Y: 1}

	tests := []struct {
		name         string
		dx           float64 // other sits at self + (dx, 0)
		wantNeighbor bool
		wantPush     float64 // signed X displacement of self
	}{
		{"far away", 30, false, 0},
		{"on the radius", 20, false, 0},
		{"alignment only", 15, true, 0},
		{"on personal space edge", 10, true, 0},
		{"soft band middle", 7.5, true, -0.5},
		{"soft band near body", 6, true, -0.8},
		{"on body surface", 5, true, 0},
		{"hard band", 2.5, true, -2.5},
		{"hard band deep", 1, true, -4},
		{"other on the left", -2.5, true, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := self.Add(geometry.Vector2D{X: tt.dx})
			in := rule.Interact(self, other, otherVel)

			if in.Coincident {
				t.Fatal("Coincident = true")
			}
			if math.Abs(in.Distance-math.Abs(tt.dx)) > 1e-12 {
				t.Errorf("Distance = %v; want %v", in.Distance, math.Abs(tt.dx))
			}
			if in.Neighbor != tt.wantNeighbor {
				t.Errorf("Neighbor = %v; want %v", in.Neighbor, tt.wantNeighbor)
			}
			if in.Neighbor && !in.Alignment.Eq(otherVel) {
				t.Errorf("Alignment = %v; want %v", in.Alignment, otherVel)
			}
			want := geometry.Vector2D{X: tt.wantPush}
			if math.Abs(in.Push.X-want.X) > 1e-12 || math.Abs(in.Push.Y) > 1e-12 {
				t.Errorf("Push = %v; want %v", in.Push, want)
			}
		})
	}
}

func TestNeighborRule_Coincident(t *testing.T) {
	rule := NeighborRule{Radius: 20, BodySize: 5, PersonalSpace: 10}
	p := geometry.Vector2D{X: 3, Y: 4}
	in := rule.Interact(p, p, geometry.Vector2D{X: 1})

	if !in.Coincident {
		t.Fatal("Coincident = false for identical positions")
	}
	if in.Neighbor || !in.Push.Eq(geometry.Vector2D{}) {
		t.Errorf("coincident pair interacted: %+v", in)
	}
}

func TestNeighborRule_SoftStrengthIsLinear(t *testing.T) {
	rule := NeighborRule{Radius: 20, BodySize: 5, PersonalSpace: 10}
	self := geometry.Vector2D{}
	prev := math.Inf(1)
	for d := 5.1; d < 10; d += 0.3 {
		in := rule.Interact(self, geometry.Vector2D{Y: d}, geometry.Vector2D{})
		got := in.Push.Len()
		want := (10 - d) / 5
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("strength at d=%.2f = %v; want %v", d, got, want)
		}
		if got >= prev {
			t.Errorf("strength not decreasing at d=%.2f", d)
		}
		if in.Push.Y >= 0 {
			t.Errorf("push at d=%.2f points toward other: %v", d, in.Push)
		}
		prev = got
	}
}
