package vicsek

import "github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"

// NeighborRule is the pairwise interaction policy between a focal agent and
// one other agent.
//
// Distances below geometry.Epsilon count as exact coincidence: such a pair
// contributes neither alignment nor repulsion.
type NeighborRule struct {
	Radius        float64
	BodySize      float64
	PersonalSpace float64
}

// Interaction is the outcome of NeighborRule.Interact for one ordered pair.
type Interaction struct {
	Distance float64

	// Neighbor is set when other lies strictly inside the alignment radius;
	// Alignment then holds the heading to accumulate.
	Neighbor  bool
	Alignment geometry.Vector2D

	// Push is the displacement to add to the focal position. It points from
	// other to self and is zero outside both repulsion bands.
	Push geometry.Vector2D

	// Coincident is set when both positions are the same point.
	Coincident bool
}

// RuleFor builds the rule matching the given parameters.
func RuleFor(p Params) NeighborRule {
	return NeighborRule{
		Radius:        p.Radius,
		BodySize:      p.BodySize,
		PersonalSpace: p.PersonalSpace,
	}
}

// Interact evaluates the pair (self, other) where other moves with otherVel.
func (r NeighborRule) Interact(self, other, otherVel geometry.Vector2D) Interaction {
	away := self.Sub(other)
	d := away.Len()
	in := Interaction{Distance: d}
	if d < geometry.Epsilon {
		in.Coincident = true
		return in
	}

	if d < r.Radius {
		in.Neighbor = true
		in.Alignment = otherVel
	}

	switch {
	case d > r.BodySize && d < r.PersonalSpace:
		// 1 at the body surface, 0 at the edge of personal space
		strength := (r.PersonalSpace - d) / (r.PersonalSpace - r.BodySize)
		in.Push = away.WithLen(strength)
	case d < r.BodySize:
		in.Push = away.WithLen(r.BodySize - d)
	}
	return in
}
