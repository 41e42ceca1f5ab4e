// Package vicsek implements a Vicsek-style active matter model: point agents
// moving at constant speed that align with their neighbors, keep their
// distance through a soft and a hard repulsion band, and are kicked by
// uniform heading noise, in a periodic 2D world.
//
// A Simulation is not safe for concurrent use. Drivers own it and call
// Configure, Reset and Step from a single goroutine.
package vicsek

import (
	"math"
	"math/rand/v2"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"
)

// Simulation holds the agent set, the parameter bundle and the random source.
type Simulation struct {
	params Params
	bounds Bounds
	rule   NeighborRule
	agents []Agent
	rng    *rand.Rand
	tick   uint64

	// headings holds every velocity as it was at the start of the tick,
	// so alignment does not depend on the iteration order.
	headings []geometry.Vector2D
}

// New validates p and b, then seeds p.NumParticles agents from seed.
func New(p Params, b Bounds, seed uint64) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		params: p,
		bounds: b,
		rule:   RuleFor(p),
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	s.agents = s.seedAgents(p.NumParticles, b)
	return s, nil
}

// Params returns the current parameter bundle.
func (s *Simulation) Params() Params { return s.params }

// Bounds returns the world rectangle.
func (s *Simulation) Bounds() Bounds { return s.bounds }

// Tick returns the number of completed ticks since the last reset.
func (s *Simulation) Tick() uint64 { return s.tick }

// Len returns the number of agents.
func (s *Simulation) Len() int { return len(s.agents) }

// Configure replaces the parameter bundle. An invalid bundle is rejected and
// nothing changes. Speed only applies to agents created by later resets, and
// NumParticles only to the next Reset; histories are trimmed right away.
func (s *Simulation) Configure(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.params = p
	s.rule = RuleFor(p)
	for i := range s.agents {
		s.agents[i].History.Trim(p.TrailLength)
	}
	return nil
}

// Reset replaces the agent set with n agents at uniformly random positions
// inside b, heading in uniformly random directions at the configured speed.
// The new set is built completely before the old one is dropped.
func (s *Simulation) Reset(n int, b Bounds) error {
	if n < MinNumParticles || n > MaxNumParticles {
		return configErr("numParticles", n, "must be in [%d, %d]", MinNumParticles, MaxNumParticles)
	}
	if err := b.Validate(); err != nil {
		return err
	}
	agents := s.seedAgents(n, b)
	s.agents = agents
	s.bounds = b
	s.params.NumParticles = n
	s.tick = 0
	return nil
}

// Place replaces the agent set with explicitly positioned agents.
// Velocities are rescaled to the configured speed; positions must lie in the
// current bounds. The particle count range of Reset does not apply here.
func (s *Simulation) Place(states []AgentState) error {
	agents := make([]Agent, len(states))
	for i, st := range states {
		if st.Pos.X < 0 || st.Pos.X > s.bounds.Width || st.Pos.Y < 0 || st.Pos.Y > s.bounds.Height {
			return configErr("position", st.Pos, "agent %d is outside the world", i)
		}
		agents[i] = NewAgent(st.Pos, st.Vel, s.params.Speed)
	}
	s.agents = agents
	s.tick = 0
	return nil
}

func (s *Simulation) seedAgents(n int, b Bounds) []Agent {
	agents := make([]Agent, n)
	for i := range agents {
		pos := geometry.Vector2D{X: s.rng.Float64() * b.Width, Y: s.rng.Float64() * b.Height}
		agents[i] = NewAgent(pos, s.randomUnit(), s.params.Speed)
	}
	return agents
}

func (s *Simulation) randomUnit() geometry.Vector2D {
	return geometry.NewVectorPolar(1, s.rng.Float64()*2*math.Pi)
}

// Step advances every agent by one tick, in index order.
func (s *Simulation) Step() {
	s.headings = s.headings[:0]
	for i := range s.agents {
		s.headings = append(s.headings, s.agents[i].Vel)
	}
	for i := range s.agents {
		s.stepAgent(i)
	}
	s.tick++
}

func (s *Simulation) stepAgent(i int) {
	a := &s.agents[i]

	var sum geometry.Vector2D
	count := 0
	for j := range s.agents {
		if j == i {
			continue
		}
		// Repulsion from earlier neighbors moves a before later ones are measured.
		in := s.rule.Interact(a.Pos, s.agents[j].Pos, s.headings[j])
		if in.Coincident {
			if s.params.Jitter > 0 {
				a.Pos = a.Pos.Add(s.randomUnit().Mul(s.params.Jitter))
			}
			continue
		}
		if in.Neighbor {
			sum = sum.Add(in.Alignment)
			count++
		}
		a.Pos = a.Pos.Add(in.Push)
	}

	vel := a.Vel
	if count > 0 {
		avg := sum.Mul(1 / float64(count))
		// Neighbors whose headings cancel out leave the heading alone.
		if !avg.IsZero() {
			vel = vel.Lerp(avg.WithLen(a.Speed), AlignmentBlend)
		}
	}

	heading := vel
	vel = vel.Add(s.randomUnit().Mul(s.params.NoiseLevel))
	a.Vel = vel.WithLenOr(a.Speed, heading)

	a.Pos = s.bounds.Wrap(a.Pos.Add(a.Vel))
	a.History.Push(a.Pos, s.params.TrailLength)
}

// Wrap applies the periodic boundary: a coordinate strictly above the upper
// bound jumps to 0 and one strictly below 0 jumps to the upper bound.
// Values exactly on a bound are kept.
func (b Bounds) Wrap(p geometry.Vector2D) geometry.Vector2D {
	if p.X > b.Width {
		p.X = 0
	}
	if p.X < 0 {
		p.X = b.Width
	}
	if p.Y > b.Height {
		p.Y = 0
	}
	if p.Y < 0 {
		p.Y = b.Height
	}
	return p
}

// OrderParameter returns the global alignment of the current agent set.
func (s *Simulation) OrderParameter() float64 {
	return OrderParameter(s.agents)
}

// Agents returns read-only copies of every agent, in index order.
func (s *Simulation) Agents() []AgentView {
	views := make([]AgentView, len(s.agents))
	for i := range s.agents {
		views[i] = s.agents[i].view()
	}
	return views
}

// OrderParameter is |sum of unit headings| / number of agents: 1 when every
// agent moves the same way, close to 0 for uncorrelated headings.
// An empty set yields 0.
func OrderParameter(agents []Agent) float64 {
	if len(agents) == 0 {
		return 0
	}
	var sum geometry.Vector2D
	for i := range agents {
		sum = sum.Add(agents[i].Vel.Normalize())
	}
	return math.Min(sum.Len()/float64(len(agents)), 1)
}
