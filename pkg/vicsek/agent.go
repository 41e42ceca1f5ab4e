package vicsek

import "github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"

// Agent is one self-propelled particle.
// After every completed tick |Vel| == Speed and Pos lies in the closed rectangle
// [0, Width] x [0, Height]: an agent leaving through the low edge lands exactly
// on the high one.
type Agent struct {
	Pos   geometry.Vector2D
	Vel   geometry.Vector2D
	Speed float64 // fixed when the agent is created

	History History
}

// NewAgent creates an agent at pos heading along dir with the given speed.
// A zero dir heads along +X.
func NewAgent(pos, dir geometry.Vector2D, speed float64) Agent {
	return Agent{
		Pos:   pos,
		Vel:   dir.WithLenOr(speed, geometry.Vector2D{X: 1}),
		Speed: speed,
	}
}

// AgentState is the placement used by Simulation.Place.
type AgentState struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// AgentView is a read-only copy of an agent handed to renderers.
type AgentView struct {
	Pos     geometry.Vector2D
	Vel     geometry.Vector2D
	Speed   float64
	History []geometry.Vector2D // oldest first
}

func (a *Agent) view() AgentView {
	return AgentView{
		Pos:     a.Pos,
		Vel:     a.Vel,
		Speed:   a.Speed,
		History: a.History.Points(),
	}
}
