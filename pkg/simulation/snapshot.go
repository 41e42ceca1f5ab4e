package simulation

import "github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"

// Snapshot is everything a renderer needs to draw one frame.
// It is a copy: the world keeps mutating its own agents after sending it.
type Snapshot struct {
	Summary
	Bounds   vicsek.Bounds
	BodySize float64
	Agents   []vicsek.AgentView
}

func newSnapshot(sim *vicsek.Simulation) *Snapshot {
	return &Snapshot{
		Summary:  summarize(sim),
		Bounds:   sim.Bounds(),
		BodySize: sim.Params().BodySize,
		Agents:   sim.Agents(),
	}
}

func summarize(sim *vicsek.Simulation) Summary {
	return Summary{
		Tick:           sim.Tick(),
		OrderParameter: sim.OrderParameter(),
		Population:     sim.Len(),
	}
}
