package simulation

import (
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

// WorldActor owns the simulation. Its mailbox serialises parameter updates,
// resets and ticks, so a tick always runs to completion before anything else
// touches the agents.
type WorldActor struct {
	cfg *Config
	sim *vicsek.Simulation
	// Communication with UI, may be nil
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	tickCount   int
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. Snapshots are pushed to
// snapshotCh after every tick request when it is not nil.
func NewWorldActor(snapshotCh chan<- *Snapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	seed := w.cfg.SeedValue()
	sim, err := vicsek.New(w.cfg.Params(), w.cfg.Bounds(), seed)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}
	w.sim = sim
	ctx.ActorSystem().Logger().Infof("World seeded %d agents in %.0fx%.0f (seed %d)",
		sim.Len(), w.cfg.WorldWidth, w.cfg.WorldHeight, seed)
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("World started")

	// Parameter update from the driver
	case *structpb.Struct:
		w.handleConfigure(ctx, msg)

	case *wrapperspb.Int32Value:
		w.handleReset(ctx, msg)

	// The Main Simulation Step
	case *wrapperspb.UInt32Value:
		n := max(msg.GetValue(), 1)
		for i := uint32(0); i < n; i++ {
			w.sim.Step()
		}
		w.tickCount += int(n)
		w.logBenchmarks(ctx)
		w.pushSnapshot()
		w.respondSummary(ctx)

	case *emptypb.Empty:
		w.respondSummary(ctx)

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) handleConfigure(ctx *actor.ReceiveContext, msg *structpb.Struct) {
	current := w.sim.Params()
	next, err := ApplyParams(current, msg)
	if err != nil {
		w.reject(ctx, err)
		return
	}
	if err := w.sim.Configure(next); err != nil {
		w.reject(ctx, err)
		return
	}
	// A new population size re-seeds the whole set
	if next.NumParticles != current.NumParticles {
		if err := w.sim.Reset(next.NumParticles, w.sim.Bounds()); err != nil {
			w.reject(ctx, err)
			return
		}
		ctx.Logger().Infof("World re-seeded with %d agents", next.NumParticles)
	}
	ctx.Logger().Debugf("World configured: %+v", next)
	ctx.Response(&emptypb.Empty{})
}

func (w *WorldActor) handleReset(ctx *actor.ReceiveContext, msg *wrapperspb.Int32Value) {
	if err := w.sim.Reset(int(msg.GetValue()), w.sim.Bounds()); err != nil {
		w.reject(ctx, err)
		return
	}
	ctx.Logger().Infof("World reset with %d agents", w.sim.Len())
	w.pushSnapshot()
	ctx.Response(&emptypb.Empty{})
}

func (w *WorldActor) reject(ctx *actor.ReceiveContext, err error) {
	ctx.Logger().Warnf("World rejected request: %v", err)
	ctx.Response(wrapperspb.String(err.Error()))
}

func (w *WorldActor) respondSummary(ctx *actor.ReceiveContext) {
	reply, err := summarize(w.sim).ToStruct()
	if err != nil {
		w.reject(ctx, fmt.Errorf("failed to encode summary: %w", err))
		return
	}
	ctx.Response(reply)
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Agents: %d | Order: %.2f",
			w.tickCount, w.sim.Len(), w.sim.OrderParameter())
		w.tickCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- newSnapshot(w.sim):
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}
