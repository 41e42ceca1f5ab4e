package simulation

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.NumParticles = 20
	cfg.Seed = 7
	return cfg
}

var systemCount atomic.Int32

// startWorld spins up an actor system holding a single world actor.
func startWorld(t *testing.T, cfg *Config, snapshotCh chan<- *Snapshot) (context.Context, *actor.PID) {
	t.Helper()
	ctx := context.Background()
	system, err := actor.NewActorSystem(fmt.Sprintf("VicsekTest%d", systemCount.Add(1)), actor.WithLogger(log.DiscardLogger))
	if err != nil {
		t.Fatalf("NewActorSystem() error = %v", err)
	}
	if err := system.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = system.Stop(ctx) })

	pid, err := system.Spawn(ctx, "world", NewWorldActor(snapshotCh, cfg))
	if err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}
	return ctx, pid
}

func TestWorldActor_AdvanceAndQuery(t *testing.T) {
	ctx, pid := startWorld(t, testConfig(), nil)

	s, err := QuerySummary(ctx, pid)
	if err != nil {
		t.Fatalf("QuerySummary() error = %v", err)
	}
	if s.Tick != 0 || s.Population != 20 {
		t.Errorf("initial summary = %+v; want tick 0 and 20 agents", s)
	}

	s, err = Advance(ctx, pid, 5)
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if s.Tick != 5 {
		t.Errorf("tick = %d; want 5", s.Tick)
	}
	if s.OrderParameter < 0 || s.OrderParameter > 1 {
		t.Errorf("order parameter %v outside [0, 1]", s.OrderParameter)
	}

	// Zero ticks still advances by one.
	s, err = Advance(ctx, pid, 0)
	if err != nil {
		t.Fatalf("Advance(0) error = %v", err)
	}
	if s.Tick != 6 {
		t.Errorf("tick = %d; want 6", s.Tick)
	}
}

func TestWorldActor_PushesSnapshots(t *testing.T) {
	ch := make(chan *Snapshot, 1)
	cfg := testConfig()
	ctx, pid := startWorld(t, cfg, ch)

	if _, err := Advance(ctx, pid, 3); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	select {
	case snap := <-ch:
		if snap.Tick != 3 {
			t.Errorf("snapshot tick = %d; want 3", snap.Tick)
		}
		if len(snap.Agents) != cfg.NumParticles {
			t.Errorf("snapshot has %d agents; want %d", len(snap.Agents), cfg.NumParticles)
		}
		if snap.BodySize != cfg.BodySize || snap.Bounds != cfg.Bounds() {
			t.Errorf("snapshot geometry = %v/%v; want %v/%v", snap.BodySize, snap.Bounds, cfg.BodySize, cfg.Bounds())
		}
		for i, a := range snap.Agents {
			if len(a.History) != 3 {
				t.Fatalf("agent %d history length %d; want 3", i, len(a.History))
			}
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}

	// A full channel drops frames instead of blocking the world.
	for range 3 {
		if _, err := Advance(ctx, pid, 1); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
	}
	if len(ch) != 1 {
		t.Errorf("channel holds %d snapshots; want 1", len(ch))
	}
}

func TestWorldActor_Configure(t *testing.T) {
	ctx, pid := startWorld(t, testConfig(), nil)

	update, err := structpb.NewStruct(map[string]interface{}{
		KeyNoiseLevel:  0.5,
		KeyTrailLength: 5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := Configure(ctx, pid, update); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	s, err := Advance(ctx, pid, 2)
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if s.Population != 20 || s.Tick != 2 {
		t.Errorf("summary = %+v; want 20 agents at tick 2", s)
	}

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"noise above one", map[string]interface{}{KeyNoiseLevel: 1.5}},
		{"zero radius", map[string]interface{}{KeyRadius: 0}},
		{"personal space inside body", map[string]interface{}{KeyPersonalSpace: 2}},
		{"unknown key", map[string]interface{}{"gravity": 9.81}},
		{"fractional count", map[string]interface{}{KeyNumParticles: 20.5}},
		{"string value", map[string]interface{}{KeySpeed: "fast"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatal(err)
			}
			if err := Configure(ctx, pid, update); !errors.Is(err, ErrRejected) {
				t.Fatalf("Configure() error = %v; want ErrRejected", err)
			}
		})
	}

	// Rejections leave the world untouched.
	after, err := QuerySummary(ctx, pid)
	if err != nil {
		t.Fatalf("QuerySummary() error = %v", err)
	}
	if after != s {
		t.Errorf("summary after rejections = %+v; want %+v", after, s)
	}
}

func TestWorldActor_ConfigureReseedsOnPopulationChange(t *testing.T) {
	ctx, pid := startWorld(t, testConfig(), nil)
	if _, err := Advance(ctx, pid, 4); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	p := vicsek.DefaultParams()
	p.NumParticles = 50
	if err := ConfigureParams(ctx, pid, p); err != nil {
		t.Fatalf("ConfigureParams() error = %v", err)
	}
	s, err := QuerySummary(ctx, pid)
	if err != nil {
		t.Fatalf("QuerySummary() error = %v", err)
	}
	if s.Population != 50 || s.Tick != 0 {
		t.Errorf("summary = %+v; want 50 fresh agents at tick 0", s)
	}
}

func TestWorldActor_Reset(t *testing.T) {
	ctx, pid := startWorld(t, testConfig(), nil)
	if _, err := Advance(ctx, pid, 4); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if err := Reset(ctx, pid, 100); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	s, err := QuerySummary(ctx, pid)
	if err != nil {
		t.Fatalf("QuerySummary() error = %v", err)
	}
	if s.Population != 100 || s.Tick != 0 {
		t.Errorf("summary = %+v; want 100 agents at tick 0", s)
	}

	for _, n := range []int{0, vicsek.MinNumParticles - 1, vicsek.MaxNumParticles + 1} {
		if err := Reset(ctx, pid, n); !errors.Is(err, ErrRejected) {
			t.Errorf("Reset(%d) error = %v; want ErrRejected", n, err)
		}
	}
	after, err := QuerySummary(ctx, pid)
	if err != nil {
		t.Fatalf("QuerySummary() error = %v", err)
	}
	if after.Population != 100 {
		t.Errorf("population after rejected resets = %d; want 100", after.Population)
	}
}
