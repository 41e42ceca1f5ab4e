// Package viewer renders a running world with ebiten and turns the panel
// controls into world actor requests.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/geometry"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/simulation"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/ui"
	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

const panelWidth = 220

var (
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bodyColor       = color.RGBA{R: 175, G: 175, B: 175, A: 255}
	outlineColor    = color.RGBA{A: 255}
	trailColor      = color.RGBA{R: 120, G: 120, B: 120, A: 160}
)

// Game is the ebiten front end of a world actor.
type Game struct {
	ctx        context.Context
	worldPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	logger     log.Logger
	cfg        *simulation.Config

	panel *ui.Panel

	widgetRadius    *ui.Slider
	widgetNoise     *ui.Slider
	widgetParticles *ui.Slider
	widgetTrail     *ui.Slider
	widgetPaused    *ui.Checkbox

	resetRequested bool
}

// NewGame spawns the world actor and builds the control panel.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	snapshotCh := make(chan *simulation.Snapshot, 10)
	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		logger:     system.Logger(),
		cfg:        cfg,
	}

	// The sliders only span the documented ranges, so the world is pulled into them.
	p, changed := panelParams(cfg.Params())
	if changed {
		if err := simulation.ConfigureParams(ctx, worldPID, p); err != nil {
			return nil, fmt.Errorf("failed to clamp parameters: %w", err)
		}
		g.logger.Infof("parameters clamped to the panel ranges: %+v", p)
	}

	panel := ui.NewPanel(cfg.WorldWidth+10, 10, panelWidth-20, "Vicsek Model")
	panel.AddSection("Interaction")
	g.widgetRadius = panel.AddSlider("Interaction Radius", vicsek.MinRadius, vicsek.MaxRadius, p.Radius).WithStep(1, "%.0f")
	g.widgetNoise = panel.AddSlider("Noise Level", 0, 1, p.NoiseLevel).WithStep(0.01, "%.2f")
	panel.AddSection("Population")
	g.widgetParticles = panel.AddSlider("Number of Particles", vicsek.MinNumParticles, vicsek.MaxNumParticles, float64(p.NumParticles)).WithStep(1, "%.0f")
	g.widgetTrail = panel.AddSlider("Trail Length", 0, vicsek.MaxTrailLength, float64(p.TrailLength)).WithStep(1, "%.0f")
	panel.AddSection("Run")
	g.widgetPaused = panel.AddCheckbox("Paused (space)", false)
	panel.AddButton("Reset", func() { g.resetRequested = true })
	panel.AddText(g.orderText)
	panel.AddText(g.tickText)
	g.panel = panel

	return g, nil
}

func (g *Game) Update() error {
	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Toggle()
	}

	if update := g.changedParams(); update != nil {
		if err := simulation.Configure(g.ctx, g.worldPID, update); err != nil {
			g.logger.Warnf("configure failed: %v", err)
		}
	}
	if g.resetRequested {
		g.resetRequested = false
		if err := simulation.Reset(g.ctx, g.worldPID, g.widgetParticles.Int()); err != nil {
			g.logger.Warnf("reset failed: %v", err)
		}
	}
	if !g.widgetPaused.Value {
		if _, err := simulation.Advance(g.ctx, g.worldPID, uint32(g.cfg.TicksPerFrame)); err != nil {
			return fmt.Errorf("advance: %w", err)
		}
	}

	// Keep only the newest snapshot
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			return nil
		}
	}
}

// changedParams collects the sliders moved during this frame.
func (g *Game) changedParams() *structpb.Struct {
	fields := map[string]*structpb.Value{}
	if g.widgetRadius.Changed() {
		fields[simulation.KeyRadius] = structpb.NewNumberValue(float64(g.widgetRadius.Int()))
	}
	if g.widgetNoise.Changed() {
		fields[simulation.KeyNoiseLevel] = structpb.NewNumberValue(g.widgetNoise.Value)
	}
	if g.widgetParticles.Changed() {
		fields[simulation.KeyNumParticles] = structpb.NewNumberValue(float64(g.widgetParticles.Int()))
	}
	if g.widgetTrail.Changed() {
		fields[simulation.KeyTrailLength] = structpb.NewNumberValue(float64(g.widgetTrail.Int()))
	}
	if len(fields) == 0 {
		return nil
	}
	return &structpb.Struct{Fields: fields}
}

func (g *Game) orderText() string {
	if g.lastState == nil {
		return "Order Parameter: -"
	}
	return fmt.Sprintf("Order Parameter: %.2f", g.lastState.OrderParameter)
}

func (g *Game) tickText() string {
	if g.lastState == nil {
		return ""
	}
	return fmt.Sprintf("Tick %d | %.0f TPS", g.lastState.Tick, ebiten.ActualTPS())
}

func (g *Game) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.cfg.WorldWidth), float32(g.cfg.WorldHeight), backgroundColor, false)

	if snap := g.lastState; snap != nil {
		r := float32(snap.BodySize / 2)
		for _, a := range snap.Agents {
			for _, seg := range TrailSegments(a.History, snap.Bounds) {
				vector.StrokeLine(screen,
					float32(seg[0].X), float32(seg[0].Y),
					float32(seg[1].X), float32(seg[1].Y),
					1, trailColor, true)
			}
		}
		for _, a := range snap.Agents {
			vector.FillCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), r, bodyColor, true)
			vector.StrokeCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), r, 1, outlineColor, true)
		}
	}

	g.panel.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := int(math.Ceil(g.cfg.WorldWidth)) + panelWidth
	h := int(math.Ceil(math.Max(g.cfg.WorldHeight, g.panel.Height()+20)))
	return w, h
}

// panelParams clamps p into the slider ranges and reports whether anything moved.
func panelParams(p vicsek.Params) (vicsek.Params, bool) {
	c := p.Clamp()
	return c, c != p
}

// TrailSegments turns a position history into drawable segments, leaving out
// the jumps caused by the periodic boundary.
func TrailSegments(points []geometry.Vector2D, b vicsek.Bounds) [][2]geometry.Vector2D {
	if len(points) < 2 {
		return nil
	}
	segments := make([][2]geometry.Vector2D, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if math.Abs(prev.X-curr.X) > b.Width/2 || math.Abs(prev.Y-curr.Y) > b.Height/2 {
			continue
		}
		segments = append(segments, [2]geometry.Vector2D{prev, curr})
	}
	return segments
}
