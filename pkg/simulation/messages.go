package simulation

import (
	"fmt"
	"math"
	"sort"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

// The world actor speaks protobuf well-known types:
//
//	*structpb.Struct          parameter update, answered by *emptypb.Empty or *wrapperspb.StringValue
//	*wrapperspb.Int32Value    reset with that many agents, same answers
//	*wrapperspb.UInt32Value   advance that many ticks, answered by a summary *structpb.Struct
//	*emptypb.Empty            summary query, answered by a summary *structpb.Struct

// Parameter keys, matching the JSON config names.
const (
	KeyRadius        = "radius"
	KeyBodySize      = "bodySize"
	KeyPersonalSpace = "personalSpace"
	KeyNoiseLevel    = "noiseLevel"
	KeySpeed         = "speed"
	KeyNumParticles  = "numParticles"
	KeyTrailLength   = "trailLength"
	KeyJitter        = "jitter"

	KeyTick           = "tick"
	KeyOrderParameter = "orderParameter"
	KeyAgents         = "agents"
)

// ParamsToStruct encodes a full parameter bundle.
func ParamsToStruct(p vicsek.Params) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		KeyRadius:        p.Radius,
		KeyBodySize:      p.BodySize,
		KeyPersonalSpace: p.PersonalSpace,
		KeyNoiseLevel:    p.NoiseLevel,
		KeySpeed:         p.Speed,
		KeyNumParticles:  p.NumParticles,
		KeyTrailLength:   p.TrailLength,
		KeyJitter:        p.Jitter,
	})
}

// ApplyParams overlays the fields present in s onto base.
// Unknown keys, non numeric values and fractional counts are rejected.
func ApplyParams(base vicsek.Params, s *structpb.Struct) (vicsek.Params, error) {
	p := base
	keys := make([]string, 0, len(s.GetFields()))
	for k := range s.GetFields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := s.GetFields()[k]
		num, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return base, fmt.Errorf("parameter %q: expected a number, got %T", k, v.GetKind())
		}
		f := num.NumberValue
		switch k {
		case KeyRadius:
			p.Radius = f
		case KeyBodySize:
			p.BodySize = f
		case KeyPersonalSpace:
			p.PersonalSpace = f
		case KeyNoiseLevel:
			p.NoiseLevel = f
		case KeySpeed:
			p.Speed = f
		case KeyJitter:
			p.Jitter = f
		case KeyNumParticles, KeyTrailLength:
			n, err := integral(k, f)
			if err != nil {
				return base, err
			}
			if k == KeyNumParticles {
				p.NumParticles = n
			} else {
				p.TrailLength = n
			}
		default:
			return base, fmt.Errorf("unknown parameter %q", k)
		}
	}
	return p, nil
}

func integral(key string, f float64) (int, error) {
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("parameter %q: expected an integer, got %v", key, f)
	}
	return int(f), nil
}

// Summary is the scalar state of the world after a tick.
type Summary struct {
	Tick           uint64
	OrderParameter float64
	Population     int
}

// ToStruct encodes the summary as a reply message.
func (s Summary) ToStruct() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		KeyTick:           s.Tick,
		KeyOrderParameter: s.OrderParameter,
		KeyAgents:         s.Population,
	})
}

// SummaryFromStruct decodes a summary reply.
func SummaryFromStruct(s *structpb.Struct) (Summary, error) {
	var out Summary
	for _, k := range []string{KeyTick, KeyOrderParameter, KeyAgents} {
		if _, ok := s.GetFields()[k]; !ok {
			return out, fmt.Errorf("summary is missing %q", k)
		}
	}
	f := s.GetFields()
	out.Tick = uint64(f[KeyTick].GetNumberValue())
	out.OrderParameter = f[KeyOrderParameter].GetNumberValue()
	out.Population = int(f[KeyAgents].GetNumberValue())
	return out, nil
}
