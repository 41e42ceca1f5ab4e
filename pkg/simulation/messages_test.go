package simulation

import (
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SebastianHodge/Vicsek-Simulation-of-Collective-Motion-of-Populations-of-Organisms/pkg/vicsek"
)

func TestApplyParams_FullBundle(t *testing.T) {
	want := vicsek.Params{
		Radius:        33,
		BodySize:      4,
		PersonalSpace: 9,
		NoiseLevel:    0.42,
		Speed:         2,
		NumParticles:  77,
		TrailLength:   12,
		Jitter:        0.5,
	}
	s, err := ParamsToStruct(want)
	if err != nil {
		t.Fatalf("ParamsToStruct() error = %v", err)
	}
	got, err := ApplyParams(vicsek.DefaultParams(), s)
	if err != nil {
		t.Fatalf("ApplyParams() error = %v", err)
	}
	if got != want {
		t.Errorf("ApplyParams() = %+v; want %+v", got, want)
	}
}

func TestApplyParams_Partial(t *testing.T) {
	base := vicsek.DefaultParams()
	s, err := structpb.NewStruct(map[string]interface{}{KeyRadius: 42})
	if err != nil {
		t.Fatal(err)
	}
	got, err := ApplyParams(base, s)
	if err != nil {
		t.Fatalf("ApplyParams() error = %v", err)
	}
	want := base
	want.Radius = 42
	if got != want {
		t.Errorf("ApplyParams() = %+v; want %+v", got, want)
	}
}

func TestApplyParams_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{"unknown key", map[string]interface{}{"numRed": 3}},
		{"string value", map[string]interface{}{KeyRadius: "20"}},
		{"bool value", map[string]interface{}{KeyNoiseLevel: true}},
		{"fractional particles", map[string]interface{}{KeyNumParticles: 10.5}},
		{"fractional trail", map[string]interface{}{KeyTrailLength: 0.1}},
	}
	base := vicsek.DefaultParams()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := structpb.NewStruct(tt.fields)
			if err != nil {
				t.Fatal(err)
			}
			got, err := ApplyParams(base, s)
			if err == nil {
				t.Fatal("ApplyParams() error = nil")
			}
			if got != base {
				t.Errorf("ApplyParams() returned %+v on error; want the base", got)
			}
		})
	}
}

func TestSummaryStruct(t *testing.T) {
	in := Summary{Tick: 1234, OrderParameter: 0.875, Population: 300}
	s, err := in.ToStruct()
	if err != nil {
		t.Fatalf("ToStruct() error = %v", err)
	}
	out, err := SummaryFromStruct(s)
	if err != nil {
		t.Fatalf("SummaryFromStruct() error = %v", err)
	}
	if out != in {
		t.Errorf("SummaryFromStruct() = %+v; want %+v", out, in)
	}

	delete(s.Fields, KeyTick)
	if _, err := SummaryFromStruct(s); err == nil {
		t.Error("SummaryFromStruct() accepted a summary without a tick")
	}
}
