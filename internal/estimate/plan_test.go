package estimate

import (
	"testing"

	"github.com/Simplici0/heatquote/internal/norms"
)

func TestInstallPlan(t *testing.T) {
	e := New(nil)
	in := goldenInput()
	second := goldenUnit()
	second.Heavy = true
	second.SupplyLenM = 6
	second.Laying = norms.LayingChase
	in.Units = append(in.Units, second)

	p := e.InstallPlan(in)
	if len(p.Steps) != 5 {
		t.Fatalf("got %d steps, want 5", len(p.Steps))
	}
	if p.Units != 2 || p.Heavy != 1 {
		t.Fatalf("units = %d heavy = %d", p.Units, p.Heavy)
	}

	site := 1.2
	nearlyEqual(t, "marking", p.Steps[0].Hours, 2*0.2*site)
	nearlyEqual(t, "carrying", p.Steps[1].Hours, 2*0.15*site)
	nearlyEqual(t, "brackets", p.Steps[2].Hours, 2*0.25*site)
	nearlyEqual(t, "hanging", p.Steps[3].Hours, 2*0.5*site)
	nearlyEqual(t, "piping", p.Steps[4].Hours, (20*1.0+6*3.0)*norms.Minutes(5)*site)

	if p.Steps[0].Norm != "12 мин/шт" || p.Steps[3].Norm != "30 мин/шт" {
		t.Fatalf("norms = %q, %q", p.Steps[0].Norm, p.Steps[3].Norm)
	}
	if p.Steps[3].Note == "" {
		t.Fatalf("heavy units not mentioned in hanging step")
	}

	if len(p.Lengths) != 2 {
		t.Fatalf("lengths = %+v", p.Lengths)
	}
	if p.Lengths[0].Laying != norms.LayingChase || p.Lengths[0].LengthM != 6 {
		t.Fatalf("lengths = %+v", p.Lengths)
	}

	var total float64
	for _, s := range p.Steps {
		total += s.Hours
	}
	nearlyEqual(t, "total", p.Hours, total)
}

func TestInstallPlan_NoSystem(t *testing.T) {
	e := New(nil)
	in := Input{Project: goldenProject(), Units: []RadiatorUnit{goldenUnit()}}

	p := e.InstallPlan(in)
	nearlyEqual(t, "piping", p.Steps[4].Hours, 0)
	nearlyEqual(t, "hanging", p.Steps[3].Hours, 0.5*1.2)
}
