package norms

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestDistanceCoefficient(t *testing.T) {
	tbl := Standard()

	cases := []struct {
		km   float64
		want float64
	}{
		{-5, 1.0},
		{0, 1.0},
		{0.1, 1.03},
		{10, 1.03},
		{10.01, 1.06},
		{15, 1.06},
		{20, 1.06},
		{95, 1.30},
	}
	for _, c := range cases {
		nearlyEqual(t, "distance", tbl.DistanceCoefficient(c.km), c.want)
	}
}

func TestDistanceCoefficient_MatchesFormulaAndNeverDecreases(t *testing.T) {
	tbl := Standard()

	prev := tbl.DistanceCoefficient(0)
	for km := 0.0; km <= 300; km += 0.5 {
		got := tbl.DistanceCoefficient(km)
		want := 1.0
		if km > 0 {
			want = 1 + math.Ceil(km/10)*0.03
		}
		nearlyEqual(t, "distance", got, want)
		if got < prev {
			t.Fatalf("coefficient decreased at %v km: %v < %v", km, got, prev)
		}
		prev = got
	}
}

func TestLookupsFallBackToOne(t *testing.T) {
	tbl := Standard()

	if v, ok := tbl.PipeMaterial("unobtainium"); ok || v != 1.0 {
		t.Fatalf("PipeMaterial(unknown) = %v, %v; want 1, false", v, ok)
	}
	if v, ok := tbl.PipeDiameter("40"); ok || v != 1.0 {
		t.Fatalf("PipeDiameter(40) = %v, %v; want 1, false", v, ok)
	}
	if v, ok := tbl.Wall(""); ok || v != 1.0 {
		t.Fatalf("Wall(empty) = %v, %v; want 1, false", v, ok)
	}
}

func TestLayingExternalIsOpen(t *testing.T) {
	tbl := Standard()

	ext, ok := tbl.Laying(LayingExternal)
	if !ok {
		t.Fatalf("external laying not resolved")
	}
	open, _ := tbl.Laying(LayingOpen)
	nearlyEqual(t, "external", ext, open)
}

func TestStandardTableIsValid(t *testing.T) {
	if err := Standard().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsNonPositiveCoefficient(t *testing.T) {
	tbl := Standard()
	tbl.Factors.Congestion[CongestionMedium] = 0

	if err := tbl.Validate(); err == nil {
		t.Fatalf("expected validation error for zero coefficient")
	}
	if err := Standard().Validate(); err != nil {
		t.Fatalf("catalog changed through a copy: %v", err)
	}
}

func TestStandardReturnsIndependentCopies(t *testing.T) {
	a := Standard()
	a.Factors.Wall[WallBrick] = 9
	a.Factors.PipeDiameter["40"] = 3
	a.Radiator.BaseMount = 7

	b := Standard()
	if v, _ := b.Wall(WallBrick); v != 1.2 {
		t.Fatalf("Wall(brick) = %v after changing another copy, want 1.2", v)
	}
	if _, ok := b.PipeDiameter("40"); ok {
		t.Fatalf("key added to a copy leaked into the catalog")
	}
	if b.Radiator.BaseMount != 0.5 {
		t.Fatalf("BaseMount = %v, want 0.5", b.Radiator.BaseMount)
	}
}

func TestCabinetNormHours(t *testing.T) {
	tbl := Standard()

	nearlyEqual(t, "built-in 8", tbl.Hub.CabinetBuiltIn.Hours(8), 70.0/60)
	nearlyEqual(t, "surface 8", tbl.Hub.CabinetSurface.Hours(8), 18.0/60)
}

func TestLabels(t *testing.T) {
	if got := WallBrick.Label(); got != "Кирпич" {
		t.Fatalf("WallBrick.Label() = %q", got)
	}
	if got := Laying("moat").Label(); got != "moat" {
		t.Fatalf("unknown laying label = %q", got)
	}
}
