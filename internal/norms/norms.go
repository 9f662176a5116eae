// Package norms holds the catalog of installation norms (base durations in
// hours) and the multiplicative coefficient tables used by the estimator.
package norms

import (
	"fmt"
	"math"
	"sort"
)

const minutesPerHour = 60.0

// Minutes converts a duration in minutes to hours.
func Minutes(m float64) float64 {
	return m / minutesPerHour
}

// RadiatorOps are base durations for radiator unit operations, in hours.
type RadiatorOps struct {
	BaseMount       float64 `json:"base_mount" yaml:"base_mount"`
	HeavyMultiplier float64 `json:"heavy_multiplier" yaml:"heavy_multiplier"`
	ThermostatValve float64 `json:"thermostat_valve" yaml:"thermostat_valve"`
	AirVent         float64 `json:"air_vent" yaml:"air_vent"`
	PipePerMeter    float64 `json:"pipe_per_meter" yaml:"pipe_per_meter"`
	BottomUnit      float64 `json:"bottom_unit" yaml:"bottom_unit"`
	WallConnection  float64 `json:"wall_connection" yaml:"wall_connection"`
	ChromeTubes     float64 `json:"chrome_tubes" yaml:"chrome_tubes"`
	PreMountTubes   float64 `json:"pre_mount_tubes" yaml:"pre_mount_tubes"`
	Bypass          float64 `json:"bypass" yaml:"bypass"`
}

// CabinetNorm is a cabinet install time: Base + PerOutput×outputs, in minutes.
type CabinetNorm struct {
	BaseMinutes      float64 `json:"base_minutes" yaml:"base_minutes"`
	PerOutputMinutes float64 `json:"per_output_minutes" yaml:"per_output_minutes"`
}

// Hours returns the cabinet duration for the given number of outputs.
func (c CabinetNorm) Hours(outputs float64) float64 {
	return Minutes(c.BaseMinutes + c.PerOutputMinutes*outputs)
}

// HubOps are base durations for distribution hub operations, in hours.
type HubOps struct {
	BaseMount        float64     `json:"base_mount" yaml:"base_mount"`
	OutputConnection float64     `json:"output_connection" yaml:"output_connection"`
	SupplyPerMeter   float64     `json:"supply_per_meter" yaml:"supply_per_meter"`
	MixingGroup      float64     `json:"mixing_group" yaml:"mixing_group"`
	TeeBranch        float64     `json:"tee_branch" yaml:"tee_branch"`
	CabinetBuiltIn   CabinetNorm `json:"cabinet_built_in" yaml:"cabinet_built_in"`
	CabinetSurface   CabinetNorm `json:"cabinet_surface" yaml:"cabinet_surface"`
}

// CommissioningOps are the fixed commissioning allowances, in hours.
type CommissioningOps struct {
	PerHub  float64 `json:"per_hub" yaml:"per_hub"`
	PerUnit float64 `json:"per_unit" yaml:"per_unit"`
}

// DistanceNorm describes the remoteness coefficient: every started Band
// kilometres add Step to 1.0.
type DistanceNorm struct {
	BandKm float64 `json:"band_km" yaml:"band_km"`
	Step   float64 `json:"step" yaml:"step"`
}

// Factors are the coefficient tables keyed by enumerated option values.
type Factors struct {
	Wall         map[WallMaterial]float64 `json:"wall" yaml:"wall"`
	Congestion   map[Congestion]float64   `json:"congestion" yaml:"congestion"`
	PipeMaterial map[PipeMaterial]float64 `json:"pipe_material" yaml:"pipe_material"`
	PipeDiameter map[PipeDiameter]float64 `json:"pipe_diameter" yaml:"pipe_diameter"`
	Laying       map[Laying]float64       `json:"laying" yaml:"laying"`
	RadiatorType map[RadiatorType]float64 `json:"radiator_type" yaml:"radiator_type"`
	Distance     DistanceNorm             `json:"distance" yaml:"distance"`
}

// Table is the complete norms catalog. A Table is never mutated after
// construction; callers share one instance.
type Table struct {
	Radiator      RadiatorOps      `json:"radiator" yaml:"radiator"`
	Hub           HubOps           `json:"hub" yaml:"hub"`
	Commissioning CommissioningOps `json:"commissioning" yaml:"commissioning"`
	Factors       Factors          `json:"factors" yaml:"factors"`
}

var standard = &Table{
	Radiator: RadiatorOps{
		BaseMount:       0.5,
		HeavyMultiplier: 1.5,
		ThermostatValve: 0.3,
		AirVent:         0.1,
		PipePerMeter:    Minutes(5),
		BottomUnit:      Minutes(10),
		WallConnection:  Minutes(20),
		ChromeTubes:     Minutes(20),
		PreMountTubes:   1.0,
		Bypass:          0.5,
	},
	Hub: HubOps{
		BaseMount:        0.5,
		OutputConnection: 0.25,
		SupplyPerMeter:   Minutes(5),
		MixingGroup:      1.0,
		TeeBranch:        Minutes(20),
		CabinetBuiltIn:   CabinetNorm{BaseMinutes: 30, PerOutputMinutes: 5},
		CabinetSurface:   CabinetNorm{BaseMinutes: 10, PerOutputMinutes: 1},
	},
	Commissioning: CommissioningOps{
		PerHub:  Minutes(20),
		PerUnit: Minutes(15),
	},
	Factors: Factors{
		Wall: map[WallMaterial]float64{
			WallBrick:           1.2,
			WallAeratedConcrete: 1.0,
			WallConcrete:        1.3,
			WallWoodenFrame:     1.4,
			WallGluedBeamFrame:  1.3,
		},
		Congestion: map[Congestion]float64{
			CongestionNone:   1.0,
			CongestionMedium: 1.1,
			CongestionHigh:   1.25,
		},
		PipeMaterial: map[PipeMaterial]float64{
			PipePEX:      1.2,
			PipePEXALPEX: 1.0,
			PipePP:       1.3,
			PipeCopper:   4.0,
			PipeSteel:    4.0,
		},
		PipeDiameter: map[PipeDiameter]float64{
			Diameter16: 1.0,
			Diameter20: 1.3,
			Diameter25: 2.0,
			Diameter32: 2.5,
		},
		Laying: map[Laying]float64{
			LayingFloor:   1.0,
			LayingCeiling: 1.5,
			LayingOpen:    1.5,
			LayingChase:   3.0,
		},
		RadiatorType: map[RadiatorType]float64{
			RadiatorPanel:     1.0,
			RadiatorSectional: 1.1,
			RadiatorTubular:   2.0,
			RadiatorInFloor:   1.6,
		},
		Distance: DistanceNorm{BandKm: 10, Step: 0.03},
	},
}

// Standard returns a copy of the built-in catalog. Changing the copy never
// affects the catalog or other copies.
func Standard() *Table {
	return standard.Clone()
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := *t
	c.Factors.Wall = cloneMap(t.Factors.Wall)
	c.Factors.Congestion = cloneMap(t.Factors.Congestion)
	c.Factors.PipeMaterial = cloneMap(t.Factors.PipeMaterial)
	c.Factors.PipeDiameter = cloneMap(t.Factors.PipeDiameter)
	c.Factors.Laying = cloneMap(t.Factors.Laying)
	c.Factors.RadiatorType = cloneMap(t.Factors.RadiatorType)
	return &c
}

func cloneMap[K comparable](m map[K]float64) map[K]float64 {
	if m == nil {
		return nil
	}
	c := make(map[K]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// DistanceCoefficient returns 1 + ceil(km/band)×step, and exactly 1.0 for
// km ≤ 0.
func (t *Table) DistanceCoefficient(km float64) float64 {
	d := t.Factors.Distance
	if km <= 0 || d.BandKm <= 0 {
		return 1.0
	}
	return 1.0 + math.Ceil(km/d.BandKm)*d.Step
}

// Wall returns the wall coefficient, or 1.0 and false for an unknown key.
func (t *Table) Wall(k WallMaterial) (float64, bool) {
	return lookup(t.Factors.Wall, k)
}

// Congestion returns the congestion coefficient, or 1.0 and false.
func (t *Table) Congestion(k Congestion) (float64, bool) {
	return lookup(t.Factors.Congestion, k)
}

// PipeMaterial returns the pipe material coefficient, or 1.0 and false.
func (t *Table) PipeMaterial(k PipeMaterial) (float64, bool) {
	return lookup(t.Factors.PipeMaterial, k)
}

// PipeDiameter returns the pipe diameter coefficient, or 1.0 and false.
func (t *Table) PipeDiameter(k PipeDiameter) (float64, bool) {
	return lookup(t.Factors.PipeDiameter, k)
}

// Laying returns the laying coefficient after normalizing "external" to
// "open", or 1.0 and false.
func (t *Table) Laying(k Laying) (float64, bool) {
	return lookup(t.Factors.Laying, k.Normalize())
}

// RadiatorType returns the unit type coefficient, or 1.0 and false.
func (t *Table) RadiatorType(k RadiatorType) (float64, bool) {
	return lookup(t.Factors.RadiatorType, k)
}

func lookup[K ~string](m map[K]float64, k K) (float64, bool) {
	v, ok := m[k]
	if !ok {
		return 1.0, false
	}
	return v, true
}

// Validate checks that every coefficient is a positive multiplier and that
// the distance norm is well-formed.
func (t *Table) Validate() error {
	if err := positive("wall", t.Factors.Wall); err != nil {
		return err
	}
	if err := positive("congestion", t.Factors.Congestion); err != nil {
		return err
	}
	if err := positive("pipe_material", t.Factors.PipeMaterial); err != nil {
		return err
	}
	if err := positive("pipe_diameter", t.Factors.PipeDiameter); err != nil {
		return err
	}
	if err := positive("laying", t.Factors.Laying); err != nil {
		return err
	}
	if err := positive("radiator_type", t.Factors.RadiatorType); err != nil {
		return err
	}
	if t.Radiator.HeavyMultiplier <= 0 {
		return fmt.Errorf("radiator heavy multiplier must be positive, got %v", t.Radiator.HeavyMultiplier)
	}
	if t.Factors.Distance.BandKm <= 0 || t.Factors.Distance.Step < 0 {
		return fmt.Errorf("invalid distance norm %+v", t.Factors.Distance)
	}
	return nil
}

func positive[K ~string](table string, m map[K]float64) error {
	for _, k := range sortedKeys(m) {
		if m[k] <= 0 {
			return fmt.Errorf("%s coefficient %q must be positive, got %v", table, k, m[k])
		}
	}
	return nil
}

func sortedKeys[K ~string](m map[K]float64) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
