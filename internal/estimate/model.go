package estimate

import (
	"encoding/json"

	"github.com/Simplici0/heatquote/internal/norms"
)

// HourlyRates are the hourly rates of the three skill tiers.
type HourlyRates struct {
	Expert    float64 `json:"expert" yaml:"expert"`
	Master    float64 `json:"master" yaml:"master"`
	Assistant float64 `json:"assistant" yaml:"assistant"`
}

// Average returns the effective rate used for every cost conversion.
func (r HourlyRates) Average() float64 {
	return (r.Expert + r.Master + r.Assistant) / 3
}

// Factors are the site conditions shared by the whole project.
type Factors struct {
	Wall       norms.WallMaterial `json:"wall" yaml:"wall"`
	Congestion norms.Congestion   `json:"congestion" yaml:"congestion"`
	DistanceKm float64            `json:"distance_km" yaml:"distance_km"`
}

// Project is the project-wide state: rates and site factors. Title has no
// effect on calculation.
type Project struct {
	Title   string      `json:"title" yaml:"title"`
	Rates   HourlyRates `json:"hourly_rates" yaml:"hourly_rates"`
	Factors Factors     `json:"factors" yaml:"factors"`
}

// DefaultProject returns the settings a new project starts with.
func DefaultProject() Project {
	return Project{
		Title: "Коттедж - Инженерные системы",
		Rates: HourlyRates{Expert: 2000, Master: 1500, Assistant: 1000},
		Factors: Factors{
			Wall:       norms.WallBrick,
			Congestion: norms.CongestionNone,
			DistanceKm: 0,
		},
	}
}

// HubMode selects the payload of a Hub.
type HubMode string

const (
	ModeManifold HubMode = "manifold"
	ModeTee      HubMode = "tee"
)

// CabinetKind is the mounting type of a manifold cabinet.
type CabinetKind string

const (
	CabinetBuiltIn CabinetKind = "built-in"
	CabinetSurface CabinetKind = "surface-mounted"
)

// Cabinet is a manifold cabinet.
type Cabinet struct {
	Kind CabinetKind `json:"kind" yaml:"kind"`
}

// Manifold is the payload of a collector hub.
type Manifold struct {
	LoopLengthM float64            `json:"loop_length_m"`
	Outputs     int                `json:"outputs"`
	Laying      norms.Laying       `json:"laying"`
	Pump        bool               `json:"pump"`
	Cabinet     *Cabinet           `json:"cabinet,omitempty"`
	Material    norms.PipeMaterial `json:"material"`
	Diameter    norms.PipeDiameter `json:"diameter"`
}

// Tee is the payload of a tee branch set.
type Tee struct {
	MainRunLengthM float64            `json:"main_run_length_m"`
	Branches       int                `json:"branches"`
	Material       norms.PipeMaterial `json:"material"`
	Diameter       norms.PipeDiameter `json:"diameter"`
	Laying         norms.Laying       `json:"laying"`
}

// Hub is a distribution hub: either a manifold or a tee branch set. Build
// it with NewManifoldHub or NewTeeHub. The zero Hub is an empty manifold.
type Hub struct {
	ID       string
	Name     string
	Location string

	manifold *Manifold
	tee      *Tee
}

// NewManifoldHub returns a hub in manifold mode.
func NewManifoldHub(id, name string, m Manifold) Hub {
	return Hub{ID: id, Name: name, manifold: &m}
}

// NewTeeHub returns a hub in tee mode.
func NewTeeHub(id, name string, t Tee) Hub {
	return Hub{ID: id, Name: name, tee: &t}
}

// Mode reports which payload the hub carries.
func (h Hub) Mode() HubMode {
	if h.tee != nil {
		return ModeTee
	}
	return ModeManifold
}

// Manifold returns the manifold payload. ok is false in tee mode.
func (h Hub) Manifold() (Manifold, bool) {
	if h.tee != nil {
		return Manifold{}, false
	}
	if h.manifold == nil {
		return Manifold{}, true
	}
	return *h.manifold, true
}

// Tee returns the tee payload. ok is false in manifold mode.
func (h Hub) Tee() (Tee, bool) {
	if h.tee == nil {
		return Tee{}, false
	}
	return *h.tee, true
}

// MarshalJSON encodes the hub with its mode and the active payload only.
func (h Hub) MarshalJSON() ([]byte, error) {
	type wire struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Location string    `json:"location,omitempty"`
		Mode     HubMode   `json:"mode"`
		Manifold *Manifold `json:"manifold,omitempty"`
		Tee      *Tee      `json:"tee,omitempty"`
	}
	w := wire{ID: h.ID, Name: h.Name, Location: h.Location, Mode: h.Mode()}
	if t, ok := h.Tee(); ok {
		w.Tee = &t
	} else {
		m, _ := h.Manifold()
		w.Manifold = &m
	}
	return json.Marshal(w)
}

// ConnectionPoints is the number of pipe connection points the hub offers:
// outputs for a manifold, branches for a tee.
func (h Hub) ConnectionPoints() int {
	if t, ok := h.Tee(); ok {
		return t.Branches
	}
	m, _ := h.Manifold()
	return m.Outputs
}

// Options are the boolean installation options of a radiator unit. Which of
// them apply depends on the connection side.
type Options struct {
	ThermostatValve   bool `json:"thermostat_valve" yaml:"thermostat_valve"`
	Bypass            bool `json:"bypass" yaml:"bypass"`
	PreMountTubesSide bool `json:"pre_mount_tubes_side" yaml:"pre_mount_tubes_side"`
	BottomUnit        bool `json:"bottom_unit" yaml:"bottom_unit"`
	PreMountTubes     bool `json:"pre_mount_tubes" yaml:"pre_mount_tubes"`
	WallConnection    bool `json:"wall_connection" yaml:"wall_connection"`
	ChromeTubes       bool `json:"chrome_tubes" yaml:"chrome_tubes"`
}

// RadiatorUnit is a single heating unit.
type RadiatorUnit struct {
	ID         string             `json:"id"`
	Room       string             `json:"room"`
	Type       norms.RadiatorType `json:"type"`
	Connection norms.Connection   `json:"connection"`
	SupplyLenM float64            `json:"supply_len_m"`
	Laying     norms.Laying       `json:"laying"`
	Heavy      bool               `json:"heavy"`
	Options    Options            `json:"options"`
}

// NewRadiatorUnit returns u with the in-floor convector constraint applied.
func NewRadiatorUnit(u RadiatorUnit) RadiatorUnit {
	return u.normalized()
}

// normalized forces in-floor convectors onto side connection with every
// option off.
func (u RadiatorUnit) normalized() RadiatorUnit {
	if u.Type == norms.RadiatorInFloor {
		u.Connection = norms.ConnectionSide
		u.Options = Options{}
	}
	return u
}

// SystemBlock groups hubs and supplies defaults inherited by radiator units.
type SystemBlock struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	DefaultLaying       norms.Laying       `json:"default_laying"`
	DefaultPipeMaterial norms.PipeMaterial `json:"default_pipe_material"`
	DefaultDiameter     norms.PipeDiameter `json:"default_diameter"`
	Hubs                []Hub              `json:"-"`
}

// Input is a complete estimate request: everything the engine needs.
type Input struct {
	Project       Project
	Systems       []SystemBlock
	Units         []RadiatorUnit
	Commissioning bool
}

// HubCount returns the number of hubs over all systems.
func (in Input) HubCount() int {
	n := 0
	for _, s := range in.Systems {
		n += len(s.Hubs)
	}
	return n
}

// Result is hours and cost of one entity or of a sum of entities.
type Result struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

// Add returns the element-wise sum.
func (r Result) Add(o Result) Result {
	return Result{Hours: r.Hours + o.Hours, Cost: r.Cost + o.Cost}
}
