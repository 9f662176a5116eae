// Package projectfile reads estimate documents written in YAML or JSON and
// turns them into engine input.
package projectfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/heatquote/internal/estimate"
	"github.com/Simplici0/heatquote/internal/norms"
)

// Document is the on-disk form of an estimate request.
type Document struct {
	Project       *estimate.Project `yaml:"project,omitempty" json:"project,omitempty"`
	Systems       []System          `yaml:"systems" json:"systems"`
	Units         []Unit            `yaml:"units" json:"units"`
	Commissioning bool              `yaml:"commissioning" json:"commissioning"`
}

// System is a system block with its hubs.
type System struct {
	ID                  string             `yaml:"id,omitempty" json:"id,omitempty"`
	Name                string             `yaml:"name" json:"name"`
	DefaultLaying       norms.Laying       `yaml:"default_laying" json:"default_laying"`
	DefaultPipeMaterial norms.PipeMaterial `yaml:"default_pipe_material" json:"default_pipe_material"`
	DefaultDiameter     norms.PipeDiameter `yaml:"default_diameter" json:"default_diameter"`
	Hubs                []Hub              `yaml:"hubs" json:"hubs"`
}

// Hub is a distribution hub. Mode selects which fields apply; material and
// diameter are shared, and a tee falls back to them when its own main run
// values are empty.
type Hub struct {
	ID       string             `yaml:"id,omitempty" json:"id,omitempty"`
	Name     string             `yaml:"name" json:"name"`
	Location string             `yaml:"location,omitempty" json:"location,omitempty"`
	Mode     estimate.HubMode   `yaml:"mode" json:"mode"`
	Laying   norms.Laying       `yaml:"laying" json:"laying"`
	Material norms.PipeMaterial `yaml:"material" json:"material"`
	Diameter norms.PipeDiameter `yaml:"diameter" json:"diameter"`

	LoopLengthM float64              `yaml:"loop_length_m,omitempty" json:"loop_length_m,omitempty"`
	Outputs     int                  `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Pump        bool                 `yaml:"pump,omitempty" json:"pump,omitempty"`
	Cabinet     estimate.CabinetKind `yaml:"cabinet,omitempty" json:"cabinet,omitempty"`

	MainRunLengthM float64            `yaml:"main_run_length_m,omitempty" json:"main_run_length_m,omitempty"`
	Branches       int                `yaml:"branches,omitempty" json:"branches,omitempty"`
	MainMaterial   norms.PipeMaterial `yaml:"main_material,omitempty" json:"main_material,omitempty"`
	MainDiameter   norms.PipeDiameter `yaml:"main_diameter,omitempty" json:"main_diameter,omitempty"`
}

// Unit is a radiator unit.
type Unit struct {
	ID         string             `yaml:"id,omitempty" json:"id,omitempty"`
	Room       string             `yaml:"room" json:"room"`
	Type       norms.RadiatorType `yaml:"type" json:"type"`
	Connection norms.Connection   `yaml:"connection" json:"connection"`
	SupplyLenM float64            `yaml:"supply_len_m" json:"supply_len_m"`
	Laying     norms.Laying       `yaml:"laying,omitempty" json:"laying,omitempty"`
	Heavy      bool               `yaml:"heavy,omitempty" json:"heavy,omitempty"`
	Options    estimate.Options   `yaml:"options" json:"options"`
}

// Parse decodes a YAML or JSON document. Unknown fields are rejected.
func Parse(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, errors.New("empty document")
		}
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Input converts the document into engine input. Missing IDs are generated;
// a missing project block selects the default project. Unknown coefficient
// keys are left for the engine to flag.
func (d Document) Input() (estimate.Input, error) {
	in := estimate.Input{
		Project:       estimate.DefaultProject(),
		Commissioning: d.Commissioning,
	}
	if d.Project != nil {
		in.Project = *d.Project
	}

	for i, s := range d.Systems {
		block := estimate.SystemBlock{
			ID:                  idOrNew(s.ID),
			Name:                s.Name,
			DefaultLaying:       s.DefaultLaying,
			DefaultPipeMaterial: s.DefaultPipeMaterial,
			DefaultDiameter:     s.DefaultDiameter,
		}
		for j, h := range s.Hubs {
			hub, err := h.hub()
			if err != nil {
				return estimate.Input{}, fmt.Errorf("systems[%d].hubs[%d]: %w", i, j, err)
			}
			block.Hubs = append(block.Hubs, hub)
		}
		in.Systems = append(in.Systems, block)
	}

	for _, u := range d.Units {
		in.Units = append(in.Units, estimate.NewRadiatorUnit(estimate.RadiatorUnit{
			ID:         idOrNew(u.ID),
			Room:       u.Room,
			Type:       u.Type,
			Connection: u.Connection,
			SupplyLenM: u.SupplyLenM,
			Laying:     u.Laying,
			Heavy:      u.Heavy,
			Options:    u.Options,
		}))
	}
	return in, nil
}

// FromInput is the inverse of Input: a document that converts back to in,
// with its project and IDs spelled out.
func FromInput(in estimate.Input) Document {
	p := in.Project
	doc := Document{Project: &p, Commissioning: in.Commissioning}

	for _, s := range in.Systems {
		sys := System{
			ID:                  s.ID,
			Name:                s.Name,
			DefaultLaying:       s.DefaultLaying,
			DefaultPipeMaterial: s.DefaultPipeMaterial,
			DefaultDiameter:     s.DefaultDiameter,
		}
		for _, h := range s.Hubs {
			sys.Hubs = append(sys.Hubs, fromHub(h))
		}
		doc.Systems = append(doc.Systems, sys)
	}

	for _, u := range in.Units {
		doc.Units = append(doc.Units, Unit{
			ID:         u.ID,
			Room:       u.Room,
			Type:       u.Type,
			Connection: u.Connection,
			SupplyLenM: u.SupplyLenM,
			Laying:     u.Laying,
			Heavy:      u.Heavy,
			Options:    u.Options,
		})
	}
	return doc
}

func fromHub(h estimate.Hub) Hub {
	out := Hub{ID: h.ID, Name: h.Name, Location: h.Location, Mode: h.Mode()}
	if t, ok := h.Tee(); ok {
		out.Laying = t.Laying
		out.Material = t.Material
		out.Diameter = t.Diameter
		out.MainRunLengthM = t.MainRunLengthM
		out.Branches = t.Branches
		return out
	}
	m, _ := h.Manifold()
	out.Laying = m.Laying
	out.Material = m.Material
	out.Diameter = m.Diameter
	out.LoopLengthM = m.LoopLengthM
	out.Outputs = m.Outputs
	out.Pump = m.Pump
	if m.Cabinet != nil {
		out.Cabinet = m.Cabinet.Kind
	}
	return out
}

func (h Hub) hub() (estimate.Hub, error) {
	id := idOrNew(h.ID)
	var hub estimate.Hub
	switch h.Mode {
	case estimate.ModeTee:
		t := estimate.Tee{
			MainRunLengthM: h.MainRunLengthM,
			Branches:       h.Branches,
			Material:       h.MainMaterial,
			Diameter:       h.MainDiameter,
			Laying:         h.Laying,
		}
		if t.Material == "" {
			t.Material = h.Material
		}
		if t.Diameter == "" {
			t.Diameter = h.Diameter
		}
		hub = estimate.NewTeeHub(id, h.Name, t)
	case estimate.ModeManifold, "":
		m := estimate.Manifold{
			LoopLengthM: h.LoopLengthM,
			Outputs:     h.Outputs,
			Laying:      h.Laying,
			Pump:        h.Pump,
			Material:    h.Material,
			Diameter:    h.Diameter,
		}
		switch h.Cabinet {
		case "":
		case estimate.CabinetBuiltIn, estimate.CabinetSurface:
			m.Cabinet = &estimate.Cabinet{Kind: h.Cabinet}
		default:
			return estimate.Hub{}, fmt.Errorf("unknown cabinet %q", h.Cabinet)
		}
		hub = estimate.NewManifoldHub(id, h.Name, m)
	default:
		return estimate.Hub{}, fmt.Errorf("unknown hub mode %q", h.Mode)
	}
	hub.Location = h.Location
	return hub, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// Example returns a small document with one manifold and one radiator.
func Example() Document {
	p := estimate.DefaultProject()
	return Document{
		Project: &p,
		Systems: []System{{
			Name:                "Отопление",
			DefaultLaying:       norms.LayingFloor,
			DefaultPipeMaterial: norms.PipePEXALPEX,
			DefaultDiameter:     norms.Diameter16,
			Hubs: []Hub{{
				Name:        "К1",
				Location:    "Котельная",
				Mode:        estimate.ModeManifold,
				Laying:      norms.LayingFloor,
				Material:    norms.PipePEXALPEX,
				Diameter:    norms.Diameter25,
				LoopLengthM: 20,
				Outputs:     2,
			}},
		}},
		Units: []Unit{{
			Room:       "Гостиная",
			Type:       norms.RadiatorPanel,
			Connection: norms.ConnectionBottom,
			SupplyLenM: 20,
			Laying:     norms.LayingInherit,
			Options:    estimate.Options{BottomUnit: true, WallConnection: true},
		}},
		Commissioning: true,
	}
}
