package norms

// WallMaterial is the dominant wall material of the building.
type WallMaterial string

const (
	WallBrick           WallMaterial = "brick"
	WallAeratedConcrete WallMaterial = "aerated_concrete"
	WallConcrete        WallMaterial = "concrete"
	WallWoodenFrame     WallMaterial = "wooden_frame"
	WallGluedBeamFrame  WallMaterial = "glued_beam_frame"
)

// Congestion describes how cramped the work site is.
type Congestion string

const (
	CongestionNone   Congestion = "none"
	CongestionMedium Congestion = "medium"
	CongestionHigh   Congestion = "high"
)

// PipeMaterial is the pipe material of a supply run.
type PipeMaterial string

const (
	PipePEX      PipeMaterial = "PEX"
	PipePEXALPEX PipeMaterial = "PEX-AL-PEX"
	PipePP       PipeMaterial = "PP"
	PipeCopper   PipeMaterial = "Cu"
	PipeSteel    PipeMaterial = "Steel"
)

// PipeDiameter is a nominal outer diameter in millimetres.
type PipeDiameter string

const (
	Diameter16 PipeDiameter = "16"
	Diameter20 PipeDiameter = "20"
	Diameter25 PipeDiameter = "25"
	Diameter32 PipeDiameter = "32"
)

// Laying is the pipe laying method. LayingInherit is only meaningful on a
// radiator unit and means "use the system default".
type Laying string

const (
	LayingFloor    Laying = "floor"
	LayingChase    Laying = "chase"
	LayingCeiling  Laying = "ceiling"
	LayingOpen     Laying = "open"
	LayingExternal Laying = "external"
	LayingInherit  Laying = "inherit"
)

// Normalize maps the hub-side "external" spelling onto "open".
func (l Laying) Normalize() Laying {
	if l == LayingExternal {
		return LayingOpen
	}
	return l
}

// RadiatorType is the kind of heating unit.
type RadiatorType string

const (
	RadiatorPanel     RadiatorType = "panel"
	RadiatorSectional RadiatorType = "sectional"
	RadiatorTubular   RadiatorType = "tubular"
	RadiatorInFloor   RadiatorType = "infloor"
)

// Connection is the side the unit is connected from.
type Connection string

const (
	ConnectionBottom Connection = "bottom"
	ConnectionSide   Connection = "side"
)
