package estimate

// HubLine is one evaluated hub.
type HubLine struct {
	Result
	SystemID  string    `json:"system_id"`
	Hub       Hub       `json:"hub"`
	Breakdown Breakdown `json:"breakdown"`
}

// UnitLine is one evaluated radiator unit.
type UnitLine struct {
	Result
	Unit      RadiatorUnit `json:"unit"`
	Breakdown Breakdown    `json:"breakdown"`
}

// Summary is the evaluated project.
type Summary struct {
	Hubs  []HubLine  `json:"hubs"`
	Units []UnitLine `json:"units"`

	// Works is the sum over hubs and units.
	Works Result `json:"works"`

	// Commissioning is always computed; it is part of Total only when
	// CommissioningIncluded is set.
	Commissioning          Commissioning `json:"commissioning"`
	CommissioningBreakdown Breakdown     `json:"commissioning_breakdown"`
	CommissioningIncluded  bool          `json:"commissioning_included"`

	Total Result `json:"total"`

	Advisories []Advisory `json:"advisories,omitempty"`
	Warnings   []Warning  `json:"warnings,omitempty"`
}

// Aggregate evaluates every hub of every system and every unit, the latter
// against the first system's defaults, and sums them. Commissioning is added
// when in.Commissioning is set.
func (e *Engine) Aggregate(in Input) Summary {
	rate := in.Project.Rates.Average()
	var sum Summary

	for _, s := range in.Systems {
		for _, h := range s.Hubs {
			b := e.hubTrail(h, in.Project).breakdown(hubTitle(h), rate)
			sum.Hubs = append(sum.Hubs, HubLine{SystemID: s.ID, Hub: h, Result: b.Result(), Breakdown: b})
			sum.Works = sum.Works.Add(b.Result())
			sum.Warnings = append(sum.Warnings, b.Warnings...)
		}
	}

	if len(in.Systems) > 0 {
		first := in.Systems[0]
		for _, u := range in.Units {
			b := e.ExplainUnit(u, first, in.Project)
			sum.Units = append(sum.Units, UnitLine{Unit: u.normalized(), Result: b.Result(), Breakdown: b})
			sum.Works = sum.Works.Add(b.Result())
			sum.Warnings = append(sum.Warnings, b.Warnings...)
		}
	}

	hubCount := in.HubCount()
	sum.Commissioning = e.Commissioning(hubCount, len(in.Units), in.Project)
	sum.CommissioningBreakdown = e.ExplainCommissioning(hubCount, len(in.Units), in.Project)
	sum.CommissioningIncluded = in.Commissioning
	sum.Warnings = append(sum.Warnings, sum.CommissioningBreakdown.Warnings...)

	sum.Total = sum.Works
	if in.Commissioning {
		sum.Total = sum.Total.Add(sum.Commissioning.Result)
	}

	sum.Advisories = Advise(in)
	return sum
}
