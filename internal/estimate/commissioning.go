package estimate

// Commissioning is the post-installation testing and adjustment allowance.
type Commissioning struct {
	Result
	HubCount  int `json:"hub_count"`
	UnitCount int `json:"unit_count"`
}

func (e *Engine) commissioningTrail(hubCount, unitCount int, p Project) *trail {
	ops := e.norms.Commissioning
	t := newTrail("commissioning")
	t.add(Row{Label: "ПНР узлов распределения", Quantity: float64(hubCount), Unit: "шт", Hours: float64(hubCount) * ops.PerHub})
	t.add(Row{Label: "ПНР приборов", Quantity: float64(unitCount), Unit: "шт", Hours: float64(unitCount) * ops.PerUnit})
	e.siteFactors(t, p.Factors)
	return t
}

// Commissioning returns the commissioning allowance for the given counts.
// Only site coefficients apply.
func (e *Engine) Commissioning(hubCount, unitCount int, p Project) Commissioning {
	return Commissioning{
		Result:    e.commissioningTrail(hubCount, unitCount, p).result(p.Rates.Average()),
		HubCount:  hubCount,
		UnitCount: unitCount,
	}
}

// ExplainCommissioning returns the itemized commissioning calculation.
func (e *Engine) ExplainCommissioning(hubCount, unitCount int, p Project) Breakdown {
	return e.commissioningTrail(hubCount, unitCount, p).breakdown("Пусконаладочные работы", p.Rates.Average())
}
