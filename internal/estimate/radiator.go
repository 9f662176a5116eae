package estimate

import (
	"fmt"

	"github.com/Simplici0/heatquote/internal/norms"
)

// EffectiveLaying resolves "inherit" (or an empty value) to the system's
// default laying.
func EffectiveLaying(u RadiatorUnit, s SystemBlock) norms.Laying {
	if u.Laying == "" || u.Laying == norms.LayingInherit {
		return s.DefaultLaying
	}
	return u.Laying
}

func (e *Engine) unitTrail(u RadiatorUnit, s SystemBlock, p Project) *trail {
	ops := e.norms.Radiator
	u = u.normalized()
	t := newTrail("unit:" + u.ID)

	// The heavy multiplier applies to the base mount only.
	base := Row{Label: "Базовый монтаж", Hours: ops.BaseMount}
	if u.Heavy {
		base.Hours = ops.BaseMount * ops.HeavyMultiplier
		base.Note = fmt.Sprintf("вес > 20 кг (×%s)", formatNumber(ops.HeavyMultiplier))
	}
	t.add(base)
	t.add(Row{Label: "Воздухоотводчик", Hours: ops.AirVent})

	side := u.Connection == norms.ConnectionSide
	bottom := u.Connection == norms.ConnectionBottom
	if side && u.Options.ThermostatValve {
		t.add(Row{Label: "Термостатический и балансировочный клапан", Hours: ops.ThermostatValve})
	}
	if side && u.Options.Bypass {
		t.add(Row{Label: "Байпас", Hours: ops.Bypass})
	}
	if bottom && u.Options.BottomUnit {
		t.add(Row{Label: "Узел нижнего подключения", Hours: ops.BottomUnit})
	}
	if (bottom && u.Options.PreMountTubes) || (side && u.Options.PreMountTubesSide) {
		t.add(Row{Label: "Предмонтаж трубок без радиатора", Hours: ops.PreMountTubes})
	}
	if u.Options.WallConnection {
		t.add(Row{Label: "Подключение из стены", Hours: ops.WallConnection})
	}
	if u.Options.ChromeTubes {
		t.add(Row{Label: "Хромированные трубки", Hours: ops.ChromeTubes})
	}

	laying := EffectiveLaying(u, s)
	lay, ok := e.norms.Laying(laying)
	if !ok {
		t.warnings = append(t.warnings, Warning{Entity: t.entity, Field: "laying", Key: string(laying)})
	}
	t.add(Row{
		Label:    "Подводящие",
		Quantity: u.SupplyLenM,
		Unit:     "м",
		Note:     fmt.Sprintf("коэф. прокладки %s (%s)", formatNumber(lay), laying.Label()),
		Hours:    u.SupplyLenM * ops.PipePerMeter * lay,
	})

	e.siteFactors(t, p.Factors)

	typ, ok := e.norms.RadiatorType(u.Type)
	t.lookup("Тип прибора", "radiator_type", string(u.Type), typ, ok)

	mat, ok := e.norms.PipeMaterial(s.DefaultPipeMaterial)
	t.lookup("Материал труб", "pipe_material", string(s.DefaultPipeMaterial), mat, ok)

	return t
}

// UnitHours returns hours and cost of one radiator unit evaluated against
// the defaults of system s.
func (e *Engine) UnitHours(u RadiatorUnit, s SystemBlock, p Project) Result {
	return e.unitTrail(u, s, p).result(p.Rates.Average())
}

// ExplainUnit returns the itemized calculation of one radiator unit.
func (e *Engine) ExplainUnit(u RadiatorUnit, s SystemBlock, p Project) Breakdown {
	title := "Отопительный прибор"
	if u.Room != "" {
		title = fmt.Sprintf("%s (%s)", title, u.Room)
	}
	return e.unitTrail(u, s, p).breakdown(title, p.Rates.Average())
}
