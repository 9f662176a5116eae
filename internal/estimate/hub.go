package estimate

import "fmt"

func hubEntity(h Hub) string {
	if h.ID != "" {
		return "hub:" + h.ID
	}
	return "hub:" + h.Name
}

func (e *Engine) hubTrail(h Hub, p Project) *trail {
	ops := e.norms.Hub
	t := newTrail(hubEntity(h))

	if tee, ok := h.Tee(); ok {
		t.add(Row{
			Label:    "Магистраль",
			Quantity: tee.MainRunLengthM,
			Unit:     "м",
			Hours:    tee.MainRunLengthM * ops.SupplyPerMeter,
		})
		t.add(Row{
			Label:    "Отводы",
			Quantity: float64(tee.Branches),
			Unit:     "шт",
			Hours:    float64(tee.Branches) * ops.TeeBranch,
		})
		e.pipeFactors(t, tee.Material, tee.Diameter, tee.Laying)
	} else {
		m, _ := h.Manifold()
		outputs := float64(m.Outputs)
		t.add(Row{Label: "Базовый монтаж", Hours: ops.BaseMount})
		t.add(Row{
			Label:    "Выходы коллектора",
			Quantity: outputs,
			Unit:     "шт",
			Hours:    outputs * ops.OutputConnection,
		})
		t.add(Row{
			Label:    "Подводящие",
			Quantity: m.LoopLengthM,
			Unit:     "м",
			Hours:    m.LoopLengthM * ops.SupplyPerMeter,
		})
		if m.Pump {
			t.add(Row{Label: "Смесительная группа", Hours: ops.MixingGroup})
		}
		if m.Cabinet != nil {
			if m.Cabinet.Kind == CabinetBuiltIn {
				t.add(Row{Label: "Шкаф встроенный", Quantity: outputs, Unit: "вых.", Hours: ops.CabinetBuiltIn.Hours(outputs)})
			} else {
				t.add(Row{Label: "Шкаф накладной", Quantity: outputs, Unit: "вых.", Hours: ops.CabinetSurface.Hours(outputs)})
			}
		}
		e.pipeFactors(t, m.Material, m.Diameter, m.Laying)
	}

	e.siteFactors(t, p.Factors)
	return t
}

// HubHours returns hours and cost of one distribution hub.
func (e *Engine) HubHours(h Hub, p Project) Result {
	return e.hubTrail(h, p).result(p.Rates.Average())
}

// ExplainHub returns the itemized calculation of one hub.
func (e *Engine) ExplainHub(h Hub, p Project) Breakdown {
	return e.hubTrail(h, p).breakdown(hubTitle(h), p.Rates.Average())
}

func hubTitle(h Hub) string {
	kind := "Коллектор"
	if h.Mode() == ModeTee {
		kind = "Тройниковая"
	}
	if h.Name == "" {
		return kind
	}
	return fmt.Sprintf("%s %s", kind, h.Name)
}

// HubTypeLabel is the display name of the hub's distribution scheme.
func HubTypeLabel(h Hub) string {
	if h.Mode() == ModeTee {
		return "Тройниковая система"
	}
	return "Коллекторная система"
}
