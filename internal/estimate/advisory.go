package estimate

import "fmt"

// Advisory codes.
const (
	AdvisoryConnectionPoints = "connection_points"
	AdvisoryNoSystem         = "no_system"
)

// Advisory is a non-fatal consistency notice about the input. It never
// changes any figure.
type Advisory struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	SystemID string `json:"system_id,omitempty"`
	Required int    `json:"required,omitempty"`
	Provided int    `json:"provided,omitempty"`
}

// Advise checks that every system offers as many connection points as its
// units need (two per unit: supply and return) and that units have a system
// to be evaluated against. Units belong to the first system.
func Advise(in Input) []Advisory {
	var out []Advisory
	if len(in.Systems) == 0 {
		if len(in.Units) > 0 {
			out = append(out, Advisory{
				Code:    AdvisoryNoSystem,
				Message: fmt.Sprintf("Нет системы для расчёта приборов: %d шт. не учтены", len(in.Units)),
			})
		}
		return out
	}

	for i, s := range in.Systems {
		units := 0
		if i == 0 {
			units = len(in.Units)
		}
		required := 2 * units
		provided := 0
		for _, h := range s.Hubs {
			provided += h.ConnectionPoints()
		}
		if required == provided {
			continue
		}
		name := s.Name
		if name == "" {
			name = s.ID
		}
		out = append(out, Advisory{
			Code: AdvisoryConnectionPoints,
			Message: fmt.Sprintf("Система %q: требуется %d точек подключения (2 × %d приборов), предусмотрено %d",
				name, required, units, provided),
			SystemID: s.ID,
			Required: required,
			Provided: provided,
		})
	}
	return out
}
