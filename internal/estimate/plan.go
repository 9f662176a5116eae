package estimate

import (
	"fmt"
	"math"
	"sort"

	"github.com/Simplici0/heatquote/internal/norms"
)

// PlanStep is one stage of the radiator installation plan.
type PlanStep struct {
	Title string   `json:"title"`
	Norm  string   `json:"norm"`
	Hours float64  `json:"hours"`
	Tools []string `json:"tools,omitempty"`
	Note  string   `json:"note,omitempty"`
}

// LayingLength is the total supply length laid with one method.
type LayingLength struct {
	Laying  norms.Laying `json:"laying"`
	LengthM float64      `json:"length_m"`
}

// Plan is the ordered radiator installation plan of a project.
type Plan struct {
	Steps    []PlanStep     `json:"steps"`
	Lengths  []LayingLength `json:"lengths,omitempty"`
	Hours    float64        `json:"hours"`
	Units    int            `json:"units"`
	Heavy    int            `json:"heavy"`
	SiteCoef float64        `json:"site_coef"`
}

// Fractions of the base mount time spent on the per-unit plan stages.
const (
	markingShare  = 0.4
	carryingShare = 0.3
	bracketsShare = 0.5
	hangingShare  = 1.0
)

// InstallPlan splits the radiator work of in into installation stages. Unit
// stages scale with the unit count; piping sums every supply run with its
// laying coefficient. Site coefficients apply to every stage. Piping needs a
// system to resolve inherited laying and is zero without one.
func (e *Engine) InstallPlan(in Input) Plan {
	ops := e.norms.Radiator
	site := e.SiteCoefficient(in.Project.Factors)
	n := float64(len(in.Units))

	p := Plan{Units: len(in.Units), SiteCoef: site}
	for _, u := range in.Units {
		if u.Heavy {
			p.Heavy++
		}
	}

	stage := func(title string, share float64, tools ...string) PlanStep {
		per := ops.BaseMount * share
		return PlanStep{
			Title: title,
			Norm:  fmt.Sprintf("%d мин/шт", int(math.Round(per*60))),
			Hours: n * per * site,
			Tools: tools,
		}
	}

	hanging := stage("Шаг 4. Навес радиаторов на кронштейны", hangingShare, "Мягкие подкладки", "Уровень")
	if p.Heavy > 0 {
		hanging.Tools = []string{"Тележка", "Стропы", "Мягкие подкладки", "Уровень"}
		hanging.Note = fmt.Sprintf("Для тяжёлых моделей (%d шт) используйте тележку/стропы", p.Heavy)
	}

	p.Steps = []PlanStep{
		stage("Шаг 1. Разметка, штробление и сверление", markingShare, "Нож/ножницы", "Ключ разводной", "Уплотнительная лента", "Паспорт изделия"),
		stage("Шаг 2. Разнести все радиаторы по местам", carryingShare, "Спецификация/план", "Тележка", "Ремни", "Мягкие подкладки"),
		stage("Шаг 3. Разметить и установить крепления для всех радиаторов", bracketsShare, "Рулетка", "Уровень", "Карандаш", "Перфоратор", "Дюбели", "Шурупы"),
		hanging,
		e.pipingStep(in, site, &p),
	}
	for _, s := range p.Steps {
		p.Hours += s.Hours
	}
	return p
}

func (e *Engine) pipingStep(in Input, site float64, p *Plan) PlanStep {
	ops := e.norms.Radiator
	step := PlanStep{
		Title: "Шаг 5. Прокладка трубопроводов в теплоизоляции с креплением",
		Norm:  fmt.Sprintf("%d мин/м × коэф. прокладки", int(math.Round(ops.PipePerMeter*60))),
		Tools: []string{"Труборез", "Ножницы по металлу", "Перфолента", "Клипсы", "Скотч/лента", "Рулетка"},
	}
	if len(in.Systems) == 0 {
		return step
	}

	lengths := make(map[norms.Laying]float64)
	var hours float64
	for _, u := range in.Units {
		laying := EffectiveLaying(u, in.Systems[0])
		lay, _ := e.norms.Laying(laying)
		hours += u.SupplyLenM * ops.PipePerMeter * lay
		lengths[laying] += u.SupplyLenM
	}
	step.Hours = hours * site

	for k, v := range lengths {
		p.Lengths = append(p.Lengths, LayingLength{Laying: k, LengthM: v})
	}
	sort.Slice(p.Lengths, func(i, j int) bool { return p.Lengths[i].Laying < p.Lengths[j].Laying })
	if len(p.Lengths) > 0 {
		note := "Длины по способам:"
		for i, l := range p.Lengths {
			if i > 0 {
				note += ","
			}
			note += fmt.Sprintf(" %s: %s м", l.Laying.Label(), formatNumber(l.LengthM))
		}
		step.Note = note
	}
	return step
}
