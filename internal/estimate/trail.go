package estimate

// Row is one additive term of a calculation, before coefficients.
type Row struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Note     string  `json:"note,omitempty"`
	Hours    float64 `json:"hours"`
}

// Factor is one multiplicative coefficient applied to the subtotal. Site
// factors are the project-wide ones shared by every entity.
type Factor struct {
	Label string  `json:"label"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Site  bool    `json:"site,omitempty"`
}

// Warning flags an enumerated key that was not found in a coefficient table
// and was replaced by 1.0.
type Warning struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Key    string `json:"key"`
}

// trail is the ordered step sequence of one entity. Calculators and the
// breakdown reporter both read it, so they cannot diverge.
type trail struct {
	entity   string
	rows     []Row
	factors  []Factor
	warnings []Warning
}

func newTrail(entity string) *trail {
	return &trail{entity: entity}
}

func (t *trail) add(r Row) {
	t.rows = append(t.rows, r)
}

func (t *trail) factor(label, key string, value float64) {
	t.factors = append(t.factors, Factor{Label: label, Key: key, Value: value})
}

// lookup records a table coefficient, flagging unknown keys.
func (t *trail) lookup(label, field, key string, value float64, ok bool) {
	if !ok {
		t.warnings = append(t.warnings, Warning{Entity: t.entity, Field: field, Key: key})
	}
	t.factor(label, key, value)
}

func (t *trail) subtotal() float64 {
	var sum float64
	for _, r := range t.rows {
		sum += r.Hours
	}
	return sum
}

func (t *trail) hours() float64 {
	h := t.subtotal()
	for _, f := range t.factors {
		h *= f.Value
	}
	return h
}

func (t *trail) result(rate float64) Result {
	h := t.hours()
	return Result{Hours: h, Cost: h * rate}
}

func (t *trail) breakdown(title string, rate float64) Breakdown {
	res := t.result(rate)
	return Breakdown{
		Title:    title,
		Rows:     append([]Row(nil), t.rows...),
		Subtotal: t.subtotal(),
		Factors:  append([]Factor(nil), t.factors...),
		Hours:    res.Hours,
		Cost:     res.Cost,
		Warnings: append([]Warning(nil), t.warnings...),
	}
}
