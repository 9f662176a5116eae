package estimate

// Breakdown is the audit trail of one entity: additive rows, the subtotal
// before coefficients, the coefficient chain in application order, and the
// final hours and cost.
type Breakdown struct {
	Title    string    `json:"title"`
	Rows     []Row     `json:"rows"`
	Subtotal float64   `json:"subtotal"`
	Factors  []Factor  `json:"factors"`
	Hours    float64   `json:"hours"`
	Cost     float64   `json:"cost"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Result returns the final hours and cost.
func (b Breakdown) Result() Result {
	return Result{Hours: b.Hours, Cost: b.Cost}
}

// Coefficient returns the product of the coefficient chain.
func (b Breakdown) Coefficient() float64 {
	c := 1.0
	for _, f := range b.Factors {
		c *= f.Value
	}
	return c
}

// ElementCoefficient returns the product of the entity's own coefficients,
// leaving out the site factors.
func (b Breakdown) ElementCoefficient() float64 {
	c := 1.0
	for _, f := range b.Factors {
		if !f.Site {
			c *= f.Value
		}
	}
	return c
}
