package services

import "math/rand"

// LoadingVariant is one decorative loading-screen animation the front-end
// can play while data loads.
type LoadingVariant struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// DefaultLoadingVariants weights the calmer animations higher.
var DefaultLoadingVariants = []LoadingVariant{
	{Name: "folhas", Weight: 4},
	{Name: "ondas", Weight: 3},
	{Name: "sol-nascente", Weight: 2},
	{Name: "constelacao", Weight: 1},
}

// VariantPicker selects a variant proportionally to its weight. The random
// source is injected so tests can pin the draw.
type VariantPicker struct {
	variants  []LoadingVariant
	randFloat func() float64
}

func NewVariantPicker(variants []LoadingVariant) *VariantPicker {
	if len(variants) == 0 {
		variants = DefaultLoadingVariants
	}
	return &VariantPicker{variants: variants, randFloat: rand.Float64}
}

// Pick draws one variant. Negative weights count as zero; if the total
// weight is zero the first variant is returned.
func (p *VariantPicker) Pick() LoadingVariant {
	total := 0.0
	for _, v := range p.variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total <= 0 {
		return p.variants[0]
	}
	target := p.randFloat() * total
	acc := 0.0
	for _, v := range p.variants {
		if v.Weight <= 0 {
			continue
		}
		acc += v.Weight
		if target < acc {
			return v
		}
	}
	return p.variants[len(p.variants)-1]
}
