// Package booking holds the pricing and validation rules shared by every
// surface that sells an experience: quote endpoint, checkout, assistant.
package booking

import "math"

type Option string

const (
	OptionStandard Option = "standard"
	OptionPremium  Option = "premium"
)

const (
	// premiumMultiplier is applied to the adult unit price for the premium tier.
	premiumMultiplier = 1.3
	// childFactor: children pay half the adult unit price when the experience
	// enables the child rule. The discount applies after the premium
	// multiplier, so a premium child price is round(round(base*1.3)*0.5).
	childFactor = 0.5
	// partnerShare of the subtotal goes to the conservation partner; the
	// platform keeps the remainder.
	partnerShare = 0.9
)

// Breakdown is derived, never stored as-is. All amounts are integer minor
// units. PlatformAmount is defined as subtotal minus partner amount so the
// two always sum to the subtotal exactly.
type Breakdown struct {
	AdultUnit      int64 `json:"adult_unit"`
	ChildUnit      int64 `json:"child_unit"`
	AdultSubtotal  int64 `json:"adult_subtotal"`
	ChildSubtotal  int64 `json:"child_subtotal"`
	Subtotal       int64 `json:"subtotal"`
	PartnerAmount  int64 `json:"partner_amount"`
	PlatformAmount int64 `json:"platform_amount"`
}

// roundHalfUp is the single rounding rule for the whole module.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// Quote prices a selection against an experience. Inputs are assumed
// validated (basePrice > 0, adults >= 1, children >= 0); Quote itself never
// fails.
func Quote(basePrice int64, childRule bool, opt Option, adults, children int) Breakdown {
	adultUnit := basePrice
	if opt == OptionPremium {
		adultUnit = roundHalfUp(float64(basePrice) * premiumMultiplier)
	}
	childUnit := adultUnit
	if childRule {
		childUnit = roundHalfUp(float64(adultUnit) * childFactor)
	}
	b := Breakdown{
		AdultUnit:     adultUnit,
		ChildUnit:     childUnit,
		AdultSubtotal: adultUnit * int64(adults),
		ChildSubtotal: childUnit * int64(children),
	}
	b.Subtotal = b.AdultSubtotal + b.ChildSubtotal
	b.PartnerAmount = roundHalfUp(float64(b.Subtotal) * partnerShare)
	b.PlatformAmount = b.Subtotal - b.PartnerAmount
	return b
}
