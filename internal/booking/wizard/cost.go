package wizard

// PerGuestCostCents is the per-guest surcharge added on top of the
// venue's base price ($5/guest).
const PerGuestCostCents = 500

// EstimatedCost derives the estimated event cost in cents. Pure: a nil
// guest count contributes nothing.
//
// EstimatedCost(45000, &fifty) == 70000.
func EstimatedCost(basePriceCents int, guestCount *int) int {
	if guestCount == nil {
		return basePriceCents
	}

	return basePriceCents + *guestCount*PerGuestCostCents
}
