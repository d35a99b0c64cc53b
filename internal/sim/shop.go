package sim

// PurchaseResult is the synchronous outcome of a shop purchase.
type PurchaseResult int

const (
	PurchaseOK PurchaseResult = iota
	PurchaseAlreadyUnlocked
	PurchaseInsufficientCurrency
)

func (r PurchaseResult) String() string {
	switch r {
	case PurchaseOK:
		return "unlocked"
	case PurchaseAlreadyUnlocked:
		return "already unlocked"
	default:
		return "not enough currency"
	}
}

// ShopTab lists the ability IDs sold for one currency, in catalog order.
// The chip tab carries nine entries, each biome currency three.
func ShopTab(c Currency) []AbilityID {
	var ids []AbilityID
	for id := AbilityID(0); id < abilityCount; id++ {
		if abilityDefs[id].Currency == c {
			ids = append(ids, id)
		}
	}
	return ids
}

// Purchase unlocks an ability, deducting its cost from its currency.
// Repeat purchases are accepted without charge; a short wallet changes
// nothing.
func (g *Game) Purchase(id AbilityID) PurchaseResult {
	if id < 0 || id >= abilityCount {
		return PurchaseInsufficientCurrency
	}
	def := &abilityDefs[id]
	if g.abilities.Unlocked(id) {
		return PurchaseAlreadyUnlocked
	}
	if g.player.Wallet[def.Currency] < def.Cost {
		return PurchaseInsufficientCurrency
	}
	g.player.Wallet[def.Currency] -= def.Cost
	g.abilities.Unlock(id)
	g.pushEvent(Event{Kind: EventAbilityUnlocked, Ability: id})
	return PurchaseOK
}

// Affordable reports whether the ability could be bought right now.
func (g *Game) Affordable(id AbilityID) bool {
	if id < 0 || id >= abilityCount {
		return false
	}
	def := &abilityDefs[id]
	return !g.abilities.Unlocked(id) && g.player.Wallet[def.Currency] >= def.Cost
}

// Unlocked reports whether the ability is already owned.
func (g *Game) Unlocked(id AbilityID) bool {
	if id < 0 || id >= abilityCount {
		return false
	}
	return g.abilities.Unlocked(id)
}
