package subscription

// IsAccessible reports whether a user with the given record may subscribe to offer.
// An offer without rules is open to everyone; otherwise any single matching rule is enough.
func IsAccessible(offer Offer, record Record) bool {
	if len(offer.Rules) == 0 {
		return true
	}
	for _, rule := range offer.Rules {
		if ruleMatches(rule.Kind, offer.ID, record) {
			return true
		}
	}
	return false
}

func ruleMatches(kind RuleKind, offerID OfferID, record Record) bool {
	switch kind {
	case RuleFirstSub:
		return !record.HasCurrent() && !record.HasPrevious()
	case RuleRenewSub:
		// Any previous offer qualifies, not only this one.
		return !record.HasCurrent() && record.HasPrevious()
	case RuleSwitchSub:
		return record.HasCurrent() && !record.IsCurrent(offerID)
	default:
		return false
	}
}
