package substore

import (
	"github.com/supersub/supersub/pkg/subscription"
)

// Access rule IDs used by the seed catalog and the seed migration.
const (
	seedRuleFirstSub  int64 = 1
	seedRuleRenewSub  int64 = 2
	seedRuleSwitchSub int64 = 3
)

// DefaultOffers returns the stock catalog: Starter for newcomers, Standard
// for newcomers and returning users, Premium for everyone including switchers.
func DefaultOffers() []subscription.Offer {
	first := subscription.AccessRule{ID: seedRuleFirstSub, Kind: subscription.RuleFirstSub}
	renew := subscription.AccessRule{ID: seedRuleRenewSub, Kind: subscription.RuleRenewSub}
	switchSub := subscription.AccessRule{ID: seedRuleSwitchSub, Kind: subscription.RuleSwitchSub}

	return []subscription.Offer{
		{
			ID:          1,
			Title:       "Offre Starter",
			Description: "Un forfait abordable pour tous les portefeuilles",
			Price:       10,
			Benefits:    "Appels illimités, 300 SMS",
			Rules:       []subscription.AccessRule{first},
		},
		{
			ID:          2,
			Title:       "Offre Standard",
			Description: "La solution idéale pour communiquer sans limite avec vos proches",
			Price:       15,
			Benefits:    "Appels illimités, SMS illimités",
			Rules:       []subscription.AccessRule{first, renew},
		},
		{
			ID:          3,
			Title:       "Offre Premium",
			Description: "Le choix parfait pour les grands voyageurs",
			Price:       20,
			Benefits:    "Appels illimités, SMS illimités, ROAMING en Europe",
			Rules:       []subscription.AccessRule{first, renew, switchSub},
		},
	}
}
