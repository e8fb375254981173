package subscription

import (
	"slices"
	"strings"
)

// OfferID identifies an offer in the catalog.
type OfferID int64

// UserID identifies a registered user.
type UserID int64

// RuleKind names the condition an access rule checks.
type RuleKind string

const (
	// RuleFirstSub admits users who have never held any offer.
	RuleFirstSub RuleKind = "FIRST_SUB"
	// RuleRenewSub admits lapsed users: no current offer, but some previous one.
	RuleRenewSub RuleKind = "RENEW_SUB"
	// RuleSwitchSub admits users currently holding a different offer.
	RuleSwitchSub RuleKind = "SWITCH_SUB"
	// RuleUnknown is produced by ParseRuleKind for unrecognized input. It never matches.
	RuleUnknown RuleKind = ""
)

// ParseRuleKind maps a stored or transported rule name to a RuleKind.
// Matching is case-insensitive; anything else yields RuleUnknown.
func ParseRuleKind(s string) RuleKind {
	switch k := RuleKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case RuleFirstSub, RuleRenewSub, RuleSwitchSub:
		return k
	default:
		return RuleUnknown
	}
}

// Valid reports whether k is one of the known rule kinds.
func (k RuleKind) Valid() bool {
	switch k {
	case RuleFirstSub, RuleRenewSub, RuleSwitchSub:
		return true
	default:
		return false
	}
}

func (k RuleKind) String() string {
	if k == RuleUnknown {
		return "UNKNOWN"
	}
	return string(k)
}

// AccessRule gates eligibility to an offer.
type AccessRule struct {
	ID   int64    `json:"id" yaml:"id"`
	Kind RuleKind `json:"access_type" yaml:"access_type"`
}

// Offer is a subscribable product tier. Display fields are opaque to eligibility logic.
type Offer struct {
	ID          OfferID      `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Price       int64        `json:"price" yaml:"price"`
	Benefits    string       `json:"benefits" yaml:"benefits"`
	Rules       []AccessRule `json:"access_rules" yaml:"access_rules"`
}

// Clone returns a deep copy of the offer.
func (o Offer) Clone() Offer {
	o.Rules = slices.Clone(o.Rules)
	return o
}

// HasRule reports whether the offer carries a rule of the given kind.
func (o Offer) HasRule(kind RuleKind) bool {
	return slices.ContainsFunc(o.Rules, func(r AccessRule) bool {
		return r.Kind == kind
	})
}

// Validate checks the catalog-level invariants of an offer.
func (o Offer) Validate() error {
	if o.ID <= 0 {
		return ErrInvalidOffer
	}
	if strings.TrimSpace(o.Title) == "" {
		return ErrInvalidOffer
	}
	if o.Price <= 0 {
		return ErrInvalidOffer
	}
	return nil
}

// OfferView pairs an offer with the caller's eligibility for it.
// Accessible is nil when the caller is anonymous. It reports the access rules
// only: the offer the caller already holds can be Accessible (for instance
// when it has no rules) while Subscribe to it still fails with
// ErrAlreadySubscribed.
type OfferView struct {
	Offer
	Accessible *bool `json:"accessible,omitempty"`
}

// Outcome is the result of a successful transition.
type Outcome struct {
	Record Record
	// Offer is the offer the transition targeted.
	Offer Offer
}
