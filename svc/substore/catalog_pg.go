package substore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/supersub/supersub/pkg/subscription"
)

const (
	pgListOffers = `
SELECT o.id, o.title, o.description, o.price, o.benefits, r.id, r.access_type
FROM offers o
LEFT JOIN offer_access_rules l ON l.offer_id = o.id
LEFT JOIN access_rules r ON r.id = l.access_rule_id
ORDER BY o.id, r.id`

	pgGetOffer = `
SELECT o.id, o.title, o.description, o.price, o.benefits, r.id, r.access_type
FROM offers o
LEFT JOIN offer_access_rules l ON l.offer_id = o.id
LEFT JOIN access_rules r ON r.id = l.access_rule_id
WHERE o.id = $1
ORDER BY r.id`
)

type pgCatalog struct {
	db DB
}

// NewPGCatalog returns a read-only catalog over the offers, access_rules and
// offer_access_rules tables. Panics if db is nil.
func NewPGCatalog(db DB) subscription.OfferCatalog {
	if db == nil {
		panic("substore: postgres connection is required")
	}
	return &pgCatalog{db: db}
}

func (c *pgCatalog) List(ctx context.Context) ([]subscription.Offer, error) {
	rows, err := c.db.Query(ctx, pgListOffers)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	return collectOffers(rows)
}

func (c *pgCatalog) Get(ctx context.Context, id subscription.OfferID) (*subscription.Offer, error) {
	rows, err := c.db.Query(ctx, pgGetOffer, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}
	offers, err := collectOffers(rows)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, subscription.ErrOfferNotFound
	}
	return &offers[0], nil
}

// collectOffers folds offer x rule join rows into offers, keeping row order.
// Offers without rules come back with a single row of NULL rule columns.
func collectOffers(rows pgx.Rows) ([]subscription.Offer, error) {
	defer rows.Close()

	var (
		offers []subscription.Offer
		index  = make(map[subscription.OfferID]int)
	)
	for rows.Next() {
		var (
			o        subscription.Offer
			offerID  int64
			ruleID   *int64
			ruleKind *string
		)
		if err := rows.Scan(&offerID, &o.Title, &o.Description, &o.Price, &o.Benefits, &ruleID, &ruleKind); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.ID = subscription.OfferID(offerID)

		i, seen := index[o.ID]
		if !seen {
			i = len(offers)
			index[o.ID] = i
			offers = append(offers, o)
		}
		if ruleID != nil && ruleKind != nil {
			offers[i].Rules = append(offers[i].Rules, subscription.AccessRule{
				ID:   *ruleID,
				Kind: subscription.ParseRuleKind(*ruleKind),
			})
		}
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}
	return offers, nil
}
