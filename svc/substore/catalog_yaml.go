package substore

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/supersub/supersub/pkg/subscription"
)

type yamlCatalog struct {
	Offers []yamlOffer `yaml:"offers"`
}

type yamlOffer struct {
	ID          int64      `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Price       int64      `yaml:"price"`
	Benefits    string     `yaml:"benefits"`
	Rules       []yamlRule `yaml:"access_rules"`
}

type yamlRule struct {
	ID         int64  `yaml:"id"`
	AccessType string `yaml:"access_type"`
}

// LoadYAMLCatalog reads an in-memory catalog from a YAML file:
//
//	offers:
//	  - id: 1
//	    title: Offre Starter
//	    price: 10
//	    access_rules:
//	      - { id: 1, access_type: FIRST_SUB }
func LoadYAMLCatalog(path string) (subscription.OfferCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	defer f.Close()

	return ParseYAMLCatalog(f)
}

// ParseYAMLCatalog decodes a catalog document from r. Unknown fields and
// unknown access rule kinds are rejected.
func ParseYAMLCatalog(r io.Reader) (subscription.OfferCatalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlCatalog
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Join(ErrFailedToDecodeYAML, err)
	}

	offers := make([]subscription.Offer, 0, len(doc.Offers))
	for _, yo := range doc.Offers {
		o := subscription.Offer{
			ID:          subscription.OfferID(yo.ID),
			Title:       yo.Title,
			Description: yo.Description,
			Price:       yo.Price,
			Benefits:    yo.Benefits,
		}
		for _, yr := range yo.Rules {
			kind := subscription.ParseRuleKind(yr.AccessType)
			if !kind.Valid() {
				return nil, fmt.Errorf("%w: offer %d: %q", ErrUnknownRuleKind, yo.ID, yr.AccessType)
			}
			o.Rules = append(o.Rules, subscription.AccessRule{ID: yr.ID, Kind: kind})
		}
		offers = append(offers, o)
	}

	return newInMemCatalog(offers)
}
