// Package offeryaml reads the offer catalog from a YAML document.
//
// Example document:
//
//	offers:
//	  - code: OFR002
//	    rate: 0.07
//	    weight: {min: 10, max: 150, max_exclusive: true}
//	    distance: {min: 50, max: 250}
package offeryaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fleetdelivery/internal/core/domain/model/offer"
)

var ErrNoOffers = errors.New("offer file defines no offers")

type document struct {
	Offers []offerEntry `yaml:"offers"`
}

type offerEntry struct {
	Code     string     `yaml:"code"`
	Rate     float64    `yaml:"rate"`
	Weight   rangeEntry `yaml:"weight"`
	Distance rangeEntry `yaml:"distance"`
}

type rangeEntry struct {
	Min          float64 `yaml:"min"`
	Max          float64 `yaml:"max"`
	MaxExclusive bool    `yaml:"max_exclusive"`
}

func (r rangeEntry) toDomain() offer.Range {
	if r.MaxExclusive {
		return offer.HalfOpen(r.Min, r.Max)
	}
	return offer.Closed(r.Min, r.Max)
}

// LoadFile reads the catalog at path. An empty path yields
// offer.DefaultCatalog.
func LoadFile(path string) (*offer.Catalog, error) {
	if path == "" {
		return offer.DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read offers file: %w", err)
	}

	catalog, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes one YAML document. Unknown fields are rejected.
func Parse(r io.Reader) (*offer.Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoOffers
		}
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	if len(doc.Offers) == 0 {
		return nil, ErrNoOffers
	}

	offers := make([]offer.Offer, 0, len(doc.Offers))
	for i, entry := range doc.Offers {
		o, err := offer.NewOffer(entry.Code, entry.Rate, entry.Weight.toDomain(), entry.Distance.toDomain())
		if err != nil {
			return nil, fmt.Errorf("offer #%d (%q): %w", i+1, entry.Code, err)
		}
		offers = append(offers, o)
	}

	return offer.NewCatalog(offers...)
}
