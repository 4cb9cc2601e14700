package rules

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// ruleDatabaseXML is the subset of the game's XML rule database this service reads
type ruleDatabaseXML struct {
	XMLName         xml.Name            `xml:"ruleDatabase"`
	ProductionTypes []productionTypeXML `xml:"productionType"`
}

type productionTypeXML struct {
	ID                string `xml:"productionTypeID,attr"`
	Description       string `xml:"description,attr"`
	DefaultBucket     string `xml:"defaultBucket,attr"`
	RoundingDirection string `xml:"roundingDirection,attr"`
}

// LoadXML reads a rule database file and builds the registry
func LoadXML(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule database %s: %w", path, err)
	}
	defer f.Close()

	reg, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule database %s: %w", path, err)
	}
	return reg, nil
}

// ParseXML decodes a rule database document.
// Missing defaultBucket means flat_before; missing roundingDirection means round_down.
func ParseXML(r io.Reader) (*Registry, error) {
	var doc ruleDatabaseXML
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule database: %w", err)
	}

	policies := make([]domain.ResourceTypePolicy, 0, len(doc.ProductionTypes))
	for _, pt := range doc.ProductionTypes {
		policy, err := pt.toPolicy()
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}

	return NewRegistry(policies...)
}

func (pt productionTypeXML) toPolicy() (domain.ResourceTypePolicy, error) {
	policy := domain.ResourceTypePolicy{
		ResourceType:  domain.ResourceTypeID(pt.ID),
		Description:   pt.Description,
		DefaultBucket: domain.FlatBeforeBonus,
		Rounding:      domain.RoundDown,
	}

	if pt.DefaultBucket != "" {
		b, err := domain.ParseBucket(pt.DefaultBucket)
		if err != nil {
			return policy, fmt.Errorf("production type %q: %w", pt.ID, err)
		}
		policy.DefaultBucket = b
	}

	if pt.RoundingDirection != "" {
		rd, err := domain.ParseRoundingDirection(pt.RoundingDirection)
		if err != nil {
			return policy, fmt.Errorf("production type %q: %w", pt.ID, err)
		}
		policy.Rounding = rd
	}

	return policy, nil
}
