package city

import (
	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/rules"
)

func newTestRegistry() *rules.Registry {
	return rules.MustNewRegistry(
		domain.ResourceTypePolicy{ResourceType: domain.ResourceGold, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundDown},
		domain.ResourceTypePolicy{ResourceType: domain.ResourceFood, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundUp},
		domain.ResourceTypePolicy{ResourceType: domain.ResourceMana, DefaultBucket: domain.FlatAfterBonus, Rounding: domain.RoundDown},
		domain.ResourceTypePolicy{ResourceType: domain.ResourceGrowthBonus, DefaultBucket: domain.PercentageBonus, Rounding: domain.RoundDown},
	)
}

func strictConfig() Config {
	return Config{StrictParity: true, Workers: 4}
}

func contribution(rt domain.ResourceTypeID, doubled int) domain.Contribution {
	return domain.Contribution{ResourceType: rt, DoubledAmount: doubled}
}

func contributionTo(rt domain.ResourceTypeID, doubled int, bucket domain.Bucket) domain.Contribution {
	return domain.Contribution{ResourceType: rt, DoubledAmount: doubled, Bucket: &bucket}
}

// goldFeed is 7 units of gold with a 10% bonus
func goldFeed(cityID string) domain.CityContributions {
	return domain.CityContributions{
		CityID: cityID,
		Turn:   1,
		Contributions: []domain.Contribution{
			contribution(domain.ResourceGold, 10),
			contribution(domain.ResourceGold, 4),
			contributionTo(domain.ResourceGold, 10, domain.PercentageBonus),
		},
	}
}
