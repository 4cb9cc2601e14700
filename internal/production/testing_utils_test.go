package production

import (
	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/rules"
)

const (
	testGold    domain.ResourceTypeID = "gold"
	testRations domain.ResourceTypeID = "rations"
	testMana    domain.ResourceTypeID = "mana"
	testGrowth  domain.ResourceTypeID = "growth"
	testUnknown domain.ResourceTypeID = "unobtainium"
)

func newTestEngine() *Engine {
	return NewEngine(rules.MustNewRegistry(
		domain.ResourceTypePolicy{ResourceType: testGold, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundDown},
		domain.ResourceTypePolicy{ResourceType: testRations, DefaultBucket: domain.FlatBeforeBonus, Rounding: domain.RoundUp},
		domain.ResourceTypePolicy{ResourceType: testMana, DefaultBucket: domain.FlatAfterBonus, Rounding: domain.RoundDown},
		domain.ResourceTypePolicy{ResourceType: testGrowth, DefaultBucket: domain.PercentageBonus, Rounding: domain.RoundDown},
	))
}

func percentage() domain.BucketOverride { return domain.OverrideTo(domain.PercentageBonus) }
func flatAfter() domain.BucketOverride  { return domain.OverrideTo(domain.FlatAfterBonus) }
