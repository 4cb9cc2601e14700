package city

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// reportCache keeps the latest report per city
type reportCache struct {
	lru *expirable.LRU[string, *domain.CityProductionReport]
}

func newReportCache(size int, ttl time.Duration) *reportCache {
	return &reportCache{
		lru: expirable.NewLRU[string, *domain.CityProductionReport](size, nil, ttl),
	}
}

func (c *reportCache) Get(cityID string) (*domain.CityProductionReport, bool) {
	return c.lru.Get(cityID)
}

// Add stores report unless a report for a later turn is already cached.
// Check-then-add is not atomic; concurrent recomputes of one city in
// different turns are not expected within a process.
func (c *reportCache) Add(report *domain.CityProductionReport) {
	if existing, ok := c.lru.Peek(report.CityID); ok && existing.Turn > report.Turn {
		return
	}
	c.lru.Add(report.CityID, report)
}

func (c *reportCache) Len() int {
	return c.lru.Len()
}
