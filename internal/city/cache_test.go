package city

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

func TestReportCache_KeepsLatestTurn(t *testing.T) {
	c := newReportCache(4, time.Minute)

	c.Add(&domain.CityProductionReport{CityID: "a", Turn: 2})
	c.Add(&domain.CityProductionReport{CityID: "a", Turn: 1})

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, got.Turn)

	c.Add(&domain.CityProductionReport{CityID: "a", Turn: 2, ID: "recomputed"})
	got, _ = c.Get("a")
	assert.Equal(t, "recomputed", got.ID, "same turn replaces")
}

func TestReportCache_Eviction(t *testing.T) {
	c := newReportCache(2, time.Minute)

	c.Add(&domain.CityProductionReport{CityID: "a"})
	c.Add(&domain.CityProductionReport{CityID: "b"})
	c.Add(&domain.CityProductionReport{CityID: "c"})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestReportCache_Expiry(t *testing.T) {
	c := newReportCache(2, 20*time.Millisecond)
	c.Add(&domain.CityProductionReport{CityID: "a"})

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
