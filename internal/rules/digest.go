package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// digestPolicies hashes the policies in sorted ID order
func digestPolicies(order []domain.ResourceTypeID, policies map[domain.ResourceTypeID]domain.ResourceTypePolicy) string {
	h := sha256.New()
	for _, id := range order {
		p := policies[id]
		fmt.Fprintf(h, "%s|%s|%s\n", p.ResourceType, p.DefaultBucket, p.Rounding)
	}
	return hex.EncodeToString(h.Sum(nil))
}
