package production

import (
	"fmt"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

// FinalizeProduction combines the buckets into a whole-unit total:
// flat-before, then the percentage applied to it, then flat-after, then halved.
// Negative totals are returned as-is; clamping is the caller's decision.
func (e *Engine) FinalizeProduction(b *Breakdown) (int, error) {
	policy, err := e.rules.Lookup(b.resourceType)
	if err != nil {
		return 0, err
	}
	return finalize(b.totals, policy.Rounding)
}

// Finalize is FinalizeProduction returning the report line as well
func (e *Engine) Finalize(b *Breakdown) (domain.ProductionLine, error) {
	policy, err := e.rules.Lookup(b.resourceType)
	if err != nil {
		return domain.ProductionLine{}, err
	}

	total, err := finalize(b.totals, policy.Rounding)
	if err != nil {
		return domain.ProductionLine{}, err
	}
	return b.Line(total, policy.Rounding), nil
}

func finalize(totals [domain.BucketCount]int, rounding domain.RoundingDirection) (int, error) {
	flatBefore := totals[domain.FlatBeforeBonus]
	percentage := totals[domain.PercentageBonus]
	flatAfter := totals[domain.FlatAfterBonus]

	if isOdd(flatAfter) {
		return 0, fmt.Errorf("%w: flat-after total %d", domain.ErrFractionalUnitInTerminalBucket, flatAfter)
	}

	bonus, ok := percentOf(flatBefore, percentage, rounding)
	if !ok {
		return 0, fmt.Errorf("%w: %d half units at %d%%", domain.ErrProductionOverflow, flatBefore, percentage)
	}
	afterPercent, ok := addChecked(flatBefore, bonus)
	if !ok {
		return 0, fmt.Errorf("%w: %d half units at %d%%", domain.ErrProductionOverflow, flatBefore, percentage)
	}
	totalDoubled, ok := addChecked(afterPercent, flatAfter)
	if !ok {
		return 0, fmt.Errorf("%w: %d plus flat-after %d", domain.ErrProductionOverflow, afterPercent, flatAfter)
	}

	return divRound(totalDoubled, DoublingFactor, rounding), nil
}

// percentOf returns round(amount * percentage / 100). The whole hundreds of
// amount are scaled separately from the remainder so large amounts only fail
// when the result itself does not fit.
func percentOf(amount, percentage int, rounding domain.RoundingDirection) (int, bool) {
	hundreds, rest := amount/PercentDenominator, amount%PercentDenominator

	whole, ok := mulChecked(hundreds, percentage)
	if !ok {
		return 0, false
	}
	part, ok := mulChecked(rest, percentage)
	if !ok {
		return 0, false
	}
	return addChecked(whole, divRound(part, PercentDenominator, rounding))
}

// divRound divides by a positive denominator, resolving any remainder toward
// negative infinity (RoundDown) or positive infinity (RoundUp).
func divRound(n, d int, rounding domain.RoundingDirection) int {
	q := n / d
	r := n % d
	if r == 0 {
		return q
	}
	if rounding == domain.RoundUp {
		if n > 0 {
			q++
		}
		return q
	}
	if n < 0 {
		q--
	}
	return q
}
