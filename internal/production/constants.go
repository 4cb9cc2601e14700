package production

const (
	// PercentDenominator converts the percentage bucket into a fraction
	PercentDenominator = 100

	// DoublingFactor is the number of half units in one whole unit
	DoublingFactor = 2
)
