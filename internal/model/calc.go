package model

// Attenuation returns the apparent attenuation percentage for a gravity
// pair: the share of fermentable sugar converted.
func Attenuation(og, fg float64) (float64, error) {
	if og == 1.0 {
		return 0, &CalculationError{Op: "attenuation", Reason: "undefined for og == 1.000"}
	}
	return (og - fg) / (og - 1.0) * 100, nil
}

// ABV returns alcohol by volume for a gravity pair using the advanced
// formula, which stays accurate for high-gravity batches:
//
//	abv = 76.08 * (og - fg) / (1.775 - og) * (fg / 0.794)
func ABV(og, fg float64) (float64, error) {
	if og == 1.775 {
		return 0, &CalculationError{Op: "abv", Reason: "undefined for og == 1.775"}
	}
	return 76.08 * (og - fg) / (1.775 - og) * (fg / 0.794), nil
}
