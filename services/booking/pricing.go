package booking

import (
	"math"

	"medibook/models"
)

// Hourly rates in dollars by appointment category.
var hourlyRates = map[string]float64{
	models.CategoryConsultation: 200.00,
	models.CategoryFollowUp:     150.00,
	models.CategoryGeneral:      100.00,
}

// Quote returns the cost of an appointment, pro-rated linearly from the
// category's hourly rate and rounded half-up to cents. Unrecognized
// categories fall back to the general rate.
func Quote(category string, durationMinutes int) float64 {
	rate, ok := hourlyRates[category]
	if !ok {
		rate = hourlyRates[models.CategoryGeneral]
	}
	cost := rate / 60 * float64(durationMinutes)
	return math.Round(cost*100) / 100
}
