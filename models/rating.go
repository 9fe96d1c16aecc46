// models/rating.go
package models

import (
	"math"
)

// Round1 rounds to one decimal place, the display precision of the stored
// mechanic rating.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// NextAggregate folds one new rating sample into a mechanic's running
// aggregate: (oldAvg*oldCount + rating) / (oldCount+1), rounded to one
// decimal. A zero count is treated as average 0, so the first review sets the
// average to its own rating. Pure arithmetic; no error conditions.
func NextAggregate(currentAvg float64, currentCount, rating int) (float64, int) {
	if currentCount <= 0 {
		return Round1(float64(rating)), 1
	}
	newCount := currentCount + 1
	newAvg := (currentAvg*float64(currentCount) + float64(rating)) / float64(newCount)
	return Round1(newAvg), newCount
}
