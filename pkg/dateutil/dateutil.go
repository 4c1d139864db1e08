package dateutil

import (
	"time"
)

// Age calculates the age in full years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// StatutoryRetirementAge calculates the German statutory retirement age
// (Regelaltersgrenze) based on birth year. The phase-in adds months per birth
// year between 1947 and 1963; values are rounded down to full years.
func StatutoryRetirementAge(birthDate time.Time) int {
	birthYear := birthDate.Year()

	switch {
	case birthYear <= 1946:
		return 65
	case birthYear <= 1958:
		return 65 // 65 years plus 1-12 months, rounded down
	case birthYear <= 1963:
		return 66 // 66 years plus 2-10 months, rounded down
	default: // 1964 and later
		return 67
	}
}

// YearsUntil calculates the number of whole years between two dates, never
// negative.
func YearsUntil(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	if to.Month() < from.Month() ||
		(to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
