package dateutil

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestAge(t *testing.T) {
	birth := date(1990, 6, 15)

	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"day before birthday", date(2024, 6, 14), 33},
		{"on birthday", date(2024, 6, 15), 34},
		{"day after birthday", date(2024, 6, 16), 34},
		{"earlier month", date(2024, 5, 20), 33},
		{"later month", date(2024, 7, 1), 34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(birth, tt.at); got != tt.want {
				t.Fatalf("Age = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatutoryRetirementAge(t *testing.T) {
	tests := []struct {
		birthYear int
		want      int
	}{
		{1940, 65},
		{1946, 65},
		{1947, 65},
		{1958, 65},
		{1959, 66},
		{1963, 66},
		{1964, 67},
		{1990, 67},
	}

	for _, tt := range tests {
		got := StatutoryRetirementAge(date(tt.birthYear, 1, 1))
		if got != tt.want {
			t.Fatalf("StatutoryRetirementAge(%d) = %d, want %d", tt.birthYear, got, tt.want)
		}
	}
}

func TestYearsUntil(t *testing.T) {
	from := date(2024, 3, 1)

	if got := YearsUntil(from, date(2054, 3, 1)); got != 30 {
		t.Fatalf("YearsUntil = %d, want 30", got)
	}
	if got := YearsUntil(from, date(2054, 2, 28)); got != 29 {
		t.Fatalf("YearsUntil = %d, want 29", got)
	}
	if got := YearsUntil(from, date(2020, 1, 1)); got != 0 {
		t.Fatalf("YearsUntil in the past = %d, want 0", got)
	}
}
