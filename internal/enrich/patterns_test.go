package enrich

import (
	"testing"
	"time"
)

func TestExtractTime(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"bake at 350°f for about 45 minutes", "about 45 minutes"},
		{"simmer for 10-12 minutes", "10-12 minutes"},
		{"roast for approximately 2 hours", "approximately 2 hours"},
		{"chill for 30 mins", "30 mins"},
		{"cook for around 90 seconds", "around 90 seconds"},
		{"let rest until cool", ""},
		{"add 2 cups of flour", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := extractTime(tt.text); got != tt.want {
				t.Fatalf("extractTime(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTemperature(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"bake at 350°f for 45 minutes", "350°F"},
		{"preheat the oven to 350 degrees f", "350°F"},
		{"heat the oven to 180 c", "180°C"},
		{"simmer over medium heat", "medium heat"},
		{"cook on medium-high heat", "medium-high heat"},
		{"reduce to low", "low"},
		{"stir until combined", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := extractTemperature(tt.text); got != tt.want {
				t.Fatalf("extractTemperature(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		descriptor string
		want       time.Duration
	}{
		{"45 minutes", 45 * time.Minute},
		{"about 45 minutes", 45 * time.Minute},
		{"10-12 minutes", 10 * time.Minute}, // ranges use the first magnitude
		{"2 hours", 2 * time.Hour},
		{"90 seconds", 90 * time.Second},
		{"30 mins", 30 * time.Minute},
		{"", 0},
		{"a while", 0},
	}

	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			if got := parseDuration(tt.descriptor); got != tt.want {
				t.Fatalf("parseDuration(%q) = %v, want %v", tt.descriptor, got, tt.want)
			}
		})
	}
}
