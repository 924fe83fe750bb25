package lex

import "testing"

func TestCompareDigits(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"1", "2", -1},
		{"10", "9", 1},
		{"007", "7", 0},
		{"000", "0", 0},
		{"18446744073709551616", "18446744073709551615", 1},
		{"99999999999999999999999", "100000000000000000000000", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := CompareDigits(tt.a, tt.b); got != tt.want {
				t.Errorf("CompareDigits(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDigitRun(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"123", 3},
		{"12a3", 2},
	}
	for _, tt := range tests {
		if got := DigitRun(tt.in); got != tt.want {
			t.Errorf("DigitRun(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
