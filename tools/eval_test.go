package tools

import (
	"math"
	"testing"
)

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"10 * 5", 50},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"10 / 4", 2.5},
		{"-5 + 3", -2},
		{"--4", 4},
		{"1.5 * 2", 3},
		{"  7  ", 7},
		{"2 * (3 + (4 - 1))", 12},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := evalExpression(tt.expr)
			if err != nil {
				t.Fatalf("evalExpression(%q) error: %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("evalExpression(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	tests := []string{
		"",
		"2 +",
		"(2 + 3",
		"1 / 0",
		"2 ++* 3",
		"4 5",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			if _, err := evalExpression(expr); err == nil {
				t.Errorf("evalExpression(%q) expected error", expr)
			}
		})
	}
}
