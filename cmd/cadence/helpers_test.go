package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "expense", amount: 15.99, expected: "$15.99"},
		{name: "income shown with plus", amount: -2500.00, expected: "+$2500.00"},
		{name: "zero", amount: 0, expected: "$0.00"},
		{name: "rounds to cents", amount: 9.999, expected: "$10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatAmount(tt.amount))
		})
	}
}
