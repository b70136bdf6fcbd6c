package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperators(t *testing.T) {
	tests := []struct {
		name     string
		operator string
		field    any
		compare  any
		want     bool
	}{
		{"gleich strings", OperatorGleich, "offen", "offen", true},
		{"gleich mismatched strings", OperatorGleich, "offen", "bezahlt", false},
		{"gleich number vs string", OperatorGleich, float64(42), "42", true},
		{"gleich nil vs empty", OperatorGleich, nil, "", true},
		{"ungleich", OperatorUngleich, "offen", "bezahlt", true},
		{"ungleich equal values", OperatorUngleich, "offen", "offen", false},
		{"groesser", OperatorGroesser, float64(100), float64(50), true},
		{"groesser equal", OperatorGroesser, float64(50), float64(50), false},
		{"groesser numeric string", OperatorGroesser, "100", "50", true},
		{"groesser non-numeric", OperatorGroesser, "abc", float64(1), false},
		{"kleiner", OperatorKleiner, float64(10), float64(20), true},
		{"kleiner not", OperatorKleiner, float64(30), float64(20), false},
		{"enthaelt case-insensitive", OperatorEnthaelt, "Dachsanierung Meier", "meier", true},
		{"enthaelt absent", OperatorEnthaelt, "Dachsanierung", "fenster", false},
		{"ist_leer empty string", OperatorIstLeer, "", nil, true},
		{"ist_leer nil", OperatorIstLeer, nil, nil, true},
		{"ist_leer empty slice", OperatorIstLeer, []any{}, nil, true},
		{"ist_leer non-empty", OperatorIstLeer, "x", nil, false},
		{"ist_leer zero is not empty", OperatorIstLeer, float64(0), nil, false},
		{"ist_nicht_leer", OperatorIstNichtLeer, "x", nil, true},
		{"ist_nicht_leer empty", OperatorIstNichtLeer, "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Operator(tt.operator)
			require.True(t, ok)
			assert.Equal(t, tt.want, op(tt.field, tt.compare))
		})
	}
}

func TestOperatorUnknown(t *testing.T) {
	_, ok := Operator("regex")
	assert.False(t, ok)
}
