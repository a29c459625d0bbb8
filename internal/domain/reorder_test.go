package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedReorderLevel(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		expected int
	}{
		{name: "Estoque zero usa o piso de 5", stock: 0, expected: 5},
		{name: "Estoque 3 usa o piso de 5", stock: 3, expected: 5},
		{name: "Estoque 20 ainda usa o piso (floor(20*0.2)=4)", stock: 20, expected: 5},
		{name: "Estoque 25 atinge exatamente o piso", stock: 25, expected: 5},
		{name: "Estoque 30 passa do piso", stock: 30, expected: 6},
		{name: "Estoque 100 vira 20", stock: 100, expected: 20},
		{name: "Divisão trunca para baixo", stock: 99, expected: 19},
		{name: "Estoque negativo tratado como zero", stock: -10, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputedReorderLevel(tt.stock))
		})
	}
}

func TestIsLowStock(t *testing.T) {
	// Estoque 3 com limiar calculado 5 deve aparecer no relatório
	assert.True(t, IsLowStock(3, ComputedReorderLevel(3)))

	// Estoque 30 com limiar calculado 6 não deve aparecer
	assert.False(t, IsLowStock(30, ComputedReorderLevel(30)))

	// Igualdade conta como estoque baixo (estoque 5, limiar 5)
	assert.True(t, IsLowStock(5, ComputedReorderLevel(5)))
}
