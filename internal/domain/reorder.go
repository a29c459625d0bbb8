package domain

// ComputedReorderLevel calcula o nível de reposição como 20% do estoque
// atual, nunca abaixo de 5 unidades. Comportamento herdado do sistema
// legado: o limiar acompanha o estoque corrente em vez do campo
// reorder_level cadastrado (ver flag REPORT_DYNAMIC_REORDER_LEVEL).
func ComputedReorderLevel(stock int) int {
	if stock < 0 {
		stock = 0
	}

	level := stock / 5
	if level < 5 {
		return 5
	}
	return level
}

// IsLowStock informa se o produto deve aparecer no relatório de estoque baixo
func IsLowStock(stock, reorderLevel int) bool {
	return stock <= reorderLevel
}
