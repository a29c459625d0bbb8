package repository

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/padocalabs/bakery-pos-api/infrastructure/database/postgres"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

// Expressões de nível de reposição. A dinâmica reproduz o comportamento
// legado (limiar em função do estoque atual); a fixa usa o campo cadastrado.
const (
	dynamicReorderExpr = "GREATEST(5, FLOOR(p.stock_quantity * 0.2))::int"
	storedReorderExpr  = "p.reorder_level"
)

type ReportRepository interface {
	DailySales(startDate, endDate time.Time) ([]*domain.DailySalesRow, error)
	ProductSales(startDate, endDate time.Time) ([]*domain.ProductSalesRow, error)
	CategorySales(startDate, endDate time.Time) ([]*domain.CategorySalesRow, error)
	CashierPerformance(startDate, endDate time.Time) ([]*domain.CashierPerformanceRow, error)
	Inventory(dynamicReorder bool) ([]*domain.InventoryRow, error)
	LowStock(dynamicReorder bool) ([]*domain.LowStockRow, error)
	PeriodTotals(startDate, endDate time.Time) (*domain.PeriodTotals, error)
}

type reportRepository struct {
	conn *postgres.Connection
}

func NewReportRepository(conn *postgres.Connection) ReportRepository {
	return &reportRepository{
		conn: conn,
	}
}

// paidInRange restringe a consulta a vendas pagas dentro do período (inclusivo)
func paidInRange(builder squirrel.SelectBuilder, startDate, endDate time.Time) squirrel.SelectBuilder {
	return builder.
		Where(squirrel.Eq{"s.payment_status": domain.PaymentStatusPaid}).
		Where(squirrel.Expr(
			"DATE(s.created_at) BETWEEN ? AND ?",
			startDate.Format(time.DateOnly),
			endDate.Format(time.DateOnly),
		))
}

func (r *reportRepository) DailySales(startDate, endDate time.Time) ([]*domain.DailySalesRow, error) {
	builder := squirrel.
		Select(
			"DATE(s.created_at) AS sale_date",
			"COUNT(*) AS transactions",
			"COALESCE(SUM(s.total_amount), 0) AS total_sales",
		).
		From("sales s").
		GroupBy("DATE(s.created_at)").
		OrderBy("sale_date ASC")

	query, args, err := paidInRange(builder, startDate, endDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.DailySalesRow, 0)
	for rows.Next() {
		var date time.Time
		row := &domain.DailySalesRow{}
		if err := rows.Scan(&date, &row.Transactions, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas diárias: %w", err)
		}
		row.Date = date.Format(time.DateOnly)
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) ProductSales(startDate, endDate time.Time) ([]*domain.ProductSalesRow, error) {
	builder := squirrel.
		Select(
			"p.id",
			"p.name",
			"COALESCE(SUM(si.quantity), 0) AS quantity_sold",
			"COALESCE(SUM(si.subtotal), 0) AS total_sales",
		).
		From("sale_items si").
		Join("sales s ON s.id = si.sale_id").
		Join("products p ON p.id = si.product_id").
		GroupBy("p.id", "p.name").
		OrderBy("total_sales DESC")

	query, args, err := paidInRange(builder, startDate, endDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.ProductSalesRow, 0)
	for rows.Next() {
		row := &domain.ProductSalesRow{}
		if err := rows.Scan(&row.ProductID, &row.Name, &row.QuantitySold, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas por produto: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) CategorySales(startDate, endDate time.Time) ([]*domain.CategorySalesRow, error) {
	builder := squirrel.
		Select(
			"COALESCE(c.name, 'Sem categoria') AS category_name",
			"COALESCE(SUM(si.quantity), 0) AS quantity_sold",
			"COALESCE(SUM(si.subtotal), 0) AS total_sales",
		).
		From("sale_items si").
		Join("sales s ON s.id = si.sale_id").
		Join("products p ON p.id = si.product_id").
		LeftJoin("categories c ON c.id = p.category_id").
		GroupBy("COALESCE(c.name, 'Sem categoria')").
		OrderBy("total_sales DESC")

	query, args, err := paidInRange(builder, startDate, endDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.CategorySalesRow, 0)
	for rows.Next() {
		row := &domain.CategorySalesRow{}
		if err := rows.Scan(&row.Name, &row.QuantitySold, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendas por categoria: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) CashierPerformance(startDate, endDate time.Time) ([]*domain.CashierPerformanceRow, error) {
	builder := squirrel.
		Select(
			"u.id",
			"u.name || ' ' || u.lastname AS cashier_name",
			"COUNT(*) AS transactions",
			"COALESCE(SUM(s.total_amount), 0) AS total_sales",
			"COALESCE(AVG(s.total_amount), 0) AS average_sale",
		).
		From("sales s").
		Join("users u ON u.id = s.user_id").
		GroupBy("u.id", "u.name", "u.lastname").
		OrderBy("total_sales DESC")

	query, args, err := paidInRange(builder, startDate, endDate).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.CashierPerformanceRow, 0)
	for rows.Next() {
		row := &domain.CashierPerformanceRow{}
		if err := rows.Scan(&row.UserID, &row.Name, &row.Transactions, &row.TotalSales, &row.AverageSale); err != nil {
			return nil, fmt.Errorf("erro ao escanear desempenho de caixas: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) Inventory(dynamicReorder bool) ([]*domain.InventoryRow, error) {
	reorderExpr := storedReorderExpr
	if dynamicReorder {
		reorderExpr = dynamicReorderExpr
	}

	query, args, err := squirrel.
		Select(
			"p.id",
			"p.name",
			"c.name AS category_name",
			"p.stock_quantity",
			reorderExpr+" AS reorder_level",
			"p.price",
			"p.cost_price",
			"p.price - p.cost_price AS margin",
			"(p.price - p.cost_price) * p.stock_quantity AS potential_profit",
		).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		OrderBy("p.name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.InventoryRow, 0)
	for rows.Next() {
		row := &domain.InventoryRow{}
		if err := rows.Scan(
			&row.ProductID,
			&row.Name,
			&row.Category,
			&row.StockQuantity,
			&row.ReorderLevel,
			&row.Price,
			&row.CostPrice,
			&row.Margin,
			&row.PotentialProfit,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear inventário: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) LowStock(dynamicReorder bool) ([]*domain.LowStockRow, error) {
	reorderExpr := storedReorderExpr
	if dynamicReorder {
		reorderExpr = dynamicReorderExpr
	}

	// Demanda dos últimos 30 dias considera apenas vendas pagas
	demandExpr := `COALESCE((
		SELECT SUM(si.quantity)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE si.product_id = p.id
		  AND s.payment_status = 'paid'
		  AND s.created_at >= NOW() - INTERVAL '30 days'
	), 0) AS demand_30_days`

	query, args, err := squirrel.
		Select(
			"p.id",
			"p.name",
			"c.name AS category_name",
			"p.stock_quantity",
			reorderExpr+" AS reorder_level",
			demandExpr,
		).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.status": domain.ProductStatusActive}).
		Where("p.stock_quantity <= " + reorderExpr).
		OrderBy("p.stock_quantity ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.LowStockRow, 0)
	for rows.Next() {
		row := &domain.LowStockRow{}
		if err := rows.Scan(
			&row.ProductID,
			&row.Name,
			&row.Category,
			&row.StockQuantity,
			&row.ReorderLevel,
			&row.Demand30Days,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear estoque baixo: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return result, nil
}

func (r *reportRepository) PeriodTotals(startDate, endDate time.Time) (*domain.PeriodTotals, error) {
	totals := &domain.PeriodTotals{}

	salesQuery, salesArgs, err := paidInRange(
		squirrel.Select(
			"COUNT(*) AS transactions",
			"COALESCE(SUM(s.total_amount), 0) AS total_sales",
		).From("sales s"),
		startDate, endDate,
	).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(salesQuery, salesArgs...).Scan(&totals.Transactions, &totals.TotalSales)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar totais de vendas: %w", err)
	}

	// Itens vendidos e lucro usam o preço/custo atual do produto
	itemsQuery, itemsArgs, err := paidInRange(
		squirrel.Select(
			"COALESCE(SUM(si.quantity), 0) AS items_sold",
			"COALESCE(SUM((p.price - p.cost_price) * si.quantity), 0) AS profit",
		).
			From("sale_items si").
			Join("sales s ON s.id = si.sale_id").
			Join("products p ON p.id = si.product_id"),
		startDate, endDate,
	).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(itemsQuery, itemsArgs...).Scan(&totals.ItemsSold, &totals.Profit)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar itens e lucro do período: %w", err)
	}

	return totals, nil
}
