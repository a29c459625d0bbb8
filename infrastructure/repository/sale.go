package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/padocalabs/bakery-pos-api/infrastructure/database/postgres"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

const (
	salesTable     = "sales"
	saleItemsTable = "sale_items"
)

// ErrInsufficientStock indica que algum item da venda excede o estoque disponível
var ErrInsufficientStock = fmt.Errorf("estoque insuficiente")

type SaleRepository interface {
	CreateSale(sale *domain.Sale, items []*domain.SaleItem) (*domain.Sale, error)
	GetSaleByID(saleID int) (*domain.Sale, error)
	ListSales(filters *domain.SaleListFilters) ([]*domain.Sale, int, error)
	UpdatePaymentStatus(saleID int, status string) error
}

type saleRepository struct {
	conn *postgres.Connection
}

func NewSaleRepository(conn *postgres.Connection) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// CreateSale grava a venda, seus itens e o débito de estoque em uma única
// transação. O débito falha quando o estoque é insuficiente, o que desfaz
// a venda inteira.
func (r *saleRepository) CreateSale(sale *domain.Sale, items []*domain.SaleItem) (*domain.Sale, error) {
	err := r.conn.RunInTransaction(context.Background(), func(tx *sql.Tx) error {
		saleSQL, saleArgs, err := squirrel.
			Insert(salesTable).
			Columns(
				"invoice_number", "user_id", "customer_name",
				"subtotal", "tax_amount", "discount_amount", "total_amount",
				"payment_status", "payment_method",
			).
			Values(
				sale.InvoiceNumber,
				sale.UserID,
				sale.CustomerName,
				sale.Subtotal,
				sale.TaxAmount,
				sale.DiscountAmount,
				sale.TotalAmount,
				sale.PaymentStatus,
				sale.PaymentMethod,
			).
			Suffix("RETURNING id, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if err := tx.QueryRow(saleSQL, saleArgs...).Scan(&sale.ID, &sale.CreatedAt); err != nil {
			return fmt.Errorf("erro ao inserir venda: %w", err)
		}

		itemsBuilder := squirrel.
			Insert(saleItemsTable).
			Columns("sale_id", "product_id", "quantity", "unit_price", "subtotal")

		for _, item := range items {
			item.SaleID = sale.ID
			itemsBuilder = itemsBuilder.Values(sale.ID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
		}

		itemsSQL, itemsArgs, err := itemsBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := tx.Exec(itemsSQL, itemsArgs...); err != nil {
			return fmt.Errorf("erro ao inserir itens da venda: %w", err)
		}

		for _, item := range items {
			stockSQL, stockArgs, err := squirrel.
				Update(productsTable).
				Set("stock_quantity", squirrel.Expr("stock_quantity - ?", item.Quantity)).
				Set("updated_at", squirrel.Expr("NOW()")).
				Where(squirrel.Eq{"id": item.ProductID}).
				Where(squirrel.Expr("stock_quantity >= ?", item.Quantity)).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir a query: %w", err)
			}

			result, err := tx.Exec(stockSQL, stockArgs...)
			if err != nil {
				return fmt.Errorf("erro ao debitar estoque: %w", err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sale.Items = items
	return sale, nil
}

func (r *saleRepository) GetSaleByID(saleID int) (*domain.Sale, error) {
	query, args, err := squirrel.
		Select(
			"s.id", "s.invoice_number", "s.user_id", "u.name || ' ' || u.lastname AS cashier_name",
			"s.customer_name", "s.subtotal", "s.tax_amount", "s.discount_amount",
			"s.total_amount", "s.payment_status", "s.payment_method", "s.created_at",
		).
		From("sales s").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"s.id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale := &domain.Sale{}
	err = r.conn.QueryRow(query, args...).Scan(
		&sale.ID,
		&sale.InvoiceNumber,
		&sale.UserID,
		&sale.CashierName,
		&sale.CustomerName,
		&sale.Subtotal,
		&sale.TaxAmount,
		&sale.DiscountAmount,
		&sale.TotalAmount,
		&sale.PaymentStatus,
		&sale.PaymentMethod,
		&sale.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear venda: %w", err)
	}

	items, err := r.listSaleItems(saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return sale, nil
}

func (r *saleRepository) listSaleItems(saleID int) ([]*domain.SaleItem, error) {
	query, args, err := squirrel.
		Select("si.id", "si.sale_id", "si.product_id", "p.name", "si.quantity", "si.unit_price", "si.subtotal").
		From("sale_items si").
		Join("products p ON p.id = si.product_id").
		Where(squirrel.Eq{"si.sale_id": saleID}).
		OrderBy("si.id ASC").
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

	items := make([]*domain.SaleItem, 0)
	for rows.Next() {
		item := &domain.SaleItem{}
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear itens da venda: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return items, nil
}

// saleListConditions aplica busca e período aos builders de listagem e contagem
func saleListConditions(builder squirrel.SelectBuilder, filters *domain.SaleListFilters) squirrel.SelectBuilder {
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"s.invoice_number": pattern},
			squirrel.ILike{"s.customer_name": pattern},
		})
	}

	if filters.DateFrom != nil {
		builder = builder.Where(squirrel.Expr("DATE(s.created_at) >= ?", filters.DateFrom.Format(time.DateOnly)))
	}

	if filters.DateTo != nil {
		builder = builder.Where(squirrel.Expr("DATE(s.created_at) <= ?", filters.DateTo.Format(time.DateOnly)))
	}

	return builder
}

func (r *saleRepository) ListSales(filters *domain.SaleListFilters) ([]*domain.Sale, int, error) {
	countQuery, countArgs, err := saleListConditions(
		squirrel.Select("COUNT(*)").From("sales s"),
		filters,
	).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	offset := (filters.Page - 1) * filters.Limit

	// SortBy já vem validado contra a allow-list pelo normalizador
	query, args, err := saleListConditions(
		squirrel.Select(
			"s.id", "s.invoice_number", "s.user_id", "u.name || ' ' || u.lastname AS cashier_name",
			"s.customer_name", "s.subtotal", "s.tax_amount", "s.discount_amount",
			"s.total_amount", "s.payment_status", "s.payment_method", "s.created_at",
		).
			From("sales s").
			Join("users u ON u.id = s.user_id"),
		filters,
	).
		OrderBy(fmt.Sprintf("%s %s", filters.SortBy, filters.SortDir)).
		Limit(uint64(filters.Limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale := &domain.Sale{}
		err := rows.Scan(
			&sale.ID,
			&sale.InvoiceNumber,
			&sale.UserID,
			&sale.CashierName,
			&sale.CustomerName,
			&sale.Subtotal,
			&sale.TaxAmount,
			&sale.DiscountAmount,
			&sale.TotalAmount,
			&sale.PaymentStatus,
			&sale.PaymentMethod,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("erro ao escanear vendas: %w", err)
		}
		sales = append(sales, sale)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, total, nil
}

func (r *saleRepository) UpdatePaymentStatus(saleID int, status string) error {
	query, args, err := squirrel.
		Update(salesTable).
		Set("payment_status", status).
		Where(squirrel.Eq{"id": saleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
