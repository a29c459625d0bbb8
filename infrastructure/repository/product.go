package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/padocalabs/bakery-pos-api/infrastructure/database/postgres"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

const (
	productsTable = "products"

	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// ErrDuplicateName indica violação de unicidade de nome (produto ou categoria)
var ErrDuplicateName = fmt.Errorf("nome já cadastrado")

// ErrReferenced indica que o registro possui vínculos e não pode ser removido
var ErrReferenced = fmt.Errorf("registro possui vínculos")

type ProductRepository interface {
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(product *domain.Product) error
	DeleteProduct(productID int) error
	GetProductByID(productID int) (*domain.Product, error)
	ListProducts(onlyActive bool) ([]*domain.Product, error)
}

type productRepository struct {
	conn *postgres.Connection
}

func NewProductRepository(conn *postgres.Connection) ProductRepository {
	return &productRepository{
		conn: conn,
	}
}

func (r *productRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query, args, err := squirrel.
		Insert(productsTable).
		Columns("name", "category_id", "price", "cost_price", "stock_quantity", "reorder_level", "status").
		Values(
			product.Name,
			product.CategoryID,
			product.Price,
			product.CostPrice,
			product.StockQuantity,
			product.ReorderLevel,
			product.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(product *domain.Product) error {
	queryBuilder := squirrel.
		Update(productsTable).
		Set("name", product.Name).
		Set("category_id", product.CategoryID).
		Set("price", product.Price).
		Set("cost_price", product.CostPrice).
		Set("stock_quantity", product.StockQuantity).
		Set("reorder_level", product.ReorderLevel).
		Set("status", product.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": product.ID})

	query, args, err := queryBuilder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return ErrDuplicateName
		}
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

func (r *productRepository) DeleteProduct(productID int) error {
	query, args, err := squirrel.
		Delete(productsTable).
		Where(squirrel.Eq{"id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		// Produto com vendas registradas não pode ser removido
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqForeignKeyViolation {
			return ErrReferenced
		}
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

func (r *productRepository) GetProductByID(productID int) (*domain.Product, error) {
	query, args, err := squirrel.
		Select(
			"p.id", "p.name", "p.category_id", "c.name AS category_name",
			"p.price", "p.cost_price", "p.stock_quantity", "p.reorder_level",
			"p.status", "p.created_at", "p.updated_at",
		).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		Where(squirrel.Eq{"p.id": productID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product := &domain.Product{}
	err = r.conn.QueryRow(query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.CategoryID,
		&product.CategoryName,
		&product.Price,
		&product.CostPrice,
		&product.StockQuantity,
		&product.ReorderLevel,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear produto: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(onlyActive bool) ([]*domain.Product, error) {
	builder := squirrel.
		Select(
			"p.id", "p.name", "p.category_id", "c.name AS category_name",
			"p.price", "p.cost_price", "p.stock_quantity", "p.reorder_level",
			"p.status", "p.created_at", "p.updated_at",
		).
		From("products p").
		LeftJoin("categories c ON c.id = p.category_id").
		OrderBy("p.name ASC")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"p.status": domain.ProductStatusActive})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.CategoryID,
			&product.CategoryName,
			&product.Price,
			&product.CostPrice,
			&product.StockQuantity,
			&product.ReorderLevel,
			&product.Status,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produtos: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}
