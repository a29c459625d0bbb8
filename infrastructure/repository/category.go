package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/padocalabs/bakery-pos-api/infrastructure/database/postgres"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

const categoriesTable = "categories"

type CategoryRepository interface {
	CreateCategory(category *domain.Category) (*domain.Category, error)
	UpdateCategory(category *domain.Category) error
	DeleteCategory(categoryID int) error
	GetCategoryByID(categoryID int) (*domain.Category, error)
	ListCategories() ([]*domain.Category, error)
	CountProducts(categoryID int) (int, error)
}

type categoryRepository struct {
	conn *postgres.Connection
}

func NewCategoryRepository(conn *postgres.Connection) CategoryRepository {
	return &categoryRepository{
		conn: conn,
	}
}

func (r *categoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	query, args, err := squirrel.
		Insert(categoriesTable).
		Columns("name", "description", "status", "sort_order").
		Values(category.Name, category.Description, category.Status, category.SortOrder).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRow(query, args...).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) UpdateCategory(category *domain.Category) error {
	query, args, err := squirrel.
		Update(categoriesTable).
		Set("name", category.Name).
		Set("description", category.Description).
		Set("status", category.Status).
		Set("sort_order", category.SortOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": category.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
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

func (r *categoryRepository) DeleteCategory(categoryID int) error {
	query, args, err := squirrel.
		Delete(categoriesTable).
		Where(squirrel.Eq{"id": categoryID}).
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

func (r *categoryRepository) GetCategoryByID(categoryID int) (*domain.Category, error) {
	query, args, err := squirrel.
		Select("id", "name", "description", "status", "sort_order", "created_at", "updated_at").
		From(categoriesTable).
		Where(squirrel.Eq{"id": categoryID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	category := &domain.Category{}
	err = r.conn.QueryRow(query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Status,
		&category.SortOrder,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) ListCategories() ([]*domain.Category, error) {
	query, args, err := squirrel.
		Select("id", "name", "description", "status", "sort_order", "created_at", "updated_at").
		From(categoriesTable).
		OrderBy("sort_order ASC", "name ASC").
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

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Status,
			&category.SortOrder,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear categorias: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return categories, nil
}

// CountProducts informa quantos produtos referenciam a categoria.
// Usado para impedir a remoção de categorias em uso.
func (r *categoryRepository) CountProducts(categoryID int) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(productsTable).
		Where(squirrel.Eq{"category_id": categoryID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar produtos da categoria: %w", err)
	}

	return count, nil
}
