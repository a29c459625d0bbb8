package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/pkg/log"
)

var (
	ErrInvalidName      = fmt.Errorf("nome inválido")
	ErrInvalidPrice     = fmt.Errorf("preço inválido")
	ErrInvalidStock     = fmt.Errorf("estoque inválido")
	ErrInvalidStatus    = fmt.Errorf("status inválido")
	ErrProductNotFound  = fmt.Errorf("produto não encontrado")
	ErrCategoryNotFound = fmt.Errorf("categoria não encontrada")
	ErrNameAlreadyTaken = fmt.Errorf("nome já cadastrado")
	ErrCategoryInUse    = fmt.Errorf("categoria possui produtos vinculados")
	ErrProductHasSales  = fmt.Errorf("produto possui vendas registradas")
)

type Cataloger interface {
	CreateProduct(userID int, product *domain.Product) (*domain.Product, error)
	UpdateProduct(userID int, req *domain.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(userID, productID int) error
	GetProduct(productID int) (*domain.Product, error)
	ListProducts(onlyActive bool) ([]*domain.Product, error)
	LowStockProducts() ([]*domain.LowStockRow, error)

	CreateCategory(userID int, category *domain.Category) (*domain.Category, error)
	UpdateCategory(userID int, req *domain.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(userID, categoryID int) error
	ListCategories() ([]*domain.Category, error)
}

type Service struct {
	cfg             *config.Config
	productRepo     repository.ProductRepository
	categoryRepo    repository.CategoryRepository
	reportRepo      repository.ReportRepository
	activityLogRepo repository.ActivityLogRepository
}

func NewService(
	cfg *config.Config,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reportRepo repository.ReportRepository,
	activityLogRepo repository.ActivityLogRepository,
) Cataloger {
	return &Service{
		cfg:             cfg,
		productRepo:     productRepo,
		categoryRepo:    categoryRepo,
		reportRepo:      reportRepo,
		activityLogRepo: activityLogRepo,
	}
}

func (s *Service) CreateProduct(userID int, product *domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, ErrInvalidName
	}
	if product.Price < 0 || product.CostPrice < 0 {
		return nil, ErrInvalidPrice
	}
	if product.StockQuantity < 0 {
		return nil, ErrInvalidStock
	}

	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	if product.Status != domain.ProductStatusActive && product.Status != domain.ProductStatusInactive {
		return nil, ErrInvalidStatus
	}

	if product.ReorderLevel <= 0 {
		product.ReorderLevel = domain.ComputedReorderLevel(product.StockQuantity)
	}

	if err := s.ensureCategoryExists(product.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.productRepo.CreateProduct(product)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrNameAlreadyTaken
		}
		return nil, err
	}

	s.recordActivity(userID, domain.ActivityProductChange, fmt.Sprintf("Produto %q criado", created.Name))

	return created, nil
}

func (s *Service) UpdateProduct(userID int, req *domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(req.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		product.Name = name
	}

	if req.CategoryID != nil {
		if err := s.ensureCategoryExists(req.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = req.CategoryID
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}

	if req.CostPrice != nil {
		if *req.CostPrice < 0 {
			return nil, ErrInvalidPrice
		}
		product.CostPrice = *req.CostPrice
	}

	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, ErrInvalidStock
		}
		product.StockQuantity = *req.StockQuantity
	}

	if req.ReorderLevel != nil && *req.ReorderLevel > 0 {
		product.ReorderLevel = *req.ReorderLevel
	}

	if req.Status != nil {
		if *req.Status != domain.ProductStatusActive && *req.Status != domain.ProductStatusInactive {
			return nil, ErrInvalidStatus
		}
		product.Status = *req.Status
	}

	if err := s.productRepo.UpdateProduct(product); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrNameAlreadyTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.recordActivity(userID, domain.ActivityProductChange, fmt.Sprintf("Produto %q atualizado", product.Name))

	return product, nil
}

func (s *Service) DeleteProduct(userID, productID int) error {
	err := s.productRepo.DeleteProduct(productID)
	if err != nil {
		// Produto com vendas fica protegido pela chave estrangeira
		if errors.Is(err, repository.ErrReferenced) {
			return ErrProductHasSales
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return err
	}

	s.recordActivity(userID, domain.ActivityProductChange, fmt.Sprintf("Produto %d removido", productID))

	return nil
}

func (s *Service) GetProduct(productID int) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return product, nil
}

func (s *Service) ListProducts(onlyActive bool) ([]*domain.Product, error) {
	return s.productRepo.ListProducts(onlyActive)
}

// LowStockProducts lista os produtos ativos com estoque abaixo do nível de
// reposição configurado (dinâmico ou cadastrado)
func (s *Service) LowStockProducts() ([]*domain.LowStockRow, error) {
	return s.reportRepo.LowStock(s.cfg.Report.DynamicReorderLevel)
}

func (s *Service) CreateCategory(userID int, category *domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, ErrInvalidName
	}

	if category.Status == "" {
		category.Status = domain.CategoryStatusActive
	}
	if category.Status != domain.CategoryStatusActive && category.Status != domain.CategoryStatusInactive {
		return nil, ErrInvalidStatus
	}

	created, err := s.categoryRepo.CreateCategory(category)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrNameAlreadyTaken
		}
		return nil, err
	}

	s.recordActivity(userID, domain.ActivityCategoryChange, fmt.Sprintf("Categoria %q criada", created.Name))

	return created, nil
}

func (s *Service) UpdateCategory(userID int, req *domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.GetCategoryByID(req.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		category.Name = name
	}

	if req.Description != nil {
		category.Description = *req.Description
	}

	if req.Status != nil {
		if *req.Status != domain.CategoryStatusActive && *req.Status != domain.CategoryStatusInactive {
			return nil, ErrInvalidStatus
		}
		category.Status = *req.Status
	}

	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	if err := s.categoryRepo.UpdateCategory(category); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, ErrNameAlreadyTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	s.recordActivity(userID, domain.ActivityCategoryChange, fmt.Sprintf("Categoria %q atualizada", category.Name))

	return category, nil
}

// DeleteCategory recusa a remoção enquanto houver produtos vinculados;
// a verificação acontece antes de qualquer mutação
func (s *Service) DeleteCategory(userID, categoryID int) error {
	count, err := s.categoryRepo.CountProducts(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	err = s.categoryRepo.DeleteCategory(categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.recordActivity(userID, domain.ActivityCategoryChange, fmt.Sprintf("Categoria %d removida", categoryID))

	return nil
}

func (s *Service) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepo.ListCategories()
}

func (s *Service) ensureCategoryExists(categoryID *int) error {
	if categoryID == nil {
		return nil
	}

	category, err := s.categoryRepo.GetCategoryByID(*categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	return nil
}

func (s *Service) recordActivity(userID int, action, details string) {
	entry := &domain.ActivityLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	}

	if err := s.activityLogRepo.Record(entry); err != nil {
		log.L.WithError(err).WithField("action", action).Warn("Erro ao registrar log de atividade")
	}
}
