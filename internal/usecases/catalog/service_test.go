package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

type catalogMocks struct {
	product     *mocks.MockProductRepository
	category    *mocks.MockCategoryRepository
	report      *mocks.MockReportRepository
	activityLog *mocks.MockActivityLogRepository
}

func newTestService(t *testing.T) (Cataloger, *catalogMocks) {
	ctrl := gomock.NewController(t)

	m := &catalogMocks{
		product:     mocks.NewMockProductRepository(ctrl),
		category:    mocks.NewMockCategoryRepository(ctrl),
		report:      mocks.NewMockReportRepository(ctrl),
		activityLog: mocks.NewMockActivityLogRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.Report.DynamicReorderLevel = true

	return NewService(cfg, m.product, m.category, m.report, m.activityLog), m
}

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestCreateProduct(t *testing.T) {
	service, m := newTestService(t)

	product := &domain.Product{
		Name:          "  Pão de queijo  ",
		Price:         2.5,
		CostPrice:     1.0,
		StockQuantity: 60,
	}

	m.product.EXPECT().
		CreateProduct(gomock.Any()).
		DoAndReturn(func(p *domain.Product) (*domain.Product, error) {
			assert.Equal(t, "Pão de queijo", p.Name)
			assert.Equal(t, domain.ProductStatusActive, p.Status)
			// Nível de reposição não informado é derivado do estoque
			assert.Equal(t, 12, p.ReorderLevel)

			p.ID = 1
			return p, nil
		})

	m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

	created, err := service.CreateProduct(1, product)

	assert.NoError(t, err)
	if assert.NotNil(t, created) {
		assert.Equal(t, 1, created.ID)
	}
}

func TestCreateProductValidations(t *testing.T) {
	tests := []struct {
		name    string
		product *domain.Product
		setup   func(m *catalogMocks)
		wantErr error
	}{
		{
			name:    "Nome vazio",
			product: &domain.Product{Name: "   ", Price: 1},
			wantErr: ErrInvalidName,
		},
		{
			name:    "Preço negativo",
			product: &domain.Product{Name: "Broa", Price: -1},
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "Estoque negativo",
			product: &domain.Product{Name: "Broa", Price: 1, StockQuantity: -5},
			wantErr: ErrInvalidStock,
		},
		{
			name:    "Status desconhecido",
			product: &domain.Product{Name: "Broa", Price: 1, Status: "pausado"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "Categoria inexistente",
			product: &domain.Product{Name: "Broa", Price: 1, CategoryID: intPtr(99)},
			setup: func(m *catalogMocks) {
				m.category.EXPECT().GetCategoryByID(99).Return(nil, nil)
			},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:    "Nome duplicado",
			product: &domain.Product{Name: "Broa", Price: 1},
			setup: func(m *catalogMocks) {
				m.product.EXPECT().CreateProduct(gomock.Any()).Return(nil, repository.ErrDuplicateName)
			},
			wantErr: ErrNameAlreadyTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)

			if tt.setup != nil {
				tt.setup(m)
			}

			created, err := service.CreateProduct(1, tt.product)

			assert.Nil(t, created)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	service, m := newTestService(t)

	existing := &domain.Product{
		ID:            5,
		Name:          "Sonho",
		Price:         4.0,
		CostPrice:     1.5,
		StockQuantity: 30,
		ReorderLevel:  6,
		Status:        domain.ProductStatusActive,
	}

	m.product.EXPECT().GetProductByID(5).Return(existing, nil)

	m.product.EXPECT().
		UpdateProduct(gomock.Any()).
		DoAndReturn(func(p *domain.Product) error {
			// Apenas o preço muda, o resto é preservado
			assert.Equal(t, 4.5, p.Price)
			assert.Equal(t, "Sonho", p.Name)
			assert.Equal(t, 30, p.StockQuantity)
			return nil
		})

	m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

	price := 4.5
	updated, err := service.UpdateProduct(1, &domain.UpdateProductRequest{ID: 5, Price: &price})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
}

func TestUpdateProductNotFound(t *testing.T) {
	service, m := newTestService(t)

	m.product.EXPECT().GetProductByID(99).Return(nil, nil)

	updated, err := service.UpdateProduct(1, &domain.UpdateProductRequest{ID: 99})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductWithSales(t *testing.T) {
	service, m := newTestService(t)

	m.product.EXPECT().DeleteProduct(7).Return(repository.ErrReferenced)

	err := service.DeleteProduct(1, 7)

	assert.ErrorIs(t, err, ErrProductHasSales)
}

func TestDeleteCategory(t *testing.T) {
	t.Run("Categoria em uso não pode ser removida", func(t *testing.T) {
		service, m := newTestService(t)

		m.category.EXPECT().CountProducts(3).Return(4, nil)

		err := service.DeleteCategory(1, 3)

		assert.ErrorIs(t, err, ErrCategoryInUse)
	})

	t.Run("Categoria sem produtos é removida", func(t *testing.T) {
		service, m := newTestService(t)

		m.category.EXPECT().CountProducts(3).Return(0, nil)
		m.category.EXPECT().DeleteCategory(3).Return(nil)
		m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

		err := service.DeleteCategory(1, 3)

		assert.NoError(t, err)
	})
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	service, m := newTestService(t)

	m.category.EXPECT().
		CreateCategory(gomock.Any()).
		Return(nil, repository.ErrDuplicateName)

	created, err := service.CreateCategory(1, &domain.Category{Name: "Doces"})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, ErrNameAlreadyTaken)
}

func TestUpdateCategory(t *testing.T) {
	service, m := newTestService(t)

	existing := &domain.Category{
		ID:     2,
		Name:   "Salgados",
		Status: domain.CategoryStatusActive,
	}

	m.category.EXPECT().GetCategoryByID(2).Return(existing, nil)

	m.category.EXPECT().
		UpdateCategory(gomock.Any()).
		DoAndReturn(func(c *domain.Category) error {
			assert.Equal(t, "Salgados e lanches", c.Name)
			assert.Equal(t, domain.CategoryStatusInactive, c.Status)
			return nil
		})

	m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

	updated, err := service.UpdateCategory(1, &domain.UpdateCategoryRequest{
		ID:     2,
		Name:   stringPtr("Salgados e lanches"),
		Status: stringPtr(domain.CategoryStatusInactive),
	})

	assert.NoError(t, err)
	assert.NotNil(t, updated)
}

func TestLowStockProducts(t *testing.T) {
	service, m := newTestService(t)

	rows := []*domain.LowStockRow{
		{ProductID: 1, Name: "Pão francês", StockQuantity: 3, ReorderLevel: 5},
	}

	// A flag configurada é repassada ao repositório
	m.report.EXPECT().LowStock(true).Return(rows, nil)

	got, err := service.LowStockProducts()

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}
